package reports

import (
	"fmt"

	"ims/ims/pdf"
)

// Accreditation figures shown on the combined report. These mirror the
// dashboard's assessment summary and are revised once per accreditation
// cycle, not per request.
var naacCriteria = [][]string{
	{"Faculty Qualifications", "85", "100", "85.0%", "2024"},
	{"Student Support and Progression", "78", "100", "78.0%", "2024"},
	{"Research, Innovation and Extension", "82", "100", "82.0%", "2024"},
	{"Infrastructure and Learning Resources", "90", "100", "90.0%", "2024"},
	{"Student Satisfaction Survey", "88", "100", "88.0%", "2024"},
	{"Teaching-Learning and Evaluation", "86", "100", "86.0%", "2024"},
	{"Governance, Leadership and Management", "84", "100", "84.0%", "2024"},
}

var nbaPrograms = [][]string{
	{"Computer Science Engineering", "Accredited", "2023-2026", "2023"},
	{"Electronics Engineering", "Accredited", "2022-2025", "2022"},
	{"Mechanical Engineering", "Provisional", "2023-2024", "2023"},
	{"Civil Engineering", "Applied", "Pending", "2023"},
	{"Information Technology", "Accredited", "2024-2027", "2024"},
}

type designationCount struct {
	Designation string
	Count       int64
}

// composeFull assembles the combined report: cover page, NAAC and NBA
// accreditation tables, the live faculty designation distribution, and a
// closing summary page carrying the sign-off block.
func composeFull(g *Generator, def Definition, doc *pdf.Document, filter Filter, data TableData) error {
	departmentName := filter.DepartmentName()

	doc.Letterhead(def.Title, departmentName)
	doc.Space(10)
	doc.CenteredParagraph(fmt.Sprintf("Department: %s", departmentName), 18)
	doc.Space(30)
	doc.CenteredParagraph("This comprehensive report contains detailed statistics about faculty,", 12)
	doc.CenteredParagraph("students, research output, and academic accreditation metrics.", 12)

	doc.AddPage()
	doc.Letterhead("NAAC Accreditation Statistics", departmentName)
	doc.Table([]string{"Criteria", "Score", "Max Score", "Percentage", "Year"}, naacCriteria, pdf.PlainStyle, nil)
	doc.Footnote("* NAAC metrics based on current institutional assessment")

	doc.AddPage()
	doc.Letterhead("NBA Accreditation Statistics", departmentName)
	doc.Table([]string{"Program", "Status", "Validity", "Year"}, nbaPrograms, pdf.PlainStyle, nil)
	doc.Footnote("* NBA accreditation status based on current program assessments")

	doc.AddPage()
	doc.Letterhead("Faculty Distribution Statistics", departmentName)

	var counts []designationCount
	err := g.db.Table("faculty_details").
		Select("current_designation AS designation, COUNT(*) AS count").
		Group("current_designation").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		g.logger.Warn("error fetching faculty designation distribution", "error", err)
	} else if len(counts) > 0 {
		cells := make([][]string, len(counts))
		for i, c := range counts {
			designation := c.Designation
			if designation == "" {
				designation = "Not Specified"
			}
			cells[i] = []string{designation, fmt.Sprintf("%d", c.Count)}
		}
		doc.Table([]string{"Designation", "Count"}, cells, pdf.PlainStyle, nil)
	}

	doc.AddPage()
	doc.Letterhead("Report Summary and References", departmentName)
	doc.Paragraph("This comprehensive report includes the following sections:")
	doc.Space(4)
	doc.Paragraph("- NAAC Accreditation Statistics")
	doc.Paragraph("- NBA Accreditation Status")
	doc.Paragraph("- Faculty Distribution Statistics")
	doc.Space(6)
	doc.Paragraph("For detailed information, please refer to individual reports:")
	doc.Space(4)
	doc.Paragraph("- Faculty Report: Complete faculty details and activities")
	doc.Paragraph("- Student Report: Student enrollment and distribution")
	doc.Paragraph("- Research Report: Research projects and consultancy details")
	doc.Space(10)

	g.signatureBlock(doc, filter)
	return nil
}
