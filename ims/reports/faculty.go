package reports

import (
	"fmt"
	"time"

	"ims/ims/api"
	"ims/ims/pdf"
)

type facultyRecord struct {
	Name          string
	Department    string
	Designation   string
	HighestDegree string
	Experience    *int
	DateOfJoining *time.Time
	Email         string
	IsHOD         int
}

// aggregateFaculty lists faculty ordered HOD-first, then by designation
// seniority, then by joining date.
func aggregateFaculty(g *Generator, filter Filter) (TableData, error) {
	query := g.db.Table("faculty").
		Select(`faculty.f_name AS name, faculty.f_dept AS department,
			faculty_details.current_designation AS designation,
			faculty_details.highest_degree, faculty_details.experience,
			faculty_details.date_of_joining, faculty.email,
			CASE WHEN faculty.f_id IN (SELECT hod_id FROM department_details) THEN 1 ELSE 0 END AS is_hod`).
		Joins("LEFT JOIN faculty_details ON faculty.f_id = faculty_details.f_id")

	if filter.FacultyId != "" {
		query = query.Where("faculty.f_id = ?", filter.FacultyId)
	} else if filter.Department != "" {
		query = query.Where("faculty.f_dept = ?", filter.Department)
	}

	query = query.Order(`CASE WHEN faculty.f_id IN (SELECT hod_id FROM department_details) THEN 0 ELSE 1 END,
		CASE faculty_details.current_designation
			WHEN 'Professor' THEN 1
			WHEN 'Associate Professor' THEN 2
			WHEN 'Assistant Professor' THEN 3
			ELSE 4
		END,
		faculty_details.date_of_joining`)

	var records []facultyRecord
	if err := query.Scan(&records).Error; err != nil {
		return TableData{}, fmt.Errorf("error fetching faculty data: %w", err)
	}

	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.DateOfJoining) {
			continue
		}
		designation := orNA(rec.Designation)
		if rec.IsHOD != 0 {
			designation = "HoD - " + designation
		}
		experience := ""
		if rec.Experience != nil {
			experience = fmt.Sprintf("%d", *rec.Experience)
		}
		rows = append(rows, api.Row{
			"name":          rec.Name,
			"designation":   designation,
			"dateOfJoining": formatDate(rec.DateOfJoining),
			"department":    rec.Department,
			"highestDegree": orNA(rec.HighestDegree),
			"experience":    orNA(experience),
			"email":         orNA(rec.Email),
		})
	}

	columns := []string{"name", "designation", "dateOfJoining", "department", "highestDegree", "experience"}
	return TableData{Columns: columns, Rows: rows}, nil
}

type facultyStatsRecord struct {
	Department          string
	TotalFaculty        int64
	Professors          int64
	AssociateProfessors int64
	AssistantProfessors int64
}

func (g *Generator) facultyStatistics(filter Filter) ([]facultyStatsRecord, error) {
	query := g.db.Table("faculty").
		Select(`faculty.f_dept AS department, COUNT(*) AS total_faculty,
			SUM(CASE WHEN faculty_details.current_designation = 'Professor' THEN 1 ELSE 0 END) AS professors,
			SUM(CASE WHEN faculty_details.current_designation = 'Associate Professor' THEN 1 ELSE 0 END) AS associate_professors,
			SUM(CASE WHEN faculty_details.current_designation = 'Assistant Professor' THEN 1 ELSE 0 END) AS assistant_professors`).
		Joins("LEFT JOIN faculty_details ON faculty.f_id = faculty_details.f_id")
	if filter.Department != "" {
		query = query.Where("faculty.f_dept = ?", filter.Department)
	}

	var stats []facultyStatsRecord
	if err := query.Group("faculty.f_dept").Order("faculty.f_dept").Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("error fetching faculty statistics: %w", err)
	}
	return stats, nil
}

// composeFaculty renders the faculty roster followed by a department
// statistics page and the sign-off block. Every page carries the NAAC/NBA
// footer line in addition to the page counter.
func composeFaculty(g *Generator, def Definition, doc *pdf.Document, filter Filter, data TableData) error {
	doc.SetFooterNote("Information Management System - NAAC/NBA Reports")

	doc.Heading(def.Title)
	doc.Paragraph(fmt.Sprintf("Department: %s", filter.DepartmentName()))
	doc.Paragraph(fmt.Sprintf("Generated on: %s", time.Now().Format("02/01/2006 15:04:05")))
	doc.Space(4)

	if len(data.Rows) == 0 {
		doc.Notice(def.EmptyNotice)
		return nil
	}

	columns := []string{"Name", "Department", "Designation", "Highest Degree", "Experience (Years)", "Date of Joining", "Email"}
	cells := make([][]string, len(data.Rows))
	for i, row := range data.Rows {
		cells[i] = []string{
			cellString(row["name"]),
			cellString(row["department"]),
			cellString(row["designation"]),
			cellString(row["highestDegree"]),
			cellString(row["experience"]),
			cellString(row["dateOfJoining"]),
			cellString(row["email"]),
		}
	}
	doc.Table(columns, cells, pdf.GridStyle, nil)

	doc.AddPage()
	doc.Heading("Faculty Statistics by Department")
	doc.Space(4)

	stats, err := g.facultyStatistics(filter)
	if err != nil {
		return err
	}
	if len(stats) > 0 {
		statCells := make([][]string, len(stats))
		for i, stat := range stats {
			statCells[i] = []string{
				orNA(stat.Department),
				fmt.Sprintf("%d", stat.TotalFaculty),
				fmt.Sprintf("%d", stat.Professors),
				fmt.Sprintf("%d", stat.AssociateProfessors),
				fmt.Sprintf("%d", stat.AssistantProfessors),
			}
		}
		doc.Table(
			[]string{"Department", "Total Faculty", "Professors", "Associate Professors", "Assistant Professors"},
			statCells, pdf.GridStyle, nil,
		)
	}

	g.signatureBlock(doc, filter)
	return nil
}
