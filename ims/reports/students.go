package reports

import (
	"fmt"

	"ims/ims/api"
	"ims/ims/pdf"

	"gorm.io/gorm"
)

var studentColumns = []string{"id", "name", "department", "division", "email"}

type studentRecord struct {
	Id         int64
	Name       string
	Department string
	Division   string
	Email      string
}

// aggregateStudents reads the current student table and falls back to the
// legacy column layout when the query fails (older dumps predate the
// username/branch rename). Both paths degrade to an empty row set rather
// than failing the report.
func aggregateStudents(g *Generator, filter Filter) (TableData, error) {
	records, err := currentStudentRows(g.db, filter.Department)
	if err != nil {
		g.logger.Warn("error fetching student data from student table", "error", err)
		records, err = legacyStudentRows(g.db, filter.Department)
		if err != nil {
			g.logger.Warn("error fetching from fallback student table", "error", err)
			records = nil
		}
	}

	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, api.Row{
			"id":         rec.Id,
			"name":       rec.Name,
			"department": rec.Department,
			"division":   rec.Division,
			"email":      rec.Email,
		})
	}

	return TableData{Columns: studentColumns, Rows: rows}, nil
}

func currentStudentRows(db *gorm.DB, department string) ([]studentRecord, error) {
	query := db.Table("student").
		Select("id, username AS name, branch AS department, division, email")
	if department != "" {
		query = query.Where("branch = ?", department)
	}

	var records []studentRecord
	if err := query.Order("username").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func legacyStudentRows(db *gorm.DB, department string) ([]studentRecord, error) {
	query := db.Table("student").
		Select("id, name, department, division, email")
	if department != "" {
		query = query.Where("department = ?", department)
	}

	var records []studentRecord
	if err := query.Order("name").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

type branchCount struct {
	Label string
	Total int64
}

// composeStudents renders the enrollment roster with serial numbers, then
// branch and division distribution tables, then the sign-off block.
func composeStudents(g *Generator, def Definition, doc *pdf.Document, filter Filter, data TableData) error {
	doc.Letterhead(def.Title, filter.DepartmentName())

	if len(data.Rows) == 0 {
		doc.Notice(def.EmptyNotice)
		return nil
	}

	columns := []string{"Sr. No", "Student Name", "Email", "Branch", "Division"}
	cells := make([][]string, len(data.Rows))
	for i, row := range data.Rows {
		cells[i] = []string{
			fmt.Sprintf("%d", i+1),
			orNA(cellString(row["name"])),
			orNA(cellString(row["email"])),
			orNA(cellString(row["department"])),
			orNA(cellString(row["division"])),
		}
	}
	doc.Table(columns, cells, pdf.PlainStyle, []float64{15, 50, 60, 35, 22})

	var branchStats []branchCount
	err := g.db.Table("student").
		Select("branch AS label, COUNT(id) AS total").
		Group("branch").Order("branch").
		Scan(&branchStats).Error
	if err == nil && len(branchStats) > 0 {
		doc.Space(8)
		doc.Heading("Student Statistics by Branch")
		doc.Space(2)
		doc.Table([]string{"Branch", "Total Students"}, countCells(branchStats), pdf.PlainStyle, nil)
	} else if err != nil {
		g.logger.Warn("error fetching branch statistics", "error", err)
	}

	var divisionStats []branchCount
	err = g.db.Table("student").
		Select("division AS label, COUNT(id) AS total").
		Group("division").Order("division").
		Scan(&divisionStats).Error
	if err == nil && len(divisionStats) > 0 {
		doc.Space(8)
		doc.Heading("Student Statistics by Division")
		doc.Space(2)
		doc.Table([]string{"Division", "Number of Students"}, countCells(divisionStats), pdf.PlainStyle, nil)
	} else if err != nil {
		g.logger.Warn("error fetching division statistics", "error", err)
	}

	g.signatureBlock(doc, filter)
	return nil
}

func countCells(stats []branchCount) [][]string {
	cells := make([][]string, len(stats))
	for i, stat := range stats {
		cells[i] = []string{orNA(stat.Label), fmt.Sprintf("%d", stat.Total)}
	}
	return cells
}
