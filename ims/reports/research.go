package reports

import (
	"fmt"
	"time"

	"ims/ims/api"
	"ims/ims/monitoring"
	"ims/ims/pdf"
)

var researchColumns = []string{
	"faculty_name", "department", "title", "type", "year", "venue", "funding_amount", "source",
}

// aggregateResearch blends three sources into one table: faculty
// publications, research project consultancies, and research-flavored
// contributions. A failing source is logged and skipped so one broken
// table cannot empty the whole report.
func aggregateResearch(g *Generator, filter Filter) (TableData, error) {
	var rows []api.Row

	publications, err := g.researchPublicationRows(filter)
	if err != nil {
		g.logger.Warn("error fetching research publications", "error", err)
		monitoring.ReportSourceFailures.WithLabelValues("faculty_publication").Inc()
	} else {
		rows = append(rows, publications...)
	}

	projects, err := g.researchProjectRows(filter)
	if err != nil {
		g.logger.Warn("error fetching research projects", "error", err)
		monitoring.ReportSourceFailures.WithLabelValues("research_project").Inc()
	} else {
		rows = append(rows, projects...)
	}

	contributions, err := g.researchContributionRows(filter)
	if err != nil {
		g.logger.Warn("error fetching research contributions", "error", err)
		monitoring.ReportSourceFailures.WithLabelValues("contribution").Inc()
	} else {
		rows = append(rows, contributions...)
	}

	return TableData{Columns: researchColumns, Rows: rows}, nil
}

type researchSourceRecord struct {
	FacultyName   string
	Department    string
	Title         string
	Type          string
	Date          *time.Time
	Venue         string
	FundingAmount string
}

func (rec researchSourceRecord) row(source string) api.Row {
	year := any("")
	if rec.Date != nil {
		year = rec.Date.Year()
	}
	return api.Row{
		"faculty_name":   rec.FacultyName,
		"department":     rec.Department,
		"title":          rec.Title,
		"type":           rec.Type,
		"year":           year,
		"venue":          rec.Venue,
		"funding_amount": rec.FundingAmount,
		"source":         source,
	}
}

func (g *Generator) researchPublicationRows(filter Filter) ([]api.Row, error) {
	query := g.db.Table("faculty_publications AS p").
		Select(`f.f_name AS faculty_name, f.f_dept AS department, p.title,
			p.publication_type AS type, p.publication_date AS date, p.publication_venue AS venue`).
		Joins("JOIN faculty f ON p.faculty_id = f.f_id")
	if filter.Department != "" {
		query = query.Where("f.f_dept = ?", filter.Department)
	}

	var records []researchSourceRecord
	if err := query.Order("p.publication_date DESC, f.f_name").Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if yearMatches(filter.Year, rec.Date) {
			rows = append(rows, rec.row("faculty_publication"))
		}
	}
	return rows, nil
}

func (g *Generator) researchProjectRows(filter Filter) ([]api.Row, error) {
	query := g.db.Table("research_project_consultancies").
		Select(`name_of_principal_investigator_coinvestigator AS faculty_name,
			department_of_principal_investigator AS department,
			name_of_project_endownment AS title,
			year_of_award AS date,
			name_of_the_funding_agency AS venue,
			amount_sanctioned AS funding_amount`)
	if filter.Department != "" {
		query = query.Where("department_of_principal_investigator = ?", filter.Department)
	}

	var records []researchSourceRecord
	err := query.Order("year_of_award DESC, name_of_principal_investigator_coinvestigator").Scan(&records).Error
	if err != nil {
		return nil, err
	}

	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if yearMatches(filter.Year, rec.Date) {
			rec.Type = "research project"
			rows = append(rows, rec.row("research_project"))
		}
	}
	return rows, nil
}

func (g *Generator) researchContributionRows(filter Filter) ([]api.Row, error) {
	query := g.db.Table("faculty_contributions AS fc").
		Select(`f.f_name AS faculty_name, f.f_dept AS department, fc.description AS title,
			fc.contribution_type AS type, fc.contribution_date AS date, fc.recognized_by AS venue`).
		Joins("JOIN faculty f ON fc.f_id = f.f_id").
		Where(`fc.contribution_type LIKE '%journal%' OR fc.contribution_type LIKE '%conference%'
			OR fc.contribution_type LIKE '%publication%' OR fc.contribution_type LIKE '%research%'
			OR fc.contribution_type LIKE '%paper%'`)
	if filter.Department != "" {
		query = query.Where("f.f_dept = ?", filter.Department)
	}

	var records []researchSourceRecord
	if err := query.Order("fc.contribution_date DESC, f.f_name").Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if yearMatches(filter.Year, rec.Date) {
			rows = append(rows, rec.row("contribution"))
		}
	}
	return rows, nil
}

// composeResearch renders the blended research table, then a per-department
// source breakdown page, then the sign-off block.
func composeResearch(g *Generator, def Definition, doc *pdf.Document, filter Filter, data TableData) error {
	doc.Letterhead(def.Title, filter.DepartmentName())

	if len(data.Rows) == 0 {
		doc.Notice(def.EmptyNotice)
		return nil
	}

	doc.Table(columnTitles(data.Columns), tableCells(data), pdf.PlainStyle, nil)

	doc.AddPage()
	doc.Letterhead("Research Statistics Summary", filter.DepartmentName())

	type deptStats struct {
		total, publications, projects, contributions int
	}
	byDept := map[string]*deptStats{}
	var order []string
	for _, row := range data.Rows {
		dept := cellString(row["department"])
		stats, ok := byDept[dept]
		if !ok {
			stats = &deptStats{}
			byDept[dept] = stats
			order = append(order, dept)
		}
		stats.total++
		switch row["source"] {
		case "faculty_publication":
			stats.publications++
		case "research_project":
			stats.projects++
		case "contribution":
			stats.contributions++
		}
	}

	cells := make([][]string, 0, len(order))
	for _, dept := range order {
		stats := byDept[dept]
		cells = append(cells, []string{
			orNA(dept),
			fmt.Sprintf("%d", stats.total),
			fmt.Sprintf("%d", stats.publications),
			fmt.Sprintf("%d", stats.projects),
			fmt.Sprintf("%d", stats.contributions),
		})
	}
	doc.Table(
		[]string{"Department", "Total Items", "Publications", "Research Projects", "Contributions"},
		cells, pdf.PlainStyle, nil,
	)

	g.signatureBlock(doc, filter)
	return nil
}
