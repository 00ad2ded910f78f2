package reports

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ims/ims/api"
	"ims/ims/pdf"
	"ims/ims/reports/signature"

	"gorm.io/gorm"
)

var (
	ErrUnknownReportType  = errors.New("unknown report type")
	ErrDepartmentNotFound = errors.New("department not found")
)

// Filter narrows a report to a department, a single faculty member, or a
// calendar year. Department holds the resolved department name; the raw
// request value is kept separately for filenames.
type Filter struct {
	Department      string
	DepartmentLabel string
	FacultyId       string
	Year            string
}

// DepartmentName is the display form of the department filter.
func (f Filter) DepartmentName() string {
	if f.Department == "" {
		return signature.AllDepartments
	}
	return f.Department
}

// Summary is the one-line filter description printed under the report
// title, e.g. "Faculty ID: CS101  Academic Year: 2023-2024".
func (f Filter) Summary() string {
	var parts []string
	if f.FacultyId != "" {
		parts = append(parts, fmt.Sprintf("Faculty ID: %s", f.FacultyId))
	}
	if yearEnabled(f.Year) {
		if year, err := strconv.Atoi(f.Year); err == nil {
			parts = append(parts, fmt.Sprintf("Academic Year: %d-%d", year, year+1))
		} else {
			parts = append(parts, fmt.Sprintf("Academic Year: %s", f.Year))
		}
	}
	return strings.Join(parts, "  ")
}

type TableData struct {
	Columns []string  `json:"columns"`
	Rows    []api.Row `json:"rows"`
}

// Definition binds a report kind to its aggregator and its PDF recipe.
// The registry is fixed at startup, so an unknown kind fails fast instead
// of falling through a string switch.
type Definition struct {
	Title       string
	EmptyNotice string
	Aggregate   func(g *Generator, filter Filter) (TableData, error)
	Compose     func(g *Generator, def Definition, doc *pdf.Document, filter Filter, data TableData) error
}

var definitions = map[api.ReportKind]Definition{
	api.FacultyReport: {
		Title:       "Faculty Report",
		EmptyNotice: "No faculty data found",
		Aggregate:   aggregateFaculty,
		Compose:     composeFaculty,
	},
	api.StudentReport: {
		Title:       "Student Enrollment Report",
		EmptyNotice: "No student data found",
		Aggregate:   aggregateStudents,
		Compose:     composeStudents,
	},
	api.ResearchReport: {
		Title:       "Research Output and Consultancy Report",
		EmptyNotice: "No research data found",
		Aggregate:   aggregateResearch,
		Compose:     composeResearch,
	},
	api.PublicationsReport: {
		Title:       "Publications Report",
		EmptyNotice: "No publications data found for the selected criteria.",
		Aggregate:   aggregatePublications,
		Compose:     composeTabular,
	},
	api.ResearchProjectsReport: {
		Title:       "Research Projects Report",
		EmptyNotice: "No research projects data found for the selected criteria.",
		Aggregate:   aggregateResearchProjects,
		Compose:     composeTabular,
	},
	api.ContributionsReport: {
		Title:       "Contributions Report",
		EmptyNotice: "No contributions data found for the selected criteria.",
		Aggregate:   aggregateContributions,
		Compose:     composeTabular,
	},
	api.WorkshopsReport: {
		Title:       "Workshops & Conferences Report",
		EmptyNotice: "No workshops data found for the selected criteria.",
		Aggregate:   aggregateWorkshops,
		Compose:     composeTabular,
	},
	api.MembershipsReport: {
		Title:       "Professional Memberships Report",
		EmptyNotice: "No memberships data found for the selected criteria.",
		Aggregate:   aggregateMemberships,
		Compose:     composeTabular,
	},
	api.AwardsReport: {
		Title:       "Awards & Recognitions Report",
		EmptyNotice: "No awards data found for the selected criteria.",
		Aggregate:   aggregateAwards,
		Compose:     composeTabular,
	},
	api.FullReport: {
		Title:   "Comprehensive Academic Report",
		Compose: composeFull,
	},
}

// Generator runs report aggregation and PDF composition against the
// academic records store.
type Generator struct {
	db         *gorm.DB
	Signatures *signature.Resolver
	assets     pdf.Assets
	logger     *slog.Logger
}

func NewGenerator(db *gorm.DB, signatures *signature.Resolver, assets pdf.Assets) *Generator {
	return &Generator{
		db:         db,
		Signatures: signatures,
		assets:     assets,
		logger:     slog.With("component", "reports"),
	}
}

// ResolveFilter normalizes the raw request parameters. A numeric
// departmentId is translated to the department name; anything else is
// treated as a department name already. "all" and empty disable the
// department filter.
func (g *Generator) ResolveFilter(departmentId, facultyId, year string) Filter {
	filter := Filter{DepartmentLabel: departmentId, FacultyId: facultyId, Year: year}
	if filter.DepartmentLabel == "" {
		filter.DepartmentLabel = "all"
	}

	if departmentId == "" || departmentId == "all" {
		return filter
	}

	if id, err := strconv.ParseInt(departmentId, 10, 64); err == nil {
		var name string
		err := g.db.Table("department").Select("dept_name").Where("dept_id = ?", id).Limit(1).Scan(&name).Error
		if err != nil {
			g.logger.Error("department name lookup failed", "department_id", id, "error", err)
		}
		if name != "" {
			filter.Department = name
			return filter
		}
	}

	filter.Department = departmentId
	return filter
}

// TableData runs the aggregator for the given kind. The full report has no
// single table form; callers assemble it from the faculty, student, and
// research aggregators instead.
func (g *Generator) TableData(kind api.ReportKind, filter Filter) (TableData, error) {
	def, ok := definitions[kind]
	if !ok || def.Aggregate == nil {
		return TableData{}, ErrUnknownReportType
	}
	return def.Aggregate(g, filter)
}

// GeneratePDF renders the report to PDF bytes and returns the download
// filename alongside. An empty row set still renders a complete document
// with a no-data notice.
func (g *Generator) GeneratePDF(kind api.ReportKind, filter Filter) ([]byte, string, error) {
	def, ok := definitions[kind]
	if !ok {
		return nil, "", ErrUnknownReportType
	}

	var data TableData
	if def.Aggregate != nil {
		var err error
		data, err = def.Aggregate(g, filter)
		if err != nil {
			return nil, "", err
		}
	}

	doc := pdf.NewDocument(g.assets, false)
	if err := def.Compose(g, def, doc, filter, data); err != nil {
		return nil, "", err
	}

	content, err := doc.Finalize()
	if err != nil {
		return nil, "", err
	}

	return content, g.Filename(kind, filter), nil
}

// DepartmentByID resolves a numeric department id to its name.
func (g *Generator) DepartmentByID(id int64) (string, error) {
	var name string
	err := g.db.Table("department").Select("dept_name").Where("dept_id = ?", id).Limit(1).Scan(&name).Error
	if err != nil {
		return "", fmt.Errorf("error fetching department: %w", err)
	}
	if name == "" {
		return "", ErrDepartmentNotFound
	}
	return name, nil
}

// GenerateDepartmentPDF renders the landscape single-table variant used by
// the department download endpoint, named
// <type>-report-<department>-<year|all>.pdf.
func (g *Generator) GenerateDepartmentPDF(kind api.ReportKind, filter Filter) ([]byte, string, error) {
	def, ok := definitions[kind]
	if !ok || def.Aggregate == nil {
		return nil, "", ErrUnknownReportType
	}

	data, err := def.Aggregate(g, filter)
	if err != nil {
		return nil, "", err
	}

	// The department download keeps the department letterhead even when
	// scoped to one faculty member; the scope shows up in the filter
	// summary line instead.
	doc := pdf.NewDocument(g.assets, true)
	doc.Letterhead(def.Title, filter.Department)
	if summary := filter.Summary(); summary != "" {
		doc.CenteredParagraph(summary, 10)
	}
	if len(data.Rows) == 0 {
		doc.Notice(def.EmptyNotice)
	} else {
		doc.Table(columnTitles(data.Columns), tableCells(data), pdf.PlainStyle, nil)
	}

	content, err := doc.Finalize()
	if err != nil {
		return nil, "", err
	}

	year := filter.Year
	if year == "" {
		year = "all"
	}
	filename := fmt.Sprintf("%s-report-%s-%s.pdf", kind, filter.Department, year)
	return content, filename, nil
}

// Filename follows the established download naming scheme:
// <type>_report_<department|all|faculty-name>_<date>.pdf.
func (g *Generator) Filename(kind api.ReportKind, filter Filter) string {
	label := filter.DepartmentLabel
	if label == "" {
		label = "all"
	}
	if filter.FacultyId != "" {
		signatory := g.Signatures.Signatory("", filter.FacultyId)
		label = strings.Join(strings.Fields(signatory.Name), "_")
	}
	base := strings.ReplaceAll(string(kind), "-", "_")
	return fmt.Sprintf("%s_report_%s_%s.pdf", base, label, time.Now().Format("2006-01-02"))
}

func (g *Generator) signatureBlock(doc *pdf.Document, filter Filter) {
	signatory := g.Signatures.Signatory(filter.DepartmentName(), filter.FacultyId)

	hodName := signature.PlaceholderHOD
	if filter.FacultyId != "" {
		hodName = g.Signatures.HODForFaculty(filter.FacultyId)
	} else if filter.Department != "" {
		hodName = g.Signatures.HODForDepartment(filter.Department)
	}

	doc.SignatureBlock(
		pdf.SignatureLine{Label: "Faculty Signature:", Name: signatory.Name, Role: "Faculty", ImagePath: signatory.SignatureURL},
		pdf.SignatureLine{Label: "HOD Signature:", Name: hodName, Role: "Head of Department"},
	)
}

// composeTabular is the shared recipe for the single-table activity
// reports: letterhead, data table or no-data notice, and a signature block
// when the report is scoped to one faculty member.
func composeTabular(g *Generator, def Definition, doc *pdf.Document, filter Filter, data TableData) error {
	if filter.FacultyId != "" {
		signatory := g.Signatures.Signatory("", filter.FacultyId)
		doc.Letterhead(fmt.Sprintf("Faculty %s - %s", def.Title, signatory.Name), "")
	} else {
		doc.Letterhead(def.Title, filter.DepartmentName())
	}

	if len(data.Rows) == 0 {
		doc.Notice(def.EmptyNotice)
	} else {
		doc.Table(columnTitles(data.Columns), tableCells(data), pdf.PlainStyle, nil)
	}

	if filter.FacultyId != "" {
		g.signatureBlock(doc, filter)
	}
	return nil
}

func columnTitles(columns []string) []string {
	titles := make([]string, len(columns))
	for i, col := range columns {
		words := strings.Split(col, "_")
		for j, word := range words {
			if word != "" {
				words[j] = strings.ToUpper(word[:1]) + word[1:]
			}
		}
		titles[i] = strings.Join(words, " ")
	}
	return titles
}

func tableCells(data TableData) [][]string {
	cells := make([][]string, len(data.Rows))
	for i, row := range data.Rows {
		line := make([]string, len(data.Columns))
		for j, col := range data.Columns {
			line[j] = cellString(row[col])
		}
		cells[i] = line
	}
	return cells
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func yearEnabled(year string) bool {
	return year != "" && year != "all"
}

func yearMatches(year string, date *time.Time) bool {
	if !yearEnabled(year) {
		return true
	}
	if date == nil {
		return false
	}
	return strconv.Itoa(date.Year()) == year
}

func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("02/01/2006")
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
