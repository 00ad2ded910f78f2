package reports_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"ims/ims/api"
	"ims/ims/pdf"
	"ims/ims/reports"
	"ims/ims/reports/signature"
	"ims/ims/schema"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *reports.Generator) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.AutoMigrate(
		&schema.Faculty{}, &schema.FacultyDetails{}, &schema.Department{}, &schema.DepartmentDetails{},
		&schema.Student{}, &schema.FacultyPublication{}, &schema.PublicationCoAuthor{}, &schema.BookChapter{},
		&schema.ResearchProjectConsultancy{}, &schema.FacultyAward{}, &schema.FacultyWorkshop{},
		&schema.FacultyMembership{}, &schema.FacultyContribution{},
	); err != nil {
		t.Fatal(err)
	}

	generator := reports.NewGenerator(db, signature.NewResolver(db, nil), pdf.Assets{})
	return db, generator
}

func date(t *testing.T, value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return &parsed
}

func addFaculty(t *testing.T, db *gorm.DB, id, name, dept, designation, joined string) {
	if err := db.Create(&schema.Faculty{
		FacultyId: id, Name: name, Dept: dept, Email: id + "@fcrit.ac.in", Role: "faculty",
	}).Error; err != nil {
		t.Fatal(err)
	}
	details := schema.FacultyDetails{FacultyId: id, CurrentDesignation: designation, HighestDegree: "PhD", Experience: 10}
	if joined != "" {
		details.DateOfJoining = date(t, joined)
	}
	if err := db.Create(&details).Error; err != nil {
		t.Fatal(err)
	}
}

func addDepartment(t *testing.T, db *gorm.DB, id int64, name, hodId string) {
	if err := db.Create(&schema.Department{DeptId: id, DeptName: name}).Error; err != nil {
		t.Fatal(err)
	}
	if hodId != "" {
		if err := db.Create(&schema.DepartmentDetails{DeptId: id, HODId: hodId}).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func rowNames(rows []api.Row) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = fmt.Sprintf("%v", row["name"])
	}
	return names
}

func TestFacultyOrdering(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "CS104")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Assistant Professor", "2015-07-01")
	addFaculty(t, db, "CS102", "Manoj Pillai", "Computer Engineering", "Professor", "2010-06-15")
	addFaculty(t, db, "CS103", "Rekha Nair", "Computer Engineering", "Associate Professor", "2012-01-10")
	addFaculty(t, db, "CS104", "Vikram Joshi", "Computer Engineering", "Assistant Professor", "2013-08-20")

	data, err := generator.TableData(api.FacultyReport, reports.Filter{Department: "Computer Engineering"})
	if err != nil {
		t.Fatal(err)
	}

	names := rowNames(data.Rows)
	expected := []string{"Vikram Joshi", "Manoj Pillai", "Rekha Nair", "Asha Iyer"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, names[i])
		}
	}

	if data.Rows[0]["designation"] != "HoD - Assistant Professor" {
		t.Fatalf("expected hod designation prefix, got %v", data.Rows[0]["designation"])
	}
	if data.Rows[1]["designation"] != "Professor" {
		t.Fatalf("unexpected designation for second row: %v", data.Rows[1]["designation"])
	}
}

func TestFacultyIdTakesPriorityOverDepartment(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")
	addDepartment(t, db, 2, "Mechanical Engineering", "")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Professor", "2010-06-15")
	addFaculty(t, db, "ME201", "Suresh Rao", "Mechanical Engineering", "Professor", "2011-06-15")

	data, err := generator.TableData(api.FacultyReport, reports.Filter{
		Department: "Mechanical Engineering", FacultyId: "CS101",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(data.Rows) != 1 || data.Rows[0]["name"] != "Asha Iyer" {
		t.Fatalf("expected only the requested faculty member, got %v", rowNames(data.Rows))
	}
}

func TestFacultyYearFilter(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Professor", "2015-07-01")
	addFaculty(t, db, "CS102", "Manoj Pillai", "Computer Engineering", "Professor", "2010-06-15")

	data, err := generator.TableData(api.FacultyReport, reports.Filter{Year: "2015"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 1 || data.Rows[0]["name"] != "Asha Iyer" {
		t.Fatalf("expected only 2015 joiners, got %v", rowNames(data.Rows))
	}

	data, err = generator.TableData(api.FacultyReport, reports.Filter{Year: "all"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected year filter disabled for 'all', got %d rows", len(data.Rows))
	}
}

func TestStudentAggregation(t *testing.T) {
	db, generator := setup(t)

	students := []schema.Student{
		{Username: "Zara Shaikh", Branch: "Computer Engineering", Division: "A", Email: "zara@fcrit.ac.in"},
		{Username: "Arjun Mehta", Branch: "Computer Engineering", Division: "B", Email: "arjun@fcrit.ac.in"},
		{Username: "Kiran Desai", Branch: "Mechanical Engineering", Division: "A", Email: "kiran@fcrit.ac.in"},
	}
	for _, student := range students {
		if err := db.Create(&student).Error; err != nil {
			t.Fatal(err)
		}
	}

	data, err := generator.TableData(api.StudentReport, reports.Filter{Department: "Computer Engineering"})
	if err != nil {
		t.Fatal(err)
	}

	names := rowNames(data.Rows)
	if len(names) != 2 || names[0] != "Arjun Mehta" || names[1] != "Zara Shaikh" {
		t.Fatalf("expected branch-filtered students in name order, got %v", names)
	}
}

func TestStudentLegacyTableFallback(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	err = db.Exec(`CREATE TABLE student (id INTEGER PRIMARY KEY, name TEXT, department TEXT, division TEXT, email TEXT)`).Error
	if err != nil {
		t.Fatal(err)
	}
	err = db.Exec(`INSERT INTO student (name, department, division, email) VALUES
		('Kiran Desai', 'Mechanical Engineering', 'A', 'kiran@fcrit.ac.in'),
		('Arjun Mehta', 'Computer Engineering', 'B', 'arjun@fcrit.ac.in')`).Error
	if err != nil {
		t.Fatal(err)
	}

	generator := reports.NewGenerator(db, signature.NewResolver(db, nil), pdf.Assets{})

	data, err := generator.TableData(api.StudentReport, reports.Filter{Department: "Computer Engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 1 || data.Rows[0]["name"] != "Arjun Mehta" {
		t.Fatalf("expected legacy column fallback to return the student, got %v", data.Rows)
	}
}

func TestResearchUnion(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Professor", "2010-06-15")

	err := db.Create(&schema.FacultyPublication{
		FacultyId: "CS101", Title: "Streaming Query Optimizers", PublicationType: "Journal",
		PublicationDate: date(t, "2023-03-01"), PublicationVenue: "IEEE TKDE",
	}).Error
	if err != nil {
		t.Fatal(err)
	}

	err = db.Create(&schema.ResearchProjectConsultancy{
		PrincipalInvestigator: "Asha Iyer", PrincipalDepartment: "Computer Engineering",
		NameOfProjectEndownment: "Smart Grid Analytics", YearOfAward: date(t, "2022-01-01"),
		FundingAgency: "AICTE", AmountSanctioned: "500000",
	}).Error
	if err != nil {
		t.Fatal(err)
	}

	err = db.Create(&schema.FacultyContribution{
		FacultyId: "CS101", ContributionType: "journal review", Description: "Reviewer for VLDB",
		ContributionDate: date(t, "2023-05-01"), RecognizedBy: "VLDB Endowment",
	}).Error
	if err != nil {
		t.Fatal(err)
	}

	// A non-research contribution must not leak into the union.
	err = db.Create(&schema.FacultyContribution{
		FacultyId: "CS101", ContributionType: "cultural committee", Description: "Annual fest",
		ContributionDate: date(t, "2023-05-01"),
	}).Error
	if err != nil {
		t.Fatal(err)
	}

	data, err := generator.TableData(api.ResearchReport, reports.Filter{Department: "Computer Engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 3 {
		t.Fatalf("expected 3 research rows, got %d", len(data.Rows))
	}

	sources := map[string]int{}
	for _, row := range data.Rows {
		sources[fmt.Sprintf("%v", row["source"])]++
	}
	for _, source := range []string{"faculty_publication", "research_project", "contribution"} {
		if sources[source] != 1 {
			t.Fatalf("expected one row from %s, got %v", source, sources)
		}
	}

	data, err = generator.TableData(api.ResearchReport, reports.Filter{Department: "Computer Engineering", Year: "2022"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 1 || data.Rows[0]["source"] != "research_project" {
		t.Fatalf("expected only the 2022 project, got %v", data.Rows)
	}
}

func TestActivityReportsScopedToFaculty(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Professor", "2010-06-15")
	addFaculty(t, db, "CS102", "Manoj Pillai", "Computer Engineering", "Professor", "2011-06-15")

	awards := []schema.FacultyAward{
		{FacultyId: "CS101", AwardName: "Best Teacher", AwardingOrganization: "ISTE", AwardDate: date(t, "2023-09-05"), Category: "Teaching"},
		{FacultyId: "CS102", AwardName: "Research Excellence", AwardingOrganization: "IEEE", AwardDate: date(t, "2022-12-01"), Category: "Research"},
	}
	for _, award := range awards {
		if err := db.Create(&award).Error; err != nil {
			t.Fatal(err)
		}
	}

	data, err := generator.TableData(api.AwardsReport, reports.Filter{FacultyId: "CS101"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 1 || data.Rows[0]["Award_Name"] != "Best Teacher" {
		t.Fatalf("expected only CS101's award, got %v", data.Rows)
	}

	data, err = generator.TableData(api.AwardsReport, reports.Filter{Department: "Computer Engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected both department awards, got %d", len(data.Rows))
	}
}

func TestResolveFilter(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 3, "Information Technology", "")

	filter := generator.ResolveFilter("3", "", "")
	if filter.Department != "Information Technology" || filter.DepartmentLabel != "3" {
		t.Fatalf("expected numeric id resolved to name, got %+v", filter)
	}

	filter = generator.ResolveFilter("all", "", "2024")
	if filter.Department != "" || filter.Year != "2024" || filter.DepartmentLabel != "all" {
		t.Fatalf("expected 'all' to disable the department filter, got %+v", filter)
	}

	filter = generator.ResolveFilter("Mechanical Engineering", "ME201", "")
	if filter.Department != "Mechanical Engineering" || filter.FacultyId != "ME201" {
		t.Fatalf("expected name passthrough, got %+v", filter)
	}
}

func TestDepartmentByID(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")

	name, err := generator.DepartmentByID(1)
	if err != nil || name != "Computer Engineering" {
		t.Fatalf("expected department name, got %q err %v", name, err)
	}

	if _, err := generator.DepartmentByID(99); err != reports.ErrDepartmentNotFound {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Professor", "2010-06-15")

	today := time.Now().Format("2006-01-02")

	name := generator.Filename(api.FacultyReport, reports.Filter{DepartmentLabel: "all"})
	if name != fmt.Sprintf("faculty_report_all_%s.pdf", today) {
		t.Fatalf("unexpected filename: %s", name)
	}

	name = generator.Filename(api.ResearchProjectsReport, reports.Filter{DepartmentLabel: "1", FacultyId: "CS101"})
	if name != fmt.Sprintf("research_projects_report_Asha_Iyer_%s.pdf", today) {
		t.Fatalf("unexpected faculty-scoped filename: %s", name)
	}
}

func TestUnknownReportType(t *testing.T) {
	_, generator := setup(t)

	if _, err := generator.TableData(api.ReportKind("bogus"), reports.Filter{}); err != reports.ErrUnknownReportType {
		t.Fatalf("expected ErrUnknownReportType, got %v", err)
	}
	if _, _, err := generator.GeneratePDF(api.ReportKind("bogus"), reports.Filter{}); err != reports.ErrUnknownReportType {
		t.Fatalf("expected ErrUnknownReportType, got %v", err)
	}
}

func TestGeneratePDFWithNoData(t *testing.T) {
	_, generator := setup(t)

	for _, kind := range []api.ReportKind{
		api.FacultyReport, api.StudentReport, api.ResearchReport, api.PublicationsReport,
		api.WorkshopsReport, api.MembershipsReport, api.AwardsReport, api.ContributionsReport,
		api.ResearchProjectsReport, api.FullReport,
	} {
		content, filename, err := generator.GeneratePDF(kind, reports.Filter{DepartmentLabel: "all"})
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if len(content) == 0 {
			t.Fatalf("%s: empty pdf", kind)
		}
		if !strings.HasSuffix(filename, ".pdf") {
			t.Fatalf("%s: unexpected filename %s", kind, filename)
		}
	}
}

func TestGenerateDepartmentPDFFilename(t *testing.T) {
	db, generator := setup(t)

	addDepartment(t, db, 1, "Computer Engineering", "")
	addFaculty(t, db, "CS101", "Asha Iyer", "Computer Engineering", "Professor", "2010-06-15")

	filter := reports.Filter{Department: "Computer Engineering", DepartmentLabel: "1", Year: "2023"}
	content, filename, err := generator.GenerateDepartmentPDF(api.PublicationsReport, filter)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) == 0 {
		t.Fatal("empty pdf")
	}
	if filename != "publications-report-Computer Engineering-2023.pdf" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}
