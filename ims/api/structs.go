package api

import (
	"time"

	"github.com/google/uuid"
)

// ReportKind enumerates the report types the pipeline can produce. Every
// kind is bound at definition time to an aggregator and a composition
// recipe in the reports package.
type ReportKind string

const (
	FacultyReport          ReportKind = "faculty"
	StudentReport          ReportKind = "student"
	ResearchReport         ReportKind = "research"
	PublicationsReport     ReportKind = "publications"
	ResearchProjectsReport ReportKind = "research-projects"
	ContributionsReport    ReportKind = "contributions"
	WorkshopsReport        ReportKind = "workshops"
	MembershipsReport      ReportKind = "memberships"
	AwardsReport           ReportKind = "awards"
	FullReport             ReportKind = "full"
)

const (
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatExcel = "excel"
	FormatCSV   = "csv"
)

// Row is one report record keyed by column name. The column list returned
// alongside a row set defines the display order.
type Row map[string]any

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type CreateReportRequest struct {
	ReportType   ReportKind `json:"reportType"`
	DepartmentId string     `json:"departmentId"`
	Format       string     `json:"format"`
	FacultyId    string     `json:"facultyId"`
	Year         string     `json:"year"`
	RequestType  string     `json:"requestType"`
}

type ReportData struct {
	ReportId     uuid.UUID  `json:"reportId,omitempty"`
	ReportType   ReportKind `json:"reportType"`
	DepartmentId string     `json:"departmentId"`
	GeneratedAt  time.Time  `json:"generatedAt"`
	Filename     string     `json:"filename,omitempty"`
	PdfBase64    string     `json:"pdfBase64,omitempty"`
	ExcelBase64  string     `json:"excelBase64,omitempty"`
	CSV          string     `json:"csv,omitempty"`
	TableData    any        `json:"tableData,omitempty"`
	Columns      []string   `json:"columns,omitempty"`
}

// FullTableData is the tableData payload for format:"json" full reports:
// one section per top-level aggregator.
type FullTableData struct {
	Faculty  []Row `json:"faculty"`
	Student  []Row `json:"student"`
	Research []Row `json:"research"`
}

type HODLookupResponse struct {
	Success bool   `json:"success"`
	HodName string `json:"hodName"`
}

type DepartmentFaculty struct {
	FacultyId            string `json:"F_id"`
	Name                 string `json:"F_name"`
	Department           string `json:"F_dept"`
	Email                string `json:"Email"`
	Designation          string `json:"Current_Designation"`
	Experience           int    `json:"Experience"`
	HighestDegree        string `json:"Highest_Degree"`
	DateOfJoining        string `json:"Date_of_Joining"`
	PublicationCount     int64  `json:"publicationCount"`
	AwardCount           int64  `json:"awardCount"`
	WorkshopCount        int64  `json:"workshopCount"`
	MembershipCount      int64  `json:"membershipCount"`
	ContributionCount    int64  `json:"contributionCount"`
	ResearchProjectCount int64  `json:"researchProjectCount"`
}

type DepartmentFacultyResponse struct {
	Success        bool                `json:"success"`
	Data           []DepartmentFaculty `json:"data"`
	DepartmentName string              `json:"departmentName"`
}

type DesignationCount struct {
	Designation string `json:"designation"`
	Count       int64  `json:"count"`
}

type YearCount struct {
	Year  string `json:"year"`
	Count int64  `json:"count"`
}

type DepartmentStats struct {
	DepartmentName        string             `json:"departmentName"`
	TotalFaculty          int64              `json:"totalFaculty"`
	TotalStudents         int64              `json:"totalStudents"`
	TotalPublications     int64              `json:"totalPublications"`
	TotalResearchProjects int64              `json:"totalResearchProjects"`
	TotalAwards           int64              `json:"totalAwards"`
	TotalWorkshops        int64              `json:"totalWorkshops"`
	FacultyByDesignation  []DesignationCount `json:"facultyByDesignation"`
	PublicationsByYear    []YearCount        `json:"publicationsByYear"`
}

type Publication struct {
	Id               int64           `json:"id"`
	FacultyId        string          `json:"faculty_id"`
	Title            string          `json:"title"`
	Abstract         string          `json:"abstract,omitempty"`
	Authors          string          `json:"authors"`
	PublicationDate  string          `json:"publication_date"`
	PublicationType  string          `json:"publication_type"`
	PublicationVenue string          `json:"publication_venue"`
	DOI              string          `json:"doi,omitempty"`
	URL              string          `json:"url,omitempty"`
	CitationCount    *int            `json:"citation_count,omitempty"`
	Citations        *CitationCounts `json:"citations,omitempty"`
}

type CitationCounts struct {
	Crossref        *int       `json:"citations_crossref,omitempty"`
	SemanticScholar *int       `json:"citations_semantic_scholar,omitempty"`
	GoogleScholar   *int       `json:"citations_google_scholar,omitempty"`
	WebOfScience    *int       `json:"citations_web_of_science,omitempty"`
	Scopus          *int       `json:"citations_scopus,omitempty"`
	LastUpdated     *time.Time `json:"citations_last_updated,omitempty"`
}

type PublicationInput struct {
	Id               int64    `json:"id"`
	FacultyId        string   `json:"faculty_id"`
	Title            string   `json:"title"`
	Abstract         string   `json:"abstract"`
	Authors          string   `json:"authors"`
	PublicationDate  string   `json:"publication_date"`
	PublicationType  string   `json:"publication_type"`
	PublicationVenue string   `json:"publication_venue"`
	DOI              string   `json:"doi"`
	URL              string   `json:"url"`
	CitationCount    *int     `json:"citation_count"`
	CoAuthors        []string `json:"co_authors"`
}
