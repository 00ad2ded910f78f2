package schema

import (
	"time"
)

// Table names follow the institute's existing MySQL dump so the importer
// can load production data without a rename pass. Column tags pin the
// legacy naming where it differs from gorm's defaults.

type Faculty struct {
	FacultyId string `gorm:"column:f_id;primaryKey" json:"F_id"`
	Name      string `gorm:"column:f_name" json:"F_name"`
	Dept      string `gorm:"column:f_dept" json:"F_dept"`
	Email     string `gorm:"column:email" json:"Email"`
	Password  string `gorm:"column:password" json:"-"`
	Role      string `gorm:"column:role" json:"Role"`
}

func (Faculty) TableName() string {
	return "faculty"
}

type FacultyDetails struct {
	FacultyId          string     `gorm:"column:f_id;primaryKey" json:"F_id"`
	CurrentDesignation string     `gorm:"column:current_designation" json:"Current_Designation"`
	HighestDegree      string     `gorm:"column:highest_degree" json:"Highest_Degree"`
	Experience         int        `gorm:"column:experience" json:"Experience"`
	DateOfJoining      *time.Time `gorm:"column:date_of_joining" json:"Date_of_Joining"`
	SignatureURL       string     `gorm:"column:signature_url" json:"-"`
}

func (FacultyDetails) TableName() string {
	return "faculty_details"
}

type Department struct {
	DeptId   int64  `gorm:"column:dept_id;primaryKey" json:"Dept_id"`
	DeptName string `gorm:"column:dept_name" json:"Dept_name"`
}

func (Department) TableName() string {
	return "department"
}

type DepartmentDetails struct {
	DeptId      int64  `gorm:"column:dept_id;primaryKey" json:"Dept_id"`
	HODId       string `gorm:"column:hod_id" json:"HOD_ID"`
	Vision      string `gorm:"column:vision" json:"Vision"`
	Mission     string `gorm:"column:mission" json:"Mission"`
	ContactInfo string `gorm:"column:contact_info" json:"Contact_Info"`
}

func (DepartmentDetails) TableName() string {
	return "department_details"
}

// Student rows come from the admissions system. Only the columns the
// reports consume are mapped.
type Student struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"column:username" json:"username"`
	Branch   string `gorm:"column:branch" json:"branch"`
	Division string `gorm:"column:division" json:"division"`
	Email    string `gorm:"column:email" json:"email"`
}

func (Student) TableName() string {
	return "student"
}

type FacultyPublication struct {
	Id                       int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyId                string     `gorm:"column:faculty_id;index" json:"faculty_id"`
	Title                    string     `gorm:"column:title" json:"title"`
	Abstract                 string     `gorm:"column:abstract" json:"abstract"`
	Authors                  string     `gorm:"column:authors" json:"authors"`
	PublicationDate          *time.Time `gorm:"column:publication_date" json:"publication_date"`
	PublicationType          string     `gorm:"column:publication_type" json:"publication_type"`
	PublicationVenue         string     `gorm:"column:publication_venue" json:"publication_venue"`
	DOI                      string     `gorm:"column:doi" json:"doi"`
	URL                      string     `gorm:"column:url" json:"url"`
	CitationCount            *int       `gorm:"column:citation_count" json:"citation_count"`
	CitationsCrossref        *int       `gorm:"column:citations_crossref" json:"citations_crossref"`
	CitationsSemanticScholar *int       `gorm:"column:citations_semantic_scholar" json:"citations_semantic_scholar"`
	CitationsGoogleScholar   *int       `gorm:"column:citations_google_scholar" json:"citations_google_scholar"`
	CitationsWebOfScience    *int       `gorm:"column:citations_web_of_science" json:"citations_web_of_science"`
	CitationsScopus          *int       `gorm:"column:citations_scopus" json:"citations_scopus"`
	CitationsLastUpdated     *time.Time `gorm:"column:citations_last_updated" json:"citations_last_updated"`
	CreatedAt                time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (FacultyPublication) TableName() string {
	return "faculty_publications"
}

type PublicationCoAuthor struct {
	Id            int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PublicationId int64  `gorm:"column:publication_id;index" json:"publication_id"`
	FacultyId     string `gorm:"column:faculty_id" json:"faculty_id"`
	AuthorOrder   int    `gorm:"column:author_order" json:"author_order"`
}

func (PublicationCoAuthor) TableName() string {
	return "publication_co_authors"
}

type BookChapter struct {
	Id              int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyId       string     `gorm:"column:faculty_id;index" json:"faculty_id"`
	Title           string     `gorm:"column:title" json:"title"`
	Authors         string     `gorm:"column:authors" json:"authors"`
	PublicationDate *time.Time `gorm:"column:publication_date" json:"publication_date"`
	Publisher       string     `gorm:"column:publisher" json:"publisher"`
	ISBN            string     `gorm:"column:isbn" json:"isbn"`
	Status          string     `gorm:"column:status" json:"status"`
}

func (BookChapter) TableName() string {
	return "bookschapter"
}

type ResearchProjectConsultancy struct {
	Id                      int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserId                  string     `gorm:"column:user_id;index" json:"user_id"`
	NameOfProjectEndownment string     `gorm:"column:name_of_project_endownment" json:"name_of_project_endownment"`
	PrincipalInvestigator   string     `gorm:"column:name_of_principal_investigator_coinvestigator" json:"name_of_principal_investigator_coinvestigator"`
	PrincipalDepartment     string     `gorm:"column:department_of_principal_investigator" json:"department_of_principal_investigator"`
	YearOfAward             *time.Time `gorm:"column:year_of_award" json:"year_of_award"`
	AmountSanctioned        string     `gorm:"column:amount_sanctioned" json:"amount_sanctioned"`
	DurationOfProject       string     `gorm:"column:duration_of_project" json:"duration_of_project"`
	FundingAgency           string     `gorm:"column:name_of_the_funding_agency" json:"name_of_the_funding_agency"`
	TypeGovtNonGovt         string     `gorm:"column:type_govt_non_govt" json:"type_govt_non_govt"`
	Status                  string     `gorm:"column:status" json:"status"`
}

func (ResearchProjectConsultancy) TableName() string {
	return "research_project_consultancies"
}

type FacultyAward struct {
	Id                   int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyId            string     `gorm:"column:faculty_id;index" json:"faculty_id"`
	AwardName            string     `gorm:"column:award_name" json:"award_name"`
	AwardingOrganization string     `gorm:"column:awarding_organization" json:"awarding_organization"`
	AwardDate            *time.Time `gorm:"column:award_date" json:"award_date"`
	Category             string     `gorm:"column:category" json:"category"`
	AwardDescription     string     `gorm:"column:award_description" json:"award_description"`
}

func (FacultyAward) TableName() string {
	return "faculty_awards"
}

type FacultyWorkshop struct {
	Id        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyId string     `gorm:"column:faculty_id;index" json:"faculty_id"`
	Title     string     `gorm:"column:title" json:"title"`
	Venue     string     `gorm:"column:venue" json:"venue"`
	Role      string     `gorm:"column:role" json:"role"`
	StartDate *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date"`
}

func (FacultyWorkshop) TableName() string {
	return "faculty_workshops"
}

type FacultyMembership struct {
	Id                   int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyId            string     `gorm:"column:faculty_id;index" json:"faculty_id"`
	Organization         string     `gorm:"column:organization" json:"organization"`
	MembershipType       string     `gorm:"column:membership_type" json:"membership_type"`
	OrganizationCategory string     `gorm:"column:organization_category" json:"organization_category"`
	StartDate            *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate              *time.Time `gorm:"column:end_date" json:"end_date"`
}

func (FacultyMembership) TableName() string {
	return "faculty_memberships"
}

type FacultyContribution struct {
	Id               int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyId        string     `gorm:"column:f_id;index" json:"F_ID"`
	ContributionType string     `gorm:"column:contribution_type" json:"Contribution_Type"`
	Description      string     `gorm:"column:description" json:"Description"`
	ContributionDate *time.Time `gorm:"column:contribution_date" json:"Contribution_Date"`
	RecognizedBy     string     `gorm:"column:recognized_by" json:"Recognized_By"`
	AwardReceived    string     `gorm:"column:award_received" json:"Award_Received"`
	Remarks          string     `gorm:"column:remarks" json:"Remarks"`
}

func (FacultyContribution) TableName() string {
	return "faculty_contributions"
}
