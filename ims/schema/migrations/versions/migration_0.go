package versions

import (
	"time"

	"gorm.io/gorm"
)

// The types below are frozen copies of the schema as it existed at this
// migration, so later schema edits do not silently rewrite history.

type migration0Faculty struct {
	FacultyId string `gorm:"column:f_id;primaryKey"`
	Name      string `gorm:"column:f_name"`
	Dept      string `gorm:"column:f_dept"`
	Email     string `gorm:"column:email"`
	Password  string `gorm:"column:password"`
	Role      string `gorm:"column:role"`
}

func (migration0Faculty) TableName() string { return "faculty" }

type migration0FacultyDetails struct {
	FacultyId          string     `gorm:"column:f_id;primaryKey"`
	CurrentDesignation string     `gorm:"column:current_designation"`
	HighestDegree      string     `gorm:"column:highest_degree"`
	Experience         int        `gorm:"column:experience"`
	DateOfJoining      *time.Time `gorm:"column:date_of_joining"`
	SignatureURL       string     `gorm:"column:signature_url"`
}

func (migration0FacultyDetails) TableName() string { return "faculty_details" }

type migration0Department struct {
	DeptId   int64  `gorm:"column:dept_id;primaryKey"`
	DeptName string `gorm:"column:dept_name"`
}

func (migration0Department) TableName() string { return "department" }

type migration0DepartmentDetails struct {
	DeptId      int64  `gorm:"column:dept_id;primaryKey"`
	HODId       string `gorm:"column:hod_id"`
	Vision      string `gorm:"column:vision"`
	Mission     string `gorm:"column:mission"`
	ContactInfo string `gorm:"column:contact_info"`
}

func (migration0DepartmentDetails) TableName() string { return "department_details" }

type migration0Student struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username"`
	Branch   string `gorm:"column:branch"`
	Division string `gorm:"column:division"`
	Email    string `gorm:"column:email"`
}

func (migration0Student) TableName() string { return "student" }

type migration0FacultyPublication struct {
	Id               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FacultyId        string     `gorm:"column:faculty_id;index"`
	Title            string     `gorm:"column:title"`
	Abstract         string     `gorm:"column:abstract"`
	Authors          string     `gorm:"column:authors"`
	PublicationDate  *time.Time `gorm:"column:publication_date"`
	PublicationType  string     `gorm:"column:publication_type"`
	PublicationVenue string     `gorm:"column:publication_venue"`
	DOI              string     `gorm:"column:doi"`
	URL              string     `gorm:"column:url"`
	CitationCount    *int       `gorm:"column:citation_count"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (migration0FacultyPublication) TableName() string { return "faculty_publications" }

type migration0PublicationCoAuthor struct {
	Id            int64  `gorm:"column:id;primaryKey;autoIncrement"`
	PublicationId int64  `gorm:"column:publication_id;index"`
	FacultyId     string `gorm:"column:faculty_id"`
	AuthorOrder   int    `gorm:"column:author_order"`
}

func (migration0PublicationCoAuthor) TableName() string { return "publication_co_authors" }

type migration0BookChapter struct {
	Id              int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FacultyId       string     `gorm:"column:faculty_id;index"`
	Title           string     `gorm:"column:title"`
	Authors         string     `gorm:"column:authors"`
	PublicationDate *time.Time `gorm:"column:publication_date"`
	Publisher       string     `gorm:"column:publisher"`
	ISBN            string     `gorm:"column:isbn"`
	Status          string     `gorm:"column:status"`
}

func (migration0BookChapter) TableName() string { return "bookschapter" }

type migration0ResearchProjectConsultancy struct {
	Id                      int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserId                  string     `gorm:"column:user_id;index"`
	NameOfProjectEndownment string     `gorm:"column:name_of_project_endownment"`
	PrincipalInvestigator   string     `gorm:"column:name_of_principal_investigator_coinvestigator"`
	PrincipalDepartment     string     `gorm:"column:department_of_principal_investigator"`
	YearOfAward             *time.Time `gorm:"column:year_of_award"`
	AmountSanctioned        string     `gorm:"column:amount_sanctioned"`
	DurationOfProject       string     `gorm:"column:duration_of_project"`
	FundingAgency           string     `gorm:"column:name_of_the_funding_agency"`
	TypeGovtNonGovt         string     `gorm:"column:type_govt_non_govt"`
	Status                  string     `gorm:"column:status"`
}

func (migration0ResearchProjectConsultancy) TableName() string {
	return "research_project_consultancies"
}

type migration0FacultyAward struct {
	Id                   int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FacultyId            string     `gorm:"column:faculty_id;index"`
	AwardName            string     `gorm:"column:award_name"`
	AwardingOrganization string     `gorm:"column:awarding_organization"`
	AwardDate            *time.Time `gorm:"column:award_date"`
	Category             string     `gorm:"column:category"`
	AwardDescription     string     `gorm:"column:award_description"`
}

func (migration0FacultyAward) TableName() string { return "faculty_awards" }

type migration0FacultyWorkshop struct {
	Id        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FacultyId string     `gorm:"column:faculty_id;index"`
	Title     string     `gorm:"column:title"`
	Venue     string     `gorm:"column:venue"`
	Role      string     `gorm:"column:role"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
}

func (migration0FacultyWorkshop) TableName() string { return "faculty_workshops" }

type migration0FacultyMembership struct {
	Id                   int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FacultyId            string     `gorm:"column:faculty_id;index"`
	Organization         string     `gorm:"column:organization"`
	MembershipType       string     `gorm:"column:membership_type"`
	OrganizationCategory string     `gorm:"column:organization_category"`
	StartDate            *time.Time `gorm:"column:start_date"`
	EndDate              *time.Time `gorm:"column:end_date"`
}

func (migration0FacultyMembership) TableName() string { return "faculty_memberships" }

type migration0FacultyContribution struct {
	Id               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FacultyId        string     `gorm:"column:f_id;index"`
	ContributionType string     `gorm:"column:contribution_type"`
	Description      string     `gorm:"column:description"`
	ContributionDate *time.Time `gorm:"column:contribution_date"`
	RecognizedBy     string     `gorm:"column:recognized_by"`
	AwardReceived    string     `gorm:"column:award_received"`
	Remarks          string     `gorm:"column:remarks"`
}

func (migration0FacultyContribution) TableName() string { return "faculty_contributions" }

func Migration0(db *gorm.DB) error {
	return db.AutoMigrate(
		&migration0Faculty{}, &migration0FacultyDetails{}, &migration0Department{},
		&migration0DepartmentDetails{}, &migration0Student{}, &migration0FacultyPublication{},
		&migration0PublicationCoAuthor{}, &migration0BookChapter{},
		&migration0ResearchProjectConsultancy{}, &migration0FacultyAward{},
		&migration0FacultyWorkshop{}, &migration0FacultyMembership{},
		&migration0FacultyContribution{},
	)
}
