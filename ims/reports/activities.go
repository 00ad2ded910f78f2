package reports

import (
	"time"

	"ims/ims/api"

	"gorm.io/gorm"
)

// facultyScope applies the shared filter precedence for activity reports:
// an explicit faculty id wins over the department filter.
func facultyScope(filter Filter) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if filter.FacultyId != "" {
			return query.Where("f.f_id = ?", filter.FacultyId)
		}
		if filter.Department != "" {
			return query.Where("f.f_dept = ?", filter.Department)
		}
		return query
	}
}

type publicationRecord struct {
	FacultyName     string
	Title           string
	Venue           string
	PublicationType string
	PublicationDate *time.Time
	DOI             string
}

func aggregatePublications(g *Generator, filter Filter) (TableData, error) {
	var records []publicationRecord
	err := g.db.Table("faculty_publications AS p").
		Select(`f.f_name AS faculty_name, p.title, p.publication_venue AS venue,
			p.publication_type, p.publication_date, p.doi`).
		Joins("JOIN faculty f ON p.faculty_id = f.f_id").
		Scopes(facultyScope(filter)).
		Order("p.publication_date DESC, f.f_name").
		Scan(&records).Error
	if err != nil {
		return TableData{}, err
	}

	columns := []string{"faculty_name", "Title", "Journal_Name", "Publication_Type", "Publication_Date", "Impact_Factor", "DOI"}
	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.PublicationDate) {
			continue
		}
		rows = append(rows, api.Row{
			"faculty_name":     rec.FacultyName,
			"Title":            rec.Title,
			"Journal_Name":     rec.Venue,
			"Publication_Type": rec.PublicationType,
			"Publication_Date": formatDate(rec.PublicationDate),
			"Impact_Factor":    "",
			"DOI":              rec.DOI,
		})
	}
	return TableData{Columns: columns, Rows: rows}, nil
}

type projectRecord struct {
	FacultyName   string
	Title         string
	FundingAgency string
	Amount        string
	YearOfAward   *time.Time
	Status        string
}

func aggregateResearchProjects(g *Generator, filter Filter) (TableData, error) {
	var records []projectRecord
	err := g.db.Table("research_project_consultancies AS rp").
		Select(`f.f_name AS faculty_name, rp.name_of_project_endownment AS title,
			rp.name_of_the_funding_agency AS funding_agency, rp.amount_sanctioned AS amount,
			rp.year_of_award, rp.status`).
		Joins("JOIN faculty f ON rp.user_id = f.f_id").
		Scopes(facultyScope(filter)).
		Order("rp.year_of_award DESC, f.f_name").
		Scan(&records).Error
	if err != nil {
		return TableData{}, err
	}

	columns := []string{"faculty_name", "Title", "Funding_Agency", "Amount", "Start_Date", "End_Date", "Status"}
	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.YearOfAward) {
			continue
		}
		rows = append(rows, api.Row{
			"faculty_name":   rec.FacultyName,
			"Title":          rec.Title,
			"Funding_Agency": rec.FundingAgency,
			"Amount":         rec.Amount,
			"Start_Date":     formatDate(rec.YearOfAward),
			"End_Date":       "",
			"Status":         rec.Status,
		})
	}
	return TableData{Columns: columns, Rows: rows}, nil
}

type contributionRecord struct {
	FacultyName      string
	ContributionType string
	Description      string
	ContributionDate *time.Time
	RecognizedBy     string
	AwardReceived    string
	Remarks          string
}

func aggregateContributions(g *Generator, filter Filter) (TableData, error) {
	var records []contributionRecord
	err := g.db.Table("faculty_contributions AS c").
		Select(`f.f_name AS faculty_name, c.contribution_type, c.description,
			c.contribution_date, c.recognized_by, c.award_received, c.remarks`).
		Joins("JOIN faculty f ON c.f_id = f.f_id").
		Scopes(facultyScope(filter)).
		Order("c.contribution_date DESC, f.f_name").
		Scan(&records).Error
	if err != nil {
		return TableData{}, err
	}

	columns := []string{"faculty_name", "Contribution_Type", "Description", "Date", "Recognized_By", "Award_Received", "Remarks"}
	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.ContributionDate) {
			continue
		}
		rows = append(rows, api.Row{
			"faculty_name":      rec.FacultyName,
			"Contribution_Type": rec.ContributionType,
			"Description":       rec.Description,
			"Date":              formatDate(rec.ContributionDate),
			"Recognized_By":     rec.RecognizedBy,
			"Award_Received":    rec.AwardReceived,
			"Remarks":           rec.Remarks,
		})
	}
	return TableData{Columns: columns, Rows: rows}, nil
}

type workshopRecord struct {
	FacultyName string
	Title       string
	Venue       string
	StartDate   *time.Time
	EndDate     *time.Time
	Role        string
}

func aggregateWorkshops(g *Generator, filter Filter) (TableData, error) {
	var records []workshopRecord
	err := g.db.Table("faculty_workshops AS w").
		Select("f.f_name AS faculty_name, w.title, w.venue, w.start_date, w.end_date, w.role").
		Joins("JOIN faculty f ON w.faculty_id = f.f_id").
		Scopes(facultyScope(filter)).
		Order("w.start_date DESC, f.f_name").
		Scan(&records).Error
	if err != nil {
		return TableData{}, err
	}

	columns := []string{"faculty_name", "Workshop_Name", "Organization", "Start_Date", "End_Date", "Role"}
	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.StartDate) {
			continue
		}
		rows = append(rows, api.Row{
			"faculty_name":  rec.FacultyName,
			"Workshop_Name": rec.Title,
			"Organization":  rec.Venue,
			"Start_Date":    formatDate(rec.StartDate),
			"End_Date":      formatDate(rec.EndDate),
			"Role":          rec.Role,
		})
	}
	return TableData{Columns: columns, Rows: rows}, nil
}

type membershipRecord struct {
	FacultyName          string
	Organization         string
	MembershipType       string
	StartDate            *time.Time
	EndDate              *time.Time
	OrganizationCategory string
}

func aggregateMemberships(g *Generator, filter Filter) (TableData, error) {
	var records []membershipRecord
	err := g.db.Table("faculty_memberships AS m").
		Select(`f.f_name AS faculty_name, m.organization, m.membership_type,
			m.start_date, m.end_date, m.organization_category`).
		Joins("JOIN faculty f ON m.faculty_id = f.f_id").
		Scopes(facultyScope(filter)).
		Order("m.start_date DESC, f.f_name").
		Scan(&records).Error
	if err != nil {
		return TableData{}, err
	}

	columns := []string{"faculty_name", "Organization_Name", "Membership_Type", "Start_Date", "End_Date", "Position_Held", "Status"}
	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.StartDate) {
			continue
		}
		rows = append(rows, api.Row{
			"faculty_name":      rec.FacultyName,
			"Organization_Name": rec.Organization,
			"Membership_Type":   rec.MembershipType,
			"Start_Date":        formatDate(rec.StartDate),
			"End_Date":          formatDate(rec.EndDate),
			"Position_Held":     "",
			"Status":            rec.OrganizationCategory,
		})
	}
	return TableData{Columns: columns, Rows: rows}, nil
}

type awardRecord struct {
	FacultyName          string
	AwardName            string
	AwardingOrganization string
	AwardDate            *time.Time
	Category             string
	AwardDescription     string
}

func aggregateAwards(g *Generator, filter Filter) (TableData, error) {
	var records []awardRecord
	err := g.db.Table("faculty_awards AS a").
		Select(`f.f_name AS faculty_name, a.award_name, a.awarding_organization,
			a.award_date, a.category, a.award_description`).
		Joins("JOIN faculty f ON a.faculty_id = f.f_id").
		Scopes(facultyScope(filter)).
		Order("a.award_date DESC, f.f_name").
		Scan(&records).Error
	if err != nil {
		return TableData{}, err
	}

	columns := []string{"faculty_name", "Award_Name", "Awarding_Organization", "Date_Received", "Category", "Description"}
	rows := make([]api.Row, 0, len(records))
	for _, rec := range records {
		if !yearMatches(filter.Year, rec.AwardDate) {
			continue
		}
		rows = append(rows, api.Row{
			"faculty_name":          rec.FacultyName,
			"Award_Name":            rec.AwardName,
			"Awarding_Organization": rec.AwardingOrganization,
			"Date_Received":         formatDate(rec.AwardDate),
			"Category":              rec.Category,
			"Description":           rec.AwardDescription,
		})
	}
	return TableData{Columns: columns, Rows: rows}, nil
}
