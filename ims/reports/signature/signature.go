package signature

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

// Placeholder names rendered when no matching record exists. The report
// remains printable either way, a blank sign-off block is preferred over a
// failed export.
const (
	PlaceholderFaculty = "Prof. XXXX XXXX"
	PlaceholderHOD     = "Prof. YYY ZZZ"
	PlaceholderUnknown = "Prof. XXX XXX"
)

// AllDepartments is the sentinel department label that disables department
// filtering during signatory resolution.
const AllDepartments = "All Departments"

// DefaultHODFallback is the legacy department to HOD mapping, used only
// when a department cannot be resolved through the database.
var DefaultHODFallback = map[string]string{
	"Computer Engineering":               "Dr. Rahul Khanna",
	"Electronics and Telecommunications": "Dr. Sanjay Kumar",
	"Mechanical Engineering":             "Prof. Amit Sharma",
	"Civil Engineering":                  "Dr. Priya Singh",
	"Information Technology":             "Prof. Rajesh Gupta",
	"Electrical Engineering":             "Dr. Neha Patel",
	"EXTC":                               "Dr. Sanjay Kumar",
}

// Signatory identifies the faculty member signing off a report, plus an
// optional signature image reference.
type Signatory struct {
	Name         string
	SignatureURL string
}

// Resolver answers "who signs this report" questions. Lookups never return
// an error: any failure degrades to a placeholder name so report rendering
// cannot be blocked by missing sign-off data.
type Resolver struct {
	db          *gorm.DB
	hodFallback map[string]string
	logger      *slog.Logger
}

func NewResolver(db *gorm.DB, hodFallback map[string]string) *Resolver {
	if hodFallback == nil {
		hodFallback = DefaultHODFallback
	}
	return &Resolver{
		db:          db,
		hodFallback: hodFallback,
		logger:      slog.With("component", "signature"),
	}
}

type signatoryRow struct {
	Name         string
	SignatureURL string
}

// Signatory resolves the report signatory: the named faculty member if
// facultyId is given, else the first faculty record in the department, else
// a placeholder.
func (r *Resolver) Signatory(departmentName, facultyId string) Signatory {
	if facultyId != "" {
		var row signatoryRow
		err := r.db.Table("faculty").
			Select("faculty.f_name as name, faculty_details.signature_url").
			Joins("LEFT JOIN faculty_details ON faculty.f_id = faculty_details.f_id").
			Where("faculty.f_id = ?", facultyId).
			Take(&row).Error
		if err == nil {
			if row.Name == "" {
				row.Name = PlaceholderFaculty
			}
			return Signatory{Name: row.Name, SignatureURL: row.SignatureURL}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("signatory lookup by faculty id failed", "faculty_id", facultyId, "error", err)
			return Signatory{Name: PlaceholderFaculty}
		}
	}

	query := r.db.Table("faculty").
		Select("faculty.f_name as name, faculty_details.signature_url").
		Joins("LEFT JOIN faculty_details ON faculty.f_id = faculty_details.f_id")
	if departmentName != "" && departmentName != AllDepartments {
		query = query.Where("faculty.f_dept = ?", departmentName)
	}

	var row signatoryRow
	err := query.Order("faculty.f_id").Take(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("signatory lookup by department failed", "department", departmentName, "error", err)
		}
		return Signatory{Name: PlaceholderFaculty}
	}
	if row.Name == "" {
		row.Name = PlaceholderFaculty
	}
	return Signatory{Name: row.Name, SignatureURL: row.SignatureURL}
}

// HODForFaculty resolves the head of the given faculty member's department
// by chaining faculty -> department -> department_details -> faculty.
func (r *Resolver) HODForFaculty(facultyId string) string {
	if facultyId == "" {
		r.logger.Warn("no faculty id provided for hod lookup")
		return PlaceholderHOD
	}

	var hodName string
	err := r.db.Table("faculty AS logged").
		Select("hod.f_name").
		Joins("INNER JOIN department d ON d.dept_name = logged.f_dept").
		Joins("INNER JOIN department_details dd ON dd.dept_id = d.dept_id").
		Joins("INNER JOIN faculty hod ON hod.f_id = dd.hod_id").
		Where("logged.f_id = ?", facultyId).
		Limit(1).
		Scan(&hodName).Error
	if err != nil {
		r.logger.Error("hod lookup failed", "faculty_id", facultyId, "error", err)
		return PlaceholderHOD
	}
	if hodName != "" {
		return hodName
	}

	var dept string
	err = r.db.Table("faculty").Select("f_dept").Where("f_id = ?", facultyId).Limit(1).Scan(&dept).Error
	if err != nil || dept == "" {
		return PlaceholderHOD
	}

	// If the department row exists its HOD is genuinely unset, so report the
	// placeholder. Departments missing from the department table fall through
	// to the name-keyed lookup and its hardcoded backup mapping.
	var count int64
	if err := r.db.Table("department").Where("dept_name = ?", dept).Count(&count).Error; err == nil && count > 0 {
		return PlaceholderHOD
	}

	return r.HODForDepartment(dept)
}

// HODForDepartment resolves a department's head by name, falling back to
// the configured department mapping when the database has no answer.
func (r *Resolver) HODForDepartment(departmentName string) string {
	var hodName string
	err := r.db.Table("faculty").
		Select("faculty.f_name").
		Joins("INNER JOIN department_details dd ON faculty.f_id = dd.hod_id").
		Joins("INNER JOIN department d ON dd.dept_id = d.dept_id").
		Where("d.dept_name = ?", departmentName).
		Limit(1).
		Scan(&hodName).Error
	if err != nil {
		r.logger.Error("hod lookup by department failed", "department", departmentName, "error", err)
		return r.fallbackHOD(departmentName)
	}
	if hodName != "" {
		return hodName
	}
	return r.fallbackHOD(departmentName)
}

func (r *Resolver) fallbackHOD(departmentName string) string {
	if name, ok := r.hodFallback[departmentName]; ok {
		return name
	}
	return PlaceholderUnknown
}
