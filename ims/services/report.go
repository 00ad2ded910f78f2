package services

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ims/ims/api"
	"ims/ims/archive"
	"ims/ims/monitoring"
	"ims/ims/reports"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ReportService struct {
	generator *reports.Generator
	archive   *archive.Store
}

func NewReportService(generator *reports.Generator, store *archive.Store) *ReportService {
	return &ReportService{generator: generator, archive: store}
}

func (s *ReportService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", WrapRestHandler(s.CreateReport))
	r.Get("/", WrapRestHandler(s.DownloadReport))
	r.Get("/department", WrapRestHandler(s.DownloadDepartmentReport))

	return r
}

func (s *ReportService) CreateReport(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.CreateReportRequest](r)
	if err != nil {
		return nil, err
	}

	if params.RequestType == "hod-lookup" {
		return s.hodLookup(params)
	}

	if params.ReportType == "" {
		return nil, CodedError(errors.New("Report type is required"), http.StatusBadRequest)
	}

	filter := s.generator.ResolveFilter(params.DepartmentId, params.FacultyId, params.Year)

	switch params.Format {
	case api.FormatJSON:
		return s.reportTableData(params.ReportType, filter)
	case api.FormatExcel:
		return s.reportExcel(params.ReportType, filter)
	case api.FormatCSV:
		return s.reportCSV(params.ReportType, filter)
	default:
		return s.reportPDF(params.ReportType, filter)
	}
}

func (s *ReportService) hodLookup(params api.CreateReportRequest) (any, error) {
	if params.FacultyId == "" {
		return nil, CodedError(errors.New("Faculty ID is required for HOD lookup"), http.StatusBadRequest)
	}

	hodName := s.generator.Signatures.HODForFaculty(params.FacultyId)
	return Raw(api.HODLookupResponse{Success: true, HodName: hodName}), nil
}

// reportTableData serves format:"json" requests. The faculty, student, and
// research kinds return their own table; every other kind returns the
// combined three-section payload.
func (s *ReportService) reportTableData(kind api.ReportKind, filter reports.Filter) (any, error) {
	switch kind {
	case api.FacultyReport, api.StudentReport, api.ResearchReport:
		data, err := s.generator.TableData(kind, filter)
		if err != nil {
			return nil, CodedError(err, reportErrorStatus(err))
		}

		return Raw(api.Envelope{
			Success: true,
			Message: "Report data retrieved successfully",
			Data: api.ReportData{
				ReportType:   kind,
				DepartmentId: filter.DepartmentLabel,
				GeneratedAt:  time.Now(),
				TableData:    data.Rows,
				Columns:      data.Columns,
			},
		}), nil
	}

	combined := api.FullTableData{}
	sections := []struct {
		kind api.ReportKind
		dest *[]api.Row
	}{
		{api.FacultyReport, &combined.Faculty},
		{api.StudentReport, &combined.Student},
		{api.ResearchReport, &combined.Research},
	}
	for _, section := range sections {
		data, err := s.generator.TableData(section.kind, filter)
		if err != nil {
			return nil, CodedError(err, reportErrorStatus(err))
		}
		*section.dest = data.Rows
	}

	return Raw(api.Envelope{
		Success: true,
		Message: "Report data retrieved successfully",
		Data: api.ReportData{
			ReportType:   kind,
			DepartmentId: filter.DepartmentLabel,
			GeneratedAt:  time.Now(),
			TableData:    combined,
		},
	}), nil
}

// reportSections assembles the tables for a spreadsheet or CSV export. A
// full report exports one section per aggregator; everything else is a
// single table named after its kind.
func (s *ReportService) reportSections(kind api.ReportKind, filter reports.Filter) ([]reportSection, error) {
	if kind == api.FullReport {
		parts := []struct {
			name string
			kind api.ReportKind
		}{
			{"Faculty", api.FacultyReport},
			{"Student", api.StudentReport},
			{"Research", api.ResearchReport},
		}

		sections := make([]reportSection, 0, len(parts))
		for _, part := range parts {
			data, err := s.generator.TableData(part.kind, filter)
			if err != nil {
				return nil, CodedError(err, reportErrorStatus(err))
			}
			sections = append(sections, reportSection{Name: part.name, Data: data})
		}
		return sections, nil
	}

	data, err := s.generator.TableData(kind, filter)
	if err != nil {
		return nil, CodedError(err, reportErrorStatus(err))
	}
	return []reportSection{{Name: string(kind), Data: data}}, nil
}

func (s *ReportService) reportExcel(kind api.ReportKind, filter reports.Filter) (any, error) {
	sections, err := s.reportSections(kind, filter)
	if err != nil {
		return nil, err
	}

	content, err := generateExcel(sections)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.ReportsGenerated.WithLabelValues(string(kind), api.FormatExcel).Inc()

	filename := strings.TrimSuffix(s.generator.Filename(kind, filter), ".pdf") + ".xlsx"
	return Raw(api.Envelope{
		Success: true,
		Message: "Report generated successfully",
		Data: api.ReportData{
			ReportType:   kind,
			DepartmentId: filter.DepartmentLabel,
			GeneratedAt:  time.Now(),
			Filename:     filename,
			ExcelBase64:  base64.StdEncoding.EncodeToString(content),
		},
	}), nil
}

func (s *ReportService) reportCSV(kind api.ReportKind, filter reports.Filter) (any, error) {
	sections, err := s.reportSections(kind, filter)
	if err != nil {
		return nil, err
	}

	content, err := generateCSV(sections)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.ReportsGenerated.WithLabelValues(string(kind), api.FormatCSV).Inc()

	filename := strings.TrimSuffix(s.generator.Filename(kind, filter), ".pdf") + ".csv"
	return Raw(api.Envelope{
		Success: true,
		Message: "Report generated successfully",
		Data: api.ReportData{
			ReportType:   kind,
			DepartmentId: filter.DepartmentLabel,
			GeneratedAt:  time.Now(),
			Filename:     filename,
			CSV:          content,
		},
	}), nil
}

func (s *ReportService) reportPDF(kind api.ReportKind, filter reports.Filter) (any, error) {
	content, filename, err := s.generator.GeneratePDF(kind, filter)
	if err != nil {
		return nil, CodedError(err, reportErrorStatus(err))
	}

	entry := archive.Entry{
		Id:              uuid.New(),
		Kind:            kind,
		Filename:        filename,
		DepartmentLabel: filter.DepartmentLabel,
		GeneratedAt:     time.Now(),
		PDF:             content,
	}
	if err := s.archive.Save(entry); err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.ReportsGenerated.WithLabelValues(string(kind), api.FormatPDF).Inc()

	return Raw(api.Envelope{
		Success: true,
		Message: "Report generated successfully",
		Data: api.ReportData{
			ReportId:     entry.Id,
			ReportType:   kind,
			DepartmentId: filter.DepartmentLabel,
			GeneratedAt:  entry.GeneratedAt,
			Filename:     filename,
			PdfBase64:    base64.StdEncoding.EncodeToString(content),
		},
	}), nil
}

// DownloadReport re-serves an archived report by id. An id that is missing
// from the archive or not a uuid at all falls back to a freshly generated
// institution-wide faculty report so shared links never dead-end.
func (s *ReportService) DownloadReport(r *http.Request) (any, error) {
	rawId := r.URL.Query().Get("id")
	if rawId == "" {
		return nil, CodedError(errors.New("Report ID is required"), http.StatusBadRequest)
	}

	if id, err := uuid.Parse(rawId); err == nil {
		entry, err := s.archive.Get(id)
		if err == nil {
			monitoring.ReportsServedFromArchive.WithLabelValues(string(entry.Kind)).Inc()
			return PDFAttachment(entry.Filename, entry.PDF), nil
		}
		if !errors.Is(err, archive.ErrNotFound) {
			return nil, CodedError(err, http.StatusInternalServerError)
		}
	}

	content, filename, err := s.generator.GeneratePDF(api.FacultyReport, reports.Filter{DepartmentLabel: "all"})
	if err != nil {
		return nil, CodedError(err, reportErrorStatus(err))
	}

	monitoring.ReportsGenerated.WithLabelValues(string(api.FacultyReport), api.FormatPDF).Inc()
	return PDFAttachment(filename, content), nil
}

var departmentReportKinds = map[api.ReportKind]bool{
	api.PublicationsReport:     true,
	api.ResearchProjectsReport: true,
	api.ContributionsReport:    true,
	api.WorkshopsReport:        true,
	api.MembershipsReport:      true,
	api.AwardsReport:           true,
}

func (s *ReportService) DownloadDepartmentReport(r *http.Request) (any, error) {
	kind := api.ReportKind(r.URL.Query().Get("reportType"))
	departmentId := r.URL.Query().Get("departmentId")
	facultyId := r.URL.Query().Get("facultyId")
	year := r.URL.Query().Get("year")

	if kind == "" || departmentId == "" {
		return nil, CodedError(errors.New("Report type and department ID are required"), http.StatusBadRequest)
	}

	if !departmentReportKinds[kind] {
		return nil, CodedError(errors.New("Invalid report type"), http.StatusBadRequest)
	}

	filter := reports.Filter{Department: departmentId, DepartmentLabel: departmentId, Year: year}
	if facultyId != "" && facultyId != "all" {
		filter.FacultyId = facultyId
	}
	if id, err := strconv.ParseInt(departmentId, 10, 64); err == nil {
		name, err := s.generator.DepartmentByID(id)
		if err != nil {
			if errors.Is(err, reports.ErrDepartmentNotFound) {
				return nil, CodedError(errors.New("Department not found"), http.StatusNotFound)
			}
			return nil, CodedError(err, http.StatusInternalServerError)
		}
		filter.Department = name
	}

	content, filename, err := s.generator.GenerateDepartmentPDF(kind, filter)
	if err != nil {
		return nil, CodedError(err, reportErrorStatus(err))
	}

	monitoring.ReportsGenerated.WithLabelValues(string(kind), api.FormatPDF).Inc()
	return PDFAttachment(filename, content), nil
}
