package services_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ims/ims/api"
	"ims/ims/archive"
	"ims/ims/pdf"
	"ims/ims/reports"
	"ims/ims/reports/signature"
	"ims/ims/schema"
	"ims/ims/services"
	"ims/ims/services/auth"

	reader "github.com/ledongthuc/pdf"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type mockSessions struct{}

func (mockSessions) VerifySession(r *http.Request) (auth.User, error) {
	username := r.Header.Get("X-Test-User")
	if username == "" {
		return auth.User{}, fmt.Errorf("no session")
	}
	role := r.Header.Get("X-Test-Role")
	if role == "" {
		role = auth.RoleFaculty
	}
	return auth.User{Username: username, Role: role}, nil
}

func createBackend(t *testing.T) (*gorm.DB, http.Handler) {
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

	store, err := archive.Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	generator := reports.NewGenerator(db, signature.NewResolver(db, nil), pdf.Assets{})
	backend := services.NewBackend(db, generator, store, mockSessions{})

	return db, backend.Routes()
}

func seedDepartment(t *testing.T, db *gorm.DB) {
	if err := db.Create(&schema.Department{DeptId: 1, DeptName: "Computer Engineering"}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&schema.DepartmentDetails{DeptId: 1, HODId: "CS104"}).Error; err != nil {
		t.Fatal(err)
	}

	members := []struct {
		id, name, designation string
	}{
		{"CS101", "Asha Iyer", "Professor"},
		{"CS102", "Manoj Pillai", "Assistant Professor"},
		{"CS104", "Vikram Joshi", "Associate Professor"},
	}
	for _, member := range members {
		err := db.Create(&schema.Faculty{
			FacultyId: member.id, Name: member.name, Dept: "Computer Engineering",
			Email: member.id + "@fcrit.ac.in", Role: "faculty",
		}).Error
		if err != nil {
			t.Fatal(err)
		}
		joined := time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC)
		err = db.Create(&schema.FacultyDetails{
			FacultyId: member.id, CurrentDesignation: member.designation,
			HighestDegree: "PhD", Experience: 12, DateOfJoining: &joined,
		}).Error
		if err != nil {
			t.Fatal(err)
		}
	}
}

func doRequest(t *testing.T, handler http.Handler, method, endpoint, user string, body any) *http.Response {
	var reqBody io.Reader
	if body != nil {
		data := new(bytes.Buffer)
		if err := json.NewEncoder(data).Encode(body); err != nil {
			t.Fatal(err)
		}
		reqBody = data
	}

	req := httptest.NewRequest(method, endpoint, reqBody)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Result()
}

func decodeEnvelope(t *testing.T, res *http.Response) (api.Envelope, map[string]any) {
	defer res.Body.Close()

	var envelope api.Envelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatal(err)
	}
	data, _ := envelope.Data.(map[string]any)
	return envelope, data
}

func pdfText(t *testing.T, fileBytes []byte) string {
	r, err := reader.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		t.Fatal(err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		pageText, err := r.Page(i).GetPlainText(nil)
		if err != nil {
			t.Fatal(err)
		}
		textBuilder.WriteString(pageText)
	}
	return textBuilder.String()
}

func TestHODLookup(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		RequestType: "hod-lookup", FacultyId: "CS101",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}

	var lookup api.HODLookupResponse
	if err := json.NewDecoder(res.Body).Decode(&lookup); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if !lookup.Success || lookup.HodName != "Vikram Joshi" {
		t.Fatalf("unexpected lookup response: %+v", lookup)
	}

	res = doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{RequestType: "hod-lookup"})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without faculty id, got %d", res.StatusCode)
	}
	envelope, _ := decodeEnvelope(t, res)
	if envelope.Success || envelope.Message != "Faculty ID is required for HOD lookup" {
		t.Fatalf("unexpected error envelope: %+v", envelope)
	}
}

func TestReportPDFAndArchiveDownload(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.FacultyReport, DepartmentId: "1",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	envelope, data := decodeEnvelope(t, res)
	if !envelope.Success || envelope.Message != "Report generated successfully" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	if data["pdfBase64"] == "" || data["pdfBase64"] == nil {
		t.Fatal("expected pdf content")
	}
	filename, _ := data["filename"].(string)
	if !strings.HasPrefix(filename, "faculty_report_1_") {
		t.Fatalf("unexpected filename: %s", filename)
	}

	reportId, _ := data["reportId"].(string)
	if reportId == "" {
		t.Fatal("expected a report id")
	}

	res = doRequest(t, backend, http.MethodGet, "/reports?id="+reportId, "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected download status: %d", res.StatusCode)
	}
	if res.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type: %s", res.Header.Get("Content-Type"))
	}
	if !strings.Contains(res.Header.Get("Content-Disposition"), filename) {
		t.Fatalf("unexpected content disposition: %s", res.Header.Get("Content-Disposition"))
	}
	content, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil || len(content) == 0 {
		t.Fatalf("expected pdf bytes, err=%v", err)
	}
}

func TestReportPDFWithNoRowsStillSucceeds(t *testing.T) {
	_, backend := createBackend(t)

	res := doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.WorkshopsReport,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	envelope, data := decodeEnvelope(t, res)
	if !envelope.Success {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	if content, _ := data["pdfBase64"].(string); content == "" {
		t.Fatal("expected a rendered pdf even with no data")
	}
}

func TestDownloadFallsBackToDemoReport(t *testing.T) {
	_, backend := createBackend(t)

	res := doRequest(t, backend, http.MethodGet, "/reports", "", nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %d", res.StatusCode)
	}
	envelope, _ := decodeEnvelope(t, res)
	if envelope.Message != "Report ID is required" {
		t.Fatalf("unexpected message: %s", envelope.Message)
	}

	// An id the archive has never seen serves a fresh demo report.
	res = doRequest(t, backend, http.MethodGet, "/reports?id=0b1e2f7e-9a53-4df0-8a52-0a4fd06f47a1", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	if res.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type: %s", res.Header.Get("Content-Type"))
	}
	res.Body.Close()
}

func TestReportJSONFormats(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.FacultyReport, DepartmentId: "1", Format: api.FormatJSON,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	envelope, data := decodeEnvelope(t, res)
	if !envelope.Success || envelope.Message != "Report data retrieved successfully" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	rows, ok := data["tableData"].([]any)
	if !ok || len(rows) != 3 {
		t.Fatalf("expected 3 faculty rows, got %v", data["tableData"])
	}
	columns, ok := data["columns"].([]any)
	if !ok || len(columns) != 6 {
		t.Fatalf("unexpected columns: %v", data["columns"])
	}

	res = doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.FullReport, DepartmentId: "1", Format: api.FormatJSON,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	_, data = decodeEnvelope(t, res)
	combined, ok := data["tableData"].(map[string]any)
	if !ok {
		t.Fatalf("expected combined table data, got %v", data["tableData"])
	}
	for _, section := range []string{"faculty", "student", "research"} {
		if _, ok := combined[section]; !ok {
			t.Fatalf("combined data missing %s section", section)
		}
	}
}

func TestReportCSVAndExcelFormats(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.FacultyReport, DepartmentId: "1", Format: api.FormatCSV,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	_, data := decodeEnvelope(t, res)
	content, _ := data["csv"].(string)
	if !strings.HasPrefix(content, "name,designation,dateOfJoining") {
		t.Fatalf("unexpected csv content: %q", content)
	}
	if filename, _ := data["filename"].(string); !strings.HasSuffix(filename, ".csv") {
		t.Fatalf("unexpected csv filename: %v", data["filename"])
	}

	res = doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.FacultyReport, DepartmentId: "1", Format: api.FormatExcel,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	_, data = decodeEnvelope(t, res)
	if content, _ := data["excelBase64"].(string); content == "" {
		t.Fatal("expected excel content")
	}
	if filename, _ := data["filename"].(string); !strings.HasSuffix(filename, ".xlsx") {
		t.Fatalf("unexpected excel filename: %v", data["filename"])
	}

	res = doRequest(t, backend, http.MethodPost, "/reports", "", api.CreateReportRequest{
		ReportType: api.FullReport, DepartmentId: "1", Format: api.FormatCSV,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	_, data = decodeEnvelope(t, res)
	content, _ = data["csv"].(string)
	for _, section := range []string{"Faculty", "Student", "Research"} {
		if !strings.Contains(content, section+"\n") {
			t.Fatalf("full csv missing %s section: %q", section, content)
		}
	}
}

func TestDepartmentReportDownload(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodGet, "/reports/department?reportType=publications&departmentId=1", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	if res.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type: %s", res.Header.Get("Content-Type"))
	}
	disposition := res.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "publications-report-Computer Engineering-all.pdf") {
		t.Fatalf("unexpected content disposition: %s", disposition)
	}
	res.Body.Close()

	res = doRequest(t, backend, http.MethodGet, "/reports/department?reportType=publications", "", nil)
	envelope, _ := decodeEnvelope(t, res)
	if res.StatusCode != http.StatusBadRequest || envelope.Message != "Report type and department ID are required" {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, envelope)
	}

	res = doRequest(t, backend, http.MethodGet, "/reports/department?reportType=faculty&departmentId=1", "", nil)
	envelope, _ = decodeEnvelope(t, res)
	if res.StatusCode != http.StatusBadRequest || envelope.Message != "Invalid report type" {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, envelope)
	}

	res = doRequest(t, backend, http.MethodGet, "/reports/department?reportType=awards&departmentId=99", "", nil)
	envelope, _ = decodeEnvelope(t, res)
	if res.StatusCode != http.StatusNotFound || envelope.Message != "Department not found" {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, envelope)
	}
}

func TestDepartmentReportFacultyFilter(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	published := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)
	publications := []schema.FacultyPublication{
		{FacultyId: "CS101", Title: "Edge Caching Strategies", Authors: "Asha Iyer",
			PublicationDate: &published, PublicationType: "Journal", PublicationVenue: "IEEE TKDE"},
		{FacultyId: "CS102", Title: "Compiler Fuzzing Harnesses", Authors: "Manoj Pillai",
			PublicationDate: &published, PublicationType: "Conference", PublicationVenue: "COMSNETS"},
	}
	for i := range publications {
		if err := db.Create(&publications[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	res := doRequest(t, backend, http.MethodGet,
		"/reports/department?reportType=publications&departmentId=1&facultyId=CS101&year=2023", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	content, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}

	text := pdfText(t, content)
	if !strings.Contains(text, "Edge Caching Strategies") {
		t.Fatal("expected the scoped faculty member's publication in the report")
	}
	if strings.Contains(text, "Compiler Fuzzing Harnesses") {
		t.Fatal("report contains a publication outside the faculty filter")
	}
	if !strings.Contains(text, "Faculty ID: CS101") {
		t.Fatal("expected the faculty filter in the summary line")
	}
	if !strings.Contains(text, "Academic Year: 2023-2024") {
		t.Fatal("expected the year filter in the summary line")
	}
}

func TestPublicationCRUD(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodPost, "/faculty/publications", "CS101", api.PublicationInput{
		Title: "Missing Fields",
	})
	envelope, _ := decodeEnvelope(t, res)
	if res.StatusCode != http.StatusBadRequest || envelope.Message != "Title, publication date, type, and venue are required" {
		t.Fatalf("unexpected validation response: %d %+v", res.StatusCode, envelope)
	}

	res = doRequest(t, backend, http.MethodPost, "/faculty/publications", "CS101", api.PublicationInput{
		Title: "Streaming Query Optimizers", Authors: "Asha Iyer",
		PublicationDate: "2023-03-01", PublicationType: "Journal", PublicationVenue: "IEEE TKDE",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	envelope, data := decodeEnvelope(t, res)
	if !envelope.Success || envelope.Message != "Publication added successfully" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	id := int64(data["id"].(float64))

	res = doRequest(t, backend, http.MethodGet, "/faculty/publications", "CS101", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected list status: %d", res.StatusCode)
	}
	var listing struct {
		Success bool              `json:"success"`
		Data    []api.Publication `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if len(listing.Data) != 1 || listing.Data[0].Title != "Streaming Query Optimizers" {
		t.Fatalf("unexpected listing: %+v", listing.Data)
	}

	update := api.PublicationInput{
		Title: "Streaming Query Optimizers, Revisited", Authors: "Asha Iyer",
		PublicationDate: "2023-06-01", PublicationType: "Journal", PublicationVenue: "IEEE TKDE",
	}

	res = doRequest(t, backend, http.MethodPut, fmt.Sprintf("/faculty/publications/%d", id), "CS102", update)
	envelope, _ = decodeEnvelope(t, res)
	if res.StatusCode != http.StatusForbidden || envelope.Message != "Unauthorized to update this publication" {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, envelope)
	}

	res = doRequest(t, backend, http.MethodPut, fmt.Sprintf("/faculty/publications/%d", id), "CS101", update)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected update status: %d", res.StatusCode)
	}

	res = doRequest(t, backend, http.MethodPut, "/faculty/publications/9999", "CS101", update)
	envelope, _ = decodeEnvelope(t, res)
	if res.StatusCode != http.StatusNotFound || envelope.Message != "Publication not found" {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, envelope)
	}

	res = doRequest(t, backend, http.MethodDelete, fmt.Sprintf("/faculty/publications/%d", id), "CS102", nil)
	envelope, _ = decodeEnvelope(t, res)
	if res.StatusCode != http.StatusForbidden || envelope.Message != "Unauthorized to delete this publication" {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, envelope)
	}

	res = doRequest(t, backend, http.MethodDelete, fmt.Sprintf("/faculty/publications/%d", id), "CS101", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected delete status: %d", res.StatusCode)
	}

	var remaining int64
	if err := db.Model(&schema.FacultyPublication{}).Count(&remaining).Error; err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Fatalf("expected no publications left, got %d", remaining)
	}
}

func TestPublicationCoAuthorFanOut(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodPost, "/faculty/publications", "CS101", api.PublicationInput{
		Title: "Edge Caching Strategies", Authors: "Asha Iyer, Manoj Pillai",
		PublicationDate: "2024-01-15", PublicationType: "Conference", PublicationVenue: "COMSNETS",
		CoAuthors: []string{"CS102"},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}

	var mirrored schema.FacultyPublication
	err := db.Where("faculty_id = ? AND title = ?", "CS102", "Edge Caching Strategies").Take(&mirrored).Error
	if err != nil {
		t.Fatalf("expected mirrored publication for co-author: %v", err)
	}
	if mirrored.Authors != "Asha Iyer, Manoj Pillai" {
		t.Fatalf("expected authors rebuilt from faculty names, got %q", mirrored.Authors)
	}

	var link schema.PublicationCoAuthor
	if err := db.Where("faculty_id = ?", "CS102").Take(&link).Error; err != nil {
		t.Fatal(err)
	}
	if link.AuthorOrder != 2 {
		t.Fatalf("expected author order 2, got %d", link.AuthorOrder)
	}

	// An unknown co-author rolls the whole insert back.
	res = doRequest(t, backend, http.MethodPost, "/faculty/publications", "CS101", api.PublicationInput{
		Title: "Doomed Paper", PublicationDate: "2024-01-15", PublicationType: "Conference",
		PublicationVenue: "COMSNETS", CoAuthors: []string{"NOPE"},
	})
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown co-author, got %d", res.StatusCode)
	}
	var count int64
	if err := db.Model(&schema.FacultyPublication{}).Where("title = ?", "Doomed Paper").Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatal("expected transaction rollback to remove the publication")
	}
}

func TestPublicationRequiresSession(t *testing.T) {
	_, backend := createBackend(t)

	res := doRequest(t, backend, http.MethodGet, "/faculty/publications", "", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", res.StatusCode)
	}
	if res.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type: %s", res.Header.Get("Content-Type"))
	}
	envelope, _ := decodeEnvelope(t, res)
	if envelope.Success || envelope.Message == "" {
		t.Fatalf("unexpected error envelope: %+v", envelope)
	}
}

func TestDepartmentFacultyListing(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	published := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	err := db.Create(&schema.FacultyPublication{
		FacultyId: "CS101", Title: "Streaming Query Optimizers", PublicationType: "Journal", PublicationDate: &published,
	}).Error
	if err != nil {
		t.Fatal(err)
	}

	res := doRequest(t, backend, http.MethodGet, "/departments/1/faculty", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	var listing api.DepartmentFacultyResponse
	if err := json.NewDecoder(res.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if !listing.Success || listing.DepartmentName != "Computer Engineering" || len(listing.Data) != 3 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	for _, member := range listing.Data {
		if member.FacultyId == "CS101" && member.PublicationCount != 1 {
			t.Fatalf("expected publication count 1 for CS101, got %d", member.PublicationCount)
		}
	}

	res = doRequest(t, backend, http.MethodGet, "/departments/99/faculty", "", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown department, got %d", res.StatusCode)
	}

	res = doRequest(t, backend, http.MethodGet, "/departments/abc/faculty", "", nil)
	envelope, _ := decodeEnvelope(t, res)
	if res.StatusCode != http.StatusBadRequest || envelope.Message != "Invalid department ID" {
		t.Fatalf("unexpected response for non-numeric id: %d %+v", res.StatusCode, envelope)
	}
}

func TestDepartmentStats(t *testing.T) {
	db, backend := createBackend(t)
	seedDepartment(t, db)

	res := doRequest(t, backend, http.MethodGet, "/departments/1/stats", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	var envelope struct {
		Success bool                `json:"success"`
		Data    api.DepartmentStats `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	stats := envelope.Data
	if !envelope.Success || stats.DepartmentName != "Computer Engineering" || stats.TotalFaculty != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	// No student rows seeded, so the intake estimate applies.
	if stats.TotalStudents != 90 {
		t.Fatalf("expected estimated enrollment 90, got %d", stats.TotalStudents)
	}
	if len(stats.FacultyByDesignation) != 3 {
		t.Fatalf("unexpected designation breakdown: %+v", stats.FacultyByDesignation)
	}
}
