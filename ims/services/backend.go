package services

import (
	"ims/ims/archive"
	"ims/ims/monitoring"
	"ims/ims/reports"
	"ims/ims/services/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type BackendService struct {
	reports      *ReportService
	departments  *DepartmentService
	publications *PublicationService

	sessions auth.SessionVerifier
}

func NewBackend(db *gorm.DB, generator *reports.Generator, store *archive.Store, sessions auth.SessionVerifier) *BackendService {
	return &BackendService{
		reports:      NewReportService(generator, store),
		departments:  NewDepartmentService(db, generator),
		publications: NewPublicationService(db),
		sessions:     sessions,
	}
}

func (s *BackendService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(monitoring.HandlerMetrics)

	r.Mount("/reports", s.reports.Routes())
	r.Mount("/departments", s.departments.Routes())

	r.With(auth.Middleware(s.sessions)).Mount("/faculty/publications", s.publications.Routes())

	return r
}
