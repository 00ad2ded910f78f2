package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ims/ims/api"
	"ims/ims/monitoring"
	"ims/ims/schema"
	"ims/ims/services/auth"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type PublicationService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPublicationService(db *gorm.DB) *PublicationService {
	return &PublicationService{db: db, logger: slog.With("component", "publications")}
}

func (s *PublicationService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", WrapRestHandler(s.List))
	r.Post("/", WrapRestHandler(s.Create))
	r.Put("/{publication_id}", WrapRestHandler(s.Update))
	r.Delete("/{publication_id}", WrapRestHandler(s.Delete))

	return r
}

// targetFacultyId resolves which faculty's records the request operates
// on. Faculty accounts are pinned to their own id; hod and admin accounts
// may pass an explicit facultyId.
func targetFacultyId(r *http.Request, requested string) (string, error) {
	user, err := auth.GetUser(r)
	if err != nil {
		return "", CodedError(err, http.StatusInternalServerError)
	}

	if requested != "" && requested != user.Username {
		if !user.HasRole(auth.RoleHOD, auth.RoleAdmin) {
			return "", CodedError(errors.New("Unauthorized to access other faculty records"), http.StatusForbidden)
		}
		return requested, nil
	}
	return user.Username, nil
}

func (s *PublicationService) List(r *http.Request) (any, error) {
	facultyId, err := targetFacultyId(r, r.URL.Query().Get("facultyId"))
	if err != nil {
		return nil, err
	}

	var records []schema.FacultyPublication
	err = s.db.Where("faculty_id = ?", facultyId).Order("publication_date DESC").Find(&records).Error
	if err != nil {
		return nil, CodedError(fmt.Errorf("error fetching publications: %w", err), http.StatusInternalServerError)
	}

	publications := make([]api.Publication, 0, len(records))
	for _, record := range records {
		publications = append(publications, publicationResponse(record))
	}

	// Book chapters and research contributions live in legacy tables that
	// are not always present; leave them out of the listing rather than
	// fail it.
	var chapters []schema.BookChapter
	err = s.db.Where("faculty_id = ? AND status = ?", facultyId, "approved").Find(&chapters).Error
	if err != nil {
		s.logger.Warn("book chapter lookup failed", "faculty_id", facultyId, "error", err)
	} else {
		for _, chapter := range chapters {
			publications = append(publications, api.Publication{
				Id:               chapter.Id,
				FacultyId:        chapter.FacultyId,
				Title:            chapter.Title,
				Authors:          chapter.Authors,
				PublicationDate:  formatDateValue(chapter.PublicationDate),
				PublicationType:  "Book Chapter",
				PublicationVenue: chapter.Publisher,
			})
		}
	}

	var contributions []schema.FacultyContribution
	err = s.db.
		Where("f_id = ?", facultyId).
		Where("LOWER(contribution_type) LIKE '%journal%' OR LOWER(contribution_type) LIKE '%conference%' OR LOWER(contribution_type) LIKE '%publication%'").
		Find(&contributions).Error
	if err != nil {
		s.logger.Warn("contribution lookup failed", "faculty_id", facultyId, "error", err)
	} else {
		for _, contribution := range contributions {
			publications = append(publications, api.Publication{
				Id:               contribution.Id,
				FacultyId:        contribution.FacultyId,
				Title:            contribution.Description,
				PublicationDate:  formatDateValue(contribution.ContributionDate),
				PublicationType:  contribution.ContributionType,
				PublicationVenue: contribution.RecognizedBy,
			})
		}
	}

	return Raw(api.Envelope{Success: true, Data: publications}), nil
}

func (s *PublicationService) Create(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.PublicationInput](r)
	if err != nil {
		return nil, err
	}

	facultyId, err := targetFacultyId(r, params.FacultyId)
	if err != nil {
		return nil, err
	}

	if params.Title == "" || params.PublicationDate == "" || params.PublicationType == "" || params.PublicationVenue == "" {
		return nil, CodedError(errors.New("Title, publication date, type, and venue are required"), http.StatusBadRequest)
	}

	var owner schema.Faculty
	err = s.db.Where("f_id = ?", facultyId).Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, CodedError(errors.New("Faculty record not found"), http.StatusNotFound)
	}
	if err != nil {
		return nil, CodedError(fmt.Errorf("error fetching faculty: %w", err), http.StatusInternalServerError)
	}

	record := schema.FacultyPublication{
		FacultyId:        facultyId,
		Title:            params.Title,
		Abstract:         params.Abstract,
		Authors:          params.Authors,
		PublicationDate:  parseDateValue(params.PublicationDate),
		PublicationType:  params.PublicationType,
		PublicationVenue: params.PublicationVenue,
		DOI:              params.DOI,
		URL:              params.URL,
		CitationCount:    params.CitationCount,
	}

	err = s.db.Transaction(func(txn *gorm.DB) error {
		coAuthors, err := resolveCoAuthors(txn, facultyId, params.CoAuthors)
		if err != nil {
			return err
		}

		// When co-authors are listed the authors string is rebuilt from the
		// registered faculty names, owner first.
		if len(coAuthors) > 0 {
			names := []string{owner.Name}
			for _, coAuthor := range coAuthors {
				names = append(names, coAuthor.Name)
			}
			record.Authors = strings.Join(names, ", ")
		}

		if err := txn.Create(&record).Error; err != nil {
			return fmt.Errorf("error creating publication: %w", err)
		}
		return fanOutCoAuthors(txn, record, coAuthors)
	})
	if err != nil {
		var cerr *codedError
		if errors.As(err, &cerr) {
			return nil, err
		}
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.PublicationsCreated.WithLabelValues(record.PublicationType).Inc()
	s.logger.Info("publication created", "publication_id", record.Id, "faculty_id", facultyId, "co_authors", len(params.CoAuthors))

	return Raw(api.Envelope{
		Success: true,
		Message: "Publication added successfully",
		Data:    publicationResponse(record),
	}), nil
}

// resolveCoAuthors loads the listed co-authors' faculty records, skipping
// blanks and the owner. An id with no faculty record fails the whole
// create.
func resolveCoAuthors(txn *gorm.DB, ownerId string, ids []string) ([]schema.Faculty, error) {
	coAuthors := make([]schema.Faculty, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == ownerId {
			continue
		}

		var coAuthor schema.Faculty
		err := txn.Where("f_id = ?", id).Take(&coAuthor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedError(fmt.Errorf("co-author %s not found", id), http.StatusNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("error verifying co-author: %w", err)
		}
		coAuthors = append(coAuthors, coAuthor)
	}
	return coAuthors, nil
}

// fanOutCoAuthors records the authorship links and mirrors the publication
// onto each co-author's own record so it shows up in their listings and
// department reports. Author order 1 is the owner. The caller's
// transaction makes the fan-out all or nothing.
func fanOutCoAuthors(txn *gorm.DB, record schema.FacultyPublication, coAuthors []schema.Faculty) error {
	for i, coAuthor := range coAuthors {
		link := schema.PublicationCoAuthor{
			PublicationId: record.Id,
			FacultyId:     coAuthor.FacultyId,
			AuthorOrder:   i + 2,
		}
		if err := txn.Create(&link).Error; err != nil {
			return fmt.Errorf("error linking co-author: %w", err)
		}

		mirror := record
		mirror.Id = 0
		mirror.FacultyId = coAuthor.FacultyId
		if err := txn.Create(&mirror).Error; err != nil {
			return fmt.Errorf("error mirroring publication for co-author: %w", err)
		}
	}
	return nil
}

func (s *PublicationService) Update(r *http.Request) (any, error) {
	id, err := URLParamInt(r, "publication_id")
	if err != nil {
		return nil, err
	}

	params, err := ParseRequestBody[api.PublicationInput](r)
	if err != nil {
		return nil, err
	}

	user, err := auth.GetUser(r)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	var record schema.FacultyPublication
	err = s.db.Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, CodedError(errors.New("Publication not found"), http.StatusNotFound)
	}
	if err != nil {
		return nil, CodedError(fmt.Errorf("error fetching publication: %w", err), http.StatusInternalServerError)
	}

	if record.FacultyId != user.Username && !user.HasRole(auth.RoleHOD, auth.RoleAdmin) {
		return nil, CodedError(errors.New("Unauthorized to update this publication"), http.StatusForbidden)
	}

	record.Title = params.Title
	record.Abstract = params.Abstract
	record.Authors = params.Authors
	record.PublicationDate = parseDateValue(params.PublicationDate)
	record.PublicationType = params.PublicationType
	record.PublicationVenue = params.PublicationVenue
	record.DOI = params.DOI
	record.URL = params.URL
	record.CitationCount = params.CitationCount

	if err := s.db.Save(&record).Error; err != nil {
		return nil, CodedError(fmt.Errorf("error updating publication: %w", err), http.StatusInternalServerError)
	}

	return Raw(api.Envelope{
		Success: true,
		Message: "Publication updated successfully",
		Data:    publicationResponse(record),
	}), nil
}

func (s *PublicationService) Delete(r *http.Request) (any, error) {
	id, err := URLParamInt(r, "publication_id")
	if err != nil {
		return nil, err
	}

	user, err := auth.GetUser(r)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	var record schema.FacultyPublication
	err = s.db.Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, CodedError(errors.New("Publication not found"), http.StatusNotFound)
	}
	if err != nil {
		return nil, CodedError(fmt.Errorf("error fetching publication: %w", err), http.StatusInternalServerError)
	}

	if record.FacultyId != user.Username && !user.HasRole(auth.RoleHOD, auth.RoleAdmin) {
		return nil, CodedError(errors.New("Unauthorized to delete this publication"), http.StatusForbidden)
	}

	err = s.db.Transaction(func(txn *gorm.DB) error {
		if err := txn.Where("publication_id = ?", record.Id).Delete(&schema.PublicationCoAuthor{}).Error; err != nil {
			return fmt.Errorf("error removing co-author links: %w", err)
		}
		if err := txn.Delete(&record).Error; err != nil {
			return fmt.Errorf("error deleting publication: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return Raw(api.Envelope{Success: true, Message: "Publication deleted successfully"}), nil
}

func publicationResponse(record schema.FacultyPublication) api.Publication {
	publication := api.Publication{
		Id:               record.Id,
		FacultyId:        record.FacultyId,
		Title:            record.Title,
		Abstract:         record.Abstract,
		Authors:          record.Authors,
		PublicationDate:  formatDateValue(record.PublicationDate),
		PublicationType:  record.PublicationType,
		PublicationVenue: record.PublicationVenue,
		DOI:              record.DOI,
		URL:              record.URL,
		CitationCount:    record.CitationCount,
	}

	if record.CitationsLastUpdated != nil {
		publication.Citations = &api.CitationCounts{
			Crossref:        record.CitationsCrossref,
			SemanticScholar: record.CitationsSemanticScholar,
			GoogleScholar:   record.CitationsGoogleScholar,
			WebOfScience:    record.CitationsWebOfScience,
			Scopus:          record.CitationsScopus,
			LastUpdated:     record.CitationsLastUpdated,
		}
	}

	return publication
}

func formatDateValue(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("2006-01-02")
}

func parseDateValue(value string) *time.Time {
	if value == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &date
}
