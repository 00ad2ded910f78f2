package versions

import (
	"time"

	"gorm.io/gorm"
)

// Migration1 adds the per-source citation count columns that the citation
// sync job populates alongside the original aggregate citation_count.
func Migration1(db *gorm.DB) error {
	type FacultyPublication struct {
		CitationsCrossref        *int       `gorm:"column:citations_crossref"`
		CitationsSemanticScholar *int       `gorm:"column:citations_semantic_scholar"`
		CitationsGoogleScholar   *int       `gorm:"column:citations_google_scholar"`
		CitationsWebOfScience    *int       `gorm:"column:citations_web_of_science"`
		CitationsScopus          *int       `gorm:"column:citations_scopus"`
		CitationsLastUpdated     *time.Time `gorm:"column:citations_last_updated"`
	}

	for _, column := range []string{
		"citations_crossref", "citations_semantic_scholar", "citations_google_scholar",
		"citations_web_of_science", "citations_scopus", "citations_last_updated",
	} {
		if err := db.Table("faculty_publications").Migrator().AddColumn(&FacultyPublication{}, column); err != nil {
			return err
		}
	}

	return nil
}

func Rollback1(db *gorm.DB) error {
	type FacultyPublication struct {
		CitationsCrossref        *int       `gorm:"column:citations_crossref"`
		CitationsSemanticScholar *int       `gorm:"column:citations_semantic_scholar"`
		CitationsGoogleScholar   *int       `gorm:"column:citations_google_scholar"`
		CitationsWebOfScience    *int       `gorm:"column:citations_web_of_science"`
		CitationsScopus          *int       `gorm:"column:citations_scopus"`
		CitationsLastUpdated     *time.Time `gorm:"column:citations_last_updated"`
	}

	for _, column := range []string{
		"citations_crossref", "citations_semantic_scholar", "citations_google_scholar",
		"citations_web_of_science", "citations_scopus", "citations_last_updated",
	} {
		if err := db.Table("faculty_publications").Migrator().DropColumn(&FacultyPublication{}, column); err != nil {
			return err
		}
	}

	return nil
}
