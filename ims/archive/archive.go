package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ims/ims/api"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("report not found")

var reportsBucket = []byte("reports")

// Entry is one archived report: the rendered PDF plus enough metadata to
// serve it again by id.
type Entry struct {
	Id              uuid.UUID      `json:"id"`
	Kind            api.ReportKind `json:"kind"`
	Filename        string         `json:"filename"`
	DepartmentLabel string         `json:"department_label"`
	GeneratedAt     time.Time      `json:"generated_at"`
	PDF             []byte         `json:"pdf"`
}

// Store keeps generated reports in a local bolt file so downloads can be
// re-served without regenerating. Entries are json-encoded under their
// report id.
type Store struct {
	db     *bbolt.DB
	logger *slog.Logger
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 20 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening report archive %s: %w", path, err)
	}

	err = db.Update(func(txn *bbolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(reportsBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing report archive: %w", err)
	}

	return &Store{db: db, logger: slog.With("component", "archive")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error serializing archive entry: %w", err)
	}

	err = s.db.Update(func(txn *bbolt.Tx) error {
		return txn.Bucket(reportsBucket).Put(entry.Id[:], data)
	})
	if err != nil {
		s.logger.Error("error saving archive entry", "report_id", entry.Id, "error", err)
		return fmt.Errorf("error saving archive entry: %w", err)
	}

	s.logger.Info("archived report", "report_id", entry.Id, "kind", entry.Kind, "filename", entry.Filename)
	return nil
}

func (s *Store) Get(id uuid.UUID) (Entry, error) {
	var entry Entry
	err := s.db.View(func(txn *bbolt.Tx) error {
		data := txn.Bucket(reportsBucket).Get(id[:])
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("error reading archive entry", "report_id", id, "error", err)
		}
		return Entry{}, err
	}
	return entry, nil
}
