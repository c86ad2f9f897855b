// Package csvstore is the flat-file table store: one CSV per table under
// <data dir>/backend, header row of column names, empty cells for absent
// optional values. Saves are atomic per table (write temp, rename).
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/model"
)

// Store reads and writes the eight table files of one data directory.
type Store struct {
	dir string // the backend directory holding the CSV files
}

// New returns a store over dataDir. Nothing is read until Load.
func New(dataDir string) *Store {
	return &Store{dir: filepath.Join(dataDir, "backend")}
}

// Dir returns the backend directory path.
func (s *Store) Dir() string { return s.dir }

// Load reads all eight tables. Any table that is missing, malformed, or
// has an unexpected header aborts the load; no partial set is returned.
func (s *Store) Load() (*model.TableSet, error) {
	set := &model.TableSet{}
	for _, table := range entities.AllTables {
		records, err := s.readTable(table)
		if err != nil {
			return nil, err
		}
		if err := unmarshalTable(set, table, records); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Save rewrites the named table. The new contents are written to a
// temporary file in the same directory and renamed over the old file, so
// a crash mid-write never leaves a truncated table behind.
func (s *Store) Save(set *model.TableSet, table string) error {
	records, err := marshalTable(set, table)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, table+"-*.csv.tmp")
	if err != nil {
		return &model.StorageError{Table: table, Err: err}
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return &model.StorageError{Table: table, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &model.StorageError{Table: table, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &model.StorageError{Table: table, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path(table)); err != nil {
		return &model.StorageError{Table: table, Err: err}
	}
	return nil
}

// Init creates the backend directory and an empty (header-only) file for
// every table. Existing files are preserved unless force is set.
func Init(dataDir string, force bool) error {
	dir := filepath.Join(dataDir, "backend")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	store := &Store{dir: dir}
	empty := &model.TableSet{}
	for _, table := range entities.AllTables {
		if !force {
			if _, err := os.Stat(store.path(table)); err == nil {
				continue
			}
		}
		if err := store.Save(empty, table); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

func (s *Store) readTable(table string) ([][]string, error) {
	f, err := os.Open(s.path(table))
	if err != nil {
		return nil, &model.StorageError{Table: table, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, &model.StorageError{Table: table, Err: err}
	}
	if len(records) == 0 {
		return nil, &model.StorageError{Table: table, Err: fmt.Errorf("missing header row")}
	}
	return records, nil
}
