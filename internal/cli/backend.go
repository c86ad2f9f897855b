package cli

import (
	"fmt"
	"time"

	"github.com/phoebeshelves/shelves/internal/config"
	"github.com/phoebeshelves/shelves/internal/csvstore"
	"github.com/phoebeshelves/shelves/internal/database"
	"github.com/phoebeshelves/shelves/internal/model"
)

// Backend is the storage-independent operation surface the commands
// depend on. internal/model implements it over the CSV files and
// internal/database over SQLite.
type Backend interface {
	BooksView(f *model.Filter) ([]model.BookRow, error)
	ReadingView(f *model.Filter) ([]model.ReadingRow, error)
	Lookup(table string) (map[string]int, error)
	AuthorsByLastName(lastName string) (map[string]int, error)
	ReadingIDsForBook(bookID int) ([]int, error)

	AddEntry(table string, fields map[string]any) (int, error)
	EditEntry(table, matchColumn string, matchValue any, targetColumn string, newValue any) error
	DeleteEntry(table, matchColumn string, matchValue any) error

	AddAuthor(first, middle *string, last string, suffix *string) (int, error)
	AddGenre(name string) (int, error)
	AddBook(title string, authorID, genreID int, pages, rating *int) (int, error)
	AddReading(bookID int, start, finish *time.Time, rating *int) (int, error)
	DeleteBook(id int) error
	DeleteAuthor(id int) error
	DeleteGenre(id int) error

	Close() error
}

var _ Backend = (*model.Model)(nil)
var _ Backend = (*database.Database)(nil)

// openBackend loads the configured storage engine.
func openBackend(opts *RootOptions) (Backend, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case config.BackendSQLite:
		return database.Open(cfg.DatabasePath)
	case config.BackendCSV:
		store := csvstore.New(cfg.DataDir)
		set, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load tables (run \"shelves init\"?): %w", err)
		}
		return model.New(set, store), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
