package model

import (
	"time"

	"github.com/phoebeshelves/shelves/internal/entities"
)

// Persister rewrites one table of a set to backing storage. The write
// must be atomic for that table to the extent the medium allows.
type Persister interface {
	Save(set *TableSet, table string) error
}

// Model couples a table set with its persister. Every successful
// mutation rewrites the tables it touched; compound mutations apply all
// in-memory changes first and persist the touched tables afterwards, so
// a validation failure never leaves a half-applied compound on disk.
type Model struct {
	tables *TableSet
	store  Persister
}

// New returns a model over a loaded table set.
func New(set *TableSet, store Persister) *Model {
	return &Model{tables: set, store: store}
}

// Tables exposes the underlying set, mainly for the view builders and
// tests.
func (m *Model) Tables() *TableSet { return m.tables }

// BooksView builds the friendly books view, optionally filtered.
func (m *Model) BooksView(f *Filter) ([]BookRow, error) {
	rows := BuildBooksView(m.tables)
	if f == nil {
		return rows, nil
	}
	return FilterBooks(rows, *f)
}

// ReadingView builds the friendly reading view, optionally filtered.
func (m *Model) ReadingView(f *Filter) ([]ReadingRow, error) {
	rows := BuildReadingView(m.tables)
	if f == nil {
		return rows, nil
	}
	return FilterReading(rows, *f)
}

// Lookup maps display names to ids for the entity tables used by the
// prompt workflows.
func (m *Model) Lookup(table string) (map[string]int, error) {
	switch table {
	case entities.TableBooks:
		return m.tables.BookLookup(), nil
	case entities.TableAuthors:
		return m.tables.AuthorLookup(), nil
	case entities.TableGenres:
		return m.tables.GenreLookup(), nil
	}
	return nil, &ValidationError{Table: table, Column: "", Reason: "no lookup for this table"}
}

// AddEntry inserts a row built from fields into the named table and
// persists it. For id-keyed tables the new surrogate key is allocated
// and returned; association tables return 0 and are identified by their
// composite key.
func (m *Model) AddEntry(table string, fields map[string]any) (int, error) {
	id, err := m.tables.AddEntry(table, fields)
	if err != nil {
		return 0, err
	}
	return id, m.persist(table)
}

// EditEntry overwrites targetColumn on every row of the named table
// where matchColumn equals matchValue, then persists the table.
func (m *Model) EditEntry(table, matchColumn string, matchValue any, targetColumn string, newValue any) error {
	if err := m.tables.EditEntry(table, matchColumn, matchValue, targetColumn, newValue); err != nil {
		return err
	}
	return m.persist(table)
}

// DeleteEntry removes every matching row from the named table and
// persists it. Dependent-table cascades are the compound operations'
// concern, not this one's.
func (m *Model) DeleteEntry(table, matchColumn string, matchValue any) error {
	n, err := m.tables.DeleteEntry(table, matchColumn, matchValue)
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Table: table, Column: matchColumn, Value: matchValue}
	}
	return m.persist(table)
}

// AddAuthor inserts an author row. Only the last name is required.
func (m *Model) AddAuthor(first, middle *string, last string, suffix *string) (int, error) {
	fields := map[string]any{"last_name": last}
	if first != nil {
		fields["first_name"] = *first
	}
	if middle != nil {
		fields["middle_name"] = *middle
	}
	if suffix != nil {
		fields["suffix"] = *suffix
	}
	return m.AddEntry(entities.TableAuthors, fields)
}

// AddGenre inserts a genre row.
func (m *Model) AddGenre(name string) (int, error) {
	return m.AddEntry(entities.TableGenres, map[string]any{"name": name})
}

// AddBook creates a book together with exactly one author association
// and exactly one genre association. The one-of-each constraint mirrors
// the tool's add workflow; the schema itself supports more, via AddEntry
// on the association tables.
func (m *Model) AddBook(title string, authorID, genreID int, pages, rating *int) (int, error) {
	if m.tables.AuthorByID(authorID) == nil {
		return 0, &ReferentialError{Table: entities.TableBooksAuthors, Column: "author_id", ID: authorID}
	}
	if m.tables.GenreByID(genreID) == nil {
		return 0, &ReferentialError{Table: entities.TableBooksGenres, Column: "genre_id", ID: genreID}
	}

	fields := map[string]any{"title": title}
	if pages != nil {
		fields["book_length"] = *pages
	}
	if rating != nil {
		fields["rating"] = *rating
	}
	bookID, err := m.tables.AddEntry(entities.TableBooks, fields)
	if err != nil {
		return 0, err
	}
	if _, err := m.tables.AddEntry(entities.TableBooksAuthors,
		map[string]any{"book_id": bookID, "author_id": authorID}); err != nil {
		return 0, err
	}
	if _, err := m.tables.AddEntry(entities.TableBooksGenres,
		map[string]any{"book_id": bookID, "genre_id": genreID}); err != nil {
		return 0, err
	}
	return bookID, m.persist(entities.TableBooks, entities.TableBooksAuthors, entities.TableBooksGenres)
}

// AddReading inserts a reading event for an existing book.
func (m *Model) AddReading(bookID int, start, finish *time.Time, rating *int) (int, error) {
	fields := map[string]any{"book_id": bookID}
	if start != nil {
		fields["start_date"] = *start
	}
	if finish != nil {
		fields["finish_date"] = *finish
	}
	if rating != nil {
		fields["rating"] = *rating
	}
	return m.AddEntry(entities.TableReading, fields)
}

// DeleteBook removes a book and cascades to every dependent row: its
// books_authors, books_genres, and books_series associations and its
// reading events. All in-memory deletes happen before any table is
// persisted.
func (m *Model) DeleteBook(id int) error {
	if m.tables.BookByID(id) == nil {
		return &NotFoundError{Table: entities.TableBooks, Column: "id", Value: id}
	}
	if _, err := m.tables.DeleteEntry(entities.TableBooks, "id", id); err != nil {
		return err
	}
	for _, table := range []string{
		entities.TableBooksAuthors,
		entities.TableBooksGenres,
		entities.TableBooksSeries,
		entities.TableReading,
	} {
		if _, err := m.tables.DeleteEntry(table, "book_id", id); err != nil {
			return err
		}
	}
	return m.persist(entities.TableBooks, entities.TableBooksAuthors,
		entities.TableBooksGenres, entities.TableBooksSeries, entities.TableReading)
}

// DeleteAuthor removes an author and its books_authors rows. No other
// cascade exists for authors.
func (m *Model) DeleteAuthor(id int) error {
	if m.tables.AuthorByID(id) == nil {
		return &NotFoundError{Table: entities.TableAuthors, Column: "id", Value: id}
	}
	if _, err := m.tables.DeleteEntry(entities.TableAuthors, "id", id); err != nil {
		return err
	}
	if _, err := m.tables.DeleteEntry(entities.TableBooksAuthors, "author_id", id); err != nil {
		return err
	}
	return m.persist(entities.TableAuthors, entities.TableBooksAuthors)
}

// DeleteGenre removes a genre and its books_genres rows.
func (m *Model) DeleteGenre(id int) error {
	if m.tables.GenreByID(id) == nil {
		return &NotFoundError{Table: entities.TableGenres, Column: "id", Value: id}
	}
	if _, err := m.tables.DeleteEntry(entities.TableGenres, "id", id); err != nil {
		return err
	}
	if _, err := m.tables.DeleteEntry(entities.TableBooksGenres, "genre_id", id); err != nil {
		return err
	}
	return m.persist(entities.TableGenres, entities.TableBooksGenres)
}

// AuthorsByLastName narrows the author lookup to one last name.
func (m *Model) AuthorsByLastName(lastName string) (map[string]int, error) {
	return m.tables.AuthorsByLastName(lastName), nil
}

// ReadingIDsForBook lists the reading-event ids of one book.
func (m *Model) ReadingIDsForBook(bookID int) ([]int, error) {
	return m.tables.ReadingIDsForBook(bookID), nil
}

// Close is a no-op; the CSV backend holds no open resources between
// operations.
func (m *Model) Close() error { return nil }

func (m *Model) persist(tables ...string) error {
	for _, table := range tables {
		if err := m.store.Save(m.tables, table); err != nil {
			return &StorageError{Table: table, Err: err}
		}
	}
	return nil
}
