package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/model"
)

// The SQLite backend exposes the same operation surface as the CSV
// model. Rows are fetched and written through parameterized gorm
// statements only; the friendly views and filters are built by the
// shared code in internal/model over the selected rows, so the two
// backends cannot drift apart in join or aggregate behavior.

// loadSet selects all eight tables into an in-memory TableSet.
func loadSet(tx *gorm.DB) (*model.TableSet, error) {
	set := &model.TableSet{}
	loads := []struct {
		table string
		dest  any
	}{
		{entities.TableAuthors, &set.Authors},
		{entities.TableBooks, &set.Books},
		{entities.TableGenres, &set.Genres},
		{entities.TableSeries, &set.Series},
		{entities.TableReading, &set.Reading},
		{entities.TableBooksAuthors, &set.BooksAuthors},
		{entities.TableBooksGenres, &set.BooksGenres},
		{entities.TableBooksSeries, &set.BooksSeries},
	}
	for _, l := range loads {
		if err := tx.Find(l.dest).Error; err != nil {
			return nil, &model.StorageError{Table: l.table, Err: err}
		}
	}
	return set, nil
}

// Load returns the current table set; part of the shared backend
// surface so callers can inspect tables directly.
func (d *Database) Load() (*model.TableSet, error) {
	return loadSet(d.db)
}

// BooksView builds the friendly books view, optionally filtered.
func (d *Database) BooksView(f *model.Filter) ([]model.BookRow, error) {
	set, err := loadSet(d.db)
	if err != nil {
		return nil, err
	}
	rows := model.BuildBooksView(set)
	if f == nil {
		return rows, nil
	}
	return model.FilterBooks(rows, *f)
}

// ReadingView builds the friendly reading view, optionally filtered.
func (d *Database) ReadingView(f *model.Filter) ([]model.ReadingRow, error) {
	set, err := loadSet(d.db)
	if err != nil {
		return nil, err
	}
	rows := model.BuildReadingView(set)
	if f == nil {
		return rows, nil
	}
	return model.FilterReading(rows, *f)
}

// Lookup maps display names to ids for the entity tables.
func (d *Database) Lookup(table string) (map[string]int, error) {
	set, err := loadSet(d.db)
	if err != nil {
		return nil, err
	}
	switch table {
	case entities.TableBooks:
		return set.BookLookup(), nil
	case entities.TableAuthors:
		return set.AuthorLookup(), nil
	case entities.TableGenres:
		return set.GenreLookup(), nil
	}
	return nil, &model.ValidationError{Table: table, Reason: "no lookup for this table"}
}

// AuthorsByLastName narrows the author lookup to one last name.
func (d *Database) AuthorsByLastName(lastName string) (map[string]int, error) {
	set, err := loadSet(d.db)
	if err != nil {
		return nil, err
	}
	return set.AuthorsByLastName(lastName), nil
}

// ReadingIDsForBook lists the reading-event ids of one book.
func (d *Database) ReadingIDsForBook(bookID int) ([]int, error) {
	set, err := loadSet(d.db)
	if err != nil {
		return nil, err
	}
	return set.ReadingIDsForBook(bookID), nil
}

// AddEntry validates fields against the in-memory mutation rules, then
// inserts the resulting row. Surrogate keys are allocated the same way
// as the CSV backend (smallest free positive integer), inside the
// insert transaction.
func (d *Database) AddEntry(table string, fields map[string]any) (int, error) {
	var id int
	err := d.db.Transaction(func(tx *gorm.DB) error {
		set, err := loadSet(tx)
		if err != nil {
			return err
		}
		newID, err := set.AddEntry(table, fields)
		if err != nil {
			return err
		}
		id = newID
		return createLastRow(tx, set, table)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// EditEntry overwrites targetColumn on rows matching matchColumn. The
// edit is first applied to an in-memory copy for validation, then issued
// as a single parameterized UPDATE.
func (d *Database) EditEntry(table, matchColumn string, matchValue any, targetColumn string, newValue any) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		set, err := loadSet(tx)
		if err != nil {
			return err
		}
		if err := set.EditEntry(table, matchColumn, matchValue, targetColumn, newValue); err != nil {
			return err
		}
		matchVal, err := model.NormalizeValue(table, matchColumn, matchValue)
		if err != nil {
			return err
		}
		newVal, err := model.NormalizeValue(table, targetColumn, newValue)
		if err != nil {
			return err
		}
		return tx.Model(tableModel(table)).
			Where(map[string]any{matchColumn: matchVal}).
			Update(targetColumn, newVal).Error
	})
}

// DeleteEntry removes matching rows from one table. Deleting an anchor
// row through this path cascades by constraint; the compound helpers
// below are the workflow-facing entry points.
func (d *Database) DeleteEntry(table, matchColumn string, matchValue any) error {
	if err := model.CheckColumn(table, matchColumn); err != nil {
		return err
	}
	matchVal, err := model.NormalizeValue(table, matchColumn, matchValue)
	if err != nil {
		return err
	}
	result := d.db.Where(map[string]any{matchColumn: matchVal}).Delete(tableModel(table))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &model.NotFoundError{Table: table, Column: matchColumn, Value: matchValue}
	}
	return nil
}

// AddAuthor inserts an author row.
func (d *Database) AddAuthor(first, middle *string, last string, suffix *string) (int, error) {
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
	return d.AddEntry(entities.TableAuthors, fields)
}

// AddGenre inserts a genre row.
func (d *Database) AddGenre(name string) (int, error) {
	return d.AddEntry(entities.TableGenres, map[string]any{"name": name})
}

// AddBook creates a book with exactly one author and one genre
// association, all in one transaction.
func (d *Database) AddBook(title string, authorID, genreID int, pages, rating *int) (int, error) {
	var bookID int
	err := d.db.Transaction(func(tx *gorm.DB) error {
		set, err := loadSet(tx)
		if err != nil {
			return err
		}
		if set.AuthorByID(authorID) == nil {
			return &model.ReferentialError{Table: entities.TableBooksAuthors, Column: "author_id", ID: authorID}
		}
		if set.GenreByID(genreID) == nil {
			return &model.ReferentialError{Table: entities.TableBooksGenres, Column: "genre_id", ID: genreID}
		}
		fields := map[string]any{"title": title}
		if pages != nil {
			fields["book_length"] = *pages
		}
		if rating != nil {
			fields["rating"] = *rating
		}
		id, err := set.AddEntry(entities.TableBooks, fields)
		if err != nil {
			return err
		}
		bookID = id
		if err := createLastRow(tx, set, entities.TableBooks); err != nil {
			return err
		}
		if err := createRow(tx, &entities.BookAuthor{BookID: id, AuthorID: authorID}); err != nil {
			return err
		}
		return createRow(tx, &entities.BookGenre{BookID: id, GenreID: genreID})
	})
	if err != nil {
		return 0, err
	}
	return bookID, nil
}

// AddReading inserts a reading event for an existing book.
func (d *Database) AddReading(bookID int, start, finish *time.Time, rating *int) (int, error) {
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
	return d.AddEntry(entities.TableReading, fields)
}

// DeleteBook removes a book. The books_authors, books_genres,
// books_series, and reading rows referencing it are removed by the
// ON DELETE CASCADE constraints, atomically with the anchor row.
func (d *Database) DeleteBook(id int) error {
	return d.deleteAnchor(&entities.Book{}, entities.TableBooks, id)
}

// DeleteAuthor removes an author; its books_authors rows cascade.
func (d *Database) DeleteAuthor(id int) error {
	return d.deleteAnchor(&entities.Author{}, entities.TableAuthors, id)
}

// DeleteGenre removes a genre; its books_genres rows cascade.
func (d *Database) DeleteGenre(id int) error {
	return d.deleteAnchor(&entities.Genre{}, entities.TableGenres, id)
}

func (d *Database) deleteAnchor(entity any, table string, id int) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(entity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &model.NotFoundError{Table: table, Column: "id", Value: id}
		}
		return nil
	})
}

// createLastRow inserts the row AddEntry just appended to the set.
func createLastRow(tx *gorm.DB, set *model.TableSet, table string) error {
	switch table {
	case entities.TableBooks:
		return createRow(tx, &set.Books[len(set.Books)-1])
	case entities.TableAuthors:
		return createRow(tx, &set.Authors[len(set.Authors)-1])
	case entities.TableGenres:
		return createRow(tx, &set.Genres[len(set.Genres)-1])
	case entities.TableSeries:
		return createRow(tx, &set.Series[len(set.Series)-1])
	case entities.TableReading:
		return createRow(tx, &set.Reading[len(set.Reading)-1])
	case entities.TableBooksAuthors:
		return createRow(tx, &set.BooksAuthors[len(set.BooksAuthors)-1])
	case entities.TableBooksGenres:
		return createRow(tx, &set.BooksGenres[len(set.BooksGenres)-1])
	case entities.TableBooksSeries:
		return createRow(tx, &set.BooksSeries[len(set.BooksSeries)-1])
	}
	return fmt.Errorf("unknown table %q", table)
}

func createRow(tx *gorm.DB, row any) error {
	// Omit associations so gorm never upserts a zero-valued anchor row.
	return tx.Omit(clause.Associations).Create(row).Error
}

func tableModel(table string) any {
	switch table {
	case entities.TableBooks:
		return &entities.Book{}
	case entities.TableAuthors:
		return &entities.Author{}
	case entities.TableGenres:
		return &entities.Genre{}
	case entities.TableSeries:
		return &entities.Series{}
	case entities.TableReading:
		return &entities.Reading{}
	case entities.TableBooksAuthors:
		return &entities.BookAuthor{}
	case entities.TableBooksGenres:
		return &entities.BookGenre{}
	case entities.TableBooksSeries:
		return &entities.BookSeries{}
	}
	return nil
}
