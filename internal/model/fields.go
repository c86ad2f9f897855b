package model

import (
	"github.com/phoebeshelves/shelves/internal/entities"
)

// DateLayout is the wire format for dates everywhere in the tracker:
// CSV cells, prompt input, and filter flags.
const DateLayout = "2006-01-02"

// tableColumns lists the mutable columns of each table; used to reject
// unknown column names before any row is touched.
var tableColumns = map[string]map[string]bool{
	entities.TableBooks:        {"id": true, "title": true, "book_length": true, "rating": true},
	entities.TableAuthors:      {"id": true, "first_name": true, "middle_name": true, "last_name": true, "suffix": true},
	entities.TableGenres:       {"id": true, "name": true},
	entities.TableSeries:       {"id": true, "series_name": true},
	entities.TableReading:      {"id": true, "book_id": true, "start_date": true, "finish_date": true, "rating": true},
	entities.TableBooksAuthors: {"book_id": true, "author_id": true},
	entities.TableBooksGenres:  {"book_id": true, "genre_id": true},
	entities.TableBooksSeries:  {"book_id": true, "series_id": true, "series_order": true},
}

// CheckColumn validates that column names a mutable column of table.
func CheckColumn(table, column string) error {
	return checkColumn(table, column)
}

func checkColumn(table, column string) error {
	cols, ok := tableColumns[table]
	if !ok {
		return &ValidationError{Table: table, Column: column, Reason: "unknown table"}
	}
	if !cols[column] {
		return &ValidationError{Table: table, Column: column, Reason: "unknown column"}
	}
	return nil
}

func checkFields(table string, fields map[string]any) error {
	for key := range fields {
		if err := checkColumn(table, key); err != nil {
			return err
		}
	}
	return nil
}

// AddEntry constructs a row from fields, validates it, and appends it to
// the named table. Id-keyed tables get a freshly allocated surrogate key.
// Persistence is the caller's concern; Model and the SQLite backend both
// build on this for their insert paths.
func (t *TableSet) AddEntry(table string, fields map[string]any) (int, error) {
	if err := checkFields(table, fields); err != nil {
		return 0, err
	}
	switch table {
	case entities.TableBooks:
		title, err := requiredString(table, fields, "title")
		if err != nil {
			return 0, err
		}
		length, err := optionalPosInt(table, fields, "book_length")
		if err != nil {
			return 0, err
		}
		rating, err := optionalRating(table, fields, "rating")
		if err != nil {
			return 0, err
		}
		id := t.NextID(table)
		t.Books = append(t.Books, entities.Book{ID: id, Title: title, BookLength: length, Rating: rating})
		return id, nil

	case entities.TableAuthors:
		last, err := requiredString(table, fields, "last_name")
		if err != nil {
			return 0, err
		}
		first, err := optionalString(table, fields, "first_name")
		if err != nil {
			return 0, err
		}
		middle, err := optionalString(table, fields, "middle_name")
		if err != nil {
			return 0, err
		}
		suffix, err := optionalString(table, fields, "suffix")
		if err != nil {
			return 0, err
		}
		id := t.NextID(table)
		t.Authors = append(t.Authors, entities.Author{
			ID: id, FirstName: first, MiddleName: middle, LastName: last, Suffix: suffix,
		})
		return id, nil

	case entities.TableGenres:
		name, err := requiredString(table, fields, "name")
		if err != nil {
			return 0, err
		}
		id := t.NextID(table)
		t.Genres = append(t.Genres, entities.Genre{ID: id, Name: name})
		return id, nil

	case entities.TableSeries:
		name, err := requiredString(table, fields, "series_name")
		if err != nil {
			return 0, err
		}
		id := t.NextID(table)
		t.Series = append(t.Series, entities.Series{ID: id, SeriesName: name})
		return id, nil

	case entities.TableReading:
		bookID, err := requiredInt(table, fields, "book_id")
		if err != nil {
			return 0, err
		}
		if t.BookByID(bookID) == nil {
			return 0, &ReferentialError{Table: table, Column: "book_id", ID: bookID}
		}
		start, err := optionalDate(table, fields, "start_date")
		if err != nil {
			return 0, err
		}
		finish, err := optionalDate(table, fields, "finish_date")
		if err != nil {
			return 0, err
		}
		rating, err := optionalRating(table, fields, "rating")
		if err != nil {
			return 0, err
		}
		id := t.NextID(table)
		t.Reading = append(t.Reading, entities.Reading{
			ID: id, BookID: bookID, StartDate: start, FinishDate: finish, Rating: rating,
		})
		return id, nil

	case entities.TableBooksAuthors:
		bookID, err := requiredInt(table, fields, "book_id")
		if err != nil {
			return 0, err
		}
		authorID, err := requiredInt(table, fields, "author_id")
		if err != nil {
			return 0, err
		}
		if t.BookByID(bookID) == nil {
			return 0, &ReferentialError{Table: table, Column: "book_id", ID: bookID}
		}
		if t.AuthorByID(authorID) == nil {
			return 0, &ReferentialError{Table: table, Column: "author_id", ID: authorID}
		}
		for _, row := range t.BooksAuthors {
			if row.BookID == bookID && row.AuthorID == authorID {
				return 0, &ValidationError{Table: table, Column: "author_id", Reason: "association already exists"}
			}
		}
		t.BooksAuthors = append(t.BooksAuthors, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
		return 0, nil

	case entities.TableBooksGenres:
		bookID, err := requiredInt(table, fields, "book_id")
		if err != nil {
			return 0, err
		}
		genreID, err := requiredInt(table, fields, "genre_id")
		if err != nil {
			return 0, err
		}
		if t.BookByID(bookID) == nil {
			return 0, &ReferentialError{Table: table, Column: "book_id", ID: bookID}
		}
		if t.GenreByID(genreID) == nil {
			return 0, &ReferentialError{Table: table, Column: "genre_id", ID: genreID}
		}
		for _, row := range t.BooksGenres {
			if row.BookID == bookID && row.GenreID == genreID {
				return 0, &ValidationError{Table: table, Column: "genre_id", Reason: "association already exists"}
			}
		}
		t.BooksGenres = append(t.BooksGenres, entities.BookGenre{BookID: bookID, GenreID: genreID})
		return 0, nil

	case entities.TableBooksSeries:
		bookID, err := requiredInt(table, fields, "book_id")
		if err != nil {
			return 0, err
		}
		seriesID, err := requiredInt(table, fields, "series_id")
		if err != nil {
			return 0, err
		}
		order, err := requiredInt(table, fields, "series_order")
		if err != nil {
			return 0, err
		}
		if t.BookByID(bookID) == nil {
			return 0, &ReferentialError{Table: table, Column: "book_id", ID: bookID}
		}
		seriesExists := false
		for _, s := range t.Series {
			if s.ID == seriesID {
				seriesExists = true
				break
			}
		}
		if !seriesExists {
			return 0, &ReferentialError{Table: table, Column: "series_id", ID: seriesID}
		}
		t.BooksSeries = append(t.BooksSeries, entities.BookSeries{BookID: bookID, SeriesID: seriesID, SeriesOrder: order})
		return 0, nil
	}
	return 0, &ValidationError{Table: table, Column: "", Reason: "unknown table"}
}

// EditEntry overwrites targetColumn on every row where matchColumn
// equals matchValue. NotFoundError if nothing matched.
func (t *TableSet) EditEntry(table, matchColumn string, matchValue any, targetColumn string, newValue any) error {
	if err := checkColumn(table, matchColumn); err != nil {
		return err
	}
	if err := checkColumn(table, targetColumn); err != nil {
		return err
	}
	matched := 0
	switch table {
	case entities.TableBooks:
		for i := range t.Books {
			if !valueEquals(bookField(t.Books[i], matchColumn), matchValue) {
				continue
			}
			if err := setBookField(&t.Books[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableAuthors:
		for i := range t.Authors {
			if !valueEquals(authorField(t.Authors[i], matchColumn), matchValue) {
				continue
			}
			if err := setAuthorField(&t.Authors[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableGenres:
		for i := range t.Genres {
			if !valueEquals(genreField(t.Genres[i], matchColumn), matchValue) {
				continue
			}
			if err := setGenreField(&t.Genres[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableSeries:
		for i := range t.Series {
			if !valueEquals(seriesField(t.Series[i], matchColumn), matchValue) {
				continue
			}
			if err := setSeriesField(&t.Series[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableReading:
		for i := range t.Reading {
			if !valueEquals(readingField(t.Reading[i], matchColumn), matchValue) {
				continue
			}
			if err := t.setReadingField(&t.Reading[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableBooksAuthors:
		for i := range t.BooksAuthors {
			if !valueEquals(bookAuthorField(t.BooksAuthors[i], matchColumn), matchValue) {
				continue
			}
			if err := t.setBookAuthorField(&t.BooksAuthors[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableBooksGenres:
		for i := range t.BooksGenres {
			if !valueEquals(bookGenreField(t.BooksGenres[i], matchColumn), matchValue) {
				continue
			}
			if err := t.setBookGenreField(&t.BooksGenres[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	case entities.TableBooksSeries:
		for i := range t.BooksSeries {
			if !valueEquals(bookSeriesField(t.BooksSeries[i], matchColumn), matchValue) {
				continue
			}
			if err := t.setBookSeriesField(&t.BooksSeries[i], targetColumn, newValue); err != nil {
				return err
			}
			matched++
		}
	}
	if matched == 0 {
		return &NotFoundError{Table: table, Column: matchColumn, Value: matchValue}
	}
	return nil
}

// DeleteEntry removes every row where matchColumn equals matchValue and
// returns the number removed. Zero matches is not an error here; the
// callers decide whether that is a NotFoundError or a cascade no-op.
func (t *TableSet) DeleteEntry(table, matchColumn string, matchValue any) (int, error) {
	if err := checkColumn(table, matchColumn); err != nil {
		return 0, err
	}
	removed := 0
	switch table {
	case entities.TableBooks:
		t.Books, removed = deleteMatching(t.Books, func(r entities.Book) bool {
			return valueEquals(bookField(r, matchColumn), matchValue)
		})
	case entities.TableAuthors:
		t.Authors, removed = deleteMatching(t.Authors, func(r entities.Author) bool {
			return valueEquals(authorField(r, matchColumn), matchValue)
		})
	case entities.TableGenres:
		t.Genres, removed = deleteMatching(t.Genres, func(r entities.Genre) bool {
			return valueEquals(genreField(r, matchColumn), matchValue)
		})
	case entities.TableSeries:
		t.Series, removed = deleteMatching(t.Series, func(r entities.Series) bool {
			return valueEquals(seriesField(r, matchColumn), matchValue)
		})
	case entities.TableReading:
		t.Reading, removed = deleteMatching(t.Reading, func(r entities.Reading) bool {
			return valueEquals(readingField(r, matchColumn), matchValue)
		})
	case entities.TableBooksAuthors:
		t.BooksAuthors, removed = deleteMatching(t.BooksAuthors, func(r entities.BookAuthor) bool {
			return valueEquals(bookAuthorField(r, matchColumn), matchValue)
		})
	case entities.TableBooksGenres:
		t.BooksGenres, removed = deleteMatching(t.BooksGenres, func(r entities.BookGenre) bool {
			return valueEquals(bookGenreField(r, matchColumn), matchValue)
		})
	case entities.TableBooksSeries:
		t.BooksSeries, removed = deleteMatching(t.BooksSeries, func(r entities.BookSeries) bool {
			return valueEquals(bookSeriesField(r, matchColumn), matchValue)
		})
	}
	return removed, nil
}

func deleteMatching[R any](rows []R, match func(R) bool) ([]R, int) {
	kept := rows[:0]
	removed := 0
	for _, row := range rows {
		if match(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}
