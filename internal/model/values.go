package model

import (
	"time"

	"github.com/phoebeshelves/shelves/internal/entities"
)

// Field getters return the current value of a column as one of: int,
// string, *int, *string, *time.Time. Column names were validated by the
// caller.

func bookField(b entities.Book, column string) any {
	switch column {
	case "id":
		return b.ID
	case "title":
		return b.Title
	case "book_length":
		return b.BookLength
	case "rating":
		return b.Rating
	}
	return nil
}

func authorField(a entities.Author, column string) any {
	switch column {
	case "id":
		return a.ID
	case "first_name":
		return a.FirstName
	case "middle_name":
		return a.MiddleName
	case "last_name":
		return a.LastName
	case "suffix":
		return a.Suffix
	}
	return nil
}

func genreField(g entities.Genre, column string) any {
	switch column {
	case "id":
		return g.ID
	case "name":
		return g.Name
	}
	return nil
}

func seriesField(s entities.Series, column string) any {
	switch column {
	case "id":
		return s.ID
	case "series_name":
		return s.SeriesName
	}
	return nil
}

func readingField(r entities.Reading, column string) any {
	switch column {
	case "id":
		return r.ID
	case "book_id":
		return r.BookID
	case "start_date":
		return r.StartDate
	case "finish_date":
		return r.FinishDate
	case "rating":
		return r.Rating
	}
	return nil
}

func bookAuthorField(r entities.BookAuthor, column string) any {
	switch column {
	case "book_id":
		return r.BookID
	case "author_id":
		return r.AuthorID
	}
	return nil
}

func bookGenreField(r entities.BookGenre, column string) any {
	switch column {
	case "book_id":
		return r.BookID
	case "genre_id":
		return r.GenreID
	}
	return nil
}

func bookSeriesField(r entities.BookSeries, column string) any {
	switch column {
	case "book_id":
		return r.BookID
	case "series_id":
		return r.SeriesID
	case "series_order":
		return r.SeriesOrder
	}
	return nil
}

// Field setters validate and assign a new value. nil clears an optional
// column; assigning nil to a required column is a validation error.

func setBookField(b *entities.Book, column string, value any) error {
	switch column {
	case "id":
		return &ValidationError{Table: entities.TableBooks, Column: column, Reason: "surrogate keys are immutable"}
	case "title":
		s, ok := coerceString(value)
		if !ok || s == "" {
			return &ValidationError{Table: entities.TableBooks, Column: column, Reason: "must be a non-empty string"}
		}
		b.Title = s
	case "book_length":
		v, err := coerceOptionalPosInt(entities.TableBooks, column, value)
		if err != nil {
			return err
		}
		b.BookLength = v
	case "rating":
		v, err := coerceOptionalRating(entities.TableBooks, column, value)
		if err != nil {
			return err
		}
		b.Rating = v
	}
	return nil
}

func setAuthorField(a *entities.Author, column string, value any) error {
	switch column {
	case "id":
		return &ValidationError{Table: entities.TableAuthors, Column: column, Reason: "surrogate keys are immutable"}
	case "last_name":
		s, ok := coerceString(value)
		if !ok || s == "" {
			return &ValidationError{Table: entities.TableAuthors, Column: column, Reason: "must be a non-empty string"}
		}
		a.LastName = s
	case "first_name", "middle_name", "suffix":
		v, err := coerceOptionalString(entities.TableAuthors, column, value)
		if err != nil {
			return err
		}
		switch column {
		case "first_name":
			a.FirstName = v
		case "middle_name":
			a.MiddleName = v
		case "suffix":
			a.Suffix = v
		}
	}
	return nil
}

func setGenreField(g *entities.Genre, column string, value any) error {
	switch column {
	case "id":
		return &ValidationError{Table: entities.TableGenres, Column: column, Reason: "surrogate keys are immutable"}
	case "name":
		s, ok := coerceString(value)
		if !ok || s == "" {
			return &ValidationError{Table: entities.TableGenres, Column: column, Reason: "must be a non-empty string"}
		}
		g.Name = s
	}
	return nil
}

func setSeriesField(s *entities.Series, column string, value any) error {
	switch column {
	case "id":
		return &ValidationError{Table: entities.TableSeries, Column: column, Reason: "surrogate keys are immutable"}
	case "series_name":
		name, ok := coerceString(value)
		if !ok || name == "" {
			return &ValidationError{Table: entities.TableSeries, Column: column, Reason: "must be a non-empty string"}
		}
		s.SeriesName = name
	}
	return nil
}

func (t *TableSet) setReadingField(r *entities.Reading, column string, value any) error {
	switch column {
	case "id":
		return &ValidationError{Table: entities.TableReading, Column: column, Reason: "surrogate keys are immutable"}
	case "book_id":
		id, ok := coerceInt(value)
		if !ok {
			return &ValidationError{Table: entities.TableReading, Column: column, Reason: "must be an integer"}
		}
		if t.BookByID(id) == nil {
			return &ReferentialError{Table: entities.TableReading, Column: column, ID: id}
		}
		r.BookID = id
	case "start_date":
		v, err := coerceOptionalDate(entities.TableReading, column, value)
		if err != nil {
			return err
		}
		r.StartDate = v
	case "finish_date":
		v, err := coerceOptionalDate(entities.TableReading, column, value)
		if err != nil {
			return err
		}
		r.FinishDate = v
	case "rating":
		v, err := coerceOptionalRating(entities.TableReading, column, value)
		if err != nil {
			return err
		}
		r.Rating = v
	}
	return nil
}

func (t *TableSet) setBookAuthorField(r *entities.BookAuthor, column string, value any) error {
	id, ok := coerceInt(value)
	if !ok {
		return &ValidationError{Table: entities.TableBooksAuthors, Column: column, Reason: "must be an integer"}
	}
	switch column {
	case "book_id":
		if t.BookByID(id) == nil {
			return &ReferentialError{Table: entities.TableBooksAuthors, Column: column, ID: id}
		}
		r.BookID = id
	case "author_id":
		if t.AuthorByID(id) == nil {
			return &ReferentialError{Table: entities.TableBooksAuthors, Column: column, ID: id}
		}
		r.AuthorID = id
	}
	return nil
}

func (t *TableSet) setBookGenreField(r *entities.BookGenre, column string, value any) error {
	id, ok := coerceInt(value)
	if !ok {
		return &ValidationError{Table: entities.TableBooksGenres, Column: column, Reason: "must be an integer"}
	}
	switch column {
	case "book_id":
		if t.BookByID(id) == nil {
			return &ReferentialError{Table: entities.TableBooksGenres, Column: column, ID: id}
		}
		r.BookID = id
	case "genre_id":
		if t.GenreByID(id) == nil {
			return &ReferentialError{Table: entities.TableBooksGenres, Column: column, ID: id}
		}
		r.GenreID = id
	}
	return nil
}

func (t *TableSet) setBookSeriesField(r *entities.BookSeries, column string, value any) error {
	id, ok := coerceInt(value)
	if !ok {
		return &ValidationError{Table: entities.TableBooksSeries, Column: column, Reason: "must be an integer"}
	}
	switch column {
	case "book_id":
		if t.BookByID(id) == nil {
			return &ReferentialError{Table: entities.TableBooksSeries, Column: column, ID: id}
		}
		r.BookID = id
	case "series_id":
		r.SeriesID = id
	case "series_order":
		r.SeriesOrder = id
	}
	return nil
}

// NormalizeValue validates a value for a table column and returns it in
// storage form: int, string, *time.Time, or nil for a cleared optional.
// The SQLite backend uses this to validate parameterized updates with
// exactly the rules the in-memory mutations apply.
func NormalizeValue(table, column string, value any) (any, error) {
	if err := checkColumn(table, column); err != nil {
		return nil, err
	}
	switch column {
	case "id", "book_id", "author_id", "genre_id", "series_id", "series_order":
		i, ok := coerceInt(value)
		if !ok {
			return nil, &ValidationError{Table: table, Column: column, Reason: "must be an integer"}
		}
		return i, nil
	case "rating":
		v, err := coerceOptionalRating(table, column, value)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case "book_length":
		v, err := coerceOptionalPosInt(table, column, value)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case "start_date", "finish_date":
		v, err := coerceOptionalDate(table, column, value)
		if err != nil {
			return nil, err
		}
		return v, nil
	case "title", "last_name", "name", "series_name":
		s, ok := coerceString(value)
		if !ok || s == "" {
			return nil, &ValidationError{Table: table, Column: column, Reason: "must be a non-empty string"}
		}
		return s, nil
	case "first_name", "middle_name", "suffix":
		v, err := coerceOptionalString(table, column, value)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return *v, nil
	}
	return nil, &ValidationError{Table: table, Column: column, Reason: "unknown column"}
}

// valueEquals compares a field value against a caller-supplied match
// value, normalizing pointer optionals and integer widths. A nil match
// value matches absent optionals.
func valueEquals(field, match any) bool {
	switch f := field.(type) {
	case int:
		m, ok := coerceInt(match)
		return ok && f == m
	case string:
		m, ok := coerceString(match)
		return ok && f == m
	case *int:
		if match == nil {
			return f == nil
		}
		m, ok := coerceInt(match)
		return ok && f != nil && *f == m
	case *string:
		if match == nil {
			return f == nil
		}
		m, ok := coerceString(match)
		return ok && f != nil && *f == m
	case *time.Time:
		if match == nil {
			return f == nil
		}
		m, ok := coerceDate(match)
		return ok && f != nil && f.Equal(m)
	}
	return false
}

// Coercion helpers. Field maps and EditEntry accept natural Go values
// (int, string, time.Time) and their pointer forms; nil means absent.

func coerceInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case *int:
		if x == nil {
			return 0, false
		}
		return *x, true
	case float64:
		i := int(x)
		if float64(i) == x {
			return i, true
		}
	}
	return 0, false
}

func coerceString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	}
	return "", false
}

func coerceDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		parsed, err := time.Parse(DateLayout, x)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func coerceOptionalString(table, column string, value any) (*string, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := coerceString(value)
	if !ok {
		return nil, &ValidationError{Table: table, Column: column, Reason: "must be a string"}
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func coerceOptionalPosInt(table, column string, value any) (*int, error) {
	if value == nil {
		return nil, nil
	}
	i, ok := coerceInt(value)
	if !ok {
		return nil, &ValidationError{Table: table, Column: column, Reason: "must be an integer"}
	}
	if i <= 0 {
		return nil, &ValidationError{Table: table, Column: column, Reason: "must be positive"}
	}
	return &i, nil
}

func coerceOptionalRating(table, column string, value any) (*int, error) {
	if value == nil {
		return nil, nil
	}
	i, ok := coerceInt(value)
	if !ok {
		return nil, &ValidationError{Table: table, Column: column, Reason: "must be an integer"}
	}
	if i < 1 || i > 5 {
		return nil, &ValidationError{Table: table, Column: column, Reason: "must be between 1 and 5"}
	}
	return &i, nil
}

func coerceOptionalDate(table, column string, value any) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.(string); ok && s == "" {
		return nil, nil
	}
	d, ok := coerceDate(value)
	if !ok {
		return nil, &ValidationError{Table: table, Column: column, Reason: "must be a date in " + DateLayout + " form"}
	}
	return &d, nil
}

// Field-map helpers used by addEntry.

func requiredString(table string, fields map[string]any, key string) (string, error) {
	v, present := fields[key]
	if !present {
		return "", &ValidationError{Table: table, Column: key, Reason: "required"}
	}
	s, ok := coerceString(v)
	if !ok || s == "" {
		return "", &ValidationError{Table: table, Column: key, Reason: "must be a non-empty string"}
	}
	return s, nil
}

func requiredInt(table string, fields map[string]any, key string) (int, error) {
	v, present := fields[key]
	if !present {
		return 0, &ValidationError{Table: table, Column: key, Reason: "required"}
	}
	i, ok := coerceInt(v)
	if !ok {
		return 0, &ValidationError{Table: table, Column: key, Reason: "must be an integer"}
	}
	return i, nil
}

func optionalString(table string, fields map[string]any, key string) (*string, error) {
	v, present := fields[key]
	if !present {
		return nil, nil
	}
	return coerceOptionalString(table, key, v)
}

func optionalPosInt(table string, fields map[string]any, key string) (*int, error) {
	v, present := fields[key]
	if !present {
		return nil, nil
	}
	return coerceOptionalPosInt(table, key, v)
}

func optionalRating(table string, fields map[string]any, key string) (*int, error) {
	v, present := fields[key]
	if !present {
		return nil, nil
	}
	return coerceOptionalRating(table, key, v)
}

func optionalDate(table string, fields map[string]any, key string) (*time.Time, error) {
	v, present := fields[key]
	if !present {
		return nil, nil
	}
	return coerceOptionalDate(table, key, v)
}
