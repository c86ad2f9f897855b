package csvstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/model"
)

// tableHeaders pins the column order of every table file. A loaded file
// whose header differs is a schema mismatch and fails the load.
var tableHeaders = map[string][]string{
	entities.TableBooks:        {"id", "title", "book_length", "rating"},
	entities.TableAuthors:      {"id", "first_name", "middle_name", "last_name", "suffix"},
	entities.TableGenres:       {"id", "name"},
	entities.TableSeries:       {"id", "series_name"},
	entities.TableReading:      {"id", "book_id", "start_date", "finish_date", "rating"},
	entities.TableBooksAuthors: {"book_id", "author_id"},
	entities.TableBooksGenres:  {"book_id", "genre_id"},
	entities.TableBooksSeries:  {"book_id", "series_id", "series_order"},
}

func checkHeader(table string, header []string) error {
	want := tableHeaders[table]
	if len(header) != len(want) {
		return &model.StorageError{Table: table, Err: fmt.Errorf("expected %d columns, found %d", len(want), len(header))}
	}
	for i, col := range want {
		if header[i] != col {
			return &model.StorageError{Table: table, Err: fmt.Errorf("expected column %q, found %q", col, header[i])}
		}
	}
	return nil
}

func unmarshalTable(set *model.TableSet, table string, records [][]string) error {
	if err := checkHeader(table, records[0]); err != nil {
		return err
	}
	rows := records[1:]
	for line, rec := range rows {
		if err := unmarshalRow(set, table, rec); err != nil {
			return &model.StorageError{Table: table, Err: fmt.Errorf("row %d: %w", line+2, err)}
		}
	}
	return nil
}

func unmarshalRow(set *model.TableSet, table string, rec []string) error {
	switch table {
	case entities.TableBooks:
		id, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		length, err := parseOptInt(rec[2])
		if err != nil {
			return err
		}
		rating, err := parseOptInt(rec[3])
		if err != nil {
			return err
		}
		set.Books = append(set.Books, entities.Book{ID: id, Title: rec[1], BookLength: length, Rating: rating})
	case entities.TableAuthors:
		id, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		set.Authors = append(set.Authors, entities.Author{
			ID:         id,
			FirstName:  optString(rec[1]),
			MiddleName: optString(rec[2]),
			LastName:   rec[3],
			Suffix:     optString(rec[4]),
		})
	case entities.TableGenres:
		id, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		set.Genres = append(set.Genres, entities.Genre{ID: id, Name: rec[1]})
	case entities.TableSeries:
		id, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		set.Series = append(set.Series, entities.Series{ID: id, SeriesName: rec[1]})
	case entities.TableReading:
		id, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		bookID, err := parseInt(rec[1])
		if err != nil {
			return err
		}
		start, err := parseOptDate(rec[2])
		if err != nil {
			return err
		}
		finish, err := parseOptDate(rec[3])
		if err != nil {
			return err
		}
		rating, err := parseOptInt(rec[4])
		if err != nil {
			return err
		}
		set.Reading = append(set.Reading, entities.Reading{
			ID: id, BookID: bookID, StartDate: start, FinishDate: finish, Rating: rating,
		})
	case entities.TableBooksAuthors:
		bookID, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		authorID, err := parseInt(rec[1])
		if err != nil {
			return err
		}
		set.BooksAuthors = append(set.BooksAuthors, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
	case entities.TableBooksGenres:
		bookID, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		genreID, err := parseInt(rec[1])
		if err != nil {
			return err
		}
		set.BooksGenres = append(set.BooksGenres, entities.BookGenre{BookID: bookID, GenreID: genreID})
	case entities.TableBooksSeries:
		bookID, err := parseInt(rec[0])
		if err != nil {
			return err
		}
		seriesID, err := parseInt(rec[1])
		if err != nil {
			return err
		}
		order, err := parseInt(rec[2])
		if err != nil {
			return err
		}
		set.BooksSeries = append(set.BooksSeries, entities.BookSeries{BookID: bookID, SeriesID: seriesID, SeriesOrder: order})
	}
	return nil
}

func marshalTable(set *model.TableSet, table string) ([][]string, error) {
	records := [][]string{tableHeaders[table]}
	switch table {
	case entities.TableBooks:
		for _, r := range set.Books {
			records = append(records, []string{
				strconv.Itoa(r.ID), r.Title, formatOptInt(r.BookLength), formatOptInt(r.Rating),
			})
		}
	case entities.TableAuthors:
		for _, r := range set.Authors {
			records = append(records, []string{
				strconv.Itoa(r.ID), formatOptString(r.FirstName), formatOptString(r.MiddleName),
				r.LastName, formatOptString(r.Suffix),
			})
		}
	case entities.TableGenres:
		for _, r := range set.Genres {
			records = append(records, []string{strconv.Itoa(r.ID), r.Name})
		}
	case entities.TableSeries:
		for _, r := range set.Series {
			records = append(records, []string{strconv.Itoa(r.ID), r.SeriesName})
		}
	case entities.TableReading:
		for _, r := range set.Reading {
			records = append(records, []string{
				strconv.Itoa(r.ID), strconv.Itoa(r.BookID),
				formatOptDate(r.StartDate), formatOptDate(r.FinishDate), formatOptInt(r.Rating),
			})
		}
	case entities.TableBooksAuthors:
		for _, r := range set.BooksAuthors {
			records = append(records, []string{strconv.Itoa(r.BookID), strconv.Itoa(r.AuthorID)})
		}
	case entities.TableBooksGenres:
		for _, r := range set.BooksGenres {
			records = append(records, []string{strconv.Itoa(r.BookID), strconv.Itoa(r.GenreID)})
		}
	case entities.TableBooksSeries:
		for _, r := range set.BooksSeries {
			records = append(records, []string{
				strconv.Itoa(r.BookID), strconv.Itoa(r.SeriesID), strconv.Itoa(r.SeriesOrder),
			})
		}
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return records, nil
}

func parseInt(cell string) (int, error) {
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("expected integer, found %q", cell)
	}
	return v, nil
}

func parseOptInt(cell string) (*int, error) {
	if cell == "" {
		return nil, nil
	}
	v, err := parseInt(cell)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptDate(cell string) (*time.Time, error) {
	if cell == "" {
		return nil, nil
	}
	v, err := time.Parse(model.DateLayout, cell)
	if err != nil {
		return nil, fmt.Errorf("expected %s date, found %q", model.DateLayout, cell)
	}
	return &v, nil
}

func optString(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatOptDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(model.DateLayout)
}
