package model

import (
	"sort"
	"time"
)

// BookRow is one row of the friendly books view: the denormalized,
// display-ready projection of a book with its author, genre, and reading
// aggregates. AuthorIDs and GenreIDs back the option filter.
type BookRow struct {
	ID        int
	Title     string
	Authors   string
	AuthorIDs map[int]bool
	Rating    *float64
	// RatingDerived marks a rating computed from reading events, as
	// opposed to the book's manually entered fallback.
	RatingDerived bool
	Pages         *int
	TimesRead     int
	Genres        string
	GenreIDs      map[int]bool
}

// ReadingRow is one row of the friendly reading view: a reading event
// joined to its book title and author aggregate.
type ReadingRow struct {
	ID        int
	BookID    int
	Title     string
	Authors   string
	AuthorIDs map[int]bool
	Start     *time.Time
	Finish    *time.Time
	Rating    *int
	// ReadDays is finish minus start in whole days, present only when
	// both dates are.
	ReadDays *int
}

// BuildBooksView builds the friendly books view. Every book appears,
// including books with no linked authors, genres, or reading events; the
// association aggregates are left joins. A book's rating is the mean of
// its non-nil reading ratings when at least one exists, else the manual
// rating, else absent.
func BuildBooksView(t *TableSet) []BookRow {
	authors := authorsByBook(t)
	genres := genresByBook(t)
	reading := readingByBook(t)

	rows := make([]BookRow, 0, len(t.Books))
	for _, book := range t.Books {
		row := BookRow{
			ID:        book.ID,
			Title:     book.Title,
			AuthorIDs: map[int]bool{},
			GenreIDs:  map[int]bool{},
			Pages:     book.BookLength,
		}
		if agg, ok := authors[book.ID]; ok {
			row.Authors = agg.Names
			row.AuthorIDs = agg.IDs
		}
		if agg, ok := genres[book.ID]; ok {
			row.Genres = agg.Names
			row.GenreIDs = agg.IDs
		}
		agg := reading[book.ID]
		row.TimesRead = agg.TimesRead
		switch {
		case agg.AvgRating != nil:
			row.Rating = agg.AvgRating
			row.RatingDerived = true
		case book.Rating != nil:
			manual := float64(*book.Rating)
			row.Rating = &manual
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// BuildReadingView builds the friendly reading view, sorted ascending by
// finish date with missing finish dates last, then by start date.
// Reading rows whose book id does not resolve are skipped.
func BuildReadingView(t *TableSet) []ReadingRow {
	authors := authorsByBook(t)

	rows := make([]ReadingRow, 0, len(t.Reading))
	for _, r := range t.Reading {
		book := t.BookByID(r.BookID)
		if book == nil {
			continue
		}
		row := ReadingRow{
			ID:        r.ID,
			BookID:    r.BookID,
			Title:     book.Title,
			AuthorIDs: map[int]bool{},
			Start:     r.StartDate,
			Finish:    r.FinishDate,
			Rating:    r.Rating,
		}
		if agg, ok := authors[r.BookID]; ok {
			row.Authors = agg.Names
			row.AuthorIDs = agg.IDs
		}
		if r.StartDate != nil && r.FinishDate != nil {
			days := int(r.FinishDate.Sub(*r.StartDate).Hours() / 24)
			row.ReadDays = &days
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareDates(rows[i].Finish, rows[j].Finish); c != 0 {
			return c < 0
		}
		return compareDates(rows[i].Start, rows[j].Start) < 0
	})
	return rows
}

// compareDates orders two optional dates ascending with nil sorted last.
func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	}
	return 0
}
