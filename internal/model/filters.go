package model

import "time"

// Column names a filterable column of a friendly view.
type Column string

const (
	ColumnTitle     Column = "Title"
	ColumnAuthor    Column = "Author"
	ColumnGenre     Column = "Genre"
	ColumnRating    Column = "Rating"
	ColumnPages     Column = "Pages"
	ColumnTimesRead Column = "Times Read"
	ColumnStart     Column = "Start"
	ColumnFinish    Column = "Finish"
	ColumnReadTime  Column = "Read Time"
)

// BookColumns are the filterable columns of the books view, in display
// order.
var BookColumns = []Column{
	ColumnTitle, ColumnAuthor, ColumnGenre,
	ColumnRating, ColumnPages, ColumnTimesRead,
}

// ReadingColumns are the filterable columns of the reading view.
var ReadingColumns = []Column{
	ColumnTitle, ColumnAuthor,
	ColumnStart, ColumnFinish, ColumnRating, ColumnReadTime,
}

// Comparison selects the shape of a threshold filter.
type Comparison int

const (
	// CompAtMost keeps rows with value <= the first bound.
	CompAtMost Comparison = iota + 1
	// CompAtLeast keeps rows with value >= the first bound.
	CompAtLeast
	// CompBetween keeps rows with lower <= value <= upper. The caller
	// validates lower <= upper; bounds are not re-ordered here.
	CompBetween
	// CompMissing keeps rows where the value is absent.
	CompMissing
	// CompInYear keeps rows whose date falls in a calendar year. Date
	// columns only.
	CompInYear
)

// Filter narrows a friendly view on one column. Option columns (Title,
// Author, Genre) use IDs; numeric columns use Comp with Bounds; date
// columns use Comp with Dates or Year.
type Filter struct {
	Column Column
	IDs    []int
	Comp   Comparison
	Bounds []float64
	Dates  []time.Time
	Year   int
}

// FilterBooks returns the rows of the books view matching the filter.
// Filters are pure: the input slice is never modified.
func FilterBooks(rows []BookRow, f Filter) ([]BookRow, error) {
	keep := func(row BookRow) bool { return false }
	switch f.Column {
	case ColumnTitle:
		keep = func(row BookRow) bool { return containsID(f.IDs, map[int]bool{row.ID: true}) }
	case ColumnAuthor:
		keep = func(row BookRow) bool { return containsID(f.IDs, row.AuthorIDs) }
	case ColumnGenre:
		keep = func(row BookRow) bool { return containsID(f.IDs, row.GenreIDs) }
	case ColumnRating:
		keep = func(row BookRow) bool { return numericMatch(row.Rating, f) }
	case ColumnPages:
		keep = func(row BookRow) bool { return numericMatch(intValue(row.Pages), f) }
	case ColumnTimesRead:
		keep = func(row BookRow) bool {
			v := float64(row.TimesRead)
			return numericMatch(&v, f)
		}
	default:
		return nil, &ValidationError{Table: "books view", Column: string(f.Column), Reason: "not a filterable column"}
	}
	return filterRows(rows, keep), nil
}

// FilterReading returns the rows of the reading view matching the filter.
func FilterReading(rows []ReadingRow, f Filter) ([]ReadingRow, error) {
	keep := func(row ReadingRow) bool { return false }
	switch f.Column {
	case ColumnTitle:
		keep = func(row ReadingRow) bool { return containsID(f.IDs, map[int]bool{row.BookID: true}) }
	case ColumnAuthor:
		keep = func(row ReadingRow) bool { return containsID(f.IDs, row.AuthorIDs) }
	case ColumnStart:
		keep = func(row ReadingRow) bool { return dateMatch(row.Start, f) }
	case ColumnFinish:
		keep = func(row ReadingRow) bool { return dateMatch(row.Finish, f) }
	case ColumnRating:
		keep = func(row ReadingRow) bool { return numericMatch(intValue(row.Rating), f) }
	case ColumnReadTime:
		keep = func(row ReadingRow) bool { return numericMatch(intValue(row.ReadDays), f) }
	default:
		return nil, &ValidationError{Table: "reading view", Column: string(f.Column), Reason: "not a filterable column"}
	}
	return filterRows(rows, keep), nil
}

func filterRows[R any](rows []R, keep func(R) bool) []R {
	out := make([]R, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// containsID reports whether any chosen id is a member of the row's id
// set. Membership, not equality: a many-to-many row legitimately matches
// any one of its linked ids.
func containsID(chosen []int, set map[int]bool) bool {
	for _, id := range chosen {
		if set[id] {
			return true
		}
	}
	return false
}

func numericMatch(v *float64, f Filter) bool {
	if f.Comp == CompMissing {
		return v == nil
	}
	if v == nil {
		return false
	}
	switch f.Comp {
	case CompAtMost:
		return *v <= f.Bounds[0]
	case CompAtLeast:
		return *v >= f.Bounds[0]
	case CompBetween:
		return f.Bounds[0] <= *v && *v <= f.Bounds[1]
	}
	return false
}

func dateMatch(v *time.Time, f Filter) bool {
	if f.Comp == CompMissing {
		return v == nil
	}
	if v == nil {
		return false
	}
	switch f.Comp {
	case CompAtMost:
		return !v.After(f.Dates[0])
	case CompAtLeast:
		return !v.Before(f.Dates[0])
	case CompBetween:
		return !v.Before(f.Dates[0]) && !v.After(f.Dates[1])
	case CompInYear:
		return v.Year() == f.Year
	}
	return false
}

func intValue(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
