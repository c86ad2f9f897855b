// Package render formats the friendly views as markdown tables for
// terminal display. Numeric columns are right-aligned; absent optional
// values render as empty cells.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phoebeshelves/shelves/internal/model"
)

// BooksHeader is the column order of the rendered books view.
var BooksHeader = []string{"ID", "Title", "Author(s)", "Rating", "Pages", "Times Read", "Genres"}

// ReadingHeader is the column order of the rendered reading view.
var ReadingHeader = []string{"ID", "Title", "Author(s)", "Start", "Finish", "Rating", "Read Time"}

var booksRightAlign = []bool{true, false, false, true, true, true, false}
var readingRightAlign = []bool{true, false, false, false, false, true, true}

// BooksTable renders the books view as a markdown table.
func BooksTable(rows []model.BookRow) string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			strconv.Itoa(row.ID),
			row.Title,
			row.Authors,
			formatRating(row.Rating, row.RatingDerived),
			formatOptInt(row.Pages),
			strconv.Itoa(row.TimesRead),
			row.Genres,
		}
	}
	return table(BooksHeader, cells, booksRightAlign)
}

// ReadingTable renders the reading view as a markdown table.
func ReadingTable(rows []model.ReadingRow) string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			strconv.Itoa(row.ID),
			row.Title,
			row.Authors,
			formatDate(row.Start),
			formatDate(row.Finish),
			formatOptInt(row.Rating),
			formatOptInt(row.ReadDays),
		}
	}
	return table(ReadingHeader, cells, readingRightAlign)
}

// formatRating renders a derived rating with one decimal and a manual
// fallback rating as the integer it was entered as.
func formatRating(v *float64, derived bool) string {
	if v == nil {
		return ""
	}
	if derived {
		return strconv.FormatFloat(*v, 'f', 1, 64)
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(model.DateLayout)
}

func table(header []string, rows [][]string, rightAlign []bool) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			if rightAlign[i] {
				fmt.Fprintf(&b, " %*s |", widths[i], cell)
			} else {
				fmt.Fprintf(&b, " %-*s |", widths[i], cell)
			}
		}
		b.WriteString("\n")
	}

	writeRow(header)
	b.WriteString("|")
	for i, w := range widths {
		if rightAlign[i] {
			b.WriteString(strings.Repeat("-", w+1) + ":|")
		} else {
			b.WriteString(":" + strings.Repeat("-", w+1) + "|")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
