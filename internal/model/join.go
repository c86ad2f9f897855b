package model

import (
	"math"
	"strings"

	"github.com/phoebeshelves/shelves/internal/entities"
)

// groupBy buckets rows by a key, preserving row order within a bucket.
func groupBy[R any, K comparable](rows []R, key func(R) K) map[K][]R {
	grouped := make(map[K][]R)
	for _, row := range rows {
		k := key(row)
		grouped[k] = append(grouped[k], row)
	}
	return grouped
}

// nameAgg is the per-book aggregate of one many-to-many association:
// the comma-joined display names plus the matching id set used by the
// option filter.
type nameAgg struct {
	Names string
	IDs   map[int]bool
}

// readingAgg is the per-book aggregate of the reading table.
type readingAgg struct {
	AvgRating *float64 // mean of non-nil ratings, rounded to one decimal
	TimesRead int      // count of non-nil finish dates
}

// authorsByBook joins books_authors to authors and groups by book id.
// Association rows whose author id does not resolve are dropped rather
// than failing the join.
func authorsByBook(t *TableSet) map[int]nameAgg {
	grouped := groupBy(t.BooksAuthors, func(ba entities.BookAuthor) int { return ba.BookID })
	agg := make(map[int]nameAgg, len(grouped))
	for bookID, rows := range grouped {
		names := make([]string, 0, len(rows))
		ids := make(map[int]bool, len(rows))
		for _, ba := range rows {
			author := t.AuthorByID(ba.AuthorID)
			if author == nil {
				continue
			}
			names = append(names, author.FullName())
			ids[author.ID] = true
		}
		if len(ids) == 0 {
			continue
		}
		agg[bookID] = nameAgg{Names: strings.Join(names, ", "), IDs: ids}
	}
	return agg
}

// genresByBook joins books_genres to genres and groups by book id.
func genresByBook(t *TableSet) map[int]nameAgg {
	grouped := groupBy(t.BooksGenres, func(bg entities.BookGenre) int { return bg.BookID })
	agg := make(map[int]nameAgg, len(grouped))
	for bookID, rows := range grouped {
		names := make([]string, 0, len(rows))
		ids := make(map[int]bool, len(rows))
		for _, bg := range rows {
			genre := t.GenreByID(bg.GenreID)
			if genre == nil {
				continue
			}
			names = append(names, genre.Name)
			ids[genre.ID] = true
		}
		if len(ids) == 0 {
			continue
		}
		agg[bookID] = nameAgg{Names: strings.Join(names, ", "), IDs: ids}
	}
	return agg
}

// readingByBook groups the reading table by book id and computes the
// per-book rating mean and times-read count.
func readingByBook(t *TableSet) map[int]readingAgg {
	grouped := groupBy(t.Reading, func(r entities.Reading) int { return r.BookID })
	agg := make(map[int]readingAgg, len(grouped))
	for bookID, rows := range grouped {
		var entry readingAgg
		var sum, rated int
		for _, r := range rows {
			if r.Rating != nil {
				sum += *r.Rating
				rated++
			}
			if r.FinishDate != nil {
				entry.TimesRead++
			}
		}
		if rated > 0 {
			mean := roundToTenth(float64(sum) / float64(rated))
			entry.AvgRating = &mean
		}
		agg[bookID] = entry
	}
	return agg
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
