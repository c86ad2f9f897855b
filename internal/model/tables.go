// Package model implements the in-memory data model for the reading
// tracker: the table set, surrogate-key allocation, the friendly views
// built by joining and aggregating the normalized tables, the filter
// predicates, and the mutation operations with their cascade rules.
//
// The CSV backend performs all of this in the application; the SQLite
// backend reuses the view and filter code over rows it selects through
// gorm, while delegating cascades to database constraints.
package model

import (
	"sort"

	"github.com/phoebeshelves/shelves/internal/entities"
)

// TableSet is the canonical in-memory representation of all eight
// tables. It is an explicit value threaded through operations; nothing
// in this package keeps ambient state.
type TableSet struct {
	Books        []entities.Book
	Authors      []entities.Author
	Genres       []entities.Genre
	Series       []entities.Series
	Reading      []entities.Reading
	BooksAuthors []entities.BookAuthor
	BooksGenres  []entities.BookGenre
	BooksSeries  []entities.BookSeries
}

// BookByID returns the book with the given id, or nil.
func (t *TableSet) BookByID(id int) *entities.Book {
	for i := range t.Books {
		if t.Books[i].ID == id {
			return &t.Books[i]
		}
	}
	return nil
}

// AuthorByID returns the author with the given id, or nil.
func (t *TableSet) AuthorByID(id int) *entities.Author {
	for i := range t.Authors {
		if t.Authors[i].ID == id {
			return &t.Authors[i]
		}
	}
	return nil
}

// GenreByID returns the genre with the given id, or nil.
func (t *TableSet) GenreByID(id int) *entities.Genre {
	for i := range t.Genres {
		if t.Genres[i].ID == id {
			return &t.Genres[i]
		}
	}
	return nil
}

// BookLookup maps each title to its book id.
func (t *TableSet) BookLookup() map[string]int {
	lookup := make(map[string]int, len(t.Books))
	for _, b := range t.Books {
		lookup[b.Title] = b.ID
	}
	return lookup
}

// AuthorLookup maps each formatted full name to its author id.
func (t *TableSet) AuthorLookup() map[string]int {
	lookup := make(map[string]int, len(t.Authors))
	for _, a := range t.Authors {
		lookup[a.FullName()] = a.ID
	}
	return lookup
}

// GenreLookup maps each genre name to its genre id.
func (t *TableSet) GenreLookup() map[string]int {
	lookup := make(map[string]int, len(t.Genres))
	for _, g := range t.Genres {
		lookup[g.Name] = g.ID
	}
	return lookup
}

// AuthorsByLastName returns the formatted-name lookup restricted to
// authors with the given last name. Used by the manage workflows to
// narrow a typed last name to candidate authors.
func (t *TableSet) AuthorsByLastName(lastName string) map[string]int {
	lookup := make(map[string]int)
	for _, a := range t.Authors {
		if a.LastName == lastName {
			lookup[a.FullName()] = a.ID
		}
	}
	return lookup
}

// ReadingIDsForBook returns the ids of all reading events for a book,
// in id order.
func (t *TableSet) ReadingIDsForBook(bookID int) []int {
	var ids []int
	for _, r := range t.Reading {
		if r.BookID == bookID {
			ids = append(ids, r.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

// tableIDs returns the surrogate keys currently present in an id-keyed
// table. Association tables have no surrogate key and return nil.
func (t *TableSet) tableIDs(table string) []int {
	switch table {
	case entities.TableBooks:
		ids := make([]int, len(t.Books))
		for i, row := range t.Books {
			ids[i] = row.ID
		}
		return ids
	case entities.TableAuthors:
		ids := make([]int, len(t.Authors))
		for i, row := range t.Authors {
			ids[i] = row.ID
		}
		return ids
	case entities.TableGenres:
		ids := make([]int, len(t.Genres))
		for i, row := range t.Genres {
			ids[i] = row.ID
		}
		return ids
	case entities.TableSeries:
		ids := make([]int, len(t.Series))
		for i, row := range t.Series {
			ids[i] = row.ID
		}
		return ids
	case entities.TableReading:
		ids := make([]int, len(t.Reading))
		for i, row := range t.Reading {
			ids[i] = row.ID
		}
		return ids
	}
	return nil
}
