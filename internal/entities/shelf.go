// Package entities defines the row types for the eight logical tables of
// the reading tracker. The same structs back both storage engines: the
// CSV backend maps them to per-table files, the SQLite backend maps them
// to relational tables through the gorm tags.
package entities

import (
	"strings"
	"time"
)

// Table names, shared by both backends and the CLI.
const (
	TableBooks        = "books"
	TableAuthors      = "authors"
	TableGenres       = "genres"
	TableSeries       = "series"
	TableReading      = "reading"
	TableBooksAuthors = "books_authors"
	TableBooksGenres  = "books_genres"
	TableBooksSeries  = "books_series"
)

// AllTables lists every table in load order.
var AllTables = []string{
	TableAuthors,
	TableBooks,
	TableGenres,
	TableReading,
	TableSeries,
	TableBooksAuthors,
	TableBooksGenres,
	TableBooksSeries,
}

type Book struct {
	ID         int     `gorm:"primaryKey;autoIncrement:false"`
	Title      string  `gorm:"size:512;not null"`
	BookLength *int    `gorm:"column:book_length"`
	Rating     *int    // manual rating, used only when no reading-derived rating exists
}

type Author struct {
	ID         int     `gorm:"primaryKey;autoIncrement:false"`
	FirstName  *string `gorm:"size:128"`
	MiddleName *string `gorm:"size:128"`
	LastName   string  `gorm:"size:128;not null"`
	Suffix     *string `gorm:"size:32"`
}

type Genre struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:128;not null"`
}

type Series struct {
	ID         int    `gorm:"primaryKey;autoIncrement:false"`
	SeriesName string `gorm:"column:series_name;size:256;not null"`
}

type Reading struct {
	ID         int        `gorm:"primaryKey;autoIncrement:false"`
	BookID     int        `gorm:"index;not null"`
	Book       Book       `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	StartDate  *time.Time `gorm:"column:start_date;type:date"`
	FinishDate *time.Time `gorm:"column:finish_date;type:date"`
	Rating     *int
}

type BookAuthor struct {
	BookID   int    `gorm:"primaryKey;autoIncrement:false"`
	AuthorID int    `gorm:"primaryKey;autoIncrement:false"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Author   Author `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

type BookGenre struct {
	BookID  int   `gorm:"primaryKey;autoIncrement:false"`
	GenreID int   `gorm:"primaryKey;autoIncrement:false"`
	Book    Book  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Genre   Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

type BookSeries struct {
	BookID      int    `gorm:"primaryKey;autoIncrement:false"`
	SeriesID    int    `gorm:"primaryKey;autoIncrement:false"`
	SeriesOrder int    `gorm:"primaryKey;autoIncrement:false;column:series_order"`
	Book        Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Series      Series `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}

func (Book) TableName() string       { return TableBooks }
func (Author) TableName() string     { return TableAuthors }
func (Genre) TableName() string      { return TableGenres }
func (Series) TableName() string     { return TableSeries }
func (Reading) TableName() string    { return TableReading }
func (BookAuthor) TableName() string { return TableBooksAuthors }
func (BookGenre) TableName() string  { return TableBooksGenres }
func (BookSeries) TableName() string { return TableBooksSeries }

// FullName joins the author's name components with single spaces, skipping
// absent parts, and appends ", <suffix>" when a suffix is present.
func (a Author) FullName() string {
	var b strings.Builder
	for _, part := range []*string{a.FirstName, a.MiddleName} {
		if part != nil && *part != "" {
			b.WriteString(*part)
			b.WriteString(" ")
		}
	}
	b.WriteString(a.LastName)
	if a.Suffix != nil && *a.Suffix != "" {
		b.WriteString(", ")
		b.WriteString(*a.Suffix)
	}
	return b.String()
}
