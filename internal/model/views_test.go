package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoebeshelves/shelves/internal/entities"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	d := date(t, s)
	return &d
}

// testSet builds a small library: Dune read twice with ratings, The
// Hobbit started but unfinished with only a manual rating, and a third
// book with no associations at all.
func testSet(t *testing.T) *TableSet {
	t.Helper()
	return &TableSet{
		Books: []entities.Book{
			{ID: 1, Title: "Dune", BookLength: intPtr(412)},
			{ID: 2, Title: "The Hobbit", BookLength: intPtr(310), Rating: intPtr(4)},
			{ID: 3, Title: "Drafts"},
		},
		Authors: []entities.Author{
			{ID: 1, FirstName: strPtr("Frank"), LastName: "Herbert"},
			{ID: 2, FirstName: strPtr("J"), MiddleName: strPtr("R.R."), LastName: "Tolkien", Suffix: strPtr("Jr.")},
		},
		Genres: []entities.Genre{
			{ID: 1, Name: "Sci-Fi"},
			{ID: 2, Name: "Fantasy"},
		},
		Reading: []entities.Reading{
			{ID: 1, BookID: 1, StartDate: datePtr(t, "2020-01-01"), FinishDate: datePtr(t, "2020-01-15"), Rating: intPtr(4)},
			{ID: 2, BookID: 1, StartDate: datePtr(t, "2021-06-01"), FinishDate: datePtr(t, "2021-06-11"), Rating: intPtr(5)},
			{ID: 3, BookID: 2, StartDate: datePtr(t, "2022-03-01")},
		},
		BooksAuthors: []entities.BookAuthor{
			{BookID: 1, AuthorID: 1},
			{BookID: 2, AuthorID: 2},
		},
		BooksGenres: []entities.BookGenre{
			{BookID: 1, GenreID: 1},
			{BookID: 2, GenreID: 2},
		},
	}
}

func TestBuildBooksView_Aggregates(t *testing.T) {
	rows := BuildBooksView(testSet(t))
	require.Len(t, rows, 3)

	dune := rows[0]
	assert.Equal(t, 1, dune.ID)
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Frank Herbert", dune.Authors)
	assert.Equal(t, "Sci-Fi", dune.Genres)
	assert.Equal(t, 2, dune.TimesRead)
	require.NotNil(t, dune.Rating)
	assert.True(t, dune.RatingDerived)
	assert.InDelta(t, 4.5, *dune.Rating, 1e-9)
}

func TestBuildBooksView_ManualRatingFallback(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	hobbit := rows[1]
	assert.Equal(t, "J R.R. Tolkien, Jr.", hobbit.Authors)
	// An unfinished reading carries no finish date, so it counts
	// neither for times read nor for the derived rating.
	assert.Equal(t, 0, hobbit.TimesRead)
	require.NotNil(t, hobbit.Rating)
	assert.False(t, hobbit.RatingDerived)
	assert.Equal(t, 4.0, *hobbit.Rating)
}

func TestBuildBooksView_BookWithoutAssociations(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	drafts := rows[2]
	assert.Equal(t, "Drafts", drafts.Title)
	assert.Empty(t, drafts.Authors)
	assert.Empty(t, drafts.Genres)
	assert.Nil(t, drafts.Rating)
	assert.Nil(t, drafts.Pages)
	assert.Equal(t, 0, drafts.TimesRead)
}

func TestBuildBooksView_DerivedRatingRoundsToTenth(t *testing.T) {
	set := testSet(t)
	set.Reading = append(set.Reading, entities.Reading{
		ID: 4, BookID: 1,
		StartDate:  datePtr(t, "2023-01-01"),
		FinishDate: datePtr(t, "2023-01-02"),
		Rating:     intPtr(4),
	})

	rows := BuildBooksView(set)
	require.NotNil(t, rows[0].Rating)
	// mean of 4, 5, 4 is 4.333..., rounded to one decimal
	assert.InDelta(t, 4.3, *rows[0].Rating, 1e-9)
}

func TestBuildReadingView_SortAndReadDays(t *testing.T) {
	rows := BuildReadingView(testSet(t))
	require.Len(t, rows, 3)

	// Sorted by finish date ascending with missing finishes last.
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].ID, rows[1].ID, rows[2].ID})

	require.NotNil(t, rows[0].ReadDays)
	assert.Equal(t, 14, *rows[0].ReadDays)
	require.NotNil(t, rows[1].ReadDays)
	assert.Equal(t, 10, *rows[1].ReadDays)
	assert.Nil(t, rows[2].ReadDays)
	assert.Nil(t, rows[2].Finish)
}

func TestBuildReadingView_SkipsUnresolvedBook(t *testing.T) {
	set := testSet(t)
	set.Reading = append(set.Reading, entities.Reading{ID: 9, BookID: 42})

	rows := BuildReadingView(set)
	for _, row := range rows {
		assert.NotEqual(t, 9, row.ID)
	}
}

func TestBuildReadingView_MissingFinishSortedByStart(t *testing.T) {
	set := testSet(t)
	set.Reading = append(set.Reading, entities.Reading{
		ID: 4, BookID: 1, StartDate: datePtr(t, "2021-01-01"),
	})

	rows := BuildReadingView(set)
	require.Len(t, rows, 4)
	// Both unfinished entries trail the finished ones, ordered between
	// themselves by start date.
	assert.Equal(t, 4, rows[2].ID)
	assert.Equal(t, 3, rows[3].ID)
}
