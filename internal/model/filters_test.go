package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBooks_PagesBetweenIsInclusive(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	got, err := FilterBooks(rows, Filter{
		Column: ColumnPages,
		Comp:   CompBetween,
		Bounds: []float64{310, 412},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "The Hobbit", got[1].Title)
}

func TestFilterBooks_RatingAtLeast(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	got, err := FilterBooks(rows, Filter{
		Column: ColumnRating,
		Comp:   CompAtLeast,
		Bounds: []float64{4.5},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

func TestFilterBooks_PagesMissing(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	got, err := FilterBooks(rows, Filter{Column: ColumnPages, Comp: CompMissing})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Drafts", got[0].Title)
}

func TestFilterBooks_AuthorMembership(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	got, err := FilterBooks(rows, Filter{Column: ColumnAuthor, IDs: []int{2}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Hobbit", got[0].Title)

	// Several chosen ids keep a row matching any one of them.
	got, err = FilterBooks(rows, Filter{Column: ColumnAuthor, IDs: []int{1, 2}})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFilterBooks_TimesRead(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	got, err := FilterBooks(rows, Filter{
		Column: ColumnTimesRead,
		Comp:   CompAtLeast,
		Bounds: []float64{1},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

func TestFilterBooks_UnknownColumn(t *testing.T) {
	rows := BuildBooksView(testSet(t))

	_, err := FilterBooks(rows, Filter{Column: ColumnStart})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFilterBooks_DoesNotModifyInput(t *testing.T) {
	rows := BuildBooksView(testSet(t))
	before := len(rows)

	_, err := FilterBooks(rows, Filter{Column: ColumnPages, Comp: CompMissing})
	require.NoError(t, err)
	assert.Len(t, rows, before)
}

func TestFilterReading_FinishInYear(t *testing.T) {
	rows := BuildReadingView(testSet(t))

	got, err := FilterReading(rows, Filter{Column: ColumnFinish, Comp: CompInYear, Year: 2021})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestFilterReading_FinishMissing(t *testing.T) {
	rows := BuildReadingView(testSet(t))

	got, err := FilterReading(rows, Filter{Column: ColumnFinish, Comp: CompMissing})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestFilterReading_StartBetween(t *testing.T) {
	rows := BuildReadingView(testSet(t))

	got, err := FilterReading(rows, Filter{
		Column: ColumnStart,
		Comp:   CompBetween,
		Dates:  []time.Time{date(t, "2020-01-01"), date(t, "2021-12-31")},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestFilterReading_ReadTimeAtMost(t *testing.T) {
	rows := BuildReadingView(testSet(t))

	got, err := FilterReading(rows, Filter{
		Column: ColumnReadTime,
		Comp:   CompAtMost,
		Bounds: []float64{10},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}
