package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoebeshelves/shelves/internal/entities"
)

func TestTableSet_AddEntry_Validation(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		fields map[string]any
	}{
		{"missing title", entities.TableBooks, map[string]any{}},
		{"empty title", entities.TableBooks, map[string]any{"title": ""}},
		{"zero page count", entities.TableBooks, map[string]any{"title": "x", "book_length": 0}},
		{"negative page count", entities.TableBooks, map[string]any{"title": "x", "book_length": -3}},
		{"rating above range", entities.TableBooks, map[string]any{"title": "x", "rating": 6}},
		{"rating below range", entities.TableBooks, map[string]any{"title": "x", "rating": 0}},
		{"unknown column", entities.TableBooks, map[string]any{"title": "x", "publisher": "y"}},
		{"missing last name", entities.TableAuthors, map[string]any{"first_name": "A"}},
		{"missing genre name", entities.TableGenres, map[string]any{}},
		{"bad reading date", entities.TableReading, map[string]any{"book_id": 1, "start_date": "01/02/2020"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := testSet(t)
			_, err := set.AddEntry(tt.table, tt.fields)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestTableSet_AddEntry_OptionalFieldsAbsent(t *testing.T) {
	set := testSet(t)

	id, err := set.AddEntry(entities.TableBooks, map[string]any{"title": "Bare"})
	require.NoError(t, err)

	book := set.BookByID(id)
	require.NotNil(t, book)
	assert.Nil(t, book.BookLength)
	assert.Nil(t, book.Rating)
}

func TestTableSet_AddEntry_EmptyStringMeansAbsent(t *testing.T) {
	set := testSet(t)

	id, err := set.AddEntry(entities.TableAuthors, map[string]any{
		"last_name":  "Austen",
		"first_name": "",
	})
	require.NoError(t, err)

	author := set.AuthorByID(id)
	require.NotNil(t, author)
	assert.Nil(t, author.FirstName)
}

func TestTableSet_AddEntry_SeriesAssociation(t *testing.T) {
	set := testSet(t)

	seriesID, err := set.AddEntry(entities.TableSeries, map[string]any{"series_name": "Dune Chronicles"})
	require.NoError(t, err)

	_, err = set.AddEntry(entities.TableBooksSeries, map[string]any{
		"book_id": 1, "series_id": seriesID, "series_order": 1,
	})
	require.NoError(t, err)
	assert.Len(t, set.BooksSeries, 1)

	_, err = set.AddEntry(entities.TableBooksSeries, map[string]any{
		"book_id": 42, "series_id": seriesID, "series_order": 2,
	})
	var rerr *ReferentialError
	require.ErrorAs(t, err, &rerr)
}

func TestTableSet_EditEntry_ReadingBookRef(t *testing.T) {
	set := testSet(t)

	err := set.EditEntry(entities.TableReading, "id", 1, "book_id", 2)
	require.NoError(t, err)

	err = set.EditEntry(entities.TableReading, "id", 1, "book_id", 99)
	var rerr *ReferentialError
	require.ErrorAs(t, err, &rerr)
}

func TestCheckColumn(t *testing.T) {
	assert.NoError(t, CheckColumn(entities.TableBooks, "title"))
	assert.Error(t, CheckColumn(entities.TableBooks, "publisher"))
	assert.Error(t, CheckColumn("invoices", "id"))
}

func TestNormalizeValue(t *testing.T) {
	v, err := NormalizeValue(entities.TableReading, "start_date", "2020-05-01")
	require.NoError(t, err)
	d, ok := v.(*time.Time)
	require.True(t, ok)
	assert.Equal(t, date(t, "2020-05-01"), *d)

	v, err = NormalizeValue(entities.TableBooks, "book_length", 200)
	require.NoError(t, err)
	assert.Equal(t, 200, v)

	_, err = NormalizeValue(entities.TableBooks, "rating", 9)
	assert.Error(t, err)
}
