package csvstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/model"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Init(dir, false))
	return New(dir)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	require.NoError(t, err)
	return &d
}

func TestInit_CreatesHeaderOnlyTables(t *testing.T) {
	store := setupStore(t)

	set, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, set.Books)
	assert.Empty(t, set.Authors)
	assert.Empty(t, set.Reading)

	for _, table := range entities.AllTables {
		data, err := os.ReadFile(filepath.Join(store.Dir(), table+".csv"))
		require.NoError(t, err)
		assert.NotEmpty(t, data, "table %s should have a header row", table)
	}
}

func TestInit_PreservesExistingUnlessForced(t *testing.T) {
	store := setupStore(t)

	set, err := store.Load()
	require.NoError(t, err)
	set.Genres = append(set.Genres, entities.Genre{ID: 1, Name: "Poetry"})
	require.NoError(t, store.Save(set, entities.TableGenres))

	// Plain re-init keeps the data.
	dataDir := filepath.Dir(store.Dir())
	require.NoError(t, Init(dataDir, false))
	set, err = store.Load()
	require.NoError(t, err)
	require.Len(t, set.Genres, 1)

	// Forced re-init resets to empty tables.
	require.NoError(t, Init(dataDir, true))
	set, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, set.Genres)
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := setupStore(t)

	set := &model.TableSet{
		Books: []entities.Book{
			{ID: 1, Title: "Dune", BookLength: intPtr(412)},
			{ID: 2, Title: "A Title, With Commas", Rating: intPtr(3)},
		},
		Authors: []entities.Author{
			{ID: 1, FirstName: strPtr("Frank"), LastName: "Herbert"},
		},
		Reading: []entities.Reading{
			{ID: 1, BookID: 1, StartDate: datePtr(t, "2020-01-01"), FinishDate: datePtr(t, "2020-01-15"), Rating: intPtr(4)},
			{ID: 2, BookID: 1},
		},
		BooksAuthors: []entities.BookAuthor{{BookID: 1, AuthorID: 1}},
	}
	for _, table := range entities.AllTables {
		require.NoError(t, store.Save(set, table))
	}

	got, err := store.Load()
	require.NoError(t, err)

	require.Len(t, got.Books, 2)
	assert.Equal(t, "A Title, With Commas", got.Books[1].Title)
	require.NotNil(t, got.Books[0].BookLength)
	assert.Equal(t, 412, *got.Books[0].BookLength)
	assert.Nil(t, got.Books[0].Rating)

	require.Len(t, got.Authors, 1)
	require.NotNil(t, got.Authors[0].FirstName)
	assert.Equal(t, "Frank", *got.Authors[0].FirstName)
	assert.Nil(t, got.Authors[0].MiddleName)

	require.Len(t, got.Reading, 2)
	assert.Equal(t, *datePtr(t, "2020-01-15"), *got.Reading[0].FinishDate)
	assert.Nil(t, got.Reading[1].StartDate)
	assert.Nil(t, got.Reading[1].FinishDate)

	require.Len(t, got.BooksAuthors, 1)
}

func TestStore_LoadMissingTable(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, os.Remove(filepath.Join(store.Dir(), "genres.csv")))

	_, err := store.Load()
	require.Error(t, err)
	var serr *model.StorageError
	assert.ErrorAs(t, err, &serr)
}

func TestStore_LoadRejectsHeaderMismatch(t *testing.T) {
	store := setupStore(t)
	path := filepath.Join(store.Dir(), "genres.csv")
	require.NoError(t, os.WriteFile(path, []byte("genre_id,label\n"), 0o644))

	_, err := store.Load()
	require.Error(t, err)
}

func TestStore_LoadRejectsMalformedCell(t *testing.T) {
	store := setupStore(t)
	path := filepath.Join(store.Dir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,title,book_length,rating\nnot-a-number,Dune,,\n"), 0o644))

	_, err := store.Load()
	require.Error(t, err)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := setupStore(t)

	set := &model.TableSet{Genres: []entities.Genre{{ID: 1, Name: "Essays"}}}
	require.NoError(t, store.Save(set, entities.TableGenres))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, ".csv", filepath.Ext(e.Name()))
	}
}
