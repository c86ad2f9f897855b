package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig points the CLI at a temp data directory.
func writeTestConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "backend: " + backend +
		"\ndata_dir: " + filepath.Join(dir, "data") +
		"\ndatabase_path: " + filepath.Join(dir, "shelves.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes one shelves invocation with scripted stdin.
func run(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfgPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_CSVWorkflow(t *testing.T) {
	cfg := writeTestConfig(t, "csv")

	_, err := run(t, cfg, "", "init")
	require.NoError(t, err)

	// author: last name, first, middle, suffix
	out, err := run(t, cfg, "Herbert\nFrank\n\n\n", "add", "author")
	require.NoError(t, err)
	assert.Contains(t, out, "Added author 1")

	_, err = run(t, cfg, "Sci-Fi\n", "add", "genre")
	require.NoError(t, err)

	// book: title, author last name, pick from menu, pages, rating, genre menu
	out, err = run(t, cfg, "Dune\nHerbert\n1\n412\n\n1\n", "add", "book")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Dune" as book 1`)

	out, err = run(t, cfg, "", "view", "books")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Frank Herbert")
	assert.Contains(t, out, "Sci-Fi")

	// reading entry: title, start, finish, rating
	out, err = run(t, cfg, "Dune\n2020-01-01\n2020-01-15\n4\n", "add", "reading")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded reading entry 1")

	out, err = run(t, cfg, "", "view", "reading", "--filter", "finish", "--year", "2020")
	require.NoError(t, err)
	assert.Contains(t, out, "2020-01-15")

	out, err = run(t, cfg, "", "view", "reading", "--filter", "finish", "--year", "1999")
	require.NoError(t, err)
	assert.NotContains(t, out, "2020-01-15")
}

func TestCLI_AddExistingBookOffersReading(t *testing.T) {
	cfg := writeTestConfig(t, "csv")
	_, err := run(t, cfg, "", "init")
	require.NoError(t, err)

	_, err = run(t, cfg, "Herbert\nFrank\n\n\n", "add", "author")
	require.NoError(t, err)
	_, err = run(t, cfg, "Sci-Fi\n", "add", "genre")
	require.NoError(t, err)
	_, err = run(t, cfg, "Dune\nHerbert\n1\n\n\n1\n", "add", "book")
	require.NoError(t, err)

	// same title again: decline the reading-entry offer
	out, err := run(t, cfg, "Dune\nn\n", "add", "book")
	require.NoError(t, err)
	assert.Contains(t, out, "already on the shelf")

	// accept the offer this time
	out, err = run(t, cfg, "Dune\ny\n2021-01-01\n2021-01-10\n5\n", "add", "book")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded reading entry 1")
}

func TestCLI_EditAndDelete(t *testing.T) {
	cfg := writeTestConfig(t, "csv")
	_, err := run(t, cfg, "", "init")
	require.NoError(t, err)

	_, err = run(t, cfg, "Herbert\nFrank\n\n\n", "add", "author")
	require.NoError(t, err)
	_, err = run(t, cfg, "Sci-Fi\n", "add", "genre")
	require.NoError(t, err)
	_, err = run(t, cfg, "Dune\nHerbert\n1\n412\n\n1\n", "add", "book")
	require.NoError(t, err)

	// title, field menu (1 = Title), new title
	out, err := run(t, cfg, "Dune\n1\nDune Messiah\n", "edit", "book")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	out, err = run(t, cfg, "", "view", "books")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune Messiah")

	// delete with confirmation
	out, err = run(t, cfg, "Dune Messiah\ny\n", "delete", "book")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	out, err = run(t, cfg, "", "view", "books")
	require.NoError(t, err)
	assert.NotContains(t, out, "Dune Messiah")
}

func TestCLI_SQLiteWorkflow(t *testing.T) {
	cfg := writeTestConfig(t, "sqlite")

	_, err := run(t, cfg, "", "init")
	require.NoError(t, err)

	_, err = run(t, cfg, "Le Guin\nUrsula\nK.\n\n", "add", "author")
	require.NoError(t, err)
	_, err = run(t, cfg, "Sci-Fi\n", "add", "genre")
	require.NoError(t, err)
	_, err = run(t, cfg, "The Dispossessed\nLe Guin\n1\n387\n5\n1\n", "add", "book")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "view", "books")
	require.NoError(t, err)
	assert.Contains(t, out, "The Dispossessed")
	assert.Contains(t, out, "Ursula K. Le Guin")
}

func TestCLI_ViewFilterByAuthor(t *testing.T) {
	cfg := writeTestConfig(t, "csv")
	_, err := run(t, cfg, "", "init")
	require.NoError(t, err)

	_, err = run(t, cfg, "Herbert\nFrank\n\n\n", "add", "author")
	require.NoError(t, err)
	_, err = run(t, cfg, "Tolkien\nJ\nR.R.\nJr.\n", "add", "author")
	require.NoError(t, err)
	_, err = run(t, cfg, "Sci-Fi\n", "add", "genre")
	require.NoError(t, err)
	_, err = run(t, cfg, "Dune\nHerbert\n1\n\n\n1\n", "add", "book")
	require.NoError(t, err)
	_, err = run(t, cfg, "The Hobbit\nTolkien\n1\n\n\n1\n", "add", "book")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "view", "books", "--filter", "author", "--match", "Frank Herbert")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "The Hobbit")

	// an unknown name lists the known ones
	_, err = run(t, cfg, "", "view", "books", "--filter", "author", "--match", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Frank Herbert")
}

func TestCLI_ConfigShowAndSet(t *testing.T) {
	cfg := writeTestConfig(t, "csv")

	out, err := run(t, cfg, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend:       csv")

	_, err = run(t, cfg, "", "config", "set", "backend", "sqlite")
	require.NoError(t, err)

	out, err = run(t, cfg, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend:       sqlite")

	_, err = run(t, cfg, "", "config", "set", "backend", "postgres")
	require.Error(t, err)
}

func TestCLI_ViewRejectsBadFilterFlags(t *testing.T) {
	cfg := writeTestConfig(t, "csv")
	_, err := run(t, cfg, "", "init")
	require.NoError(t, err)

	_, err = run(t, cfg, "", "view", "books", "--filter", "publisher")
	require.Error(t, err)

	_, err = run(t, cfg, "", "view", "books", "--filter", "pages")
	require.Error(t, err)

	_, err = run(t, cfg, "", "view", "books", "--filter", "pages", "--between", "300,100")
	require.Error(t, err)

	// read-time is a reading-view column
	_, err = run(t, cfg, "", "view", "books", "--filter", "read-time", "--at-most", "10")
	require.Error(t, err)
}
