package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phoebeshelves/shelves/internal/prompt"
)

// NewAddCommand creates the add command and its per-entity workflows.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add {book|author|genre|reading}",
		Short: "Record a new book, author, genre, or reading entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(opts)
			if err != nil {
				return err
			}
			defer backend.Close()

			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			switch args[0] {
			case "book":
				return addBook(cmd, backend, p)
			case "author":
				return addAuthor(cmd, backend, p)
			case "genre":
				return addGenre(cmd, backend, p)
			case "reading":
				return addReading(cmd, backend, p)
			}
			return fmt.Errorf("unknown entity %q: expected book, author, genre, or reading", args[0])
		},
	}
	return cmd
}

// addBook walks the whole book intake: title, author, details, genre.
// An already-known title is redirected to a new reading entry instead of
// a duplicate book row.
func addBook(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, title, exists, err := selectBook(backend, p)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is already on the shelf.\n", title)
		again, err := p.Confirm("Record a new reading entry for it instead?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		return addReadingFor(cmd, backend, p, id, title)
	}

	authorID, err := selectAuthor(backend, p, true)
	if err != nil {
		return err
	}
	pages, err := p.PosInt("Pages (can be blank): ")
	if err != nil {
		return err
	}
	rating, err := p.Rating("Rating 1-5 (can be blank): ")
	if err != nil {
		return err
	}
	genreID, err := selectGenre(backend, p, true)
	if err != nil {
		return err
	}

	bookID, err := backend.AddBook(title, authorID, genreID, pages, rating)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Added %q as book %d.", title, bookID))
	return nil
}

func addAuthor(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	last, err := p.NonEmptyLine("Author last name: ")
	if err != nil {
		return err
	}
	id, err := createAuthor(backend, p, last)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Added author %d.", id))
	return nil
}

func addGenre(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, err := createGenre(backend, p)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Added genre %d.", id))
	return nil
}

func addReading(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, title, exists, err := selectBook(backend, p)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no book titled %q; add the book first", title)
	}
	return addReadingFor(cmd, backend, p, id, title)
}

func addReadingFor(cmd *cobra.Command, backend Backend, p *prompt.Prompter, bookID int, title string) error {
	start, err := p.Date("Start date (can be blank): ")
	if err != nil {
		return err
	}
	finish, err := p.Date("Finish date (can be blank): ")
	if err != nil {
		return err
	}
	rating, err := p.Rating("Rating 1-5 (can be blank): ")
	if err != nil {
		return err
	}
	id, err := backend.AddReading(bookID, start, finish, rating)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Recorded reading entry %d for %q.", id, title))
	return nil
}
