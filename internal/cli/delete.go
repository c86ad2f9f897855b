package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/prompt"
)

// NewDeleteCommand creates the delete command and its per-entity
// workflows. Deleting a book, author, or genre also removes every row
// that refers to it.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete {book|author|genre|reading}",
		Short: "Remove a book, author, genre, or reading entry",
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
				return deleteBook(cmd, backend, p)
			case "author":
				return deleteAuthor(cmd, backend, p)
			case "genre":
				return deleteGenre(cmd, backend, p)
			case "reading":
				return deleteReading(cmd, backend, p)
			}
			return fmt.Errorf("unknown entity %q: expected book, author, genre, or reading", args[0])
		},
	}
	return cmd
}

func deleteBook(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, title, exists, err := selectBook(backend, p)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no book titled %q", title)
	}
	ok, err := p.Confirm(fmt.Sprintf("Delete %q and all of its reading entries?", title))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := backend.DeleteBook(id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Deleted %q.", title))
	return nil
}

func deleteAuthor(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, err := selectAuthor(backend, p, false)
	if err != nil {
		return err
	}
	ok, err := p.Confirm("Delete this author and their book links?")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := backend.DeleteAuthor(id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Deleted author %d.", id))
	return nil
}

func deleteGenre(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, err := selectGenre(backend, p, false)
	if err != nil {
		return err
	}
	ok, err := p.Confirm("Delete this genre and its book links?")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := backend.DeleteGenre(id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Deleted genre %d.", id))
	return nil
}

func deleteReading(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	bookID, title, exists, err := selectBook(backend, p)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no book titled %q", title)
	}
	id, err := selectReading(backend, p, bookID)
	if err != nil {
		return err
	}
	ok, err := p.Confirm(fmt.Sprintf("Delete reading entry %d for %q?", id, title))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := backend.DeleteEntry(entities.TableReading, "id", id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Deleted reading entry %d.", id))
	return nil
}
