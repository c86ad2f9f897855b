package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/prompt"
)

// NewEditCommand creates the edit command and its per-entity workflows.
func NewEditCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit {book|author|genre|reading}",
		Short: "Change a recorded book, author, genre, or reading entry",
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
				return editBook(cmd, backend, p)
			case "author":
				return editAuthor(cmd, backend, p)
			case "genre":
				return editGenre(cmd, backend, p)
			case "reading":
				return editReading(cmd, backend, p)
			}
			return fmt.Errorf("unknown entity %q: expected book, author, genre, or reading", args[0])
		},
	}
	return cmd
}

func editBook(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, title, exists, err := selectBook(backend, p)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no book titled %q", title)
	}

	fields := []string{"Title", "Author", "Pages", "Rating", "Genre"}
	idx, err := p.Choice("Which field?", fields)
	if err != nil {
		return err
	}
	switch fields[idx] {
	case "Title":
		v, err := p.NonEmptyLine("New title: ")
		if err != nil {
			return err
		}
		err = backend.EditEntry(entities.TableBooks, "id", id, "title", v)
		if err != nil {
			return err
		}
	case "Author":
		authorID, err := selectAuthor(backend, p, true)
		if err != nil {
			return err
		}
		err = backend.EditEntry(entities.TableBooksAuthors, "book_id", id, "author_id", authorID)
		if err != nil {
			return err
		}
	case "Pages":
		v, err := p.PosInt("New page count (blank clears): ")
		if err != nil {
			return err
		}
		err = backend.EditEntry(entities.TableBooks, "id", id, "book_length", deref(v))
		if err != nil {
			return err
		}
	case "Rating":
		v, err := p.Rating("New rating 1-5 (blank clears): ")
		if err != nil {
			return err
		}
		err = backend.EditEntry(entities.TableBooks, "id", id, "rating", deref(v))
		if err != nil {
			return err
		}
	case "Genre":
		genreID, err := selectGenre(backend, p, true)
		if err != nil {
			return err
		}
		err = backend.EditEntry(entities.TableBooksGenres, "book_id", id, "genre_id", genreID)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Updated %q.", title))
	return nil
}

func editAuthor(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, err := selectAuthor(backend, p, false)
	if err != nil {
		return err
	}

	fields := []string{"First name", "Middle name", "Last name", "Suffix"}
	columns := []string{"first_name", "middle_name", "last_name", "suffix"}
	idx, err := p.Choice("Which field?", fields)
	if err != nil {
		return err
	}
	var value string
	if columns[idx] == "last_name" {
		value, err = p.NonEmptyLine("New last name: ")
	} else {
		value, err = p.Line(fmt.Sprintf("New %s (blank clears): ", fields[idx]))
	}
	if err != nil {
		return err
	}
	if err := backend.EditEntry(entities.TableAuthors, "id", id, columns[idx], value); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Updated author %d.", id))
	return nil
}

func editGenre(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
	id, err := selectGenre(backend, p, false)
	if err != nil {
		return err
	}
	name, err := p.NonEmptyLine("New name: ")
	if err != nil {
		return err
	}
	if err := backend.EditEntry(entities.TableGenres, "id", id, "name", name); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Updated genre %d.", id))
	return nil
}

func editReading(cmd *cobra.Command, backend Backend, p *prompt.Prompter) error {
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

	fields := []string{"Start date", "Finish date", "Rating"}
	idx, err := p.Choice("Which field?", fields)
	if err != nil {
		return err
	}
	switch fields[idx] {
	case "Start date":
		v, err := p.Date("New start date (blank clears): ")
		if err != nil {
			return err
		}
		return finishReadingEdit(cmd, backend, id, "start_date", deref(v))
	case "Finish date":
		v, err := p.Date("New finish date (blank clears): ")
		if err != nil {
			return err
		}
		return finishReadingEdit(cmd, backend, id, "finish_date", deref(v))
	case "Rating":
		v, err := p.Rating("New rating 1-5 (blank clears): ")
		if err != nil {
			return err
		}
		return finishReadingEdit(cmd, backend, id, "rating", deref(v))
	}
	return nil
}

func finishReadingEdit(cmd *cobra.Command, backend Backend, id int, column string, value any) error {
	if err := backend.EditEntry(entities.TableReading, "id", id, column, value); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Updated reading entry %d.", id))
	return nil
}

// deref unwraps a typed pointer so an absent prompt answer reaches the
// model as a plain nil.
func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
