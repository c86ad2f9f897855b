package cli

import (
	"fmt"
	"sort"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/prompt"
)

// selectBook resolves a book by exact title. The second return value is
// false when no book by that title exists.
func selectBook(backend Backend, p *prompt.Prompter) (int, string, bool, error) {
	title, err := p.NonEmptyLine("Book title: ")
	if err != nil {
		return 0, "", false, err
	}
	lookup, err := backend.Lookup(entities.TableBooks)
	if err != nil {
		return 0, "", false, err
	}
	id, ok := lookup[title]
	return id, title, ok, nil
}

// selectAuthor finds authors sharing a last name and lets the user pick
// one. With create set, a "new author" option is offered and taken when
// no author matches.
func selectAuthor(backend Backend, p *prompt.Prompter, create bool) (int, error) {
	last, err := p.NonEmptyLine("Author last name: ")
	if err != nil {
		return 0, err
	}
	matches, err := backend.AuthorsByLastName(last)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		if !create {
			return 0, fmt.Errorf("no author with last name %q", last)
		}
		return createAuthor(backend, p, last)
	}
	if create {
		names = append(names, "New author")
	}
	idx, err := p.Choice("Which author?", names)
	if err != nil {
		return 0, err
	}
	if create && idx == len(names)-1 {
		return createAuthor(backend, p, last)
	}
	return matches[names[idx]], nil
}

// createAuthor prompts for the remaining name parts and stores the
// author. The last name is already known.
func createAuthor(backend Backend, p *prompt.Prompter, last string) (int, error) {
	first, err := p.Line("First name (can be blank): ")
	if err != nil {
		return 0, err
	}
	middle, err := p.Line("Middle name (can be blank): ")
	if err != nil {
		return 0, err
	}
	suffix, err := p.Line("Suffix (can be blank): ")
	if err != nil {
		return 0, err
	}
	return backend.AddAuthor(optional(first), optional(middle), last, optional(suffix))
}

// selectGenre shows the genre menu. With create set, a "new genre"
// option is offered, and the menu is skipped entirely when no genres
// exist yet.
func selectGenre(backend Backend, p *prompt.Prompter, create bool) (int, error) {
	lookup, err := backend.Lookup(entities.TableGenres)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(lookup))
	for name := range lookup {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		if !create {
			return 0, fmt.Errorf("no genres recorded yet")
		}
		return createGenre(backend, p)
	}
	if create {
		names = append(names, "New genre")
	}
	idx, err := p.Choice("Which genre?", names)
	if err != nil {
		return 0, err
	}
	if create && idx == len(names)-1 {
		return createGenre(backend, p)
	}
	return lookup[names[idx]], nil
}

func createGenre(backend Backend, p *prompt.Prompter) (int, error) {
	name, err := p.NonEmptyLine("Genre name: ")
	if err != nil {
		return 0, err
	}
	return backend.AddGenre(name)
}

// selectReading picks one reading entry for a book by id. The printed
// reading view gives the user the ids to choose from.
func selectReading(backend Backend, p *prompt.Prompter, bookID int) (int, error) {
	ids, err := backend.ReadingIDsForBook(bookID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("no reading entries for this book")
	}
	if len(ids) == 1 {
		return ids[0], nil
	}
	return p.ChoiceInt("Which reading entry?", ids)
}

// optional maps an empty answer to an absent value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
