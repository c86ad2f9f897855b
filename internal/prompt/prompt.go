// Package prompt implements the interactive input used by the manage
// workflows: numbered choice menus, confirmations, and validated scalar
// input. Invalid input re-prompts; only validated typed values reach the
// data model.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phoebeshelves/shelves/internal/model"
)

// Prompter reads answers from r and writes prompts to w.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) read() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Line prompts for a free-form line of text.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.read()
}

// NonEmptyLine prompts until a non-empty line is entered.
func (p *Prompter) NonEmptyLine(label string) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// Confirm asks a yes/no question; default is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	s, err := p.Line(label + " [y/N]: ")
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

// Choice prints a numbered menu and returns the index of the selection.
func (p *Prompter) Choice(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, opt)
	}
	for {
		s, err := p.Line("Selection: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// ChoiceInt presents a list of ids (reading entries) and returns the
// chosen id.
func (p *Prompter) ChoiceInt(label string, ids []int) (int, error) {
	options := make([]string, len(ids))
	for i, id := range ids {
		options[i] = strconv.Itoa(id)
	}
	idx, err := p.Choice(label, options)
	if err != nil {
		return 0, err
	}
	return ids[idx], nil
}

// PosInt prompts for a positive integer; an empty answer means absent.
func (p *Prompter) PosInt(label string) (*int, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 {
			return &n, nil
		}
		fmt.Fprintln(p.out, "Please enter a positive whole number.")
	}
}

// Rating prompts for a 1-5 rating; an empty answer means absent.
func (p *Prompter) Rating(label string) (*int, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= 5 {
			return &n, nil
		}
		fmt.Fprintln(p.out, "Please enter a rating between 1 and 5.")
	}
}

// Date prompts for a YYYY-MM-DD date; an empty answer means absent.
func (p *Prompter) Date(label string) (*time.Time, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		d, err := time.Parse(model.DateLayout, s)
		if err == nil {
			return &d, nil
		}
		fmt.Fprintf(p.out, "Please enter a date as %s.\n", model.DateLayout)
	}
}
