package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phoebeshelves/shelves/internal/entities"
	"github.com/phoebeshelves/shelves/internal/model"
	"github.com/phoebeshelves/shelves/internal/render"
)

// viewOptions holds the filter flags of the view command. At most one
// comparison flag may be set; which values it accepts depends on the
// column's type.
type viewOptions struct {
	root    *RootOptions
	column  string
	match   []string
	atMost  string
	atLeast string
	between string
	missing bool
	year    int
}

// columnFlags maps flag spelling to view columns.
var columnFlags = map[string]model.Column{
	"title":      model.ColumnTitle,
	"author":     model.ColumnAuthor,
	"genre":      model.ColumnGenre,
	"rating":     model.ColumnRating,
	"pages":      model.ColumnPages,
	"times-read": model.ColumnTimesRead,
	"start":      model.ColumnStart,
	"finish":     model.ColumnFinish,
	"read-time":  model.ColumnReadTime,
}

// NewViewCommand creates the view command: print the books or reading
// view, optionally narrowed by one filter.
func NewViewCommand(opts *RootOptions) *cobra.Command {
	v := &viewOptions{root: opts}

	cmd := &cobra.Command{
		Use:   "view {books|reading}",
		Short: "Print a friendly view of the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(opts)
			if err != nil {
				return err
			}
			defer backend.Close()

			switch args[0] {
			case "books":
				filter, err := v.buildFilter(backend, model.BookColumns)
				if err != nil {
					return err
				}
				rows, err := backend.BooksView(filter)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.CyanString("Books"))
				fmt.Fprint(cmd.OutOrStdout(), render.BooksTable(rows))
			case "reading":
				filter, err := v.buildFilter(backend, model.ReadingColumns)
				if err != nil {
					return err
				}
				rows, err := backend.ReadingView(filter)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.CyanString("Reading"))
				fmt.Fprint(cmd.OutOrStdout(), render.ReadingTable(rows))
			default:
				return fmt.Errorf("unknown view %q: expected books or reading", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&v.column, "filter", "", "column to filter on (title|author|genre|rating|pages|times-read|start|finish|read-time)")
	cmd.Flags().StringArrayVar(&v.match, "match", nil, "entity name to match for title/author/genre filters (repeatable)")
	cmd.Flags().StringVar(&v.atMost, "at-most", "", "keep rows with value <= bound")
	cmd.Flags().StringVar(&v.atLeast, "at-least", "", "keep rows with value >= bound")
	cmd.Flags().StringVar(&v.between, "between", "", "keep rows with lower <= value <= upper, as lower,upper")
	cmd.Flags().BoolVar(&v.missing, "missing", false, "keep rows with no value")
	cmd.Flags().IntVar(&v.year, "year", 0, "keep rows whose date falls in this year (date columns)")
	return cmd
}

func (v *viewOptions) buildFilter(backend Backend, allowed []model.Column) (*model.Filter, error) {
	if v.column == "" {
		return nil, nil
	}
	column, ok := columnFlags[strings.ToLower(v.column)]
	if !ok {
		return nil, fmt.Errorf("unknown filter column %q", v.column)
	}
	permitted := false
	for _, c := range allowed {
		if c == column {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, fmt.Errorf("column %q is not filterable in this view", v.column)
	}

	filter := &model.Filter{Column: column}
	switch column {
	case model.ColumnTitle, model.ColumnAuthor, model.ColumnGenre:
		if len(v.match) == 0 {
			return nil, fmt.Errorf("--match is required for the %s filter", v.column)
		}
		ids, err := resolveMatches(backend, column, v.match)
		if err != nil {
			return nil, err
		}
		filter.IDs = ids
		return filter, nil
	case model.ColumnStart, model.ColumnFinish:
		return v.dateFilter(filter)
	default:
		return v.numericFilter(filter)
	}
}

func (v *viewOptions) numericFilter(filter *model.Filter) (*model.Filter, error) {
	switch {
	case v.missing:
		filter.Comp = model.CompMissing
	case v.atMost != "":
		bound, err := strconv.ParseFloat(v.atMost, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --at-most value %q", v.atMost)
		}
		filter.Comp = model.CompAtMost
		filter.Bounds = []float64{bound}
	case v.atLeast != "":
		bound, err := strconv.ParseFloat(v.atLeast, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --at-least value %q", v.atLeast)
		}
		filter.Comp = model.CompAtLeast
		filter.Bounds = []float64{bound}
	case v.between != "":
		lower, upper, err := splitBounds(v.between)
		if err != nil {
			return nil, err
		}
		lo, err1 := strconv.ParseFloat(lower, 64)
		hi, err2 := strconv.ParseFloat(upper, 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid --between value %q", v.between)
		}
		if lo > hi {
			return nil, fmt.Errorf("--between bounds out of order: %v > %v", lo, hi)
		}
		filter.Comp = model.CompBetween
		filter.Bounds = []float64{lo, hi}
	default:
		return nil, fmt.Errorf("the %s filter needs one of --at-most, --at-least, --between, or --missing", filter.Column)
	}
	return filter, nil
}

func (v *viewOptions) dateFilter(filter *model.Filter) (*model.Filter, error) {
	parse := func(s string) (time.Time, error) {
		d, err := time.Parse(model.DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, model.DateLayout)
		}
		return d, nil
	}
	switch {
	case v.missing:
		filter.Comp = model.CompMissing
	case v.year != 0:
		filter.Comp = model.CompInYear
		filter.Year = v.year
	case v.atMost != "":
		d, err := parse(v.atMost)
		if err != nil {
			return nil, err
		}
		filter.Comp = model.CompAtMost
		filter.Dates = []time.Time{d}
	case v.atLeast != "":
		d, err := parse(v.atLeast)
		if err != nil {
			return nil, err
		}
		filter.Comp = model.CompAtLeast
		filter.Dates = []time.Time{d}
	case v.between != "":
		lower, upper, err := splitBounds(v.between)
		if err != nil {
			return nil, err
		}
		lo, err := parse(lower)
		if err != nil {
			return nil, err
		}
		hi, err := parse(upper)
		if err != nil {
			return nil, err
		}
		if lo.After(hi) {
			return nil, fmt.Errorf("--between dates out of order")
		}
		filter.Comp = model.CompBetween
		filter.Dates = []time.Time{lo, hi}
	default:
		return nil, fmt.Errorf("the %s filter needs one of --at-most, --at-least, --between, --year, or --missing", filter.Column)
	}
	return filter, nil
}

func splitBounds(s string) (string, string, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid bounds %q: expected lower,upper", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// resolveMatches turns entity names into ids via the backend lookups.
// An unknown name lists the known ones.
func resolveMatches(backend Backend, column model.Column, names []string) ([]int, error) {
	table := entities.TableBooks
	switch column {
	case model.ColumnAuthor:
		table = entities.TableAuthors
	case model.ColumnGenre:
		table = entities.TableGenres
	}
	lookup, err := backend.Lookup(table)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, name := range names {
		id, ok := lookup[name]
		if !ok {
			known := make([]string, 0, len(lookup))
			for k := range lookup {
				known = append(known, k)
			}
			sort.Strings(known)
			return nil, fmt.Errorf("no %s named %q (known: %s)", table, name, strings.Join(known, ", "))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
