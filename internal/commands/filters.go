package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/query"
)

// flagDateLayout is the date format accepted by --from/--to.
const flagDateLayout = "2006-01-02"

// queryFlags are the filter flags shared by list and report.
type queryFlags struct {
	account   string
	from      string
	to        string
	match     string
	direction string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.account, "account", "", "restrict to one account")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, "+flagDateLayout)
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, "+flagDateLayout)
	cmd.Flags().StringVar(&f.match, "match", "", "case-insensitive description substring")
	cmd.Flags().StringVar(&f.direction, "direction", "", "in (inflows) or out (outflows)")
}

// predicates translates the flags into composable query predicates.
func (f *queryFlags) predicates() ([]query.Predicate, error) {
	var preds []query.Predicate

	if f.account != "" {
		preds = append(preds, query.Account(f.account))
	}

	var from, to time.Time
	var err error
	if f.from != "" {
		from, err = time.Parse(flagDateLayout, f.from)
		if err != nil {
			return nil, fmt.Errorf("parsing --from %q: %w", f.from, err)
		}
	}
	if f.to != "" {
		to, err = time.Parse(flagDateLayout, f.to)
		if err != nil {
			return nil, fmt.Errorf("parsing --to %q: %w", f.to, err)
		}
	}
	if !from.IsZero() || !to.IsZero() {
		preds = append(preds, query.DateRange(from, to))
	}

	if f.match != "" {
		preds = append(preds, query.DescriptionContains(f.match))
	}

	switch f.direction {
	case "":
	case "in":
		preds = append(preds, query.Inflows())
	case "out":
		preds = append(preds, query.Outflows())
	default:
		return nil, fmt.Errorf("unknown direction %q (want in or out)", f.direction)
	}

	return preds, nil
}
