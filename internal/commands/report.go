package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/query"
	"github.com/midastouch-dev/midastouch/internal/store"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	filters := &queryFlags{}

	cmd := &cobra.Command{
		Use:       "report <sum|avg|count>",
		Short:     "Aggregate stored transactions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sum", "avg", "count"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, filters, args[0])
		},
	}

	filters.register(cmd)

	return cmd
}

func runReport(opts *rootOptions, filters *queryFlags, op string) error {
	preds, err := filters.predicates()
	if err != nil {
		return err
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return err
	}

	matched := query.Filter(st.All(), preds...)

	switch op {
	case "sum":
		fmt.Println(query.Sum(matched).StringFixed(2))
	case "count":
		fmt.Println(query.Count(matched))
	case "avg":
		avg, err := query.Average(matched)
		if err != nil {
			return fmt.Errorf("average: %w", err)
		}
		fmt.Println(avg.StringFixed(2))
	default:
		return fmt.Errorf("unknown report op %q (want sum, avg, or count)", op)
	}
	return nil
}
