package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/fingerprint"
	"github.com/midastouch-dev/midastouch/internal/query"
	"github.com/midastouch-dev/midastouch/internal/store"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	filters := &queryFlags{}
	var sortKey string
	var order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, filters, sortKey, order)
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&sortKey, "sort", "date", "sort key: date or amount")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order: asc or desc")

	return cmd
}

func runList(opts *rootOptions, filters *queryFlags, sortKey, order string) error {
	preds, err := filters.predicates()
	if err != nil {
		return err
	}
	key := query.SortKey(sortKey)
	if key != query.SortByDate && key != query.SortByAmount {
		return fmt.Errorf("unknown sort key %q (want date or amount)", sortKey)
	}
	ord := query.Order(order)
	if ord != query.Asc && ord != query.Desc {
		return fmt.Errorf("unknown order %q (want asc or desc)", order)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return err
	}

	txns := query.SortBy(query.Filter(st.All(), preds...), key, ord)
	for _, txn := range txns {
		fmt.Printf("%s  %s  %12s  %-8s  %s\n",
			fingerprint.Short(txn.Fingerprint), txn.Date.Format(flagDateLayout),
			txn.Amount.StringFixed(2), txn.AccountID, txn.Description)
	}
	fmt.Printf("%d transaction(s)\n", len(txns))
	return nil
}
