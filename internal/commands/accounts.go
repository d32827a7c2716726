package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/query"
	"github.com/midastouch-dev/midastouch/internal/store"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts present in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(opts)
		},
	}
}

func runAccounts(opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return err
	}

	ids := st.Accounts()
	if len(ids) == 0 {
		fmt.Println("no accounts in store")
		return nil
	}

	for _, id := range ids {
		txns := st.ByAccount(id)
		count := query.Count(txns)
		total := query.Sum(txns)
		fmt.Printf("%-12s  %4d transaction(s)  net %12s\n", id, count, total.StringFixed(2))
	}
	return nil
}
