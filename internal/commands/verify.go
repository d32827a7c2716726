package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/balance"
	"github.com/midastouch-dev/midastouch/internal/model"
	"github.com/midastouch-dev/midastouch/internal/store"
)

func newVerifyCommand(opts *rootOptions) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check stored transactions against statement balances",
		Long: `Check that each account's transaction amounts sum to the movement
between its opening and closing statement balances. Only meaningful for
accounts imported from exports that carry a balance column.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, account)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "verify one account (default all)")

	return cmd
}

func runVerify(opts *rootOptions, account string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return err
	}

	ids := st.Accounts()
	if account != "" {
		ids = []string{account}
	}

	failures := 0
	for _, id := range ids {
		var txns []model.Transaction
		for txn := range st.ByAccount(id) {
			txns = append(txns, txn)
		}
		if err := balance.Check(txns); err != nil {
			failures++
			fmt.Printf("%-12s  FAIL: %v\n", id, err)
			continue
		}
		fmt.Printf("%-12s  OK (%d transaction(s))\n", id, len(txns))
	}

	if failures > 0 {
		return fmt.Errorf("%d account(s) failed verification", failures)
	}
	return nil
}
