package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/dialect"
	"github.com/midastouch-dev/midastouch/internal/importer"
	"github.com/midastouch-dev/midastouch/internal/importlog"
	"github.com/midastouch-dev/midastouch/internal/model"
	"github.com/midastouch-dev/midastouch/internal/store"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var account string
	var dialectName string
	var accountType string
	var strict bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a bank CSV export into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], account, dialectName, accountType, strict, cmd.Flags().Changed("strict"))
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account the file belongs to (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&dialectName, "dialect", "", "bank dialect (defaults from the account's config entry)")
	cmd.Flags().StringVar(&accountType, "type", "", "account type: debit or credit (defaults from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort the whole file on any row failure")

	return cmd
}

func runImport(opts *rootOptions, path, account, dialectName, accountType string, strict, strictSet bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// A declared account supplies dialect and type; flags override.
	if decl, ok := cfg.Account(account); ok {
		if dialectName == "" {
			dialectName = decl.Dialect
		}
		if accountType == "" {
			accountType = string(decl.Type)
		}
	}
	if dialectName == "" {
		return fmt.Errorf("account %q is not declared in config; pass --dialect", account)
	}
	if accountType == "" {
		return fmt.Errorf("account %q is not declared in config; pass --type", account)
	}
	if !strictSet {
		strict = cfg.Strict
	}

	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return err
	}

	imp := importer.New(dialect.DefaultRegistry(), st, opts.logger())
	summary, err := imp.RunFile(path, importer.Params{
		Dialect:     dialectName,
		AccountID:   account,
		AccountType: model.AccountType(accountType),
		Strict:      strict,
	})
	if err != nil {
		return err
	}

	logErr := importlog.Append(cfg.DataDir, []importlog.Entry{{
		Timestamp:  time.Now().UTC(),
		RunID:      summary.RunID,
		File:       filepath.Base(path),
		Dialect:    dialectName,
		AccountID:  account,
		Inserted:   summary.Inserted,
		Duplicates: summary.Duplicates,
		Failed:     len(summary.Failed),
	}})
	if logErr != nil {
		logger := opts.logger()
		logger.Warn().Err(logErr).Msg("failed to write import log")
	}

	fmt.Printf("Imported %s into %s: %d inserted, %d duplicates, %d failed\n",
		filepath.Base(path), account, summary.Inserted, summary.Duplicates, len(summary.Failed))
	for _, re := range summary.Failed {
		fmt.Printf("  row %d: %v\n", re.Row, re.Err)
	}
	if strict && len(summary.Failed) > 0 {
		return fmt.Errorf("strict import aborted: %d row(s) failed, nothing written", len(summary.Failed))
	}
	return nil
}
