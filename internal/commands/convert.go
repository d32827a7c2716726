package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/statement"
)

func newConvertCommand(opts *rootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "convert <statement.pdf>",
		Short: "Extract a PDF statement into an importable CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], year)
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "statement year (statement dates carry no year)")

	return cmd
}

func runConvert(opts *rootOptions, path string, year int) error {
	csvPath, rows, err := statement.ConvertFile(path, year)
	if err != nil {
		return err
	}
	logger := opts.logger()
	logger.Debug().Str("pdf", path).Str("csv", csvPath).Msg("statement converted")
	fmt.Printf("Extracted %d row(s) from %s to %s\n", rows, path, csvPath)
	return nil
}
