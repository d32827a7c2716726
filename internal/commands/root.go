package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/buildinfo"
	"github.com/midastouch-dev/midastouch/internal/config"
	"github.com/midastouch-dev/midastouch/internal/logging"
)

// configFile is the config file name inside the data directory.
const configFile = "midastouch.yaml"

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	verbose    bool
}

// loadConfig resolves and loads the configuration, falling back to
// defaults when no config file exists yet.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		dir, err := config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configFile)
	}
	return config.LoadOrDefault(path)
}

func (o *rootOptions) logger() zerolog.Logger {
	return logging.New(o.verbose)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "midastouch",
		Short:   "Bank statement ingestion, deduplication, and reporting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data dir>/"+configFile+")")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newAccountsCommand(opts))
	rootCmd.AddCommand(newVerifyCommand(opts))
	rootCmd.AddCommand(newConvertCommand(opts))

	return rootCmd
}
