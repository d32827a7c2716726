package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/midastouch-dev/midastouch/internal/config"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory and config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, dataDir)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "data directory (default under the user config dir)")

	return cmd
}

func runInit(opts *rootOptions, dataDir string) error {
	if dataDir == "" {
		var err error
		dataDir, err = config.DefaultDataDir()
		if err != nil {
			return err
		}
	}
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(absDir, configFile)
	}
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config already exists at %s", cfgPath)
	}

	cfg := &config.Config{DataDir: absDir}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized midastouch data dir at %s\n", absDir)
	fmt.Printf("Config written to %s\n", cfgPath)
	return nil
}
