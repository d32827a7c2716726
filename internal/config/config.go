package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/midastouch-dev/midastouch/internal/model"
)

// storeFile is the snapshot file name inside the data directory.
const storeFile = "transactions.csv"

// Account declares a known account: which dialect its exports use and
// whether it is a debit or credit account.
type Account struct {
	Name    string            `yaml:"name"`
	Dialect string            `yaml:"dialect"`
	Type    model.AccountType `yaml:"type"`
}

// Config is the top-level midastouch.yaml configuration. Environment
// variables override file values.
type Config struct {
	DataDir  string    `yaml:"data_dir" env:"MIDASTOUCH_DATA_DIR"`
	Strict   bool      `yaml:"strict" env:"MIDASTOUCH_STRICT"`
	Accounts []Account `yaml:"accounts,omitempty"`
}

// Load reads a midastouch.yaml file from disk and applies env overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads path if it exists, otherwise returns Default.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default()
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config pointing at the default data directory, with
// env overrides applied.
func Default() (*Config, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	cfg := &Config{DataDir: dataDir}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return cfg, nil
}

// DefaultDataDir returns <user config dir>/midastouch.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "midastouch"), nil
}

// StorePath returns the snapshot file path inside the data directory.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, storeFile)
}

// Account returns the declared account with the given name.
func (c *Config) Account(name string) (Account, bool) {
	for _, a := range c.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}
