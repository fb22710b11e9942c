// Package config loads ledger-import settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. built-in defaults (Default)
//  2. a YAML file
//  3. LEDGER_IMPORT_* environment variables, optionally read from a .env file
//
// Example configuration file:
//
//	journal: ~/finance/main.ledger
//	cash_unit: $
//	mirror_window_days: 7
//	ignored_descriptions: [Check, Deposit, Transfer]
//	accounts:
//	  ally: Assets:Ally Bank:Online Savings
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/formatter"
	"github.com/robinvdvleuten/ledger-import/ledger"
)

// Config holds the settings of an import run.
type Config struct {
	// Journal is the ledger file used when a command is not given one.
	Journal string `yaml:"journal" env:"LEDGER_IMPORT_JOURNAL"`

	CashUnit string `yaml:"cash_unit" env:"LEDGER_IMPORT_CASH_UNIT"`

	// IgnoredDescriptions never contribute to account suggestions.
	IgnoredDescriptions []string `yaml:"ignored_descriptions" env:"LEDGER_IMPORT_IGNORED_DESCRIPTIONS"`

	MirrorWindowDays int `yaml:"mirror_window_days" env:"LEDGER_IMPORT_MIRROR_WINDOW_DAYS"`

	// Accounts maps a CSV format name to the account its rows are posted to.
	// In the environment it is written as "ally=Assets:Ally Bank:CD 1,...".
	Accounts map[string]string `yaml:"accounts" env:"LEDGER_IMPORT_ACCOUNTS" envKeyValSeparator:"="`

	// AmountColumn fixes the column amounts are aligned to; 0 computes it.
	AmountColumn int `yaml:"amount_column" env:"LEDGER_IMPORT_AMOUNT_COLUMN"`

	Debug bool `yaml:"debug" env:"LEDGER_IMPORT_DEBUG"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CashUnit:            ast.CashUnit,
		IgnoredDescriptions: append([]string(nil), ledger.DefaultIgnoredDescriptions...),
		MirrorWindowDays:    int(ledger.DefaultMirrorWindow / (24 * time.Hour)),
		Accounts:            map[string]string{},
	}
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	envFiles []string
}

// WithEnvFiles loads the given .env files instead of an optional ./.env.
// Unlike ./.env, an explicitly named file must exist.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) {
		l.envFiles = append(l.envFiles, paths...)
	}
}

// Load resolves the configuration. An empty path skips the YAML layer.
// Variables already present in the environment are never overwritten by a
// .env file.
func Load(path string, opts ...Option) (*Config, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}

	if len(l.envFiles) > 0 {
		if err := godotenv.Load(l.envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values no run can use.
func (c *Config) Validate() error {
	if c.CashUnit == "" {
		return errors.New("invalid configuration: cash_unit must not be empty")
	}
	if c.MirrorWindowDays < 0 {
		return fmt.Errorf("invalid configuration: mirror_window_days must not be negative, got %d", c.MirrorWindowDays)
	}
	if c.AmountColumn < 0 {
		return fmt.Errorf("invalid configuration: amount_column must not be negative, got %d", c.AmountColumn)
	}
	return nil
}

// MirrorWindow returns the mirror window as a duration.
func (c *Config) MirrorWindow() time.Duration {
	return time.Duration(c.MirrorWindowDays) * 24 * time.Hour
}

// AccountFor returns the configured account for a CSV format, or "".
func (c *Config) AccountFor(format string) string {
	return c.Accounts[format]
}

// LedgerOptions returns the ledger options these settings imply.
func (c *Config) LedgerOptions() []ledger.Option {
	return []ledger.Option{
		ledger.WithCashUnit(c.CashUnit),
		ledger.WithIgnoredDescriptions(c.IgnoredDescriptions...),
		ledger.WithMirrorWindow(c.MirrorWindow()),
	}
}

// FormatterOptions returns the formatter options these settings imply.
func (c *Config) FormatterOptions() []formatter.Option {
	return []formatter.Option{
		formatter.WithCashUnit(c.CashUnit),
		formatter.WithAmountColumn(c.AmountColumn),
	}
}
