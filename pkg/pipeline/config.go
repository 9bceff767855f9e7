package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hwidmann/rootline/pkg/chart/fan"
	"github.com/hwidmann/rootline/pkg/chart/pedigree"
	"github.com/hwidmann/rootline/pkg/errors"
)

// Config holds pipeline defaults loaded from a TOML file.
//
// Every field is optional. Apply copies a field onto Options only when
// the caller left the corresponding option at its zero value, so
// explicit flags always win over the config file.
type Config struct {
	TreePath    string          `toml:"tree_path"`
	ChartType   string          `toml:"chart_type"`
	RootID      string          `toml:"root_id"`
	Formats     []string        `toml:"formats"`
	Filters     []string        `toml:"filters"`
	CurrentYear int             `toml:"current_year"`
	RowGap      float64         `toml:"row_gap"`
	Pedigree    pedigree.Config `toml:"pedigree"`
	Fan         fan.Config      `toml:"fan"`
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}

// Apply fills unset fields of opts from the config.
func (c Config) Apply(opts *Options) {
	if opts.TreePath == "" {
		opts.TreePath = c.TreePath
	}
	if opts.ChartType == "" {
		opts.ChartType = c.ChartType
	}
	if opts.RootID == "" {
		opts.RootID = c.RootID
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.Formats
	}
	if len(opts.Filters) == 0 {
		opts.Filters = c.Filters
	}
	if opts.CurrentYear == 0 {
		opts.CurrentYear = c.CurrentYear
	}
	if opts.RowGap == 0 {
		opts.RowGap = c.RowGap
	}
	if opts.Pedigree == (pedigree.Config{}) {
		opts.Pedigree = c.Pedigree
	}
	if opts.Fan == (fan.Config{}) {
		opts.Fan = c.Fan
	}
}
