// Package config holds settings for a collabnet run. Defaults come from the
// environment, optionally from a .env file; command line flags override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/miku/collabnet"
	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/graphio"
	"github.com/sirupsen/logrus"
)

// EnvPrefix is prepended to all environment variable names.
const EnvPrefix = "COLLABNET_"

// DefaultProfilesFile is read for custom profiles, if it exists.
var DefaultProfilesFile = filepath.Join(xdg.ConfigHome, collabnet.AppName, "profiles.yaml")

// Config for a run.
type Config struct {
	// DataDir is searched for export files matching the profile format.
	DataDir string `env:"DATA_DIR" envDefault:"data"`
	// OutputDir receives the graph file.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"."`
	// Profile is the name of the source profile, e.g. scopus or wos.
	Profile string `env:"PROFILE" envDefault:"wos"`
	// ProfilesFile is a YAML file with additional profiles.
	ProfilesFile string `env:"PROFILES_FILE"`
	// Policy is the node sizing policy, articles or citations. Empty means
	// the profile default.
	Policy string `env:"POLICY"`
	// Threshold is the minimum number of publications for an author to be
	// kept.
	Threshold int `env:"THRESHOLD" envDefault:"1"`
	// Format of the output file, graphml or dot.
	Format string `env:"FORMAT" envDefault:"graphml"`
	// Compression suffix for the output file, e.g. ".gz" or ".zst".
	Compression string `env:"COMPRESSION"`
	Workers     int    `env:"WORKERS"`
	// Match selects how records are matched to authors, index or scan.
	Match string `env:"MATCH" envDefault:"index"`
	// Strict fails the run on malformed citation counts.
	Strict      bool   `env:"STRICT"`
	ReportFile  string `env:"REPORT_FILE"`
	MetricsFile string `env:"METRICS_FILE"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an env file, if given, or a .env file in the current directory,
// if there is one, then parses the environment.
func Load(envFile string) (*Config, error) {
	switch {
	case envFile != "":
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	default:
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env: %w", err)
		}
	}
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, err
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return &c, nil
}

// Validate checks all settings that do not depend on the profile and
// canonicalizes the named values.
func (c *Config) Validate() error {
	var errs []error
	if c.Threshold < 1 {
		errs = append(errs, &coauthor.ConfigurationError{
			Field: "threshold", Value: c.Threshold, Reason: "must be at least 1",
		})
	}
	if c.Policy != "" {
		var p coauthor.Policy
		if err := p.Set(c.Policy); err != nil {
			errs = append(errs, &coauthor.ConfigurationError{Field: "policy", Value: c.Policy, Reason: err.Error()})
		} else {
			c.Policy = p.String()
		}
	}
	var f graphio.Format
	if err := f.Set(c.Format); err != nil {
		errs = append(errs, &coauthor.ConfigurationError{Field: "format", Value: c.Format, Reason: err.Error()})
	} else {
		c.Format = f.String()
	}
	var m coauthor.MatchMode
	if err := m.Set(c.Match); err != nil {
		errs = append(errs, &coauthor.ConfigurationError{Field: "match", Value: c.Match, Reason: err.Error()})
	} else {
		c.Match = m.String()
	}
	switch c.Compression {
	case "", ".gz", ".zst":
	default:
		errs = append(errs, &coauthor.ConfigurationError{
			Field: "compression", Value: c.Compression, Reason: "must be .gz or .zst",
		})
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, &coauthor.ConfigurationError{Field: "log level", Value: c.LogLevel, Reason: err.Error()})
	}
	return errors.Join(errs...)
}

// OutputPath returns the path of the graph file for a profile and policy.
func (c *Config) OutputPath(profile string, policy coauthor.Policy) string {
	name := graphio.Filename(profile, c.Threshold, policy.String(), graphio.Format(c.Format)) + c.Compression
	return filepath.Join(c.OutputDir, name)
}
