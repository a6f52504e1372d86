// Package config loads the optional per-user configuration file and holds
// the run parameters shared by the command line and the checks.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// FileName is the per-user configuration file, looked up in the home
// directory.
const FileName = ".portstreelint.yaml"

// Checks holds the toggles for the individual lint rules. Hostnames and
// URL default to off since they make a full run very long.
type Checks struct {
	PortPath           bool `yaml:"port_path"`
	InstallationPrefix bool `yaml:"installation_prefix"`
	Comment            bool `yaml:"comment"`
	DescriptionFile    bool `yaml:"description_file"`
	Plist              bool `yaml:"plist"`
	Maintainer         bool `yaml:"maintainer"`
	Categories         bool `yaml:"categories"`
	Licenses           bool `yaml:"licenses"`
	WWWSite            bool `yaml:"www_site"`
	Hostnames          bool `yaml:"hostnames"`
	URL                bool `yaml:"url"`
	Marks              bool `yaml:"marks"`
	UnchangingPorts    bool `yaml:"unchanging_ports"`
	Vulnerabilities    bool `yaml:"vulnerabilities"`
}

// Limits mirrors report.Limits with the configuration file's spelling.
type Limits struct {
	PlistAbuse      int `yaml:"plist_abuse"`
	BrokenSince     int `yaml:"broken_since"`
	DeprecatedSince int `yaml:"deprecated_since"`
	ForbiddenSince  int `yaml:"forbidden_since"`
	UnchangedSince  int `yaml:"unchanged_since"`
}

// Selections restricts a run to the listed categories, maintainers or
// ports. Empty lists select everything.
type Selections struct {
	Categories  []string `yaml:"categories"`
	Maintainers []string `yaml:"maintainers"`
	Ports       []string `yaml:"ports"`
}

// Exclusions lists findings to ignore: vulnerability identifiers known to
// be irrelevant and PORTNAMEs exempt from the license checks.
type Exclusions struct {
	Vulnerabilities []string `yaml:"vulnerabilities"`
	Licenses        []string `yaml:"licenses"`
}

// Config is the complete set of run parameters.
type Config struct {
	PortsDir   string     `yaml:"ports_dir"`
	VuXMLURL   string     `yaml:"vuxml_url"`
	Output     string     `yaml:"output"`
	LogLevel   string     `yaml:"log_level"`
	Checks     Checks     `yaml:"checks"`
	Limits     Limits     `yaml:"limits"`
	Selections Selections `yaml:"selections"`
	Exclusions Exclusions `yaml:"exclusions"`
}

// Default returns the shipped configuration: every check enabled except
// the network ones, and the default limits.
func Default() *Config {
	limits := report.DefaultLimits()
	return &Config{
		PortsDir: "/usr/ports",
		LogLevel: "warn",
		Checks: Checks{
			PortPath:           true,
			InstallationPrefix: true,
			Comment:            true,
			DescriptionFile:    true,
			Plist:              true,
			Maintainer:         true,
			Categories:         true,
			Licenses:           true,
			WWWSite:            true,
			Marks:              true,
			UnchangingPorts:    true,
			Vulnerabilities:    true,
		},
		Limits: Limits{
			PlistAbuse:      limits.PlistAbuse,
			BrokenSince:     limits.BrokenSince,
			DeprecatedSince: limits.DeprecatedSince,
			ForbiddenSince:  limits.ForbiddenSince,
			UnchangedSince:  limits.UnchangedSince,
		},
	}
}

// Load reads a configuration file over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadUser reads the configuration file from the user's home directory.
func LoadUser() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(home, FileName))
}

// Save writes the configuration as a YAML file, used to generate a
// starting point for hand editing.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// normalize lowercases the selections and expands bare FreeBSD committer
// logins to full addresses, so that "jsmith" selects jsmith@freebsd.org.
func (c *Config) normalize() {
	for i, category := range c.Selections.Categories {
		c.Selections.Categories[i] = strings.ToLower(category)
	}
	c.Selections.Maintainers = NormalizeMaintainers(c.Selections.Maintainers)
}

// NormalizeMaintainers lowercases maintainer addresses and appends the
// @freebsd.org domain to bare logins.
func NormalizeMaintainers(maintainers []string) []string {
	out := make([]string, len(maintainers))
	for i, maintainer := range maintainers {
		maintainer = strings.ToLower(maintainer)
		if !strings.Contains(maintainer, "@") {
			maintainer += "@freebsd.org"
		}
		out[i] = maintainer
	}
	return out
}

// ReportLimits converts the configured limits for the checks and summary.
func (c *Config) ReportLimits() report.Limits {
	return report.Limits{
		PlistAbuse:      c.Limits.PlistAbuse,
		BrokenSince:     c.Limits.BrokenSince,
		DeprecatedSince: c.Limits.DeprecatedSince,
		ForbiddenSince:  c.Limits.ForbiddenSince,
		UnchangedSince:  c.Limits.UnchangedSince,
	}
}

// Selection converts the configured selections for catalog filtering.
func (c *Config) Selection() ports.Selection {
	return ports.Selection{
		Categories:  c.Selections.Categories,
		Maintainers: c.Selections.Maintainers,
		Ports:       c.Selections.Ports,
	}
}
