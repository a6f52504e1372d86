package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ptlint/portstreelint/internal/checks"
	"github.com/ptlint/portstreelint/internal/config"
	"github.com/ptlint/portstreelint/internal/logging"
	"github.com/ptlint/portstreelint/internal/makefile"
	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
	"github.com/ptlint/portstreelint/internal/vuxml"
)

const version = "1.1.2"

var (
	selectCategories  string
	selectMaintainers string
	selectPorts       string
	plistAbuse        int
	brokenDays        int
	deprecatedDays    int
	forbiddenDays     int
	unchangedDays     int
	checkHost         bool
	checkURL          bool
	outputFile        string
	showCategories    bool
	showMaintainers   bool
	debug             bool
	info              bool
	portsDir          string
	indexFile         string
	vuxmlURL          string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "portstreelint",
		Short:   "FreeBSD ports tree lint",
		Long:    "Portstreelint audits the FreeBSD ports tree, cross-checking the INDEX file with each port's Makefile and reporting issues per maintainer.",
		Version: version,
		RunE:    runLint,

		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&selectCategories, "cat", "c", "", "Select only the comma-separated categories")
	flags.StringVarP(&selectMaintainers, "mnt", "m", "", "Select only the comma-separated maintainers")
	flags.StringVarP(&selectPorts, "port", "p", "", "Select only the comma-separated ports")
	flags.IntVar(&plistAbuse, "plist", 0, "Set PLIST_FILES abuse to NUM files")
	flags.IntVar(&brokenDays, "broken", 0, "Set BROKEN since to NUM days")
	flags.IntVar(&deprecatedDays, "deprecated", 0, "Set DEPRECATED since to NUM days")
	flags.IntVar(&forbiddenDays, "forbidden", 0, "Set FORBIDDEN since to NUM days")
	flags.IntVar(&unchangedDays, "unchanged", 0, "Set Unchanged since to NUM days")
	flags.BoolVar(&checkHost, "check-host", false, "Enable checking hostname resolution (long!)")
	flags.BoolVar(&checkURL, "check-url", false, "Enable checking URL (very long!)")
	flags.StringVarP(&outputFile, "output", "o", "", "Enable per-maintainer CSV output to FILE")
	flags.BoolVarP(&showCategories, "show-cat", "C", false, "Show categories with ports count")
	flags.BoolVarP(&showMaintainers, "show-mnt", "M", false, "Show maintainers with ports count")
	flags.BoolVar(&debug, "debug", false, "Enable logging at debug level")
	flags.BoolVar(&info, "info", false, "Enable logging at info level")
	flags.StringVar(&portsDir, "ports-dir", "", "Ports tree directory")
	flags.StringVar(&indexFile, "index", "", "Ports INDEX file (defaults to the newest INDEX-* in the ports tree)")
	flags.StringVar(&vuxmlURL, "vuxml", "", "VuXML database URL")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the per-user configuration file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file to edit by hand",
		RunE:  runConfigInit,

		SilenceUsage: true,
	})
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	path := filepath.Join(home, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, not overwriting it", path)
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadUser()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	logging.Setup(os.Stderr, logLevel(cfg))

	if err := validateLimits(cfg); err != nil {
		return err
	}

	index := indexFile
	if index == "" {
		index, err = findIndex(cfg.PortsDir)
		if err != nil {
			return err
		}
	}

	ledger := report.NewLedger()
	catalog, rejected, err := ports.LoadIndex(index)
	if err != nil {
		return err
	}
	ledger.Add(report.IndexedPorts, catalog.Len())
	ledger.Add(report.RejectedIndexLines, rejected)

	if showCategories {
		report.ShowCategories(os.Stdout, catalog)
		return nil
	}
	if showMaintainers {
		report.ShowMaintainers(os.Stdout, catalog)
		return nil
	}

	var db *vuxml.Database
	if cfg.Checks.Vulnerabilities {
		if db, err = loadVulnerabilities(cfg); err != nil {
			return err
		}
	}

	catalog = catalog.Filter(cfg.Selection())
	ledger.Add(report.SelectedPorts, catalog.Len())

	makefile.ApplyOverlay(catalog, ledger)

	limits := cfg.ReportLimits()
	now := time.Now().UTC()
	if cfg.Checks.PortPath {
		checks.PortPath(catalog, ledger)
	}
	if cfg.Checks.InstallationPrefix {
		checks.InstallationPrefix(catalog, ledger)
	}
	if cfg.Checks.Comment {
		checks.Comment(catalog, ledger)
	}
	if cfg.Checks.DescriptionFile {
		checks.DescriptionFile(catalog, ledger)
	}
	if cfg.Checks.Plist {
		checks.Plist(catalog, ledger, limits.PlistAbuse)
	}
	if cfg.Checks.Maintainer {
		checks.Maintainer(catalog, ledger)
	}
	if cfg.Checks.Categories {
		checks.Categories(catalog, ledger)
	}
	if cfg.Checks.Licenses {
		checks.Licenses(catalog, ledger, cfg.Exclusions.Licenses)
	}
	if cfg.Checks.WWWSite {
		checker := checks.NewWebChecker(cfg.Checks.Hostnames, cfg.Checks.URL)
		checker.WWWSite(catalog, ledger)
	}
	if cfg.Checks.Marks {
		checks.Marks(catalog, ledger, limits, now)
	}
	if cfg.Checks.UnchangingPorts {
		checks.UnchangingPorts(catalog, ledger, limits.UnchangedSince, now)
	}
	if db != nil {
		checks.Vulnerabilities(catalog, ledger, db, cfg.Exclusions.Vulnerabilities)
	}

	ledger.Notifications(os.Stdout)
	if cfg.Output != "" {
		if err := ledger.SaveCSV(cfg.Output); err != nil {
			return err
		}
	}
	ledger.Summary(os.Stdout, limits)
	return nil
}

// applyFlags overrides the configuration with the command line options the
// user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("cat") {
		cfg.Selections.Categories = strings.Split(strings.ToLower(selectCategories), ",")
	}
	if flags.Changed("mnt") {
		cfg.Selections.Maintainers = config.NormalizeMaintainers(strings.Split(selectMaintainers, ","))
	}
	if flags.Changed("port") {
		cfg.Selections.Ports = strings.Split(selectPorts, ",")
	}
	if flags.Changed("plist") {
		cfg.Limits.PlistAbuse = plistAbuse
	}
	if flags.Changed("broken") {
		cfg.Limits.BrokenSince = brokenDays
	}
	if flags.Changed("deprecated") {
		cfg.Limits.DeprecatedSince = deprecatedDays
	}
	if flags.Changed("forbidden") {
		cfg.Limits.ForbiddenSince = forbiddenDays
	}
	if flags.Changed("unchanged") {
		cfg.Limits.UnchangedSince = unchangedDays
	}
	if checkHost {
		cfg.Checks.Hostnames = true
	}
	if checkURL {
		cfg.Checks.Hostnames = true
		cfg.Checks.URL = true
	}
	if flags.Changed("output") {
		cfg.Output = outputFile
	}
	if flags.Changed("ports-dir") {
		cfg.PortsDir = portsDir
	}
	if flags.Changed("vuxml") {
		cfg.VuXMLURL = vuxmlURL
	}
	if debug {
		cfg.LogLevel = "debug"
	} else if info {
		cfg.LogLevel = "info"
	}
}

func logLevel(cfg *config.Config) slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func validateLimits(cfg *config.Config) error {
	if cfg.Limits.PlistAbuse < 3 {
		return fmt.Errorf("the number of files for the plist limit must be >= 3")
	}
	for name, days := range map[string]int{
		"broken":     cfg.Limits.BrokenSince,
		"deprecated": cfg.Limits.DeprecatedSince,
		"forbidden":  cfg.Limits.ForbiddenSince,
		"unchanged":  cfg.Limits.UnchangedSince,
	} {
		if days < 30 {
			return fmt.Errorf("the number of days for the %s limit must be >= 30", name)
		}
	}
	return nil
}

// findIndex locates the newest INDEX-* file in the ports tree, so that the
// tool works across OS major versions.
func findIndex(portsDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(portsDir, "INDEX-*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no INDEX file in %s, please install and update the ports tree", portsDir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func loadVulnerabilities(cfg *config.Config) (*vuxml.Database, error) {
	url := cfg.VuXMLURL
	if url == "" {
		url = vuxml.DefaultURL
	}
	cacheDir := filepath.Join(os.TempDir(), "portstreelint")
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".portstreelint", "cache")
	}

	db, err := vuxml.Fetch(url, cacheDir)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded vulnerabilities from the FreeBSD VuXML file", "vulnerabilities", db.Len())
	return db, nil
}
