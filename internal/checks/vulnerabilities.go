package checks

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
	"github.com/ptlint/portstreelint/internal/version"
	"github.com/ptlint/portstreelint/internal/vuxml"
)

// Vulnerabilities looks up each port's resolved package name and version
// in the VuXML database. Ports whose version cannot be resolved are
// skipped rather than reported as clean. Vulnerability identifiers listed
// in excluded are ignored.
func Vulnerabilities(catalog *ports.Catalog, ledger *report.Ledger, db *vuxml.Database, excluded []string) {
	for _, port := range catalog.All() {
		if version.Conflict(port) {
			slog.Error("both PORTVERSION and DISTVERSION", "port", port.Name)
			ledger.Increment(report.VersionConflict)
			ledger.Notify(port.Maintainer, report.VersionConflict, port.Name)
		}

		resolution, err := version.Resolve(port)
		if errors.Is(err, version.ErrUnresolvable) {
			slog.Warn("unable to get version, skipping vulnerability check", "port", port.Name)
			ledger.Increment(report.SkippedVulnChecks)
			continue
		}

		vids, err := db.Search(resolution.Name, resolution.Version)
		if err != nil {
			slog.Warn("skipping vulnerability check", "error", err, "port", port.Name)
			ledger.Increment(report.SkippedVulnChecks)
			continue
		}
		vids = slices.DeleteFunc(vids, func(vid string) bool {
			return slices.Contains(excluded, vid)
		})

		for _, vid := range vids {
			slog.Warn("found VuXML vulnerability", "vid", vid, "port", port.Name)
			if !port.Vars.Defined("FORBIDDEN") {
				slog.Debug("vulnerable port not marked as FORBIDDEN", "port", port.Name)
			}
		}
		if len(vids) > 0 {
			ledger.Increment(report.VulnerablePorts)
			ledger.Notify(port.Maintainer, "Vulnerable port", port.Name)
		}
	}

	slog.Info("found ports with a vulnerable version", "ports", ledger.Value(report.VulnerablePorts))
	slog.Info("skipped vulnerability checks", "ports", ledger.Value(report.SkippedVulnChecks))
}
