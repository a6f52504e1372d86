package checks

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

const connectionTimeout = 10 * time.Second

// Browser-looking headers, some upstream sites reject obvious robots.
var httpHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en;q=1.0, en-US;q=0.8, *;q=0.5",
	"Accept-Encoding": "identity",
	"Connection":      "keep-alive",
}

var hostnamePort = regexp.MustCompile(`:[0-9]*$`)

// WebChecker verifies www-site URLs. Hostname resolution and URL fetching
// are opt-in since they make the run slow and network-dependent. Results
// are remembered per run so that shared hostnames and URLs are only probed
// once.
type WebChecker struct {
	CheckHost bool
	CheckURL  bool

	lookup func(string) ([]string, error)
	client *http.Client

	unresolvable []string
	urlOK        []string
	urlKO        map[string]urlFailure
}

type urlFailure struct {
	status int
	reason string
}

// NewWebChecker returns a checker using the system resolver and a plain
// HTTP client with a fixed connection timeout.
func NewWebChecker(checkHost, checkURL bool) *WebChecker {
	return &WebChecker{
		CheckHost: checkHost,
		CheckURL:  checkURL,
		lookup:    net.LookupHost,
		client: &http.Client{
			Timeout: connectionTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		urlKO: make(map[string]urlFailure),
	}
}

// WWWSite checks the www-site field of every port: existence, hostname
// resolution and URL accessibility (when enabled), and divergence from
// the Makefile's WWW variable.
func (w *WebChecker) WWWSite(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		switch {
		case port.WWWSite == "":
			slog.Error("empty www-site", "port", port.Name)
			ledger.Increment(report.EmptyWWWSite)
			ledger.Notify(port.Maintainer, report.EmptyWWWSite, port.Name)
		case w.CheckHost:
			w.probe(port, ledger)
		}

		if overlay, ok := port.Vars.Lookup("WWW"); ok && !strings.Contains(overlay, "$") {
			if !slices.Contains(strings.Fields(overlay), port.WWWSite) {
				slog.Error("diverging www-site between INDEX and Makefile",
					"port", port.Name, "index", port.WWWSite, "makefile", overlay)
				ledger.Increment(report.DivergingWWWSite)
				ledger.Notify(port.Maintainer, report.DivergingWWWSite, port.Name)
			}
		}
	}

	slog.Info("found ports with empty www-site", "ports", ledger.Value(report.EmptyWWWSite))
	if w.CheckHost {
		slog.Info("found ports with unresolvable www-site", "ports", ledger.Value(report.UnresolvableWWWSite))
		if w.CheckURL {
			slog.Info("found ports with unaccessible www-site", "ports", ledger.Value(report.UnaccessibleWWWSite))
		}
	}
	slog.Info("found ports with diverging www-site", "ports", ledger.Value(report.DivergingWWWSite))
}

func (w *WebChecker) probe(port *ports.Port, ledger *report.Ledger) {
	hostname := strings.TrimPrefix(strings.TrimPrefix(port.WWWSite, "https://"), "http://")
	if i := strings.IndexByte(hostname, '/'); i >= 0 {
		hostname = hostname[:i]
	}
	hostname = hostnamePort.ReplaceAllString(hostname, "")

	resolvable := !slices.Contains(w.unresolvable, hostname)
	if resolvable {
		if _, err := w.lookup(hostname); err != nil {
			resolvable = false
			w.unresolvable = append(w.unresolvable, hostname)
		}
	}
	if !resolvable {
		slog.Error("unresolvable www-site", "hostname", hostname, "port", port.Name)
		ledger.Increment(report.UnresolvableWWWSite)
		ledger.Notify(port.Maintainer, report.UnresolvableWWWSite, port.Name)
		return
	}

	if slices.Contains(w.urlOK, port.WWWSite) {
		return
	}
	failure, failed := w.urlKO[port.WWWSite]
	if !failed {
		if !w.CheckURL {
			return
		}
		failure, failed = w.fetch(port.WWWSite)
		if !failed {
			w.urlOK = append(w.urlOK, port.WWWSite)
			return
		}
		w.urlKO[port.WWWSite] = failure
	}
	if w.classify(port, failure, ledger) {
		ledger.Increment(report.UnaccessibleWWWSite)
	}
}

func (w *WebChecker) fetch(url string) (urlFailure, bool) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return urlFailure{reason: err.Error()}, true
	}
	for key, value := range httpHeaders {
		request.Header.Set(key, value)
	}
	response, err := w.client.Do(request)
	if err != nil {
		return urlFailure{reason: err.Error()}, true
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode >= 300 {
		return urlFailure{status: response.StatusCode, reason: response.Status}, true
	}
	return urlFailure{}, false
}

// classify reports whether the failure is a reliable sign of a dead site.
// Definitive 4xx codes are errors that notify the maintainer, permanent
// redirects are warnings, everything else is considered transient.
func (w *WebChecker) classify(port *ports.Port, failure urlFailure, ledger *report.Ledger) bool {
	switch failure.status {
	case http.StatusNotFound, http.StatusGone, http.StatusUnauthorized,
		http.StatusForbidden, http.StatusUnavailableForLegalReasons:
		reason := fmt.Sprintf("HTTP Error %d (%s) on www-site",
			failure.status, http.StatusText(failure.status))
		slog.Error("unaccessible www-site", "reason", reason, "url", port.WWWSite, "port", port.Name)
		ledger.Notify(port.Maintainer, reason, port.Name)
		return true
	case http.StatusMovedPermanently, http.StatusPermanentRedirect:
		slog.Warn("permanently redirected www-site", "status", failure.reason,
			"url", port.WWWSite, "port", port.Name)
	case 0:
		// Failures are cached as strings so repeated URLs are not
		// refetched, hence the substring match on resolver errors.
		if strings.Contains(failure.reason, "no such host") {
			slog.Error("unresolvable www-site", "url", port.WWWSite, "port", port.Name)
			ledger.Increment(report.UnresolvableWWWSite)
		} else {
			slog.Debug("unaccessible www-site", "error", failure.reason,
				"url", port.WWWSite, "port", port.Name)
		}
	default:
		// 3xx, 5xx and remaining 4xx codes are not reliable signs of a
		// definitive www-site issue.
		slog.Warn("unaccessible www-site", "status", failure.reason,
			"url", port.WWWSite, "port", port.Name)
	}
	return false
}
