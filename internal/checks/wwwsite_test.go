package checks

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

func TestWWWSite_Empty(t *testing.T) {
	ledger := report.NewLedger()
	catalog := catalogOf(&ports.Port{Name: "zsh-5.9", WWWSite: ""})

	NewWebChecker(false, false).WWWSite(catalog, ledger)

	if got := ledger.Value(report.EmptyWWWSite); got != 1 {
		t.Errorf("empty www-site = %d, want 1", got)
	}
}

func TestWWWSite_Diverging(t *testing.T) {
	tests := []struct {
		name string
		www  string
		want int
	}{
		{"listed in WWW", "https://www.zsh.org/ https://zsh.sourceforge.io/", 0},
		{"not listed in WWW", "https://example.org/", 1},
		{"macro reference skipped", "${WWW_SITE}", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := report.NewLedger()
			catalog := catalogOf(&ports.Port{
				Name:    "zsh-5.9",
				WWWSite: "https://www.zsh.org/",
				Vars:    ports.Vars{"WWW": tc.www},
			})

			NewWebChecker(false, false).WWWSite(catalog, ledger)

			if got := ledger.Value(report.DivergingWWWSite); got != tc.want {
				t.Errorf("diverging www-site = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWWWSite_UnresolvableHost(t *testing.T) {
	ledger := report.NewLedger()
	catalog := catalogOf(
		&ports.Port{Name: "zsh-5.9", WWWSite: "https://nowhere.invalid/"},
		&ports.Port{Name: "bash-5.2", WWWSite: "https://nowhere.invalid:8080/other"},
	)

	checker := NewWebChecker(true, false)
	lookups := 0
	checker.lookup = func(hostname string) ([]string, error) {
		lookups++
		if hostname != "nowhere.invalid" {
			t.Errorf("lookup(%q), want nowhere.invalid", hostname)
		}
		return nil, errors.New("no such host")
	}

	checker.WWWSite(catalog, ledger)

	if got := ledger.Value(report.UnresolvableWWWSite); got != 2 {
		t.Errorf("unresolvable www-site = %d, want 2", got)
	}
	if lookups != 1 {
		t.Errorf("resolver called %d times, want 1 (cached)", lookups)
	}
}

func TestWWWSite_CheckURL(t *testing.T) {
	tests := []struct {
		name             string
		status           int
		wantUnaccessible int
	}{
		{"reachable", http.StatusOK, 0},
		{"not found", http.StatusNotFound, 1},
		{"gone", http.StatusGone, 1},
		{"forbidden", http.StatusForbidden, 1},
		{"server error is not definitive", http.StatusInternalServerError, 0},
		{"moved permanently is not definitive", http.StatusMovedPermanently, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			ledger := report.NewLedger()
			catalog := catalogOf(&ports.Port{Name: "zsh-5.9", WWWSite: server.URL})

			checker := NewWebChecker(true, true)
			checker.lookup = func(string) ([]string, error) { return []string{"127.0.0.1"}, nil }
			checker.WWWSite(catalog, ledger)

			if got := ledger.Value(report.UnaccessibleWWWSite); got != tc.wantUnaccessible {
				t.Errorf("unaccessible www-site = %d, want %d", got, tc.wantUnaccessible)
			}
		})
	}
}

func TestWWWSite_URLResultsCached(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ledger := report.NewLedger()
	catalog := catalogOf(
		&ports.Port{Name: "zsh-5.9", WWWSite: server.URL},
		&ports.Port{Name: "bash-5.2", WWWSite: server.URL},
	)

	checker := NewWebChecker(true, true)
	checker.lookup = func(string) ([]string, error) { return []string{"127.0.0.1"}, nil }
	checker.WWWSite(catalog, ledger)

	if requests != 1 {
		t.Errorf("server hit %d times, want 1 (cached failure)", requests)
	}
	if got := ledger.Value(report.UnaccessibleWWWSite); got != 2 {
		t.Errorf("unaccessible www-site = %d, want 2", got)
	}
}
