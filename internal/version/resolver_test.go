package version

import (
	"errors"
	"testing"

	"github.com/ptlint/portstreelint/internal/ports"
)

func port(name string, vars map[string]string) *ports.Port {
	p := &ports.Port{Name: name, Vars: make(ports.Vars)}
	for k, v := range vars {
		p.Vars.Set(k, v)
	}
	return p
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		port        *ports.Port
		wantName    string
		wantVersion string
	}{
		{
			name:        "explicit fields",
			port:        port("zsh-5.9", map[string]string{"PORTNAME": "zsh", "PORTVERSION": "5.9"}),
			wantName:    "zsh",
			wantVersion: "5.9",
		},
		{
			name: "explicit fields with revision",
			port: port("zsh-5.9_1", map[string]string{
				"PORTNAME": "zsh", "PORTVERSION": "5.9", "PORTREVISION": "1",
			}),
			wantName:    "zsh",
			wantVersion: "5.9_1",
		},
		{
			name:        "macro version falls back to distribution name",
			port:        port("zsh-5.9", map[string]string{"PORTNAME": "zsh", "PORTVERSION": "${DISTVERSION}"}),
			wantName:    "zsh",
			wantVersion: "5.9",
		},
		{
			name:        "no overlay fields at all",
			port:        port("foo-1.2.3", nil),
			wantName:    "foo",
			wantVersion: "1.2.3",
		},
		{
			name:        "declared epoch stripped",
			port:        port("foo-1.2,2", map[string]string{"PORTEPOCH": "2"}),
			wantName:    "foo",
			wantVersion: "1.2",
		},
		{
			name:        "inferred epoch stripped",
			port:        port("foo-1.2,3", nil),
			wantName:    "foo",
			wantVersion: "1.2",
		},
		{
			name:        "declared revision stripped",
			port:        port("foo-1.2_4", map[string]string{"PORTREVISION": "4"}),
			wantName:    "foo",
			wantVersion: "1.2",
		},
		{
			name:        "inferred revision stripped",
			port:        port("foo-1.2_10", nil),
			wantName:    "foo",
			wantVersion: "1.2",
		},
		{
			name:        "epoch and revision stripped together",
			port:        port("foo-1.2_1,2", nil),
			wantName:    "foo",
			wantVersion: "1.2",
		},
		{
			name:        "hyphenated name keeps all but last segment",
			port:        port("py-yaml-6.0.1", nil),
			wantName:    "py-yaml",
			wantVersion: "6.0.1",
		},
		{
			name:        "explicit name with inferred version",
			port:        port("ja-foo-1.5", map[string]string{"PORTNAME": "foo"}),
			wantName:    "foo",
			wantVersion: "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.port)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Name != tt.wantName || got.Version != tt.wantVersion {
				t.Errorf("Resolve() = %+v, want {%s %s}", got, tt.wantName, tt.wantVersion)
			}
		})
	}
}

func TestResolve_Unresolvable(t *testing.T) {
	tests := []struct {
		name string
		port *ports.Port
	}{
		{"no hyphen", port("foobar", nil)},
		{"macro version and no hyphen", port("foobar", map[string]string{
			"PORTNAME": "foobar", "PORTVERSION": "${WEIRD}",
		})},
		{"trailing hyphen", port("foobar-", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.port)
			if !errors.Is(err, ErrUnresolvable) {
				t.Errorf("Resolve() error = %v, want ErrUnresolvable", err)
			}
		})
	}
}

func TestConflict(t *testing.T) {
	both := port("zsh-5.9", map[string]string{"PORTVERSION": "5.9", "DISTVERSION": "5.9"})
	if !Conflict(both) {
		t.Error("Conflict() = false with both fields defined")
	}
	single := port("zsh-5.9", map[string]string{"PORTVERSION": "5.9"})
	if Conflict(single) {
		t.Error("Conflict() = true with a single field defined")
	}
}
