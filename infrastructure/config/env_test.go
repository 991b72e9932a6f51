package config

import (
	"errors"
	"strings"
	"testing"

	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("AGENTFS_ROOT", "/srv/data")
	t.Setenv("AGENTFS_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bracket syntax", "${AGENTFS_ROOT}", "/srv/data"},
		{"dollar syntax", "$AGENTFS_ROOT/sub", "/srv/data/sub"},
		{"embedded in text", "base_dir: ${AGENTFS_ROOT}/files", "base_dir: /srv/data/files"},
		{"multiple variables", "${AGENTFS_ROOT} ${AGENTFS_ROOT}", "/srv/data /srv/data"},
		{"unset with default", "${AGENTFS_UNSET:-/tmp}", "/tmp"},
		{"empty with default", "${AGENTFS_EMPTY:-fallback}", "fallback"},
		{"set with default", "${AGENTFS_ROOT:-/tmp}", "/srv/data"},
		{"default with colon", "${AGENTFS_UNSET:-localhost:4317}", "localhost:4317"},
		{"empty default", "${AGENTFS_UNSET:-}", ""},
		{"unset is empty", "x${AGENTFS_UNSET}y", "xy"},
		{"no variables", "plain text", "plain text"},
		{"digits after dollar", "price: $100", "price: $100"},
		{"incomplete bracket", "${incomplete", "${incomplete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("AGENTFS_SET", "ok")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"set", "${AGENTFS_SET}", "ok", false},
		{"default satisfies strict", "${AGENTFS_MISSING:-d}", "d", false},
		{"missing bracket", "${AGENTFS_MISSING}", "", true},
		{"missing simple", "$AGENTFS_MISSING", "", true},
		{"required", "${AGENTFS_MISSING:?set the data dir}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnvStrict(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
					t.Errorf("error = %v, want ErrMissingEnvVar", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandEnvStrict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandEnvStrict(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand_RequiredMessage(t *testing.T) {
	_, err := expand("${AGENTFS_MISSING:?set the data dir}", false)
	if err == nil {
		t.Fatal("required variable should fail even in lenient mode")
	}
	if want := "AGENTFS_MISSING: set the data dir"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to mention %q", err, want)
	}

	if got := ExpandEnv("${AGENTFS_MISSING:?msg}"); got != "${AGENTFS_MISSING:?msg}" {
		t.Errorf("ExpandEnv() = %q, want input unchanged", got)
	}
}
