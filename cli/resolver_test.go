package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acd/config"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		format config.Format
		src    string
		flag   string
		want   any
	}{
		{"yaml string", config.FormatYAML, "log_level: debug\n", "log-level", "debug"},
		{"yaml hyphen", config.FormatYAML, "log-format: json\n", "log-format", "json"},
		{"yaml bool", config.FormatYAML, "log_pretty: false\n", "log-pretty", false},
		{"yaml number", config.FormatYAML, "retries: 3\n", "retries", "3"},
		{"yaml nested ignored", config.FormatYAML, "values:\n  a: b\n", "values", nil},
		{"yaml missing", config.FormatYAML, "retries: 3\n", "log-level", nil},
		{"jsonc", config.FormatJSON, "{\n  // level\n  \"log_level\": \"info\",\n}\n", "log-level", "info"},
		{"malformed", config.FormatYAML, "log_level: [\n", "log-level", nil},
		{"empty", config.FormatYAML, "", "log-level", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolve(tt.format)(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("load: %v", err)
			}

			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}
