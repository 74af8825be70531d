package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/acd/config"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("retries: 9\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Level string `default:"warn" name:"log-level"`
				Dir   string `name:"pprof-dir" default:"/tmp/p"`
				Empty string `name:"empty"`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), ktx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				return
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var m map[string]any
			if err := yaml.Unmarshal(data, &m); err != nil {
				t.Fatalf("generated config is not YAML: %v\n%s", err, data)
			}

			if m["log_level"] != "warn" {
				t.Errorf("log_level = %v\n%s", m["log_level"], data)
			}

			for _, key := range []string{"pprof_dir", "empty", "help"} {
				if _, ok := m[key]; ok {
					t.Errorf("generated config has %q\n%s", key, data)
				}
			}

			c, err := config.Load(context.Background(), confPath)
			if err != nil {
				t.Fatalf("generated config does not load: %v", err)
			}

			if c.Retries != config.DefaultRetries {
				t.Errorf("retries = %d, want %d", c.Retries, config.DefaultRetries)
			}
		})
	}
}
