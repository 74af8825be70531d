package cli

import (
	"slices"
	"testing"
)

func TestPassthrough(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "qualifiers after declaration",
			args: []string{"run", "win.acd", "-window", "5"},
			want: []string{"run", "win.acd", "--", "-window", "5"},
		},
		{
			name: "run flags before declaration",
			args: []string{"--log-level=debug", "run", "-o", "json", "--plain", "win", "-auto"},
			want: []string{"--log-level=debug", "run", "-o", "json", "--plain", "win", "--", "-auto"},
		},
		{
			name: "nothing after declaration",
			args: []string{"run", "win.acd"},
			want: []string{"run", "win.acd", "--"},
		},
		{
			name: "explicit separator",
			args: []string{"--", "run", "win.acd"},
			want: []string{"--", "run", "win.acd"},
		},
		{
			name: "other command",
			args: []string{"fmt", "json", "win.acd"},
			want: []string{"fmt", "json", "win.acd"},
		},
		{
			name: "global flag value",
			args: []string{"--log-level", "debug", "run", "win", "-auto"},
			want: []string{"--log-level", "debug", "run", "win", "--", "-auto"},
		},
		{
			name: "run as declaration name",
			args: []string{"check", "run"},
			want: []string{"check", "run"},
		},
		{
			name: "no declaration",
			args: []string{"run", "--plain"},
			want: []string{"run", "--plain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := passthrough(tt.args); !slices.Equal(got, tt.want) {
				t.Errorf("passthrough(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
