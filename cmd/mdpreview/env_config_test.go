package main

// Notes:
// - loadEnvConfig: we test every MDPREVIEW_* variable through an injected
//   Getenv, so tests stay parallel. Invalid/negative timeout and workers are
//   ignored, not errors.
// - warnUnknownEnvVars: we test typo detection and suggestions.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("all variables", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(map[string]string{
			"MDPREVIEW_CONFIG":     "/path/to/config.yaml",
			"MDPREVIEW_STYLE":      "dark",
			"MDPREVIEW_ENGINE":     "goldmark",
			"MDPREVIEW_OUTPUT_DIR": "/out",
			"MDPREVIEW_WORKERS":    "4",
			"MDPREVIEW_TIMEOUT":    "2m",
		})

		cfg := loadEnvConfig(env)

		want := envConfig{
			ConfigPath: "/path/to/config.yaml",
			Style:      "dark",
			Engine:     "goldmark",
			OutputDir:  "/out",
			Workers:    4,
			Timeout:    2 * time.Minute,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("invalid numbers ignored", func(t *testing.T) {
		t.Parallel()

		tests := []struct{ workers, timeout string }{
			{"abc", "soon"},
			{"-2", "-5s"},
			{"0", "0s"},
		}
		for _, tt := range tests {
			env, _, _ := newTestEnv(map[string]string{
				"MDPREVIEW_WORKERS": tt.workers,
				"MDPREVIEW_TIMEOUT": tt.timeout,
			})
			cfg := loadEnvConfig(env)
			if cfg.Workers != 0 || cfg.Timeout != 0 {
				t.Errorf("workers=%q timeout=%q: got %d, %v; want zero values", tt.workers, tt.timeout, cfg.Workers, cfg.Timeout)
			}
		}
	})

	t.Run("nil getenv", func(t *testing.T) {
		t.Parallel()

		if cfg := loadEnvConfig(&Environment{}); *cfg != (envConfig{}) {
			t.Errorf("loadEnvConfig(empty env) = %+v, want zero", *cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		environ  []string
		want     []string
		wantNone bool
	}{
		{
			name:     "known variables are silent",
			environ:  []string{"MDPREVIEW_STYLE=dark", "MDPREVIEW_WORKERS=2", "HOME=/root"},
			wantNone: true,
		},
		{
			name:    "typo gets suggestion",
			environ: []string{"MDPREVIEW_WORKER=2"},
			want:    []string{"unknown environment variable MDPREVIEW_WORKER", "did you mean MDPREVIEW_WORKERS?"},
		},
		{
			name:    "far name gets no suggestion",
			environ: []string{"MDPREVIEW_PAGE_SIZE=a4"},
			want:    []string{"unknown environment variable MDPREVIEW_PAGE_SIZE\n"},
		},
		{
			name:     "other prefixes ignored",
			environ:  []string{"MD2PDF_STYLE=x", "XMDPREVIEW_STYLE=y"},
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			warnUnknownEnvVars(&buf, tt.environ)
			if tt.wantNone && buf.Len() != 0 {
				t.Errorf("unexpected warning: %q", buf.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got %q", want, buf.String())
				}
			}
		})
	}
}

func TestEditDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"STYLE", "STYEL", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides config values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Name = "print"
		applyEnvConfig(&envConfig{Style: "dark", Engine: "goldmark", OutputDir: "/out", Workers: 3}, cfg)

		if cfg.Style.Name != "dark" || cfg.Engine != "goldmark" || cfg.Output.DefaultDir != "/out" || cfg.Workers != 3 {
			t.Errorf("config not overridden: %+v", cfg)
		}
	})

	t.Run("empty values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Name = "print"
		cfg.Workers = 5
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Style.Name != "print" || cfg.Workers != 5 || cfg.Engine != config.EngineNative {
			t.Errorf("config changed by empty env: %+v", cfg)
		}
	})
}
