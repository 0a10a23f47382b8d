package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// envPrefix marks variables read by mdpreview.
const envPrefix = "MDPREVIEW_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDPREVIEW_CONFIG: config file name or path
	Style      string        // MDPREVIEW_STYLE: style name, path, or CSS
	Engine     string        // MDPREVIEW_ENGINE: native, goldmark
	OutputDir  string        // MDPREVIEW_OUTPUT_DIR: default output directory
	Workers    int           // MDPREVIEW_WORKERS: parallel workers
	Timeout    time.Duration // MDPREVIEW_TIMEOUT: per-file conversion timeout
}

// knownEnvVars lists valid MDPREVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPREVIEW_CONFIG":     true,
	"MDPREVIEW_STYLE":      true,
	"MDPREVIEW_ENGINE":     true,
	"MDPREVIEW_OUTPUT_DIR": true,
	"MDPREVIEW_WORKERS":    true,
	"MDPREVIEW_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive timeout and worker values are ignored.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.getenv("MDPREVIEW_CONFIG"),
		Style:      env.getenv("MDPREVIEW_STYLE"),
		Engine:     env.getenv("MDPREVIEW_ENGINE"),
		OutputDir:  env.getenv("MDPREVIEW_OUTPUT_DIR"),
	}

	if timeout := env.getenv("MDPREVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := env.getenv("MDPREVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPREVIEW_* variables,
// with a suggestion when a known name is close.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s%s\n", name, hints.ForUnknownEnv(suggestEnvVar(name)))
	}
}

// suggestEnvVar returns the known variable closest to name, or "" when
// none is within a few edits.
func suggestEnvVar(name string) string {
	const maxDistance = 3

	best, bestDist := "", maxDistance+1
	for known := range knownEnvVars {
		d := editDistance(name, known)
		if d < bestDist || (d == bestDist && known < best) {
			best, bestDist = known, d
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}

// editDistance is the Levenshtein distance between a and b over bytes.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later
// via mergeFlags, giving: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style.Name = env.Style
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
