package main

// Notes:
// - runConvert: exercised end to end through runMain with temp directories,
//   checking files written, exit codes, and messages.
// - mergeFlags/applyEnvConfig: we test precedence flags > env > config.
// - Signal handling and automaxprocs are not exercised here.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
)

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestConvert_SingleFile - One input file
// ---------------------------------------------------------------------------

func TestConvert_SingleFile(t *testing.T) {
	t.Parallel()

	t.Run("writes html next to source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "rules.md")
		writeFile(t, src, "# Kitchen rules\n\n- Wash hands")

		env, stdout, stderr := newTestEnv(nil)
		code := runMain([]string{"mdpreview", "convert", src}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}

		got := readFile(t, filepath.Join(dir, "rules.html"))
		for _, want := range []string{"<title>Kitchen rules</title>", "<h1>Kitchen rules</h1>", "<li>Wash hands</li>"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q", want)
			}
		}
		if !strings.Contains(stdout.String(), "Created "+filepath.Join(dir, "rules.html")) {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("explicit output file and title", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.markdown")
		out := filepath.Join(dir, "out", "page.html")
		writeFile(t, src, "# Heading")

		env, _, stderr := newTestEnv(nil)
		code := runMain([]string{"mdpreview", "convert", src, "-o", out, "--title", "Given", "-q"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if got := readFile(t, out); !strings.Contains(got, "<title>Given</title>") {
			t.Error("explicit title not used")
		}
	})

	t.Run("stdout flag", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.md")
		writeFile(t, src, "**bold**")

		env, stdout, stderr := newTestEnv(nil)
		code := runMain([]string{"mdpreview", "convert", "--stdout", src}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if !strings.HasPrefix(stdout.String(), "<!doctype html>") || !strings.Contains(stdout.String(), "<strong>bold</strong>") {
			t.Errorf("stdout = %q", stdout.String())
		}
		if _, err := os.Stat(filepath.Join(dir, "a.html")); !os.IsNotExist(err) {
			t.Error("--stdout must not write a file")
		}
	})

	t.Run("goldmark engine with highlighting", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.md")
		writeFile(t, src, "~~old~~\n\n```go\nfunc main() {}\n```")

		env, _, stderr := newTestEnv(nil)
		code := runMain([]string{"mdpreview", "convert", src, "--engine", "goldmark", "--highlight-style", "monokai"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		got := readFile(t, filepath.Join(dir, "a.html"))
		if !strings.Contains(got, "<del>old</del>") || !strings.Contains(got, ".chroma") {
			t.Errorf("goldmark output not highlighted: %q", got)
		}
	})

	t.Run("css file appended", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.md")
		css := filepath.Join(dir, "extra.css")
		writeFile(t, src, "x")
		writeFile(t, css, "p { color: teal; }")

		env, _, stderr := newTestEnv(nil)
		if code := runMain([]string{"mdpreview", "convert", src, "--css", css}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(readFile(t, filepath.Join(dir, "a.html")), "p { color: teal; }") {
			t.Error("css file not applied")
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert_Stdin - Reading Markdown from standard input
// ---------------------------------------------------------------------------

func TestConvert_Stdin(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := newTestEnv(nil)
	env.Stdin = strings.NewReader("# From stdin\n\n> quoted")

	code := runMain([]string{"mdpreview", "convert", "-"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{"<title>From stdin</title>", "<blockquote>quoted</blockquote>"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Directory - Batch conversion of a tree
// ---------------------------------------------------------------------------

func TestConvert_Directory(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(in, "a.md"), "# A")
	writeFile(t, filepath.Join(in, "sub", "b.markdown"), "# B")
	writeFile(t, filepath.Join(in, "notes.txt"), "ignored")

	env, stdout, stderr := newTestEnv(nil)
	code := runMain([]string{"mdpreview", "convert", in, "-o", out, "-w", "2"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}

	if got := readFile(t, filepath.Join(out, "a.html")); !strings.Contains(got, "<h1>A</h1>") {
		t.Error("a.html content wrong")
	}
	if got := readFile(t, filepath.Join(out, "sub", "b.html")); !strings.Contains(got, "<h1>B</h1>") {
		t.Error("sub/b.html content wrong")
	}
	if _, err := os.Stat(filepath.Join(out, "notes.html")); !os.IsNotExist(err) {
		t.Error("non-markdown file converted")
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("summary missing: %q", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestConvert_ExitCodes - Semantic exit codes
// ---------------------------------------------------------------------------

func TestConvert_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "a.md")
	txt := filepath.Join(dir, "a.txt")
	empty := filepath.Join(dir, "empty")
	writeFile(t, md, "x")
	writeFile(t, txt, "x")
	if err := os.MkdirAll(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"missing file", []string{filepath.Join(dir, "missing.md")}, ExitIO, "no such file"},
		{"wrong extension", []string{txt}, ExitUsage, "must have .md"},
		{"too many inputs", []string{md, md}, ExitUsage, "expected one input"},
		{"bad engine", []string{md, "--engine", "pandoc"}, ExitUsage, "engine"},
		{"unknown style", []string{md, "--style", "no-such-style"}, ExitUsage, "hint: available:"},
		{"bad highlight style", []string{md, "--highlight-style", "no-such-theme"}, ExitUsage, "highlight"},
		{"bad timeout", []string{md, "--timeout", "soon"}, ExitUsage, "invalid timeout"},
		{"negative workers", []string{md, "-w", "-1"}, ExitUsage, "invalid worker count"},
		{"missing css file", []string{md, "--css", filepath.Join(dir, "nope.css")}, ExitIO, "failed to read CSS"},
		{"missing config", []string{md, "-c", "no-such-config-xyz"}, ExitUsage, "hint: use --config"},
		{"stdout with directory", []string{dir, "--stdout"}, ExitUsage, "--stdout requires"},
		{"empty directory", []string{empty}, ExitIO, "no markdown files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv(nil)
			code := runMain(append([]string{"mdpreview", "convert"}, tt.args...), env)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_ConfigAndEnv - Configuration sources
// ---------------------------------------------------------------------------

func TestConvert_ConfigAndEnv(t *testing.T) {
	t.Parallel()

	t.Run("config file applies", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.md")
		cfgPath := filepath.Join(dir, "preview.yaml")
		writeFile(t, src, "# Heading")
		writeFile(t, cfgPath, "document:\n  title: From config\nstyle:\n  css: \"h1 { color: plum; }\"\n")

		env, _, stderr := newTestEnv(nil)
		if code := runMain([]string{"mdpreview", "convert", src, "-c", cfgPath}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		got := readFile(t, filepath.Join(dir, "a.html"))
		if !strings.Contains(got, "<title>From config</title>") || !strings.Contains(got, "color: plum") {
			t.Errorf("config not applied: %q", got)
		}
	})

	t.Run("env selects engine and output dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "site")
		src := filepath.Join(dir, "a.md")
		writeFile(t, src, "~~gone~~")

		env, _, stderr := newTestEnv(map[string]string{
			"MDPREVIEW_ENGINE":     "goldmark",
			"MDPREVIEW_OUTPUT_DIR": out,
		})
		if code := runMain([]string{"mdpreview", "convert", src}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if got := readFile(t, filepath.Join(out, "a.html")); !strings.Contains(got, "<del>gone</del>") {
			t.Errorf("goldmark engine not selected: %q", got)
		}
	})

	t.Run("unknown env var warns", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.md")
		writeFile(t, src, "x")

		env, _, stderr := newTestEnv(map[string]string{"MDPREVIEW_STYEL": "dark"})
		if code := runMain([]string{"mdpreview", "convert", src}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(stderr.String(), "unknown environment variable MDPREVIEW_STYEL") ||
			!strings.Contains(stderr.String(), "did you mean MDPREVIEW_STYLE?") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("precedence flags over env over config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Name = "print"
		cfg.Engine = "native"
		cfg.Workers = 2

		applyEnvConfig(&envConfig{Style: "dark", Engine: "goldmark", Workers: 4}, cfg)
		mergeFlags(&convertFlags{style: styleFlags{name: "default"}, workers: 8}, cfg)

		if cfg.Style.Name != "default" {
			t.Errorf("Style.Name = %q, want default (flag)", cfg.Style.Name)
		}
		if cfg.Engine != "goldmark" {
			t.Errorf("Engine = %q, want goldmark (env)", cfg.Engine)
		}
		if cfg.Workers != 8 {
			t.Errorf("Workers = %d, want 8 (flag)", cfg.Workers)
		}
	})

	t.Run("highlight style implies highlighting", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(&convertFlags{highlight: highlightFlags{style: "monokai"}}, cfg)
		if !cfg.Highlight.Enabled || cfg.Highlight.Style != "monokai" {
			t.Errorf("Highlight = %+v", cfg.Highlight)
		}
	})

	t.Run("empty flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Document.Title = "Kept"
		cfg.Assets.BasePath = "/assets"
		mergeFlags(&convertFlags{}, cfg)
		if cfg.Document.Title != "Kept" || cfg.Assets.BasePath != "/assets" || cfg.Highlight.Enabled {
			t.Errorf("config changed by empty flags: %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag and env timeout priority
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr error
	}{
		{"neither set", "", 0, 0, nil},
		{"env only", "", 30 * time.Second, 30 * time.Second, nil},
		{"flag wins", "2m", 30 * time.Second, 2 * time.Minute, nil},
		{"invalid flag", "soon", 0, 0, ErrInvalidTimeout},
		{"zero flag", "0s", 0, 0, ErrInvalidTimeout},
		{"negative flag", "-1s", 0, 0, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("resolveTimeout(%q, %v) error = %v, want %v", tt.flag, tt.env, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout(%q, %v) = %v, want %v", tt.flag, tt.env, got, tt.want)
			}
		})
	}
}

func TestResolveCSSContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "x.css")
	writeFile(t, path, "b { }")

	cfg := config.DefaultConfig()
	cfg.Style.CSS = "a { }"

	got, err := resolveCSSContent(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a { }\nb { }" {
		t.Errorf("resolveCSSContent() = %q, want config CSS then file", got)
	}

	if got, _ := resolveCSSContent("", cfg); got != "a { }" {
		t.Errorf("resolveCSSContent(\"\") = %q, want config CSS", got)
	}
}
