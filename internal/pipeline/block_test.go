package pipeline

// Notes:
// - Handlers are tested on pre-escaped line slices, the way RenderBlocks
//   receives them from Compile; end-to-end escaping is covered in compile_test.go
// - Expected fragments are compared whole with cmp.Diff so that block
//   separators and nesting are pinned down, not just substrings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestRenderBlocks - Handler dispatch and ordering
// ---------------------------------------------------------------------------

func TestRenderBlocks(t *testing.T) {
	t.Parallel()

	frags := []CodeFragment{{Index: 0, HTML: `<pre class="md-code"><code>X</code></pre>`}}

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "no lines",
			lines: nil,
			want:  "",
		},
		{
			name:  "only blank lines",
			lines: []string{"", "   ", "\t"},
			want:  "",
		},
		{
			name:  "heading level one",
			lines: []string{"# Title"},
			want:  "<h1>Title</h1>",
		},
		{
			name:  "heading level six",
			lines: []string{"###### Six"},
			want:  "<h6>Six</h6>",
		},
		{
			name:  "seven hashes fall through to paragraph",
			lines: []string{"####### Seven"},
			want:  "<p>####### Seven</p>",
		},
		{
			name:  "hash without space is a paragraph",
			lines: []string{"#NoSpace"},
			want:  "<p>#NoSpace</p>",
		},
		{
			name:  "heading content is inline rendered",
			lines: []string{"## Use `make` **now**"},
			want:  "<h2>Use <code>make</code> <strong>now</strong></h2>",
		},
		{
			name:  "blockquote run",
			lines: []string{"&gt; line one", "  &gt;**two**", "after"},
			want:  "<blockquote>line one<br/><strong>two</strong></blockquote>\n<p>after</p>",
		},
		{
			name:  "blockquote keeps list markers as text",
			lines: []string{"&gt; - not a list"},
			want:  "<blockquote>- not a list</blockquote>",
		},
		{
			name:  "paragraph lines joined and trimmed",
			lines: []string{"first line", "  second line", "", "next"},
			want:  "<p>first line<br/>second line</p>\n<p>next</p>",
		},
		{
			name:  "code placeholder",
			lines: []string{"", "@@CODEBLOCK_0@@", ""},
			want:  `<pre class="md-code"><code>X</code></pre>`,
		},
		{
			name:  "unknown placeholder index is plain text",
			lines: []string{"@@CODEBLOCK_7@@"},
			want:  "<p>@@CODEBLOCK_7@@</p>",
		},
		{
			name:  "invalid table falls back to paragraph",
			lines: []string{"a | b", "not a delimiter"},
			want:  "<p>a | b<br/>not a delimiter</p>",
		},
		{
			name:  "delimiter row needs a pipe",
			lines: []string{"a | b", "---"},
			want:  "<p>a | b<br/>---</p>",
		},
		{
			name:  "heading directly followed by list",
			lines: []string{"## Steps", "- one"},
			want:  "<h2>Steps</h2>\n<ul>\n<li>one</li>\n</ul>",
		},
		{
			name:  "paragraph swallows following marker lines",
			lines: []string{"Intro", "- not an item"},
			want:  "<p>Intro<br/>- not an item</p>",
		},
		{
			name:  "list type change starts a new list",
			lines: []string{"- a", "1. b"},
			want:  "<ul>\n<li>a</li>\n</ul>\n<ol>\n<li>b</li>\n</ol>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := RenderBlocks(tt.lines, frags)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderBlocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderBlocks_Termination - Every line is consumed exactly once
// ---------------------------------------------------------------------------

func TestRenderBlocks_Termination(t *testing.T) {
	t.Parallel()

	// Lines that start constructs without completing them.
	lines := []string{
		"|", "|", "| a |", "|---|", "- ", "-", "1.", "&gt;", "#", "######", "@@CODEBLOCK_0@@",
		"   - deep", " * x", "10. ten", "", "*", "**", "|:-:|",
	}
	// Would hang on a handler that consumed zero lines.
	_ = RenderBlocks(lines, nil)
}
