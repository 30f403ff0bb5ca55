package stream_test

import (
	"strings"
	"testing"

	"github.com/shitchell/claude-stream/stream"
)

func TestPlainFormatter(t *testing.T) {
	f := stream.NewPlainFormatter()

	tests := []struct {
		name   string
		blocks []stream.Block
		want   string
	}{
		{
			name:   "text",
			blocks: []stream.Block{stream.TextBlock{Text: "hello"}},
			want:   "hello",
		},
		{
			name:   "indented text",
			blocks: []stream.Block{stream.TextBlock{Text: "hello", Indent: 1}},
			want:   "  hello",
		},
		{
			name: "multiline text indents every line",
			blocks: []stream.Block{
				stream.TextBlock{Text: "a\nb", Indent: 2},
			},
			want: "    a\n    b",
		},
		{
			name: "header drops icon keeps prefix",
			blocks: []stream.Block{
				stream.HeaderBlock{Text: "done", Icon: "📋", Prefix: "Summary:", Level: 1},
			},
			want: "Summary: done",
		},
		{
			name:   "styles ignored",
			blocks: []stream.Block{stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleBold, stream.StyleError)}},
			want:   "x",
		},
		{
			name:   "key value",
			blocks: []stream.Block{stream.KeyValueBlock{Key: "Status", Value: "ok", Indent: 1}},
			want:   "  Status: ok",
		},
		{
			name:   "divider",
			blocks: []stream.Block{stream.DividerBlock{Char: "=", Width: 5}},
			want:   "=====",
		},
		{
			name:   "code",
			blocks: []stream.Block{stream.CodeBlock{Content: "x := 1", Language: "go", Indent: 1}},
			want:   "  x := 1",
		},
		{
			name: "list",
			blocks: []stream.Block{
				stream.ListBlock{Items: []string{"a", "b"}, Bullet: "-", Indent: 1},
			},
			want: "  - a\n  - b",
		},
		{
			name: "nested",
			blocks: []stream.Block{
				stream.NestedBlock{
					Children: []stream.Block{stream.TextBlock{Text: "inner"}},
					Indent:   1,
				},
			},
			want: "  inner",
		},
		{
			name: "single-line spacer dropped",
			blocks: []stream.Block{
				stream.TextBlock{Text: "a"},
				stream.SpacerBlock{Lines: 1},
				stream.TextBlock{Text: "b"},
			},
			want: "a\nb",
		},
		{
			name: "multi-line spacer leaves blank lines",
			blocks: []stream.Block{
				stream.TextBlock{Text: "a"},
				stream.SpacerBlock{Lines: 3},
				stream.TextBlock{Text: "b"},
			},
			want: "a\n\n\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.blocks); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdownFormatter(t *testing.T) {
	f := stream.NewMarkdownFormatter()

	tests := []struct {
		name   string
		blocks []stream.Block
		want   string
	}{
		{
			name: "level one header omits icon",
			blocks: []stream.Block{
				stream.HeaderBlock{Text: "Title", Icon: "📋", Prefix: "Summary:", Level: 1},
			},
			want: "# Title",
		},
		{
			name: "level two header keeps icon",
			blocks: []stream.Block{
				stream.HeaderBlock{Text: "USER", Icon: "◂", Level: 2},
			},
			want: "## ◂ USER",
		},
		{
			name: "level clamped to six",
			blocks: []stream.Block{
				stream.HeaderBlock{Text: "deep", Level: 9},
			},
			want: "###### deep",
		},
		{
			name:   "bold text",
			blocks: []stream.Block{stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleBold)}},
			want:   "**x**",
		},
		{
			name:   "thinking becomes italic",
			blocks: []stream.Block{stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleThinking)}},
			want:   "*x*",
		},
		{
			name:   "bold italic nests",
			blocks: []stream.Block{stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleBold, stream.StyleItalic)}},
			want:   "***x***",
		},
		{
			name:   "key value",
			blocks: []stream.Block{stream.KeyValueBlock{Key: "Status", Value: "ok"}},
			want:   "**Status:** ok",
		},
		{
			name:   "divider is always a rule",
			blocks: []stream.Block{stream.DividerBlock{Char: "═", Width: 30}},
			want:   "---",
		},
		{
			name:   "fenced code",
			blocks: []stream.Block{stream.CodeBlock{Content: "x := 1", Language: "go"}},
			want:   "```go\nx := 1\n```",
		},
		{
			name:   "list",
			blocks: []stream.Block{stream.ListBlock{Items: []string{"a", "b"}, Bullet: "*"}},
			want:   "- a\n- b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.blocks); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestANSIFormatter(t *testing.T) {
	f := stream.NewANSIFormatter()

	tests := []struct {
		name   string
		blocks []stream.Block
		want   string
	}{
		{
			name:   "unstyled text passes through",
			blocks: []stream.Block{stream.TextBlock{Text: "plain"}},
			want:   "plain",
		},
		{
			name:   "bold",
			blocks: []stream.Block{stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleBold)}},
			want:   "\x1b[1mx\x1b[0m",
		},
		{
			name:   "metadata is faint",
			blocks: []stream.Block{stream.TextBlock{Text: "(id)", Indent: 1, Styles: stream.NewStyleSet(stream.StyleMetadata)}},
			want:   "  \x1b[2m(id)\x1b[0m",
		},
		{
			name:   "thinking is faint italic",
			blocks: []stream.Block{stream.TextBlock{Text: "hmm", Styles: stream.NewStyleSet(stream.StyleThinking)}},
			want:   "\x1b[2;3mhmm\x1b[0m",
		},
		{
			name:   "error is red",
			blocks: []stream.Block{stream.TextBlock{Text: "bad", Styles: stream.NewStyleSet(stream.StyleError)}},
			want:   "\x1b[31mbad\x1b[0m",
		},
		{
			name: "header always bold",
			blocks: []stream.Block{
				stream.HeaderBlock{Text: "USER", Icon: "◂", Level: 2, Styles: stream.NewStyleSet(stream.StyleUser)},
			},
			want: "\x1b[1;32m◂ USER\x1b[0m",
		},
		{
			name: "assistant header has no color",
			blocks: []stream.Block{
				stream.HeaderBlock{Text: "ASSISTANT", Icon: "*", Level: 2, Styles: stream.NewStyleSet(stream.StyleAssistant, stream.StyleBold)},
			},
			want: "\x1b[1m* ASSISTANT\x1b[0m",
		},
		{
			name:   "key bold value styled",
			blocks: []stream.Block{stream.KeyValueBlock{Key: "Status", Value: "ok", Styles: stream.NewStyleSet(stream.StyleSuccess)}},
			want:   "\x1b[1mStatus:\x1b[0m \x1b[32mok\x1b[0m",
		},
		{
			name:   "unstyled value stays bare",
			blocks: []stream.Block{stream.KeyValueBlock{Key: "k", Value: "v", Indent: 1}},
			want:   "  \x1b[1mk:\x1b[0m v",
		},
		{
			name:   "system is blue",
			blocks: []stream.Block{stream.TextBlock{Text: "sys", Styles: stream.NewStyleSet(stream.StyleSystem)}},
			want:   "\x1b[34msys\x1b[0m",
		},
		{
			name:   "tool is yellow",
			blocks: []stream.Block{stream.TextBlock{Text: "t", Styles: stream.NewStyleSet(stream.StyleTool)}},
			want:   "\x1b[33mt\x1b[0m",
		},
		{
			name:   "info is cyan",
			blocks: []stream.Block{stream.TextBlock{Text: "i", Styles: stream.NewStyleSet(stream.StyleInfo)}},
			want:   "\x1b[36mi\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.blocks); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Style attribute order is fixed, so the same block always produces the
// same byte sequence regardless of how the style set was built.
func TestANSIFormatterDeterministicOrder(t *testing.T) {
	f := stream.NewANSIFormatter()
	a := stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleInfo, stream.StyleBold)}
	b := stream.TextBlock{Text: "x", Styles: stream.NewStyleSet(stream.StyleBold, stream.StyleInfo)}
	if got, want := f.Format([]stream.Block{a}), f.Format([]stream.Block{b}); got != want {
		t.Errorf("order-dependent output: %q vs %q", got, want)
	}
	if got := f.Format([]stream.Block{a}); got != "\x1b[1;36mx\x1b[0m" {
		t.Errorf("got %q, want bold before color", got)
	}
}

func TestFormattersDropEmptyBlocks(t *testing.T) {
	blocks := []stream.Block{
		stream.SpacerBlock{Lines: 1},
		stream.TextBlock{Text: "only"},
		stream.SpacerBlock{Lines: 1},
	}
	for _, f := range []stream.Formatter{
		stream.NewPlainFormatter(),
		stream.NewMarkdownFormatter(),
		stream.NewANSIFormatter(),
	} {
		got := f.Format(blocks)
		if strings.Count(got, "\n") != 0 {
			t.Errorf("%T: got %q, want single line", f, got)
		}
	}
}
