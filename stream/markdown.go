package stream

import "strings"

// MarkdownFormatter renders blocks as Markdown suitable for pasting into
// docs or issue trackers.
type MarkdownFormatter struct{}

// NewMarkdownFormatter returns a Markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter { return &MarkdownFormatter{} }

func (f *MarkdownFormatter) Format(blocks []Block) string { return formatAll(f, blocks) }

// emphasize applies bold and italic markers. Dim and color styles have no
// Markdown equivalent and pass through.
func (f *MarkdownFormatter) emphasize(text string, styles StyleSet) string {
	if styles.Has(StyleBold) {
		text = "**" + text + "**"
	}
	if styles.Has(StyleItalic) || styles.Has(StyleThinking) {
		text = "*" + text + "*"
	}
	return text
}

func (f *MarkdownFormatter) formatBlock(b Block) string {
	switch blk := b.(type) {
	case HeaderBlock:
		level := blk.Level
		if level > 6 {
			level = 6
		}
		if level < 0 {
			level = 0
		}
		hashes := strings.Repeat("#", level)
		// Top-level headings read as document titles; drop the icon noise.
		if blk.Level == 1 {
			return hashes + " " + blk.Text
		}
		return hashes + " " + headerParts(blk.Icon, blk.Prefix, blk.Text)
	case TextBlock:
		return indent(f.emphasize(blk.Text, blk.Styles), blk.Indent)
	case CodeBlock:
		return indent("```"+blk.Language+"\n"+blk.Content+"\n```", blk.Indent)
	case KeyValueBlock:
		return indent("**"+blk.Key+":** "+blk.Value, blk.Indent)
	case DividerBlock:
		return "---"
	case ListBlock:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = "- " + item
		}
		return indent(strings.Join(lines, "\n"), blk.Indent)
	case NestedBlock:
		return indent(f.Format(blk.Children), blk.Indent)
	case SpacerBlock:
		return formatSpacer(blk)
	}
	return ""
}
