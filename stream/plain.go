package stream

import "strings"

// PlainFormatter renders blocks as unstyled text for pipes and logs.
// Icons are dropped from headers; prefixes and structure survive.
type PlainFormatter struct{}

// NewPlainFormatter returns a plain text formatter.
func NewPlainFormatter() *PlainFormatter { return &PlainFormatter{} }

func (f *PlainFormatter) Format(blocks []Block) string { return formatAll(f, blocks) }

func (f *PlainFormatter) formatBlock(b Block) string {
	switch blk := b.(type) {
	case HeaderBlock:
		return headerParts("", blk.Prefix, blk.Text)
	case TextBlock:
		return indent(blk.Text, blk.Indent)
	case CodeBlock:
		return indent(blk.Content, blk.Indent)
	case KeyValueBlock:
		return indent(blk.Key+": "+blk.Value, blk.Indent)
	case DividerBlock:
		if blk.Width <= 0 {
			return ""
		}
		return strings.Repeat(blk.Char, blk.Width)
	case ListBlock:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = blk.Bullet + " " + item
		}
		return indent(strings.Join(lines, "\n"), blk.Indent)
	case NestedBlock:
		return indent(f.Format(blk.Children), blk.Indent)
	case SpacerBlock:
		return formatSpacer(blk)
	}
	return ""
}
