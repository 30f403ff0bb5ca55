package stream

import (
	"strings"

	"github.com/fatih/color"
)

// styleOrder fixes the order style attributes are emitted in, so the same
// StyleSet always produces the same escape sequence.
var styleOrder = []Style{
	StyleBold,
	StyleDim,
	StyleItalic,
	StyleError,
	StyleSuccess,
	StyleWarning,
	StyleInfo,
	StyleUser,
	StyleAssistant,
	StyleSystem,
	StyleTool,
	StyleThinking,
	StyleMetadata,
}

// ansiAttrs maps semantic styles to terminal attributes. StyleAssistant
// deliberately maps to nothing; assistant text renders in the default
// foreground.
var ansiAttrs = map[Style][]color.Attribute{
	StyleBold:      {color.Bold},
	StyleDim:       {color.Faint},
	StyleItalic:    {color.Italic},
	StyleError:     {color.FgRed},
	StyleSuccess:   {color.FgGreen},
	StyleWarning:   {color.FgYellow},
	StyleInfo:      {color.FgCyan},
	StyleUser:      {color.FgGreen},
	StyleAssistant: nil,
	StyleSystem:    {color.FgBlue},
	StyleTool:      {color.FgYellow},
	StyleThinking:  {color.Faint, color.Italic},
	StyleMetadata:  {color.Faint},
}

// ANSIFormatter renders blocks with terminal colors. Output is emitted
// unconditionally; callers pick this formatter only when the destination
// handles escape sequences.
type ANSIFormatter struct{}

// NewANSIFormatter returns a color terminal formatter.
func NewANSIFormatter() *ANSIFormatter { return &ANSIFormatter{} }

func (f *ANSIFormatter) Format(blocks []Block) string { return formatAll(f, blocks) }

// paint wraps text in the escape codes for styles. Colors are enabled
// explicitly so output does not depend on whether stdout is a terminal.
func (f *ANSIFormatter) paint(text string, styles StyleSet) string {
	if styles.Empty() {
		return text
	}
	var attrs []color.Attribute
	for _, st := range styleOrder {
		if styles.Has(st) {
			attrs = append(attrs, ansiAttrs[st]...)
		}
	}
	if len(attrs) == 0 {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (f *ANSIFormatter) formatBlock(b Block) string {
	switch blk := b.(type) {
	case HeaderBlock:
		text := headerParts(blk.Icon, blk.Prefix, blk.Text)
		return f.paint(text, blk.Styles.With(StyleBold))
	case TextBlock:
		return indent(f.paint(blk.Text, blk.Styles), blk.Indent)
	case CodeBlock:
		return indent(f.paint(blk.Content, blk.Styles), blk.Indent)
	case KeyValueBlock:
		key := f.paint(blk.Key+":", NewStyleSet(StyleBold))
		return indent(key+" "+f.paint(blk.Value, blk.Styles), blk.Indent)
	case DividerBlock:
		if blk.Width <= 0 {
			return ""
		}
		return f.paint(strings.Repeat(blk.Char, blk.Width), blk.Styles)
	case ListBlock:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = blk.Bullet + " " + item
		}
		return indent(f.paint(strings.Join(lines, "\n"), blk.Styles), blk.Indent)
	case NestedBlock:
		return indent(f.Format(blk.Children), blk.Indent)
	case SpacerBlock:
		return formatSpacer(blk)
	}
	return ""
}
