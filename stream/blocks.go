// Package stream parses newline-delimited JSON session logs produced by
// Claude Code and renders them as human-readable text. The pipeline is
// parse -> filter -> render-to-blocks -> format: each log record becomes a
// Message, each Message renders to a flat list of Blocks, and a Formatter
// turns the blocks into ANSI, Markdown, or plain text.
package stream

// Style is a semantic rendering hint attached to a block. Formatters map
// styles to whatever their output medium supports; the plain formatter
// ignores them entirely.
type Style int

const (
	StyleBold Style = iota
	StyleDim
	StyleItalic
	StyleError
	StyleSuccess
	StyleWarning
	StyleInfo
	StyleUser
	StyleAssistant
	StyleSystem
	StyleTool
	StyleThinking
	StyleMetadata
)

// StyleSet is a bitmask of Styles.
type StyleSet uint16

// NewStyleSet builds a StyleSet from the given styles.
func NewStyleSet(styles ...Style) StyleSet {
	var s StyleSet
	for _, st := range styles {
		s |= 1 << uint(st)
	}
	return s
}

// Has reports whether the set contains st.
func (s StyleSet) Has(st Style) bool { return s&(1<<uint(st)) != 0 }

// Empty reports whether the set contains no styles.
func (s StyleSet) Empty() bool { return s == 0 }

// With returns a copy of the set with st added.
func (s StyleSet) With(st Style) StyleSet { return s | 1<<uint(st) }

// Block is a single renderable unit. The set of implementations is closed;
// formatters switch over the concrete types.
type Block interface {
	block()
}

// HeaderBlock is a section heading such as a message or tool banner.
type HeaderBlock struct {
	Text   string
	Level  int
	Icon   string
	Prefix string
	Styles StyleSet
}

// TextBlock is a single line of body text.
type TextBlock struct {
	Text   string
	Indent int
	Styles StyleSet
}

// CodeBlock is preformatted content, optionally tagged with a language.
type CodeBlock struct {
	Content  string
	Language string
	Indent   int
	Styles   StyleSet
}

// KeyValueBlock is a "key: value" row.
type KeyValueBlock struct {
	Key    string
	Value  string
	Indent int
	Styles StyleSet
}

// DividerBlock is a horizontal rule built from a repeated character.
type DividerBlock struct {
	Char   string
	Width  int
	Styles StyleSet
}

// ListBlock is a bulleted list.
type ListBlock struct {
	Items  []string
	Bullet string
	Indent int
	Styles StyleSet
}

// NestedBlock groups children under an extra indent level.
type NestedBlock struct {
	Children []Block
	Indent   int
}

// SpacerBlock is vertical whitespace between rendered messages.
type SpacerBlock struct {
	Lines int
}

func (HeaderBlock) block()   {}
func (TextBlock) block()     {}
func (CodeBlock) block()     {}
func (KeyValueBlock) block() {}
func (DividerBlock) block()  {}
func (ListBlock) block()     {}
func (NestedBlock) block()   {}
func (SpacerBlock) block()   {}
