package stream

import "strings"

// Formatter turns rendered blocks into output text. Implementations are
// ANSIFormatter, MarkdownFormatter, and PlainFormatter.
type Formatter interface {
	// Format renders the blocks, joining non-empty results with newlines.
	Format(blocks []Block) string

	formatBlock(b Block) string
}

// formatAll is the shared Format body: format each block and join the
// non-empty results. Blocks that format to "" (spacers of one line,
// unhandled types) vanish rather than producing blank lines.
func formatAll(f Formatter, blocks []Block) string {
	var lines []string
	for _, b := range blocks {
		if s := f.formatBlock(b); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// indent prefixes every line of text with two spaces per level.
func indent(text string, level int) string {
	if level <= 0 {
		return text
	}
	prefix := strings.Repeat("  ", level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// formatSpacer emits one newline fewer than requested since the joiner in
// formatAll contributes the last one. A single-line spacer therefore
// formats to "" and is dropped.
func formatSpacer(b SpacerBlock) string {
	if b.Lines <= 1 {
		return ""
	}
	return strings.Repeat("\n", b.Lines-1)
}

// headerParts assembles icon, prefix, and text, skipping empty pieces.
func headerParts(icon, prefix, text string) string {
	var parts []string
	if icon != "" {
		parts = append(parts, icon)
	}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, text)
	return strings.Join(parts, " ")
}
