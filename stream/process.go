package stream

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Processor runs the parse -> filter -> render -> format pipeline over
// JSONL input and writes the result to Out. Warnings about malformed
// lines go to ErrOut so they never pollute piped output.
type Processor struct {
	Config    Config
	Formatter Formatter
	Out       io.Writer
	ErrOut    io.Writer
}

// NewProcessor wires a processor to stdout/stderr.
func NewProcessor(cfg Config, f Formatter) *Processor {
	return &Processor{Config: cfg, Formatter: f, Out: os.Stdout, ErrOut: os.Stderr}
}

// ProcessLine handles one physical line. Blank lines are skipped; invalid
// JSON produces a stderr warning. Pass lineNum > 0 when the caller tracks
// positions in a file; 0 means unnumbered input (live tailing), where the
// warning quotes the offending text instead.
func (p *Processor) ProcessLine(lineNum int, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	msg, raw, err := ParseLine([]byte(line))
	if err != nil {
		if lineNum > 0 {
			fmt.Fprintf(p.ErrOut, "warning: invalid JSON on line %d\n", lineNum)
		} else {
			fmt.Fprintf(p.ErrOut, "warning: skipping invalid JSON: %s...\n", clip(line, 50))
		}
		return
	}

	if !ShouldShow(msg, raw, p.Config) {
		return
	}

	blocks := msg.Render(p.Config)
	if p.Config.ShowLineNumbers && lineNum > 0 {
		prefixed := make([]Block, 0, len(blocks)+1)
		prefixed = append(prefixed, TextBlock{
			Text:   fmt.Sprintf("[%d]", lineNum),
			Styles: NewStyleSet(StyleMetadata),
		})
		blocks = append(prefixed, blocks...)
	}
	fmt.Fprintln(p.Out, p.Formatter.Format(blocks))
}

// ProcessStream renders every record from r. When tailLines > 0 only the
// last N lines are processed, numbered by their original position.
func (p *Processor) ProcessStream(r io.Reader, tailLines int) error {
	lr := newLineReader(r)

	if tailLines > 0 {
		var lines []string
		for {
			line, ok := lr.next()
			if !ok {
				break
			}
			lines = append(lines, line)
		}
		if err := lr.Err(); err != nil {
			return err
		}
		start := 0
		if len(lines) > tailLines {
			start = len(lines) - tailLines
		}
		for i, line := range lines[start:] {
			p.ProcessLine(start+i+1, line)
		}
		return nil
	}

	lineNum := 0
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		lineNum++
		p.ProcessLine(lineNum, line)
	}
	return lr.Err()
}

// ProcessFileChunk renders records appended to path since offset and
// returns the new offset. Lines read while tailing are unnumbered.
func (p *Processor) ProcessFileChunk(path string, offset int64) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}

	lr := newLineReader(f)
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		p.ProcessLine(0, line)
	}
	if err := lr.Err(); err != nil {
		return offset + lr.BytesRead(), err
	}
	return offset + lr.BytesRead(), nil
}

// ProcessFileTail renders the last n records of path and returns the
// file's end offset for subsequent incremental reads.
func (p *Processor) ProcessFileTail(path string, n int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lr := newLineReader(f)
	var lines []string
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	if err := lr.Err(); err != nil {
		return lr.BytesRead(), err
	}

	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}
	for _, line := range lines[start:] {
		p.ProcessLine(0, line)
	}
	return lr.BytesRead(), nil
}

// clip truncates s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
