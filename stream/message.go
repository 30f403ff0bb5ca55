package stream

import (
	"fmt"
	"strings"
)

// Message is a parsed session log record. Render produces the block list
// for one record; callers hand the blocks to a Formatter.
type Message interface {
	// Type is the record's "type" field.
	Type() string
	// RawRecord is the decoded JSON object the message was parsed from.
	RawRecord() map[string]any
	// Render produces the display blocks for this message.
	Render(cfg Config) []Block
}

// base carries the fields every record shares.
type base struct {
	kind      string
	uuid      string
	timestamp string
	sessionID string
	raw       map[string]any
}

func newBase(kind string, raw map[string]any) base {
	return base{
		kind:      kind,
		uuid:      strField(raw, "uuid"),
		timestamp: strField(raw, "timestamp"),
		sessionID: strField(raw, "sessionId"),
		raw:       raw,
	}
}

func (b base) Type() string              { return b.kind }
func (b base) RawRecord() map[string]any { return b.raw }

// metadataBlocks renders the uuid/session/timestamp trailer when enabled.
func (b base) metadataBlocks(cfg Config) []Block {
	if !cfg.ShowMetadata {
		return nil
	}
	style := NewStyleSet(StyleMetadata)
	blocks := []Block{TextBlock{Text: "-- Metadata", Indent: 1, Styles: style}}
	if b.uuid != "" {
		blocks = append(blocks, TextBlock{Text: "| uuid: " + b.uuid, Indent: 1, Styles: style})
	}
	if b.sessionID != "" {
		blocks = append(blocks, TextBlock{Text: "| session: " + b.sessionID, Indent: 1, Styles: style})
	}
	if b.timestamp != "" {
		blocks = append(blocks, TextBlock{Text: "| timestamp: " + b.timestamp, Indent: 1, Styles: style})
	}
	return append(blocks, TextBlock{Text: "--", Indent: 1, Styles: style})
}

// AssistantMessage is a model turn: text, thinking, and tool invocations.
type AssistantMessage struct {
	base
	message     map[string]any
	isSidechain bool
}

func newAssistantMessage(raw map[string]any) *AssistantMessage {
	return &AssistantMessage{
		base:        newBase("assistant", raw),
		message:     mapField(raw, "message"),
		isSidechain: boolField(raw, "isSidechain"),
	}
}

// ContentItems returns the content array of the wrapped API message.
func (m *AssistantMessage) ContentItems() []any {
	return listField(m.message, "content")
}

func (m *AssistantMessage) label() string {
	if m.isSidechain {
		return "ASSISTANT (Task Agent)"
	}
	return "ASSISTANT"
}

func (m *AssistantMessage) Render(cfg Config) []Block {
	blocks := []Block{HeaderBlock{
		Text:   m.label(),
		Level:  2,
		Icon:   iconAssistant,
		Styles: NewStyleSet(StyleAssistant, StyleBold),
	}}
	for _, entry := range m.ContentItems() {
		if item, ok := entry.(map[string]any); ok {
			blocks = append(blocks, renderContentItem(item, cfg)...)
		}
	}
	usage := mapField(m.message, "usage")
	in := intField(usage, "input_tokens")
	out := intField(usage, "output_tokens")
	if in > 0 || out > 0 {
		blocks = append(blocks, TextBlock{
			Text:   fmt.Sprintf("Tokens: in=%d out=%d cache=%d", in, out, intField(usage, "cache_read_input_tokens")),
			Indent: 1,
			Styles: NewStyleSet(StyleMetadata),
		})
	}
	blocks = append(blocks, m.metadataBlocks(cfg)...)
	return append(blocks, SpacerBlock{Lines: 1})
}

// UserMessage is a human turn. Depending on the record it renders as plain
// input, a tool result echo, a sub-agent result, or a local slash command.
type UserMessage struct {
	base
	message       map[string]any
	toolUseResult any
}

func newUserMessage(raw map[string]any) *UserMessage {
	return &UserMessage{
		base:          newBase("user", raw),
		message:       mapField(raw, "message"),
		toolUseResult: raw["toolUseResult"],
	}
}

func (m *UserMessage) subagentResult() (map[string]any, bool) {
	result, ok := m.toolUseResult.(map[string]any)
	if !ok || result["agentId"] == nil {
		return nil, false
	}
	return result, true
}

func (m *UserMessage) isToolResult() bool {
	if _, ok := m.subagentResult(); ok {
		return false
	}
	return m.toolUseResult != nil
}

func (m *UserMessage) localCommandContent() (string, bool) {
	content, ok := m.message["content"].(string)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(content, "<command-name>") ||
		strings.HasPrefix(content, "<local-command-stdout>") {
		return content, true
	}
	return "", false
}

func (m *UserMessage) Render(cfg Config) []Block {
	var blocks []Block
	if result, ok := m.subagentResult(); ok {
		blocks = m.renderSubagent(result)
	} else if m.isToolResult() {
		blocks = m.renderToolResults(cfg)
	} else if content, ok := m.localCommandContent(); ok {
		blocks = renderLocalCommand(content, cfg)
	} else {
		blocks = m.renderUserInput(cfg)
	}
	blocks = append(blocks, m.metadataBlocks(cfg)...)
	return append(blocks, SpacerBlock{Lines: 1})
}

func (m *UserMessage) renderUserInput(cfg Config) []Block {
	blocks := []Block{HeaderBlock{
		Text:   "USER",
		Level:  2,
		Icon:   iconUser,
		Styles: NewStyleSet(StyleUser),
	}}
	switch content := m.message["content"].(type) {
	case string:
		if content != "" {
			for _, line := range strings.Split(content, "\n") {
				blocks = append(blocks, TextBlock{Text: line, Indent: 1})
			}
		}
	case []any:
		for _, entry := range content {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			switch strField(item, "type") {
			case "text":
				for _, line := range strings.Split(strField(item, "text"), "\n") {
					blocks = append(blocks, TextBlock{Text: line, Indent: 1})
				}
			case "tool_result":
				blocks = append(blocks, renderToolResultContent(item, cfg)...)
			case "image":
				blocks = append(blocks, renderImageContent(item)...)
			}
		}
	}
	return blocks
}

// renderToolResults renders the tool_result items without a USER header;
// the tool invocation it answers already carries the banner.
func (m *UserMessage) renderToolResults(cfg Config) []Block {
	var blocks []Block
	for _, entry := range listField(m.message, "content") {
		item, ok := entry.(map[string]any)
		if !ok || strField(item, "type") != "tool_result" {
			continue
		}
		blocks = append(blocks, renderToolResultContent(item, cfg)...)
	}
	return blocks
}

func (m *UserMessage) renderSubagent(result map[string]any) []Block {
	agentID := strField(result, "agentId")
	if agentID == "" {
		agentID = "unknown"
	}
	blocks := []Block{HeaderBlock{
		Text:   "SUB-AGENT (" + agentID + ")",
		Level:  2,
		Icon:   iconSubagent,
		Styles: NewStyleSet(StyleAssistant, StyleBold),
	}}
	for _, entry := range listField(result, "content") {
		item, ok := entry.(map[string]any)
		if !ok || strField(item, "type") != "text" {
			continue
		}
		for _, line := range strings.Split(strField(item, "text"), "\n") {
			blocks = append(blocks, TextBlock{Text: line, Indent: 1})
		}
	}
	if total := intField(result, "totalTokens"); total > 0 {
		blocks = append(blocks, TextBlock{
			Text:   fmt.Sprintf("Total tokens: %d", total),
			Indent: 1,
			Styles: NewStyleSet(StyleMetadata),
		})
	}
	return blocks
}

// renderLocalCommand handles the <command-name> / <local-command-stdout>
// wrappers Claude Code writes for slash commands run locally.
func renderLocalCommand(content string, cfg Config) []Block {
	if strings.HasPrefix(content, "<command-name>") {
		blocks := []Block{HeaderBlock{
			Text:   "Command: " + tagContent(content, "command-name"),
			Level:  3,
			Icon:   iconSystem,
			Styles: NewStyleSet(StyleUser),
		}}
		if args := tagContent(content, "command-args"); args != "" {
			blocks = append(blocks, KeyValueBlock{Key: "args", Value: args, Indent: 1})
		}
		return blocks
	}

	if !cfg.ShowToolResults {
		return nil
	}
	stdout := strings.ReplaceAll(content, "<local-command-stdout>", "")
	stdout = strings.ReplaceAll(stdout, "</local-command-stdout>", "")
	blocks := []Block{HeaderBlock{
		Text:   "Output",
		Level:  3,
		Icon:   iconOutput,
		Styles: NewStyleSet(StyleUser),
	}}
	lines := strings.Split(stdout, "\n")
	shown := lines
	if len(lines) > toolResultPreviewLines {
		shown = lines[:toolResultPreviewLines]
	}
	for _, line := range shown {
		blocks = append(blocks, TextBlock{Text: line, Indent: 2})
	}
	if len(lines) > toolResultPreviewLines {
		blocks = append(blocks, TextBlock{
			Text:   fmt.Sprintf("... (%d lines total)", len(lines)),
			Indent: 2,
			Styles: NewStyleSet(StyleMetadata),
		})
	}
	return blocks
}

// tagContent extracts the text between <tag> and </tag>, or "" when the
// pair is absent or inverted.
func tagContent(s, tag string) string {
	opening, closing := "<"+tag+">", "</"+tag+">"
	start := strings.Index(s, opening)
	end := strings.Index(s, closing)
	if start < 0 || end < 0 {
		return ""
	}
	start += len(opening)
	if start >= end {
		return ""
	}
	return s[start:end]
}

// SystemMessage covers init banners, compaction boundaries, and other
// system notices.
type SystemMessage struct {
	base
	subtype string
	content string
}

func newSystemMessage(raw map[string]any) *SystemMessage {
	return &SystemMessage{
		base:    newBase("system", raw),
		subtype: strField(raw, "subtype"),
		content: strField(raw, "content"),
	}
}

func (m *SystemMessage) Render(cfg Config) []Block {
	blocks := []Block{HeaderBlock{
		Text:   "SYSTEM (" + m.subtype + ")",
		Level:  2,
		Icon:   iconSystem,
		Styles: NewStyleSet(StyleSystem),
	}}
	switch m.subtype {
	case "init":
		blocks = append(blocks,
			KeyValueBlock{Key: "Model", Value: strField(m.raw, "model"), Indent: 1},
			KeyValueBlock{Key: "Version", Value: strField(m.raw, "claude_code_version"), Indent: 1},
			KeyValueBlock{Key: "Directory", Value: strField(m.raw, "cwd"), Indent: 1},
		)
	case "compact_boundary":
		pre := intField(mapField(m.raw, "compactMetadata"), "preTokens")
		blocks = append(blocks, TextBlock{
			Text:   fmt.Sprintf("%s (%d tokens before compaction)", m.content, pre),
			Indent: 1,
		})
	default:
		if m.content != "" {
			blocks = append(blocks, TextBlock{Text: m.content, Indent: 1})
		}
	}
	blocks = append(blocks, m.metadataBlocks(cfg)...)
	return append(blocks, SpacerBlock{Lines: 1})
}

// FileHistorySnapshot marks a point-in-time capture of tracked files.
type FileHistorySnapshot struct {
	base
	snapshot map[string]any
}

func newFileHistorySnapshot(raw map[string]any) *FileHistorySnapshot {
	return &FileHistorySnapshot{
		base:     newBase("file-history-snapshot", raw),
		snapshot: mapField(raw, "snapshot"),
	}
}

func (m *FileHistorySnapshot) Render(cfg Config) []Block {
	ts := "unknown"
	if v, ok := m.snapshot["timestamp"]; ok {
		ts = stringifyValue(v)
	}
	return []Block{
		HeaderBlock{
			Text:   "File History Snapshot (" + ts + ")",
			Level:  2,
			Icon:   iconSnapshot,
			Styles: NewStyleSet(StyleSystem),
		},
		SpacerBlock{Lines: 1},
	}
}

// SummaryMessage is a one-line conversation summary.
type SummaryMessage struct {
	base
	summary string
}

func newSummaryMessage(raw map[string]any) *SummaryMessage {
	return &SummaryMessage{
		base:    newBase("summary", raw),
		summary: strField(raw, "summary"),
	}
}

func (m *SummaryMessage) Render(cfg Config) []Block {
	return []Block{
		HeaderBlock{
			Text:   m.summary,
			Level:  1,
			Icon:   iconSummary,
			Prefix: "Summary:",
			Styles: NewStyleSet(StyleInfo),
		},
		SpacerBlock{Lines: 1},
	}
}

// QueueOperationMessage records queue maintenance performed on the session.
type QueueOperationMessage struct {
	base
	operation string
	content   string
}

func newQueueOperationMessage(raw map[string]any) *QueueOperationMessage {
	return &QueueOperationMessage{
		base:      newBase("queue-operation", raw),
		operation: strField(raw, "operation"),
		content:   strField(raw, "content"),
	}
}

func (m *QueueOperationMessage) Render(cfg Config) []Block {
	blocks := []Block{HeaderBlock{
		Text:   "Queue: " + m.operation,
		Level:  2,
		Icon:   iconQueue,
		Styles: NewStyleSet(StyleSystem),
	}}
	if m.content != "" {
		for _, line := range strings.Split(m.content, "\n") {
			blocks = append(blocks, TextBlock{Text: line, Indent: 1})
		}
	}
	blocks = append(blocks, m.metadataBlocks(cfg)...)
	return append(blocks, SpacerBlock{Lines: 1})
}

// ResultMessage is the end-of-session accounting record.
type ResultMessage struct {
	base
	subtype    string
	costUSD    float64
	durationMS int
	numTurns   int
	usage      map[string]any
}

func newResultMessage(raw map[string]any) *ResultMessage {
	return &ResultMessage{
		base:       newBase("result", raw),
		subtype:    strField(raw, "subtype"),
		costUSD:    floatField(raw, "total_cost_usd"),
		durationMS: intField(raw, "duration_ms"),
		numTurns:   intField(raw, "num_turns"),
		usage:      mapField(raw, "usage"),
	}
}

func (m *ResultMessage) Render(cfg Config) []Block {
	blocks := []Block{
		DividerBlock{Char: "═", Width: 30},
		HeaderBlock{Text: "SESSION COMPLETE", Level: 1, Styles: NewStyleSet(StyleBold, StyleInfo)},
		DividerBlock{Char: "═", Width: 30},
		KeyValueBlock{Key: "Status", Value: m.subtype, Indent: 1},
		KeyValueBlock{Key: "Turns", Value: fmt.Sprintf("%d", m.numTurns), Indent: 1},
		KeyValueBlock{Key: "Duration", Value: fmt.Sprintf("%ds", (m.durationMS+500)/1000), Indent: 1},
		KeyValueBlock{Key: "Cost", Value: fmt.Sprintf("$%.4f", m.costUSD), Indent: 1},
		KeyValueBlock{
			Key: "Tokens",
			Value: fmt.Sprintf("in=%d out=%d cache=%d",
				intField(m.usage, "input_tokens"),
				intField(m.usage, "output_tokens"),
				intField(m.usage, "cache_read_input_tokens")),
			Indent: 1,
		},
	}
	blocks = append(blocks, m.metadataBlocks(cfg)...)
	return append(blocks, SpacerBlock{Lines: 1})
}

// UnknownMessage is the fallback for unrecognized record types. It renders
// a single marker line so malformed logs stay visible without breaking
// the stream.
type UnknownMessage struct {
	base
}

func newUnknownMessage(kind string, raw map[string]any) *UnknownMessage {
	return &UnknownMessage{base: newBase(kind, raw)}
}

func (m *UnknownMessage) Render(cfg Config) []Block {
	return []Block{TextBlock{Text: fmt.Sprintf("[Unknown message type: %s]", m.kind)}}
}
