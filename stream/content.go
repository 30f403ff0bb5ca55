package stream

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// toolResultPreviewLines caps how many lines of a tool result render
	// before the output is elided.
	toolResultPreviewLines = 20

	// toolInputTruncateLen caps how many characters of a tool input value
	// render in the key/value rows.
	toolInputTruncateLen = 200
)

// renderContentItem renders one entry of a message's content array.
// Unrecognized item types render nothing.
func renderContentItem(item map[string]any, cfg Config) []Block {
	switch strField(item, "type") {
	case "text":
		return renderTextContent(item)
	case "thinking":
		return renderThinkingContent(item, cfg)
	case "tool_use":
		return renderToolUseContent(item, cfg)
	case "tool_result":
		return renderToolResultContent(item, cfg)
	case "image":
		return renderImageContent(item)
	}
	return nil
}

func renderTextContent(item map[string]any) []Block {
	var blocks []Block
	for _, line := range strings.Split(strField(item, "text"), "\n") {
		blocks = append(blocks, TextBlock{Text: line, Indent: 1})
	}
	return blocks
}

// renderThinkingContent renders extended-thinking items. The signature
// field is a cryptographic attestation and is never shown.
func renderThinkingContent(item map[string]any, cfg Config) []Block {
	if !cfg.ShowThinking {
		return nil
	}
	style := NewStyleSet(StyleThinking)
	blocks := []Block{
		TextBlock{Text: iconThinking + " Thinking:", Indent: 1, Styles: style},
	}
	for _, line := range strings.Split(strField(item, "thinking"), "\n") {
		blocks = append(blocks, TextBlock{Text: line, Indent: 2, Styles: style})
	}
	return blocks
}

func renderToolUseContent(item map[string]any, cfg Config) []Block {
	blocks := []Block{
		HeaderBlock{
			Text:   "Tool: " + strField(item, "name"),
			Level:  3,
			Icon:   iconTool,
			Styles: NewStyleSet(StyleTool),
		},
		TextBlock{
			Text:   "(" + strField(item, "id") + ")",
			Indent: 1,
			Styles: NewStyleSet(StyleMetadata),
		},
	}
	if !cfg.ShowToolResults {
		return blocks
	}
	input := mapField(item, "input")
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		blocks = append(blocks, KeyValueBlock{
			Key:    k,
			Value:  truncateValue(stringifyValue(input[k])),
			Indent: 2,
		})
	}
	return blocks
}

func renderToolResultContent(item map[string]any, cfg Config) []Block {
	header := HeaderBlock{Text: "Result", Level: 3, Icon: iconSuccess, Styles: NewStyleSet(StyleSuccess)}
	if boolField(item, "is_error") {
		header = HeaderBlock{Text: "Error", Level: 3, Icon: iconFailure, Styles: NewStyleSet(StyleError)}
	}
	blocks := []Block{
		header,
		TextBlock{
			Text:   "(" + strField(item, "tool_use_id") + ")",
			Indent: 1,
			Styles: NewStyleSet(StyleMetadata),
		},
	}
	if !cfg.ShowToolResults || !hasToolResultContent(item["content"]) {
		return blocks
	}
	lines := strings.Split(toolResultText(item["content"]), "\n")
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

func renderImageContent(item map[string]any) []Block {
	mediaType := strField(mapField(item, "source"), "media_type")
	if mediaType == "" {
		mediaType = "unknown"
	}
	return []Block{
		HeaderBlock{
			Text:   "Image (" + mediaType + ")",
			Level:  3,
			Icon:   iconImage,
			Styles: NewStyleSet(StyleUser),
		},
	}
}

// hasToolResultContent reports whether a tool_result content field has
// anything to show. Shapes other than a string or a list count as empty.
func hasToolResultContent(content any) bool {
	switch c := content.(type) {
	case string:
		return c != ""
	case []any:
		return len(c) > 0
	}
	return false
}

// toolResultText flattens a tool_result content field into displayable
// text. The field is either a string or a list of content items; anything
// else renders nothing.
func toolResultText(content any) string {
	switch c := content.(type) {
	case string:
		return c
	case []any:
		var parts []string
		for _, entry := range c {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			switch strField(item, "type") {
			case "text":
				parts = append(parts, strField(item, "text"))
			case "image":
				mediaType := strField(mapField(item, "source"), "media_type")
				if mediaType == "" {
					mediaType = "unknown"
				}
				parts = append(parts, "[Image: "+mediaType+"]")
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// stringifyValue renders a decoded JSON value for key/value display.
// Scalars print bare; composites print as compact JSON.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

func truncateValue(s string) string {
	runes := []rune(s)
	if len(runes) <= toolInputTruncateLen {
		return s
	}
	return string(runes[:toolInputTruncateLen]) + "..."
}
