package stream

import (
	"encoding/json"
	"strings"
)

// ShouldShow applies the configured filters to a parsed message and its
// raw record. Filters run in order: type, subtype, tool, grep, exclude;
// the first rejection wins.
func ShouldShow(msg Message, raw map[string]any, cfg Config) bool {
	if len(cfg.ShowTypes) > 0 && !cfg.ShowTypes[msg.Type()] {
		return false
	}

	if len(cfg.ShowSubtypes) > 0 {
		if msg.Type() == "assistant" {
			// Assistant records have no subtype field; match against the
			// content item types instead.
			if !anyContentType(raw, cfg.ShowSubtypes) {
				return false
			}
		} else if subtype := strField(raw, "subtype"); subtype != "" && !cfg.ShowSubtypes[subtype] {
			return false
		}
	}

	if len(cfg.ShowTools) > 0 && !anyToolUse(raw, cfg.ShowTools) {
		return false
	}

	if len(cfg.GrepPatterns) > 0 || len(cfg.ExcludePatterns) > 0 {
		serialized, err := json.Marshal(raw)
		if err != nil {
			return false
		}
		s := string(serialized)
		if len(cfg.GrepPatterns) > 0 && !anySubstring(s, cfg.GrepPatterns) {
			return false
		}
		if anySubstring(s, cfg.ExcludePatterns) {
			return false
		}
	}

	return true
}

func anyContentType(raw map[string]any, want map[string]bool) bool {
	for _, entry := range listField(mapField(raw, "message"), "content") {
		if item, ok := entry.(map[string]any); ok && want[strField(item, "type")] {
			return true
		}
	}
	return false
}

func anyToolUse(raw map[string]any, want map[string]bool) bool {
	for _, entry := range listField(mapField(raw, "message"), "content") {
		item, ok := entry.(map[string]any)
		if !ok || strField(item, "type") != "tool_use" {
			continue
		}
		if want[strField(item, "name")] {
			return true
		}
	}
	return false
}

func anySubstring(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
