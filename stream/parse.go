package stream

import "encoding/json"

// Helpers for pulling typed fields out of decoded JSON objects. encoding/json
// decodes numbers as float64, so integer fields go through floatField.

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatField(m map[string]any, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

func intField(m map[string]any, key string) int {
	return int(floatField(m, key))
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func mapField(m map[string]any, key string) map[string]any {
	sub, _ := m[key].(map[string]any)
	return sub
}

func listField(m map[string]any, key string) []any {
	l, _ := m[key].([]any)
	return l
}

// Parse builds a Message from a decoded JSON record. Records with an
// unrecognized or missing type, and records whose shape panics the
// constructor, come back as UnknownMessage rather than an error so a
// single malformed record never stops the stream.
func Parse(raw map[string]any) (msg Message) {
	kind := strField(raw, "type")
	defer func() {
		if r := recover(); r != nil {
			msg = newUnknownMessage(kind, raw)
		}
	}()

	switch kind {
	case "assistant":
		return newAssistantMessage(raw)
	case "user":
		return newUserMessage(raw)
	case "system":
		return newSystemMessage(raw)
	case "summary":
		return newSummaryMessage(raw)
	case "result":
		return newResultMessage(raw)
	case "file-history-snapshot":
		return newFileHistorySnapshot(raw)
	case "queue-operation":
		return newQueueOperationMessage(raw)
	default:
		return newUnknownMessage(kind, raw)
	}
}

// ParseLine decodes one JSONL line and parses it. The raw record is
// returned alongside the message for filtering against the original JSON.
func ParseLine(line []byte) (Message, map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, nil, err
	}
	return Parse(raw), raw, nil
}
