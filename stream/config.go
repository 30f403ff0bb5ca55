package stream

// Config controls which messages are shown and how much detail each one
// renders. The zero value hides everything; use DefaultConfig for the
// normal starting point.
type Config struct {
	ShowThinking    bool
	ShowToolResults bool
	ShowMetadata    bool
	ShowLineNumbers bool

	// ShowTypes whitelists message types. A message whose Type() is not a
	// key with a true value is dropped.
	ShowTypes map[string]bool

	// ShowSubtypes, when non-empty, restricts messages to those matching
	// one of the named subtypes. For assistant messages the subtype is the
	// set of content item types; otherwise it is the record's "subtype"
	// field.
	ShowSubtypes map[string]bool

	// ShowTools, when non-empty, restricts assistant messages to those
	// invoking one of the named tools.
	ShowTools map[string]bool

	// GrepPatterns keeps only records whose JSON serialization contains at
	// least one pattern as a substring. ExcludePatterns drops records
	// matching any pattern.
	GrepPatterns    []string
	ExcludePatterns []string
}

// allTypes is every message type the parser recognizes.
var allTypes = []string{
	"assistant",
	"user",
	"system",
	"summary",
	"result",
	"file-history-snapshot",
	"queue-operation",
}

// DefaultConfig returns a Config showing all message types with thinking
// and tool results visible and metadata hidden.
func DefaultConfig() Config {
	return Config{
		ShowThinking:    true,
		ShowToolResults: true,
		ShowTypes:       TypeSet(allTypes...),
	}
}

// TypeSet builds a membership set from names.
func TypeSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
