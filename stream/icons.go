package stream

// Icons used in header blocks. Formatters that cannot show them (plain
// text) drop them.
const (
	iconAssistant = "*"
	iconUser      = "◂"
	iconSystem    = "▸"
	iconTool      = "▸"
	iconSubagent  = "◆"
	iconOutput    = "◆"
	iconSuccess   = "✓"
	iconFailure   = "✗"
	iconSummary   = "📋"
	iconSnapshot  = "📸"
	iconQueue     = "⚙"
	iconThinking  = "💭"
	iconImage     = "🖼"
)
