package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Severity   Severity
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Reactive (R001-R099)
	// ============================================

	"R001": {
		Category:   CategoryReactive,
		Severity:   SeverityWarning,
		Message:    "Write to readonly object",
		Suggestion: "Write through the mutable wrapper instead.",
	},
	"R002": {
		Category:   CategoryReactive,
		Severity:   SeverityWarning,
		Message:    "Delete from readonly object",
		Suggestion: "Delete through the mutable wrapper instead.",
	},
	"R003": {
		Category:   CategoryReactive,
		Severity:   SeverityError,
		Message:    "Array index out of range",
	},
	"R004": {
		Category:   CategoryReactive,
		Severity:   SeverityWarning,
		Message:    "Effect is stopped",
		Suggestion: "Create a new effect; stopped effects never run again.",
	},

	// ============================================
	// Render (V001-V099)
	// ============================================

	"V001": {
		Category:   CategoryRender,
		Severity:   SeverityWarning,
		Message:    "Event handler is not a function",
		Suggestion: "Bind a func(vdom.Event), a func() or a slice of them.",
	},
	"V002": {
		Category: CategoryRender,
		Severity: SeverityWarning,
		Message:  "Host cannot report siblings; falling back to quick diff",
	},
	"V003": {
		Category: CategoryRender,
		Severity: SeverityWarning,
		Message:  "Duplicate key in child list",
	},

	// ============================================
	// Component (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryComponent,
		Severity:   SeverityWarning,
		Message:    "Property not found in render context",
		Suggestion: "Declare it in Data, Props or return it from Setup.",
	},
	"C002": {
		Category:   CategoryComponent,
		Severity:   SeverityWarning,
		Message:    "Emitted event has no handler",
		Suggestion: "Pass an on<Event> prop to the component.",
	},
	"C003": {
		Category: CategoryComponent,
		Severity: SeverityWarning,
		Message:  "Undeclared property passed through as attribute",
	},

	// ============================================
	// Config (F001-F099)
	// ============================================

	"F001": {
		Category:   CategoryConfig,
		Severity:   SeverityError,
		Message:    "Configuration file could not be read",
		Suggestion: "Check the --config path or REACTOR_CONFIG.",
	},
	"F002": {
		Category: CategoryConfig,
		Severity: SeverityError,
		Message:  "Configuration is invalid",
	},

	// ============================================
	// CLI (X001-X099)
	// ============================================

	"X001": {
		Category:   CategoryCLI,
		Severity:   SeverityError,
		Message:    "Invalid key list",
		Suggestion: "Pass comma separated keys, e.g. --old 1,2,3 --new 3,1,2.",
	},
	"X002": {
		Category: CategoryCLI,
		Severity: SeverityError,
		Message:  "Scenario file could not be parsed",
	},
	"X003": {
		Category: CategoryCLI,
		Severity: SeverityError,
		Message:  "Benchmark report upload failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
