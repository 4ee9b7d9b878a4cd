package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation succeeded
	SymbolFail     = "✗" // Operation failed
	SymbolPending  = "○" // Not started
	SymbolComplete = "●" // Done, used in spinner results
)
