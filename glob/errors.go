package glob

import "fmt"

// SyntaxError reports a fatal error translating a glob pattern into the
// internal regex alphabet (spec.md §7, "Pattern syntax error").
type SyntaxError struct {
	// Pattern is the offending rule's source text.
	Pattern string
	// Pos is the byte offset within Pattern where the error was detected.
	Pos int
	// Msg describes what went wrong.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("glob: %s at offset %d in %q", e.Msg, e.Pos, e.Pattern)
}

// Warning reports a non-fatal condition encountered during translation,
// such as an unnecessary escape being dropped (spec.md §4.1 and §7).
type Warning struct {
	Pattern string
	Pos     int
	Msg     string
}

// String renders the warning for diagnostics.
func (w Warning) String() string {
	return fmt.Sprintf("glob: %s at offset %d in %q", w.Msg, w.Pos, w.Pattern)
}
