package expr

import "fmt"

// ParseError reports a malformed internal-alphabet regex string, almost
// always a programming error in package glob rather than user input,
// since glob.Translate is expected to emit only well-formed strings
// (spec.md §7).
type ParseError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expr: parse error at byte %d of %q: %s", e.Pos, e.Pattern, e.Msg)
}
