package glob

// PatternClass categorizes the shape of a translated pattern, letting
// downstream stages bypass DFA machinery for the common cases (spec.md
// §4.1's "Rationale").
type PatternClass uint8

const (
	// Basic patterns emitted no regex metacharacter at all: a pure
	// literal after escape collapse. Downstream code may compare the
	// pattern directly against candidate paths.
	Basic PatternClass = iota

	// TailGlob patterns used exactly one regex construct: a terminal
	// "**". This is common enough ("/usr/**") to warrant a fast path
	// that checks a literal prefix and stops.
	TailGlob

	// Regex patterns require the full DFA machinery.
	Regex

	// Invalid marks a pattern that failed to translate; Translate
	// always also returns a non-nil error in this case.
	Invalid
)

// String renders the class name for diagnostics.
func (c PatternClass) String() string {
	switch c {
	case Basic:
		return "Basic"
	case TailGlob:
		return "TailGlob"
	case Regex:
		return "Regex"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}
