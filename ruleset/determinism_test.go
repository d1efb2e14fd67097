package ruleset

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/coregx/maccomp/dfaconst"
	"github.com/coregx/maccomp/permbits"
)

// ruleSpec is one randomly generated AddRule call, kept so the same
// rule set can be replayed into independent Rulesets.
type ruleSpec struct {
	pattern []byte
	deny    bool
	perms   permbits.Mask
	audit   permbits.Mask
}

var pathComponents = []string{"usr", "bin", "etc", "lib", "home", "var", "tmp", "proc"}

// randomRuleSpecs generates n syntactically valid glob rules built from
// a small vocabulary of path components and wildcard constructs, so
// Translate never rejects them. Their perms never carry exec-type bits,
// so overlapping rules cannot raise dfaconst.ErrInconsistentExec.
func randomRuleSpecs(rng *rand.Rand, n int) []ruleSpec {
	specs := make([]ruleSpec, 0, n)
	for i := 0; i < n; i++ {
		var buf bytes.Buffer
		depth := 1 + rng.Intn(3)
		for d := 0; d < depth; d++ {
			buf.WriteByte('/')
			buf.WriteString(pathComponents[rng.Intn(len(pathComponents))])
		}
		switch rng.Intn(5) {
		case 0:
			buf.WriteString("/*")
		case 1:
			buf.WriteString("/**")
		case 2:
			buf.WriteByte('/')
			buf.WriteByte('?')
		case 3:
			buf.WriteString("/[ab]")
		}

		specs = append(specs, ruleSpec{
			pattern: append([]byte(nil), buf.Bytes()...),
			deny:    rng.Intn(4) == 0,
			perms:   permbits.Mask(1+rng.Intn(127)) &^ permbits.ExecTypeBits,
			audit:   permbits.Mask(rng.Intn(128)),
		})
	}
	return specs
}

// buildFrom compiles specs into a fresh Ruleset, failing the test if
// AddRule rejects any pattern (randomRuleSpecs never produces one).
func buildFrom(t *testing.T, specs []ruleSpec, flags Flags) *Compiled {
	t.Helper()
	rs := New()
	for _, s := range specs {
		if err := rs.AddRule(s.pattern, s.deny, s.perms, s.audit); err != nil {
			t.Fatalf("AddRule(%q) error: %v", s.pattern, err)
		}
	}
	compiled, err := rs.CreateDFA(flags)
	if err != nil {
		t.Fatalf("CreateDFA error: %v", err)
	}
	return compiled
}

// runDFA walks dfa from its start state over s and returns the accept
// mask of the state reached at the end of input — the same evaluation
// an anchored full-path match performs.
func runDFA(dfa *dfaconst.DFA, s []byte) dfaconst.AcceptMask {
	cur := dfa.Start
	for _, b := range s {
		st := dfa.State(cur)
		if target, ok := st.Cases.Map[b]; ok {
			cur = target
		} else {
			cur = st.Cases.Default
		}
	}
	return dfa.State(cur).Accept
}

// sampleStrings returns a mix of fixed, boundary-ish and purely random
// byte strings drawn from rng, used to probe language equality.
func sampleStrings(rng *rand.Rand, n int) [][]byte {
	fixed := [][]byte{
		[]byte("/usr/bin/x"),
		[]byte("/etc/a"),
		[]byte("/home/tmp/b"),
		[]byte("/"),
		[]byte(""),
	}
	out := append([][]byte(nil), fixed...)
	for len(out) < n {
		var buf bytes.Buffer
		depth := rng.Intn(4)
		for d := 0; d < depth; d++ {
			buf.WriteByte('/')
			buf.WriteString(pathComponents[rng.Intn(len(pathComponents))])
			if rng.Intn(3) == 0 {
				buf.WriteByte(byte('a' + rng.Intn(26)))
			}
		}
		out = append(out, buf.Bytes())
	}
	return out
}

// TestCreateDFADeterministicAcrossRepeatedCompiles seeds a random rule
// set, compiles it twice from independent Rulesets, and asserts the
// resulting DFAs are bit-identical (same serialized blob) and agree on
// sampled byte strings — spec.md §8's "two runs over the same input
// produce DFAs whose state labels and edge enumeration are bit-identical".
func TestCreateDFADeterministicAcrossRepeatedCompiles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	specs := randomRuleSpecs(rng, 40)

	first := buildFrom(t, specs, 0)
	second := buildFrom(t, specs, 0)

	firstBlob, err := first.Blob()
	if err != nil {
		t.Fatalf("first.Blob() error: %v", err)
	}
	secondBlob, err := second.Blob()
	if err != nil {
		t.Fatalf("second.Blob() error: %v", err)
	}
	if !bytes.Equal(firstBlob, secondBlob) {
		t.Fatal("repeated compiles of the same rule set produced different serialized blobs")
	}

	for _, s := range sampleStrings(rng, 100) {
		a := runDFA(first.DFA, s)
		b := runDFA(second.DFA, s)
		if a != b {
			t.Fatalf("accept mask for %q diverged across repeated compiles: %+v vs %+v", s, a, b)
		}
	}
}

// TestMinimizeFlagsPreserveLanguage seeds a random rule set and compiles
// it once per ControlMinimizeHashPerms/ControlMinimizeHashTrans
// combination, asserting every combination accepts the same sampled
// byte strings with the same permission/audit mask: these flags only
// change the initial-partition granularity minimize.Minimize starts
// from, never the language the resulting DFA recognizes.
func TestMinimizeFlagsPreserveLanguage(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	specs := randomRuleSpecs(rng, 40)
	samples := sampleStrings(rng, 100)

	flagCombos := []Flags{
		0,
		ControlMinimizeHashPerms,
		ControlMinimizeHashTrans,
		ControlMinimizeHashPerms | ControlMinimizeHashTrans,
	}

	var baseline *Compiled
	for _, flags := range flagCombos {
		compiled := buildFrom(t, specs, flags)
		if baseline == nil {
			baseline = compiled
			continue
		}
		for _, s := range samples {
			want := runDFA(baseline.DFA, s)
			got := runDFA(compiled.DFA, s)
			if got != want {
				t.Fatalf("flags=%d: accept mask for %q = %+v, want %+v (baseline flags=0)", flags, s, got, want)
			}
		}
	}
}
