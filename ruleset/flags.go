package ruleset

// Flags is the bitfield CreateDFA accepts, mirroring the eight
// independent diagnostic/control flags in spec.md §6. Every bit is
// independent: any combination is valid, and none of the DUMP_* bits
// change compiled output — only the CONTROL_MINIMIZE_* bits do, by
// selecting minimize's initial-partition granularity.
type Flags uint32

const (
	// DumpProgress emits a progress line as CreateDFA enters subset
	// construction, minimization and alphabet compression.
	DumpProgress Flags = 1 << iota
	// DumpStats emits final statistics: the minimized state count, the
	// fast-path literal count and the distinct permission-set count.
	DumpStats
	// DumpNodeToDFA emits the number of states subset construction
	// produced. The individual position-set → state mapping is not
	// emitted.
	DumpNodeToDFA
	// DumpUnreachable emits how many states the reachability prune
	// removes before minimization. The pruned states themselves are not
	// listed.
	DumpUnreachable
	// DumpEquivStats reports the alphabet-class count after
	// compression.
	DumpEquivStats
	// DumpRuleExpr prints each rule's translated internal-alphabet
	// regex.
	DumpRuleExpr
	// ControlMinimizeHashPerms splits minimize's initial partition by
	// (perms, audit) before refinement.
	ControlMinimizeHashPerms
	// ControlMinimizeHashTrans further splits the initial partition by
	// transition fingerprint.
	ControlMinimizeHashTrans
)
