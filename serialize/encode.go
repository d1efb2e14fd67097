// Package serialize writes a minimized, alphabet-compressed DFA into
// the fixed binary layout spec.md §6 describes for the kernel-facing
// blob. It only produces bytes; the out-of-scope kernel-side consumer
// that interprets them is external to this module.
package serialize

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/coregx/maccomp/alphabet"
	"github.com/coregx/maccomp/dfaconst"
	"github.com/coregx/maccomp/internal/conv"
)

// deletedState is the sentinel int32 label for a removed state
// (spec.md §6). This encoder never emits it: Prune and merge in the
// minimize package always compact dfa.States so no gaps exist between
// id 0 and len(dfa.States)-1.
const deletedState int32 = -1

// Encode writes dfa, compressed through classes, to the layout:
// a 256-byte byte→class table, then one record per state in id order
// — (accept_mask uint32, audit_mask uint32, default_target int32,
// count uint16, [class_id byte, target int32]×count) — all fields
// little-endian. audit_mask folds Quiet into Audit by clearing the
// bits Quiet marks (spec.md §4.5's "audit-control should be
// suppressed" for those bits), since the exact multi-field packing
// the original encodes into a single audit_ctl word isn't recoverable
// from the available source and the blob contract only names one
// audit field.
func Encode(dfa *dfaconst.DFA, classes alphabet.Classes) ([]byte, error) {
	var buf bytes.Buffer

	var classTable [256]byte
	for b := 0; b < 256; b++ {
		classTable[b] = classes.Get(byte(b))
	}
	buf.Write(classTable[:])

	for _, st := range dfa.States {
		if err := binary.Write(&buf, binary.LittleEndian, st.Accept.Perms); err != nil {
			return nil, err
		}
		auditMask := st.Accept.Audit &^ st.Accept.Quiet
		if err := binary.Write(&buf, binary.LittleEndian, auditMask); err != nil {
			return nil, err
		}
		defaultTarget := conv.Uint32ToInt32(uint32(st.Cases.Default))
		if err := binary.Write(&buf, binary.LittleEndian, defaultTarget); err != nil {
			return nil, err
		}

		// Collapse per-byte transitions to per-class: alphabet.Compute
		// guarantees bytes sharing a class also share a target in
		// every state, so deduping by class id is lossless.
		byClass := make(map[byte]dfaconst.StateID, len(st.Cases.Map))
		for b, target := range st.Cases.Map {
			byClass[classes.Get(b)] = target
		}
		classIDs := make([]byte, 0, len(byClass))
		for c := range byClass {
			classIDs = append(classIDs, c)
		}
		sort.Slice(classIDs, func(i, j int) bool { return classIDs[i] < classIDs[j] })

		count := conv.IntToUint16(len(classIDs))
		if err := binary.Write(&buf, binary.LittleEndian, count); err != nil {
			return nil, err
		}
		for _, c := range classIDs {
			buf.WriteByte(c)
			target := conv.Uint32ToInt32(uint32(byClass[c]))
			if err := binary.Write(&buf, binary.LittleEndian, target); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}
