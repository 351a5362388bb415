package engine

import "github.com/corvidchess/corvid/internal/board"

// Bound indicates what kind of score a TranspositionTable entry stores.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

// ttEntry is one slot of the transposition table.
type ttEntry struct {
	key   uint64
	score int
	depth int
	bound Bound
	best  board.Move
	valid bool
}

// TranspositionTable is a fixed-capacity, hash-indexed cache of
// previously searched positions. Entries are addressed directly by
// key modulo table size — a single slot per bucket, no collision
// chaining, replaced whenever the slot is empty, the key differs, or
// the incoming depth is at least as deep as what's stored.
type TranspositionTable struct {
	entries []ttEntry
}

// NewTranspositionTable builds a table sized to fit within sizeMB
// megabytes, rounded down to the nearest power of two entry count.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 40 // approximate ttEntry footprint in bytes
	numEntries := uint64(sizeMB) * 1024 * 1024 / entrySize
	if numEntries == 0 {
		numEntries = 1
	}
	numEntries = roundDownPow2(numEntries)
	return &TranspositionTable{entries: make([]ttEntry, numEntries)}
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	p := uint64(1)
	for p*2 <= n {
		p *= 2
	}
	return p
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key & uint64(len(tt.entries)-1)
}

// Store records a search result, replacing the current occupant of the
// slot when it is empty, holds a different key, or was searched to a
// depth no deeper than depth.
func (tt *TranspositionTable) Store(key uint64, score, depth int, bound Bound, best board.Move) {
	idx := tt.index(key)
	e := &tt.entries[idx]
	if e.valid && e.key == key && e.depth > depth {
		return
	}
	e.key = key
	e.score = score
	e.depth = depth
	e.bound = bound
	e.best = best
	e.valid = true
}

// Probe returns the entry at key's bucket and whether it matches key.
// Callers must still check the returned entry's depth against the
// depth they need before trusting its score.
func (tt *TranspositionTable) Probe(key uint64) (score, depth int, bound Bound, best board.Move, ok bool) {
	e := &tt.entries[tt.index(key)]
	if !e.valid || e.key != key {
		return 0, 0, 0, board.Invalid, false
	}
	return e.score, e.depth, e.bound, e.best, true
}

// Clear zeroes every slot.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

// Resize rebuilds the table at a new megabyte budget, discarding all
// entries.
func (tt *TranspositionTable) Resize(sizeMB int) {
	*tt = *NewTranspositionTable(sizeMB)
}
