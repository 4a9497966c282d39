package engine

import (
	"unsafe"

	"github.com/benjamacias/chess-bot/board"
)

// Bound classifies how a stored score relates to the window it was found
// under.
type Bound int8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// ttEntry is one direct-mapped transposition-table slot.
type ttEntry struct {
	key   uint64
	depth int
	bound Bound
	score int
	best  board.Move
}

// TranspositionTable is a direct-mapped cache keyed by the low bits of the
// Zobrist key. Collisions silently overwrite; the search stays correct,
// the worst case is a missed cutoff.
type TranspositionTable struct {
	entries   []ttEntry
	megabytes int
}

const bytesPerEntry = int(unsafe.Sizeof(ttEntry{}))

// NewTranspositionTable sizes the table to the largest power-of-two entry
// count that fits in megabytes MB.
func NewTranspositionTable(megabytes int) *TranspositionTable {
	if megabytes < 1 {
		megabytes = 1
	}
	var count = (megabytes * 1024 * 1024) / bytesPerEntry
	var size = 1
	for size*2 <= count {
		size *= 2
	}
	if size < 1024 {
		size = 1024
	}
	return &TranspositionTable{
		entries:   make([]ttEntry, size),
		megabytes: megabytes,
	}
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key & uint64(len(tt.entries)-1)
}

// Probe reports the entry stored for key, if any, with its score already
// un-normalized for mate distance relative to ply.
func (tt *TranspositionTable) Probe(key uint64, ply int) (ttEntry, bool) {
	var e = tt.entries[tt.index(key)]
	if e.bound == BoundNone || e.key != key {
		return ttEntry{}, false
	}
	e.score = scoreFromTT(e.score, ply)
	return e, true
}

// Store writes a search result into the table, normalizing mate scores to
// be independent of the storing ply.
func (tt *TranspositionTable) Store(key uint64, depth int, bound Bound, score int, best board.Move, ply int) {
	tt.entries[tt.index(key)] = ttEntry{
		key:   key,
		depth: depth,
		bound: bound,
		score: scoreToTT(score, ply),
		best:  best,
	}
}

// Clear discards all stored entries.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

func scoreToTT(score, ply int) int {
	if score >= mateThreshold {
		return score + ply
	}
	if score <= -mateThreshold {
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	if score >= mateThreshold {
		return score - ply
	}
	if score <= -mateThreshold {
		return score + ply
	}
	return score
}
