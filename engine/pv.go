package engine

import "github.com/benjamacias/chess-bot/board"

const maxPVLength = 32

// principalVariation walks the transposition table's best-move chain from
// pos, replaying moves on a private copy so the caller's position is left
// untouched.
func principalVariation(pos *board.Position, tt *TranspositionTable) []board.Move {
	var walk = *pos
	walk.History = append([]uint64(nil), pos.History...)

	var pv []board.Move
	var seen = make(map[uint64]bool)
	var undo board.Undo
	for i := 0; i < maxPVLength; i++ {
		if seen[walk.Key] {
			break
		}
		seen[walk.Key] = true

		var entry, ok = tt.Probe(walk.Key, 0)
		if !ok || entry.best == board.MoveNone {
			break
		}
		var legal = false
		for _, m := range board.GenerateLegalMoves(&walk) {
			if m == entry.best {
				legal = true
				break
			}
		}
		if !legal {
			break
		}
		pv = append(pv, entry.best)
		walk.MakeMove(entry.best, &undo)
	}
	return pv
}
