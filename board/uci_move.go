package board

import "strings"

// FindLegalMove looks up the legal move matching lan (UCI long algebraic
// notation, e.g. "e2e4" or "e7e8q"), returning ok=false if none matches.
// A four-character lan that only matches promotion moves defaults to the
// queen promotion.
func (pos *Position) FindLegalMove(lan string) (Move, bool) {
	var moves = GenerateLegalMoves(pos)
	for _, m := range moves {
		if strings.EqualFold(m.String(), lan) {
			return m, true
		}
	}
	if len(lan) == 4 {
		for _, m := range moves {
			if strings.EqualFold(m.String(), lan+"q") {
				return m, true
			}
		}
	}
	return MoveNone, false
}

// PlayUCIMove looks up and permanently applies the legal move matching lan,
// appending to pos's history. It reports false without mutating pos if lan
// does not name a legal move.
func (pos *Position) PlayUCIMove(lan string) bool {
	var m, ok = pos.FindLegalMove(lan)
	if !ok {
		return false
	}
	var undo Undo
	pos.MakeMove(m, &undo)
	return true
}
