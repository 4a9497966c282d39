package shell

import (
	"github.com/benjamacias/chess-bot/board"
	"github.com/benjamacias/chess-bot/book"
)

const maxBookPlies = 12

// bookMove consults the opening book and applies the tactical safety gate:
// the book is only trusted early in the game, never while in check, never
// when any capture or promotion is available, and never for an early queen
// sally. The returned move is always legal for pos.
func bookMove(pos *board.Position, history []string, bk book.Book) (board.Move, bool) {
	if bk == nil || len(history) > maxBookPlies {
		return board.MoveNone, false
	}
	if pos.IsCheck() {
		return board.MoveNone, false
	}
	var legal = board.GenerateLegalMoves(pos)
	var legalUCI = make([]string, 0, len(legal))
	for _, m := range legal {
		if board.IsCaptureOrPromotion(pos, m) {
			return board.MoveNone, false
		}
		legalUCI = append(legalUCI, m.String())
	}
	var uci, ok = bk.Pick(history, legalUCI)
	if !ok {
		return board.MoveNone, false
	}
	var m, found = pos.FindLegalMove(uci)
	if !found || isEarlyQueenSally(pos, m) {
		return board.MoveNone, false
	}
	return m, true
}

// isEarlyQueenSally reports whether m develops the queen off its home
// square while the opening is still young.
func isEarlyQueenSally(pos *board.Position, m board.Move) bool {
	if pos.FullmoveNumber > 8 {
		return false
	}
	if pos.Squares[m.From()].Kind() != board.Queen {
		return false
	}
	return m.From() == board.SquareD1 || m.From() == board.SquareD8
}
