package shell

import (
	"testing"

	"github.com/benjamacias/chess-bot/board"
	"github.com/benjamacias/chess-bot/book"
)

// stubBook always offers the same move, letting the tests probe the safety
// gate independently of the real repertoire tables.
type stubBook struct {
	move string
}

func (b stubBook) Pick(history, legalUCI []string) (string, bool) {
	return b.move, true
}

func positionAfter(t *testing.T, moves ...string) (board.Position, []string) {
	t.Helper()
	var pos = board.NewInitialPosition()
	for _, m := range moves {
		if !pos.PlayUCIMove(m) {
			t.Fatalf("illegal setup move %q", m)
		}
	}
	return pos, moves
}

func TestBookMoveFromStartingPosition(t *testing.T) {
	var pos = board.NewInitialPosition()
	var m, ok = bookMove(&pos, nil, book.Deterministic{})
	if !ok {
		t.Fatal("no book move from the starting position")
	}
	if m.String() != "e2e4" {
		t.Errorf("book move = %v, want e2e4", m)
	}
}

func TestBookMoveFollowsHistory(t *testing.T) {
	var pos, history = positionAfter(t, "e2e4", "e7e5", "g1f3")
	var m, ok = bookMove(&pos, history, book.Deterministic{})
	if !ok || m.String() != "b8c6" {
		t.Errorf("book move = %v ok=%v, want b8c6", m, ok)
	}
}

func TestBookRefusedWhileInCheck(t *testing.T) {
	var pos, err = board.NewPositionFromFEN("4k3/8/8/8/8/8/4R3/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := bookMove(&pos, nil, stubBook{move: "e8d8"}); ok {
		t.Error("book consulted while in check")
	}
}

func TestBookRefusedWhenCaptureAvailable(t *testing.T) {
	// After 1.e4 d5 White can take on d5, so the book must stand aside and
	// let the search decide.
	var pos, history = positionAfter(t, "e2e4", "d7d5")
	if _, ok := bookMove(&pos, history, book.Weighted{}); ok {
		t.Error("book played into a position with a capture available")
	}
}

func TestBookRefusesEarlyQueenSally(t *testing.T) {
	var pos, history = positionAfter(t, "e2e4", "e7e5")
	if _, ok := bookMove(&pos, history, stubBook{move: "d1h5"}); ok {
		t.Error("early queen sortie passed the gate")
	}
}

func TestBookAcceptsQuietDevelopingMove(t *testing.T) {
	var pos, history = positionAfter(t, "e2e4", "e7e5")
	var m, ok = bookMove(&pos, history, stubBook{move: "g1f3"})
	if !ok || m.String() != "g1f3" {
		t.Errorf("quiet developing move rejected: %v ok=%v", m, ok)
	}
}

func TestBookExpiresAfterOpeningPhase(t *testing.T) {
	var pos = board.NewInitialPosition()
	var history = make([]string, maxBookPlies+1)
	if _, ok := bookMove(&pos, history, stubBook{move: "e2e4"}); ok {
		t.Error("book consulted past the opening phase")
	}
}

func TestNilBookIsIgnored(t *testing.T) {
	var pos = board.NewInitialPosition()
	if _, ok := bookMove(&pos, nil, nil); ok {
		t.Error("nil book produced a move")
	}
}
