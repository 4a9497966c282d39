package eval

import (
	"testing"

	"github.com/benjamacias/chess-bot/board"
)

func TestEvaluateStartPosIsSymmetricZero(t *testing.T) {
	var pos = board.NewInitialPosition()
	if got := Evaluate(&pos); got != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0", got)
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	var pos, err = board.NewPositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := Evaluate(&pos); got <= 0 {
		t.Errorf("Evaluate(extra queen) = %d, want > 0", got)
	}
}

func TestBishopPairBonusApplied(t *testing.T) {
	var withPair, err = board.NewPositionFromFEN("4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var withOne, err2 = board.NewPositionFromFEN("4k3/8/8/8/8/8/8/3BK3 w - - 0 1")
	if err2 != nil {
		t.Fatal(err2)
	}
	var pairScore = Evaluate(&withPair)
	var oneScore = Evaluate(&withOne)
	if pairScore-oneScore <= BishopValue {
		t.Errorf("bishop pair bonus not reflected: pair=%d one=%d", pairScore, oneScore)
	}
}

func TestDoubledPawnsPenalized(t *testing.T) {
	var doubled, err = board.NewPositionFromFEN("4k3/8/8/8/8/4P3/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var spread, err2 = board.NewPositionFromFEN("4k3/8/8/8/8/3P4/4P3/4K3 w - - 0 1")
	if err2 != nil {
		t.Fatal(err2)
	}
	if Evaluate(&doubled) >= Evaluate(&spread) {
		t.Errorf("doubled pawns should score lower than spread pawns")
	}
}
