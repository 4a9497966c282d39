package book

import "testing"

func TestDeterministicAlwaysFirstCandidate(t *testing.T) {
	var d Deterministic
	var move, ok = d.Pick(nil, []string{"e2e4", "d2d4", "g1f3"})
	if !ok || move != "e2e4" {
		t.Fatalf("Pick() = %q, %v; want e2e4, true", move, ok)
	}
}

func TestDeterministicFailsWhenBookMoveIsIllegal(t *testing.T) {
	var d Deterministic
	var _, ok = d.Pick(nil, []string{"d2d4"})
	if ok {
		t.Fatalf("expected no book move when e2e4 is not legal")
	}
}

func TestDeterministicFollowsCatalogedLine(t *testing.T) {
	var d Deterministic
	var move, ok = d.Pick([]string{"e2e4"}, []string{"e7e5", "c7c5", "e7e6"})
	if !ok || move != "e7e5" {
		t.Fatalf("Pick() = %q, %v; want e7e5, true", move, ok)
	}
}

func TestWeightedPicksAmongLegalCandidates(t *testing.T) {
	var w Weighted
	var legal = []string{"c7c5", "e7e5", "c7c6", "e7e6", "g7g6"}
	for i := 0; i < 50; i++ {
		var move, ok = w.Pick([]string{"e2e4"}, legal)
		if !ok {
			t.Fatal("expected a book move for 1.e4 replies")
		}
		if !contains(legal, move) {
			t.Fatalf("Pick() returned %q, not among legal replies", move)
		}
	}
}

func TestWeightedReturnsFalseWithNoCatalogedEntry(t *testing.T) {
	var w Weighted
	var _, ok = w.Pick([]string{"a2a3", "a7a6", "b2b3"}, []string{"b7b6"})
	if ok {
		t.Fatalf("expected no book entry for an uncatalogued line")
	}
}

func TestWeightedPrefixFallback(t *testing.T) {
	var w Weighted
	// "e2e4 c7c5 g1f3 d7d6 d2d4" has no table entry, but stripping back two
	// plies lands on "e2e4 c7c5 g1f3", which does.
	var history = []string{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4"}
	var legal = []string{"b8c6", "e7e6"}
	var move, ok = w.Pick(history, legal)
	if !ok {
		t.Fatal("expected prefix fallback to find a candidate")
	}
	if !contains(legal, move) {
		t.Fatalf("Pick() returned %q, not among legal replies", move)
	}
}

func TestPrincipleBonusPenalizesEarlyQueenMove(t *testing.T) {
	var noQueen = principleBonus("e2e4", true, 0)
	var queen = principleBonus("d1h5", true, 2)
	if queen >= noQueen {
		t.Errorf("early queen sortie should score lower: queen=%d noQueen=%d", queen, noQueen)
	}
	if late := principleBonus("d1h5", true, 8); late < 0 {
		t.Errorf("queen penalty applied past the seventh ply: %d", late)
	}
}

func TestPrincipleBonusPenalizesEarlyRookPawnAdvance(t *testing.T) {
	for _, move := range []string{"a2a4", "h2h3"} {
		if got := principleBonus(move, true, 0); got >= 0 {
			t.Errorf("principleBonus(%q, ply 0) = %d, want negative", move, got)
		}
	}
	if got := principleBonus("a7a6", false, 1); got >= 0 {
		t.Errorf("black rook-pawn advance at ply 1 scored %d, want negative", got)
	}
	if got := principleBonus("a2a4", true, 4); got < 0 {
		t.Errorf("rook-pawn penalty applied past the fourth ply: %d", got)
	}
}

func TestPrincipleBonusExpiresAfterTenPlies(t *testing.T) {
	if got := principleBonus("e2e4", true, 10); got != 0 {
		t.Errorf("development bonus at ply 10 = %d, want 0", got)
	}
	if got := principleBonus("e2e4", true, 9); got <= 0 {
		t.Errorf("development bonus at ply 9 = %d, want positive", got)
	}
}
