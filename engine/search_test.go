package engine

import (
	"testing"

	"github.com/benjamacias/chess-bot/board"
)

func searchFEN(t *testing.T, fen string, depth int) Info {
	t.Helper()
	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	var eng = NewEngine()
	eng.Hash.Value = 16
	return eng.Search(SearchParams{
		Position: &pos,
		Limits:   Limits{Depth: depth},
	})
}

func TestMateInOne(t *testing.T) {
	// Back-rank mate: Re8#.
	var result = searchFEN(t, "6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1", 4)
	if len(result.PV) == 0 {
		t.Fatal("no move found")
	}
	if got := result.PV[0].String(); got != "e1e8" {
		t.Errorf("best move = %v, want e1e8", got)
	}
	if mate, ok := ScoreToMate(result.Score); !ok || mate != 1 {
		t.Errorf("score = %v, want mate in 1", result.Score)
	}
}

func TestMateInTwo(t *testing.T) {
	// Rook ladder: 1.Ra7 followed by 2.Rb8#.
	var result = searchFEN(t, "6k1/8/8/8/8/8/R7/1R4K1 w - - 0 1", 6)
	if mate, ok := ScoreToMate(result.Score); !ok || mate < 1 || mate > 3 {
		t.Errorf("score = %v, want a short forced mate", result.Score)
	}
}

func TestNoLegalMovesReturnsEmptyInfo(t *testing.T) {
	// Stalemate: black to move, no legal moves, not in check.
	var result = searchFEN(t, "k7/2Q5/8/8/8/8/8/7K b - - 0 1", 4)
	if len(result.PV) != 0 || result.Depth != 0 {
		t.Errorf("expected empty result for stalemate, got %+v", result)
	}
}

func TestSearchAvoidsHangingQueen(t *testing.T) {
	// White's queen is attacked by the pawn on c6; any sane depth-4 search
	// moves it or wins material, never leaves it en prise to a pawn.
	var result = searchFEN(t, "rnbqkbnr/pp1ppppp/2p5/3Q4/8/8/PPPP1PPP/RNB1KBNR w KQkq - 0 1", 4)
	if len(result.PV) == 0 {
		t.Fatal("no move found")
	}
	if result.Score < -200 {
		t.Errorf("score = %d, search failed to save the queen", result.Score)
	}
}

func TestProgressReportsEveryDepth(t *testing.T) {
	var pos = board.NewInitialPosition()
	var eng = NewEngine()
	eng.Hash.Value = 16
	var depths []int
	eng.Search(SearchParams{
		Position: &pos,
		Limits:   Limits{Depth: 4},
		Progress: func(si Info) {
			depths = append(depths, si.Depth)
		},
	})
	if len(depths) != 4 {
		t.Fatalf("got %d progress reports, want 4", len(depths))
	}
	for i, d := range depths {
		if d != i+1 {
			t.Errorf("report %d has depth %d", i, d)
		}
	}
}

func TestTTMateScoreNormalization(t *testing.T) {
	var tt = NewTranspositionTable(1)
	var key = uint64(0xdeadbeef)

	// A mate found 3 plies into the search, stored from ply 3, must probe
	// back to the same root-relative score at ply 3 and shift at other
	// plies.
	var score = Mate - 5
	tt.Store(key, 8, BoundExact, score, board.MoveNone, 3)
	var entry, ok = tt.Probe(key, 3)
	if !ok {
		t.Fatal("probe miss")
	}
	if entry.score != score {
		t.Errorf("round-trip at same ply: got %d, want %d", entry.score, score)
	}
	entry, ok = tt.Probe(key, 5)
	if !ok {
		t.Fatal("probe miss")
	}
	if entry.score != score-2 {
		t.Errorf("probe at deeper ply: got %d, want %d", entry.score, score-2)
	}
}

func TestComputeThinkTime(t *testing.T) {
	var tests = []struct {
		name   string
		limits Limits
		white  bool
		wantMs int64
	}{
		{"movetime verbatim", Limits{MoveTime: 5000}, true, 5000},
		{"no clock default", Limits{}, true, 200},
		{"depth limited runs undeadlined", Limits{Depth: 5}, true, 0},
		{"derived from clock", Limits{WhiteTime: 28000}, true, 1000},
		{"clamped low", Limits{WhiteTime: 280}, true, 30},
		{"clamped high", Limits{WhiteTime: 600000, WhiteInc: 10000}, true, 1200},
		{"black side clock", Limits{WhiteTime: 600000, BlackTime: 2800}, false, 100},
	}
	for _, tt := range tests {
		var got = ComputeThinkTime(tt.limits, tt.white).Milliseconds()
		if got != tt.wantMs {
			t.Errorf("%v: got %dms, want %dms", tt.name, got, tt.wantMs)
		}
	}
}
