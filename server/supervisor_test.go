package server

import (
	"testing"
	"time"
)

func TestParseInfoLine(t *testing.T) {
	var tests = []struct {
		line  string
		depth int
		score *Score
		pv    string
		ok    bool
	}{
		{
			line:  "info depth 7 score cp 35 nodes 12345 time 180 nps 68583 pv e2e4 e7e5 g1f3",
			depth: 7,
			score: &Score{Type: "cp", Value: 35},
			pv:    "e2e4 e7e5 g1f3",
			ok:    true,
		},
		{
			line:  "info depth 12 score mate 3 nodes 99 time 5 nps 1 pv f7f8q",
			depth: 12,
			score: &Score{Type: "mate", Value: 3},
			pv:    "f7f8q",
			ok:    true,
		},
		{line: "info string bookhit move=e2e4", ok: false},
		{line: "bestmove e2e4", ok: false},
		{line: "info depth 3", depth: 3, ok: true},
	}
	for _, tt := range tests {
		var depth, score, pv, ok = parseInfoLine(tt.line)
		if ok != tt.ok {
			t.Errorf("%q: ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if depth != tt.depth || pv != tt.pv {
			t.Errorf("%q: got depth=%d pv=%q", tt.line, depth, pv)
		}
		if (score == nil) != (tt.score == nil) {
			t.Errorf("%q: score presence mismatch", tt.line)
		} else if score != nil && *score != *tt.score {
			t.Errorf("%q: score = %+v, want %+v", tt.line, *score, *tt.score)
		}
	}
}

func TestParseMultiPVLine(t *testing.T) {
	var index, entry, ok = parseMultiPVLine(
		"info depth 10 seldepth 14 multipv 2 score cp -18 nodes 5 pv e7e5 g1f3 b8c6")
	if !ok || index != 2 {
		t.Fatalf("ok=%v index=%d", ok, index)
	}
	if entry.UCI != "e7e5" || entry.ScoreCp != -18 || len(entry.PVMoves) != 3 {
		t.Errorf("entry = %+v", entry)
	}

	index, entry, ok = parseMultiPVLine("info depth 20 multipv 1 score mate 4 pv h5f7")
	if !ok || index != 1 {
		t.Fatalf("mate line: ok=%v index=%d", ok, index)
	}
	if entry.ScoreCp != 99996 {
		t.Errorf("mate projection = %d, want 99996", entry.ScoreCp)
	}

	index, entry, ok = parseMultiPVLine("info depth 20 multipv 1 score mate -2 pv a1a2")
	if !ok || entry.ScoreCp != -99998 {
		t.Errorf("negative mate projection = %d, want -99998", entry.ScoreCp)
	}

	if _, _, ok = parseMultiPVLine("info depth 10 score cp 30 pv e2e4"); ok {
		t.Error("line without multipv token should not parse")
	}
}

func TestResolveMoveOptions(t *testing.T) {
	var opts = resolveMoveOptions("blitz", 0, 0, 0)
	if opts.MovetimeMs != 100 || opts.HashMB != 32 || opts.Depth != 0 {
		t.Errorf("blitz preset = %+v", opts)
	}

	opts = resolveMoveOptions("strong", 0, 0, 0)
	if opts.Depth != 6 || opts.MovetimeMs != 1000 || opts.HashMB != 128 {
		t.Errorf("strong preset = %+v", opts)
	}

	opts = resolveMoveOptions("", 250, 0, 0)
	if opts.MovetimeMs != 250 || opts.HashMB != 64 {
		t.Errorf("default preset with movetime override = %+v", opts)
	}

	opts = resolveMoveOptions("blitz", 0, 8, 256)
	if opts.Depth != 8 || opts.HashMB != 256 || opts.MovetimeMs != 100 {
		t.Errorf("overrides = %+v", opts)
	}
}

func TestClampHintParameters(t *testing.T) {
	if got := ClampMultiPV(0); got != 3 {
		t.Errorf("default multipv = %d", got)
	}
	if got := ClampMultiPV(99); got != 8 {
		t.Errorf("multipv high clamp = %d", got)
	}
	if got := ClampHintMovetime(0); got != 120 {
		t.Errorf("default hint movetime = %d", got)
	}
	if got := ClampHintMovetime(10); got != 50 {
		t.Errorf("hint movetime low clamp = %d", got)
	}
	if got := ClampHintMovetime(9999); got != 2000 {
		t.Errorf("hint movetime high clamp = %d", got)
	}
}

func TestWaitTimeout(t *testing.T) {
	if got := waitTimeout(200); got != 5*time.Second {
		t.Errorf("short movetime: %v", got)
	}
	if got := waitTimeout(3000); got != 7*time.Second {
		t.Errorf("long movetime: %v", got)
	}
}

func TestStateMapLifecycle(t *testing.T) {
	var states = newStateMap()
	states.register("r1")
	states.setInfo("r1", 5, &Score{Type: "cp", Value: 12}, "e2e4 e7e5")
	states.setBookHit("r1")

	var st, ok = states.get("r1")
	if !ok || !st.Active || st.Depth != 5 || !st.BookHit {
		t.Fatalf("mid-search state = %+v", st)
	}

	states.finalize("r1", "e2e4")
	st, ok = states.get("r1")
	if !ok || st.Active || st.BestMove != "e2e4" || st.FinishedAt.IsZero() {
		t.Fatalf("finalized state = %+v", st)
	}

	states.register("r2")
	states.setError("r2", "ENGINE_TIMEOUT")
	st, ok = states.get("r2")
	if !ok || st.Active || st.ErrCode != "ENGINE_TIMEOUT" {
		t.Fatalf("errored state = %+v", st)
	}
}

func TestStateMapEvictsOldFinalizedEntries(t *testing.T) {
	var states = newStateMap()
	states.register("old")
	states.finalize("old", "e2e4")
	states.mu.Lock()
	states.m["old"].FinishedAt = time.Now().Add(-2 * evictAfter)
	states.mu.Unlock()

	if _, ok := states.get("old"); ok {
		t.Error("entry older than the retention window survived eviction")
	}
}
