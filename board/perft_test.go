package board

import "testing"

// https://www.chessprogramming.org/Perft_Results
func TestPerftStartPos(t *testing.T) {
	var tests = []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}
	for _, tt := range tests {
		var pos = NewInitialPosition()
		var got = Perft(&pos, tt.depth)
		if got != tt.nodes {
			t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	var pos, err = NewPositionFromFEN(
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var got = Perft(&pos, 3)
	var want uint64 = 97862
	if got != want {
		t.Errorf("perft(3) = %d, want %d", got, want)
	}
}

func TestPerftEnPassantPosition(t *testing.T) {
	var pos, err = NewPositionFromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var got = Perft(&pos, 4)
	var want uint64 = 43238
	if got != want {
		t.Errorf("perft(4) = %d, want %d", got, want)
	}
}
