package shell

import (
	"fmt"
	"time"

	"github.com/benjamacias/chess-bot/board"
)

// RunPerft counts leaf nodes to the given depth from fen and prints the
// total with timing.
func RunPerft(fen string, depth int) error {
	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}
	var start = time.Now()
	var nodes = board.Perft(&pos, depth)
	var elapsed = time.Since(start)
	fmt.Printf("perft %v nodes %v time %v\n", depth, nodes, elapsed)
	return nil
}

// RunDivide prints each root move's perft contribution and the total.
func RunDivide(fen string, depth int) error {
	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		return fmt.Errorf("divide: %w", err)
	}
	var total uint64
	for _, entry := range board.Divide(&pos, depth) {
		fmt.Printf("%v: %v\n", entry.Move, entry.Nodes)
		total += entry.Nodes
	}
	fmt.Printf("Nodes: %v\n", total)
	return nil
}
