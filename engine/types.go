// Package engine implements the search: a direct-mapped transposition
// table, negamax alpha-beta with iterative deepening, aspiration windows,
// quiescence, killer/history move ordering, and time management.
package engine

import "github.com/benjamacias/chess-bot/board"

const (
	Mate          = 30000
	Infinity      = Mate + 1
	MaxPly        = 64
	mateThreshold = Mate - 1000
)

// IntOption is a UCI spin option backed by an int field.
type IntOption struct {
	name            string
	Value, Min, Max int
}

func (o *IntOption) Name() string { return o.name }

// BoolOption is a UCI check option backed by a bool field.
type BoolOption struct {
	name  string
	Value bool
}

func (o *BoolOption) Name() string { return o.name }

// Limits mirrors the fields a UCI "go" command can carry.
type Limits struct {
	Depth     int
	MoveTime  int
	WhiteTime int
	BlackTime int
	WhiteInc  int
	BlackInc  int
	Infinite  bool
}

// Info is one reported iterative-deepening update.
type Info struct {
	Depth int
	Score int
	Mate  int
	Nodes int64
	Time  int64
	PV    []board.Move
}
