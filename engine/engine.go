package engine

import (
	"time"

	"github.com/benjamacias/chess-bot/board"
)

// UciOption is any option the engine reports over UCI.
type UciOption interface {
	Name() string
}

// SearchParams carries everything a single search needs. Position must
// include the game's key history so repetition detection works across the
// root.
type SearchParams struct {
	Position *board.Position
	Limits   Limits
	Progress func(Info)
}

// Engine owns the transposition table and the UCI options. It runs one
// search at a time; the UCI front-end is responsible for not overlapping
// Search calls.
type Engine struct {
	Hash    IntOption
	Threads IntOption
	tt      *TranspositionTable
}

func NewEngine() *Engine {
	return &Engine{
		Hash:    IntOption{name: "Hash", Value: 64, Min: 1, Max: 2048},
		Threads: IntOption{name: "Threads", Value: 1, Min: 1, Max: 32},
	}
}

func (e *Engine) GetInfo() (name, author string) {
	return "ChessBot", "Benja Macias"
}

func (e *Engine) GetOptions() []UciOption {
	return []UciOption{&e.Hash, &e.Threads}
}

// Prepare applies pending option changes: the TT is (re)allocated when the
// Hash option no longer matches its size.
func (e *Engine) Prepare() {
	if e.tt == nil || e.tt.megabytes != e.Hash.Value {
		e.tt = NewTranspositionTable(e.Hash.Value)
	}
}

func (e *Engine) NewGame() {
	if e.tt != nil {
		e.tt.Clear()
	}
}

// Search runs iterative deepening with aspiration windows and returns the
// result of the deepest completed iteration. The zero Info (Depth 0, empty
// PV) means the position has no legal moves.
func (e *Engine) Search(params SearchParams) Info {
	e.Prepare()
	var pos = params.Position
	var legal = board.GenerateLegalMoves(pos)
	if len(legal) == 0 {
		return Info{}
	}

	var s = &searchState{
		tt:       e.tt,
		deadline: newDeadline(ComputeThinkTime(params.Limits, pos.WhiteToMove)),
	}
	var start = time.Now()
	var maxDepth = params.Limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	var result = Info{Depth: 0, PV: []board.Move{legal[0]}}
	func() {
		defer recoverFromSearchTimeout()
		var prevScore int
		for depth := 1; depth <= maxDepth; depth++ {
			var score, move = s.searchDepth(pos, depth, prevScore)
			if move == board.MoveNone {
				move = legal[0]
			}
			prevScore = score

			var pv = principalVariation(pos, e.tt)
			if len(pv) == 0 || pv[0] != move {
				pv = []board.Move{move}
			}
			result = Info{
				Depth: depth,
				Score: score,
				Nodes: s.nodes,
				Time:  time.Since(start).Milliseconds(),
				PV:    pv,
			}
			if mate, ok := ScoreToMate(score); ok {
				result.Mate = mate
			}
			if params.Progress != nil {
				params.Progress(result)
			}
		}
	}()
	return result
}

// searchDepth runs one iteration: an aspiration window of +-80cp around the
// previous score from depth 2, widened to the full window on a fail.
func (s *searchState) searchDepth(pos *board.Position, depth, prevScore int) (int, board.Move) {
	if depth >= 2 {
		var alpha = prevScore - aspirationWindow
		var beta = prevScore + aspirationWindow
		var score, move = s.searchRoot(pos, depth, alpha, beta)
		if score > alpha && score < beta {
			return score, move
		}
	}
	return s.searchRoot(pos, depth, -Infinity, Infinity)
}

func (s *searchState) searchRoot(pos *board.Position, depth, alpha, beta int) (int, board.Move) {
	var origAlpha = alpha
	var ttMove board.Move
	if entry, ok := s.tt.Probe(pos.Key, 0); ok {
		ttMove = entry.best
	}
	var moves = s.orderedMoves(pos, 0, ttMove)

	var best = -Infinity
	var bestMove board.Move
	var undo board.Undo
	for _, m := range moves {
		pos.MakeMove(m, &undo)
		var score = -s.negamax(pos, depth-1, 1, -beta, -alpha)
		pos.UnmakeMove(&undo)

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.recordCutoff(pos, m, depth, 0)
			break
		}
	}

	var bound = BoundExact
	if best <= origAlpha {
		bound = BoundUpper
	} else if best >= beta {
		bound = BoundLower
	}
	s.tt.Store(pos.Key, depth, bound, best, bestMove, 0)
	return best, bestMove
}

// ScoreToMate converts an internal mate score to a signed moves-to-mate
// count for UCI reporting. ok is false for ordinary centipawn scores.
func ScoreToMate(score int) (int, bool) {
	if score >= mateThreshold {
		return (Mate - score + 1) / 2, true
	}
	if score <= -mateThreshold {
		return -(Mate + score + 1) / 2, true
	}
	return 0, false
}
