package engine

import (
	"github.com/benjamacias/chess-bot/board"
	"github.com/benjamacias/chess-bot/eval"
)

const aspirationWindow = 80

type killerPair struct {
	first, second board.Move
}

// searchState holds everything a single search owns: the TT, node count,
// per-ply killer pairs, history heuristic table, and the abort deadline.
// It is not safe for concurrent use, matching the single-threaded search
// the engine runs (no SMP).
type searchState struct {
	tt       *TranspositionTable
	deadline deadline
	nodes    int64
	killers  [MaxPly + 1]killerPair
	history  [2][64][64]int
}

func colorIndex(whiteToMove bool) int {
	if whiteToMove {
		return 0
	}
	return 1
}

func (s *searchState) checkTime() {
	s.nodes++
	if s.nodes&1023 == 0 && s.deadline.expired() {
		panic(searchTimeout)
	}
}

// orderedMoves returns pos's legal moves ordered: TT move first, then
// captures by MVV-LVA, then the ply's killer moves, then the rest by
// history heuristic score.
func (s *searchState) orderedMoves(pos *board.Position, ply int, ttMove board.Move) []board.Move {
	var moves = board.GenerateLegalMoves(pos)
	var killer = s.killers[ply]
	var scores = make([]int, len(moves))
	for i, m := range moves {
		switch {
		case m == ttMove:
			scores[i] = 1 << 30
		case board.IsCaptureOrPromotion(pos, m):
			scores[i] = 1<<29 + mvvLva(pos, m)
		case m == killer.first:
			scores[i] = 1 << 28
		case m == killer.second:
			scores[i] = 1<<28 - 1
		default:
			var mover = pos.Squares[m.From()]
			scores[i] = s.history[colorIndex(mover.IsWhite())][m.From()][m.To()]
		}
	}
	for i := 1; i < len(moves); i++ {
		var j = i
		for j > 0 && scores[j-1] < scores[j] {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
	return moves
}

func mvvLva(pos *board.Position, m board.Move) int {
	var victim = pos.CapturedPiece(m).Kind()
	var attacker = pos.Squares[m.From()].Kind()
	return 10*int(victim) - int(attacker)
}

func (s *searchState) recordCutoff(pos *board.Position, m board.Move, depth, ply int) {
	if board.IsCaptureOrPromotion(pos, m) {
		return
	}
	var killer = &s.killers[ply]
	if killer.first != m {
		killer.second = killer.first
		killer.first = m
	}
	var mover = pos.Squares[m.From()]
	s.history[colorIndex(mover.IsWhite())][m.From()][m.To()] += depth * depth
}

// negamax implements the main search: repetition/fifty-move/mate/stalemate
// terminal handling, TT probe and seeding, move ordering, and recursive
// alpha-beta with mate-distance-correct scoring.
func (s *searchState) negamax(pos *board.Position, depth, ply, alpha, beta int) int {
	s.checkTime()

	if pos.HalfmoveClock >= 100 || pos.IsThreefoldRepetition() {
		return 0
	}
	if depth <= 0 {
		return s.quiescence(pos, ply, alpha, beta)
	}

	var origAlpha = alpha
	var ttMove board.Move
	if entry, ok := s.tt.Probe(pos.Key, ply); ok {
		ttMove = entry.best
		if entry.depth >= depth {
			switch entry.bound {
			case BoundExact:
				return entry.score
			case BoundLower:
				if entry.score > alpha {
					alpha = entry.score
				}
			case BoundUpper:
				if entry.score < beta {
					beta = entry.score
				}
			}
			if alpha >= beta {
				return entry.score
			}
		}
	}

	var moves = s.orderedMoves(pos, ply, ttMove)
	if len(moves) == 0 {
		if isInCheck(pos) {
			return -Mate + ply
		}
		return 0
	}

	var best = -Infinity
	var bestMove board.Move
	var undo board.Undo
	for _, m := range moves {
		pos.MakeMove(m, &undo)
		var score = -s.negamax(pos, depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove(&undo)

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.recordCutoff(pos, m, depth, ply)
			break
		}
	}

	var bound = BoundExact
	if best <= origAlpha {
		bound = BoundUpper
	} else if best >= beta {
		bound = BoundLower
	}
	s.tt.Store(pos.Key, depth, bound, best, bestMove, ply)
	return best
}

// quiescence extends only captures and capture-promotions past the main
// search's horizon to avoid misjudging tactical positions.
func (s *searchState) quiescence(pos *board.Position, ply, alpha, beta int) int {
	s.checkTime()

	var standPat = eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var captures = board.GenerateCaptures(pos)
	sortCapturesByMVVLVA(pos, captures)

	var undo board.Undo
	for _, m := range captures {
		if !pos.Flags(m).Capture {
			continue
		}
		pos.MakeMove(m, &undo)
		var score = -s.quiescence(pos, ply+1, -beta, -alpha)
		pos.UnmakeMove(&undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func sortCapturesByMVVLVA(pos *board.Position, moves []board.Move) {
	var scores = make([]int, len(moves))
	for i, m := range moves {
		scores[i] = mvvLva(pos, m)
	}
	for i := 1; i < len(moves); i++ {
		var j = i
		for j > 0 && scores[j-1] < scores[j] {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
}

func isInCheck(pos *board.Position) bool {
	var kingSq = board.SquareNone
	for sq, p := range pos.Squares {
		if p.Kind() == board.King && p.IsWhite() == pos.WhiteToMove {
			kingSq = sq
			break
		}
	}
	return pos.IsSquareAttacked(kingSq, !pos.WhiteToMove)
}
