// Package eval implements the static position evaluator: material, simple
// positional terms, pawn structure and king safety, all expressed from the
// side-to-move's perspective in centipawns.
package eval

import "github.com/benjamacias/chess-bot/board"

const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 0
)

var pieceValue = [7]int{
	board.Empty:  0,
	board.Pawn:   PawnValue,
	board.Knight: KnightValue,
	board.Bishop: BishopValue,
	board.Rook:   RookValue,
	board.Queen:  QueenValue,
	board.King:   KingValue,
}

const (
	bishopPairBonus    = 25
	doubledPawnPenalty = -10
	isolatedPawnPenalty = -8
	castledKingBonus   = 18
	uncastledKingPenalty = -18
	earlyQueenPenalty  = -8
)

var centerSquares = [4]int{
	board.MakeSquare(board.FileD, board.Rank4),
	board.MakeSquare(board.FileE, board.Rank4),
	board.MakeSquare(board.FileD, board.Rank5),
	board.MakeSquare(board.FileE, board.Rank5),
}

func chebyshev(a, b int) int {
	var df = board.File(a) - board.File(b)
	var dr = board.Rank(a) - board.Rank(b)
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

func centralizationBonus(sq int) int {
	var best = 8
	for _, c := range centerSquares {
		if d := chebyshev(sq, c); d < best {
			best = d
		}
	}
	var proximity = 3 - best
	if proximity < 0 {
		return 0
	}
	return proximity * 4
}

func pawnAdvanceBonus(sq int, white bool) int {
	var rank = board.Rank(sq)
	var advanced int
	if white {
		advanced = rank - board.Rank2
	} else {
		advanced = board.Rank7 - rank
	}
	if advanced < 0 {
		advanced = 0
	}
	var bonus = advanced * 2
	if file := board.File(sq); file == board.FileD || file == board.FileE {
		bonus += 3
	}
	return bonus
}

// Evaluate scores pos from the perspective of the side to move: positive
// favors the mover.
func Evaluate(pos *board.Position) int {
	var white, black int
	var whiteBishops, blackBishops int
	var whitePawnFiles, blackPawnFiles [8]int
	var whiteQueenHome, blackQueenHome = true, true

	for sq, p := range pos.Squares {
		if p == board.Empty {
			continue
		}
		var kind = p.Kind()
		var isWhite = p.IsWhite()
		var value = pieceValue[kind]
		var bonus int

		switch kind {
		case board.Knight, board.Bishop:
			bonus = centralizationBonus(sq)
			if kind == board.Bishop {
				if isWhite {
					whiteBishops++
				} else {
					blackBishops++
				}
			}
		case board.Pawn:
			bonus = pawnAdvanceBonus(sq, isWhite)
			if isWhite {
				whitePawnFiles[board.File(sq)]++
			} else {
				blackPawnFiles[board.File(sq)]++
			}
		}

		if kind == board.Queen {
			if isWhite && sq != board.SquareD1 {
				whiteQueenHome = false
			}
			if !isWhite && sq != board.SquareD8 {
				blackQueenHome = false
			}
		}

		if isWhite {
			white += value + bonus
		} else {
			black += value + bonus
		}
	}

	if whiteBishops >= 2 {
		white += bishopPairBonus
	}
	if blackBishops >= 2 {
		black += bishopPairBonus
	}

	white += pawnStructureScore(whitePawnFiles)
	black += pawnStructureScore(blackPawnFiles)

	white += kingSafetyScore(pos, true)
	black += kingSafetyScore(pos, false)

	if whiteQueenHome && pos.FullmoveNumber <= 8 {
		white += earlyQueenPenalty
	}
	if blackQueenHome && pos.FullmoveNumber <= 8 {
		black += earlyQueenPenalty
	}

	var score = white - black
	if !pos.WhiteToMove {
		score = -score
	}
	return score
}

func pawnStructureScore(files [8]int) int {
	var score int
	for file, count := range files {
		if count > 1 {
			score += (count - 1) * doubledPawnPenalty
		}
		if count > 0 {
			var hasNeighbor bool
			if file > 0 && files[file-1] > 0 {
				hasNeighbor = true
			}
			if file < 7 && files[file+1] > 0 {
				hasNeighbor = true
			}
			if !hasNeighbor {
				score += isolatedPawnPenalty
			}
		}
	}
	return score
}

func kingSafetyScore(pos *board.Position, white bool) int {
	var home int
	var castled = [2]int{}
	if white {
		home = board.SquareE1
		castled = [2]int{board.SquareG1, board.SquareC1}
	} else {
		home = board.SquareE8
		castled = [2]int{board.SquareG8, board.SquareC8}
	}
	var kingSq = board.SquareNone
	for sq, p := range pos.Squares {
		if p.Kind() == board.King && p.IsWhite() == white {
			kingSq = sq
			break
		}
	}
	if kingSq == board.SquareNone {
		return 0
	}
	_ = home
	if kingSq == castled[0] || kingSq == castled[1] {
		return castledKingBonus
	}
	if pos.FullmoveNumber >= 10 {
		return uncastledKingPenalty
	}
	return 0
}
