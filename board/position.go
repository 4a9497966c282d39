package board

// Position is the full game state: an 8x8 square array of signed pieces
// plus the side-to-move, castling, en-passant, clocks and Zobrist
// bookkeeping needed to make/unmake moves exactly.
type Position struct {
	Squares         [64]Piece
	WhiteToMove     bool
	CastleRights    int
	EpSquare        int
	HalfmoveClock   int
	FullmoveNumber  int
	Key             uint64
	History         []uint64
}

// NewInitialPosition returns the standard chess starting position.
func NewInitialPosition() Position {
	var p, err = NewPositionFromFEN(InitialPositionFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Undo captures everything MakeMove mutated so UnmakeMove can restore the
// previous position exactly. Its lifetime is strictly the matched
// MakeMove/UnmakeMove pair; callers must not retain it across other calls.
type Undo struct {
	move            Move
	capturedPiece   Piece
	captureSquare   int
	prevCastleRights int
	prevEpSquare    int
	prevHalfmove    int
	prevFullmove    int
	prevKey         uint64
	rookFrom        int
	rookTo          int
}

func (pos *Position) whatPiece(sq int) Piece { return pos.Squares[sq] }

// IsCheck reports whether the side to move is currently in check.
func (pos *Position) IsCheck() bool {
	var kingSq = kingSquare(&pos.Squares, pos.WhiteToMove)
	return pos.isAttacked(kingSq, !pos.WhiteToMove)
}

// kingSafeAfterOwnMove reports whether, after making m, the side that just
// moved (not the new side to move) has its king safe. This is the legality
// filter used by the move generator.
func (pos *Position) kingSafeAfterOwnMove(whoMoved bool) bool {
	var kingSq = kingSquare(&pos.Squares, whoMoved)
	return !pos.isAttacked(kingSq, !whoMoved)
}

func castlingRightsMaskFor(sq int) int {
	switch sq {
	case SquareA1:
		return ^WhiteQueenSide
	case SquareE1:
		return ^(WhiteQueenSide | WhiteKingSide)
	case SquareH1:
		return ^WhiteKingSide
	case SquareA8:
		return ^BlackQueenSide
	case SquareE8:
		return ^(BlackQueenSide | BlackKingSide)
	case SquareH8:
		return ^BlackKingSide
	default:
		return ^0
	}
}

// MakeMove applies m to pos in place and fills undo with everything needed
// to reverse it. It returns false (and still mutates pos — the caller must
// call UnmakeMove regardless) if the move leaves the mover's own king in
// check, i.e. it was pseudo-legal but not legal.
func (pos *Position) MakeMove(m Move, undo *Undo) bool {
	var from, to = m.From(), m.To()
	var moving = pos.Squares[from]
	var mover = pos.WhiteToMove
	var flags = pos.Flags(m)

	undo.move = m
	undo.prevCastleRights = pos.CastleRights
	undo.prevEpSquare = pos.EpSquare
	undo.prevHalfmove = pos.HalfmoveClock
	undo.prevFullmove = pos.FullmoveNumber
	undo.prevKey = pos.Key
	undo.rookFrom, undo.rookTo = SquareNone, SquareNone
	undo.capturedPiece = Empty
	undo.captureSquare = SquareNone

	pos.Key ^= castlingKey[pos.CastleRights]
	if pos.EpSquare != SquareNone {
		pos.Key ^= enPassantKey[File(pos.EpSquare)]
	}

	if moving.Kind() == Pawn || flags.Capture {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}
	if !mover {
		pos.FullmoveNumber++
	}

	if flags.Capture {
		var captureSq = to
		if flags.EnPassant {
			if mover {
				captureSq = to - 8
			} else {
				captureSq = to + 8
			}
		}
		undo.capturedPiece = pos.Squares[captureSq]
		undo.captureSquare = captureSq
		pos.Key ^= pieceSquareKey(pos.Squares[captureSq], captureSq)
		pos.Squares[captureSq] = Empty
	}

	pos.Key ^= pieceSquareKey(moving, from)
	pos.Squares[from] = Empty

	var placed = moving
	if promo := m.Promotion(); promo != Empty {
		if mover {
			placed = promo
		} else {
			placed = -promo
		}
	}
	pos.Squares[to] = placed
	pos.Key ^= pieceSquareKey(placed, to)

	if flags.Castle {
		var rookFrom, rookTo int
		if to == SquareG1 {
			rookFrom, rookTo = SquareH1, SquareF1
		} else if to == SquareC1 {
			rookFrom, rookTo = SquareA1, SquareD1
		} else if to == SquareG8 {
			rookFrom, rookTo = SquareH8, SquareF8
		} else {
			rookFrom, rookTo = SquareA8, SquareD8
		}
		undo.rookFrom, undo.rookTo = rookFrom, rookTo
		var rook = pos.Squares[rookFrom]
		pos.Key ^= pieceSquareKey(rook, rookFrom)
		pos.Squares[rookFrom] = Empty
		pos.Squares[rookTo] = rook
		pos.Key ^= pieceSquareKey(rook, rookTo)
	}

	pos.CastleRights &= castlingRightsMaskFor(from) & castlingRightsMaskFor(to)

	pos.EpSquare = SquareNone
	if flags.DoublePush {
		if mover {
			pos.EpSquare = from + 8
		} else {
			pos.EpSquare = from - 8
		}
	}

	pos.Key ^= castlingKey[pos.CastleRights]
	if pos.EpSquare != SquareNone {
		pos.Key ^= enPassantKey[File(pos.EpSquare)]
	}

	pos.WhiteToMove = !pos.WhiteToMove
	pos.Key ^= sideKey

	pos.History = append(pos.History, pos.Key)

	return pos.kingSafeAfterOwnMove(mover)
}

// UnmakeMove reverses the exact effect of the matched MakeMove call.
func (pos *Position) UnmakeMove(undo *Undo) {
	pos.History = pos.History[:len(pos.History)-1]

	pos.WhiteToMove = !pos.WhiteToMove
	var mover = pos.WhiteToMove
	var m = undo.move
	var from, to = m.From(), m.To()

	var placed = pos.Squares[to]
	pos.Squares[to] = Empty
	if m.Promotion() != Empty {
		if mover {
			pos.Squares[from] = Pawn
		} else {
			pos.Squares[from] = -Pawn
		}
	} else {
		pos.Squares[from] = placed
	}

	if undo.rookFrom != SquareNone {
		var rook = pos.Squares[undo.rookTo]
		pos.Squares[undo.rookTo] = Empty
		pos.Squares[undo.rookFrom] = rook
	}

	if undo.capturedPiece != Empty {
		pos.Squares[undo.captureSquare] = undo.capturedPiece
	}

	pos.CastleRights = undo.prevCastleRights
	pos.EpSquare = undo.prevEpSquare
	pos.HalfmoveClock = undo.prevHalfmove
	pos.FullmoveNumber = undo.prevFullmove
	pos.Key = undo.prevKey
}

// IsThreefoldRepetition reports whether the current position has occurred
// twice before in the recorded history, scanning back only as far as the
// halfmove clock allows (captures and pawn moves reset repetition).
func (pos *Position) IsThreefoldRepetition() bool {
	var n = len(pos.History)
	if n == 0 {
		return false
	}
	var current = pos.History[n-1]
	var count = 0
	var limit = min(pos.HalfmoveClock, n-1)
	for i := 2; i <= limit; i += 2 {
		if pos.History[n-1-i] == current {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached 100 plies
// (50 full moves) without a capture or pawn move.
func (pos *Position) IsFiftyMoveDraw() bool {
	return pos.HalfmoveClock >= 100
}
