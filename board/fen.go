package board

import (
	"fmt"
	"strconv"
	"strings"
)

// NewPositionFromFEN parses a standard six-field FEN string. It rejects FENs
// whose field count is not exactly six or whose piece-placement field
// overflows a rank.
func NewPositionFromFEN(fen string) (Position, error) {
	var fields = strings.Fields(fen)
	if len(fields) != 6 {
		return Position{}, fmt.Errorf("board: fen must have 6 fields, got %d: %q", len(fields), fen)
	}

	var pos Position
	pos.EpSquare = SquareNone

	var ranks = strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("board: fen placement must have 8 ranks: %q", fen)
	}
	for r := 0; r < 8; r++ {
		var rank = 7 - r
		var file = 0
		for _, ch := range ranks[r] {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
			} else {
				if file >= 8 {
					return Position{}, fmt.Errorf("board: fen rank overflow: %q", fen)
				}
				pos.Squares[MakeSquare(file, rank)] = parsePieceLetter(byte(ch))
				file++
			}
		}
		if file != 8 {
			return Position{}, fmt.Errorf("board: fen rank %d has %d squares: %q", rank, file, fen)
		}
	}

	pos.WhiteToMove = fields[1] == "w"

	var cr = fields[2]
	if strings.Contains(cr, "K") {
		pos.CastleRights |= WhiteKingSide
	}
	if strings.Contains(cr, "Q") {
		pos.CastleRights |= WhiteQueenSide
	}
	if strings.Contains(cr, "k") {
		pos.CastleRights |= BlackKingSide
	}
	if strings.Contains(cr, "q") {
		pos.CastleRights |= BlackQueenSide
	}

	pos.EpSquare = ParseSquare(fields[3])

	pos.HalfmoveClock, _ = strconv.Atoi(fields[4])
	pos.FullmoveNumber, _ = strconv.Atoi(fields[5])

	pos.Key = pos.ComputeKey()
	pos.History = []uint64{pos.Key}

	if kingSquare(&pos.Squares, true) == SquareNone || kingSquare(&pos.Squares, false) == SquareNone {
		return Position{}, fmt.Errorf("board: fen missing a king: %q", fen)
	}

	return pos, nil
}

// FEN renders pos back into standard six-field FEN notation.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		var empty = 0
		for f := 0; f < 8; f++ {
			var p = pos.Squares[MakeSquare(f, r)]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceLetter(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.WhiteToMove {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if pos.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if pos.CastleRights&WhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if pos.CastleRights&WhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if pos.CastleRights&BlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if pos.CastleRights&BlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(SquareName(pos.EpSquare))

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.FullmoveNumber))

	return sb.String()
}

func (pos *Position) String() string {
	return pos.FEN()
}
