package board

import (
	"errors"
	"fmt"
)

// Move encodes a move in 16 bits:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-14: promotion kind (Knight..Queen), zero when not a promotion
type Move uint16

// NoMove is the zero move.
const NoMove Move = 0

// ErrInvalidMove is wrapped by move parsing errors.
var ErrInvalidMove = errors.New("invalid move")

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a pawn move promoting to kind k.
func NewPromotion(from, to Square, k PieceKind) Move {
	return NewMove(from, to) | Move(k)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion kind, or NoPieceKind.
func (m Move) Promotion() PieceKind {
	k := PieceKind((m >> 12) & 7)
	if k == Pawn {
		return NoPieceKind
	}
	return k
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m>>12 != 0
}

// String returns the move in coordinate notation ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Letter())
	}
	return s
}

// ParseMove parses coordinate notation. The result is not checked against
// any position.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	if len(s) == 5 {
		switch k := KindFromLetter(s[4]); k {
		case Knight, Bishop, Rook, Queen:
			return NewPromotion(from, to, k), nil
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMove, s[4])
		}
	}
	return NewMove(from, to), nil
}

// FindMove resolves coordinate notation against the legal moves of p.
func (p *Position) FindMove(s string) (Move, error) {
	m, err := ParseMove(s)
	if err != nil {
		return NoMove, err
	}
	for _, legal := range p.GenerateMoves() {
		if legal == m {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s is not legal in %s", ErrInvalidMove, s, p.FEN())
}

// IsCapture reports whether m takes a piece in p, en passant included.
func (p *Position) IsCapture(m Move) bool {
	return p.occupied.IsSet(m.To()) || p.IsEnPassant(m)
}

// IsEnPassant reports whether m is an en passant capture in p.
func (p *Position) IsEnPassant(m Move) bool {
	return p.EnPassant.IsSet(m.To()) && p.PieceAt(m.From()).Kind() == Pawn
}

// IsCastling reports whether m is a castling king move in p.
func (p *Position) IsCastling(m Move) bool {
	return p.PieceAt(m.From()).Kind() == King && absDiff(m.From(), m.To()) == 2
}

func absDiff(a, b Square) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// MoveList is a fixed-size move buffer used during generation.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
