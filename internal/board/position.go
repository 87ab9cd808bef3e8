package board

import (
	"errors"
	"fmt"
	"strings"
)

// CastlingRights holds the four castling permissions as independent flags.
type CastlingRights uint8

const (
	WhiteKingSide  CastlingRights = 1 << iota // K
	WhiteQueenSide                            // Q
	BlackKingSide                             // k
	BlackQueenSide                            // q
	NoCastling     CastlingRights = 0
	AllCastling    CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// Has reports whether every right in r is held.
func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// sideCastling returns both rights of one side.
func sideCastling(s Side) CastlingRights {
	if s == White {
		return WhiteKingSide | WhiteQueenSide
	}
	return BlackKingSide | BlackQueenSide
}

// Position is a complete, mutable chess position.
//
// Every square is set in exactly one of the 13 boards: the empty-squares
// board at index NoPiece or the board of the piece standing on it.
type Position struct {
	boards [pieceBoards]Bitboard

	// Occupancy derived from boards.
	white, black, occupied Bitboard

	SideToMove     Side
	Castling       CastlingRights
	EnPassant      Bitboard // square skipped by the last double step, at most one bit
	HalfMoveClock  int      // moves since the last pawn move or capture
	FullMoveNumber int      // incremented after every Black move
}

// Snapshot is a full copy of a Position's state.
type Snapshot Position

// Setup is the field-by-field description a Position is built from.
// Placement is indexed rank 8 to rank 1, a-file first, so index 0 is a8.
type Setup struct {
	Placement      [64]Piece
	SideToMove     Side
	Castling       CastlingRights
	EnPassant      Square // NoSquare if none
	HalfMoveClock  int
	FullMoveNumber int
}

// placementIndex maps a square to its Setup.Placement index.
func placementIndex(sq Square) int {
	return (7-sq.Rank())*8 + sq.File()
}

// ErrInvalidPosition is returned by Validate.
var ErrInvalidPosition = errors.New("invalid position")

// NewPosition builds a Position from a Setup.
func NewPosition(s Setup) *Position {
	p := &Position{
		SideToMove:     s.SideToMove,
		Castling:       s.Castling,
		HalfMoveClock:  s.HalfMoveClock,
		FullMoveNumber: s.FullMoveNumber,
	}
	for sq := A1; sq <= H8; sq++ {
		piece := s.Placement[placementIndex(sq)]
		if piece >= pieceBoards {
			piece = NoPiece
		}
		p.boards[piece] |= sq.BB()
	}
	if s.EnPassant < NoSquare {
		p.EnPassant = s.EnPassant.BB()
	}
	p.updateOccupancy()
	return p
}

// StartPosition returns the standard initial position.
func StartPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Setup returns the position's field-by-field description.
func (p *Position) Setup() Setup {
	s := Setup{
		SideToMove:     p.SideToMove,
		Castling:       p.Castling,
		EnPassant:      p.EnPassant.LSB(),
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}
	for sq := A1; sq <= H8; sq++ {
		s.Placement[placementIndex(sq)] = p.PieceAt(sq)
	}
	return s
}

// Snapshot captures the full state of the position.
func (p *Position) Snapshot() Snapshot {
	return Snapshot(*p)
}

// Restore overwrites the position with a previously captured snapshot.
func (p *Position) Restore(s Snapshot) {
	*p = Position(s)
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// Board returns the bitboard of a piece, or of empty squares for NoPiece.
func (p *Position) Board(piece Piece) Bitboard {
	return p.boards[piece]
}

// Pieces returns the bitboard of one side's pieces of one kind.
func (p *Position) Pieces(s Side, k PieceKind) Bitboard {
	return p.boards[NewPiece(k, s)]
}

// Occupancy returns all squares holding a piece of the given side.
func (p *Position) Occupancy(s Side) Bitboard {
	if s == White {
		return p.white
	}
	return p.black
}

// Occupied returns all squares holding any piece.
func (p *Position) Occupied() Bitboard {
	return p.occupied
}

// PieceAt returns the piece on a square, or NoPiece if it is empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := sq.BB()
	if p.occupied&bb == 0 {
		return NoPiece
	}
	for piece := WhitePawn; piece <= BlackKing; piece++ {
		if p.boards[piece]&bb != 0 {
			return piece
		}
	}
	return NoPiece
}

// KingSquare returns the king square of a side, or NoSquare.
func (p *Position) KingSquare(s Side) Square {
	return p.boards[NewPiece(King, s)].LSB()
}

// updateOccupancy recomputes the derived occupancy boards.
func (p *Position) updateOccupancy() {
	p.white, p.black = Empty, Empty
	for piece := WhitePawn; piece <= WhiteKing; piece++ {
		p.white |= p.boards[piece]
	}
	for piece := BlackPawn; piece <= BlackKing; piece++ {
		p.black |= p.boards[piece]
	}
	p.occupied = p.white | p.black
}

// Validate checks the structural invariants a position must hold before
// moves are generated from it.
func (p *Position) Validate() error {
	var seen Bitboard
	for piece := NoPiece; piece <= BlackKing; piece++ {
		if seen&p.boards[piece] != 0 {
			return fmt.Errorf("%w: square claimed by more than one board", ErrInvalidPosition)
		}
		seen |= p.boards[piece]
	}
	if seen != Universe {
		return fmt.Errorf("%w: square missing from every board", ErrInvalidPosition)
	}

	if p.Pieces(White, King).PopCount() != 1 {
		return fmt.Errorf("%w: white must have exactly one king", ErrInvalidPosition)
	}
	if p.Pieces(Black, King).PopCount() != 1 {
		return fmt.Errorf("%w: black must have exactly one king", ErrInvalidPosition)
	}
	if (p.Pieces(White, Pawn)|p.Pieces(Black, Pawn))&(Rank1|Rank8) != 0 {
		return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidPosition)
	}
	if p.EnPassant.PopCount() > 1 {
		return fmt.Errorf("%w: more than one en passant square", ErrInvalidPosition)
	}
	if ep := p.EnPassant.LSB(); ep != NoSquare {
		if ep.RelativeRank(p.SideToMove) != 5 {
			return fmt.Errorf("%w: en passant square %s does not match %s to move", ErrInvalidPosition, ep, p.SideToMove)
		}
		// The pawn that just double-stepped sits one rank past the target.
		pushed := ep - 8
		if p.SideToMove == Black {
			pushed = ep + 8
		}
		if p.occupied.IsSet(ep) || p.PieceAt(pushed) != NewPiece(Pawn, p.SideToMove.Other()) {
			return fmt.Errorf("%w: no pawn to capture en passant on %s", ErrInvalidPosition, ep)
		}
	}
	if p.IsSquareSetAttacked(p.Pieces(p.SideToMove.Other(), King), p.SideToMove) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidPosition)
	}
	return nil
}

// String returns a board diagram followed by the remaining state.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant.LSB())
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	fmt.Fprintf(&sb, "FEN: %s\n", p.FEN())
	return sb.String()
}
