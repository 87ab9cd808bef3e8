package board

// Side is the colour of a player.
type Side uint8

const (
	White Side = iota
	Black
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return s ^ 1
}

// String returns the side name.
func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// PieceKind is the kind of a piece regardless of side.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceKind PieceKind = 6
)

var kindNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

// String returns the kind name.
func (k PieceKind) String() string {
	if k > NoPieceKind {
		return kindNames[NoPieceKind]
	}
	return kindNames[k]
}

// Letter returns the lowercase letter used by FEN and move text.
func (k PieceKind) Letter() byte {
	if k >= NoPieceKind {
		return ' '
	}
	return "pnbrqk"[k]
}

// KindFromLetter maps a lowercase piece letter to its kind.
func KindFromLetter(c byte) PieceKind {
	switch c {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	}
	return NoPieceKind
}

// Piece is a coloured piece and doubles as the index of its bitboard in
// Position. Index 0 is the empty-squares board, 1-6 the White kinds and
// 7-12 the Black kinds.
type Piece uint8

const (
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	// pieceBoards is the number of bitboards a Position holds.
	pieceBoards = 13
)

// NewPiece returns the piece of the given kind and side.
func NewPiece(k PieceKind, s Side) Piece {
	if k >= NoPieceKind {
		return NoPiece
	}
	return Piece(1 + uint8(k) + 6*uint8(s))
}

// Kind returns the piece kind, or NoPieceKind for NoPiece.
func (p Piece) Kind() PieceKind {
	if p == NoPiece || p >= pieceBoards {
		return NoPieceKind
	}
	return PieceKind((p - 1) % 6)
}

// Side returns the side owning the piece. Undefined for NoPiece.
func (p Piece) Side() Side {
	return Side((p - 1) / 6)
}

// String returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) String() string {
	if p == NoPiece || p >= pieceBoards {
		return "."
	}
	return string(" PNBRQKpnbrqk"[p])
}

// PieceFromChar converts a FEN letter to a Piece.
func PieceFromChar(c byte) Piece {
	if c >= 'A' && c <= 'Z' {
		return NewPiece(KindFromLetter(c+'a'-'A'), White)
	}
	return NewPiece(KindFromLetter(c), Black)
}
