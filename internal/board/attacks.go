package board

// Direction is one of the eight ray directions a slider moves along.
type Direction uint8

const (
	North Direction = iota
	East
	NorthEast
	NorthWest
	South
	West
	SouthEast
	SouthWest
)

// Directions lists every ray direction.
var Directions = [8]Direction{North, East, NorthEast, NorthWest, South, West, SouthEast, SouthWest}

var (
	orthogonals = [4]Direction{North, East, South, West}
	diagonals   = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
)

var dirSteps = [8]struct{ file, rank int }{
	North:     {0, 1},
	East:      {1, 0},
	NorthEast: {1, 1},
	NorthWest: {-1, 1},
	South:     {0, -1},
	West:      {-1, 0},
	SouthEast: {1, -1},
	SouthWest: {-1, -1},
}

// Ascending reports whether squares along the ray grow in index, so the
// nearest square on it is the lowest set bit. The other four directions
// take the highest set bit.
func (d Direction) Ascending() bool {
	return d < South
}

// String returns the compass name of the direction.
func (d Direction) String() string {
	return [...]string{"N", "E", "NE", "NW", "S", "W", "SE", "SW"}[d]
}

// Indices into castlingMasks.
const (
	castleWhiteKing = iota
	castleWhiteQueen
	castleBlackKing
	castleBlackQueen
)

// Precomputed tables. Built by InitAttackTables and read-only afterwards.
var (
	rayMasks        [8][64]Bitboard
	pawnPushMasks   [2][64]Bitboard
	pawnDoubleMasks [2][64]Bitboard
	pawnAttackMasks [2][64]Bitboard
	knightMasks     [64]Bitboard
	kingMasks       [64]Bitboard
	castlingMasks   [4]Bitboard // squares between king and rook that must be empty
)

var knightSteps = [8]struct{ file, rank int }{
	{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func init() {
	InitAttackTables()
}

// InitAttackTables builds every lookup table. It is deterministic and may be
// called again, but not while moves are being generated.
func InitAttackTables() {
	for sq := A1; sq <= H8; sq++ {
		initRays(sq)
		initPawnMasks(sq)
		initLeaperMasks(sq)
	}

	castlingMasks[castleWhiteKing] = F1.BB() | G1.BB()
	castlingMasks[castleWhiteQueen] = B1.BB() | C1.BB() | D1.BB()
	castlingMasks[castleBlackKing] = F8.BB() | G8.BB()
	castlingMasks[castleBlackQueen] = B8.BB() | C8.BB() | D8.BB()
}

func initRays(sq Square) {
	for _, d := range Directions {
		step := dirSteps[d]
		var ray Bitboard
		f, r := sq.File()+step.file, sq.Rank()+step.rank
		for onBoard(f, r) {
			ray |= NewSquare(f, r).BB()
			f += step.file
			r += step.rank
		}
		rayMasks[d][sq] = ray
	}
}

func initPawnMasks(sq Square) {
	f, r := sq.File(), sq.Rank()

	pawnPushMasks[White][sq], pawnPushMasks[Black][sq] = Empty, Empty
	pawnDoubleMasks[White][sq], pawnDoubleMasks[Black][sq] = Empty, Empty
	if r > 0 && r < 7 {
		pawnPushMasks[White][sq] = NewSquare(f, r+1).BB()
		pawnPushMasks[Black][sq] = NewSquare(f, r-1).BB()
	}
	if r == 1 {
		pawnDoubleMasks[White][sq] = NewSquare(f, r+2).BB()
	}
	if r == 6 {
		pawnDoubleMasks[Black][sq] = NewSquare(f, r-2).BB()
	}

	var white, black Bitboard
	for _, df := range [2]int{-1, 1} {
		if onBoard(f+df, r+1) {
			white |= NewSquare(f+df, r+1).BB()
		}
		if onBoard(f+df, r-1) {
			black |= NewSquare(f+df, r-1).BB()
		}
	}
	pawnAttackMasks[White][sq] = white
	pawnAttackMasks[Black][sq] = black
}

func initLeaperMasks(sq Square) {
	f, r := sq.File(), sq.Rank()

	var knight Bitboard
	for _, step := range knightSteps {
		if onBoard(f+step.file, r+step.rank) {
			knight |= NewSquare(f+step.file, r+step.rank).BB()
		}
	}
	knightMasks[sq] = knight

	var king Bitboard
	for _, step := range dirSteps {
		if onBoard(f+step.file, r+step.rank) {
			king |= NewSquare(f+step.file, r+step.rank).BB()
		}
	}
	kingMasks[sq] = king
}

// Ray returns every square from sq to the board edge in direction d,
// excluding sq itself.
func Ray(d Direction, sq Square) Bitboard {
	return rayMasks[d][sq]
}

// KnightAttacks returns the knight targets from a square.
func KnightAttacks(sq Square) Bitboard {
	return knightMasks[sq]
}

// KingAttacks returns the king targets from a square.
func KingAttacks(sq Square) Bitboard {
	return kingMasks[sq]
}

// PawnAttacks returns the squares a pawn of side s on sq attacks.
func PawnAttacks(sq Square, s Side) Bitboard {
	return pawnAttackMasks[s][sq]
}

// PawnPushes returns the single-step target of a pawn of side s on sq.
func PawnPushes(sq Square, s Side) Bitboard {
	return pawnPushMasks[s][sq]
}

// PawnDoublePushes returns the double-step target of a pawn on its home rank.
func PawnDoublePushes(sq Square, s Side) Bitboard {
	return pawnDoubleMasks[s][sq]
}

// SlideAttacks returns the squares a slider on sq reaches in direction d.
// The ray stops at the nearest occupied square, which is included.
func SlideAttacks(d Direction, sq Square, occupied Bitboard) Bitboard {
	ray := rayMasks[d][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var nearest Square
	if d.Ascending() {
		nearest = blockers.LSB()
	} else {
		nearest = blockers.MSB()
	}
	return ray &^ rayMasks[d][nearest]
}

// BishopAttacks returns diagonal slider attacks from sq.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	for _, d := range diagonals {
		attacks |= SlideAttacks(d, sq, occupied)
	}
	return attacks
}

// RookAttacks returns orthogonal slider attacks from sq.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	for _, d := range orthogonals {
		attacks |= SlideAttacks(d, sq, occupied)
	}
	return attacks
}

// QueenAttacks returns the union of bishop and rook attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// IsSquareSetAttacked reports whether side by attacks any square in the set.
func (p *Position) IsSquareSetAttacked(squares Bitboard, by Side) bool {
	pawns := p.boards[NewPiece(Pawn, by)]
	knights := p.boards[NewPiece(Knight, by)]
	kings := p.boards[NewPiece(King, by)]
	queens := p.boards[NewPiece(Queen, by)]
	diagonal := p.boards[NewPiece(Bishop, by)] | queens
	orthogonal := p.boards[NewPiece(Rook, by)] | queens
	defender := by.Other()

	for squares != 0 {
		sq := squares.PopLSB()

		// A pawn of the defending side on sq attacks exactly the squares
		// from which an attacking pawn would hit sq.
		if pawnAttackMasks[defender][sq]&pawns != 0 ||
			knightMasks[sq]&knights != 0 ||
			kingMasks[sq]&kings != 0 {
			return true
		}

		if diagonal != 0 {
			for _, d := range diagonals {
				if SlideAttacks(d, sq, p.occupied)&diagonal != 0 {
					return true
				}
			}
		}
		if orthogonal != 0 {
			for _, d := range orthogonals {
				if SlideAttacks(d, sq, p.occupied)&orthogonal != 0 {
					return true
				}
			}
		}
	}
	return false
}

// InCheck reports whether the side to move has its king attacked.
func (p *Position) InCheck() bool {
	us := p.SideToMove
	return p.IsSquareSetAttacked(p.boards[NewPiece(King, us)], us.Other())
}
