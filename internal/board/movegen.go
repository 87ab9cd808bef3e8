package board

// castle describes one castling move and the squares it depends on.
type castle struct {
	right     CastlingRights
	side      Side
	mask      int // index into castlingMasks
	king      Square
	transit   Square
	dest      Square
	rookFrom  Square
	rookTo    Square
	rookPiece Piece
}

var castles = [4]castle{
	{WhiteKingSide, White, castleWhiteKing, E1, F1, G1, H1, F1, WhiteRook},
	{WhiteQueenSide, White, castleWhiteQueen, E1, D1, C1, A1, D1, WhiteRook},
	{BlackKingSide, Black, castleBlackKing, E8, F8, G8, H8, F8, BlackRook},
	{BlackQueenSide, Black, castleBlackQueen, E8, D8, C8, A8, D8, BlackRook},
}

// castleByDest returns the castle whose king lands on sq.
func castleByDest(sq Square) *castle {
	for i := range castles {
		if castles[i].dest == sq {
			return &castles[i]
		}
	}
	return nil
}

// promotionKinds is the order promotions are emitted in.
var promotionKinds = [4]PieceKind{Knight, Bishop, Rook, Queen}

// GenerateMoves returns every legal move for the side to move.
func (p *Position) GenerateMoves() []Move {
	var ml MoveList
	p.GeneratePseudoLegalMoves(&ml)

	us := p.SideToMove
	them := us.Other()
	king := NewPiece(King, us)

	legal := make([]Move, 0, ml.Len())
	snap := p.Snapshot()
	for _, m := range ml.Slice() {
		p.ApplyMove(m)
		if !p.IsSquareSetAttacked(p.boards[king], them) {
			legal = append(legal, m)
		}
		p.Restore(snap)
	}
	return legal
}

// GeneratePseudoLegalMoves appends moves that obey piece movement but may
// leave the mover's king attacked.
func (p *Position) GeneratePseudoLegalMoves(ml *MoveList) {
	us := p.SideToMove
	accessible := ^p.Occupancy(us)

	p.generatePawnMoves(ml, us)

	knights := p.Pieces(us, Knight)
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(ml, from, knightMasks[from]&accessible)
	}

	p.generateSliderMoves(ml, p.Pieces(us, Bishop), diagonals[:], accessible)
	p.generateSliderMoves(ml, p.Pieces(us, Rook), orthogonals[:], accessible)
	p.generateSliderMoves(ml, p.Pieces(us, Queen), Directions[:], accessible)

	kings := p.Pieces(us, King)
	for kings != 0 {
		from := kings.PopLSB()
		addTargets(ml, from, kingMasks[from]&accessible)
	}

	p.generateCastlingMoves(ml, us)
}

func addTargets(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// generatePawnMoves adds pushes, double pushes, captures, en passant and
// promotions for every pawn of side us.
func (p *Position) generatePawnMoves(ml *MoveList, us Side) {
	empty := p.boards[NoPiece]
	capturable := p.Occupancy(us.Other()) | p.EnPassant

	pawns := p.Pieces(us, Pawn)
	for pawns != 0 {
		from := pawns.PopLSB()
		promotes := from.RelativeRank(us) == 6

		targets := pawnAttackMasks[us][from] & capturable
		if push := pawnPushMasks[us][from] & empty; push != 0 {
			targets |= push
			targets |= pawnDoubleMasks[us][from] & empty
		}

		for targets != 0 {
			to := targets.PopLSB()
			if promotes {
				for _, k := range promotionKinds {
					ml.Add(NewPromotion(from, to, k))
				}
				continue
			}
			ml.Add(NewMove(from, to))
		}
	}
}

// generateSliderMoves walks every direction in dirs from each piece in
// sliders, stopping at and including the first blocker.
func (p *Position) generateSliderMoves(ml *MoveList, sliders Bitboard, dirs []Direction, accessible Bitboard) {
	for sliders != 0 {
		from := sliders.PopLSB()
		var targets Bitboard
		for _, d := range dirs {
			targets |= SlideAttacks(d, from, p.occupied)
		}
		addTargets(ml, from, targets&accessible)
	}
}

// generateCastlingMoves adds castles whose right is held, whose path is
// empty and whose king squares are not attacked.
func (p *Position) generateCastlingMoves(ml *MoveList, us Side) {
	them := us.Other()
	king := NewPiece(King, us)

	for i := range castles {
		c := &castles[i]
		if c.side != us || !p.Castling.Has(c.right) {
			continue
		}
		if !p.boards[king].IsSet(c.king) || !p.boards[c.rookPiece].IsSet(c.rookFrom) {
			continue
		}
		if p.occupied&castlingMasks[c.mask] != 0 {
			continue
		}
		if p.IsSquareSetAttacked(c.king.BB()|c.transit.BB()|c.dest.BB(), them) {
			continue
		}
		ml.Add(NewMove(c.king, c.dest))
	}
}

// ApplyMove plays m, which must come from GenerateMoves on this position.
// It is not validated. Use Snapshot and Restore to take it back.
func (p *Position) ApplyMove(m Move) {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	fromBB, toBB := from.BB(), to.BB()

	moving := p.PieceAt(from)
	captured := p.PieceAt(to)
	kind := moving.Kind()

	p.boards[moving] &^= fromBB
	p.boards[NoPiece] |= fromBB

	if captured != NoPiece {
		p.boards[captured] &^= toBB
	}
	placed := moving
	if promo := m.Promotion(); promo != NoPieceKind {
		placed = NewPiece(promo, us)
	}
	p.boards[placed] |= toBB
	p.boards[NoPiece] &^= toBB

	// En passant: the captured pawn sits behind the target square.
	if kind == Pawn && toBB == p.EnPassant {
		victim := to - 8
		if us == Black {
			victim = to + 8
		}
		captured = NewPiece(Pawn, them)
		p.boards[captured] &^= victim.BB()
		p.boards[NoPiece] |= victim.BB()
	}

	if kind == King && absDiff(from, to) == 2 {
		if c := castleByDest(to); c != nil {
			rookMove := c.rookFrom.BB() | c.rookTo.BB()
			p.boards[c.rookPiece] ^= rookMove
			p.boards[NoPiece] ^= rookMove
		}
	}

	p.EnPassant = Empty
	if kind == Pawn && absDiff(from, to) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2).BB()
	}

	if kind == King {
		p.Castling &^= sideCastling(us)
	}
	for i := range castles {
		c := &castles[i]
		if p.Castling.Has(c.right) && !p.boards[c.rookPiece].IsSet(c.rookFrom) {
			p.Castling &^= c.right
		}
	}

	if kind == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them

	p.updateOccupancy()
}
