package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every FEN parsing error.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN parses a FEN string into a Position.
func ParseFEN(fen string) (*Position, error) {
	s, err := ParseSetup(fen)
	if err != nil {
		return nil, err
	}
	return NewPosition(s), nil
}

// ParseSetup parses a FEN string. The half-move clock and full-move number
// are optional and default to 0 and 1.
func ParseSetup(fen string) (Setup, error) {
	s := Setup{EnPassant: NoSquare, FullMoveNumber: 1}

	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return s, fmt.Errorf("%w: need 4 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	if err := parsePlacement(&s, parts[0]); err != nil {
		return s, err
	}

	switch parts[1] {
	case "w":
		s.SideToMove = White
	case "b":
		s.SideToMove = Black
	default:
		return s, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	if err := parseCastling(&s, parts[2]); err != nil {
		return s, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return s, fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		if sq.RelativeRank(s.SideToMove) != 5 {
			return s, fmt.Errorf("%w: en passant square %s does not match %s to move", ErrInvalidFEN, sq, s.SideToMove)
		}
		s.EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return s, fmt.Errorf("%w: invalid half-move clock: %s", ErrInvalidFEN, parts[4])
		}
		s.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return s, fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidFEN, parts[5])
		}
		s.FullMoveNumber = fmn
	}

	return s, nil
}

// parsePlacement fills Setup.Placement, which is already in FEN order.
func parsePlacement(s *Setup, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-i)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			s.Placement[i*8+file] = piece
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, 8-i, file)
		}
	}
	return nil
}

func parseCastling(s *Setup, castling string) error {
	if castling == "-" {
		return nil
	}
	for i := 0; i < len(castling); i++ {
		var right CastlingRights
		switch castling[i] {
		case 'K':
			right = WhiteKingSide
		case 'Q':
			right = WhiteQueenSide
		case 'k':
			right = BlackKingSide
		case 'q':
			right = BlackQueenSide
		default:
			return fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, castling[i])
		}
		s.Castling |= right
	}
	return nil
}

// FEN formats the setup as a six-field FEN string.
func (s Setup) FEN() string {
	var sb strings.Builder

	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := s.Placement[rank*8+file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if s.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(s.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(s.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullMoveNumber))

	return sb.String()
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	return p.Setup().FEN()
}
