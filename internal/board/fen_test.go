package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 49 120",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := pos.FEN(); got != fen {
				t.Errorf("FEN() = %s, want %s", got, fen)
			}
		})
	}
}

func TestParseFENDefaults(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("clocks = %d %d, want 0 1", pos.HalfMoveClock, pos.FullMoveNumber)
	}
	if pos.EnPassant != Empty {
		t.Errorf("en passant = %v, want none", pos.EnPassant.LSB())
	}
}

func TestParseFENFields(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w Kq c6 3 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.SideToMove != White {
		t.Errorf("side = %v, want White", pos.SideToMove)
	}
	if pos.Castling != WhiteKingSide|BlackQueenSide {
		t.Errorf("castling = %s, want Kq", pos.Castling)
	}
	if pos.EnPassant != C6.BB() {
		t.Errorf("en passant = %v, want c6", pos.EnPassant.LSB())
	}
	if pos.HalfMoveClock != 3 || pos.FullMoveNumber != 2 {
		t.Errorf("clocks = %d %d, want 3 2", pos.HalfMoveClock, pos.FullMoveNumber)
	}
	if pos.PieceAt(C5) != BlackPawn || pos.PieceAt(E4) != WhitePawn || pos.PieceAt(E1) != WhiteKing {
		t.Errorf("unexpected placement:\n%v", pos)
	}
	if got := pos.Board(NoPiece).PopCount(); got != 32 {
		t.Errorf("empty squares = %d, want 32", got)
	}
}

func TestSetupPlacementOrder(t *testing.T) {
	s, err := ParseSetup(StartFEN)
	if err != nil {
		t.Fatalf("ParseSetup: %v", err)
	}
	if s.Placement[0] != BlackRook || s.Placement[4] != BlackKing {
		t.Errorf("rank 8 not first: %v %v", s.Placement[0], s.Placement[4])
	}
	if s.Placement[60] != WhiteKing || s.Placement[63] != WhiteRook {
		t.Errorf("rank 1 not last: %v %v", s.Placement[60], s.Placement[63])
	}
	if got := NewPosition(s).Setup(); got != s {
		t.Errorf("Setup() does not round-trip through NewPosition")
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"too many fields", StartFEN + " extra"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"overflowing rank", "rnbqkbnrp/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1"},
		{"en passant wrong rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1"},
		{"en passant behind side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1"},
		{"en passant ahead of black", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e6 0 1"},
		{"bad clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"bad move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestValidateEnPassantSide(t *testing.T) {
	s := StartPosition().Setup()
	s.EnPassant = E3

	if err := NewPosition(s).Validate(); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Validate() = %v, want ErrInvalidPosition", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		valid bool
	}{
		{"start", StartFEN, true},
		{"no white king", "4k3/8/8/8/8/8/8/8 w - - 0 1", false},
		{"two black kings", "4k2k/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"pawn on first rank", "4k3/8/8/8/8/8/8/P3K3 w - - 0 1", false},
		{"side to move in check", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1", false},
		{"en passant after double step", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", true},
		{"en passant without pawn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1", false},
		{"en passant square occupied", "rnbqkbnr/pppppppp/8/8/4P3/4N3/PPPP1PPP/RNBQKB1R b KQkq e3 0 1", false},
		{"en passant behind own pawn", "rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustParse(t, tt.fen).Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidPosition) {
				t.Errorf("Validate() = %v, want ErrInvalidPosition", err)
			}
		})
	}
}
