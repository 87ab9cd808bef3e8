package board

import (
	"errors"
	"testing"
)

func TestMoveEncoding(t *testing.T) {
	tests := []struct {
		move  Move
		from  Square
		to    Square
		promo PieceKind
		text  string
	}{
		{NewMove(E2, E4), E2, E4, NoPieceKind, "e2e4"},
		{NewMove(G1, F3), G1, F3, NoPieceKind, "g1f3"},
		{NewMove(H8, A1), H8, A1, NoPieceKind, "h8a1"},
		{NewPromotion(E7, E8, Queen), E7, E8, Queen, "e7e8q"},
		{NewPromotion(B2, A1, Knight), B2, A1, Knight, "b2a1n"},
		{NewPromotion(G7, H8, Rook), G7, H8, Rook, "g7h8r"},
		{NewPromotion(C7, C8, Bishop), C7, C8, Bishop, "c7c8b"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if tt.move.From() != tt.from || tt.move.To() != tt.to || tt.move.Promotion() != tt.promo {
				t.Errorf("decoded %v %v %v, want %v %v %v",
					tt.move.From(), tt.move.To(), tt.move.Promotion(), tt.from, tt.to, tt.promo)
			}
			if got := tt.move.String(); got != tt.text {
				t.Errorf("String() = %s, want %s", got, tt.text)
			}
			parsed, err := ParseMove(tt.text)
			if err != nil {
				t.Fatalf("ParseMove: %v", err)
			}
			if parsed != tt.move {
				t.Errorf("ParseMove(%s) = %v, want %v", tt.text, parsed, tt.move)
			}
		})
	}
}

func TestMoveEquality(t *testing.T) {
	if NewPromotion(E7, E8, Queen) == NewPromotion(E7, E8, Knight) {
		t.Error("promotions to different kinds compare equal")
	}
	if NewMove(E7, E8) == NewPromotion(E7, E8, Queen) {
		t.Error("promotion equals plain move")
	}
	if NewMove(A2, A3) != NewMove(A2, A3) {
		t.Error("identical moves differ")
	}
}

func TestParseMoveErrors(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e", "e2e4qq", "i2e4", "e2e9", "e7e8k", "e7e8p"} {
		if _, err := ParseMove(s); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", s, err)
		}
	}
}

func TestFindMove(t *testing.T) {
	pos := StartPosition()
	if _, err := pos.FindMove("e2e4"); err != nil {
		t.Errorf("FindMove(e2e4): %v", err)
	}
	if _, err := pos.FindMove("e2e5"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("FindMove(e2e5) error = %v, want ErrInvalidMove", err)
	}
}
