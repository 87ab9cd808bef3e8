package perft

import "github.com/hailam/perft/internal/board"

// Stats breaks a leaf count down by the kind of the final move, in the
// categories published alongside standard perft tables.
type Stats struct {
	Nodes      int64
	Captures   int64
	EnPassant  int64
	Castles    int64
	Promotions int64
	Checks     int64
	Checkmates int64
}

// CountStats is CountLeaves with the final move of every leaf classified.
func CountStats(p *board.Position, depth int) Stats {
	var s Stats
	if depth <= 0 {
		s.Nodes = 1
		return s
	}
	countStats(p, depth, &s)
	return s
}

func countStats(p *board.Position, depth int, s *Stats) {
	snap := p.Snapshot()
	for _, m := range p.GenerateMoves() {
		if depth > 1 {
			p.ApplyMove(m)
			countStats(p, depth-1, s)
			p.Restore(snap)
			continue
		}

		s.Nodes++
		if p.IsCapture(m) {
			s.Captures++
		}
		if p.IsEnPassant(m) {
			s.EnPassant++
		}
		if p.IsCastling(m) {
			s.Castles++
		}
		if m.IsPromotion() {
			s.Promotions++
		}

		p.ApplyMove(m)
		if p.InCheck() {
			s.Checks++
			if len(p.GenerateMoves()) == 0 {
				s.Checkmates++
			}
		}
		p.Restore(snap)
	}
}
