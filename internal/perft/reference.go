package perft

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/perft/internal/board"
)

// ReferenceDivide computes a divide with an independent move generator, for
// locating the root moves where a count goes wrong.
func ReferenceDivide(p *board.Position, depth int) (counts map[string]int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reference generator failed on %s: %v", p.FEN(), r)
		}
	}()

	b := dragontoothmg.ParseFen(p.FEN())
	counts = make(map[string]int64)
	if depth <= 0 {
		return counts, nil
	}

	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		counts[m.String()] = referenceCount(&b, depth-1)
		unapply()
	}
	return counts, nil
}

func referenceCount(b *dragontoothmg.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += referenceCount(b, depth-1)
		unapply()
	}
	return nodes
}

// Diff is one root move on which two divides disagree. A count of -1 means
// the move is absent from that side.
type Diff struct {
	Move      string
	Got, Want int64
}

func (d Diff) String() string {
	switch {
	case d.Got < 0:
		return fmt.Sprintf("%s: missing (want %d)", d.Move, d.Want)
	case d.Want < 0:
		return fmt.Sprintf("%s: extra (got %d)", d.Move, d.Got)
	}
	return fmt.Sprintf("%s: got %d, want %d", d.Move, d.Got, d.Want)
}

// CompareDivide lists the root moves where got and want differ, sorted by
// move text.
func CompareDivide(got, want map[string]int64) []Diff {
	seen := make(map[string]struct{}, len(got)+len(want))
	for _, k := range maps.Keys(got) {
		seen[k] = struct{}{}
	}
	for _, k := range maps.Keys(want) {
		seen[k] = struct{}{}
	}
	moves := maps.Keys(seen)
	slices.Sort(moves)

	var diffs []Diff
	for _, mv := range moves {
		g, gok := got[mv]
		w, wok := want[mv]
		if !gok {
			g = -1
		}
		if !wok {
			w = -1
		}
		if g != w {
			diffs = append(diffs, Diff{Move: mv, Got: g, Want: w})
		}
	}
	return diffs
}
