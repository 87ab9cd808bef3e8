// Package perft counts the leaf nodes of the legal move tree.
package perft

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/perft/internal/board"
)

// CountLeaves returns the number of leaf positions reachable from p in
// exactly depth plies. A depth of zero or less is a single leaf.
// p is left unchanged.
func CountLeaves(p *board.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}

	moves := p.GenerateMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	snap := p.Snapshot()
	for _, m := range moves {
		p.ApplyMove(m)
		nodes += CountLeaves(p, depth-1)
		p.Restore(snap)
	}
	return nodes
}

// Entry is the subtree count below one root move.
type Entry struct {
	Move  board.Move
	Nodes int64
}

// Division is the per-root-move breakdown of a count.
type Division struct {
	Depth   int
	Entries []Entry
	Total   int64
}

// Divide counts the leaves below each legal root move separately.
// Entries are sorted by move text.
func Divide(p *board.Position, depth int) Division {
	d := Division{Depth: depth}
	if depth <= 0 {
		d.Total = 1
		return d
	}

	byText := make(map[string]Entry)
	snap := p.Snapshot()
	for _, m := range p.GenerateMoves() {
		p.ApplyMove(m)
		n := CountLeaves(p, depth-1)
		p.Restore(snap)

		byText[m.String()] = Entry{Move: m, Nodes: n}
		d.Total += n
	}

	keys := maps.Keys(byText)
	slices.Sort(keys)
	for _, k := range keys {
		d.Entries = append(d.Entries, byText[k])
	}
	return d
}

// Counts maps move text to subtree size.
func (d Division) Counts() map[string]int64 {
	counts := make(map[string]int64, len(d.Entries))
	for _, e := range d.Entries {
		counts[e.Move.String()] = e.Nodes
	}
	return counts
}
