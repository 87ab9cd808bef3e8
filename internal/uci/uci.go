// Package uci serves perft counts over a UCI-style text protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/perft/internal/board"
	"github.com/hailam/perft/internal/perft"
)

// UCI implements the subset of the Universal Chess Interface needed to set
// up positions and count them.
type UCI struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	position *board.Position

	// Name is reported in reply to "uci".
	Name string
}

// New creates a protocol handler reading commands from in.
func New(in io.Reader, out io.Writer) *UCI {
	return &UCI{
		in:       in,
		out:      out,
		errOut:   os.Stderr,
		position: board.StartPosition(),
		Name:     "perft",
	}
}

// Position returns the current position.
func (u *UCI) Position() *board.Position {
	return u.position
}

// Run reads commands until "quit" or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.position = board.StartPosition()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "perft":
			u.handlePerft(args)
		case "divide":
			u.handleDivide(args)
		case "d":
			fmt.Fprint(u.out, u.position.String())
		case "quit":
			return nil
		default:
			fmt.Fprintf(u.errOut, "info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	fmt.Fprintf(u.out, "id name %s\n", u.Name)
	fmt.Fprintln(u.out, "id author hailam")
	fmt.Fprintln(u.out, "uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// The current position is left untouched when any part is invalid.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.StartPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err == nil {
			err = pos.Validate()
		}
		if err != nil {
			fmt.Fprintf(u.errOut, "info string Invalid FEN: %v\n", err)
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			m, err := pos.FindMove(moveStr)
			if err != nil {
				fmt.Fprintf(u.errOut, "info string Invalid move: %s\n", moveStr)
				return
			}
			pos.ApplyMove(m)
		}
	}

	u.position = pos
}

// handleGo supports only "go perft <depth>", answered with a divide.
func (u *UCI) handleGo(args []string) {
	if len(args) == 0 || args[0] != "perft" {
		fmt.Fprintln(u.errOut, "info string only go perft is supported")
		return
	}
	u.handleDivide(args[1:])
}

// handlePerft prints the leaf count of the current position.
func (u *UCI) handlePerft(args []string) {
	depth, ok := u.parseDepth(args)
	if !ok {
		return
	}

	start := time.Now()
	nodes := perft.CountLeaves(u.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}

// handleDivide prints the leaf count under each legal move.
func (u *UCI) handleDivide(args []string) {
	depth, ok := u.parseDepth(args)
	if !ok {
		return
	}

	div := perft.Divide(u.position, depth)
	for _, e := range div.Entries {
		fmt.Fprintf(u.out, "%s: %d\n", e.Move, e.Nodes)
	}
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "Nodes searched: %d\n", div.Total)
}

func (u *UCI) parseDepth(args []string) (int, bool) {
	if len(args) == 0 {
		return 1, true
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(u.errOut, "info string Invalid depth: %s\n", args[0])
		return 0, false
	}
	return depth, true
}
