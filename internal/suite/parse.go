// Package suite runs perft counts against expected results.
package suite

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hailam/perft/internal/board"
)

var (
	// ErrNoExpectations is returned for a line without expected counts.
	ErrNoExpectations = errors.New("missing expected results")
	// ErrInvalidExpectation is returned for an unreadable expected count.
	ErrInvalidExpectation = errors.New("invalid expected result")
)

// Expectation is a depth with an optional expected leaf count.
type Expectation struct {
	Depth   int
	Nodes   int64
	Checked bool // Nodes is a reference count
}

// Case is one position and the depths to count from it.
type Case struct {
	FEN      string
	Expected []Expectation
	Line     int // source line, zero when not read from a file
}

// ParseLine parses a FEN followed by expected counts in one of two forms:
//
//	<fen> ;D1 20 ;D2 400
//	<fen>,20,400
//
// In the comma form the depth is the position in the list, from 1.
func ParseLine(line string) (Case, error) {
	var (
		c   Case
		err error
	)

	switch {
	case strings.Contains(line, ";"):
		parts := strings.Split(line, ";")
		c.FEN = strings.TrimSpace(parts[0])
		c.Expected, err = parseTagged(parts[1:])
	case strings.Contains(line, ","):
		parts := strings.Split(line, ",")
		c.FEN = strings.TrimSpace(parts[0])
		c.Expected, err = parseListed(parts[1:])
	default:
		return c, fmt.Errorf("%w: %q", ErrNoExpectations, line)
	}
	if err != nil {
		return c, err
	}
	if len(c.Expected) == 0 {
		return c, fmt.Errorf("%w: %q", ErrNoExpectations, line)
	}

	if _, err := board.ParseSetup(c.FEN); err != nil {
		return c, err
	}
	return c, nil
}

// parseTagged reads "D<depth> <nodes>" fields.
func parseTagged(fields []string) ([]Expectation, error) {
	var out []Expectation
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		tokens := strings.Fields(f)
		if len(tokens) != 2 || (tokens[0][0] != 'D' && tokens[0][0] != 'd') {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExpectation, f)
		}
		depth, err := strconv.Atoi(tokens[0][1:])
		if err != nil || depth < 1 {
			return nil, fmt.Errorf("%w: bad depth in %q", ErrInvalidExpectation, f)
		}
		nodes, err := strconv.ParseInt(tokens[1], 10, 64)
		if err != nil || nodes < 0 {
			return nil, fmt.Errorf("%w: bad count in %q", ErrInvalidExpectation, f)
		}
		out = append(out, Expectation{Depth: depth, Nodes: nodes, Checked: true})
	}
	return out, nil
}

// parseListed reads bare counts for depths 1, 2, 3 and so on.
func parseListed(fields []string) ([]Expectation, error) {
	var out []Expectation
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" && i == len(fields)-1 {
			break
		}
		nodes, err := strconv.ParseInt(f, 10, 64)
		if err != nil || nodes < 0 {
			return nil, fmt.Errorf("%w: bad count %q for depth %d", ErrInvalidExpectation, f, i+1)
		}
		out = append(out, Expectation{Depth: i + 1, Nodes: nodes, Checked: true})
	}
	return out, nil
}

// Read parses one case per line. Blank lines and lines starting with '#'
// are skipped. Bad lines are reported together in the returned error while
// the good ones are still returned.
func Read(r io.Reader) ([]Case, error) {
	var (
		cases []Case
		errs  []error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		c, err := ParseLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", n, err))
			continue
		}
		c.Line = n
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return cases, errors.Join(errs...)
}

// ReadFile reads cases from a file.
func ReadFile(name string) ([]Case, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cases, err := Read(f)
	if err != nil {
		return cases, fmt.Errorf("%s: %w", name, err)
	}
	return cases, nil
}

// DepthCase builds a case counting to depth with no expected result.
func DepthCase(fen string, depth int) Case {
	return Case{FEN: fen, Expected: []Expectation{{Depth: depth}}}
}
