package suite

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/perft/internal/board"
	"github.com/hailam/perft/internal/perft"
	"github.com/hailam/perft/internal/storage"
)

// Recorder persists finished counts and recalls the latest one.
type Recorder interface {
	RecordRun(run storage.Run) error
	LastRun(fen string, depth int) (storage.Run, bool, error)
}

// Outcome is the result of counting one depth.
type Outcome struct {
	Depth    int
	Nodes    int64
	Expected int64
	Checked  bool
	Elapsed  time.Duration
	Diffs    []perft.Diff // root moves disagreeing with the reference generator
}

// Passed reports whether the count matched its expectation.
func (o Outcome) Passed() bool {
	return (!o.Checked || o.Nodes == o.Expected) && len(o.Diffs) == 0
}

// Result collects the outcomes of one case.
type Result struct {
	Case     Case
	Outcomes []Outcome
}

// Passed reports whether every depth passed.
func (r Result) Passed() bool {
	for _, o := range r.Outcomes {
		if !o.Passed() {
			return false
		}
	}
	return true
}

// Summary totals a suite run.
type Summary struct {
	Cases  int
	Depths int
	Passed int
	Failed int
	Errors int
}

// Runner counts cases and reports each depth to Out.
type Runner struct {
	Out io.Writer

	// Progress receives a progress bar during RunAll when non-nil.
	Progress io.Writer

	Divide   bool     // print per-root-move counts
	Verify   bool     // diff every divide against the reference generator
	Stats    bool     // break each count down by final move kind
	Recorder Recorder // optional run history
	Version  string   // stored with recorded runs

	printer *message.Printer
	pass    func(a ...interface{}) string
	fail    func(a ...interface{}) string
	dim     func(a ...interface{}) string
}

// NewRunner returns a Runner writing to out.
func NewRunner(out io.Writer) *Runner {
	return &Runner{
		Out:     out,
		printer: message.NewPrinter(language.English),
		pass:    color.New(color.FgGreen, color.Bold).SprintFunc(),
		fail:    color.New(color.FgRed, color.Bold).SprintFunc(),
		dim:     color.New(color.Faint).SprintFunc(),
	}
}

// Run counts every expected depth of c.
func (r *Runner) Run(c Case) (Result, error) {
	res := Result{Case: c}

	pos, err := board.ParseFEN(c.FEN)
	if err != nil {
		return res, err
	}
	if err := pos.Validate(); err != nil {
		return res, err
	}

	r.printer.Fprintf(r.Out, "%s\n", pos.FEN())
	for _, exp := range c.Expected {
		o := r.count(pos, exp)
		res.Outcomes = append(res.Outcomes, o)
		r.record(pos.FEN(), o)
	}
	return res, nil
}

func (r *Runner) count(pos *board.Position, exp Expectation) Outcome {
	o := Outcome{Depth: exp.Depth, Expected: exp.Nodes, Checked: exp.Checked}

	var div perft.Division
	start := time.Now()
	if r.Divide || r.Verify {
		div = perft.Divide(pos, exp.Depth)
		o.Nodes = div.Total
	} else {
		o.Nodes = perft.CountLeaves(pos, exp.Depth)
	}
	o.Elapsed = time.Since(start)

	if r.Divide {
		for _, e := range div.Entries {
			r.printer.Fprintf(r.Out, "  %s: %d\n", e.Move, e.Nodes)
		}
	}

	if r.Verify && exp.Depth > 0 {
		ref, err := perft.ReferenceDivide(pos, exp.Depth)
		if err != nil {
			log.Printf("reference check skipped: %v", err)
		} else {
			o.Diffs = perft.CompareDivide(div.Counts(), ref)
			if !o.Checked {
				for _, n := range ref {
					o.Expected += n
				}
				o.Checked = true
			}
		}
	}

	r.report(o)
	if r.Stats {
		r.reportStats(perft.CountStats(pos, exp.Depth))
	}
	return o
}

func (r *Runner) reportStats(s perft.Stats) {
	r.printer.Fprintf(r.Out, "    captures %d, e.p. %d, castles %d, promotions %d, checks %d, mates %d\n",
		s.Captures, s.EnPassant, s.Castles, s.Promotions, s.Checks, s.Checkmates)
}

func (r *Runner) report(o Outcome) {
	timing := r.dim(r.printer.Sprintf("(%.3fs, %d nps)", o.Elapsed.Seconds(), nps(o.Nodes, o.Elapsed)))

	switch {
	case !o.Checked && len(o.Diffs) == 0:
		r.printer.Fprintf(r.Out, "  depth %d: %d nodes %s\n", o.Depth, o.Nodes, timing)
	case o.Passed():
		r.printer.Fprintf(r.Out, "  depth %d: %d nodes %s %s\n", o.Depth, o.Nodes, r.pass("PASS"), timing)
	case !o.Checked || o.Nodes == o.Expected:
		r.printer.Fprintf(r.Out, "  depth %d: %d nodes %s %d root moves differ %s\n",
			o.Depth, o.Nodes, r.fail("FAIL"), len(o.Diffs), timing)
	default:
		r.printer.Fprintf(r.Out, "  depth %d: %d nodes %s expected %d (%+d) %s\n",
			o.Depth, o.Nodes, r.fail("FAIL"), o.Expected, o.Nodes-o.Expected, timing)
	}

	for _, d := range o.Diffs {
		fmt.Fprintf(r.Out, "    %s %s\n", r.fail("diff"), d)
	}
}

func (r *Runner) record(fen string, o Outcome) {
	if r.Recorder == nil {
		return
	}

	prev, ok, err := r.Recorder.LastRun(fen, o.Depth)
	if err != nil {
		log.Printf("Warning: history lookup failed: %v", err)
	} else if ok && prev.Nodes != o.Nodes {
		r.printer.Fprintf(r.Out, "    %s previous run counted %d (%+d)\n",
			r.fail("CHANGED"), prev.Nodes, o.Nodes-prev.Nodes)
	}

	err = r.Recorder.RecordRun(storage.Run{
		FEN:       fen,
		Depth:     o.Depth,
		Nodes:     o.Nodes,
		Expected:  o.Expected,
		Checked:   o.Checked,
		Elapsed:   o.Elapsed,
		StartedAt: time.Now().Add(-o.Elapsed),
		Version:   r.Version,
	})
	if err != nil {
		log.Printf("Warning: run not recorded: %v", err)
	}
}

// RunAll runs every case, reporting errors inline, and prints a summary.
func (r *Runner) RunAll(cases []Case) Summary {
	var bar *progressbar.ProgressBar
	if r.Progress != nil {
		bar = progressbar.NewOptions(len(cases),
			progressbar.OptionSetWriter(r.Progress),
			progressbar.OptionSetDescription("perft"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var sum Summary
	for _, c := range cases {
		sum.Cases++
		res, err := r.Run(c)
		if err != nil {
			sum.Errors++
			if c.Line > 0 {
				fmt.Fprintf(r.Out, "%s line %d: %v\n", r.fail("ERROR"), c.Line, err)
			} else {
				fmt.Fprintf(r.Out, "%s %v\n", r.fail("ERROR"), err)
			}
		}
		for _, o := range res.Outcomes {
			sum.Depths++
			if o.Passed() {
				sum.Passed++
			} else {
				sum.Failed++
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	r.printSummary(sum)
	return sum
}

func (r *Runner) printSummary(s Summary) {
	status := r.pass("OK")
	if s.Failed > 0 || s.Errors > 0 {
		status = r.fail("MISMATCH")
	}
	r.printer.Fprintf(r.Out, "%s: %d positions, %d depths, %d passed, %d failed, %d errors\n",
		status, s.Cases, s.Depths, s.Passed, s.Failed, s.Errors)
}

func nps(nodes int64, elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	return int64(float64(nodes) / elapsed.Seconds())
}
