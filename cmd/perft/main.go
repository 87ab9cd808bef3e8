package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/profile"

	"github.com/hailam/perft/internal/board"
	"github.com/hailam/perft/internal/storage"
	"github.com/hailam/perft/internal/suite"
	"github.com/hailam/perft/internal/uci"
	"github.com/hailam/perft/internal/version"
)

const (
	exitOK  = 0
	exitErr = 1
)

const historyLimit = 20

var errUsage = errors.New("usage: perft [flags] <depth> [fen] | fen <fen-with-results> | file <name> | history [-clear] [fen] | uci")

type options struct {
	divide     bool
	verify     bool
	stats      bool
	history    bool
	clear      bool
	noColor    bool
	version    bool
	db         string
	cpuProfile string
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fs.BoolVar(&opts.divide, "divide", false, "print the count under each root move")
	fs.BoolVar(&opts.verify, "verify", false, "cross-check every divide against a reference generator")
	fs.BoolVar(&opts.stats, "stats", false, "count captures, castles, checks and mates among the leaves")
	fs.BoolVar(&opts.history, "history", false, "record runs in the history database")
	fs.BoolVar(&opts.clear, "clear", false, "with history: delete every recorded run")
	fs.BoolVar(&opts.noColor, "nocolor", false, "disable coloured output")
	fs.BoolVar(&opts.version, "version", false, "print version information")
	fs.StringVar(&opts.db, "db", "", "history database directory (default: per-user data dir)")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile into this directory")
	return fs
}

func main() {
	log.SetFlags(0)

	err := realMain(os.Args[1:], os.Stdout)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Println(err)
		}
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain(args []string, out io.Writer) error {
	var opts options
	fs := newFlagSet(&opts)
	flags, positional := liftFlags(fs, args)
	if err := fs.Parse(flags); err != nil {
		return err
	}

	if opts.version {
		printVersion(out, version.Get())
		return nil
	}
	if opts.noColor {
		color.NoColor = true
	}
	if opts.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.cpuProfile), profile.Quiet).Stop()
	}
	if len(positional) == 0 {
		return errUsage
	}

	mode, rest := positional[0], positional[1:]
	switch mode {
	case "uci":
		return uci.New(os.Stdin, out).Run()
	case "history":
		if opts.clear {
			return clearHistory(out, opts.db)
		}
		return showHistory(out, opts.db, strings.Join(rest, " "))
	}

	runner := suite.NewRunner(out)
	runner.Divide = opts.divide
	runner.Verify = opts.verify
	runner.Stats = opts.stats
	runner.Version = version.Get().Version
	if opts.history {
		st, err := openStorage(opts.db)
		if err != nil {
			return err
		}
		defer st.Close()
		runner.Recorder = st
	}

	switch mode {
	case "fen":
		c, err := suite.ParseLine(strings.Join(rest, " "))
		if err != nil {
			return err
		}
		_, err = runner.Run(c)
		return err
	case "file":
		if len(rest) != 1 {
			return errUsage
		}
		cases, err := suite.ReadFile(rest[0])
		if err != nil {
			if len(cases) == 0 {
				return err
			}
			log.Printf("Warning: skipping unreadable lines: %v", err)
		}
		runner.Progress = os.Stderr
		runner.RunAll(cases)
		return nil
	default:
		depth, err := strconv.Atoi(mode)
		if err != nil {
			return fmt.Errorf("%w: bad depth %q", errUsage, mode)
		}
		fen := board.StartFEN
		if len(rest) > 0 {
			fen = strings.Join(rest, " ")
		}
		_, err = runner.Run(suite.DepthCase(fen, depth))
		return err
	}
}

// printVersion writes the banner to out. Missing metadata is a diagnostic
// and goes to the log instead.
func printVersion(out io.Writer, info version.Info) {
	if !info.Available {
		log.Println(info.Banner())
		return
	}
	fmt.Fprintln(out, info.Banner())
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}

func clearHistory(out io.Writer, dir string) error {
	st, err := openStorage(dir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "history cleared")
	return nil
}

// showHistory lists the most recent runs, optionally for one position.
func showHistory(out io.Writer, dir, fen string) error {
	if fen != "" {
		setup, err := board.ParseSetup(fen)
		if err != nil {
			return err
		}
		fen = setup.FEN()
	}

	st, err := openStorage(dir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.History(fen, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}

	for _, run := range runs {
		status := "-"
		if run.Checked {
			status = color.GreenString("PASS")
			if !run.Passed() {
				status = color.RedString("FAIL")
			}
		}
		fmt.Fprintf(out, "%-16s depth %d  %14s nodes  %-4s  %s\n",
			humanize.Time(run.StartedAt), run.Depth, humanize.Comma(run.Nodes), status, run.FEN)
	}
	return nil
}
