// Command hanoimoves prints the move sequence that solves a Towers of Hanoi puzzle.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"demolab/sim/hanoi"
)

type options struct {
	disks  int
	from   int
	to     int
	format string
}

func main() {
	var opts options
	flag.IntVar(&opts.disks, "disks", 8, "Number of disks.")
	flag.IntVar(&opts.from, "from", 0, "Source peg (0-2).")
	flag.IntVar(&opts.to, "to", 2, "Destination peg (0-2).")
	flag.StringVar(&opts.format, "format", "text", "Output format: text or json.")
	flag.Parse()

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

type report struct {
	Disks int          `json:"disks"`
	From  int          `json:"from"`
	To    int          `json:"to"`
	Count int          `json:"count"`
	Moves []hanoi.Move `json:"moves"`
}

func run(w io.Writer, opts options) error {
	switch {
	case opts.disks < 0:
		return fmt.Errorf("disks must be >= 0, got %d", opts.disks)
	case opts.disks > hanoi.MaxDisks:
		return fmt.Errorf("disks %d would print %d moves; limit is %d", opts.disks, uint64(1)<<opts.disks-1, hanoi.MaxDisks)
	case opts.from < 0 || opts.from >= hanoi.NumPegs || opts.to < 0 || opts.to >= hanoi.NumPegs:
		return fmt.Errorf("pegs must be in [0,%d): from=%d to=%d", hanoi.NumPegs, opts.from, opts.to)
	case opts.from == opts.to:
		return errors.New("from and to must differ")
	}

	moves := hanoi.SolveFrom(opts.disks, opts.from, opts.to)
	switch opts.format {
	case "text":
		for i, m := range moves {
			if _, err := fmt.Fprintf(w, "%d %s\n", i+1, m); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if moves == nil {
			moves = []hanoi.Move{}
		}
		return enc.Encode(report{
			Disks: opts.disks,
			From:  opts.from,
			To:    opts.to,
			Count: len(moves),
			Moves: moves,
		})
	}
	return fmt.Errorf("unknown format %q", opts.format)
}
