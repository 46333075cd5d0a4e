//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package chimeric

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/Chimera/lib/esam"
)

const maxLineLength = 16 * 1024 * 1024

// Stats counts records by outcome.
type Stats struct {
	Records     uint64 `json:"records"`
	Headers     uint64 `json:"headers"`
	Skipped     uint64 `json:"skipped"`
	NoSA        uint64 `json:"no_sa"`
	NoCandidate uint64 `json:"no_candidate"`
	Ambiguous   uint64 `json:"ambiguous"`
	Splits      uint64 `json:"splits"`
	SplitReads  int    `json:"split_reads"`

	reads set.Interface
}

func NewStats() *Stats {
	return &Stats{reads: set.New(set.NonThreadSafe)}
}

func (s *Stats) add(o Outcome, name string) {
	switch o {
	case OutcomeSplit:
		s.Splits++
		s.reads.Add(name)
		s.SplitReads = s.reads.Size()
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeNoSA:
		s.NoSA++
	case OutcomeNoCandidate:
		s.NoCandidate++
	case OutcomeAmbiguous:
		s.Ambiguous++
	}
}

// Extractor streams SAM lines, writing header lines and reads with a single
// back-splice junction to Filtered, and the junction of each such read to
// Pairs. Every input line is copied to Passthrough when set.
type Extractor struct {
	Filtered    io.Writer
	Pairs       io.Writer
	Passthrough io.Writer
	Stats       *Stats
}

// Run processes r until EOF. Any malformed line aborts the run.
func (x *Extractor) Run(r io.Reader) error {
	if x.Stats == nil {
		x.Stats = NewStats()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 128*1024), maxLineLength)
	var nLine int
	for scanner.Scan() {
		nLine++
		line := scanner.Text()
		if x.Passthrough != nil {
			if _, err := fmt.Fprintln(x.Passthrough, line); err != nil {
				return err
			}
		}
		if esam.IsHeader(line) {
			x.Stats.Headers++
			if _, err := fmt.Fprintln(x.Filtered, line); err != nil {
				return err
			}
			continue
		}
		x.Stats.Records++
		rec, err := esam.ParseRecord(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", nLine)
		}
		ev, outcome, err := Reconcile(rec)
		if err != nil {
			return errors.Wrapf(err, "line %d", nLine)
		}
		x.Stats.add(outcome, rec.Name)
		if outcome != OutcomeSplit {
			continue
		}
		if _, err := fmt.Fprintf(x.Pairs, "%s\t%d\t%d\t%s\n", rec.Chrom, ev.Start, ev.End, rec.Name); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(x.Filtered, rec.Line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
