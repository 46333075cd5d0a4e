//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package chimeric finds back-splice junctions in reads split by the aligner
// into a primary and supplementary alignments.
package chimeric

import (
	"sort"

	"github.com/pkg/errors"

	"git.sr.ht/~vejnar/Chimera/lib/esam"
)

// SplitEvent is a candidate junction implied by a chimeric read.
type SplitEvent struct {
	Start, End int
}

// Outcome tells why a record did or did not produce a SplitEvent.
type Outcome int

const (
	OutcomeSplit Outcome = iota
	OutcomeSkipped
	OutcomeNoSA
	OutcomeNoCandidate
	OutcomeAmbiguous
)

// Segments returns the primary segment and all supplementary segments
// compatible with it (same chromosome and strand), ordered by read start.
func Segments(r *esam.Record, sa []esam.SAEntry) ([]esam.Segment, error) {
	primary, err := r.Segment()
	if err != nil {
		return nil, err
	}
	segs := make([]esam.Segment, 0, len(sa)+1)
	for _, e := range sa {
		if e.Chrom != r.Chrom || e.Strand != r.Strand() {
			continue
		}
		s, err := e.Segment()
		if err != nil {
			return nil, err
		}
		segs = append(segs, s)
	}
	segs = append(segs, primary)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].QueryStart < segs[j].QueryStart })
	return segs, nil
}

// Candidates returns one candidate junction per consecutive pair of segments
// overlapping on the reference while contiguous or overlapping on the read.
func Candidates(segs []esam.Segment) (events []SplitEvent) {
	for i := 1; i < len(segs); i++ {
		last, this := segs[i-1], segs[i]
		if this.RefStart < last.RefEnd && this.QueryStart <= last.QueryEnd {
			events = append(events, SplitEvent{
				Start: this.RefStart,
				End:   last.RefEnd - (last.QueryEnd - this.QueryStart),
			})
		}
	}
	return
}

// Reconcile decides whether r and its supplementary alignments form exactly
// one back-splice junction.
func Reconcile(r *esam.Record) (SplitEvent, Outcome, error) {
	if r.Supplementary() || r.Unmapped() {
		return SplitEvent{}, OutcomeSkipped, nil
	}
	value, ok := r.Tag(esam.TagSA)
	if !ok {
		return SplitEvent{}, OutcomeNoSA, nil
	}
	sa, err := esam.ParseSA(value)
	if err != nil {
		return SplitEvent{}, OutcomeSkipped, errors.Wrapf(err, "read %s", r.Name)
	}
	segs, err := Segments(r, sa)
	if err != nil {
		return SplitEvent{}, OutcomeSkipped, errors.Wrapf(err, "read %s", r.Name)
	}
	// More than one junction per read is not resolved
	events := Candidates(segs)
	switch len(events) {
	case 0:
		return SplitEvent{}, OutcomeNoCandidate, nil
	case 1:
		return events[0], OutcomeSplit, nil
	default:
		return SplitEvent{}, OutcomeAmbiguous, nil
	}
}
