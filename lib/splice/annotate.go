//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package splice

import (
	"sort"
	"strconv"
	"strings"

	"git.sr.ht/~vejnar/Chimera/lib/feature"
)

// Outcome tells whether a junction was annotated or why it was dropped.
type Outcome int

const (
	OutcomeAnnotated Outcome = iota
	OutcomeMiss
	OutcomeCrossGene
	OutcomeSingleDisabled
	OutcomeSingleOutside
)

// Annotation is one output line. For single matches, the unanchored side
// holds the negated junction coordinate and no exon is listed.
type Annotation struct {
	Chrom      string
	Start, End int
	Kind       Kind
	Strand     string
	Gene       string
	ExonStarts []int
	ExonEnds   []int
	Depth      int
}

// String formats the annotation as a tabulated line without newline.
func (a Annotation) String() string {
	return strings.Join([]string{
		a.Chrom,
		strconv.Itoa(a.Start),
		strconv.Itoa(a.End),
		a.Kind.String(),
		a.Strand,
		joinInts(a.ExonStarts),
		joinInts(a.ExonEnds),
		strconv.Itoa(a.Depth),
	}, "\t")
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}

// Annotator classifies junctions against a boundary index. It only reads
// the index and can be shared by several goroutines.
type Annotator struct {
	Index       *feature.BoundaryIndex
	AllowSingle bool
}

// Annotate classifies j. The annotation is only meaningful when the outcome
// is OutcomeAnnotated.
func (a *Annotator) Annotate(j Junction) (Annotation, Kind, Outcome) {
	siteS, okS := a.Index.SiteAt(j.Chrom, j.Start)
	siteE, okE := a.Index.SiteAt(j.Chrom, j.End)
	startStart := okS && siteS.Kind == feature.BoundaryStart
	startEnd := okS && siteS.Kind == feature.BoundaryEnd
	endStart := okE && siteE.Kind == feature.BoundaryStart
	endEnd := okE && siteE.Kind == feature.BoundaryEnd

	kind := Classify(startStart, endEnd, startEnd, endStart)
	switch {
	case kind.Double():
		ann, outcome := a.double(j, kind, siteS, siteE)
		return ann, kind, outcome
	case kind.Single():
		if !a.AllowSingle {
			return Annotation{}, kind, OutcomeSingleDisabled
		}
		// Which side is anchored
		onStart := startEnd
		if kind == Intron1 {
			onStart = startStart
		}
		site := siteE
		if onStart {
			site = siteS
		}
		ann, outcome := a.single(j, kind, site, onStart)
		return ann, kind, outcome
	default:
		return Annotation{}, kind, OutcomeMiss
	}
}

func (a *Annotator) double(j Junction, kind Kind, siteS, siteE feature.Site) (Annotation, Outcome) {
	g := a.Index.Gene(siteS)
	if g.Name != a.Index.Gene(siteE).Name {
		return Annotation{}, OutcomeCrossGene
	}
	lo, hi := siteS.Coord, siteE.Coord
	if lo > hi {
		lo, hi = hi, lo
	}
	return Annotation{
		Chrom:      j.Chrom,
		Start:      lo,
		End:        hi,
		Kind:       kind,
		Strand:     g.StrandSymbol(),
		Gene:       g.Name,
		ExonStarts: within(g.ExonStarts, lo, hi),
		ExonEnds:   within(g.ExonEnds, lo, hi),
		Depth:      j.Depth,
	}, OutcomeAnnotated
}

func (a *Annotator) single(j Junction, kind Kind, site feature.Site, onStart bool) (Annotation, Outcome) {
	g := a.Index.Gene(site)
	if !a.nearTranscript(j.Start, g) || !a.nearTranscript(j.End, g) {
		return Annotation{}, OutcomeSingleOutside
	}
	ann := Annotation{Chrom: j.Chrom, Kind: kind, Strand: g.StrandSymbol(), Gene: g.Name, Depth: j.Depth}
	if onStart {
		ann.Start, ann.End = site.Coord, -j.End
	} else {
		ann.Start, ann.End = -j.Start, site.Coord
	}
	return ann, OutcomeAnnotated
}

// nearTranscript reports whether [pos-Extend,pos+Extend] overlaps the transcript of g.
func (a *Annotator) nearTranscript(pos int, g *feature.GenePred) bool {
	return pos-a.Index.Extend <= g.TxEnd && pos+a.Index.Extend >= g.TxStart
}

// within returns the sorted coordinates of coords in [lo,hi].
func within(coords []int, lo, hi int) []int {
	var r []int
	for _, c := range coords {
		if c >= lo && c <= hi {
			r = append(r, c)
		}
	}
	sort.Ints(r)
	return r
}
