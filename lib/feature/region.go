//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedRegion is returned when a region line cannot be parsed.
var ErrMalformedRegion = errors.New("malformed region")

// Region is a closed interval [Start,End] on a chromosome.
type Region struct {
	Chrom      string
	Start, End int
}

// ParseRegion parses the first three columns of a tabulated line. Spans with
// End before Start, as written by the chimeric extractor for reads whose
// segments overlap more on the read than on the reference, are returned as is.
func ParseRegion(line string) (r Region, err error) {
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) < 3 {
		return r, errors.Wrapf(ErrMalformedRegion, "%d fields, expected at least 3", len(fields))
	}
	r.Chrom = fields[0]
	if r.Start, err = strconv.Atoi(fields[1]); err != nil {
		return r, errors.Wrapf(ErrMalformedRegion, "start %q", fields[1])
	}
	if r.End, err = strconv.Atoi(fields[2]); err != nil {
		return r, errors.Wrapf(ErrMalformedRegion, "end %q", fields[2])
	}
	return r, nil
}

// Reversed reports whether r ends before it starts.
func (r Region) Reversed() bool {
	return r.End < r.Start
}

// ReadRegions parses all region lines of r.
func ReadRegions(r io.Reader) (regions []Region, err error) {
	var nLine int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		nLine++
		if scanner.Text() == "" {
			continue
		}
		rg, err := ParseRegion(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", nLine)
		}
		regions = append(regions, rg)
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return regions, nil
}

// MergeRegions keeps regions with a length strictly between minLength and
// maxLength (no upper bound if maxLength is 0), widens them by extend on both
// sides and merges overlapping ones. Chromosomes are returned in order of first appearance.
// Reversed regions never pass the length filter. The number of merges and of
// dropped reversed regions are also returned.
func MergeRegions(regions []Region, extend, minLength, maxLength int) (merged []Region, nMerge, nReversed int) {
	var chroms []string
	byChrom := make(map[string][]Region)
	for _, r := range regions {
		if r.Reversed() {
			nReversed++
			continue
		}
		l := r.End - r.Start
		if l <= minLength || (maxLength > 0 && l >= maxLength) {
			continue
		}
		if _, ok := byChrom[r.Chrom]; !ok {
			chroms = append(chroms, r.Chrom)
		}
		r.Start -= extend
		if r.Start < 0 {
			r.Start = 0
		}
		r.End += extend
		byChrom[r.Chrom] = append(byChrom[r.Chrom], r)
	}
	for _, chrom := range chroms {
		rs := byChrom[chrom]
		sort.Slice(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })
		current := rs[0]
		for _, r := range rs[1:] {
			if current.End > r.Start {
				if r.End > current.End {
					current.End = r.End
				}
				nMerge++
			} else {
				merged = append(merged, current)
				current = r
			}
		}
		merged = append(merged, current)
	}
	return merged, nMerge, nReversed
}
