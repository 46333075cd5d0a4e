//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package esam

import (
	"strconv"

	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// ErrMalformedCigar is returned when a CIGAR string cannot be parsed.
var ErrMalformedCigar = errors.New("malformed CIGAR")

// Largest operation length storable in a sam.CigarOp.
const maxCigarOpLen = 1<<28 - 1

var cigarOpLookup = map[byte]sam.CigarOpType{
	'M': sam.CigarMatch,
	'I': sam.CigarInsertion,
	'D': sam.CigarDeletion,
	'N': sam.CigarSkipped,
	'S': sam.CigarSoftClipped,
	'H': sam.CigarHardClipped,
	'=': sam.CigarEqual,
	'X': sam.CigarMismatch,
}

// Segment is the span of one alignment on the reference and on the read.
type Segment struct {
	RefStart, RefEnd     int
	QueryStart, QueryEnd int
}

// ParseCigar parses a CIGAR string such as "18S133M". Padding and back
// operations are not accepted.
func ParseCigar(raw string) (sam.Cigar, error) {
	if raw == "*" {
		return nil, nil
	}
	var c sam.Cigar
	start := 0
	for i := 0; i < len(raw); i++ {
		l := raw[i]
		if l >= '0' && l <= '9' {
			continue
		}
		t, ok := cigarOpLookup[l]
		if !ok {
			return nil, errors.Wrapf(ErrMalformedCigar, "%q: unknown operation %q", raw, l)
		}
		n, err := strconv.Atoi(raw[start:i])
		if err != nil || n > maxCigarOpLen {
			return nil, errors.Wrapf(ErrMalformedCigar, "%q: invalid length %q", raw, raw[start:i])
		}
		c = append(c, sam.NewCigarOp(t, n))
		start = i + 1
	}
	if start != len(raw) {
		return nil, errors.Wrapf(ErrMalformedCigar, "%q: missing operation after %q", raw, raw[start:])
	}
	return c, nil
}

// ReferenceSpan returns the reference interval covered by an alignment
// starting at start.
func ReferenceSpan(start int, c sam.Cigar) (int, int) {
	var offset int
	for _, co := range c {
		offset += co.Len() * co.Type().Consumes().Reference
	}
	return start, start + offset
}

// QuerySpan returns the read interval covered by the aligned bases. A leading
// soft clip shifts the interval start.
func QuerySpan(c sam.Cigar) (int, int) {
	var start, offset int
	for i, co := range c {
		switch co.Type() {
		case sam.CigarMatch, sam.CigarInsertion:
			offset += co.Len()
		case sam.CigarSoftClipped:
			if i == 0 {
				start += co.Len()
			}
		}
	}
	return start, start + offset
}

// NewSegment computes the Segment of an alignment starting at pos.
func NewSegment(pos int, c sam.Cigar) Segment {
	var s Segment
	s.RefStart, s.RefEnd = ReferenceSpan(pos, c)
	s.QueryStart, s.QueryEnd = QuerySpan(c)
	return s
}
