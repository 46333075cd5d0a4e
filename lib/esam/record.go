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
	"strings"

	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// ErrMalformedRecord is returned when a SAM line cannot be parsed.
var ErrMalformedRecord = errors.New("malformed SAM record")

const (
	// HeaderPrefix starts every SAM header line.
	HeaderPrefix = "@"
	// TagSA holds the supplementary alignments of a read.
	TagSA = "SA"

	samMandatoryFields = 11
)

// Record is a partial view of a SAM line. The CIGAR string is parsed on
// demand and the original line is kept to be written back unchanged.
type Record struct {
	Name     string
	Flags    sam.Flags
	Chrom    string
	Pos      int
	RawCigar string
	Seq      string
	Tags     map[string][]string
	Line     string

	cigar  sam.Cigar
	parsed bool
}

// IsHeader reports whether line is a SAM header line.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, HeaderPrefix)
}

// ParseRecord parses one SAM alignment line.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < samMandatoryFields {
		return nil, errors.Wrapf(ErrMalformedRecord, "%d fields, expected at least %d", len(fields), samMandatoryFields)
	}
	flags, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "flag %q", fields[1])
	}
	pos, err := strconv.ParseUint(fields[3], 10, 63)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "position %q", fields[3])
	}
	r := &Record{
		Name:     fields[0],
		Flags:    sam.Flags(flags),
		Chrom:    fields[2],
		Pos:      int(pos),
		RawCigar: fields[5],
		Seq:      fields[9],
		Tags:     make(map[string][]string, len(fields)-samMandatoryFields),
		Line:     line,
	}
	for _, f := range fields[samMandatoryFields:] {
		parts := strings.Split(f, ":")
		// Unknown or partial tags are kept out of the table
		if len(parts) < 2 {
			continue
		}
		// Type is dropped
		r.Tags[parts[0]] = parts[2:]
	}
	return r, nil
}

// Cigar returns the parsed CIGAR of the record.
func (r *Record) Cigar() (sam.Cigar, error) {
	if !r.parsed {
		c, err := ParseCigar(r.RawCigar)
		if err != nil {
			return nil, err
		}
		r.cigar = c
		r.parsed = true
	}
	return r.cigar, nil
}

// Tag returns the value of the tag name, rejoining values split on ':'.
func (r *Record) Tag(name string) (string, bool) {
	v, ok := r.Tags[name]
	if !ok {
		return "", false
	}
	return strings.Join(v, ":"), true
}

func (r *Record) Unmapped() bool      { return r.Flags&sam.Unmapped != 0 }
func (r *Record) Reverse() bool       { return r.Flags&sam.Reverse != 0 }
func (r *Record) Supplementary() bool { return r.Flags&sam.Supplementary != 0 }

// Strand returns 1 for forward and -1 for reverse alignments.
func (r *Record) Strand() int8 {
	if r.Reverse() {
		return -1
	}
	return 1
}

// Segment returns the reference and read spans of the record.
func (r *Record) Segment() (Segment, error) {
	c, err := r.Cigar()
	if err != nil {
		return Segment{}, err
	}
	return NewSegment(r.Pos, c), nil
}

// SAEntry is one supplementary alignment listed in the SA tag.
type SAEntry struct {
	Chrom    string
	Pos      int
	Strand   int8
	RawCigar string
	MapQ     int
	NM       int
}

// ParseSA parses the value of an SA tag:
// "chrom,pos,strand,CIGAR,mapQ,NM;" repeated.
func ParseSA(value string) (entries []SAEntry, err error) {
	for _, raw := range strings.Split(value, ";") {
		if raw == "" {
			continue
		}
		fields := strings.Split(raw, ",")
		if len(fields) < 6 {
			return nil, errors.Wrapf(ErrMalformedRecord, "SA entry %q", raw)
		}
		e := SAEntry{Chrom: fields[0], RawCigar: fields[3]}
		if e.Pos, err = strconv.Atoi(fields[1]); err != nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "SA position %q", fields[1])
		}
		switch fields[2] {
		case "+":
			e.Strand = 1
		case "-":
			e.Strand = -1
		default:
			return nil, errors.Wrapf(ErrMalformedRecord, "SA strand %q", fields[2])
		}
		if e.MapQ, err = strconv.Atoi(fields[4]); err != nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "SA mapping quality %q", fields[4])
		}
		if e.NM, err = strconv.Atoi(fields[5]); err != nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "SA edit distance %q", fields[5])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Segment returns the reference and read spans of the supplementary alignment.
func (e SAEntry) Segment() (Segment, error) {
	c, err := ParseCigar(e.RawCigar)
	if err != nil {
		return Segment{}, err
	}
	return NewSegment(e.Pos, c), nil
}
