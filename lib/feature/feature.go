//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedGenePred is returned when a genePred line cannot be parsed.
var ErrMalformedGenePred = errors.New("malformed genePred")

const genePredFields = 11

// GenePred is one transcript of a genePred annotation file.
type GenePred struct {
	Name       string
	ID         string
	Chrom      string
	Strand     int8
	TxStart    int
	TxEnd      int
	CdsStart   int
	CdsEnd     int
	ExonCount  int
	ExonStarts []int
	ExonEnds   []int
}

// StrandSymbol returns "+" or "-".
func (g *GenePred) StrandSymbol() string {
	if g.Strand == -1 {
		return "-"
	}
	return "+"
}

// ParseGenePred parses one tabulated genePred line.
func ParseGenePred(line string) (g GenePred, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) < genePredFields {
		return g, errors.Wrapf(ErrMalformedGenePred, "%d fields, expected %d", len(fields), genePredFields)
	}
	g.Name, g.ID, g.Chrom = fields[0], fields[1], fields[2]
	switch fields[3] {
	case "+":
		g.Strand = 1
	case "-":
		g.Strand = -1
	default:
		return g, errors.Wrapf(ErrMalformedGenePred, "strand %q", fields[3])
	}
	for i, dst := range []*int{&g.TxStart, &g.TxEnd, &g.CdsStart, &g.CdsEnd, &g.ExonCount} {
		if *dst, err = strconv.Atoi(fields[4+i]); err != nil {
			return g, errors.Wrapf(ErrMalformedGenePred, "column %d: %q", 5+i, fields[4+i])
		}
	}
	if g.ExonStarts, err = parseCoords(fields[9]); err != nil {
		return g, err
	}
	if g.ExonEnds, err = parseCoords(fields[10]); err != nil {
		return g, err
	}
	if len(g.ExonStarts) != g.ExonCount || len(g.ExonEnds) != g.ExonCount {
		return g, errors.Wrapf(ErrMalformedGenePred, "%s: %d exons, %d starts, %d ends", g.Name, g.ExonCount, len(g.ExonStarts), len(g.ExonEnds))
	}
	return g, nil
}

// parseCoords parses a comma separated list with an optional trailing comma.
func parseCoords(raw string) (coords []int, err error) {
	for _, c := range strings.Split(raw, ",") {
		if c == "" {
			continue
		}
		n, err := strconv.Atoi(c)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedGenePred, "coordinate %q", c)
		}
		coords = append(coords, n)
	}
	return coords, nil
}

// ReadGenePreds parses all genePred lines of r.
func ReadGenePreds(r io.Reader) (genes []GenePred, err error) {
	var nLine int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		nLine++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := ParseGenePred(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", nLine)
		}
		genes = append(genes, g)
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return genes, nil
}
