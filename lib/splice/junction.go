//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package splice

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedJunction is returned when a junction line cannot be parsed.
var ErrMalformedJunction = errors.New("malformed junction")

// Junction is a candidate junction with its read support.
type Junction struct {
	Chrom      string
	Start, End int
	Depth      int
}

// ParseJunction parses a "chrom start end depth" tabulated line.
func ParseJunction(line string) (j Junction, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 4 {
		return j, errors.Wrapf(ErrMalformedJunction, "%d fields, expected 4", len(fields))
	}
	j.Chrom = fields[0]
	for i, dst := range []*int{&j.Start, &j.End, &j.Depth} {
		if *dst, err = strconv.Atoi(fields[1+i]); err != nil {
			return j, errors.Wrapf(ErrMalformedJunction, "column %d: %q", 2+i, fields[1+i])
		}
	}
	if j.Start > j.End {
		return j, errors.Wrapf(ErrMalformedJunction, "start %d after end %d", j.Start, j.End)
	}
	return j, nil
}
