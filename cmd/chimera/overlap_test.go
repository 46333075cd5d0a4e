//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/Chimera/lib/esam"
	"git.sr.ht/~vejnar/Chimera/lib/feature"
)

func TestFilterOverlap(t *testing.T) {
	trees, err := feature.BuildRegionTrees([]feature.Region{
		{Chrom: "chr1", Start: 100, End: 200},
		{Chrom: "chr2", Start: 50, End: 60},
	})
	require.NoError(t, err)

	lines := []string{
		"@HD\tVN:1.6",
		"r1\t0\tchr1\t100\t60\t10M\t*\t0\t0\tACGTACGTAC\tFFFFFFFFFF",
		"r2\t0\tchr1\t201\t60\t10M\t*\t0\t0\tACGTACGTAC\tFFFFFFFFFF",
		"r3\t16\tchr1\t200\t60\t10M\t*\t0\t0\tACGTACGTAC\tFFFFFFFFFF",
		"r4\t0\tchr2\t55\t60\t10M\t*\t0\t0\tACGTACGTAC\tFFFFFFFFFF",
		"r5\t0\tchr3\t150\t60\t10M\t*\t0\t0\tACGTACGTAC\tFFFFFFFFFF",
	}
	var out bytes.Buffer
	kept, total, err := filterOverlap(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, trees)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), kept)
	assert.Equal(t, uint64(5), total)
	assert.Equal(t, strings.Join([]string{lines[0], lines[1], lines[3], lines[4]}, "\n")+"\n", out.String())
}

func TestFilterOverlapMalformed(t *testing.T) {
	trees, err := feature.BuildRegionTrees(nil)
	require.NoError(t, err)
	_, _, err = filterOverlap(strings.NewReader("@HD\tVN:1.6\nr1\t0\tchr1\n"), &bytes.Buffer{}, trees)
	require.Error(t, err)
	assert.True(t, errors.Is(err, esam.ErrMalformedRecord))
	assert.Contains(t, err.Error(), "line 2")
}
