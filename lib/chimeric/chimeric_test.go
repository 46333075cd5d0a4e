//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package chimeric

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/Chimera/lib/esam"
	"git.sr.ht/~vejnar/Chimera/lib/feature"
)

func samLine(name string, flag int, chrom string, pos int, cigar string, tags ...string) string {
	fields := []string{name, fmt.Sprint(flag), chrom, fmt.Sprint(pos), "60", cigar, "=", "0", "0", "ACGT", "FFFF"}
	return strings.Join(append(fields, tags...), "\t")
}

func mustRecord(t *testing.T, line string) *esam.Record {
	r, err := esam.ParseRecord(line)
	require.NoError(t, err)
	return r
}

func TestReconcileSingleJunction(t *testing.T) {
	r := mustRecord(t, samLine("r1", 99, "chr7", 152406868, "18S133M", "SA:Z:chr7,152406889,+,34M117S,60,0;"))
	ev, outcome, err := Reconcile(r)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSplit, outcome)
	// Overlap of 34-18 read bases is removed from the supplementary end
	assert.Equal(t, SplitEvent{Start: 152406868, End: 152406923 - (34 - 18)}, ev)
}

func TestReconcileAmbiguous(t *testing.T) {
	r := mustRecord(t, samLine("r2", 0, "chr1", 100, "40S30M",
		"SA:Z:chr1,200,+,30M40S,60,0;chr1,150,+,20S30M20S,60,0;"))
	segs, err := Segments(r, mustSA(t, r))
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, 0, segs[0].QueryStart)
	assert.Equal(t, 40, segs[2].QueryStart)
	assert.Len(t, Candidates(segs), 2)

	_, outcome, err := Reconcile(r)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, outcome)
}

func mustSA(t *testing.T, r *esam.Record) []esam.SAEntry {
	v, ok := r.Tag(esam.TagSA)
	require.True(t, ok)
	sa, err := esam.ParseSA(v)
	require.NoError(t, err)
	return sa
}

func TestReconcileFilters(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Outcome
	}{
		{"supplementary", samLine("r", 2048, "chr1", 100, "40S30M", "SA:Z:chr1,120,+,40M30S,60,0;"), OutcomeSkipped},
		{"unmapped", samLine("r", 4, "chr1", 100, "40S30M", "SA:Z:chr1,120,+,40M30S,60,0;"), OutcomeSkipped},
		{"no SA", samLine("r", 0, "chr1", 100, "40S30M", "NM:i:0"), OutcomeNoSA},
		{"other chromosome", samLine("r", 0, "chr1", 100, "40S30M", "SA:Z:chr2,120,+,40M30S,60,0;"), OutcomeNoCandidate},
		{"other strand", samLine("r", 0, "chr1", 100, "40S30M", "SA:Z:chr1,120,-,40M30S,60,0;"), OutcomeNoCandidate},
		{"reverse strand", samLine("r", 16, "chr1", 100, "40S30M", "SA:Z:chr1,120,-,40M30S,60,0;"), OutcomeSplit},
		{"linear", samLine("r", 0, "chr1", 100, "40S30M", "SA:Z:chr1,20,+,40M30S,60,0;"), OutcomeNoCandidate},
		{"read gap", samLine("r", 0, "chr1", 100, "50S20M", "SA:Z:chr1,120,+,40M30S,60,0;"), OutcomeNoCandidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome, err := Reconcile(mustRecord(t, tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestReconcileMalformedSA(t *testing.T) {
	r := mustRecord(t, samLine("r", 0, "chr1", 100, "40S30M", "SA:Z:chr1,120,+,40Q30S,60,0;"))
	_, _, err := Reconcile(r)
	assert.Equal(t, esam.ErrMalformedCigar, errors.Cause(err))
}

func TestExtractor(t *testing.T) {
	split := samLine("r1", 99, "chr7", 152406868, "18S133M", "SA:Z:chr7,152406889,+,34M117S,60,0;")
	input := strings.Join([]string{
		"@HD\tVN:1.6",
		"@SQ\tSN:chr7\tLN:159345973",
		split,
		samLine("r2", 0, "chr1", 100, "70M", "NM:i:0"),
		samLine("r3", 2048, "chr7", 152406889, "34M117H", "SA:Z:chr7,152406868,+,18S133M,60,1;"),
	}, "\n") + "\n"

	var filtered, pairs, tee bytes.Buffer
	x := Extractor{Filtered: &filtered, Pairs: &pairs, Passthrough: &tee}
	require.NoError(t, x.Run(strings.NewReader(input)))

	assert.Equal(t, input, tee.String())
	assert.Equal(t, "@HD\tVN:1.6\n@SQ\tSN:chr7\tLN:159345973\n"+split+"\n", filtered.String())
	assert.Equal(t, "chr7\t152406868\t152406907\tr1\n", pairs.String())

	assert.Equal(t, uint64(2), x.Stats.Headers)
	assert.Equal(t, uint64(3), x.Stats.Records)
	assert.Equal(t, uint64(1), x.Stats.Splits)
	assert.Equal(t, uint64(1), x.Stats.NoSA)
	assert.Equal(t, uint64(1), x.Stats.Skipped)
	assert.Equal(t, 1, x.Stats.SplitReads)
}

func TestExtractorMalformed(t *testing.T) {
	var filtered, pairs bytes.Buffer
	x := Extractor{Filtered: &filtered, Pairs: &pairs}
	err := x.Run(strings.NewReader("@HD\tVN:1.6\nr1\t0\tchr1\n"))
	require.Error(t, err)
	assert.Equal(t, esam.ErrMalformedRecord, errors.Cause(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestExtractorReversedPairs(t *testing.T) {
	// Read overlap of 80 bases on a reference overlap of 10
	input := samLine("r1", 0, "chr1", 190, "20S130M", "SA:Z:chr1,100,+,100M50S,60,0;") + "\n"
	var filtered, pairs bytes.Buffer
	x := Extractor{Filtered: &filtered, Pairs: &pairs}
	require.NoError(t, x.Run(strings.NewReader(input)))
	assert.Equal(t, "chr1\t190\t120\tr1\n", pairs.String())

	regions, err := feature.ReadRegions(&pairs)
	require.NoError(t, err)
	merged, _, nReversed := feature.MergeRegions(regions, 0, 0, 0)
	assert.Empty(t, merged)
	assert.Equal(t, 1, nReversed)
}
