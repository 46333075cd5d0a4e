//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package splice

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/Chimera/lib/feature"
)

const testGenePreds = `A	A.1	chr1	+	100	250	100	250	2	100,200,	150,250,
B	B.1	chr1	-	1000	1500	1000	1500	3	1000,1200,1400,	1100,1300,1500,
D	D.1	chr1	+	2000	2140	2000	2140	2	2000,2110,	2100,2140,
C	C.1	chr1	+	2150	2300	2150	2300	2	2150,2200,	2160,2300,
`

func newAnnotator(t *testing.T, extend int, allowSingle bool) *Annotator {
	genes, err := feature.ReadGenePreds(strings.NewReader(testGenePreds))
	require.NoError(t, err)
	return &Annotator{Index: feature.BuildBoundaryIndex(genes, extend, false), AllowSingle: allowSingle}
}

func TestAnnotateDouble(t *testing.T) {
	a := newAnnotator(t, 5, false)
	tests := []struct {
		name     string
		junction Junction
		kind     Kind
		outcome  Outcome
		want     string
	}{
		{"intron exact", Junction{"chr1", 150, 200, 10}, Intron2, OutcomeAnnotated, "chr1\t150\t200\tINTRON_2\t+\t200\t150\t10"},
		{"intron window", Junction{"chr1", 152, 197, 3}, Intron2, OutcomeAnnotated, "chr1\t150\t200\tINTRON_2\t+\t200\t150\t3"},
		{"exon", Junction{"chr1", 1200, 1300, 7}, Exon2, OutcomeAnnotated, "chr1\t1200\t1300\tEXON_2\t-\t1200\t1300\t7"},
		{"intron multi exon", Junction{"chr1", 1101, 1396, 2}, Intron2, OutcomeAnnotated, "chr1\t1100\t1400\tINTRON_2\t-\t1200,1400\t1100,1300\t2"},
		{"cross gene", Junction{"chr1", 2100, 2200, 5}, Intron2, OutcomeCrossGene, ""},
		{"miss", Junction{"chr1", 500, 600, 5}, Miss, OutcomeMiss, ""},
		{"unknown chromosome", Junction{"chrZ", 150, 200, 5}, Miss, OutcomeMiss, ""},
		{"single disabled", Junction{"chr1", 150, 230, 4}, Exon1, OutcomeSingleDisabled, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann, kind, outcome := a.Annotate(tt.junction)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.outcome, outcome)
			if tt.want != "" {
				assert.Equal(t, tt.want, ann.String())
			}
		})
	}
}

func TestAnnotateSingle(t *testing.T) {
	a := newAnnotator(t, 5, true)
	tests := []struct {
		name     string
		junction Junction
		kind     Kind
		outcome  Outcome
		want     string
	}{
		{"exon anchored start", Junction{"chr1", 150, 230, 4}, Exon1, OutcomeAnnotated, "chr1\t150\t-230\tEXON_1\t+\t\t\t4"},
		{"exon anchored end", Junction{"chr1", 120, 198, 4}, Exon1, OutcomeAnnotated, "chr1\t-120\t200\tEXON_1\t+\t\t\t4"},
		{"intron anchored start", Junction{"chr1", 200, 240, 2}, Intron1, OutcomeAnnotated, "chr1\t200\t-240\tINTRON_1\t+\t\t\t2"},
		{"intron anchored end", Junction{"chr1", 120, 150, 1}, Intron1, OutcomeAnnotated, "chr1\t-120\t150\tINTRON_1\t+\t\t\t1"},
		{"outside transcript", Junction{"chr1", 150, 400, 4}, Exon1, OutcomeSingleOutside, ""},
		{"window reaches transcript", Junction{"chr1", 150, 254, 4}, Exon1, OutcomeAnnotated, "chr1\t150\t-254\tEXON_1\t+\t\t\t4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann, kind, outcome := a.Annotate(tt.junction)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.outcome, outcome)
			if tt.want != "" {
				assert.Equal(t, tt.want, ann.String())
			}
		})
	}
}

func TestRunOrdered(t *testing.T) {
	a := newAnnotator(t, 5, true)
	junctions := []Junction{
		{"chr1", 150, 200, 1},
		{"chr1", 500, 600, 1},
		{"chr1", 1200, 1300, 1},
		{"chr1", 150, 230, 1},
		{"chr1", 2100, 2200, 1},
	}
	var in, want bytes.Buffer
	for i := 0; i < 1000; i++ {
		j := junctions[i%len(junctions)]
		j.Depth = i
		fmt.Fprintf(&in, "%s\t%d\t%d\t%d\n", j.Chrom, j.Start, j.End, j.Depth)
		if ann, _, outcome := a.Annotate(j); outcome == OutcomeAnnotated {
			fmt.Fprintln(&want, ann.String())
		}
	}

	for _, nWorker := range []int{1, 4} {
		var out bytes.Buffer
		stats, err := Run(context.Background(), bytes.NewReader(in.Bytes()), &out, a, nWorker)
		require.NoError(t, err)
		assert.Equal(t, want.String(), out.String(), nWorker)
		assert.Equal(t, uint64(1000), stats.Junctions)
		assert.Equal(t, uint64(600), stats.Annotated)
		assert.Equal(t, uint64(200), stats.Miss)
		assert.Equal(t, uint64(200), stats.CrossGene)
		assert.Equal(t, uint64(200), stats.Kinds["EXON_1"])
		assert.Equal(t, 2, stats.Genes)
	}
}

func TestRunMalformed(t *testing.T) {
	a := newAnnotator(t, 5, false)
	in := strings.Repeat("chr1\t150\t200\t1\n", 300) + "chr1\t150\n"
	var out bytes.Buffer
	_, err := Run(context.Background(), strings.NewReader(in), &out, a, 2)
	require.Error(t, err)
	assert.Equal(t, ErrMalformedJunction, errors.Cause(err))
	assert.Contains(t, err.Error(), "line 301")
}
