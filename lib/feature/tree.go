//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// regionInterval is a half-open interval stored in a region tree. Index is
// the position of the region in the slice the tree was built from.
type regionInterval struct {
	Start, End int
	Index      int
}

func (ri regionInterval) Overlap(b interval.IntRange) bool {
	return ri.End > b.Start && ri.Start < b.End
}

func (ri regionInterval) ID() uintptr { return uintptr(ri.Index) }

func (ri regionInterval) Range() interval.IntRange {
	return interval.IntRange{Start: ri.Start, End: ri.End}
}

// String prints the closed region coordinates.
func (ri regionInterval) String() string {
	return fmt.Sprintf("region#%d:%d-%d", ri.Index, ri.Start, ri.End-1)
}

// RegionTrees holds one interval tree of regions per chromosome.
type RegionTrees map[string]*interval.IntTree

// BuildRegionTrees builds a tree of regions: each region is added to the tree of its chromosome.
// Reversed regions are left out.
func BuildRegionTrees(regions []Region) (trees RegionTrees, err error) {
	trees = make(RegionTrees)
	for i, r := range regions {
		if r.Reversed() {
			continue
		}
		// New tree for unseen chromosome
		if _, ok := trees[r.Chrom]; !ok {
			trees[r.Chrom] = &interval.IntTree{}
		}
		// Regions are closed, intervals half-open
		err = trees[r.Chrom].Insert(regionInterval{Start: r.Start, End: r.End + 1, Index: i}, false)
		if err != nil {
			return
		}
	}
	for k := range trees {
		trees[k].AdjustRanges()
	}
	return
}

// Contains reports whether pos falls in at least one region of chrom.
func (trees RegionTrees) Contains(chrom string, pos int) bool {
	tree, ok := trees[chrom]
	if !ok {
		return false
	}
	return len(tree.Get(regionInterval{Start: pos, End: pos + 1, Index: -1})) > 0
}
