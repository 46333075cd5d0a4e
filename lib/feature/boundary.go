//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

type BoundaryKind uint8

const (
	BoundaryStart BoundaryKind = iota
	BoundaryEnd
)

// Site is an exon boundary. Gene indexes the gene list the index was built from.
type Site struct {
	Kind  BoundaryKind
	Coord int
	Gene  int
}

// BoundaryIndex maps every genomic offset within Extend of an exon boundary
// to that boundary, per chromosome. It is read-only once built.
type BoundaryIndex struct {
	Genes  []GenePred
	Extend int
	sites  map[string]map[int]Site
}

// BuildBoundaryIndex indexes the exon boundaries of genes. Unless includeEdges
// is set, the first exon start and last exon end of each transcript are not
// splice sites and are left out. Where windows overlap, the boundary inserted
// last wins: starts then ends, gene after gene.
func BuildBoundaryIndex(genes []GenePred, extend int, includeEdges bool) *BoundaryIndex {
	idx := &BoundaryIndex{Genes: genes, Extend: extend, sites: make(map[string]map[int]Site)}
	for ig := range genes {
		g := &genes[ig]
		starts, ends := g.ExonStarts, g.ExonEnds
		if !includeEdges {
			if len(starts) > 0 {
				starts = starts[1:]
			}
			if len(ends) > 0 {
				ends = ends[:len(ends)-1]
			}
		}
		for _, c := range starts {
			idx.insert(g.Chrom, Site{Kind: BoundaryStart, Coord: c, Gene: ig})
		}
		for _, c := range ends {
			idx.insert(g.Chrom, Site{Kind: BoundaryEnd, Coord: c, Gene: ig})
		}
	}
	return idx
}

func (idx *BoundaryIndex) insert(chrom string, s Site) {
	chromSites, ok := idx.sites[chrom]
	if !ok {
		chromSites = make(map[int]Site)
		idx.sites[chrom] = chromSites
	}
	for i := s.Coord - idx.Extend; i <= s.Coord+idx.Extend; i++ {
		chromSites[i] = s
	}
}

// SiteAt returns the boundary covering offset on chrom.
func (idx *BoundaryIndex) SiteAt(chrom string, offset int) (Site, bool) {
	s, ok := idx.sites[chrom][offset]
	return s, ok
}

// Gene returns the gene owning s.
func (idx *BoundaryIndex) Gene(s Site) *GenePred {
	return &idx.Genes[s.Gene]
}

// Len returns the number of indexed offsets on chrom.
func (idx *BoundaryIndex) Len(chrom string) int {
	return len(idx.sites[chrom])
}
