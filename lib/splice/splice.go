//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package splice classifies back-splice junctions against exon boundaries.
package splice

// Kind is the class of a junction given the exon boundaries it matches.
type Kind int

const (
	Miss Kind = iota
	Exon2
	Intron2
	Exon1
	Intron1
)

var kindNames = [...]string{"MISS", "EXON_2", "INTRON_2", "EXON_1", "INTRON_1"}

// Kinds lists all classes, Miss first.
var Kinds = []Kind{Miss, Exon2, Intron2, Exon1, Intron1}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[Miss]
	}
	return kindNames[k]
}

// Double reports whether both junction ends match a boundary.
func (k Kind) Double() bool { return k == Exon2 || k == Intron2 }

// Single reports whether only one junction end matches a boundary.
func (k Kind) Single() bool { return k == Exon1 || k == Intron1 }

// Classify applies the decision table. startStart is true when the junction
// start matches an exon start, startEnd when it matches an exon end, and so
// on for the junction end.
func Classify(startStart, endEnd, startEnd, endStart bool) Kind {
	switch {
	case (startStart && endStart) || (endEnd && startEnd):
		// Both boundary types on the same side
		return Miss
	case startStart && endEnd:
		return Exon2
	case startEnd && endStart:
		return Intron2
	case startEnd != endStart:
		return Exon1
	case startStart != endEnd:
		return Intron1
	default:
		return Miss
	}
}
