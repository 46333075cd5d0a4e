//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"git.sr.ht/~vejnar/Chimera/lib/esam"
	"git.sr.ht/~vejnar/Chimera/lib/feature"
	"git.sr.ht/~vejnar/Chimera/lib/fileio"
)

var overlapCmd = &cobra.Command{
	Use:   "overlap",
	Short: "Keep SAM records starting within regions",
	Args:  cobra.NoArgs,
	RunE:  runOverlap,
}

func init() {
	overlapCmd.Flags().StringP("input", "i", "", "Input SAM path (stdin if empty)")
	overlapCmd.Flags().StringP("output", "o", "", "Output SAM path (stdout if empty)")
	overlapCmd.Flags().StringP("regions", "a", "", "Regions path (chrom, start, end)")
	overlapCmd.MarkFlagRequired("regions")

	rootCmd.AddCommand(overlapCmd)
}

func runOverlap(cmd *cobra.Command, args []string) (err error) {
	flags := cmd.Flags()
	pathIn, _ := flags.GetString("input")
	pathOut, _ := flags.GetString("output")
	pathRegions, _ := flags.GetString("regions")

	if fileio.IsStd(pathRegions) && fileio.IsStd(pathIn) {
		return errors.New("regions and input cannot both be read from stdin")
	}
	if err = checkInputs(pathRegions, pathIn); err != nil {
		return err
	}

	out, err := fileio.Create(pathOut)
	if err != nil {
		return err
	}
	defer closeOutput(out, &err)

	// Regions
	logStep("Loading regions from %s", pathRegions)
	fRegions, err := fileio.Open(pathRegions)
	if err != nil {
		return err
	}
	regions, err := feature.ReadRegions(fRegions)
	fRegions.Close()
	if err != nil {
		return errors.Wrap(err, pathRegions)
	}
	trees, err := feature.BuildRegionTrees(regions)
	if err != nil {
		return err
	}
	logStep("Loaded %d regions on %d chromosomes", len(regions), len(trees))

	// Records
	in, err := fileio.Open(pathIn)
	if err != nil {
		return err
	}
	defer in.Close()

	kept, total, err := filterOverlap(in, out, trees)
	if err != nil {
		return errors.Wrap(err, displayPath(pathIn))
	}
	logStep("Kept %d of %d records", kept, total)
	return nil
}

// filterOverlap copies header lines and the records of r starting within
// one of the regions in trees to w.
func filterOverlap(r io.Reader, w io.Writer, trees feature.RegionTrees) (kept, total uint64, err error) {
	var nLine int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 128*1024), 16*1024*1024)
	for scanner.Scan() {
		nLine++
		line := scanner.Text()
		if esam.IsHeader(line) {
			if _, err = fmt.Fprintln(w, line); err != nil {
				return kept, total, err
			}
			continue
		}
		total++
		rec, err := esam.ParseRecord(line)
		if err != nil {
			return kept, total, errors.Wrapf(err, "line %d", nLine)
		}
		if !trees.Contains(rec.Chrom, rec.Pos) {
			continue
		}
		kept++
		if _, err = fmt.Fprintln(w, line); err != nil {
			return kept, total, err
		}
	}
	return kept, total, scanner.Err()
}
