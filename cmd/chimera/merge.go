//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"git.sr.ht/~vejnar/Chimera/lib/feature"
	"git.sr.ht/~vejnar/Chimera/lib/fileio"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge overlapping read spans into regions",
	Args:  cobra.NoArgs,
	RunE:  runMerge,
}

func init() {
	mergeCmd.Flags().StringP("input", "i", "", "Input spans path (stdin if empty)")
	mergeCmd.Flags().StringP("output", "o", "", "Output regions path (stdout if empty)")
	mergeCmd.Flags().IntP("extend", "e", 0, "Widen each span on both sides before merging")
	mergeCmd.Flags().Int("min", 0, "Minimum merged region length")
	mergeCmd.Flags().Int("max", 0, "Maximum merged region length (0 for unlimited)")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) (err error) {
	flags := cmd.Flags()
	pathIn, _ := flags.GetString("input")
	pathOut, _ := flags.GetString("output")
	extend, _ := flags.GetInt("extend")
	minLength, _ := flags.GetInt("min")
	maxLength, _ := flags.GetInt("max")

	if extend < 0 || minLength < 0 || maxLength < 0 {
		return errors.New("--extend, --min and --max must be positive or zero")
	}
	if err = checkInputs(pathIn); err != nil {
		return err
	}

	out, err := fileio.Create(pathOut)
	if err != nil {
		return err
	}
	defer closeOutput(out, &err)

	in, err := fileio.Open(pathIn)
	if err != nil {
		return err
	}
	defer in.Close()
	logStep("Loading spans from %s", displayPath(pathIn))
	regions, err := feature.ReadRegions(in)
	if err != nil {
		return errors.Wrap(err, displayPath(pathIn))
	}

	merged, nMerge, nReversed := feature.MergeRegions(regions, extend, minLength, maxLength)
	logStep("Merged %d spans into %d regions (%d merges, %d reversed spans dropped)", len(regions), len(merged), nMerge, nReversed)

	for _, r := range merged {
		if _, err = fmt.Fprintf(out, "%s\t%d\t%d\n", r.Chrom, r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}
