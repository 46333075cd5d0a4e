//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"git.sr.ht/~vejnar/Chimera/lib/chimeric"
	"git.sr.ht/~vejnar/Chimera/lib/fileio"
)

// chimeraCmd picks reads with a single back-splice junction out of a SAM stream.
var chimeraCmd = &cobra.Command{
	Use:   "chimera",
	Short: "Pick out chimeric reads from SAM stream",
	Args:  cobra.NoArgs,
	RunE:  runChimera,
}

func init() {
	chimeraCmd.Flags().StringP("input", "i", "", "Input SAM path (stdin if empty)")
	chimeraCmd.Flags().StringP("pairs", "p", "", "Output path for read junction spans")
	chimeraCmd.Flags().StringP("output", "o", "", "Output path for chimeric reads")
	chimeraCmd.Flags().Bool("passthrough", true, "Copy every input line to stdout")
	chimeraCmd.Flags().String("report", "", "Write JSON report to path (stderr with -)")
	chimeraCmd.MarkFlagRequired("pairs")
	chimeraCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(chimeraCmd)
}

func runChimera(cmd *cobra.Command, args []string) (err error) {
	flags := cmd.Flags()
	pathIn, _ := flags.GetString("input")
	pathPairs, _ := flags.GetString("pairs")
	pathOut, _ := flags.GetString("output")
	passthrough, _ := flags.GetBool("passthrough")
	pathReport, _ := flags.GetString("report")

	if passthrough && (fileio.IsStd(pathOut) || fileio.IsStd(pathPairs)) {
		return errors.New("stdout is used by passthrough, set --output and --pairs to files or disable --passthrough")
	}
	if err = checkInputs(pathIn); err != nil {
		return err
	}

	in, err := fileio.Open(pathIn)
	if err != nil {
		return err
	}
	defer in.Close()
	pairs, err := fileio.Create(pathPairs)
	if err != nil {
		return err
	}
	defer closeOutput(pairs, &err)
	filtered, err := fileio.Create(pathOut)
	if err != nil {
		return err
	}
	defer closeOutput(filtered, &err)

	x := chimeric.Extractor{Filtered: filtered, Pairs: pairs, Stats: chimeric.NewStats()}
	if passthrough {
		var tee io.WriteCloser
		if tee, err = fileio.Create("-"); err != nil {
			return err
		}
		defer closeOutput(tee, &err)
		x.Passthrough = tee
	}

	logStep("Extracting chimeric reads from %s", displayPath(pathIn))
	if err = x.Run(in); err != nil {
		return errors.Wrap(err, displayPath(pathIn))
	}
	logStep("Done %d records, %d split events in %d reads (%d ambiguous)", x.Stats.Records, x.Stats.Splits, x.Stats.SplitReads, x.Stats.Ambiguous)

	if pathReport != "" {
		return WriteReport(pathReport, cmd.Name(), x.Stats)
	}
	return nil
}

func displayPath(p string) string {
	if fileio.IsStd(p) {
		return "stdin"
	}
	return p
}
