//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"git.sr.ht/~vejnar/Chimera/lib/config"
	"git.sr.ht/~vejnar/Chimera/lib/feature"
	"git.sr.ht/~vejnar/Chimera/lib/fileio"
	"git.sr.ht/~vejnar/Chimera/lib/splice"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Classify and annotate junctions against exon boundaries",
	Args:  cobra.NoArgs,
	RunE:  runAnnotate,
}

func init() {
	d := config.Default()
	annotateCmd.Flags().StringP("junctions", "j", "", "Junctions path (chrom, start, end, depth)")
	annotateCmd.Flags().StringP("reference", "r", "", "Gene model path (GenePred)")
	annotateCmd.Flags().StringP("output", "o", "", "Output path (stdout if empty)")
	annotateCmd.Flags().IntP(config.KeyExtend, "e", d.Extend, "Radius around exon boundaries")
	annotateCmd.Flags().BoolP(config.KeyAllowSingle, "s", d.AllowSingle, "Report junctions matching a single exon boundary")
	annotateCmd.Flags().Bool(config.KeyIncludeEdges, d.IncludeEdges, "Use transcript first start and last end as boundaries")
	annotateCmd.Flags().IntP(config.KeyNumWorker, "n", d.NumWorker, "Number of workers")
	annotateCmd.Flags().String("config", "", "Config file path")
	annotateCmd.Flags().String("report", "", "Write JSON report to path (stderr with -)")
	annotateCmd.MarkFlagRequired("junctions")
	annotateCmd.MarkFlagRequired("reference")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) (err error) {
	flags := cmd.Flags()
	pathJunctions, _ := flags.GetString("junctions")
	pathReference, _ := flags.GetString("reference")
	pathOut, _ := flags.GetString("output")
	pathConfig, _ := flags.GetString("config")
	pathReport, _ := flags.GetString("report")

	// Config from defaults, file, environment and flags
	v, err := config.NewViper(pathConfig)
	if err != nil {
		return err
	}
	for _, key := range []string{config.KeyExtend, config.KeyAllowSingle, config.KeyIncludeEdges, config.KeyNumWorker} {
		if err = v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return err
		}
	}
	cfg, err := config.New(v)
	if err != nil {
		return err
	}

	if fileio.IsStd(pathReference) && fileio.IsStd(pathJunctions) {
		return errors.New("reference and junctions cannot both be read from stdin")
	}
	if err = checkInputs(pathReference, pathJunctions); err != nil {
		return err
	}

	// Outputs
	out, err := fileio.Create(pathOut)
	if err != nil {
		return err
	}
	defer closeOutput(out, &err)

	// Gene model
	logStep("Loading gene model from %s", pathReference)
	fRef, err := fileio.Open(pathReference)
	if err != nil {
		return err
	}
	genes, err := feature.ReadGenePreds(fRef)
	fRef.Close()
	if err != nil {
		return errors.Wrap(err, pathReference)
	}
	idx := feature.BuildBoundaryIndex(genes, cfg.Extend, cfg.IncludeEdges)
	logStep("Indexed boundaries of %d transcripts (extend %d)", len(genes), cfg.Extend)

	// Junctions
	in, err := fileio.Open(pathJunctions)
	if err != nil {
		return err
	}
	defer in.Close()

	logStep("Annotating junctions with %d worker(s)", cfg.NumWorker)
	a := &splice.Annotator{Index: idx, AllowSingle: cfg.AllowSingle}
	stats, err := splice.Run(cmd.Context(), in, out, a, cfg.NumWorker)
	if err != nil {
		return errors.Wrap(err, displayPath(pathJunctions))
	}
	logStep("Done %d junctions, %d annotated in %d genes", stats.Junctions, stats.Annotated, stats.Genes)

	if pathReport != "" {
		return WriteReport(pathReport, cmd.Name(), stats)
	}
	return nil
}
