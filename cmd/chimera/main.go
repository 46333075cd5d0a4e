//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "DEV"

var timeStart = time.Now()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "chimera",
	Short:         "Find and annotate circular RNA back-splice junctions from chimeric alignments",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log.SetLevel(log.InfoLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose")
}

// logStep logs a progress message prefixed by the elapsed time.
func logStep(format string, args ...interface{}) {
	log.Infof("%.1fmin - "+format, append([]interface{}{time.Since(timeStart).Minutes()}, args...)...)
}

// checkInputs fails on missing input paths before anything is processed.
func checkInputs(paths ...string) error {
	for _, p := range paths {
		if p == "" || p == "-" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return err
		}
	}
	return nil
}

// closeOutput closes w, keeping the first error in err.
func closeOutput(w io.Closer, err *error) {
	if cerr := w.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
