//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"encoding/json"
	"os"
	"time"
)

// Report is the JSON summary of a run.
type Report struct {
	Version string      `json:"version"`
	Command string      `json:"command"`
	Elapsed string      `json:"elapsed"`
	Stats   interface{} `json:"stats"`
}

// WriteReport writes the report of command to pathReport (stderr with -).
func WriteReport(pathReport string, command string, stats interface{}) error {
	report, err := json.MarshalIndent(Report{
		Version: version,
		Command: command,
		Elapsed: time.Since(timeStart).Round(time.Millisecond).String(),
		Stats:   stats,
	}, "", "  ")
	if err != nil {
		return err
	}
	report = append(report, '\n')
	if pathReport == "-" {
		_, err = os.Stderr.Write(report)
		return err
	}
	return os.WriteFile(pathReport, report, 0666)
}
