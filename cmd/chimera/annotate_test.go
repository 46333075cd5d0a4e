//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateOutputCheckedFirst(t *testing.T) {
	dir := t.TempDir()
	pathReference := filepath.Join(dir, "genes.gp")
	pathJunctions := filepath.Join(dir, "junctions.tab")
	// A malformed gene model is only reported if it gets loaded
	require.NoError(t, os.WriteFile(pathReference, []byte("not a genepred\n"), 0644))
	require.NoError(t, os.WriteFile(pathJunctions, []byte("chr1\t100\t200\t3\n"), 0644))

	rootCmd.SetArgs([]string{"annotate", "-j", pathJunctions, "-r", pathReference, "-o", filepath.Join(dir, "missing", "out.tab")})
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), err.Error())
}
