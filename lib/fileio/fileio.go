//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package fileio opens line-oriented inputs and outputs, compressed or not.
// An empty path or "-" means stdin or stdout.
package fileio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
)

const bufferSize = 128 * 1024

const (
	CompressionNone = iota
	CompressionGzip
	CompressionLZ4
)

// Compression returns the compression guessed from the path extension.
func Compression(path string) int {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(path, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// IsStd reports whether path designates stdin or stdout.
func IsStd(path string) bool {
	return path == "" || path == "-"
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() (err error) {
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

// Open opens path for reading, decompressing it if needed.
func Open(path string) (io.ReadCloser, error) {
	if IsStd(path) {
		return &readCloser{Reader: bufio.NewReaderSize(os.Stdin, bufferSize)}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch Compression(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{Reader: bufio.NewReaderSize(gz, bufferSize), closers: []io.Closer{gz, f}}, nil
	case CompressionLZ4:
		return &readCloser{Reader: bufio.NewReaderSize(lz4.NewReader(f), bufferSize), closers: []io.Closer{f}}, nil
	default:
		return &readCloser{Reader: bufio.NewReaderSize(f, bufferSize), closers: []io.Closer{f}}, nil
	}
}

type writeCloser struct {
	*bufio.Writer
	closers []io.Closer
}

func (w *writeCloser) Close() error {
	err := w.Flush()
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Create creates path for writing, compressing it if needed. Closing the
// returned writer flushes it; stdout is flushed but never closed.
func Create(path string) (io.WriteCloser, error) {
	if IsStd(path) {
		return &writeCloser{Writer: bufio.NewWriterSize(os.Stdout, bufferSize)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch Compression(path) {
	case CompressionGzip:
		gz := gzip.NewWriter(f)
		return &writeCloser{Writer: bufio.NewWriterSize(gz, bufferSize), closers: []io.Closer{gz, f}}, nil
	case CompressionLZ4:
		lzWriter := lz4.NewWriter(f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		return &writeCloser{Writer: bufio.NewWriterSize(lzWriter, bufferSize), closers: []io.Closer{lzWriter, f}}, nil
	default:
		return &writeCloser{Writer: bufio.NewWriterSize(f, bufferSize), closers: []io.Closer{f}}, nil
	}
}
