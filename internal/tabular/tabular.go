// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabular provides helpers for reading and writing the tab
// separated tables exchanged with annotation, alignment and evaluation
// tools. Files may be gzip compressed.
package tabular

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Open opens the file at path for reading. If the file is gzip compressed
// it is transparently decompressed.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &readCloser{Reader: r, closers: []io.Closer{r, f}}, nil
}

// Decompress returns a reader that reads r, decompressing it if it
// starts with a gzip header.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return io.NopCloser(br), nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		err := c.Close()
		if first == nil {
			first = err
		}
	}
	return first
}

// Create creates the file at path for writing. If path has a .gz suffix
// the written data is gzip compressed. The returned writer must be
// closed to flush all data.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	w := gzip.NewWriter(f)
	return &writeCloser{Writer: w, gz: w, f: f}, nil
}

type writeCloser struct {
	io.Writer
	gz *gzip.Writer
	f  *os.File
}

func (w *writeCloser) Close() error {
	err := w.gz.Close()
	if err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// NewReader returns a csv.Reader configured for tab separated tables
// with '#' comment lines and a variable number of fields per record.
func NewReader(r io.Reader) *csv.Reader {
	c := csv.NewReader(r)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.LazyQuotes = true
	return c
}

// NewWriter returns a csv.Writer configured for tab separated tables.
func NewWriter(w io.Writer) *csv.Writer {
	c := csv.NewWriter(w)
	c.Comma = '\t'
	return c
}

// Columns returns the positions of the named columns in the header
// labels. It is an error for any required column to be missing.
// Optional columns that are missing are given the position -1.
func Columns(labels []string, required, optional []string) (map[string]int, error) {
	idx := make(map[string]int, len(required)+len(optional))
	for _, name := range optional {
		idx[name] = -1
	}
	for i, l := range labels {
		idx[strings.TrimSpace(l)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header %q", name, labels)
		}
	}
	return idx, nil
}

// Header reads the first record of c as a header. An empty table
// is reported as io.ErrUnexpectedEOF.
func Header(c *csv.Reader) ([]string, error) {
	labels, err := c.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return append([]string(nil), labels...), nil
}

// ReadFile opens the file at path with Open and calls fn with its
// contents. Errors returned by fn are prefixed with the path.
func ReadFile(path string, fn func(io.Reader) error) error {
	f, err := Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	err = fn(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteFile creates the file at path with Create and calls fn to write
// its contents.
func WriteFile(path string, fn func(io.Writer) error) (err error) {
	f, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
