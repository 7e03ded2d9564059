// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := "EntryID\tterm\nP1\tGO:0008150\n"
	for _, name := range []string{"plain.tsv", "compressed.tsv.gz"} {
		path := filepath.Join(dir, name)
		w, err := Create(path)
		if err != nil {
			t.Fatalf("unexpected error creating %s: %v", name, err)
		}
		c := NewWriter(w)
		c.Write([]string{"EntryID", "term"})
		c.Write([]string{"P1", "GO:0008150"})
		c.Flush()
		if err = c.Error(); err != nil {
			t.Fatalf("unexpected error writing %s: %v", name, err)
		}
		if err = w.Close(); err != nil {
			t.Fatalf("unexpected error closing %s: %v", name, err)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		compressed := len(raw) > 2 && raw[0] == 0x1f && raw[1] == 0x8b
		if compressed != strings.HasSuffix(name, ".gz") {
			t.Errorf("unexpected compression state for %s: %t", name, compressed)
		}

		r, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error opening %s: %v", name, err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("unexpected error reading %s: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("unexpected content for %s: got:%q want:%q", name, got, want)
		}
	}
}

func TestReader(t *testing.T) {
	const in = "# comment\nEntryID\tterm\taspect\nP1\tGO:1\nP2\tGO:2\tBPO\n"
	c := NewReader(strings.NewReader(in))
	labels, err := Header(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx, err := Columns(labels, []string{"EntryID", "term"}, []string{"aspect", "score"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int{"EntryID": 0, "term": 1, "aspect": 2, "score": -1}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("unexpected column index: got:%v want:%v", idx, want)
	}

	var n int
	for {
		rec, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n += len(rec)
	}
	if n != 5 {
		t.Errorf("unexpected number of fields: got:%d want:5", n)
	}

	_, err = Columns(labels, []string{"protein"}, nil)
	if err == nil {
		t.Errorf("expected error for missing column")
	}
	_, err = Header(NewReader(strings.NewReader("")))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("unexpected error for empty table: %v", err)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt.gz")
	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "P1\nP2\n")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error writing file: %v", err)
	}
	var got []byte
	err = ReadFile(path, func(r io.Reader) error {
		got, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error reading file: %v", err)
	}
	if string(got) != "P1\nP2\n" {
		t.Errorf("unexpected contents: got:%q want:%q", got, "P1\nP2\n")
	}

	err = ReadFile(path, func(io.Reader) error { return io.ErrUnexpectedEOF })
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("expected error mentioning path, got: %v", err)
	}
}
