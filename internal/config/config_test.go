// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	err := os.WriteFile(path, []byte(`# test configuration
PFP_ONTOLOGY=go-basic.obo
PFP_WORKERS=4
PFP_EVALUE=1e-3
PFP_ONE_VS_ALL=true
PFP_K=1,3,5
PFP_BAD_INT=four
`), 0o644)
	require.NoError(t, err)

	for _, k := range []string{"ONTOLOGY", "WORKERS", "EVALUE", "ONE_VS_ALL", "K", "BAD_INT"} {
		key := Prefix + k
		old, ok := os.LookupEnv(key)
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
		os.Unsetenv(key)
	}
	t.Setenv(Prefix+"WORKERS", "8")

	require.NoError(t, Load(path))

	assert.Equal(t, "go-basic.obo", String("ontology", "go.obo"))
	assert.Equal(t, 8, Int("workers", 1), "environment must not be overridden")
	assert.Equal(t, 1e-3, Float("evalue", 10))
	assert.True(t, Bool("one-vs-all", false))
	assert.Equal(t, "1,3,5", Ints("k", "1"))
	assert.Equal(t, 2, Int("bad-int", 2))
	assert.Equal(t, "x", String("missing", "x"))

	assert.Error(t, Load(filepath.Join(dir, "missing.env")))
}

func TestLoadDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.NoError(t, Load())
}

func TestParseInts(t *testing.T) {
	got, err := ParseInts("1, 3,,5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, got)

	got, err = ParseInts("3,1,3,1,5")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 5}, got)

	_, err = ParseInts("1,x")
	assert.Error(t, err)

	assert.Equal(t, "PFP_ONE_VS_ALL", Key("one-vs-all"))
}
