// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides environment backed defaults for command
// flags. A flag named "ontology" takes its default from the PFP_ONTOLOGY
// environment variable, which may be set in a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Prefix is the prefix of environment variables read by the package.
const Prefix = "PFP_"

// DefaultFile is the environment file loaded when Load is called
// without paths.
const DefaultFile = ".env"

// Load loads environment variables from the .env style files at paths.
// Variables already set in the environment are not overridden. If no
// paths are given DefaultFile is loaded if it exists.
func Load(paths ...string) error {
	if len(paths) == 0 {
		err := godotenv.Load(DefaultFile)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(paths...)
}

// Key returns the environment variable name for a flag name.
func Key(name string) string {
	return Prefix + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(Key(name))
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// String returns the value for name or def if it is not set.
func String(name, def string) string {
	if v, ok := lookup(name); ok {
		return v
	}
	return def
}

// Int returns the integer value for name or def if it is not set
// or is not an integer.
func Int(name string, def int) int {
	if v, ok := lookup(name); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Float returns the floating point value for name or def if it is
// not set or is not a number.
func Float(name string, def float64) float64 {
	if v, ok := lookup(name); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Bool returns the boolean value for name or def if it is not set
// or is not a boolean.
func Bool(name string, def bool) bool {
	if v, ok := lookup(name); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Ints returns the comma separated integer list for name or def if it
// is not set or is not a valid list.
func Ints(name string, def string) string {
	if v, ok := lookup(name); ok {
		if _, err := ParseInts(v); err == nil {
			return v
		}
	}
	return def
}

// ParseInts parses a comma separated list of integers. Repeated values
// are returned once, at their first position.
func ParseInts(s string) ([]int, error) {
	var v []int
	seen := make(map[int]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		v = append(v, i)
	}
	return v, nil
}
