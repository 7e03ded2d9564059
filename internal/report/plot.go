// Copyright ©2026 The PFP-baselines Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotHistogram plots a histogram of values with the given number of
// bins to the file at path. The image format is determined by the path
// extension. If logY is true the counts are plotted on a log scale.
func PlotHistogram(path, title, xLabel string, values []float64, bins int, logY bool) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "count"
	if len(values) != 0 {
		h, err := plotter.NewHist(plotter.Values(values), bins)
		if err != nil {
			return err
		}
		h.FillColor = color.RGBA{B: 255, A: 128}
		p.Add(h)
		if logY {
			p.Y.Scale = logScale{}
			p.Y.Tick.Marker = logTicks{}
			p.Y.Min = 0.5
		}
	}
	return p.Save(18*vg.Centimeter, 15*vg.Centimeter, path)
}

type logScale struct{}

func (logScale) Normalize(min, max, x float64) float64 {
	min = math.Max(min, 1e-16)
	max = math.Max(max, 1e-16)
	x = math.Max(x, 1e-16)
	logMin := math.Log(min)
	return (math.Log(x) - logMin) / (math.Log(max) - logMin)
}

type logTicks struct{ powers int }

func (t logTicks) Ticks(min, max float64) []plot.Tick {
	min = math.Max(min, 1e-16)
	max = math.Max(max, 1e-16)
	if t.powers < 1 {
		t.powers = 1
	}

	val := math.Pow10(int(math.Floor(math.Log10(min))))
	max = math.Pow10(int(math.Ceil(math.Log10(max))))
	var ticks []plot.Tick
	for val < max {
		for i := 1; i < 10; i++ {
			if i == 1 {
				ticks = append(ticks, plot.Tick{Value: val, Label: strconv.FormatFloat(val, 'g', -1, 64)})
			}
			if t.powers != 1 {
				break
			}
			ticks = append(ticks, plot.Tick{Value: val * float64(i)})
		}
		val *= math.Pow10(t.powers)
	}
	ticks = append(ticks, plot.Tick{Value: val, Label: strconv.FormatFloat(val, 'g', -1, 64)})

	return ticks
}
