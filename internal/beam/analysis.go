package beam

import (
	"fmt"
	"math"
)

// NumSamples is the number of stations used to sample the diagrams
const NumSamples = 100

// Reactions holds the support reactions of a simply supported beam
type Reactions struct {
	Ra float64 // Left support reaction (N)
	Rb float64 // Right support reaction (N)
}

// Solve calculates the support reactions for a single point load.
// Taking moments about the left support gives Rb = P·a/L, and
// vertical equilibrium gives Ra = P - Rb.
func Solve(s Input) Reactions {
	rb := s.P * s.A / s.L
	return Reactions{
		Ra: s.P - rb,
		Rb: rb,
	}
}

// Grid is the ordered list of stations along the beam (m)
type Grid []float64

// Series holds the sampled diagrams, aligned index-for-index with a Grid
type Series struct {
	Shear  []float64 // V (N)
	Moment []float64 // M (N-m)
}

// ShearAt returns V(x). The step at x = a belongs to the right-hand side.
func ShearAt(s Input, r Reactions, x float64) float64 {
	if x < s.A {
		return r.Ra
	}
	return r.Ra - s.P
}

// MomentAt returns M(x)
func MomentAt(s Input, r Reactions, x float64) float64 {
	if x < s.A {
		return r.Ra * x
	}
	return r.Ra*x - s.P*(x-s.A)
}

// NewGrid returns NumSamples evenly spaced stations spanning [0, L]
func NewGrid(l float64) Grid {
	step := l / float64(NumSamples-1)
	g := make(Grid, NumSamples)
	for i := range g {
		g[i] = step * float64(i)
	}
	// pin the last station to the support
	g[NumSamples-1] = l
	return g
}

// Sample evaluates shear force and bending moment at every station of the
// uniform grid. The true discontinuity at x = a is only approximated by the
// nearest stations on either side.
func Sample(s Input, r Reactions) (Grid, Series) {
	grid := NewGrid(s.L)
	series := Series{
		Shear:  make([]float64, len(grid)),
		Moment: make([]float64, len(grid)),
	}
	for i, x := range grid {
		series.Shear[i] = ShearAt(s, r, x)
		series.Moment[i] = MomentAt(s, r, x)
	}
	return grid, series
}

// SampleWithStep samples the uniform grid and adds explicit stations at a⁻
// and a⁺ so the shear step is drawn exactly at the load.
func SampleWithStep(s Input, r Reactions) (Grid, Series) {
	uniform := NewGrid(s.L)

	grid := make(Grid, 0, len(uniform)+2)
	series := Series{
		Shear:  make([]float64, 0, len(uniform)+2),
		Moment: make([]float64, 0, len(uniform)+2),
	}
	add := func(x, v, m float64) {
		grid = append(grid, x)
		series.Shear = append(series.Shear, v)
		series.Moment = append(series.Moment, m)
	}

	mA := r.Ra * s.A
	inserted := false
	for _, x := range uniform {
		if !inserted && x >= s.A {
			if s.A > 0 {
				add(s.A, r.Ra, mA)
			}
			add(s.A, r.Ra-s.P, mA)
			inserted = true
		}
		if x == s.A {
			continue
		}
		add(x, ShearAt(s, r, x), MomentAt(s, r, x))
	}
	return grid, series
}

// Summary holds the absolute maxima of the sampled diagrams
type Summary struct {
	MaxShear  float64 // max |V| (N)
	MaxMoment float64 // max |M| (N-m)
}

// Summarize extracts the maximum absolute values of the series.
// Empty series give zero.
func Summarize(series Series) Summary {
	return Summary{
		MaxShear:  maxAbs(series.Shear),
		MaxMoment: maxAbs(series.Moment),
	}
}

func maxAbs(values []float64) float64 {
	var m float64
	for _, v := range values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// FormatMax renders a maximum with two decimals for display
func FormatMax(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// Result holds everything produced by one calculation
type Result struct {
	Input     Input
	Reactions Reactions
	Grid      Grid
	Series    Series
	Summary   Summary

	// Display strings (two decimals)
	MaxShear  string
	MaxMoment string
}

// Analyze runs the full pipeline on typed inputs:
// validate, solve reactions, sample and summarize.
func Analyze(s Input) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := Solve(s)
	grid, series := Sample(s, r)
	sum := Summarize(series)

	return &Result{
		Input:     s,
		Reactions: r,
		Grid:      grid,
		Series:    series,
		Summary:   sum,
		MaxShear:  FormatMax(sum.MaxShear),
		MaxMoment: FormatMax(sum.MaxMoment),
	}, nil
}

// Compute parses the raw text inputs and runs Analyze. On any invalid input
// it returns an error whose message is InvalidInputMessage and no result.
func Compute(lengthText, loadText, positionText string) (*Result, error) {
	s, err := ParseInput(lengthText, loadText, positionText)
	if err != nil {
		return nil, err
	}
	return Analyze(s)
}
