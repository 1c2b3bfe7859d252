package persuasion

import "math"

// Grid returns the spec's discretization: GridSize equally spaced points
// over Interval, both endpoints included. For GridSize == 1 the grid is
// the single point at the lower bound.
//
// Endpoints are exact: point 0 is Interval.Lo and point n-1 is
// Interval.Hi, with interior points at Lo + i·(Hi-Lo)/(n-1).
func (p *ProblemSpec) Grid() []float64 {
	n := p.GridSize
	grid := make([]float64, n)
	if n == 1 {
		grid[0] = p.Interval.Lo
		return grid
	}
	step := (p.Interval.Hi - p.Interval.Lo) / float64(n-1)
	for i := range grid {
		grid[i] = p.Interval.Lo + float64(i)*step
	}
	grid[n-1] = p.Interval.Hi
	return grid
}

// SampleVector evaluates fn at every grid point. name identifies the
// function in diagnostics. Returns *EvalError if any sample is NaN or
// infinite.
func SampleVector(name string, fn func(float64) float64, grid []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	for i, s := range grid {
		v := fn(s)
		if !isFinite(v) {
			return nil, &EvalError{Fn: name, Point: []float64{s}, Value: v}
		}
		out[i] = v
	}
	return out, nil
}

// SampleMatrix evaluates fn at every (grid[i], grid[j]) pair, rows
// indexed by the first argument. Returns *EvalError on a non-finite
// sample.
func SampleMatrix(name string, fn func(float64, float64) float64, grid []float64) ([][]float64, error) {
	out := make([][]float64, len(grid))
	for i, s := range grid {
		row := make([]float64, len(grid))
		for j, m := range grid {
			v := fn(s, m)
			if !isFinite(v) {
				return nil, &EvalError{Fn: name, Point: []float64{s, m}, Value: v}
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
