package treemap

import (
	"math"
	"slices"

	"github.com/matzehuels/salesmap/pkg/errors"
)

// Tiling names a strategy for partitioning a group's rectangle among its
// children.
type Tiling string

const (
	// Squarify lays children out in rows whose aspect ratios approach the
	// golden ratio. This is the default.
	Squarify Tiling = "squarify"
	// Slice stacks children top to bottom.
	Slice Tiling = "slice"
	// Dice places children left to right.
	Dice Tiling = "dice"
	// SliceDice alternates: dice at even depths, slice at odd depths.
	SliceDice Tiling = "slice-dice"
	// Binary recursively splits children into two value-balanced halves,
	// cutting along the longer side.
	Binary Tiling = "binary"
)

// Tilings lists every supported strategy.
var Tilings = []Tiling{Squarify, Slice, Dice, SliceDice, Binary}

// ParseTiling converts a name to a Tiling. The empty string means [Squarify].
func ParseTiling(s string) (Tiling, error) {
	if s == "" {
		return Squarify, nil
	}
	t := Tiling(s)
	if !slices.Contains(Tilings, t) {
		return "", errors.New(errors.ErrCodeInvalidTiling, "unknown tiling %q (valid: %v)", s, Tilings)
	}
	return t, nil
}

func (t Tiling) String() string { return string(t) }

// phi is the target aspect ratio of squarified rows.
var phi = (1 + math.Sqrt(5)) / 2

type tileFunc func(parent *Cell, r Rect)

func (t Tiling) fn() (tileFunc, error) {
	switch t {
	case Squarify, "":
		return func(p *Cell, r Rect) { squarify(phi, p, r) }, nil
	case Slice:
		return func(p *Cell, r Rect) { slice(p.Children, p.Value, r) }, nil
	case Dice:
		return func(p *Cell, r Rect) { dice(p.Children, p.Value, r) }, nil
	case SliceDice:
		return func(p *Cell, r Rect) {
			if p.Depth%2 == 1 {
				slice(p.Children, p.Value, r)
			} else {
				dice(p.Children, p.Value, r)
			}
		}, nil
	case Binary:
		return binary, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidTiling, "unknown tiling %q", string(t))
}

// dice divides r horizontally among cells in proportion to value.
func dice(cells []*Cell, value float64, r Rect) {
	k := 0.0
	if value > 0 {
		k = r.Width() / value
	}
	x := r.X0
	for i, c := range cells {
		c.Y0, c.Y1 = r.Y0, r.Y1
		c.X0 = x
		x += c.Value * k
		c.X1 = x
		if i == len(cells)-1 && value > 0 {
			c.X1 = r.X1
		}
	}
}

// slice divides r vertically among cells in proportion to value.
func slice(cells []*Cell, value float64, r Rect) {
	k := 0.0
	if value > 0 {
		k = r.Height() / value
	}
	y := r.Y0
	for i, c := range cells {
		c.X0, c.X1 = r.X0, r.X1
		c.Y0 = y
		y += c.Value * k
		c.Y1 = y
		if i == len(cells)-1 && value > 0 {
			c.Y1 = r.Y1
		}
	}
}

// squarify places children in successive rows along the shorter side of the
// remaining rectangle, growing each row while its worst aspect ratio keeps
// improving.
func squarify(ratio float64, parent *Cell, r Rect) {
	nodes := parent.Children
	n := len(nodes)
	value := parent.Value
	x0, y0, x1, y1 := r.X0, r.Y0, r.X1, r.Y1

	i0, i1 := 0, 0
	for i0 < n {
		dx, dy := x1-x0, y1-y0

		// Seed the row with the next non-empty node.
		var sumValue float64
		for {
			sumValue = nodes[i1].Value
			i1++
			if sumValue != 0 || i1 >= n {
				break
			}
		}
		minValue, maxValue := sumValue, sumValue
		alpha := math.Max(dy/dx, dx/dy) / (value * ratio)
		beta := sumValue * sumValue * alpha
		minRatio := math.Max(maxValue/beta, beta/minValue)

		// Keep adding nodes while the aspect ratio maintains or improves.
		for ; i1 < n; i1++ {
			v := nodes[i1].Value
			sumValue += v
			if v < minValue {
				minValue = v
			}
			if v > maxValue {
				maxValue = v
			}
			beta = sumValue * sumValue * alpha
			newRatio := math.Max(maxValue/beta, beta/minValue)
			if newRatio > minRatio {
				sumValue -= v
				break
			}
			minRatio = newRatio
		}

		row := nodes[i0:i1]
		if dx < dy {
			ny := y1
			if value > 0 && i1 < n {
				ny = y0 + dy*sumValue/value
			}
			dice(row, sumValue, Rect{X0: x0, Y0: y0, X1: x1, Y1: ny})
			y0 = ny
		} else {
			nx := x1
			if value > 0 && i1 < n {
				nx = x0 + dx*sumValue/value
			}
			slice(row, sumValue, Rect{X0: x0, Y0: y0, X1: nx, Y1: y1})
			x0 = nx
		}
		value -= sumValue
		i0 = i1
	}
}

// binary partitions children into two groups of roughly equal value and
// recurses, cutting the longer side each time.
func binary(parent *Cell, r Rect) {
	nodes := parent.Children
	n := len(nodes)
	if n == 0 {
		return
	}
	sums := make([]float64, n+1)
	for i, c := range nodes {
		sums[i+1] = sums[i] + c.Value
	}

	var partition func(i, j int, value float64, r Rect)
	partition = func(i, j int, value float64, r Rect) {
		if i >= j-1 {
			nodes[i].Rect = r
			return
		}

		offset := sums[i]
		target := value/2 + offset
		k, hi := i+1, j-1
		for k < hi {
			mid := int(uint(k+hi) >> 1)
			if sums[mid] < target {
				k = mid + 1
			} else {
				hi = mid
			}
		}
		if target-sums[k-1] < sums[k]-target && i+1 < k {
			k--
		}

		left := sums[k] - offset
		right := value - left
		if r.Width() > r.Height() {
			xk := r.X1
			if value > 0 {
				xk = (r.X0*right + r.X1*left) / value
			}
			partition(i, k, left, Rect{X0: r.X0, Y0: r.Y0, X1: xk, Y1: r.Y1})
			partition(k, j, right, Rect{X0: xk, Y0: r.Y0, X1: r.X1, Y1: r.Y1})
		} else {
			yk := r.Y1
			if value > 0 {
				yk = (r.Y0*right + r.Y1*left) / value
			}
			partition(i, k, left, Rect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: yk})
			partition(k, j, right, Rect{X0: r.X0, Y0: yk, X1: r.X1, Y1: r.Y1})
		}
	}
	partition(0, n, parent.Value, r)
}
