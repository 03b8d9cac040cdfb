// Package treemap computes space-filling rectangle layouts for sales trees.
//
// [Compute] is a pure function: it reads a [dataset.Node] tree and returns a
// [Layout] whose cells mirror the tree, each annotated with its aggregate
// value, height and rectangle. The input tree is never modified.
//
// # Algorithm
//
//  1. Every cell's value is the sum of its descendant leaf values.
//  2. Siblings are ordered by descending height (deeper subtrees first), then
//     by descending value. The order only affects placement.
//  3. Starting from [0,W]×[0,H], each group's rectangle is partitioned among
//     its children in proportion to their values using a [Tiling] strategy.
//
// Whatever the tiling, leaf rectangles are axis-aligned, do not overlap, and
// together cover the bounding box exactly (up to floating-point error).
package treemap

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/errors"
)

// Rect is an axis-aligned rectangle in pixel space with X0<=X1 and Y0<=Y1.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Intersection returns the area shared by r and o (0 when they only touch).
func (r Rect) Intersection(o Rect) float64 {
	w := math.Min(r.X1, o.X1) - math.Max(r.X0, o.X0)
	h := math.Min(r.Y1, o.Y1) - math.Max(r.Y0, o.Y0)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Cell is one node of a computed layout.
type Cell struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value"`
	Depth    int     `json:"depth"`
	Height   int     `json:"height"`
	Leaf     bool    `json:"leaf,omitempty"`
	Rect
	Children []*Cell `json:"children,omitempty"`
}

// Layout is a computed treemap.
type Layout struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Tiling  Tiling  `json:"tiling"`
	Rounded bool    `json:"rounded,omitempty"`
	Root    *Cell   `json:"root"`
}

// Leaves returns the leaf cells in depth-first order.
func (l Layout) Leaves() []*Cell {
	var out []*Cell
	l.Walk(func(c *Cell) {
		if c.Leaf {
			out = append(out, c)
		}
	})
	return out
}

// Walk visits every cell depth-first, parents before children.
func (l Layout) Walk(fn func(*Cell)) {
	if l.Root == nil {
		return
	}
	var visit func(*Cell)
	visit = func(c *Cell) {
		fn(c)
		for _, ch := range c.Children {
			visit(ch)
		}
	}
	visit(l.Root)
}

// Option configures [Compute].
type Option func(*options)

type options struct {
	tiling Tiling
	round  bool
}

// WithTiling selects the partitioning strategy (default [Squarify]).
func WithTiling(t Tiling) Option { return func(o *options) { o.tiling = t } }

// WithRound snaps all coordinates to whole pixels. Shared edges round to the
// same value, so tiling and non-overlap are preserved.
func WithRound() Option { return func(o *options) { o.round = true } }

// Compute lays out root inside a width×height box.
//
// It fails with ErrCodeEmptyTree when the tree has no leaf records, with
// ErrCodeNonPositiveValue when any leaf value is not a finite number > 0,
// and with ErrCodeInvalidInput for a degenerate bounding box.
func Compute(root dataset.Node, width, height float64, opts ...Option) (Layout, error) {
	o := options{tiling: Squarify}
	for _, opt := range opts {
		opt(&o)
	}
	tile, err := o.tiling.fn()
	if err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return Layout{}, err
	}
	if root == nil {
		return Layout{}, errors.New(errors.ErrCodeEmptyTree, "dataset is empty")
	}

	leaves := dataset.Leaves(root)
	if len(leaves) == 0 {
		return Layout{}, errors.New(errors.ErrCodeEmptyTree, "dataset %q has no leaf records", root.Label())
	}
	for _, r := range leaves {
		if !(r.Value > 0) || math.IsInf(r.Value, 0) {
			return Layout{}, errors.New(errors.ErrCodeNonPositiveValue,
				"leaf %q has value %v; values must be positive", r.Name, r.Value)
		}
	}

	cell := build(root, 0)
	cell.Rect = Rect{X0: 0, Y0: 0, X1: width, Y1: height}
	position(cell, tile)
	if o.round {
		roundCells(cell)
	}

	return Layout{
		Width:   width,
		Height:  height,
		Tiling:  o.tiling,
		Rounded: o.round,
		Root:    cell,
	}, nil
}

// build mirrors the tree as cells, summing values bottom-up and ordering
// siblings by height then value.
func build(n dataset.Node, depth int) *Cell {
	switch n := n.(type) {
	case *dataset.SalesRecord:
		return &Cell{Name: n.Name, Category: n.Category, Value: n.Value, Depth: depth, Leaf: true}
	case *dataset.CategoryGroup:
		c := &Cell{Name: n.Name, Depth: depth, Children: make([]*Cell, 0, len(n.Children))}
		for _, child := range n.Children {
			cc := build(child, depth+1)
			c.Value += cc.Value
			c.Height = max(c.Height, cc.Height+1)
			c.Children = append(c.Children, cc)
		}
		slices.SortStableFunc(c.Children, compareSiblings)
		return c
	}
	return &Cell{Depth: depth}
}

func compareSiblings(a, b *Cell) int {
	if c := cmp.Compare(b.Height, a.Height); c != 0 {
		return c
	}
	return cmp.Compare(b.Value, a.Value)
}

// position tiles every group's rectangle among its children, top-down.
func position(c *Cell, tile tileFunc) {
	if len(c.Children) == 0 {
		return
	}
	tile(c, c.Rect)
	for _, ch := range c.Children {
		position(ch, tile)
	}
}

func roundCells(c *Cell) {
	c.X0, c.Y0 = math.Round(c.X0), math.Round(c.Y0)
	c.X1, c.Y1 = math.Round(c.X1), math.Round(c.Y1)
	for _, ch := range c.Children {
		roundCells(ch)
	}
}
