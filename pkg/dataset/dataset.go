// Package dataset defines the hierarchical sales tree rendered by salesmap.
//
// A dataset is a tree of [CategoryGroup] nodes terminating in [SalesRecord]
// leaves. Both implement [Node], a closed variant: code that needs to tell
// them apart uses a type switch rather than probing for children.
//
// Trees are built once by [Decode] and never mutated afterwards. Layout and
// rendering read them; neither writes back.
package dataset

import (
	"github.com/shopspring/decimal"
)

// Node is a vertex of the sales tree: either a *CategoryGroup or a *SalesRecord.
type Node interface {
	// Label returns the node's display name.
	Label() string

	node()
}

// SalesRecord is a leaf of the tree carrying one title's sales figure.
type SalesRecord struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// CategoryGroup is an internal node grouping child nodes.
// Its aggregate value is derived from its leaves and not stored.
type CategoryGroup struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

func (r *SalesRecord) Label() string   { return r.Name }
func (g *CategoryGroup) Label() string { return g.Name }

func (*SalesRecord) node()   {}
func (*CategoryGroup) node() {}

// Walk visits n and its descendants depth-first in child order.
// Returning false from fn skips the children of the visited node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if g, ok := n.(*CategoryGroup); ok {
		for _, c := range g.Children {
			walk(c, depth+1, fn)
		}
	}
}

// Leaves returns every SalesRecord under n in depth-first order.
func Leaves(n Node) []*SalesRecord {
	var out []*SalesRecord
	Walk(n, func(n Node, _ int) bool {
		if r, ok := n.(*SalesRecord); ok {
			out = append(out, r)
		}
		return true
	})
	return out
}

// Height returns the distance from n to its furthest leaf descendant.
// Leaves and childless groups have height 0.
func Height(n Node) int {
	g, ok := n.(*CategoryGroup)
	if !ok {
		return 0
	}
	h := 0
	for _, c := range g.Children {
		if ch := Height(c) + 1; ch > h {
			h = ch
		}
	}
	return h
}

// Total returns the exact decimal sum of all leaf values under n.
func Total(n Node) decimal.Decimal {
	total := decimal.Zero
	for _, r := range Leaves(n) {
		total = total.Add(decimal.NewFromFloat(r.Value))
	}
	return total
}

// Summary aggregates the leaves of one category.
type Summary struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

// Summarize groups the leaves of n by category, in first-seen order.
func Summarize(n Node) []Summary {
	var out []Summary
	index := make(map[string]int)
	for _, r := range Leaves(n) {
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, Summary{Category: r.Category, Total: decimal.Zero})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(decimal.NewFromFloat(r.Value))
	}
	return out
}

// Categories lists the distinct leaf categories under n in first-seen order.
func Categories(n Node) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range Leaves(n) {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}
