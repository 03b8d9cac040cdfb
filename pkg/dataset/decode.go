package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// rawNode mirrors the wire shape shared by groups and leaves.
// Children is a pointer so an explicit empty list still marks a group.
type rawNode struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Value    json.RawMessage `json:"value"`
	Children *[]*rawNode     `json:"children"`
}

// Decode reads a JSON sales tree from r.
//
// An object with a "children" key becomes a *CategoryGroup; any other object
// becomes a *SalesRecord. Leaf values may be JSON numbers or numeric strings
// ("82.53"); a missing value decodes as 0 and is rejected later by layout.
//
// The input must hold exactly one JSON object; trailing data and a top-level
// value of any other kind are errors.
func Decode(r io.Reader) (Node, error) {
	var doc json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("decode dataset: unexpected data after the root object")
	}
	if len(doc) == 0 || doc[0] != '{' {
		return nil, fmt.Errorf("decode dataset: root must be a JSON object, got %.20s", doc)
	}

	var raw rawNode
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return raw.build("")
}

// DecodeBytes is a convenience wrapper around [Decode].
func DecodeBytes(data []byte) (Node, error) {
	return Decode(bytes.NewReader(data))
}

func (n rawNode) build(path string) (Node, error) {
	here := path + "/" + n.Name
	if n.Children != nil {
		g := &CategoryGroup{Name: n.Name, Children: make([]Node, 0, len(*n.Children))}
		for i, c := range *n.Children {
			if c == nil {
				return nil, fmt.Errorf("decode dataset: %s: child %d is null", here, i)
			}
			child, err := c.build(here)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, child)
		}
		return g, nil
	}

	v, err := parseValue(n.Value)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: leaf %s: %w", here, err)
	}
	return &SalesRecord{Name: n.Name, Category: n.Category, Value: v}, nil
}

// parseValue accepts a JSON number, a numeric JSON string, or null/absent.
func parseValue(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		s, err := strconv.Unquote(text)
		if err != nil {
			return 0, fmt.Errorf("invalid value %s", text)
		}
		text = s
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("invalid value %s", string(raw))
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %s is out of range", string(raw))
	}
	return f, nil
}

// FormatValue renders a leaf value the way it appears in the source data:
// shortest decimal form without a trailing ".0".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
