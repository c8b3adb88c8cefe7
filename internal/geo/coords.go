// Package geo holds the coordinate tree used when rewriting district files.
package geo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Node is one value inside a GeoJSON coordinates field: either a
// number or a list of nodes. GeoJSON nests these homogeneously
// (position, ring, polygon, multipolygon), which Round relies on.
type Node struct {
	Items []Node
	Value float64
	IsNum bool
}

// FromValue builds a Node from a decoded JSON value. Accepts float64,
// json.Number and []interface{}; anything else is not a coordinate.
func FromValue(v interface{}) (Node, error) {
	switch val := v.(type) {
	case float64:
		return Node{IsNum: true, Value: val}, nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Node{}, fmt.Errorf("coordinate %q: %w", val.String(), err)
		}
		return Node{IsNum: true, Value: f}, nil
	case []interface{}:
		items := make([]Node, len(val))
		for i, c := range val {
			n, err := FromValue(c)
			if err != nil {
				return Node{}, err
			}
			items[i] = n
		}
		return Node{Items: items}, nil
	default:
		return Node{}, fmt.Errorf("coordinate value has type %T, want number or list", v)
	}
}

// Round returns a copy of the tree with every numeric leaf rounded to
// the given number of decimal places, half to even. The nesting shape
// is decided per level: an empty list stays empty, a list whose first
// element is a list recurses, and anything else is treated as a flat
// position of numbers.
func (n Node) Round(places int) Node {
	if n.IsNum {
		return Node{IsNum: true, Value: roundTo(n.Value, places)}
	}
	if len(n.Items) == 0 {
		return n
	}
	out := make([]Node, len(n.Items))
	if !n.Items[0].IsNum {
		for i, c := range n.Items {
			out[i] = c.Round(places)
		}
	} else {
		for i, c := range n.Items {
			out[i] = Node{IsNum: true, Value: roundTo(c.Value, places)}
		}
	}
	return Node{Items: out}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(v*p) / p
}

// MarshalJSON emits the node as a bare number or a JSON array.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.IsNum {
		return json.Marshal(n.Value)
	}
	if n.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(n.Items)
}

// UnmarshalJSON accepts either a number or an array of nodes.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		items := []Node{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*n = Node{Items: items}
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*n = Node{IsNum: true, Value: v}
	return nil
}
