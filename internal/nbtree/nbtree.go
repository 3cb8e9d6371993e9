// Package nbtree provides read-only navigation over binary NBT tag trees.
// Nil nodes are safe to traverse, so a missing branch anywhere along a
// path simply yields zero values instead of an error.
package nbtree

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/nbt/dynbt"
)

// Node is a handle on one tag of a parsed tree.
type Node struct {
	v *dynbt.Value
}

// ReadFile parses an NBT file, transparently unwrapping a gzip container
// when the file starts with the gzip magic bytes.
func ReadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag tree file: %w", err)
	}
	return Parse(data)
}

// Parse parses raw or gzip-compressed NBT data.
func Parse(data []byte) (*Node, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip container: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("failed to decompress tag tree: %w", err)
		}
	}

	var v dynbt.Value
	if err := nbt.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse tag tree: %w", err)
	}
	return &Node{v: &v}, nil
}

// Child returns the named child of a compound tag, or nil when the tag is
// missing or this node is not a compound.
func (n *Node) Child(name string) *Node {
	if n == nil || n.v == nil {
		return nil
	}
	c := n.v.Get(name)
	if c == nil {
		return nil
	}
	return &Node{v: c}
}

// Text returns the node's string value, empty for anything else. Named
// Text rather than String so Node does not become a fmt.Stringer.
func (n *Node) Text() string {
	if n == nil || n.v == nil {
		return ""
	}
	return n.v.String()
}

// Short returns the node's short value, zero for anything else.
func (n *Node) Short() int16 {
	if n == nil || n.v == nil {
		return 0
	}
	return n.v.Short()
}

// Ints returns the node's integer elements. Both int-array tags and lists
// of int tags are accepted; anything else yields nil.
func (n *Node) Ints() []int {
	if n == nil || n.v == nil {
		return nil
	}
	switch n.v.TagType() {
	case nbt.TagIntArray:
		arr := n.v.IntArray()
		out := make([]int, len(arr))
		for i, x := range arr {
			out[i] = int(x)
		}
		return out
	case nbt.TagList:
		list := n.v.List()
		out := make([]int, 0, len(list))
		for _, e := range list {
			if e != nil {
				out = append(out, int(e.Int()))
			}
		}
		return out
	default:
		return nil
	}
}
