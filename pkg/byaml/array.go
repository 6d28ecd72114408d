package byaml

import (
	"iter"
	"slices"
)

// Array is an ordered sequence of nodes of any type.
type Array struct {
	Items []Node
}

// NewArray returns an array holding items.
func NewArray(items ...Node) *Array {
	return &Array{Items: items}
}

func (a *Array) Type() NodeType { return TypeArray }
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Items)
}
func (a *Array) node() {}

// At returns the element at index i.
func (a *Array) At(i int) (Node, bool) {
	if i < 0 || i >= a.Len() {
		return nil, false
	}
	return a.Items[i], true
}

// Set replaces the element at index i. It reports false when i is out of range.
func (a *Array) Set(i int, n Node) bool {
	if i < 0 || i >= len(a.Items) {
		return false
	}
	a.Items[i] = n
	return true
}

// Append adds nodes to the end.
func (a *Array) Append(n ...Node) {
	a.Items = append(a.Items, n...)
}

// Insert places n before index i; i == Len() appends.
func (a *Array) Insert(i int, n Node) bool {
	if i < 0 || i > len(a.Items) {
		return false
	}
	a.Items = slices.Insert(a.Items, i, n)
	return true
}

// Delete removes the element at index i.
func (a *Array) Delete(i int) bool {
	if i < 0 || i >= len(a.Items) {
		return false
	}
	a.Items = slices.Delete(a.Items, i, i+1)
	return true
}

// All yields index/element pairs in order.
func (a *Array) All() iter.Seq2[int, Node] {
	if a == nil {
		return func(func(int, Node) bool) {}
	}
	return slices.All(a.Items)
}
