package byaml

import (
	"iter"
	"slices"
)

// Dictionary maps names to nodes and remembers the order keys were first
// inserted. Setting an existing key replaces its value in place, which is
// also how a file with a repeated name decodes: first position, last value.
//
// The zero value is an empty dictionary ready to use.
type Dictionary struct {
	keys  []string
	items map[string]Node
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{items: make(map[string]Node)}
}

func newDictionaryCap(n int) *Dictionary {
	return &Dictionary{keys: make([]string, 0, n), items: make(map[string]Node, n)}
}

func (d *Dictionary) Type() NodeType { return TypeDictionary }
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}
func (d *Dictionary) node() {}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Node, bool) {
	if d == nil {
		return nil, false
	}
	n, ok := d.items[key]
	return n, ok
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d.items[key]
	return ok
}

// Set stores n under key. New keys go to the end; existing keys keep
// their position.
func (d *Dictionary) Set(key string, n Node) {
	if d.items == nil {
		d.items = make(map[string]Node)
	}
	if _, ok := d.items[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.items[key] = n
}

// Delete removes key, reporting whether it was present.
func (d *Dictionary) Delete(key string) bool {
	if d == nil {
		return false
	}
	if _, ok := d.items[key]; !ok {
		return false
	}
	delete(d.items, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns a copy of the keys in order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// All yields key/value pairs in order.
func (d *Dictionary) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.items[k]) {
				return
			}
		}
	}
}
