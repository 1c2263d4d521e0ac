package docmodel

import (
	"sort"
	"strings"
)

// FrontMatterBlock is an ordered key/value metadata section. Keys keep the
// casing they were written with; lookups match case-insensitively.
type FrontMatterBlock struct {
	keys   []string
	values map[string]string
}

// NewFrontMatterBlock returns an empty block.
func NewFrontMatterBlock() *FrontMatterBlock {
	return &FrontMatterBlock{values: map[string]string{}}
}

// Set records a key/value pair. The first write wins: a later value for a
// key already present (compared case-insensitively) is dropped.
func (b *FrontMatterBlock) Set(key, value string) bool {
	if _, ok := b.lookup(key); ok {
		return false
	}
	b.keys = append(b.keys, key)
	b.values[key] = value
	return true
}

// Get returns the value for key, matched case-insensitively.
func (b *FrontMatterBlock) Get(key string) (string, bool) {
	_, v, ok := b.entry(key)
	return v, ok
}

func (b *FrontMatterBlock) lookup(key string) (string, bool) {
	k, _, ok := b.entry(key)
	return k, ok
}

func (b *FrontMatterBlock) entry(key string) (string, string, bool) {
	for _, k := range b.keys {
		if strings.EqualFold(k, key) {
			return k, b.values[k], true
		}
	}
	return "", "", false
}

// Len returns the number of entries.
func (b *FrontMatterBlock) Len() int { return len(b.keys) }

// SortedKeys returns the keys in lexicographic (ordinal) order.
func (b *FrontMatterBlock) SortedKeys() []string {
	out := append([]string(nil), b.keys...)
	sort.Strings(out)
	return out
}

// Value returns the value stored under the exact key.
func (b *FrontMatterBlock) Value(key string) string { return b.values[key] }
