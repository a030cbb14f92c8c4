// Package respond composes the JSON response tree: the typed emitter, the
// response catalog that drives it for status snapshots, and the
// command-results array for batch execution outcomes.
//
// Rather than grow a string buffer with manual comma bookkeeping — the
// source of several latent bugs in the original C implementation — the
// emitter materializes an intermediate tree of plain Go values and
// serializes it once via encoding/json.
package respond

import "encoding/json"

// Builder is the typed value/array/block appender described by
// SPEC_FULL.md §2 item 1. Field order is not semantically meaningful (per
// §4.4), so the underlying representation is an ordinary map.
type Builder struct {
	fields map[string]interface{}
}

// NewBuilder returns an empty builder ready to compose one JSON object.
func NewBuilder() *Builder {
	return &Builder{fields: make(map[string]interface{})}
}

// Int appends a signed integer field.
func (b *Builder) Int(tag string, v int) *Builder {
	b.fields[tag] = v
	return b
}

// Uint appends an unsigned integer field.
func (b *Builder) Uint(tag string, v uint64) *Builder {
	b.fields[tag] = v
	return b
}

// Str appends a string field.
func (b *Builder) Str(tag string, v string) *Builder {
	b.fields[tag] = v
	return b
}

// Bool appends a boolean field.
func (b *Builder) Bool(tag string, v bool) *Builder {
	b.fields[tag] = v
	return b
}

// Block appends a nested object field, composed by fn.
func (b *Builder) Block(tag string, fn func(*Builder)) *Builder {
	sub := NewBuilder()
	fn(sub)
	b.fields[tag] = sub.fields
	return b
}

// IntArray appends an array-of-integers field.
func (b *Builder) IntArray(tag string, vals []int) *Builder {
	if vals == nil {
		vals = []int{}
	}
	b.fields[tag] = vals
	return b
}

// BlockArray appends an array of n nested objects, each composed by fn.
func (b *Builder) BlockArray(tag string, n int, fn func(i int, eb *Builder)) *Builder {
	arr := make([]map[string]interface{}, n)
	for i := 0; i < n; i++ {
		sub := NewBuilder()
		fn(i, sub)
		arr[i] = sub.fields
	}
	b.fields[tag] = arr
	return b
}

// Raw appends an already-built value verbatim (e.g. the result of a
// previous Builder.Fields() call).
func (b *Builder) Raw(tag string, v interface{}) *Builder {
	b.fields[tag] = v
	return b
}

// Fields returns the underlying map for embedding into a parent builder
// or for direct JSON marshaling.
func (b *Builder) Fields() map[string]interface{} {
	return b.fields
}

// JSON serializes the composed object.
func (b *Builder) JSON() ([]byte, error) {
	return json.Marshal(b.fields)
}
