package db

import "encoding/json"

// Patch is one field of a partial update. Set is true when the caller
// supplied the field, even if the supplied value is null.
type Patch[T any] struct {
	Set   bool
	Value T
}

// Some returns a Patch that overwrites the field with v
func Some[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: v}
}

// UnmarshalJSON only runs for keys present in the document, which is what
// marks the field as set
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Set = true
	return json.Unmarshal(data, &p.Value)
}
