package core

import "strconv"

// Fields is a string mapping that remembers insertion order.
type Fields struct {
	keys   []string
	values map[string]string
}

// NewFields returns an empty Fields.
func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (f *Fields) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// SetNonEmpty is Set, skipping empty values.
func (f *Fields) SetNonEmpty(key, value string) {
	if value != "" {
		f.Set(key, value)
	}
}

// SetInt stores an integer value.
func (f *Fields) SetInt(key string, value int64) {
	f.Set(key, strconv.FormatInt(value, 10))
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Each calls fn for every pair in insertion order.
func (f *Fields) Each(fn func(key, value string)) {
	for _, k := range f.keys {
		fn(k, f.values[k])
	}
}

// MergeTracks flattens tracks into a single mapping. A field set by a later
// track replaces the value of the same field from an earlier one.
func MergeTracks(tracks []Track) *Fields {
	out := NewFields()
	for _, t := range tracks {
		if t.Fields == nil {
			continue
		}
		t.Fields.Each(out.Set)
	}
	return out
}
