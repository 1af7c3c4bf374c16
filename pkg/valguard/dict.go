// Constrained mapping: an insertion-ordered associative container that
// validates every stored value against one fixed constraint.
package valguard

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ConstrainedValueDict maps keys to Value subtypes while maintaining the
// invariant that every stored value satisfies the container's constraint.
// The constraint is fixed at construction; every write re-validates the
// incoming value, so reads never need to.
//
// The container is not safe for concurrent writers; callers sharing an
// instance across goroutines must serialize access externally.
type ConstrainedValueDict[K comparable, V Value] struct {
	constraint Constraint
	keys       []K
	items      map[K]V
}

// NewConstrainedValueDict creates an empty container. A nil constraint
// means unconstrained (AnyConstraint).
func NewConstrainedValueDict[K comparable, V Value](c Constraint) *ConstrainedValueDict[K, V] {
	if c == nil {
		c = AnyConstraint{}
	}
	return &ConstrainedValueDict[K, V]{
		constraint: c,
		items:      make(map[K]V),
	}
}

// NewConstrainedValueDictWith creates a container pre-populated with data.
// Every entry is validated before the container exists; the first failure
// aborts construction and no partially-populated container is returned.
func NewConstrainedValueDictWith[K comparable, V Value](c Constraint, data map[K]V) (*ConstrainedValueDict[K, V], error) {
	d := NewConstrainedValueDict[K, V](c)
	for k, v := range data {
		if _, err := d.constraint.Validate(v); err != nil {
			return nil, fmt.Errorf("entry %v: %w", k, err)
		}
	}
	for k, v := range data {
		d.insert(k, v)
	}
	return d, nil
}

// Constraint returns the container's constraint.
func (d *ConstrainedValueDict[K, V]) Constraint() Constraint { return d.constraint }

// Set validates v against the container's constraint and stores it under
// k. On failure the prior state for k, or its absence, is unchanged.
func (d *ConstrainedValueDict[K, V]) Set(k K, v V) error {
	if _, err := d.constraint.Validate(v); err != nil {
		return err
	}
	d.insert(k, v)
	return nil
}

// Update applies the single-write rule to each entry independently: valid
// entries are stored, invalid ones are rejected. The returned error joins
// the per-entry failures, if any.
func (d *ConstrainedValueDict[K, V]) Update(data map[K]V) error {
	var errs []error
	for k, v := range data {
		if err := d.Set(k, v); err != nil {
			errs = append(errs, fmt.Errorf("entry %v: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the value stored under k.
func (d *ConstrainedValueDict[K, V]) Get(k K) (V, bool) {
	v, ok := d.items[k]
	return v, ok
}

// Contains reports whether k is present.
func (d *ConstrainedValueDict[K, V]) Contains(k K) bool {
	_, ok := d.items[k]
	return ok
}

// Delete removes k, reporting whether it was present.
func (d *ConstrainedValueDict[K, V]) Delete(k K) bool {
	if _, ok := d.items[k]; !ok {
		return false
	}
	delete(d.items, k)
	for i, key := range d.keys {
		if key == k {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (d *ConstrainedValueDict[K, V]) Len() int { return len(d.items) }

// Keys returns the keys in insertion order.
func (d *ConstrainedValueDict[K, V]) Keys() []K {
	out := make([]K, len(d.keys))
	copy(out, d.keys)
	return out
}

// Values returns the values in insertion order.
func (d *ConstrainedValueDict[K, V]) Values() []V {
	out := make([]V, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.items[k])
	}
	return out
}

// All iterates entries in insertion order.
func (d *ConstrainedValueDict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range d.keys {
			if !yield(k, d.items[k]) {
				return
			}
		}
	}
}

// Clone returns a copy sharing the same constraint. Stored values are
// immutable, so no re-validation is needed.
func (d *ConstrainedValueDict[K, V]) Clone() *ConstrainedValueDict[K, V] {
	out := NewConstrainedValueDict[K, V](d.constraint)
	for _, k := range d.keys {
		out.insert(k, d.items[k])
	}
	return out
}

// String renders the constraint and the full mapping in insertion order.
func (d *ConstrainedValueDict[K, V]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ConstrainedValueDict(constraint=%s, data={", d.constraint)
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%#v: %#v", k, d.items[k])
	}
	b.WriteString("})")
	return b.String()
}

// insert stores a pre-validated entry, tracking insertion order for new
// keys.
func (d *ConstrainedValueDict[K, V]) insert(k K, v V) {
	if _, ok := d.items[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.items[k] = v
}
