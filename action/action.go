// Package action defines the logical action identity used as a lookup key
// throughout the engine. An action carries no state of its own; bindings,
// buffers, and diffs are all keyed by its hash.
package action

// Actionlike is a logical, named game input (e.g. "jump") independent of any
// physical device. Hash must be stable and unique within one action domain.
type Actionlike interface {
	Hash() string
	Equals(other Actionlike) bool
}

// Named is the simplest Actionlike: the action name is its own hash.
type Named string

// Hash returns the action name.
func (n Named) Hash() string {
	return string(n)
}

// Equals reports whether other identifies the same action.
func (n Named) Equals(other Actionlike) bool {
	return other != nil && n.Hash() == other.Hash()
}

// Opaque wraps a bare hash recovered from a wire payload. The receiving side
// of a diff does not need the concrete action type, only its hash-identified
// slot in the target state.
type Opaque struct {
	H string
}

// Hash returns the recovered hash.
func (o Opaque) Hash() string {
	return o.H
}

// Equals reports whether other identifies the same action.
func (o Opaque) Equals(other Actionlike) bool {
	return other != nil && o.H == other.Hash()
}
