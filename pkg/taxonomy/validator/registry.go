package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownReference is returned when recording under a name that was
	// never registered before the registry was closed.
	ErrUnknownReference = errors.New("unknown predicate reference")

	// ErrRegistryClosed is returned when registering a new name after Close.
	ErrRegistryClosed = errors.New("registry is closed")
)

// Registry maps declared predicate names to the entries that reference them.
//
// It has two phases. While open, Register creates names. After Close, Record
// succeeds for registered names and fails with ErrUnknownReference for any
// other name. A Registry lives for a single cross-reference pass.
type Registry struct {
	slots  map[string][]string
	order  []string
	closed bool
}

// NewRegistry creates an open, empty registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string][]string),
	}
}

// Register declares name. Registering the same name twice is a no-op.
func (r *Registry) Register(name string) error {
	if r.closed {
		return fmt.Errorf("register %q: %w", name, ErrRegistryClosed)
	}
	if _, ok := r.slots[name]; ok {
		return nil
	}
	r.slots[name] = []string{}
	r.order = append(r.order, name)
	return nil
}

// Close ends the registration phase.
func (r *Registry) Close() {
	r.closed = true
}

// Record appends entry under name. Once closed, an unregistered name is an
// ErrUnknownReference. Before Close, an unregistered name is created.
func (r *Registry) Record(name, entry string) error {
	if _, ok := r.slots[name]; !ok {
		if r.closed {
			return fmt.Errorf("%q: %w", name, ErrUnknownReference)
		}
		r.order = append(r.order, name)
	}
	r.slots[name] = append(r.slots[name], entry)
	return nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
