package validator

import (
	"fmt"
	"sort"
	"sync"
)

// Validator checks an already-parsed payload.
type Validator interface {
	Validate(v any) Violations
}

// Registry maps a resource type tag to its validator. It is populated once at
// startup and read on every request.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register binds a validator to a resource tag. It panics on a nil validator,
// an empty tag or a duplicate registration.
func (r *Registry) Register(tag string, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v == nil {
		panic("validator: Register validator is nil")
	}
	if tag == "" {
		panic("validator: Register tag is empty")
	}
	if _, exists := r.validators[tag]; exists {
		panic(fmt.Sprintf("validator: Register called twice for tag %s", tag))
	}
	r.validators[tag] = v
}

// Lookup returns the validator for tag.
func (r *Registry) Lookup(tag string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[tag]
	return v, ok
}

// MustLookup is Lookup for wiring code that cannot run without a validator.
func (r *Registry) MustLookup(tag string) Validator {
	v, ok := r.Lookup(tag)
	if !ok {
		panic(fmt.Sprintf("validator: no validator registered for %s (registered: %v)", tag, r.Tags()))
	}
	return v
}

// Tags lists the registered tags in order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.validators))
	for tag := range r.validators {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
