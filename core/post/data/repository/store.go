// Package repository provides post storage: an in-memory store, a SQL store
// (sqlite, postgres, mysql), a Mongo store and a redis read-through cache.
package repository

import (
	"context"
	"fmt"

	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/ecode"
)

// Kind tags the result of a store operation.
type Kind int

const (
	OK Kind = iota
	NotFound
	Conflict
	Fault
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Fault:
		return "fault"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is a tagged store result. Value is set only when Kind is OK and Err
// only when Kind is Fault.
type Outcome[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Outcome[T] { return Outcome[T]{Kind: OK, Value: v} }

// Missing reports that the record does not exist.
func Missing[T any]() Outcome[T] { return Outcome[T]{Kind: NotFound} }

// Conflicted reports that the record changed since it was read.
func Conflicted[T any]() Outcome[T] { return Outcome[T]{Kind: Conflict} }

// Failed wraps a store fault.
func Failed[T any](err error) Outcome[T] { return Outcome[T]{Kind: Fault, Err: err} }

// Error converts a non-OK outcome into a coded error, nil otherwise.
func (o Outcome[T]) Error() error {
	switch o.Kind {
	case OK:
		return nil
	case NotFound:
		return ecode.ErrNotFound
	case Conflict:
		return ecode.ErrConflict
	}
	if o.Err != nil {
		return o.Err
	}
	return fmt.Errorf("store fault")
}

// Store is the persistent post collaborator. Update and Remove compare the
// version carried by the given post with the stored one and report Conflict
// when they differ. No operation panics.
type Store interface {
	ListAll(ctx context.Context) Outcome[[]*structs.Post]
	FindByID(ctx context.Context, id int64) Outcome[*structs.Post]
	// Add assigns ID and Version on a copy of p and returns it.
	Add(ctx context.Context, p *structs.Post) Outcome[*structs.Post]
	// Update persists title and content and bumps the version.
	Update(ctx context.Context, p *structs.Post) Outcome[*structs.Post]
	Remove(ctx context.Context, p *structs.Post) Outcome[struct{}]
	Ping(ctx context.Context) error
	Close() error
}

type latestReader interface {
	FindLatest(ctx context.Context, id int64) Outcome[*structs.Post]
}

// FindLatest reads a post from the system of record, skipping any cache in
// front of it. Writers use it to load the version they write against.
func FindLatest(ctx context.Context, s Store, id int64) Outcome[*structs.Post] {
	if lr, ok := s.(latestReader); ok {
		return lr.FindLatest(ctx, id)
	}
	return s.FindByID(ctx, id)
}
