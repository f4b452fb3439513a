package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ncobase/posts/core/post/structs"
)

var (
	errNilPost = errors.New("post is nil")
	errClosed  = errors.New("store is closed")
)

type memoryStore struct {
	mu     sync.RWMutex
	posts  map[int64]*structs.Post
	nextID int64
	closed bool
}

// NewMemoryStore creates a process-local store. Records are copied on the way
// in and out.
func NewMemoryStore() Store {
	return &memoryStore{posts: make(map[int64]*structs.Post), nextID: 1}
}

func (s *memoryStore) ListAll(_ context.Context) Outcome[[]*structs.Post] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Failed[[]*structs.Post](errClosed)
	}

	out := make([]*structs.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return Ok(out)
}

func (s *memoryStore) FindByID(_ context.Context, id int64) Outcome[*structs.Post] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Failed[*structs.Post](errClosed)
	}

	p, ok := s.posts[id]
	if !ok {
		return Missing[*structs.Post]()
	}
	return Ok(p.Clone())
}

func (s *memoryStore) Add(_ context.Context, p *structs.Post) Outcome[*structs.Post] {
	if p == nil {
		return Failed[*structs.Post](errNilPost)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Failed[*structs.Post](errClosed)
	}

	row := p.Clone()
	row.ID = s.nextID
	row.Version = 1
	s.nextID++
	s.posts[row.ID] = row
	return Ok(row.Clone())
}

func (s *memoryStore) Update(_ context.Context, p *structs.Post) Outcome[*structs.Post] {
	if p == nil {
		return Failed[*structs.Post](errNilPost)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Failed[*structs.Post](errClosed)
	}

	current, ok := s.posts[p.ID]
	if !ok {
		return Missing[*structs.Post]()
	}
	if current.Version != p.Version {
		return Conflicted[*structs.Post]()
	}

	row := current.Clone()
	row.Title = p.Title
	row.Content = p.Content
	row.Version++
	s.posts[row.ID] = row
	return Ok(row.Clone())
}

func (s *memoryStore) Remove(_ context.Context, p *structs.Post) Outcome[struct{}] {
	if p == nil {
		return Failed[struct{}](errNilPost)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Failed[struct{}](errClosed)
	}

	current, ok := s.posts[p.ID]
	if !ok {
		return Missing[struct{}]()
	}
	if current.Version != p.Version {
		return Conflicted[struct{}]()
	}
	delete(s.posts, p.ID)
	return Ok(struct{}{})
}

func (s *memoryStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errClosed
	}
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
