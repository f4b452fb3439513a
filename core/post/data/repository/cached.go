package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/data/cache"
	"github.com/ncobase/posts/logging/logger"
)

// CachedPost is the cache representation of a post. Unlike the wire form it
// keeps the version so cached reads can still be written back. A tombstone
// holds no post; it only fences off fills older than Version.
type CachedPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Version   int64     `json:"version"`
	Tombstone bool      `json:"tombstone,omitempty"`
}

func toCached(p *structs.Post) *CachedPost {
	return &CachedPost{ID: p.ID, Title: p.Title, Content: p.Content, CreatedAt: p.CreatedAt, Version: p.Version}
}

func (c *CachedPost) post() *structs.Post {
	return &structs.Post{ID: c.ID, Title: c.Title, Content: c.Content, CreatedAt: c.CreatedAt, Version: c.Version}
}

type cachedStore struct {
	Store
	cache  cache.IVersionedCache[CachedPost]
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedStore puts a read-through cache in front of FindByID. Fills are
// ordered by version, and successful writes leave a tombstone at the new
// version so a fill that raced the write cannot bring the old row back.
// Cache failures are logged and never fail the call.
func NewCachedStore(next Store, c cache.IVersionedCache[CachedPost], ttl time.Duration, l *logger.Logger) Store {
	return &cachedStore{Store: next, cache: c, ttl: ttl, logger: l}
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *cachedStore) FindByID(ctx context.Context, id int64) Outcome[*structs.Post] {
	hit, err := s.cache.Get(ctx, cacheKey(id))
	if err != nil {
		s.logger.Warn(ctx, "post cache read failed", "id", id, "error", err)
	}
	if hit != nil && !hit.Tombstone {
		return Ok(hit.post())
	}

	out := s.Store.FindByID(ctx, id)
	if out.Kind == OK {
		s.fill(ctx, id, toCached(out.Value))
	}
	return out
}

// FindLatest skips the cache.
func (s *cachedStore) FindLatest(ctx context.Context, id int64) Outcome[*structs.Post] {
	return FindLatest(ctx, s.Store, id)
}

func (s *cachedStore) Update(ctx context.Context, p *structs.Post) Outcome[*structs.Post] {
	out := s.Store.Update(ctx, p)
	if out.Kind == OK {
		s.fence(ctx, p.ID, out.Value.Version)
	}
	return out
}

func (s *cachedStore) Remove(ctx context.Context, p *structs.Post) Outcome[struct{}] {
	out := s.Store.Remove(ctx, p)
	if out.Kind == OK {
		s.fence(ctx, p.ID, p.Version+1)
	}
	return out
}

func (s *cachedStore) fill(ctx context.Context, id int64, c *CachedPost) {
	if _, err := s.cache.SetIfNewer(ctx, cacheKey(id), c, c.Version, s.ttl); err != nil {
		s.logger.Warn(ctx, "post cache write failed", "id", id, "error", err)
	}
}

// fence replaces the entry with a tombstone at version.
func (s *cachedStore) fence(ctx context.Context, id, version int64) {
	tomb := &CachedPost{ID: id, Version: version, Tombstone: true}
	if _, err := s.cache.SetIfNewer(ctx, cacheKey(id), tomb, version, s.ttl); err != nil {
		s.logger.Warn(ctx, "post cache invalidation failed", "id", id, "error", err)
		// fall back to dropping the entry
		if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
			s.logger.Warn(ctx, "post cache delete failed", "id", id, "error", err)
		}
	}
}
