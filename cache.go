package artfolio

import (
	"sync"
	"time"
)

// ListCache is an in-memory TTL cache of the public-facing lists: public
// paintings, all backgrounds, and published blog posts. Every write to the
// catalog invalidates it, so public readers see fresh data immediately
// after an admin edit. Accessors return copies so each caller owns its
// snapshot.
type ListCache struct {
	mu          sync.RWMutex
	paintings   []Painting
	backgrounds []Background
	posts       []BlogPost
	fetched     time.Time
	ttl         time.Duration
	store       *Store
}

// NewListCache creates a ListCache backed by the given Store.
func NewListCache(s *Store, ttl time.Duration) *ListCache {
	return &ListCache{store: s, ttl: ttl}
}

func (c *ListCache) valid() bool {
	return c.paintings != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ListCache) Invalidate() {
	c.mu.Lock()
	c.paintings = nil
	c.backgrounds = nil
	c.posts = nil
	c.mu.Unlock()
}

func (c *ListCache) load() error {
	if c.valid() {
		return nil
	}
	paintings, err := c.store.ListPaintings()
	if err != nil {
		return err
	}
	public := make([]Painting, 0, len(paintings))
	for _, p := range paintings {
		if p.Visibility == VisibilityPublic {
			public = append(public, p)
		}
	}
	sortPaintings(public)

	backgrounds, err := c.store.ListBackgrounds()
	if err != nil {
		return err
	}
	sortBackgrounds(backgrounds)

	posts, err := c.store.ListBlogPosts()
	if err != nil {
		return err
	}
	published := make([]BlogPost, 0, len(posts))
	for _, p := range posts {
		if p.Status == StatusPublished {
			published = append(published, p)
		}
	}
	sortPosts(published)

	c.paintings = public
	c.backgrounds = backgrounds
	c.posts = published
	c.fetched = time.Now()
	return nil
}

// ensureLoaded refreshes the cache if stale. It tries a read lock first;
// only takes a write lock when a reload is needed.
func (c *ListCache) ensureLoaded() error {
	c.mu.RLock()
	if c.valid() {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Paintings returns the public paintings, newest first.
func (c *ListCache) Paintings() ([]Painting, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Painting(nil), c.paintings...), nil
}

// Backgrounds returns all backgrounds, newest first.
func (c *ListCache) Backgrounds() ([]Background, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Background(nil), c.backgrounds...), nil
}

// Posts returns the published blog posts, newest first.
func (c *ListCache) Posts() ([]BlogPost, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]BlogPost(nil), c.posts...), nil
}
