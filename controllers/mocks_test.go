package controllers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ikapo/CBoard-API/models"
)

// fakeStore is an in-memory ContentStore honoring the gateway contract:
// shared increasing ids, parent checks, bump-on-reply, chronological
// comments and the board listing cap. Its clock advances one second per
// stamp so orderings are deterministic.
type fakeStore struct {
	mu       sync.Mutex
	lastID   uint64
	clock    time.Time
	posts    map[uint64]*models.Post
	comments map[uint64][]models.Comment
	fail     error // when set, every operation fails with it
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:    time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		posts:    map[uint64]*models.Post{},
		comments: map[uint64][]models.Comment{},
	}
}

func (f *fakeStore) nextID() uint64 {
	f.lastID++
	return f.lastID
}

func (f *fakeStore) tick() models.Timestamp {
	f.clock = f.clock.Add(time.Second)
	return models.Timestamp{Time: f.clock}
}

func (f *fakeStore) CreatePost(_ context.Context, p *models.Post) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return 0, f.fail
	}
	now := f.tick()
	p.CreatedAt = now
	p.BumpedAt = now
	p.BumpCount = 0
	p.PostID = f.nextID()
	stored := *p
	f.posts[p.PostID] = &stored
	return p.PostID, nil
}

func (f *fakeStore) CreateComment(_ context.Context, c *models.Comment) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return 0, f.fail
	}
	parent, ok := f.posts[c.Parent]
	if !ok {
		return 0, models.ErrParentNotFound
	}
	c.CreatedAt = f.tick()
	c.ComID = f.nextID()
	f.comments[c.Parent] = append(f.comments[c.Parent], *c)
	parent.BumpedAt = c.CreatedAt
	if parent.BumpCount < models.MaxBumpCount {
		parent.BumpCount++
	}
	return c.ComID, nil
}

func (f *fakeStore) PostByID(_ context.Context, id uint64) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) Comments(_ context.Context, parent uint64) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := append([]models.Comment{}, f.comments[parent]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (f *fakeStore) BoardPosts(_ context.Context, board uint8) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := []models.Post{}
	for _, p := range f.posts {
		if p.Board == board {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BumpedAt.After(out[j].BumpedAt.Time)
	})
	if len(out) > models.BoardPageSize {
		out = out[:models.BoardPageSize]
	}
	return out, nil
}
