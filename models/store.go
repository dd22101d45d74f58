package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BoardPageSize caps how many threads a board listing returns.
const BoardPageSize = 10

// DefaultStatementTimeout bounds how long a single statement may wait for a
// pooled connection and execute.
const DefaultStatementTimeout = 3 * time.Second

// Store is the persistence gateway for posts, comments and the shared id
// sequence. Every operation runs as its own transaction on a pooled
// connection and surfaces failures instead of swallowing them.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewStore wraps an initialized gorm DB. A non-positive timeout falls back
// to DefaultStatementTimeout.
func NewStore(db *gorm.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultStatementTimeout
	}
	return &Store{db: db, timeout: timeout}
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.timeout)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// NextID consumes and returns one value from the shared id sequence. The
// generated key comes back atomically with the insert, so concurrent calls
// never observe the same value.
func (s *Store) NextID(ctx context.Context) (uint64, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	seq := ID{}
	if err := s.db.WithContext(opCtx).Create(&seq).Error; err != nil {
		return 0, storageErr(err)
	}
	// Best-effort prune of consumed placeholder rows; the sequence value is
	// already in hand, so a failure here only leaves extra rows behind.
	s.db.WithContext(opCtx).Where("id < ?", seq.ID).Delete(&ID{})
	return seq.ID, nil
}

// CreatePost stamps timestamps, allocates an id and inserts the post,
// returning the new id. Allocation and insert are separate statements: a
// failed insert leaves a consumed id behind with no row, which is expected
// (ids are unique and increasing, not contiguous).
func (s *Store) CreatePost(ctx context.Context, p *Post) (uint64, error) {
	now := Now()
	p.CreatedAt = now
	p.BumpedAt = now
	p.BumpCount = 0

	id, err := s.NextID(ctx)
	if err != nil {
		return 0, err
	}
	p.PostID = id

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := s.db.WithContext(opCtx).Create(p).Error; err != nil {
		return 0, storageErr(err)
	}
	return id, nil
}

// CreateComment stamps and allocates like CreatePost, then runs one
// transaction that verifies the parent post exists, inserts the comment and
// bumps the parent: bumped_at moves to the comment's created_at and
// bump_count increments. The increment saturates at the signed tinyint
// ceiling so a long thread never overflows the column and stops taking
// replies.
func (s *Store) CreateComment(ctx context.Context, c *Comment) (uint64, error) {
	c.CreatedAt = Now()

	id, err := s.NextID(ctx)
	if err != nil {
		return 0, err
	}
	c.ComID = id

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	err = s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Post{}).Where("post_id = ?", c.Parent).Count(&n).Error; err != nil {
			return storageErr(err)
		}
		if n == 0 {
			return ErrParentNotFound
		}
		if err := tx.Create(c).Error; err != nil {
			return storageErr(err)
		}
		res := tx.Model(&Post{}).Where("post_id = ?", c.Parent).Updates(map[string]interface{}{
			"bumped_at":  c.CreatedAt,
			"bump_count": gorm.Expr("LEAST(bump_count + 1, ?)", MaxBumpCount),
		})
		if res.Error != nil {
			return storageErr(res.Error)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// PostByID fetches a post by primary key. Returns ErrNotFound when no such
// post exists.
func (s *Store) PostByID(ctx context.Context, id uint64) (*Post, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var p Post
	err := s.db.WithContext(opCtx).Where("post_id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &p, nil
}

// Comments returns all replies to the given post in chronological order. No
// replies is an empty slice, not an error.
func (s *Store) Comments(ctx context.Context, parent uint64) ([]Comment, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	comments := []Comment{}
	err := s.db.WithContext(opCtx).
		Where("parent = ?", parent).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return comments, nil
}

// BoardPosts returns the most recently bumped threads of one board, newest
// activity first, capped at BoardPageSize.
func (s *Store) BoardPosts(ctx context.Context, board uint8) ([]Post, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	posts := []Post{}
	err := s.db.WithContext(opCtx).
		Where("board = ?", board).
		Order("bumped_at desc").
		Limit(BoardPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return posts, nil
}
