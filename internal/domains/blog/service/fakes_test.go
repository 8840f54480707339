package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

// =====================================================
// In-memory SubmissionRepository
// =====================================================

type fakeSubmissionRepo struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*model.Submission

	insertErr error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[uuid.UUID]*model.Submission)}
}

func (r *fakeSubmissionRepo) Insert(ctx context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertErr != nil {
		return r.insertErr
	}
	if sub.RequestID != nil {
		for _, existing := range r.subs {
			if existing.RequestID != nil && *existing.RequestID == *sub.RequestID {
				return model.ErrDuplicateRequestID
			}
		}
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubmissionRepo) UpsertByRequestID(ctx context.Context, sub *model.Submission) (*model.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.subs {
		if existing.RequestID != nil && sub.RequestID != nil && *existing.RequestID == *sub.RequestID {
			cp := *existing
			return &cp, false, nil
		}
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	out := cp
	return &out, true, nil
}

func (r *fakeSubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok {
		return nil, model.ErrSubmissionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) FindByRequestID(ctx context.Context, requestID string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		if sub.RequestID != nil && *sub.RequestID == requestID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, model.ErrSubmissionNotFound
}

func (r *fakeSubmissionRepo) FindRecentBySignature(ctx context.Context, signature string, since time.Time) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *model.Submission
	for _, sub := range r.subs {
		if sub.Signature != signature || sub.CreatedAt.Before(since) {
			continue
		}
		if newest == nil || sub.CreatedAt.After(newest.CreatedAt) {
			newest = sub
		}
	}
	if newest == nil {
		return nil, model.ErrSubmissionNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeSubmissionRepo) FindRecentByContent(ctx context.Context, authorEmail, title, content, excerpt string, since time.Time) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *model.Submission
	for _, sub := range r.subs {
		if sub.AuthorEmail != authorEmail || sub.Title != title ||
			sub.Content != content || sub.Excerpt != excerpt ||
			sub.CreatedAt.Before(since) {
			continue
		}
		if newest == nil || sub.CreatedAt.After(newest.CreatedAt) {
			newest = sub
		}
	}
	if newest == nil {
		return nil, model.ErrSubmissionNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeSubmissionRepo) Transition(ctx context.Context, id uuid.UUID, target model.SubmissionStatus) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok || sub.Status != model.StatusPending {
		return nil, model.ErrSubmissionNotFound
	}
	now := time.Now()
	sub.Status = target
	sub.ResolvedAt = &now
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) ListByStatus(ctx context.Context, status model.SubmissionStatus) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Submission
	for _, sub := range r.subs {
		if sub.Status == status {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) ListUnresolvedByAuthor(ctx context.Context, authorEmail string) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Submission
	for _, sub := range r.subs {
		if sub.AuthorEmail == authorEmail && sub.Status != model.StatusApproved {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int, error) {
	subs, _ := r.ListByStatus(ctx, status)
	return len(subs), nil
}

func (r *fakeSubmissionRepo) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, sub := range r.subs {
		if sub.Status == model.StatusRejected && sub.ResolvedAt != nil && sub.ResolvedAt.Before(cutoff) {
			delete(r.subs, id)
			deleted++
		}
	}
	return deleted, nil
}

// =====================================================
// In-memory PublishedRepository
// =====================================================

type fakePublishedRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*model.PublishedPost
}

func newFakePublishedRepo() *fakePublishedRepo {
	return &fakePublishedRepo{posts: make(map[uuid.UUID]*model.PublishedPost)}
}

func (r *fakePublishedRepo) Insert(ctx context.Context, post *model.PublishedPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.posts {
		if existing.SubmissionID == post.SubmissionID {
			return model.ErrAlreadyPublished
		}
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePublishedRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	cp := *post
	return &cp, nil
}

func (r *fakePublishedRepo) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, post := range r.posts {
		if post.SubmissionID == submissionID {
			cp := *post
			return &cp, nil
		}
	}
	return nil, model.ErrPostNotFound
}

func (r *fakePublishedRepo) List(ctx context.Context) ([]*model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.PublishedPost
	for _, post := range r.posts {
		cp := *post
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.Before(out[j].PublishedAt) })
	return out, nil
}

func (r *fakePublishedRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return 0, model.ErrPostNotFound
	}
	post.Likes++
	return post.Likes, nil
}

// =====================================================
// In-memory Cache
// =====================================================

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

// =====================================================
// Pending user counter stub
// =====================================================

type stubUserCounter struct {
	count int
	err   error
}

func (s *stubUserCounter) CountPendingApproval(ctx context.Context) (int, error) {
	return s.count, s.err
}
