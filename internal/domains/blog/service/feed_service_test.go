package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/blog/model"
)

type feedFixture struct {
	subRepo  *fakeSubmissionRepo
	postRepo *fakePublishedRepo
	svc      FeedService
}

func newFeedFixture() *feedFixture {
	f := &feedFixture{
		subRepo:  newFakeSubmissionRepo(),
		postRepo: newFakePublishedRepo(),
	}
	f.svc = NewFeedService(f.subRepo, f.postRepo)
	return f
}

func (f *feedFixture) seedPost(t *testing.T) *model.PublishedPost {
	t.Helper()
	post := &model.PublishedPost{
		ID:           uuid.New(),
		SubmissionID: uuid.New(),
		Title:        "Published",
		Content:      "Body",
		Excerpt:      "Excerpt",
		AuthorName:   "Alice",
		AuthorEmail:  "alice@example.com",
		SubmittedAt:  time.Now().Add(-time.Hour),
		PublishedAt:  time.Now(),
	}
	require.NoError(t, f.postRepo.Insert(context.Background(), post))
	return post
}

func (f *feedFixture) seedSubmission(t *testing.T, email string, status model.SubmissionStatus) *model.Submission {
	t.Helper()
	sub := &model.Submission{
		ID:          uuid.New(),
		Signature:   uuid.NewString(),
		Title:       "Queued",
		Content:     "Body",
		Excerpt:     "Excerpt",
		AuthorName:  "Alice",
		AuthorEmail: email,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, f.subRepo.Insert(context.Background(), sub))
	return sub
}

func TestFeedList_PublishedOnlyForAnonymous(t *testing.T) {
	f := newFeedFixture()
	f.seedPost(t)
	f.seedSubmission(t, "alice@example.com", model.StatusPending)

	views, err := f.svc.List(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, model.StatusApproved, views[0].Status)
}

func TestFeedList_IncludesOwnUnresolved(t *testing.T) {
	f := newFeedFixture()
	f.seedPost(t)
	pending := f.seedSubmission(t, "alice@example.com", model.StatusPending)
	f.seedSubmission(t, "bob@example.com", model.StatusPending)
	f.seedSubmission(t, "alice@example.com", model.StatusApproved)

	views, err := f.svc.List(context.Background(), "alice@example.com")

	require.NoError(t, err)
	// One published post plus Alice's pending submission. Her approved
	// submission is excluded: its published copy would already be listed.
	require.Len(t, views, 2)
	assert.Equal(t, pending.ID, views[1].ID)
	assert.Equal(t, model.StatusPending, views[1].Status)
}

func TestFeedGetByID_NotFound(t *testing.T) {
	f := newFeedFixture()

	_, err := f.svc.GetByID(context.Background(), uuid.New())

	require.Error(t, err)
	var blogErr *model.BlogError
	require.ErrorAs(t, err, &blogErr)
	assert.Equal(t, model.ErrCodePostNotFound, blogErr.Code)
}

func TestFeedLike_Increments(t *testing.T) {
	f := newFeedFixture()
	post := f.seedPost(t)

	likes, err := f.svc.Like(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = f.svc.Like(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)
}

func TestFeedLike_NotFound(t *testing.T) {
	f := newFeedFixture()

	_, err := f.svc.Like(context.Background(), uuid.New())

	require.Error(t, err)
	var blogErr *model.BlogError
	require.ErrorAs(t, err, &blogErr)
	assert.Equal(t, model.ErrCodePostNotFound, blogErr.Code)
}
