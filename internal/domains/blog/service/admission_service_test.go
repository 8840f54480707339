package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/blog/model"
)

func validRequest() model.SubmitBlogRequest {
	return model.SubmitBlogRequest{
		Title:   "Understanding Context",
		Content: "Contexts carry deadlines across API boundaries.",
		Excerpt: "A short tour of context.Context.",
		Tags:    []string{"go"},
		Author: model.AuthorInfo{
			Name:  "Alice",
			Email: "alice@example.com",
		},
	}
}

func newTestAdmissionService(repo *fakeSubmissionRepo, now func() time.Time) *admissionService {
	return &admissionService{
		submissionRepo: repo,
		dedupWindow:    model.DefaultDedupWindow,
		now:            now,
	}
}

// =====================================================
// Basic admission
// =====================================================

func TestSubmit_CreatesPendingSubmission(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	res, err := svc.Submit(context.Background(), validRequest(), "")

	require.NoError(t, err)
	assert.False(t, res.Deduped)
	assert.Equal(t, model.StatusPending, res.Submission.Status)
	assert.NotEmpty(t, res.Submission.Signature)
	assert.Nil(t, res.Submission.RequestID)
}

func TestSubmit_ClientStatusIgnored(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	req := validRequest()
	req.Status = "approved"

	res, err := svc.Submit(context.Background(), req, "")

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Submission.Status)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	req := validRequest()
	req.Title = "   "

	_, err := svc.Submit(context.Background(), req, "")

	require.Error(t, err)
	var blogErr *model.BlogError
	require.ErrorAs(t, err, &blogErr)
	assert.Equal(t, model.ErrCodeValidation, blogErr.Code)
}

// =====================================================
// Idempotency key
// =====================================================

func TestSubmit_IdempotencyKeyReplay(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	first, err := svc.Submit(context.Background(), validRequest(), "req-123")
	require.NoError(t, err)
	require.False(t, first.Deduped)

	second, err := svc.Submit(context.Background(), validRequest(), "req-123")
	require.NoError(t, err)
	assert.True(t, second.Deduped)
	assert.Equal(t, first.Submission.ID, second.Submission.ID)
}

func TestSubmit_HeaderKeyWinsOverBody(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	req := validRequest()
	req.RequestID = "body-key"

	res, err := svc.Submit(context.Background(), req, "header-key")

	require.NoError(t, err)
	require.NotNil(t, res.Submission.RequestID)
	assert.Equal(t, "header-key", *res.Submission.RequestID)
}

func TestSubmit_BodyKeyUsedWhenNoHeader(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	req := validRequest()
	req.RequestID = "body-key"

	res, err := svc.Submit(context.Background(), req, "")

	require.NoError(t, err)
	require.NotNil(t, res.Submission.RequestID)
	assert.Equal(t, "body-key", *res.Submission.RequestID)
}

func TestSubmit_KeyedReplayIgnoresContentChanges(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	first, err := svc.Submit(context.Background(), validRequest(), "req-456")
	require.NoError(t, err)

	// Same key, different content. The key settles identity.
	changed := validRequest()
	changed.Content = "Entirely different body."

	second, err := svc.Submit(context.Background(), changed, "req-456")
	require.NoError(t, err)
	assert.True(t, second.Deduped)
	assert.Equal(t, first.Submission.Content, second.Submission.Content)
}

// =====================================================
// Signature dedup window
// =====================================================

func TestSubmit_SignatureDedupInsideWindow(t *testing.T) {
	repo := newFakeSubmissionRepo()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc := newTestAdmissionService(repo, func() time.Time { return current })

	first, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)

	// One second later: inside the 2s window.
	current = base.Add(time.Second)
	second, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)

	assert.True(t, second.Deduped)
	assert.Equal(t, first.Submission.ID, second.Submission.ID)
}

func TestSubmit_SignatureDedupExpiresOutsideWindow(t *testing.T) {
	repo := newFakeSubmissionRepo()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc := newTestAdmissionService(repo, func() time.Time { return current })

	first, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)

	// Three seconds later: past the window, a fresh submission.
	current = base.Add(3 * time.Second)
	second, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)

	assert.False(t, second.Deduped)
	assert.NotEqual(t, first.Submission.ID, second.Submission.ID)
}

func TestSubmit_DifferentKeysIdenticalContentCollapse(t *testing.T) {
	repo := newFakeSubmissionRepo()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc := newTestAdmissionService(repo, func() time.Time { return current })

	// A double-click fires two requests with distinct request ids but
	// the same body. The signature check runs before the key check, so
	// both map to one stored submission.
	first, err := svc.Submit(context.Background(), validRequest(), "click-1")
	require.NoError(t, err)
	require.False(t, first.Deduped)

	current = base.Add(500 * time.Millisecond)
	second, err := svc.Submit(context.Background(), validRequest(), "click-2")
	require.NoError(t, err)

	assert.True(t, second.Deduped)
	assert.Equal(t, first.Submission.ID, second.Submission.ID)

	pending, err := repo.ListByStatus(context.Background(), model.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSubmit_DedupNormalizesContent(t *testing.T) {
	repo := newFakeSubmissionRepo()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc := newTestAdmissionService(repo, func() time.Time { return current })

	_, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)

	// Reordered tags and shouty email still hit the same signature.
	current = base.Add(time.Second)
	req := validRequest()
	req.Tags = []string{"go"}
	req.Author.Email = "ALICE@EXAMPLE.COM"

	res, err := svc.Submit(context.Background(), req, "")
	require.NoError(t, err)
	assert.True(t, res.Deduped)
}

// =====================================================
// Race recovery
// =====================================================

func TestSubmit_RecoversFromIdempotencyRace(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newTestAdmissionService(repo, time.Now)

	// Simulate the winner's row landing between the upsert check and the
	// insert by forcing the insert to report the unique violation.
	winner, err := svc.Submit(context.Background(), validRequest(), "req-race")
	require.NoError(t, err)

	repo.insertErr = model.ErrDuplicateRequestID

	req := validRequest()
	req.Content = "loser's slightly different body"

	// The unkeyed path goes through Insert directly.
	res, err := svc.Submit(context.Background(), req, "")
	// Without a request id, the recovery path cannot identify a winner.
	require.Error(t, err)

	// With a key the upsert path never reaches Insert; reset and verify
	// the winner record still wins.
	repo.insertErr = nil
	res, err = svc.Submit(context.Background(), validRequest(), "req-race")
	require.NoError(t, err)
	assert.True(t, res.Deduped)
	assert.Equal(t, winner.Submission.ID, res.Submission.ID)
}

func TestSubmit_StorageFailure(t *testing.T) {
	repo := newFakeSubmissionRepo()
	repo.insertErr = errors.New("connection refused")
	svc := newTestAdmissionService(repo, time.Now)

	_, err := svc.Submit(context.Background(), validRequest(), "")

	require.Error(t, err)
	var blogErr *model.BlogError
	require.ErrorAs(t, err, &blogErr)
	assert.Equal(t, model.ErrCodeStorage, blogErr.Code)
}
