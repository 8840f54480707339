package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/blog/repository"
	"bloghub-backend/internal/shared"
)

// stubSubmissionRepo only implements the method the purge handler calls.
type stubSubmissionRepo struct {
	repository.SubmissionRepository

	gotCutoff time.Time
	deleted   int64
	err       error
}

func (s *stubSubmissionRepo) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.gotCutoff = cutoff
	return s.deleted, s.err
}

func purgeTask(t *testing.T, payload PurgeRejectedPayload) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypePurgeRejectedSubmissions, raw)
}

func TestProcessTask_UsesPayloadRetention(t *testing.T) {
	repo := &stubSubmissionRepo{deleted: 4}
	handler := NewPurgeRejectedHandler(repo, 30)

	err := handler.ProcessTask(context.Background(), purgeTask(t, PurgeRejectedPayload{RetentionDays: 7}))

	require.NoError(t, err)
	want := time.Now().AddDate(0, 0, -7)
	assert.WithinDuration(t, want, repo.gotCutoff, time.Minute)
}

func TestProcessTask_DefaultRetention(t *testing.T) {
	repo := &stubSubmissionRepo{}
	handler := NewPurgeRejectedHandler(repo, 0) // falls back to 30 days

	err := handler.ProcessTask(context.Background(), purgeTask(t, PurgeRejectedPayload{}))

	require.NoError(t, err)
	want := time.Now().AddDate(0, 0, -30)
	assert.WithinDuration(t, want, repo.gotCutoff, time.Minute)
}

func TestProcessTask_PropagatesStorageError(t *testing.T) {
	repo := &stubSubmissionRepo{err: context.DeadlineExceeded}
	handler := NewPurgeRejectedHandler(repo, 30)

	err := handler.ProcessTask(context.Background(), purgeTask(t, PurgeRejectedPayload{}))

	assert.Error(t, err)
}

func TestProcessTask_BadPayload(t *testing.T) {
	repo := &stubSubmissionRepo{}
	handler := NewPurgeRejectedHandler(repo, 30)

	task := asynq.NewTask(shared.TypePurgeRejectedSubmissions, []byte("not-json"))

	assert.Error(t, handler.ProcessTask(context.Background(), task))
}
