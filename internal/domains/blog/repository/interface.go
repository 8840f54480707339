package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

// SubmissionRepository is the durable moderation queue. Concurrency is
// resolved by storage-level uniqueness (request_id) and compare-and-set
// transitions, not by callers holding locks.
type SubmissionRepository interface {
	// Insert stores a new pending submission. Returns
	// model.ErrDuplicateRequestID when a concurrent insert won the
	// race on the idempotency key.
	Insert(ctx context.Context, sub *model.Submission) error

	// UpsertByRequestID atomically inserts the submission unless a row
	// with the same request id exists, in which case the existing row is
	// returned unchanged. The bool reports whether a new row was created.
	UpsertByRequestID(ctx context.Context, sub *model.Submission) (*model.Submission, bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	FindByRequestID(ctx context.Context, requestID string) (*model.Submission, error)

	// FindRecentBySignature returns the newest submission (any state)
	// with the given content signature created at or after since.
	FindRecentBySignature(ctx context.Context, signature string, since time.Time) (*model.Submission, error)

	// FindRecentByContent is the fallback dedup lookup used when the
	// client supplied no idempotency key.
	FindRecentByContent(ctx context.Context, authorEmail, title, content, excerpt string, since time.Time) (*model.Submission, error)

	// Transition moves a pending submission to a terminal state and sets
	// resolved_at, as a single compare-and-set. Returns
	// model.ErrSubmissionNotFound when the id does not reference a
	// submission that is still pending.
	Transition(ctx context.Context, id uuid.UUID, target model.SubmissionStatus) (*model.Submission, error)

	ListByStatus(ctx context.Context, status model.SubmissionStatus) ([]*model.Submission, error)
	ListUnresolvedByAuthor(ctx context.Context, authorEmail string) ([]*model.Submission, error)
	CountByStatus(ctx context.Context, status model.SubmissionStatus) (int, error)

	// DeleteRejectedBefore removes rejected submissions resolved before
	// cutoff. Used by the retention worker only.
	DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PublishedRepository is the public catalog populated by copy-on-approve.
type PublishedRepository interface {
	// Insert stores the published copy of an approved submission.
	// Returns model.ErrAlreadyPublished when this submission was already
	// published by a concurrent approve.
	Insert(ctx context.Context, post *model.PublishedPost) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error)
	FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*model.PublishedPost, error)
	List(ctx context.Context) ([]*model.PublishedPost, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
}
