package service

import (
	"context"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

// AdmissionResult is what the intake pipeline hands back to the HTTP layer.
type AdmissionResult struct {
	Submission *model.Submission
	// Deduped is true when the pipeline matched an earlier record
	// instead of creating a new submission.
	Deduped bool
}

// AdmissionService is the single entry point for new blog submissions.
type AdmissionService interface {
	// Submit runs the full admission pipeline: validate, fingerprint,
	// dedup, persist. requestID comes from the x-request-id header and
	// overrides the body-level key when non-empty.
	Submit(ctx context.Context, req model.SubmitBlogRequest, requestID string) (*AdmissionResult, error)
}

// ModerationService covers the admin review queue.
type ModerationService interface {
	ListPending(ctx context.Context) ([]*model.Submission, error)

	// Approve publishes the submission and marks it approved. Approving
	// an already-approved submission returns the existing published post.
	Approve(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error)

	// Reject marks the submission rejected. The record is retained for
	// audit until the retention worker purges it.
	Reject(ctx context.Context, id uuid.UUID) (*model.Submission, error)

	NotificationCounts(ctx context.Context) (*model.NotificationCounts, error)
}

// FeedService serves the public read side.
type FeedService interface {
	// List returns all published posts. When userEmail is non-empty the
	// caller's own unresolved submissions are appended so authors can
	// see their queue position.
	List(ctx context.Context, userEmail string) ([]model.BlogView, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error)
	Like(ctx context.Context, id uuid.UUID) (int, error)
}
