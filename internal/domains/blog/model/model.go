package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the moderation state of a blog submission.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// DefaultDedupWindow is how long a repeated content signature is treated
// as the same logical request (double clicks, client retries).
const DefaultDedupWindow = 2 * time.Second

// Submission represents one blog post waiting for (or resolved by) moderation.
// Mutable while pending, immutable once resolved.
type Submission struct {
	ID uuid.UUID `json:"id"`

	// RequestID is the optional client-supplied idempotency key.
	// Unique across all submissions when present.
	RequestID *string `json:"request_id,omitempty"`

	// Signature is the content fingerprint (see ComputeSignature).
	Signature string `json:"signature"`

	// Content
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`
	ImageURL *string  `json:"image_url,omitempty"`

	// Author identity (email is the join key for "my submissions")
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`

	Status     SubmissionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
}

// IsResolved reports whether the submission left the moderation queue.
func (s *Submission) IsResolved() bool {
	return s.Status != StatusPending
}

// PublishedPost is the immutable public record created when a submission
// is approved (copy-on-approve). The moderation queue and the public
// catalog are separate tables on purpose.
type PublishedPost struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`

	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`
	ImageURL *string  `json:"image_url,omitempty"`

	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`

	Likes       int       `json:"likes"`
	SubmittedAt time.Time `json:"submitted_at"`
	PublishedAt time.Time `json:"published_at"`
}
