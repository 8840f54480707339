package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// notBlank rejects strings that are empty once trimmed. ozzo's Required
// accepts all-whitespace values, which the admission pipeline must not.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// ========================================
// SUBMISSION DTOs
// ========================================

// AuthorInfo identifies the submitting user.
type AuthorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmitBlogRequest is the body of POST /api/blogs.
//
// Status is accepted for wire compatibility with older clients but always
// ignored: submissions start pending no matter what the client asserts.
type SubmitBlogRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Excerpt  string     `json:"excerpt"`
	Category string     `json:"category,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	ImageURL string     `json:"image,omitempty"`
	Author   AuthorInfo `json:"author"`

	// RequestID is the body-level idempotency key; the x-request-id
	// header takes precedence when both are present.
	RequestID string `json:"requestId,omitempty"`

	Status string `json:"status,omitempty"`
}

func (r SubmitBlogRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(notBlank),
			validation.Length(1, 300),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.By(notBlank),
		),
		validation.Field(&r.Excerpt,
			validation.Required.Error("excerpt is required"),
			validation.By(notBlank),
			validation.Length(1, 1000),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 20),
		),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&r.Author,
		validation.Field(&r.Author.Email,
			validation.Required.Error("author email is required"),
			is.Email.Error("invalid author email"),
		),
	)
}

// Payload converts the request into the signable content payload.
func (r SubmitBlogRequest) Payload() SubmissionPayload {
	return SubmissionPayload{
		Title:       r.Title,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		Category:    r.Category,
		Tags:        r.Tags,
		ImageURL:    r.ImageURL,
		AuthorName:  r.Author.Name,
		AuthorEmail: r.Author.Email,
	}
}

// SubmissionDTO is the submission representation returned to clients.
type SubmissionDTO struct {
	ID         uuid.UUID        `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	Excerpt    string           `json:"excerpt"`
	Category   string           `json:"category,omitempty"`
	Tags       []string         `json:"tags"`
	ImageURL   *string          `json:"image,omitempty"`
	Author     AuthorInfo       `json:"author"`
	Status     SubmissionStatus `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	ResolvedAt *time.Time       `json:"resolvedAt,omitempty"`
}

// ToDTO converts a Submission entity to its wire representation.
func (s *Submission) ToDTO() SubmissionDTO {
	return SubmissionDTO{
		ID:       s.ID,
		Title:    s.Title,
		Content:  s.Content,
		Excerpt:  s.Excerpt,
		Category: s.Category,
		Tags:     s.Tags,
		ImageURL: s.ImageURL,
		Author: AuthorInfo{
			Name:  s.AuthorName,
			Email: s.AuthorEmail,
		},
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		ResolvedAt: s.ResolvedAt,
	}
}

// ========================================
// PUBLIC FEED DTOs
// ========================================

// BlogView is one entry of the public feed. Published posts and the
// caller's own unresolved submissions share this shape, distinguished
// by Status.
type BlogView struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Excerpt   string           `json:"excerpt"`
	Category  string           `json:"category,omitempty"`
	Tags      []string         `json:"tags"`
	ImageURL  *string          `json:"image,omitempty"`
	Author    AuthorInfo       `json:"author"`
	Status    SubmissionStatus `json:"status"`
	Likes     int              `json:"likes"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToView converts a published post to a feed entry.
func (p *PublishedPost) ToView() BlogView {
	return BlogView{
		ID:       p.ID,
		Title:    p.Title,
		Content:  p.Content,
		Excerpt:  p.Excerpt,
		Category: p.Category,
		Tags:     p.Tags,
		ImageURL: p.ImageURL,
		Author: AuthorInfo{
			Name:  p.AuthorName,
			Email: p.AuthorEmail,
		},
		Status:    StatusApproved,
		Likes:     p.Likes,
		CreatedAt: p.SubmittedAt,
	}
}

// ToView converts an unresolved submission to a feed entry for its author.
func (s *Submission) ToView() BlogView {
	return BlogView{
		ID:       s.ID,
		Title:    s.Title,
		Content:  s.Content,
		Excerpt:  s.Excerpt,
		Category: s.Category,
		Tags:     s.Tags,
		ImageURL: s.ImageURL,
		Author: AuthorInfo{
			Name:  s.AuthorName,
			Email: s.AuthorEmail,
		},
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

// NotificationCounts is the admin dashboard badge payload.
type NotificationCounts struct {
	PendingBlogs int `json:"pendingBlogs"`
	PendingUsers int `json:"pendingUsers"`
	Total        int `json:"total"`
}
