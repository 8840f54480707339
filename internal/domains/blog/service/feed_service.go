package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/repository"
)

// =====================================================
// FEED SERVICE
// =====================================================

type feedService struct {
	submissionRepo repository.SubmissionRepository
	publishedRepo  repository.PublishedRepository
}

func NewFeedService(
	submissionRepo repository.SubmissionRepository,
	publishedRepo repository.PublishedRepository,
) FeedService {
	return &feedService{
		submissionRepo: submissionRepo,
		publishedRepo:  publishedRepo,
	}
}

func (s *feedService) List(ctx context.Context, userEmail string) ([]model.BlogView, error) {
	posts, err := s.publishedRepo.List(ctx)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	views := make([]model.BlogView, 0, len(posts))
	for _, post := range posts {
		views = append(views, post.ToView())
	}

	if userEmail == "" {
		return views, nil
	}

	// Authors also see their own pending and rejected submissions.
	// Approved ones are skipped: their published copy is already above.
	own, err := s.submissionRepo.ListUnresolvedByAuthor(ctx, userEmail)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	for _, sub := range own {
		views = append(views, sub.ToView())
	}

	return views, nil
}

func (s *feedService) GetByID(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error) {
	post, err := s.publishedRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, model.NewStorageError(err)
	}
	return post, nil
}

func (s *feedService) Like(ctx context.Context, id uuid.UUID) (int, error) {
	likes, err := s.publishedRepo.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return 0, model.NewPostNotFoundError()
		}
		return 0, model.NewStorageError(err)
	}
	return likes, nil
}
