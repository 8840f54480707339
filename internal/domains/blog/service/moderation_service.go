package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/repository"
	"bloghub-backend/pkg/cache"
	"bloghub-backend/pkg/logger"
)

// =====================================================
// MODERATION SERVICE
// =====================================================

const (
	notificationCacheKey = "notifications:counts"
	notificationCacheTTL = 15 * time.Second
)

// PendingUserCounter is the slice of the user domain the moderation
// dashboard needs. Kept narrow to avoid coupling the domains.
type PendingUserCounter interface {
	CountPendingApproval(ctx context.Context) (int, error)
}

type moderationService struct {
	submissionRepo repository.SubmissionRepository
	publishedRepo  repository.PublishedRepository
	userCounter    PendingUserCounter
	cache          cache.Cache
	now            func() time.Time
}

func NewModerationService(
	submissionRepo repository.SubmissionRepository,
	publishedRepo repository.PublishedRepository,
	userCounter PendingUserCounter,
	cache cache.Cache,
) ModerationService {
	return &moderationService{
		submissionRepo: submissionRepo,
		publishedRepo:  publishedRepo,
		userCounter:    userCounter,
		cache:          cache,
		now:            time.Now,
	}
}

func (s *moderationService) ListPending(ctx context.Context) ([]*model.Submission, error) {
	subs, err := s.submissionRepo.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	return subs, nil
}

// =====================================================
// APPROVE
// =====================================================

// Approve publishes a pending submission. Publish happens before the
// state transition, so a crash between the two leaves a published post
// with a still-pending submission; re-approving heals that because the
// published insert is keyed by submission id.
func (s *moderationService) Approve(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error) {
	// Replay path: already published means a prior approve ran.
	if post, err := s.publishedRepo.FindBySubmissionID(ctx, id); err == nil {
		s.finishTransition(ctx, id, model.StatusApproved)
		return post, nil
	} else if !errors.Is(err, model.ErrPostNotFound) {
		return nil, model.NewStorageError(err)
	}

	sub, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSubmissionNotFound) {
			return nil, model.NewSubmissionNotFoundError()
		}
		return nil, model.NewStorageError(err)
	}
	if sub.IsResolved() {
		// Rejected (or approved without a published row, which the
		// replay path above rules out) cannot be approved.
		return nil, model.NewSubmissionNotFoundError()
	}

	post := &model.PublishedPost{
		ID:           uuid.New(),
		SubmissionID: sub.ID,
		Title:        sub.Title,
		Content:      sub.Content,
		Excerpt:      sub.Excerpt,
		Category:     sub.Category,
		Tags:         sub.Tags,
		ImageURL:     sub.ImageURL,
		AuthorName:   sub.AuthorName,
		AuthorEmail:  sub.AuthorEmail,
		Likes:        0,
		SubmittedAt:  sub.CreatedAt,
		PublishedAt:  s.now(),
	}

	if err := s.publishedRepo.Insert(ctx, post); err != nil {
		if errors.Is(err, model.ErrAlreadyPublished) {
			// Concurrent approve won the publish. Read its result.
			winner, ferr := s.publishedRepo.FindBySubmissionID(ctx, id)
			if ferr != nil {
				return nil, model.NewStorageError(ferr)
			}
			s.finishTransition(ctx, id, model.StatusApproved)
			return winner, nil
		}
		return nil, model.NewStorageError(err)
	}

	s.finishTransition(ctx, id, model.StatusApproved)
	s.invalidateNotificationCache(ctx)

	logger.Info("submission approved", map[string]interface{}{
		"submission_id": sub.ID.String(),
		"post_id":       post.ID.String(),
	})

	return post, nil
}

// finishTransition moves the submission out of pending. Losing the CAS
// means another moderator already resolved it, which is fine here: the
// published row is the source of truth for approval.
func (s *moderationService) finishTransition(ctx context.Context, id uuid.UUID, target model.SubmissionStatus) {
	if _, err := s.submissionRepo.Transition(ctx, id, target); err != nil {
		if errors.Is(err, model.ErrSubmissionNotFound) {
			return
		}
		logger.Error("failed to finalize submission transition", err)
	}
}

// =====================================================
// REJECT
// =====================================================

func (s *moderationService) Reject(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	sub, err := s.submissionRepo.Transition(ctx, id, model.StatusRejected)
	if err != nil {
		if errors.Is(err, model.ErrSubmissionNotFound) {
			return nil, model.NewSubmissionNotFoundError()
		}
		return nil, model.NewStorageError(err)
	}

	s.invalidateNotificationCache(ctx)

	logger.Info("submission rejected", map[string]interface{}{
		"submission_id": sub.ID.String(),
	})

	return sub, nil
}

// =====================================================
// NOTIFICATIONS
// =====================================================

func (s *moderationService) NotificationCounts(ctx context.Context) (*model.NotificationCounts, error) {
	var cached model.NotificationCounts
	found, err := s.cache.Get(ctx, notificationCacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}
	if err != nil {
		logger.Error("notification cache read failed", err)
	}

	pendingBlogs, err := s.submissionRepo.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, model.NewStorageError(fmt.Errorf("count pending blogs: %w", err))
	}

	pendingUsers, err := s.userCounter.CountPendingApproval(ctx)
	if err != nil {
		return nil, model.NewStorageError(fmt.Errorf("count pending users: %w", err))
	}

	counts := &model.NotificationCounts{
		PendingBlogs: pendingBlogs,
		PendingUsers: pendingUsers,
		Total:        pendingBlogs + pendingUsers,
	}

	if err := s.cache.Set(ctx, notificationCacheKey, counts, notificationCacheTTL); err != nil {
		logger.Error("notification cache write failed", err)
	}

	return counts, nil
}

func (s *moderationService) invalidateNotificationCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, notificationCacheKey); err != nil {
		logger.Error("notification cache invalidation failed", err)
	}
}
