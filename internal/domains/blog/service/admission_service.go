package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/repository"
	"bloghub-backend/pkg/logger"
)

// =====================================================
// ADMISSION SERVICE
// =====================================================

type admissionService struct {
	submissionRepo repository.SubmissionRepository
	dedupWindow    time.Duration
	now            func() time.Time
}

func NewAdmissionService(
	submissionRepo repository.SubmissionRepository,
	dedupWindow time.Duration,
) AdmissionService {
	if dedupWindow <= 0 {
		dedupWindow = model.DefaultDedupWindow
	}
	return &admissionService{
		submissionRepo: submissionRepo,
		dedupWindow:    dedupWindow,
		now:            time.Now,
	}
}

// Submit runs the admission pipeline:
//
//  1. Validate the request body.
//  2. Resolve the idempotency key (header wins over body).
//  3. Fingerprint the content and look for the same signature inside
//     the dedup window. This runs before the key check because a
//     double-click produces two requests with different keys but
//     identical content.
//  4. With a key: upsert on the key; a prior record short-circuits.
//  5. Without a key: fall back to a raw content match for records
//     written before signatures existed, then insert as pending,
//     recovering from an idempotency-key race by re-reading the winner.
func (s *admissionService) Submit(
	ctx context.Context,
	req model.SubmitBlogRequest,
	requestID string,
) (*AdmissionResult, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Resolve idempotency key. Header takes precedence.
	if requestID == "" {
		requestID = req.RequestID
	}

	signature := model.ComputeSignature(req.Payload())
	sub := s.newPendingSubmission(req, signature, requestID)

	// Step 3: Signature window check. Collapses repeats of the same
	// content regardless of what key (if any) each retry carried.
	since := s.now().Add(-s.dedupWindow)

	recent, err := s.submissionRepo.FindRecentBySignature(ctx, signature, since)
	if err == nil {
		logger.Info("submission deduped by signature", map[string]interface{}{
			"signature":     signature,
			"submission_id": recent.ID.String(),
		})
		return &AdmissionResult{Submission: recent, Deduped: true}, nil
	}
	if !errors.Is(err, model.ErrSubmissionNotFound) {
		return nil, model.NewStorageError(err)
	}

	// Step 4: Keyed path. The unique key settles identity across
	// retries that fall outside the window.
	if requestID != "" {
		existing, created, err := s.submissionRepo.UpsertByRequestID(ctx, sub)
		if err != nil {
			return nil, model.NewStorageError(err)
		}
		if !created {
			logger.Info("submission deduped by request id", map[string]interface{}{
				"request_id":    requestID,
				"submission_id": existing.ID.String(),
			})
		}
		return &AdmissionResult{Submission: existing, Deduped: !created}, nil
	}

	// Step 5: Unkeyed path. Raw content fallback catches rows persisted
	// without a signature.
	recent, err = s.submissionRepo.FindRecentByContent(
		ctx,
		sub.AuthorEmail,
		sub.Title,
		sub.Content,
		sub.Excerpt,
		since,
	)
	if err == nil {
		return &AdmissionResult{Submission: recent, Deduped: true}, nil
	}
	if !errors.Is(err, model.ErrSubmissionNotFound) {
		return nil, model.NewStorageError(err)
	}

	if err := s.submissionRepo.Insert(ctx, sub); err != nil {
		if errors.Is(err, model.ErrDuplicateRequestID) {
			return s.recoverFromRace(ctx, sub)
		}
		return nil, model.NewStorageError(err)
	}

	logger.Info("submission admitted", map[string]interface{}{
		"submission_id": sub.ID.String(),
		"author_email":  sub.AuthorEmail,
	})

	return &AdmissionResult{Submission: sub, Deduped: false}, nil
}

func (s *admissionService) newPendingSubmission(
	req model.SubmitBlogRequest,
	signature string,
	requestID string,
) *model.Submission {
	sub := &model.Submission{
		ID:          uuid.New(),
		Signature:   signature,
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    req.Category,
		Tags:        req.Tags,
		AuthorName:  req.Author.Name,
		AuthorEmail: req.Author.Email,
		// Client-asserted status is ignored. Every submission enters
		// the queue pending.
		Status:    model.StatusPending,
		CreatedAt: s.now(),
	}
	if requestID != "" {
		sub.RequestID = &requestID
	}
	if req.ImageURL != "" {
		img := req.ImageURL
		sub.ImageURL = &img
	}
	return sub
}

// recoverFromRace handles two inserts colliding on the idempotency key:
// the loser re-reads the winner's record and reports it as a dedup hit.
func (s *admissionService) recoverFromRace(ctx context.Context, sub *model.Submission) (*AdmissionResult, error) {
	if sub.RequestID == nil {
		return nil, model.NewStorageError(fmt.Errorf("unique violation without request id"))
	}

	winner, err := s.submissionRepo.FindByRequestID(ctx, *sub.RequestID)
	if err != nil {
		return nil, model.NewStorageError(fmt.Errorf("failed to recover duplicate request: %w", err))
	}

	logger.Info("submission insert lost idempotency race, returning winner", map[string]interface{}{
		"request_id":    *sub.RequestID,
		"submission_id": winner.ID.String(),
	})

	return &AdmissionResult{Submission: winner, Deduped: true}, nil
}
