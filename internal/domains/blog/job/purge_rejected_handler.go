package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/repository"
	"bloghub-backend/pkg/logger"
)

// PurgeRejectedPayload configures one purge run. RetentionDays of zero
// falls back to the handler default.
type PurgeRejectedPayload struct {
	RetentionDays int `json:"retention_days,omitempty"`
}

// PurgeRejectedHandler deletes rejected submissions once their audit
// retention has elapsed. Scheduled daily; safe to run concurrently
// because the delete is a single cutoff query.
type PurgeRejectedHandler struct {
	submissionRepo repository.SubmissionRepository
	retentionDays  int
}

func NewPurgeRejectedHandler(submissionRepo repository.SubmissionRepository, retentionDays int) *PurgeRejectedHandler {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &PurgeRejectedHandler{
		submissionRepo: submissionRepo,
		retentionDays:  retentionDays,
	}
}

func (h *PurgeRejectedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload PurgeRejectedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal purge payload failed", err)
		return err
	}

	retentionDays := h.retentionDays
	if payload.RetentionDays > 0 {
		retentionDays = payload.RetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	log.Info().
		Time("cutoff", cutoff).
		Int("retention_days", retentionDays).
		Msg("Starting purge of rejected submissions")

	deleted, err := h.submissionRepo.DeleteRejectedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("Purge rejected submissions failed", err)
		return err
	}

	log.Info().
		Int64("deleted", deleted).
		Msg("Finished purge of rejected submissions")

	return nil
}
