package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bloghub-backend/internal/config"
	"bloghub-backend/internal/domains/blog/job"
	"bloghub-backend/internal/shared"
	"bloghub-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerPurgeRejectedSubmissionsJob()
}

// ================================================
// JOB: Purge Rejected Submissions (Daily at 3 AM)
// ================================================
// Rejected submissions are kept for audit, then removed once the
// retention period has passed. 3 AM keeps the delete off peak hours.
func (s *Scheduler) registerPurgeRejectedSubmissionsJob() error {
	payload, err := json.Marshal(job.PurgeRejectedPayload{
		RetentionDays: s.jobConfig.PurgeRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeRejectedSubmissions, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueBlog),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PurgeRejectedSubmissions job", err)
		return err
	}

	logger.Info("Registered PurgeRejectedSubmissions: daily at 3 AM", map[string]interface{}{
		"retention_days": s.jobConfig.PurgeRetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
