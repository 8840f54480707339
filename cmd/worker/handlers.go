package main

import (
	"github.com/hibiken/asynq"

	blogJob "bloghub-backend/internal/domains/blog/job"
	"bloghub-backend/internal/shared"
	"bloghub-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	purgeRejected *blogJob.PurgeRejectedHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		purgeRejected: blogJob.NewPurgeRejectedHandler(
			c.SubmissionRepo,
			c.Config.Blog.RejectedRetentionDays,
		),
	}
}

// RegisterHandlers maps task types to their handlers.
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypePurgeRejectedSubmissions, r.purgeRejected)
}
