package shared

// Task type names routed through asynq.
const (
	TypePurgeRejectedSubmissions = "blog:purge_rejected"
)

// Queue names, ordered by worker priority.
const (
	QueueBlog    = "blog"
	QueueDefault = "default"
)
