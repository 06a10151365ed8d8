package async

import (
	"context"
	"time"
)

// Job is one invoice image queued for extraction.
type Job struct {
	Path        string
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
