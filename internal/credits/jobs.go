package credits

import (
	"context"
	"time"

	"deskhive/pkg/logger"
)

// ExpiryJob periodically sweeps overdue credits to EXPIRED
type ExpiryJob struct {
	service  Service
	interval time.Duration
	logger   *logger.Logger
	stop     chan struct{}
}

// NewExpiryJob creates a sweep job with the configured interval
func NewExpiryJob(service Service, interval time.Duration, log *logger.Logger) *ExpiryJob {
	return &ExpiryJob{
		service:  service,
		interval: interval,
		logger:   log,
		stop:     make(chan struct{}),
	}
}

// Start runs the sweep loop in a goroutine until Stop is called
func (j *ExpiryJob) Start() {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		// Sweep once on startup to catch credits that lapsed while down
		j.sweep()

		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop
func (j *ExpiryJob) Stop() {
	close(j.stop)
}

func (j *ExpiryJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := j.service.SweepExpiry(ctx); err != nil {
		j.logger.ErrorWithContext(ctx, "credit expiry sweep failed", err, nil)
	}
}
