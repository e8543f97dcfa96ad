package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultRetentionDays is how long conversation turns are kept.
	DefaultRetentionDays = 30
	// DefaultCleanupInterval is the pause between cleanup runs.
	DefaultCleanupInterval = 24 * time.Hour
)

// CleanupConfig configures the retention job.
type CleanupConfig struct {
	RetentionDays   int
	CleanupInterval time.Duration
}

// CleanupJob periodically deletes conversation turns older than the
// retention window.
type CleanupJob struct {
	store  Service
	config CleanupConfig

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// NewCleanupJob creates a retention job over the given store.
func NewCleanupJob(store Service, config CleanupConfig) *CleanupJob {
	if config.RetentionDays <= 0 {
		config.RetentionDays = DefaultRetentionDays
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultCleanupInterval
	}
	return &CleanupJob{store: store, config: config}
}

// Start launches the job in a goroutine. Starting a running job is a no-op.
func (j *CleanupJob) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return
	}
	j.running = true
	j.stopChan = make(chan struct{})

	go j.run(ctx)

	slog.Info("session cleanup job started",
		"retention_days", j.config.RetentionDays,
		"interval", j.config.CleanupInterval)
}

// Stop halts the job. Stopping a stopped job is a no-op.
func (j *CleanupJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}
	close(j.stopChan)
	j.running = false
}

// RunOnce executes a single cleanup pass immediately.
func (j *CleanupJob) RunOnce(ctx context.Context) (int64, error) {
	return j.store.CleanupExpired(ctx, j.config.RetentionDays)
}

// IsRunning reports whether the job loop is active.
func (j *CleanupJob) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

func (j *CleanupJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.config.CleanupInterval)
	defer ticker.Stop()

	// One pass right away so a long-stopped instance catches up on start.
	j.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.stopChan:
			return
		case <-ticker.C:
			j.runPass(ctx)
		}
	}
}

func (j *CleanupJob) runPass(ctx context.Context) {
	deleted, err := j.RunOnce(ctx)
	if err != nil {
		slog.Error("session cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("session cleanup completed", "deleted_turns", deleted)
	}
}
