package jobs

import (
	"context"
	"log"
	"time"
)

type expiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionCleanupJob purges expired sessions on a fixed interval.
type SessionCleanupJob struct {
	repo     expiredSessionDeleter
	interval time.Duration
	stop     chan struct{}
}

func NewSessionCleanupJob(repo expiredSessionDeleter) *SessionCleanupJob {
	return &SessionCleanupJob{
		repo:     repo,
		interval: time.Hour,
		stop:     make(chan struct{}),
	}
}

func (j *SessionCleanupJob) Start(ctx context.Context) {
	log.Println("🕐 Starting session cleanup job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Session cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Session cleanup job stopped")
			return
		case <-ticker.C:
			j.purgeExpired(ctx)
		}
	}
}

func (j *SessionCleanupJob) Stop() {
	close(j.stop)
}

func (j *SessionCleanupJob) purgeExpired(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Error purging expired sessions: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Purged %d expired sessions", deleted)
	}
}
