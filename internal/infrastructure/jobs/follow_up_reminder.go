package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"realty-crm.backend/internal/domain/entities"
)

type followUpReminderSource interface {
	ListDueReminders(ctx context.Context, before time.Time) ([]*entities.FollowUp, error)
	MarkReminded(ctx context.Context, id uuid.UUID) error
}

type reminderNotifier interface {
	NotifyFollowUpDue(ctx context.Context, followUp *entities.FollowUp) error
}

// FollowUpReminderJob fires reminders for follow-ups whose scheduled time
// has passed and marks them so they fire only once.
type FollowUpReminderJob struct {
	repo     followUpReminderSource
	notifier reminderNotifier
	interval time.Duration
	stop     chan struct{}
}

func NewFollowUpReminderJob(repo followUpReminderSource, notifier reminderNotifier) *FollowUpReminderJob {
	return &FollowUpReminderJob{
		repo:     repo,
		notifier: notifier,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *FollowUpReminderJob) Start(ctx context.Context) {
	log.Println("🕐 Starting follow-up reminder job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Follow-up reminder job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Follow-up reminder job stopped")
			return
		case <-ticker.C:
			j.processDueReminders(ctx)
		}
	}
}

func (j *FollowUpReminderJob) Stop() {
	close(j.stop)
}

func (j *FollowUpReminderJob) processDueReminders(ctx context.Context) {
	due, err := j.repo.ListDueReminders(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error fetching due follow-up reminders: %v", err)
		return
	}

	if len(due) == 0 {
		return
	}

	log.Printf("🔄 Processing %d due follow-up reminders...", len(due))

	for _, followUp := range due {
		if j.notifier != nil {
			if err := j.notifier.NotifyFollowUpDue(ctx, followUp); err != nil {
				log.Printf("❌ Error notifying follow-up %s: %v", followUp.ID, err)
				continue
			}
		}
		if err := j.repo.MarkReminded(ctx, followUp.ID); err != nil {
			log.Printf("❌ Error marking follow-up %s reminded: %v", followUp.ID, err)
		}
	}
}
