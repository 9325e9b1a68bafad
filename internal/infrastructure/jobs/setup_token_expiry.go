package jobs

import (
	"context"
	"log"
	"time"

	"vendor-hub.backend/internal/infrastructure/metrics"
)

type setupTokenClearer interface {
	ClearExpiredSetupTokens(ctx context.Context, limit int) (int64, error)
}

// SetupTokenExpiryJob clears merchant setup tokens past their expiry window so
// stale credentials can never be redeemed.
type SetupTokenExpiryJob struct {
	repo     setupTokenClearer
	metrics  *metrics.OnboardingMetrics
	interval time.Duration
	stop     chan struct{}
}

func NewSetupTokenExpiryJob(repo setupTokenClearer, m *metrics.OnboardingMetrics) *SetupTokenExpiryJob {
	return &SetupTokenExpiryJob{
		repo:     repo,
		metrics:  m,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *SetupTokenExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting setup token expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Setup token expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Setup token expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SetupTokenExpiryJob) Stop() {
	close(j.stop)
}

func (j *SetupTokenExpiryJob) sweep(ctx context.Context) {
	cleared, err := j.repo.ClearExpiredSetupTokens(ctx, 100)
	if err != nil {
		log.Printf("❌ Error clearing expired setup tokens: %v", err)
		return
	}
	if cleared == 0 {
		return
	}

	if j.metrics != nil {
		j.metrics.SetupTokensExpiredTotal.Add(float64(cleared))
	}
	log.Printf("✅ Cleared %d expired setup tokens", cleared)
}
