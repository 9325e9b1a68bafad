package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OnboardingMetrics holds the merchant lifecycle metrics
type OnboardingMetrics struct {
	MerchantsCreatedTotal    *prometheus.CounterVec
	OnboardingTransitions    *prometheus.CounterVec
	DocumentsSubmittedTotal  *prometheus.CounterVec
	DocumentReviewsTotal     *prometheus.CounterVec
	VerificationsTotal       *prometheus.CounterVec
	BulkOperationItemsTotal  *prometheus.CounterVec
	RatingRecomputesTotal    *prometheus.CounterVec
	SetupTokensExpiredTotal  prometheus.Counter
	VerificationDuration     prometheus.Histogram
}

// NewOnboardingMetrics registers and returns the lifecycle metrics
func NewOnboardingMetrics() *OnboardingMetrics {
	return &OnboardingMetrics{
		MerchantsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchants_created_total",
			Help: "Merchant accounts created, by origin (admin, self)",
		}, []string{"origin"}),
		OnboardingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_onboarding_transitions_total",
			Help: "Onboarding status transitions, by target status",
		}, []string{"to_status"}),
		DocumentsSubmittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_documents_submitted_total",
			Help: "Verification documents submitted, by type",
		}, []string{"type"}),
		DocumentReviewsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_document_reviews_total",
			Help: "Document review decisions, by outcome",
		}, []string{"status"}),
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_verifications_total",
			Help: "Merchant verification actions, by kind (admin, auto, bulk)",
		}, []string{"kind"}),
		BulkOperationItemsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_bulk_operation_items_total",
			Help: "Bulk operation per-item outcomes, by operation and outcome",
		}, []string{"operation", "outcome"}),
		RatingRecomputesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_rating_recomputes_total",
			Help: "Rating aggregate recomputes, by result (ok, error)",
		}, []string{"result"}),
		SetupTokensExpiredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "merchant_setup_tokens_expired_total",
			Help: "Setup tokens cleared by the expiry sweeper",
		}),
		VerificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "merchant_verification_duration_seconds",
			Help:    "Time from account creation to verification",
			Buckets: prometheus.ExponentialBuckets(3600, 2, 12),
		}),
	}
}
