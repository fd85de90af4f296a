package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session Metrics
	SessionVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_session_verifications_total",
		Help: "Total number of access token verifications against Readwise.",
	}, []string{"result"}) // result: "valid", "invalid" or "error"
	SessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_sessions_created_total",
		Help: "Total number of access token cookies issued.",
	})

	// Document Metrics
	DocumentsFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_documents_fetched_total",
		Help: "Total number of documents fetched from Readwise.",
	}, []string{"mode"}) // mode: "single" or "batch"
	TagUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_tag_updates_total",
		Help: "Total number of document tag updates sent to Readwise.",
	}, []string{"status"}) // status: "success" or "failed"
	HashtagsExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_hashtags_extracted_total",
		Help: "Total number of hashtags extracted from document summaries.",
	})

	// Upstream Metrics
	RateLimitRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_readwise_rate_limit_retries_total",
		Help: "Total number of retries caused by 429 responses from Readwise.",
	})
)
