package metrics

import (
	"chokwadi/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService struct {
	log *tracing.Logger
}

var (
	messagesHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_messages_handled_total",
			Help: "Total number of webhook messages handled",
		},
		[]string{"kind", "status"},
	)

	messagesIgnored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_messages_ignored_total",
			Help: "Total number of messages ignored",
		},
		[]string{"reason"},
	)

	adminCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_admin_commands_total",
			Help: "Total number of admin commands processed",
		},
		[]string{"command", "status"},
	)

	providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_provider_requests_total",
			Help: "Total number of analysis provider requests",
		},
		[]string{"provider", "outcome"},
	)

	fallbacksEngaged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chokwadi_fallbacks_engaged_total",
			Help: "Total number of auto-mode fallback retries",
		},
	)

	transcriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_transcriptions_total",
			Help: "Total number of voice note transcriptions",
		},
		[]string{"outcome"},
	)

	scansPerformed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_link_scans_total",
			Help: "Total number of link security scans by risk level",
		},
		[]string{"risk"},
	)

	tokenUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_token_usage_total",
			Help: "Total number of tokens used",
		},
		[]string{"model"},
	)

	costUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_cost_usage_total",
			Help: "Total cost incurred",
		},
		[]string{"model"},
	)

	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chokwadi_provider_request_duration_seconds",
			Help:    "Duration of AI provider requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	messageProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chokwadi_message_processing_duration_seconds",
			Help:    "Total duration of webhook message processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	languagesDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chokwadi_languages_detected_total",
			Help: "Total number of reply languages detected",
		},
		[]string{"lang"},
	)
)

func init() {
	prometheus.MustRegister(messagesHandled)
	prometheus.MustRegister(messagesIgnored)
	prometheus.MustRegister(adminCommands)
	prometheus.MustRegister(providerRequests)
	prometheus.MustRegister(fallbacksEngaged)
	prometheus.MustRegister(transcriptions)
	prometheus.MustRegister(scansPerformed)
	prometheus.MustRegister(tokenUsage)
	prometheus.MustRegister(costUsage)
	prometheus.MustRegister(providerRequestDuration)
	prometheus.MustRegister(messageProcessingDuration)
	prometheus.MustRegister(languagesDetected)
}

func NewMetricsService(log *tracing.Logger) *MetricsService {
	return &MetricsService{
		log: log,
	}
}

func (s *MetricsService) RecordMessageHandled(kind, status string) {
	messagesHandled.WithLabelValues(kind, status).Inc()
}

func (s *MetricsService) RecordMessageIgnored(reason string) {
	messagesIgnored.WithLabelValues(reason).Inc()
}

func (s *MetricsService) RecordAdminCommand(command, status string) {
	adminCommands.WithLabelValues(command, status).Inc()
}

func (s *MetricsService) RecordProviderRequest(provider, outcome string) {
	providerRequests.WithLabelValues(provider, outcome).Inc()
}

func (s *MetricsService) RecordFallbackEngaged() {
	fallbacksEngaged.Inc()
}

func (s *MetricsService) RecordTranscription(outcome string) {
	transcriptions.WithLabelValues(outcome).Inc()
}

func (s *MetricsService) RecordLinkScan(risk string) {
	scansPerformed.WithLabelValues(risk).Inc()
}

func (s *MetricsService) RecordUsage(tokens int, cost float64, model string) {
	tokenUsage.WithLabelValues(model).Add(float64(tokens))
	costUsage.WithLabelValues(model).Add(cost)
}

func (s *MetricsService) ObserveProviderRequestDuration(provider string, seconds float64) {
	providerRequestDuration.WithLabelValues(provider).Observe(seconds)
}

func (s *MetricsService) ObserveMessageProcessingDuration(seconds float64) {
	messageProcessingDuration.Observe(seconds)
}

func (s *MetricsService) RecordLanguageDetected(lang string) {
	languagesDetected.WithLabelValues(lang).Inc()
}
