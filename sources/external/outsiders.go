package external

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chokwadi/sources/configuration"
	"chokwadi/sources/platform"
	"chokwadi/sources/repository"
	"chokwadi/sources/routing"
	"chokwadi/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outsiders are the auxiliary HTTP surfaces next to the webhook: the health
// endpoint and the two metrics listeners.
type Outsiders struct {
	log    *tracing.Logger
	config *configuration.Config
	health *repository.HealthRepository
	router *routing.Router
	ss     *http.Server
	sms    *http.Server
	as     *http.Server
}

func NewOutsiders(log *tracing.Logger, config *configuration.Config, health *repository.HealthRepository, router *routing.Router) *Outsiders {
	systemRegistry := prometheus.NewRegistry()

	systemRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	x := &Outsiders{log: log, config: config, health: health, router: router}

	x.ss = &http.Server{
		Addr: fmt.Sprintf(":%d", config.Service.StartupPort),
		Handler: platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
			m.HandleFunc("/", x.infoHandler)
			m.HandleFunc("/health", x.healthHandler)
		}),
	}
	x.sms = &http.Server{
		Addr: fmt.Sprintf(":%d", config.Service.SystemMetricsPort),
		Handler: platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
			m.Handle("/metrics", promhttp.HandlerFor(systemRegistry, promhttp.HandlerOpts{}))
		}),
	}
	x.as = &http.Server{
		Addr: fmt.Sprintf(":%d", config.Service.ApplicationMetricsPort),
		Handler: platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
			m.Handle("/metrics", promhttp.Handler())
		}),
	}

	return x
}

func (x *Outsiders) infoHandler(w http.ResponseWriter, r *http.Request) {
	available := make([]string, 0, 2)
	for _, p := range x.router.Available() {
		available = append(available, string(p))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"service":             "Chokwadi AI",
		"tagline":             "Zvokwadi Zvinobatsira - The Truth Helps",
		"description":         "Multimodal misinformation detection for Zimbabwean youth",
		"status":              "running",
		"mode":                string(x.router.Mode()),
		"available_providers": available,
		"version":             platform.GetAppVersion(),
		"build_time":          platform.GetAppBuildTime(),
		"uptime":              time.Since(platform.GetAppStartTime()).Truncate(time.Second).String(),
	})
}

func (x *Outsiders) healthHandler(w http.ResponseWriter, r *http.Request) {
	x.log.I("Health check requested", "remote", r.RemoteAddr)

	status := http.StatusOK
	payload := map[string]string{"status": "ok", "mode": string(x.router.Mode())}

	if err := x.health.CheckDatabaseHealth(x.log); err != nil {
		status = http.StatusServiceUnavailable
		payload["status"] = "degraded"
		payload["database"] = "unreachable"
	}
	if err := x.health.CheckRedisHealth(x.log); err != nil {
		status = http.StatusServiceUnavailable
		payload["status"] = "degraded"
		payload["redis"] = "unreachable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (x *Outsiders) startup() {
	x.log.I("Startup server is starting", tracing.ServerKind, "startup", "port", x.config.Service.StartupPort)

	if err := x.ss.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		x.log.F("Failed to start startup server", tracing.ServerKind, "startup", tracing.InnerError, err)
	}
}

func (x *Outsiders) systemMetrics() {
	x.log.I("System metrics server is starting", tracing.ServerKind, "system_metrics", "port", x.config.Service.SystemMetricsPort)

	if err := x.sms.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		x.log.F("Failed to start system metrics server", tracing.ServerKind, "system_metrics", tracing.InnerError, err)
	}
}

func (x *Outsiders) applicationMetrics() {
	x.log.I("Application metrics server is starting", tracing.ServerKind, "application_metrics", "port", x.config.Service.ApplicationMetricsPort)

	if err := x.as.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		x.log.F("Failed to start application metrics server", tracing.ServerKind, "application_metrics", tracing.InnerError, err)
	}
}
