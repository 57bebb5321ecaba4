package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GraphAPICalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graph_api_calls_total",
		Help: "Chamadas despachadas para a Graph API por endpoint",
	}, []string{"endpoint"})

	GraphAPIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graph_api_retries_total",
		Help: "Tentativas repetidas de chamadas à Graph API por motivo",
	}, []string{"reason"})

	GraphAPIFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graph_api_failures_total",
		Help: "Falhas definitivas de chamadas à Graph API por classe",
	}, []string{"class"})

	BudgetWaitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "graph_api_budget_wait_seconds",
		Help:    "Tempo de espera pelo orçamento horário de chamadas",
		Buckets: []float64{.001, .01, .1, 1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
	})

	CircuitBreakerState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graph_api_circuit_breaker_state",
		Help: "Estado do circuit breaker da Graph API (0 fechado, 1 meio aberto, 2 aberto)",
	})

	PagesSynced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pages_synced_total",
		Help: "Páginas processadas por status final",
	}, []string{"status"})

	SyncRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_runs_total",
		Help: "Execuções de sincronização por gatilho e resultado",
	}, []string{"trigger", "status"})

	SyncRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_run_duration_seconds",
		Help:    "Duração de uma execução de sincronização",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600, 7200},
	})
)

// MustRegister registra todas as métricas no registrador informado.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		GraphAPICalls,
		GraphAPIRetries,
		GraphAPIFailures,
		BudgetWaitSeconds,
		CircuitBreakerState,
		PagesSynced,
		SyncRuns,
		SyncRunDuration,
	)
}

// ObserveBudgetWait registra quanto tempo uma chamada esperou pelo orçamento.
func ObserveBudgetWait(start time.Time) {
	BudgetWaitSeconds.Observe(time.Since(start).Seconds())
}
