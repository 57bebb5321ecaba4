package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/internal/api/handler/router"
	"github.com/vfg2006/page-reach-sync/internal/scheduler"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Metrics expõe as métricas Prometheus do processo
func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// Sync agrupa as rotas de disparo e acompanhamento de sincronizações
func Sync(syncService *scheduler.PageInsightSyncService, runRepo repository.SyncRunRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync",
			Method:  http.MethodPost,
			Handler: TriggerSync(syncService),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(syncService),
		},
		{
			Path:    "/v1/sync/runs",
			Method:  http.MethodGet,
			Handler: ListSyncRuns(runRepo),
		},
		{
			Path:    "/v1/sync/runs/:id/failures",
			Method:  http.MethodGet,
			Handler: ListSyncRunFailures(runRepo),
		},
	}
}

// Reports agrupa as rotas de consulta aos relatórios gerados
func Reports(store reportstore.Store, syncService syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: ListReports(store),
		},
		{
			Path:    "/v1/reports/:identity/status",
			Method:  http.MethodGet,
			Handler: GetReportStatus(syncService),
		},
	}
}
