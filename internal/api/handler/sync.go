package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/internal/scheduler"
	"github.com/vfg2006/page-reach-sync/pkg/apiErrors"
	"github.com/vfg2006/page-reach-sync/pkg/log"
	"github.com/vfg2006/page-reach-sync/pkg/middleware"
	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

// TriggerSyncRequest é o corpo opcional do disparo manual. Sem mês, a
// execução faz a varredura de meses faltantes a partir do mês âncora.
type TriggerSyncRequest struct {
	Month string `json:"month,omitempty"`
}

// TriggerSync dispara manualmente uma sincronização de páginas
func TriggerSync(syncService *scheduler.PageInsightSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req TriggerSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if req.Month != "" {
			if _, _, err := utils.ParseYearMonth(req.Month); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Mês inválido, use o formato YYYY-MM", nil)
				return
			}
		}

		if !syncService.TriggerManualSync(domain.Selector{Month: req.Month}) {
			apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Sincronização já em andamento", nil)
			return
		}

		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			logger = logger.WithField("subject", claims.Subject)
		}
		logger.WithField("month", req.Month).Info("sync-api: sincronização manual disparada")

		response := map[string]any{
			"message": "Sincronização iniciada",
			"trigger": domain.TriggerManual,
		}
		if req.Month != "" {
			response["month"] = req.Month
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("sync-api: erro ao codificar resposta")
		}
	})
}

// GetSyncStatus retorna o status atual do agendador de sincronização
func GetSyncStatus(syncService *scheduler.PageInsightSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(syncService.GetStatus()); err != nil {
			logger.WithError(err).Error("sync-api: erro ao codificar resposta")
		}
	})
}

// ListSyncRuns lista as execuções recentes do livro-razão de sincronizações
func ListSyncRuns(repo repository.SyncRunRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var limit uint64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		runs, err := repo.List(limit)
		if err != nil {
			logger.WithError(err).Error("sync-api: erro ao listar execuções")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o livro-razão de sincronizações", nil)
			return
		}

		response := map[string]any{
			"runs":  runs,
			"total": len(runs),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("sync-api: erro ao codificar resposta")
		}
	})
}

// ListSyncRunFailures lista as falhas de página registradas em uma execução
func ListSyncRunFailures(repo repository.SyncRunRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		runID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if runID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador da execução não informado", nil)
			return
		}

		failures, err := repo.ListPageFailures(runID)
		if err != nil {
			logger.WithError(err).WithField("run_id", runID).Error("sync-api: erro ao listar falhas da execução")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar falhas da execução", nil)
			return
		}

		response := map[string]any{
			"run_id":   runID,
			"failures": failures,
			"total":    len(failures),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("sync-api: erro ao codificar resposta")
		}
	})
}
