package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
	"github.com/vfg2006/page-reach-sync/pkg/apiErrors"
	"github.com/vfg2006/page-reach-sync/pkg/log"
)

// ListReports lista os arquivos de relatório presentes no diretório
func ListReports(store reportstore.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		files, err := store.ListReportFiles()
		if err != nil {
			logger.WithError(err).Error("reports-api: erro ao listar relatórios")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar relatórios", nil)
			return
		}

		response := map[string]any{
			"reports": files,
			"total":   len(files),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("reports-api: erro ao codificar resposta")
		}
	})
}

// GetReportStatus monta o resumo de presença de um relatório mensal,
// comparando com o mês anterior. Nada é gravado.
func GetReportStatus(syncService syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		identity := httprouter.ParamsFromContext(r.Context()).ByName("identity")

		year, month, ok := domain.ReportIdentity(identity).MonthOf()
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Identidade inválida, use o formato YYYY_MM", nil)
			return
		}

		rows, err := syncService.StatusReport(year, month)
		if err != nil {
			if errors.Is(err, domain.ErrReportNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrReportNotFound, err.Error(), nil)
				return
			}
			logger.WithError(err).WithField("identity", identity).Error("reports-api: erro ao montar resumo")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar resumo do relatório", nil)
			return
		}

		response := map[string]any{
			"identity": identity,
			"rows":     rows,
			"total":    len(rows),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("reports-api: erro ao codificar resposta")
		}
	})
}
