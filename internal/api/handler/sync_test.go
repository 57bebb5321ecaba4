package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/page-reach-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/page-reach-sync/internal/api/handler/router"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/internal/scheduler"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/page-reach-sync/internal/usecases/syncing/mocks"
	"github.com/vfg2006/page-reach-sync/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newSyncSchedulerForTest(syncService syncing.Syncer) *scheduler.PageInsightSyncService {
	cfg := &config.Config{
		Sync: config.Sync{
			CronSchedule: "0 3 * * *",
			CronEnabled:  false,
			HourlyBudget: 200,
		},
	}
	return scheduler.NewPageInsightSyncService(syncService, nil, cfg)
}

func decodeAPIError(t *testing.T, body []byte) string {
	t.Helper()

	var apiErr struct {
		Code string `json:"code"`
	}
	assert.NoError(t, json.Unmarshal(body, &apiErr))
	return apiErr.Code
}

func TestTriggerSync_RecusaEnquantoJaExecuta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})

	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts syncing.Options) (*syncing.Summary, error) {
			assert.Equal(t, domain.TriggerManual, opts.Trigger)
			assert.Equal(t, "2025-02", opts.Selector.Month)
			<-release
			return &syncing.Summary{}, nil
		})

	service := newSyncSchedulerForTest(mockSyncer)
	trigger := TriggerSync(service)

	first := httptest.NewRecorder()
	trigger.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/v1/sync", bytes.NewBufferString(`{"month":"2025-02"}`)))
	assert.Equal(t, http.StatusAccepted, first.Code)

	// Enquanto a primeira execução está presa, o segundo disparo é recusado
	second := httptest.NewRecorder()
	trigger.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/v1/sync", nil))
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, apiErrors.ErrSyncAlreadyRunning, decodeAPIError(t, second.Body.Bytes()))

	close(release)

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTriggerSync_MesInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma execução deve ser disparada
	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	trigger := TriggerSync(newSyncSchedulerForTest(mockSyncer))

	rec := httptest.NewRecorder()
	trigger.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync", bytes.NewBufferString(`{"month":"2025-13"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidPeriod, decodeAPIError(t, rec.Body.Bytes()))
}

func TestListSyncRuns_RespeitaLimite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC)

	mockRepo := repomocks.NewMockSyncRunRepository(ctrl)
	mockRepo.EXPECT().List(uint64(5)).Return([]*domain.SyncRun{
		{ID: "run_b", Identity: "2025_02", Trigger: domain.TriggerCron, Status: domain.RunStatusSucceeded, StartedAt: started},
		{ID: "run_a", Identity: "2025_01", Trigger: domain.TriggerCLI, Status: domain.RunStatusFailed, StartedAt: started.Add(-time.Hour)},
	}, nil)

	list := ListSyncRuns(mockRepo)

	rec := httptest.NewRecorder()
	list.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/runs?limit=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Runs  []*domain.SyncRun `json:"runs"`
		Total int               `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, "run_b", response.Runs[0].ID)
	assert.Equal(t, domain.RunStatusSucceeded, response.Runs[0].Status)
}

func TestListSyncRuns_LimiteInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// O repositório não deve ser consultado
	mockRepo := repomocks.NewMockSyncRunRepository(ctrl)

	list := ListSyncRuns(mockRepo)

	rec := httptest.NewRecorder()
	list.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/runs?limit=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec.Body.Bytes()))
}

func TestListSyncRunFailures_BuscaPorExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSyncRunRepository(ctrl)
	mockRepo.EXPECT().ListPageFailures("run_x").Return([]domain.PageFailure{
		{RunID: "run_x", PageID: "111", PageName: "Loja A", Status: domain.StatusAPIError, Detail: "erro 500"},
	}, nil)

	// O router real extrai o parâmetro :id da rota
	rt := router.New(
		router.WithRoutes(Sync(newSyncSchedulerForTest(syncmocks.NewMockSyncer(ctrl)), mockRepo)...),
	)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/runs/run_x/failures", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		RunID    string               `json:"run_id"`
		Failures []domain.PageFailure `json:"failures"`
		Total    int                  `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "run_x", response.RunID)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "111", response.Failures[0].PageID)
	assert.Equal(t, domain.StatusAPIError, response.Failures[0].Status)
}
