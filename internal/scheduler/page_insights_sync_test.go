package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
	metamocks "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/page-reach-sync/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestPageSyncService(syncService syncing.Syncer) *PageInsightSyncService {
	appConfig := &config.Config{
		Sync: config.Sync{
			CronSchedule: "0 3 * * *",
			CronEnabled:  true,
			HourlyBudget: 200,
		},
	}

	return &PageInsightSyncService{
		scheduler:   gocron.NewScheduler(time.UTC),
		config:      PageInsightSyncConfig{CronSchedule: "0 3 * * *", SyncEnabled: true},
		appConfig:   appConfig,
		syncService: syncService,
	}
}

func TestPageInsightSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})

	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts syncing.Options) (*syncing.Summary, error) {
			assert.Equal(t, domain.TriggerManual, opts.Trigger)
			assert.Equal(t, "2025-02", opts.Selector.Month)
			close(done)
			return &syncing.Summary{Runs: []*domain.SyncRun{{ID: "run_1"}}}, nil
		})

	service := newTestPageSyncService(mockSyncer)

	accepted := service.TriggerManualSync(domain.Selector{Month: "2025-02"})
	assert.True(t, accepted)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sincronização manual não foi disparada")
	}

	// A guarda é liberada quando a execução termina
	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)

	status := service.GetStatus()
	assert.Equal(t, 1, status["last_runs"])
	assert.Equal(t, "", status["last_error"])
}

func TestPageInsightSyncService_TriggerManualSyncIgnoradoQuandoJaExecutando(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma execução deve ser disparada
	mockSyncer := syncmocks.NewMockSyncer(ctrl)

	service := newTestPageSyncService(mockSyncer)
	service.syncRunning = true

	accepted := service.TriggerManualSync(domain.Selector{})

	assert.False(t, accepted)
}

func TestPageInsightSyncService_TriggerManualSyncDuploNaoDisparaDuasExecucoes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})

	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ syncing.Options) (*syncing.Summary, error) {
			<-release
			return &syncing.Summary{}, nil
		})

	service := newTestPageSyncService(mockSyncer)

	// A guarda é adquirida no disparo, não na goroutine: o segundo pedido
	// é recusado mesmo antes de a execução começar
	assert.True(t, service.TriggerManualSync(domain.Selector{}))
	assert.False(t, service.TriggerManualSync(domain.Selector{}))

	close(release)

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPageInsightSyncService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	mockIntegrator := metamocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().APICalls().Return(int64(42))

	service := newTestPageSyncService(mockSyncer)
	service.integrator = mockIntegrator

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, int64(42), status["api_calls_total"])
	assert.Equal(t, 200, status["hourly_budget"])
}

func TestPageInsightSyncService_StartDesabilitado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Com o agendamento desabilitado nada é agendado nem executado
	mockSyncer := syncmocks.NewMockSyncer(ctrl)

	service := newTestPageSyncService(mockSyncer)
	service.config.SyncEnabled = false

	err := service.Start(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, service.scheduler.Len())
}
