package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
)

// PageInsightSyncConfig representa a configuração do agendador de sincronização de páginas
type PageInsightSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PageInsightSyncService gerencia o agendamento da sincronização de métricas de páginas
type PageInsightSyncService struct {
	scheduler           *gocron.Scheduler
	config              PageInsightSyncConfig
	appConfig           *config.Config
	syncService         syncing.Syncer
	integrator          meta.Integrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRuns            int
	lastPagesFailed     int
	lastError           string
}

// NewPageInsightSyncService cria uma nova instância do agendador de sincronização de páginas
func NewPageInsightSyncService(
	syncService syncing.Syncer,
	integrator meta.Integrator,
	appConfig *config.Config,
) *PageInsightSyncService {
	// Criar a configuração com base na config global
	syncConfig := PageInsightSyncConfig{
		CronSchedule: appConfig.Sync.CronSchedule,
		SyncEnabled:  appConfig.Sync.CronEnabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de páginas carregada")

	return &PageInsightSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		syncService: syncService,
		integrator:  integrator,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *PageInsightSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de páginas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de páginas")

	// Agendar a varredura de meses faltantes
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(syncing.Options{Trigger: domain.TriggerCron})
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de páginas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado.
	// A execução em andamento termina sozinha, só novas deixam de começar.
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de páginas")
		s.scheduler.Stop()
	}()

	return nil
}

// runSync executa uma sincronização com guarda de reentrância: se uma
// execução ainda está em andamento, a nova é ignorada
func (s *PageInsightSyncService) runSync(opts syncing.Options) {
	if !s.claimSync() {
		logrus.Info("Sincronização de páginas já em andamento, ignorando")
		return
	}

	s.doSync(opts)
}

// claimSync adquire a guarda de execução única
func (s *PageInsightSyncService) claimSync() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

// doSync executa a sincronização. A guarda já deve ter sido adquirida.
func (s *PageInsightSyncService) doSync(opts syncing.Options) {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.WithField("trigger", opts.Trigger).Info("Iniciando sincronização de páginas")

	summary, err := s.syncService.Run(context.Background(), opts)

	runs, pagesFailed := 0, 0
	if summary != nil {
		runs = len(summary.Runs)
		pagesFailed = summary.PagesFailed()
	}

	s.syncMutex.Lock()
	s.lastRuns = runs
	s.lastPagesFailed = pagesFailed
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Error("Sincronização de páginas terminou com erro")
		return
	}

	logrus.WithFields(logrus.Fields{
		"runs":         runs,
		"pages_failed": pagesFailed,
	}).Info("Sincronização de páginas concluída")
}

// TriggerManualSync inicia manualmente uma sincronização de páginas.
// Um seletor vazio dispara a varredura de meses faltantes.
// Devolve false quando já existe uma execução em andamento. A guarda é
// adquirida aqui, antes da goroutine, para que dois disparos seguidos
// nunca sejam ambos aceitos.
func (s *PageInsightSyncService) TriggerManualSync(selector domain.Selector) bool {
	if !s.claimSync() {
		logrus.Info("Sincronização de páginas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de páginas")
	go s.doSync(syncing.Options{Selector: selector, Trigger: domain.TriggerManual})
	return true
}

// GetStatus retorna o status atual do agendador
func (s *PageInsightSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_runs":              s.lastRuns,
		"last_pages_failed":      s.lastPagesFailed,
		"last_error":             s.lastError,
	}

	if s.integrator != nil {
		status["api_calls_total"] = s.integrator.APICalls()
		status["hourly_budget"] = s.appConfig.Sync.HourlyBudget
	}

	return status
}
