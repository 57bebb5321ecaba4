package syncing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/pkg/metrics"
	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

// Options controla uma invocação da sincronização
type Options struct {
	Selector     domain.Selector
	ForceRefresh bool // --update-all: rebusca páginas já presentes
	CheckNew     bool // --check-new: acrescenta páginas novas aos relatórios existentes
	Trigger      string
}

// Summary agrega as execuções disparadas por uma invocação
type Summary struct {
	Runs []*domain.SyncRun
}

// PagesFailed soma as falhas de página de todas as execuções
func (s *Summary) PagesFailed() int {
	total := 0
	for _, run := range s.Runs {
		total += run.PagesFailed
	}
	return total
}

// Syncer é o orquestrador das execuções de sincronização
type Syncer interface {
	Run(ctx context.Context, opts Options) (*Summary, error)
	StatusReport(year int, month time.Month) ([]domain.StatusReportRow, error)
	EmitStatus(year int, month time.Month) error
}

// Service implementa a interface Syncer
type Service struct {
	cfg        *config.Config
	integrator meta.Integrator
	store      reportstore.Store
	runRepo    repository.SyncRunRepository
	now        func() time.Time
}

// NewService cria uma nova instância do orquestrador de sincronização.
// runRepo pode ser nil quando o banco não está disponível: o livro-razão
// deixa de ser gravado sem impedir as execuções.
func NewService(
	cfg *config.Config,
	integrator meta.Integrator,
	store reportstore.Store,
	runRepo repository.SyncRunRepository,
) Syncer {
	return &Service{
		cfg:        cfg,
		integrator: integrator,
		store:      store,
		runRepo:    runRepo,
		now:        time.Now,
	}
}

// Run resolve o seletor e dispara as execuções correspondentes: um único
// período, a iteração de meses faltantes ou a varredura de páginas novas.
// Conflitos de seletor falham antes de qualquer acesso à rede.
func (s *Service) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Trigger == "" {
		opts.Trigger = domain.TriggerCLI
	}

	if err := opts.Selector.Validate(); err != nil {
		return nil, err
	}

	if opts.CheckNew {
		return s.runCheckNew(ctx, opts)
	}

	timeRange, err := opts.Selector.Resolve(s.now())
	if err != nil {
		return nil, err
	}

	if timeRange != nil {
		run, err := s.runRange(ctx, *timeRange, opts)
		summary := &Summary{}
		if run != nil {
			summary.Runs = append(summary.Runs, run)
		}
		return summary, err
	}

	return s.runMissingMonths(ctx, opts)
}

// runMissingMonths processa todos os meses completos ainda sem relatório,
// do mês âncora até o mês passado, com pausa entre meses. Qualquer erro
// fatal interrompe a iteração, os meses já persistidos permanecem.
func (s *Service) runMissingMonths(ctx context.Context, opts Options) (*Summary, error) {
	anchor := s.cfg.Sync.StartMonth
	if opts.Selector.StartMonth != "" {
		anchor = opts.Selector.StartMonth
	}

	year, month, err := utils.ParseYearMonth(anchor)
	if err != nil {
		return nil, domain.NewConfigConflict(fmt.Sprintf("mês âncora inválido %q, use YYYY-MM", anchor))
	}

	existing, err := s.store.ListMonthlyReports()
	if err != nil {
		return nil, err
	}

	months := domain.MissingMonths(year, month, s.now(), existing)
	if len(months) == 0 {
		logrus.WithField("anchor", anchor).Info("sync: all months up to date, nothing to do")
		return &Summary{}, nil
	}

	logrus.WithFields(logrus.Fields{
		"anchor":   anchor,
		"existing": len(existing),
		"missing":  len(months),
	}).Info("sync: starting catch-up of missing months")

	summary := &Summary{}
	for i, timeRange := range months {
		if i > 0 {
			if err := sleepContext(ctx, s.cfg.Sync.MonthPause); err != nil {
				return summary, err
			}
		}

		run, err := s.runRange(ctx, timeRange, opts)
		if run != nil {
			summary.Runs = append(summary.Runs, run)
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// runCheckNew percorre os relatórios mensais existentes acrescentando as
// páginas que passaram a ser visíveis, sem rebuscar as já presentes
func (s *Service) runCheckNew(ctx context.Context, opts Options) (*Summary, error) {
	existing, err := s.store.ListMonthlyReports()
	if err != nil {
		return nil, err
	}

	if len(existing) == 0 {
		logrus.Info("sync: no existing reports, nothing to check")
		return &Summary{}, nil
	}

	identities := make([]string, 0, len(existing))
	for identity := range existing {
		identities = append(identities, string(identity))
	}
	sort.Strings(identities)

	logrus.WithField("reports", len(identities)).Info("sync: checking for new pages in existing reports")

	// A varredura nunca força refresh: páginas conhecidas são puladas
	opts.ForceRefresh = false

	summary := &Summary{}
	for i, identity := range identities {
		year, month, ok := domain.ReportIdentity(identity).MonthOf()
		if !ok {
			continue
		}

		if i > 0 {
			if err := sleepContext(ctx, s.cfg.Sync.MonthPause); err != nil {
				return summary, err
			}
		}

		run, err := s.runRange(ctx, domain.MonthRange(year, month), opts)
		if run != nil {
			summary.Runs = append(summary.Runs, run)
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// runRange executa a máquina de estados de um período e registra a execução
// no livro-razão. O erro devolvido é o erro fatal da execução, falhas por
// página não contam.
func (s *Service) runRange(ctx context.Context, timeRange domain.TimeRange, opts Options) (*domain.SyncRun, error) {
	identity := timeRange.Identity()
	since, until := timeRange.SinceUntil()

	logrus.WithFields(logrus.Fields{
		"identity": string(identity),
		"since":    since,
		"until":    until,
		"force":    opts.ForceRefresh,
		"trigger":  opts.Trigger,
	}).Info("sync: run started")

	run := &domain.SyncRun{
		ID:        utils.GenerateRunID(),
		Identity:  identity,
		Trigger:   opts.Trigger,
		Status:    domain.RunStatusRunning,
		StartedAt: s.now().UTC(),
	}
	s.ledgerCreate(run)

	callsBefore := s.integrator.APICalls()
	timer := prometheus.NewTimer(metrics.SyncRunDuration)

	err := s.execute(ctx, timeRange, opts, run)

	timer.ObserveDuration()
	run.APICalls = s.integrator.APICalls() - callsBefore

	if err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
		metrics.SyncRuns.WithLabelValues(run.Trigger, run.Status).Inc()
		s.ledgerFinish(run)

		logrus.WithError(err).WithFields(logrus.Fields{
			"run_id":   run.ID,
			"identity": string(identity),
		}).Error("sync: run failed")
		return run, err
	}

	run.Status = domain.RunStatusSucceeded
	metrics.SyncRuns.WithLabelValues(run.Trigger, run.Status).Inc()
	s.ledgerFinish(run)

	logrus.WithFields(logrus.Fields{
		"run_id":    run.ID,
		"identity":  string(identity),
		"total":     run.PagesTotal,
		"fetched":   run.PagesFetched,
		"skipped":   run.PagesSkipped,
		"failed":    run.PagesFailed,
		"api_calls": run.APICalls,
	}).Info("sync: run finished")

	return run, nil
}

// execute é a máquina de estados de um período: valida a credencial, lista
// o catálogo, calcula a lista de trabalho, busca em lotes, mescla e
// persiste. Falhas por página não interrompem a execução.
func (s *Service) execute(ctx context.Context, timeRange domain.TimeRange, opts Options, run *domain.SyncRun) error {
	if err := s.integrator.ValidateToken(ctx); err != nil {
		return err
	}
	s.warnTokenExpiry()

	pages, err := s.integrator.ListPages(ctx)
	if err != nil {
		return err
	}

	report, err := s.store.Load(timeRange.Identity())
	if err != nil {
		return err
	}

	pending := domain.ComputeWorkList(pages, report, opts.ForceRefresh)
	run.PagesTotal = len(pages)
	run.PagesSkipped = len(pages) - len(pending)

	logrus.WithFields(logrus.Fields{
		"identity": string(timeRange.Identity()),
		"pages":    len(pages),
		"pending":  len(pending),
		"skipped":  run.PagesSkipped,
	}).Info("sync: work list computed")

	for i := 0; i < run.PagesSkipped; i++ {
		metrics.PagesSynced.WithLabelValues(domain.StatusSkipped).Inc()
	}

	records, err := s.fetchBatches(ctx, pending, timeRange)
	if err != nil {
		return err
	}

	var failures []domain.PageFailure
	for _, record := range records {
		metrics.PagesSynced.WithLabelValues(record.Status).Inc()
		if isFailureStatus(record.Status) {
			run.PagesFailed++
			failures = append(failures, domain.PageFailure{
				RunID:    run.ID,
				PageID:   record.PageID,
				PageName: record.PageName,
				Status:   record.Status,
				Detail:   record.Comment,
			})
			continue
		}
		run.PagesFetched++
	}
	s.ledgerFailures(run.ID, failures)

	// Falhas de páginas que nunca entraram no relatório ficam só no
	// livro-razão: linhas zeradas não nascem, apenas sobrevivem
	merged := make([]*domain.MetricRecord, 0, len(records))
	for _, record := range records {
		if isFailureStatus(record.Status) && !report.Has(record.PageID) {
			continue
		}
		merged = append(merged, record)
	}
	report.Merge(merged, opts.ForceRefresh)

	if err := s.store.Persist(report); err != nil {
		return domain.NewPersistFailure(report.Identity, err)
	}

	if timeRange.Kind == domain.FullMonth {
		s.emitStatusAfterRun(timeRange)
	}

	return nil
}

// fetchBatches busca os registros das páginas pendentes em lotes com pausa
// entre eles. Dentro do lote as buscas correm em paralelo limitado; a
// mesclagem acontece depois, em um único escritor.
func (s *Service) fetchBatches(ctx context.Context, pending []domain.Page, timeRange domain.TimeRange) ([]*domain.MetricRecord, error) {
	if len(pending) == 0 {
		return nil, nil
	}

	batchSize := s.cfg.Sync.BatchSize
	if batchSize <= 0 {
		batchSize = len(pending)
	}

	maxConcurrent := s.cfg.Sync.Workers
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	all := make([]*domain.MetricRecord, 0, len(pending))

	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		if start > 0 {
			logrus.WithField("pause", s.cfg.Sync.BatchPause.String()).Debug("sync: pausing between batches")
			if err := sleepContext(ctx, s.cfg.Sync.BatchPause); err != nil {
				return all, err
			}
		}

		logrus.WithFields(logrus.Fields{
			"batch_start": start,
			"batch_size":  len(batch),
			"pending":     len(pending),
		}).Info("sync: fetching batch")

		semaphore := make(chan struct{}, maxConcurrent)
		var fetchWg sync.WaitGroup
		var mutex sync.Mutex
		results := make(map[string]*domain.MetricRecord, len(batch))

		for _, page := range batch {
			fetchWg.Add(1)

			go func(page domain.Page) {
				defer fetchWg.Done()

				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				if ctx.Err() != nil {
					return
				}

				record, err := s.integrator.FetchRecord(ctx, page, timeRange)
				if err != nil {
					// Só o cancelamento do contexto chega aqui
					return
				}

				mutex.Lock()
				results[page.ID] = record
				mutex.Unlock()
			}(page)
		}

		fetchWg.Wait()

		if err := ctx.Err(); err != nil {
			return all, err
		}

		// Restaura a ordem do catálogo para inserção determinística
		for _, page := range batch {
			if record, ok := results[page.ID]; ok {
				all = append(all, record)
			}
		}
	}

	return all, nil
}

// StatusReport monta o resumo de presença de um mês comparando com o mês
// anterior, sem nenhuma busca na API e sem gravar nada
func (s *Service) StatusReport(year int, month time.Month) ([]domain.StatusReportRow, error) {
	identity := domain.MonthIdentity(year, month)

	current, err := s.store.Load(identity)
	if err != nil {
		return nil, err
	}
	if current.Len() == 0 {
		return nil, domain.NewReportNotFound(identity)
	}

	prevStart := utils.FirstDayOfMonth(year, month).AddDate(0, -1, 0)
	previous, err := s.store.Load(domain.MonthIdentity(prevStart.Year(), prevStart.Month()))
	if err != nil {
		return nil, err
	}
	if previous.Len() == 0 {
		previous = nil
	}

	monthLabel := fmt.Sprintf("%04d-%02d", year, int(month))
	return domain.BuildStatusReport(previous, current, monthLabel), nil
}

// EmitStatus monta e grava o resumo de presença de um mês
func (s *Service) EmitStatus(year int, month time.Month) error {
	rows, err := s.StatusReport(year, month)
	if err != nil {
		return err
	}

	if err := s.store.WriteStatusReport(year, month, rows); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"month": fmt.Sprintf("%04d-%02d", year, int(month)),
		"rows":  len(rows),
	}).Info("sync: status report written")

	return nil
}

// emitStatusAfterRun grava o resumo do mês recém processado. Falha aqui não
// derruba a execução que já persistiu o relatório.
func (s *Service) emitStatusAfterRun(timeRange domain.TimeRange) {
	year, month, ok := timeRange.Identity().MonthOf()
	if !ok {
		return
	}
	if err := s.EmitStatus(year, month); err != nil {
		logrus.WithError(err).WithField("identity", string(timeRange.Identity())).
			Warn("sync: could not write status report")
	}
}

// warnTokenExpiry avisa o operador quando o token está perto de expirar.
// O sistema nunca renova o token sozinho.
func (s *Service) warnTokenExpiry() {
	credential := domain.Credential{
		Token:     s.cfg.Meta.AccessToken,
		IssuedAt:  s.cfg.Meta.TokenIssuedAt,
		ValidDays: s.cfg.Meta.TokenValidDays,
	}

	now := s.now()
	if credential.ExpiresSoon(now) {
		logrus.WithFields(logrus.Fields{
			"days_left":  credential.DaysLeft(now),
			"expires_at": credential.ExpiresAt().Format(time.DateOnly),
		}).Warn("sync: access token expires soon, generate a new one")
	}
}

func (s *Service) ledgerCreate(run *domain.SyncRun) {
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Create(run); err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Warn("sync: could not record run start")
	}
}

func (s *Service) ledgerFinish(run *domain.SyncRun) {
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Finish(run); err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Warn("sync: could not record run finish")
	}
}

func (s *Service) ledgerFailures(runID string, failures []domain.PageFailure) {
	if s.runRepo == nil || len(failures) == 0 {
		return
	}
	if err := s.runRepo.AddPageFailures(runID, failures); err != nil {
		logrus.WithError(err).WithField("run_id", runID).Warn("sync: could not record page failures")
	}
}

// isFailureStatus indica se o status de um registro conta como falha de página
func isFailureStatus(status string) bool {
	switch status {
	case domain.StatusNoAccess, domain.StatusAPIError, domain.StatusUnknown:
		return true
	}
	return false
}

// sleepContext dorme respeitando o cancelamento do contexto
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
