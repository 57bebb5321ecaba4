package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/page-reach-sync/infrastructure/database/postgres"
	"github.com/vfg2006/page-reach-sync/internal/domain"
)

const (
	syncRunsTable     = "sync_runs"
	syncRunPagesTable = "sync_run_pages"
)

// SyncRunRepository é o livro-razão das execuções de sincronização.
// Falhas de página que nunca entraram em um relatório só existem aqui.
type SyncRunRepository interface {
	Create(run *domain.SyncRun) error
	Finish(run *domain.SyncRun) error
	AddPageFailures(runID string, failures []domain.PageFailure) error
	List(limit uint64) ([]*domain.SyncRun, error)
	ListPageFailures(runID string) ([]domain.PageFailure, error)
}

type syncRunRepository struct {
	conn postgres.Queryer
}

func NewSyncRunRepository(conn postgres.Queryer) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) Create(run *domain.SyncRun) error {
	query, args, err := squirrel.
		Insert(syncRunsTable).
		Columns("id", "period", "triggered_by", "status", "started_at").
		Values(run.ID, string(run.Identity), run.Trigger, run.Status, run.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncRunRepository) Finish(run *domain.SyncRun) error {
	finishedAt := time.Now().UTC()
	run.FinishedAt = &finishedAt

	query, args, err := squirrel.
		Update(syncRunsTable).
		Set("status", run.Status).
		Set("finished_at", finishedAt).
		Set("pages_total", run.PagesTotal).
		Set("pages_fetched", run.PagesFetched).
		Set("pages_skipped", run.PagesSkipped).
		Set("pages_failed", run.PagesFailed).
		Set("api_calls", run.APICalls).
		Set("error", run.Error).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncRunRepository) AddPageFailures(runID string, failures []domain.PageFailure) error {
	if len(failures) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(syncRunPagesTable).
		Columns("run_id", "page_id", "page_name", "status", "detail")
	for _, failure := range failures {
		builder = builder.Values(runID, failure.PageID, failure.PageName, failure.Status, failure.Detail)
	}

	query, args, err := builder.
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncRunRepository) List(limit uint64) ([]*domain.SyncRun, error) {
	if limit == 0 {
		limit = 20
	}

	query, args, err := squirrel.
		Select("id, period, triggered_by, status, started_at, finished_at, pages_total, pages_fetched, pages_skipped, pages_failed, api_calls, error").
		From(syncRunsTable).
		OrderBy("started_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	var runs []*domain.SyncRun
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execução: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func (r *syncRunRepository) ListPageFailures(runID string) ([]domain.PageFailure, error) {
	query, args, err := squirrel.
		Select("run_id, page_id, page_name, status, detail").
		From(syncRunPagesTable).
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("page_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	var failures []domain.PageFailure
	for rows.Next() {
		var failure domain.PageFailure
		if err := rows.Scan(&failure.RunID, &failure.PageID, &failure.PageName, &failure.Status, &failure.Detail); err != nil {
			return nil, fmt.Errorf("erro ao escanear falha de página: %w", err)
		}
		failures = append(failures, failure)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return failures, nil
}

func (r *syncRunRepository) scanRun(rows *sql.Rows) (*domain.SyncRun, error) {
	var (
		run        domain.SyncRun
		period     string
		finishedAt sql.NullTime
		runError   sql.NullString
	)

	err := rows.Scan(
		&run.ID,
		&period,
		&run.Trigger,
		&run.Status,
		&run.StartedAt,
		&finishedAt,
		&run.PagesTotal,
		&run.PagesFetched,
		&run.PagesSkipped,
		&run.PagesFailed,
		&run.APICalls,
		&runError,
	)
	if err != nil {
		return nil, err
	}

	run.Identity = domain.ReportIdentity(period)
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	if runError.Valid {
		run.Error = runError.String
	}

	return &run, nil
}
