package domain

import "time"

// Gatilhos de uma execução de sincronização
const (
	TriggerCLI    = "cli"
	TriggerCron   = "cron"
	TriggerManual = "manual"
)

// Estados de uma execução de sincronização
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// SyncRun é o registro de uma execução no livro-razão de sincronizações
type SyncRun struct {
	ID           string         `json:"id"`
	Identity     ReportIdentity `json:"identity"`
	Trigger      string         `json:"trigger"`
	Status       string         `json:"status"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	PagesTotal   int            `json:"pages_total"`
	PagesFetched int            `json:"pages_fetched"`
	PagesSkipped int            `json:"pages_skipped"`
	PagesFailed  int            `json:"pages_failed"`
	APICalls     int64          `json:"api_calls"`
	Error        string         `json:"error,omitempty"`
}

// PageFailure é uma falha de página registrada junto da execução
type PageFailure struct {
	RunID    string `json:"run_id"`
	PageID   string `json:"page_id"`
	PageName string `json:"page_name"`
	Status   string `json:"status"` // vocabulário de status de linha: API_ERROR, NO_ACCESS...
	Detail   string `json:"detail,omitempty"`
}
