package domain

// Status de presença de páginas entre meses consecutivos
const (
	PresenceNew     = "NEW"     // página presente apenas no mês atual
	PresenceMissing = "MISSING" // página presente apenas no mês anterior
)

// Colunas do relatório de status
var StatusReportColumns = []string{ColPageID, ColPage, ColStatus, "Month", ColComment}

// StatusReportRow é uma linha do relatório de status mensal
type StatusReportRow struct {
	PageID  string `json:"page_id"`
	Page    string `json:"page"`
	Status  string `json:"status"`
	Month   string `json:"month"`
	Comment string `json:"comment,omitempty"`
}

// BuildStatusReport compara dois relatórios mensais consecutivos e produz o
// resumo de presença: páginas novas, páginas que sumiram e as linhas do mês
// atual cujo status indica algum problema.
func BuildStatusReport(previous, current *Report, monthLabel string) []StatusReportRow {
	var rows []StatusReportRow

	prevIDs := make(map[string]bool)
	if previous != nil {
		for _, id := range previous.PageIDs() {
			prevIDs[id] = true
		}
	}

	// Páginas novas, na ordem do relatório atual
	if current != nil {
		for _, row := range current.Rows() {
			pageID := row[ColPageID]
			if pageID == "" || prevIDs[pageID] {
				continue
			}
			rows = append(rows, StatusReportRow{
				PageID:  pageID,
				Page:    row[ColPage],
				Status:  PresenceNew,
				Month:   monthLabel,
				Comment: "não presente no mês anterior",
			})
		}
	}

	// Páginas que sumiram, na ordem do relatório anterior
	if previous != nil {
		for _, row := range previous.Rows() {
			pageID := row[ColPageID]
			if pageID == "" {
				continue
			}
			if current != nil && current.Has(pageID) {
				continue
			}
			rows = append(rows, StatusReportRow{
				PageID:  pageID,
				Page:    row[ColPage],
				Status:  PresenceMissing,
				Month:   monthLabel,
				Comment: "presente no mês anterior",
			})
		}
	}

	// Linhas do mês atual com status fora do normal, incluindo as
	// atualizadas por refresh forçado
	if current != nil {
		for _, row := range current.Rows() {
			status := row[ColStatus]
			if status == "" || status == StatusOK || status == StatusSkipped {
				continue
			}
			rows = append(rows, StatusReportRow{
				PageID:  row[ColPageID],
				Page:    row[ColPage],
				Status:  status,
				Month:   monthLabel,
				Comment: row[ColComment],
			})
		}
	}

	return rows
}
