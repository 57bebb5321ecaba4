package domain

import "strconv"

// Nomes das colunas dos relatórios. Novas colunas de métrica são sempre
// acrescentadas ao final da lista de métricas, nunca reordenadas.
const (
	ColPage         = "Page"
	ColPageID       = "Page ID"
	ColReach        = "Reach"
	ColEngagedUsers = "Engaged Users"
	ColEngagements  = "Engagements"
	ColReactions    = "Reactions"
	ColClicks       = "Clicks"
	ColPublications = "Publications"
	ColStatus       = "Status"
	ColComment      = "Comment"
)

// MetricColumns lista as colunas de métrica na ordem canônica
var MetricColumns = []string{
	ColReach,
	ColEngagedUsers,
	ColEngagements,
	ColReactions,
	ColClicks,
	ColPublications,
}

// ReportColumns lista todas as colunas de um relatório novo, na ordem de escrita
var ReportColumns = []string{
	ColPage,
	ColPageID,
	ColReach,
	ColEngagedUsers,
	ColEngagements,
	ColReactions,
	ColClicks,
	ColPublications,
	ColStatus,
	ColComment,
}

// Status de uma linha do relatório
const (
	StatusOK       = "OK"        // métricas obtidas com sucesso
	StatusUpdated  = "UPDATED"   // linha existente substituída por uma nova busca
	StatusSkipped  = "SKIPPED"   // página já presente, busca evitada
	StatusNoAccess = "NO_ACCESS" // sem permissão de insights para a página
	StatusAPIError = "API_ERROR" // falha definitiva na API após as tentativas
	StatusNoData   = "NO_DATA"   // API sem dados para o período
	StatusUnknown  = "UNKNOWN"   // estado não determinado
)

// MetricRecord é o resultado da busca de métricas de uma página em um período
type MetricRecord struct {
	PageID       string
	PageName     string
	Reach        int64
	EngagedUsers int64
	Engagements  int64
	Reactions    int64
	Clicks       int64
	Publications int64
	Status       string
	Comment      string
}

// NewZeroRecord cria um registro zerado para páginas sem dados acessíveis
func NewZeroRecord(page Page, status, comment string) *MetricRecord {
	return &MetricRecord{
		PageID:   page.ID,
		PageName: page.DisplayName(),
		Status:   status,
		Comment:  comment,
	}
}

// ToRow converte o registro para a representação de linha do relatório.
// Linhas são mapas coluna→valor para que colunas desconhecidas de arquivos
// antigos sobrevivam a reescritas.
func (r *MetricRecord) ToRow() ReportRow {
	return ReportRow{
		ColPage:         r.PageName,
		ColPageID:       r.PageID,
		ColReach:        strconv.FormatInt(r.Reach, 10),
		ColEngagedUsers: strconv.FormatInt(r.EngagedUsers, 10),
		ColEngagements:  strconv.FormatInt(r.Engagements, 10),
		ColReactions:    strconv.FormatInt(r.Reactions, 10),
		ColClicks:       strconv.FormatInt(r.Clicks, 10),
		ColPublications: strconv.FormatInt(r.Publications, 10),
		ColStatus:       r.Status,
		ColComment:      r.Comment,
	}
}

// isMetricColumn indica se a coluna carrega valor numérico de métrica
func isMetricColumn(name string) bool {
	for _, col := range MetricColumns {
		if col == name {
			return true
		}
	}
	return false
}
