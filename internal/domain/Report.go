package domain

// ReportRow é uma linha do relatório como mapa coluna→valor.
// O formato preserva colunas desconhecidas de arquivos gravados por
// versões mais novas da ferramenta.
type ReportRow map[string]string

// Clone copia a linha
func (r ReportRow) Clone() ReportRow {
	out := make(ReportRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Report é a tabela persistida de um período: uma linha por página, com a
// ordem de inserção preservada entre execuções.
type Report struct {
	Identity ReportIdentity

	columns []string
	rows    []ReportRow
	index   map[string]int // Page ID → posição em rows
}

// NewReport cria um relatório vazio para a identidade informada
func NewReport(identity ReportIdentity) *Report {
	return &Report{
		Identity: identity,
		index:    make(map[string]int),
	}
}

// NewReportFromRows reconstrói um relatório lido do disco.
// Linhas duplicadas pelo mesmo Page ID mantêm a última ocorrência.
func NewReportFromRows(identity ReportIdentity, columns []string, rows []ReportRow) *Report {
	report := &Report{
		Identity: identity,
		columns:  append([]string(nil), columns...),
		index:    make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		pageID := row[ColPageID]
		if pageID == "" {
			continue
		}
		if pos, ok := report.index[pageID]; ok {
			report.rows[pos] = row
			continue
		}
		report.index[pageID] = len(report.rows)
		report.rows = append(report.rows, row)
	}
	return report
}

// Columns devolve as colunas na ordem de escrita
func (r *Report) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Rows devolve as linhas na ordem de inserção
func (r *Report) Rows() []ReportRow {
	return append([]ReportRow(nil), r.rows...)
}

// Len devolve a quantidade de linhas
func (r *Report) Len() int {
	return len(r.rows)
}

// Has indica se a página já possui linha no relatório
func (r *Report) Has(pageID string) bool {
	_, ok := r.index[pageID]
	return ok
}

// Row devolve a linha de uma página
func (r *Report) Row(pageID string) (ReportRow, bool) {
	pos, ok := r.index[pageID]
	if !ok {
		return nil, false
	}
	return r.rows[pos], true
}

// PageIDs devolve os IDs das páginas na ordem das linhas
func (r *Report) PageIDs() []string {
	ids := make([]string, 0, len(r.rows))
	for _, row := range r.rows {
		ids = append(ids, row[ColPageID])
	}
	return ids
}

// CellValue devolve o valor de uma célula aplicando o preenchimento padrão:
// colunas de métrica ausentes valem "0", as demais valem vazio.
func (r *Report) CellValue(row ReportRow, column string) string {
	if value, ok := row[column]; ok {
		return value
	}
	if isMetricColumn(column) {
		return "0"
	}
	return ""
}

// ensureColumns garante que todas as colunas canônicas existam, preservando
// a ordem das colunas já gravadas e acrescentando as novas ao final na
// ordem canônica. Colunas desconhecidas permanecem onde estavam.
func (r *Report) ensureColumns() {
	present := make(map[string]bool, len(r.columns))
	for _, col := range r.columns {
		present[col] = true
	}
	for _, col := range ReportColumns {
		if !present[col] {
			r.columns = append(r.columns, col)
			present[col] = true
		}
	}
}

// Merge aplica registros recém-buscados ao relatório.
//
// Sem forceRefresh, páginas já presentes são retidas sem alteração, o que
// torna a mesclagem idempotente. Com forceRefresh, o registro novo
// substitui a linha existente na mesma posição, marcado como UPDATED
// quando a busca foi bem-sucedida. O conjunto de colunas resultante é a
// união das colunas já gravadas com as canônicas; linhas antigas ganham
// zero nas colunas de métrica introduzidas depois que foram escritas, no
// momento da persistência.
func (r *Report) Merge(records []*MetricRecord, forceRefresh bool) {
	r.ensureColumns()

	for _, record := range records {
		if record == nil || record.PageID == "" {
			continue
		}

		pos, exists := r.index[record.PageID]
		if exists && !forceRefresh {
			continue
		}

		row := record.ToRow()
		if exists {
			if record.Status == StatusOK {
				row[ColStatus] = StatusUpdated
			}
			r.rows[pos] = row
			continue
		}

		r.index[record.PageID] = len(r.rows)
		r.rows = append(r.rows, row)
	}
}

// ComputeWorkList decide quais páginas do catálogo precisam de busca:
// todas quando forceRefresh, senão apenas as ausentes do relatório. É este
// cálculo que limita o consumo de API em reexecuções.
func ComputeWorkList(catalog []Page, report *Report, forceRefresh bool) []Page {
	if forceRefresh {
		return append([]Page(nil), catalog...)
	}

	var pending []Page
	for _, page := range catalog {
		if report == nil || !report.Has(page.ID) {
			pending = append(pending, page)
		}
	}
	return pending
}
