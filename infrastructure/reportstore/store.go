package reportstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
)

// Apenas relatórios de mês completo participam da varredura de meses já
// processados. Relatórios parciais e de intervalo livre ficam de fora.
var monthlyReportPattern = regexp.MustCompile(`^FB_(\d{4})_(\d{2})\.csv$`)

// Store grava e lê relatórios CSV no diretório configurado
type Store interface {
	Load(identity domain.ReportIdentity) (*domain.Report, error)
	Persist(report *domain.Report) error
	ListMonthlyReports() (map[domain.ReportIdentity]bool, error)
	ListReportFiles() ([]ReportFileInfo, error)
	WriteStatusReport(year int, month time.Month, rows []domain.StatusReportRow) error
}

// ReportFileInfo descreve um arquivo de relatório presente no diretório
type ReportFileInfo struct {
	Name       string    `json:"name"`
	Identity   string    `json:"identity"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

type fileStore struct {
	dir string
}

func New(cfg config.Sync) (Store, error) {
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar o diretório de relatórios %s: %w", cfg.ReportsDir, err)
	}

	return &fileStore{
		dir: cfg.ReportsDir,
	}, nil
}

// Load lê o relatório do período. Arquivo ausente devolve um relatório
// vazio, não um erro.
func (s *fileStore) Load(identity domain.ReportIdentity) (*domain.Report, error) {
	path := filepath.Join(s.dir, identity.FileName())

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewReport(identity), nil
		}
		return nil, fmt.Errorf("erro ao abrir o relatório %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o relatório %s: %w", path, err)
	}

	if len(records) == 0 {
		return domain.NewReport(identity), nil
	}

	columns := records[0]
	rows := make([]domain.ReportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(domain.ReportRow, len(columns))
		for i, column := range columns {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return domain.NewReportFromRows(identity, columns, rows), nil
}

// Persist grava o relatório de forma atômica: escreve em um arquivo
// temporário no mesmo diretório, faz fsync e renomeia por cima do final.
// Uma interrupção no meio da escrita nunca corrompe o arquivo anterior.
func (s *fileStore) Persist(report *domain.Report) error {
	columns := report.Columns()
	if len(columns) == 0 {
		columns = append([]string(nil), domain.ReportColumns...)
	}

	records := make([][]string, 0, report.Len())
	for _, row := range report.Rows() {
		record := make([]string, len(columns))
		for i, column := range columns {
			record[i] = report.CellValue(row, column)
		}
		records = append(records, record)
	}

	path := filepath.Join(s.dir, report.Identity.FileName())
	if err := s.writeFile(path, columns, records); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file": path,
		"rows": report.Len(),
	}).Debug("reports: report persisted")

	return nil
}

// ListMonthlyReports devolve o conjunto de meses que já possuem relatório
func (s *fileStore) ListMonthlyReports() (map[domain.ReportIdentity]bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[domain.ReportIdentity]bool{}, nil
		}
		return nil, fmt.Errorf("erro ao listar o diretório de relatórios %s: %w", s.dir, err)
	}

	existing := make(map[domain.ReportIdentity]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := monthlyReportPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		existing[domain.ReportIdentity(match[1]+"_"+match[2])] = true
	}

	return existing, nil
}

// ListReportFiles lista os arquivos de relatório do diretório, ordenados
// por nome. A identidade é o miolo do nome, sem o prefixo FB_.
func (s *fileStore) ListReportFiles() ([]ReportFileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao listar o diretório de relatórios %s: %w", s.dir, err)
	}

	files := make([]ReportFileInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "FB_") || !strings.HasSuffix(name, ".csv") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logrus.WithError(err).WithField("file", name).Warn("reports: could not stat report file")
			continue
		}

		files = append(files, ReportFileInfo{
			Name:       name,
			Identity:   strings.TrimSuffix(strings.TrimPrefix(name, "FB_"), ".csv"),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

// WriteStatusReport grava o resumo de presença de um mês
func (s *fileStore) WriteStatusReport(year int, month time.Month, rows []domain.StatusReportRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.PageID, row.Page, row.Status, row.Month, row.Comment})
	}

	path := filepath.Join(s.dir, domain.StatusFileName(year, month))
	if err := s.writeFile(path, domain.StatusReportColumns, records); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file": path,
		"rows": len(rows),
	}).Debug("reports: status report persisted")

	return nil
}

func (s *fileStore) writeFile(path string, header []string, records [][]string) error {
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("erro ao criar o arquivo temporário %s: %w", tmpPath, err)
	}
	defer os.Remove(tmpPath)

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("erro ao escrever o cabeçalho de %s: %w", path, err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			file.Close()
			return fmt.Errorf("erro ao escrever linha de %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("erro ao descarregar %s: %w", path, err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("erro ao sincronizar %s: %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("erro ao fechar %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("erro ao renomear %s para %s: %w", tmpPath, path, err)
	}

	return nil
}
