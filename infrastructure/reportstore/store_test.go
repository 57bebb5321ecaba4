package reportstore

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := New(config.Sync{ReportsDir: dir})
	assert.NoError(t, err)

	return store, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	assert.NoError(t, err)

	return records
}

func TestLoad_ArquivoAusenteDevolveRelatorioVazio(t *testing.T) {
	store, _ := newTestStore(t)

	report, err := store.Load(domain.MonthIdentity(2025, time.March))

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Len())
	assert.Equal(t, domain.ReportIdentity("2025_03"), report.Identity)
}

func TestPersistELoad_RoundTrip(t *testing.T) {
	store, dir := newTestStore(t)

	report := domain.NewReport(domain.MonthIdentity(2025, time.January))
	report.Merge([]*domain.MetricRecord{
		{
			PageID:       "111",
			PageName:     "Loja A",
			Reach:        1000,
			EngagedUsers: 50,
			Engagements:  80,
			Reactions:    30,
			Clicks:       12,
			Publications: 7,
			Status:       domain.StatusOK,
		},
		{
			PageID:   "222",
			PageName: "Loja B",
			Status:   domain.StatusNoAccess,
			Comment:  "token sem a tarefa ANALYZE na página",
		},
	}, false)

	err := store.Persist(report)
	assert.NoError(t, err)

	// O arquivo final existe e o temporário não sobrou
	_, err = os.Stat(filepath.Join(dir, "FB_2025_01.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "FB_2025_01.csv.tmp"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load(report.Identity)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReportColumns, loaded.Columns())
	assert.Equal(t, 2, loaded.Len())

	row, ok := loaded.Row("111")
	assert.True(t, ok)
	assert.Equal(t, "Loja A", row[domain.ColPage])
	assert.Equal(t, "1000", row[domain.ColReach])
	assert.Equal(t, "7", row[domain.ColPublications])
	assert.Equal(t, domain.StatusOK, row[domain.ColStatus])

	row, ok = loaded.Row("222")
	assert.True(t, ok)
	assert.Equal(t, "0", row[domain.ColReach])
	assert.Equal(t, domain.StatusNoAccess, row[domain.ColStatus])
	assert.Equal(t, "token sem a tarefa ANALYZE na página", row[domain.ColComment])
}

func TestPersist_PreencheColunasNovasEmLinhasAntigas(t *testing.T) {
	store, dir := newTestStore(t)

	// Arquivo gravado por uma versão antiga, sem Publications, Status e Comment
	oldContent := "Page,Page ID,Reach,Engaged Users,Engagements,Reactions,Clicks\n" +
		"Loja A,111,100,5,10,3,7\n"
	err := os.WriteFile(filepath.Join(dir, "FB_2024_12.csv"), []byte(oldContent), 0o644)
	assert.NoError(t, err)

	report, err := store.Load(domain.MonthIdentity(2024, time.December))
	assert.NoError(t, err)

	report.Merge([]*domain.MetricRecord{
		{PageID: "222", PageName: "Loja B", Reach: 200, Status: domain.StatusOK},
	}, false)

	err = store.Persist(report)
	assert.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "FB_2024_12.csv"))
	assert.Equal(t, []string{
		"Page", "Page ID", "Reach", "Engaged Users", "Engagements", "Reactions", "Clicks",
		"Publications", "Status", "Comment",
	}, records[0])

	// A linha antiga ganha zero nas métricas novas e vazio nas demais
	assert.Equal(t, []string{"Loja A", "111", "100", "5", "10", "3", "7", "0", "", ""}, records[1])
	assert.Equal(t, []string{"Loja B", "222", "200", "0", "0", "0", "0", "0", "OK", ""}, records[2])
}

func TestPersist_ColunaDesconhecidaSobrevive(t *testing.T) {
	store, dir := newTestStore(t)

	content := "Page,Page ID,Reach,Engaged Users,Engagements,Reactions,Clicks,Publications,Status,Comment,Video Views\n" +
		"Loja A,111,100,5,10,3,7,2,OK,,42\n"
	err := os.WriteFile(filepath.Join(dir, "FB_2025_02.csv"), []byte(content), 0o644)
	assert.NoError(t, err)

	report, err := store.Load(domain.MonthIdentity(2025, time.February))
	assert.NoError(t, err)

	report.Merge([]*domain.MetricRecord{
		{PageID: "222", PageName: "Loja B", Status: domain.StatusOK},
	}, false)

	err = store.Persist(report)
	assert.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "FB_2025_02.csv"))
	assert.Equal(t, "Video Views", records[0][10])
	assert.Equal(t, "42", records[1][10])
	assert.Equal(t, "", records[2][10])
}

func TestListMonthlyReports(t *testing.T) {
	store, dir := newTestStore(t)

	for _, name := range []string{
		"FB_2025_01.csv",
		"FB_2025_02.csv",
		"FB_STATUS_2025_01.csv",
		"FB_2025_03_01-15.csv",
		"notas.txt",
	} {
		err := os.WriteFile(filepath.Join(dir, name), []byte("Page,Page ID\n"), 0o644)
		assert.NoError(t, err)
	}

	existing, err := store.ListMonthlyReports()

	assert.NoError(t, err)
	assert.Equal(t, map[domain.ReportIdentity]bool{
		"2025_01": true,
		"2025_02": true,
	}, existing)
}

func TestListReportFiles(t *testing.T) {
	store, dir := newTestStore(t)

	for _, name := range []string{
		"FB_2025_02.csv",
		"FB_2025_01.csv",
		"FB_STATUS_2025_01.csv",
		"FB_2025_01.csv.tmp",
		"notas.txt",
	} {
		err := os.WriteFile(filepath.Join(dir, name), []byte("Page,Page ID\n"), 0o644)
		assert.NoError(t, err)
	}

	files, err := store.ListReportFiles()

	assert.NoError(t, err)
	assert.Len(t, files, 3)

	// Ordenados por nome, sem temporários nem arquivos estranhos
	assert.Equal(t, "FB_2025_01.csv", files[0].Name)
	assert.Equal(t, "2025_01", files[0].Identity)
	assert.Equal(t, "FB_2025_02.csv", files[1].Name)
	assert.Equal(t, "FB_STATUS_2025_01.csv", files[2].Name)
	assert.Equal(t, "STATUS_2025_01", files[2].Identity)
	assert.Equal(t, int64(len("Page,Page ID\n")), files[0].SizeBytes)
	assert.False(t, files[0].ModifiedAt.IsZero())
}

func TestWriteStatusReport(t *testing.T) {
	store, dir := newTestStore(t)

	rows := []domain.StatusReportRow{
		{PageID: "333", Page: "Loja C", Status: domain.PresenceNew, Month: "2025-02", Comment: "não presente no mês anterior"},
		{PageID: "111", Page: "Loja A", Status: domain.StatusNoAccess, Month: "2025-02", Comment: "sem permissão"},
	}

	err := store.WriteStatusReport(2025, time.February, rows)
	assert.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "FB_STATUS_2025_02.csv"))
	assert.Equal(t, []string{"Page ID", "Page", "Status", "Month", "Comment"}, records[0])
	assert.Equal(t, []string{"333", "Loja C", "NEW", "2025-02", "não presente no mês anterior"}, records[1])
	assert.Equal(t, []string{"111", "Loja A", "NO_ACCESS", "2025-02", "sem permissão"}, records[2])
}
