package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/internal/api/handler/router"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	syncmocks "github.com/vfg2006/page-reach-sync/internal/usecases/syncing/mocks"
	"github.com/vfg2006/page-reach-sync/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newReportStoreForTest(t *testing.T) (reportstore.Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := reportstore.New(config.Sync{ReportsDir: dir})
	assert.NoError(t, err)

	return store, dir
}

func TestListReports_ListaArquivosDoDiretorio(t *testing.T) {
	store, dir := newReportStoreForTest(t)

	for _, name := range []string{"FB_2025_01.csv", "FB_STATUS_2025_01.csv"} {
		err := os.WriteFile(filepath.Join(dir, name), []byte("Page,Page ID\n"), 0o644)
		assert.NoError(t, err)
	}

	list := ListReports(store)

	rec := httptest.NewRecorder()
	list.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Reports []reportstore.ReportFileInfo `json:"reports"`
		Total   int                          `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, "FB_2025_01.csv", response.Reports[0].Name)
	assert.Equal(t, "2025_01", response.Reports[0].Identity)
	assert.Equal(t, "STATUS_2025_01", response.Reports[1].Identity)
}

func TestGetReportStatus_MontaResumoDoMes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		StatusReport(2025, time.February).
		Return([]domain.StatusReportRow{
			{PageID: "333", Page: "Loja C", Status: domain.PresenceNew, Month: "2025-02"},
		}, nil)

	store, _ := newReportStoreForTest(t)

	// O router real extrai o parâmetro :identity da rota
	rt := router.New(router.WithRoutes(Reports(store, mockSyncer)...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/2025_02/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Identity string                   `json:"identity"`
		Rows     []domain.StatusReportRow `json:"rows"`
		Total    int                      `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "2025_02", response.Identity)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, domain.PresenceNew, response.Rows[0].Status)
	assert.Equal(t, "333", response.Rows[0].PageID)
}

func TestGetReportStatus_RelatorioAusente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		StatusReport(2025, time.March).
		Return(nil, domain.NewReportNotFound(domain.MonthIdentity(2025, time.March)))

	store, _ := newReportStoreForTest(t)

	rt := router.New(router.WithRoutes(Reports(store, mockSyncer)...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/2025_03/status", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrReportNotFound, decodeAPIError(t, rec.Body.Bytes()))
}

func TestGetReportStatus_IdentidadeInvalida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nada deve ser consultado
	mockSyncer := syncmocks.NewMockSyncer(ctrl)

	store, _ := newReportStoreForTest(t)

	rt := router.New(router.WithRoutes(Reports(store, mockSyncer)...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/banana/status", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidPeriod, decodeAPIError(t, rec.Body.Bytes()))
}
