package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

type ResponseInsights struct {
	Data []metadomain.InsightEntry `json:"data"`
}

// GetPageInsight busca o total agregado de uma métrica no período via
// /{page-id}/insights com period=total_over_range. Resposta sem dados vale
// zero, não é erro.
func (c *MetaClient) GetPageInsight(ctx context.Context, pageID, pageToken, metric string, since, until time.Time) (int64, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL, pageID)

	params := url.Values{}
	params.Add("metric", metric)
	params.Add("period", "total_over_range")
	params.Add("since", since.Format(time.DateOnly))
	params.Add("until", until.Format(time.DateOnly))
	params.Add("access_token", pageToken)

	body, err := c.doRequest(ctx, "insights", baseURL+"?"+params.Encode())
	if err != nil {
		return 0, err
	}

	var response ResponseInsights
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return 0, err
	}

	if len(response.Data) == 0 || len(response.Data[0].Values) == 0 {
		logrus.WithFields(logrus.Fields{
			"page_id": pageID,
			"metric":  metric,
		}).Debug("Métrica sem dados no período, assumindo zero")
		return 0, nil
	}

	// O valor pode vir como número, string ou mapa de reações por tipo,
	// que é somado
	return utils.SafeInt64(response.Data[0].Values[0].Value), nil
}
