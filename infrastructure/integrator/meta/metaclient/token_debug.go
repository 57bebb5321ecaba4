package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
)

type ResponseDebugToken struct {
	Data metadomain.TokenDebugData `json:"data"`
}

// DebugToken valida o token de acesso configurado via /debug_token
func (c *MetaClient) DebugToken(ctx context.Context) (*metadomain.TokenDebugData, error) {
	baseURL := fmt.Sprintf("%s/debug_token", c.Cfg.Meta.URL)

	params := url.Values{}
	params.Add("input_token", c.Cfg.Meta.AccessToken)
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest(ctx, "debug_token", baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response ResponseDebugToken
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response.Data, nil
}
