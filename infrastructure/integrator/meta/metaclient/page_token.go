package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
)

type ResponsePageToken struct {
	ID          string `json:"id"`
	AccessToken string `json:"access_token"`
}

// GetPageAccessToken converte o token de usuário em um Page Access Token,
// exigido pelo endpoint de insights
func (c *MetaClient) GetPageAccessToken(ctx context.Context, pageID string) (string, error) {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, pageID)

	params := url.Values{}
	params.Add("fields", "access_token")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest(ctx, "page_token", baseURL+"?"+params.Encode())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"page_id": pageID,
			"error":   err.Error(),
		}).Warn("Não foi possível obter o Page Access Token")
		return "", err
	}

	var response ResponsePageToken
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return "", err
	}

	if response.AccessToken == "" {
		return "", &metadomain.FetchError{
			Class:   metadomain.ErrClassPermanent,
			Message: fmt.Sprintf("página %s não devolveu access_token", pageID),
		}
	}

	return response.AccessToken, nil
}
