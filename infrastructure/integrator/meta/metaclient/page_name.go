package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
)

type ResponsePageName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetPageName busca o nome de exibição de uma página
func (c *MetaClient) GetPageName(ctx context.Context, pageID string) (string, error) {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, pageID)

	params := url.Values{}
	params.Add("fields", "name")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest(ctx, "page_name", baseURL+"?"+params.Encode())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"page_id": pageID,
			"error":   err.Error(),
		}).Warn("Não foi possível obter o nome da página")
		return "", err
	}

	var response ResponsePageName
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return "", err
	}

	if response.Name == "" {
		return fmt.Sprintf("Page %s", pageID), nil
	}

	return response.Name, nil
}
