package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
)

type ResponseAccounts struct {
	Data   []metadomain.PageAccount `json:"data"`
	Paging metadomain.Paging        `json:"paging"`
}

// ListAccounts lista todas as páginas acessíveis pelo token via
// /me/accounts, seguindo a paginação até o fim
func (c *MetaClient) ListAccounts(ctx context.Context) ([]metadomain.PageAccount, error) {
	baseURL := fmt.Sprintf("%s/me/accounts", c.Cfg.Meta.URL)

	params := url.Values{}
	params.Add("fields", "id,name,tasks")
	params.Add("limit", "100")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	next := baseURL + "?" + params.Encode()
	accounts := make([]metadomain.PageAccount, 0)

	for next != "" {
		body, err := c.doRequest(ctx, "accounts", next)
		if err != nil {
			return nil, err
		}

		var response ResponseAccounts
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		accounts = append(accounts, response.Data...)
		logrus.WithField("count", len(response.Data)).Debug("Páginas encontradas neste lote da listagem")

		// A API devolve a URL completa da próxima página no cursor
		if response.Paging.Next == next {
			break
		}
		next = response.Paging.Next
	}

	if len(accounts) == 0 {
		logrus.Warn("Nenhuma página encontrada. O token pode não ter a permissão pages_show_list")
	}

	return accounts, nil
}
