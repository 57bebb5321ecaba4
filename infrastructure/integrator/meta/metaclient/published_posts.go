package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
)

type ResponsePublishedPosts struct {
	Summary metadomain.PublishedPostsSummary `json:"summary"`
}

// CountPublishedPosts conta as publicações da página no período via
// /{page-id}/published_posts com summary=total_count
func (c *MetaClient) CountPublishedPosts(ctx context.Context, pageID, pageToken string, since, until time.Time) (int64, error) {
	baseURL := fmt.Sprintf("%s/%s/published_posts", c.Cfg.Meta.URL, pageID)

	// O endpoint espera timestamps Unix; o fim do período inclui o dia todo
	sinceUnix := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC).Unix()
	untilUnix := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, time.UTC).Unix()

	params := url.Values{}
	params.Add("summary", "total_count")
	params.Add("since", strconv.FormatInt(sinceUnix, 10))
	params.Add("until", strconv.FormatInt(untilUnix, 10))
	params.Add("limit", "1")
	params.Add("access_token", pageToken)

	body, err := c.doRequest(ctx, "published_posts", baseURL+"?"+params.Encode())
	if err != nil {
		return 0, err
	}

	var response ResponsePublishedPosts
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return 0, err
	}

	return response.Summary.TotalCount, nil
}
