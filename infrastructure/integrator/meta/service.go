package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
)

// Limita o tamanho do comentário de erro gravado no relatório
const maxAPIErrorsInComment = 3

type Integrator interface {
	ValidateToken(ctx context.Context) error
	ListPages(ctx context.Context) ([]domain.Page, error)
	FetchRecord(ctx context.Context, page domain.Page, timeRange domain.TimeRange) (*domain.MetricRecord, error)
	APICalls() int64
}

type MetaIntegrator struct {
	cfg                *config.Config
	Client             metaclient.Client
	pageNameRepository repository.PageNameRepository
}

// pageNameRepo pode ser nil quando o banco não está disponível: o cache de
// nomes é dispensável e a listagem segue só com a API.
func New(cfg *config.Config, client metaclient.Client, pageNameRepo repository.PageNameRepository) Integrator {
	return &MetaIntegrator{
		cfg:                cfg,
		Client:             client,
		pageNameRepository: pageNameRepo,
	}
}

// ValidateToken confirma com a própria API que o token configurado é válido
func (s *MetaIntegrator) ValidateToken(ctx context.Context) error {
	if s.cfg.Meta.AccessToken == "" {
		return domain.NewCredentialInvalid("token de acesso não configurado")
	}

	data, err := s.Client.DebugToken(ctx)
	if err != nil {
		if metadomain.IsAuthError(err) {
			return domain.NewCredentialInvalid(err.Error())
		}
		return err
	}

	if !data.IsValid {
		reason := "motivo desconhecido"
		if data.Error != nil && data.Error.Message != "" {
			reason = data.Error.Message
		}
		logrus.WithField("reason", reason).Error("pages: token rejected by debug_token")
		return domain.NewCredentialInvalid(reason)
	}

	logrus.WithField("app_id", data.AppID).Info("pages: token validated successfully")

	return nil
}

// ListPages monta o catálogo de páginas acessíveis pelo token, resolvendo
// nomes pelo cache quando a listagem não os traz e descartando páginas
// placeholder
func (s *MetaIntegrator) ListPages(ctx context.Context) ([]domain.Page, error) {
	accounts, err := s.Client.ListAccounts(ctx)
	if err != nil {
		if metadomain.IsAuthError(err) {
			return nil, domain.NewCredentialInvalid(err.Error())
		}
		logrus.WithError(err).Error("pages: failed to list accessible pages")
		return nil, err
	}

	cachedNames := s.loadNameCache()

	pages := make([]domain.Page, 0, len(accounts))
	for _, account := range accounts {
		name := account.Name
		if name == "" {
			name = cachedNames[account.ID]
		}
		if name == "" {
			fetched, err := s.Client.GetPageName(ctx, account.ID)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"page_id": account.ID,
					"error":   err.Error(),
				}).Warn("pages: could not resolve page name")
			} else {
				name = fetched
			}
		}

		if s.pageNameRepository != nil && name != "" && name != cachedNames[account.ID] {
			if err := s.pageNameRepository.Upsert(account.ID, name); err != nil {
				logrus.WithError(err).Warn("pages: failed to update name cache")
			}
		}

		pages = append(pages, domain.Page{
			ID:              account.ID,
			Name:            name,
			CanReadInsights: account.CanAnalyze(),
		})
	}

	pages = domain.FilterPlaceholderPages(pages)
	if len(pages) == 0 {
		return nil, domain.ErrNoPagesFound
	}

	logrus.WithField("total_pages", len(pages)).Info("pages: successfully retrieved page catalog")

	return pages, nil
}

func (s *MetaIntegrator) loadNameCache() map[string]string {
	if s.pageNameRepository == nil {
		return map[string]string{}
	}
	cached, err := s.pageNameRepository.GetAll()
	if err != nil {
		logrus.WithError(err).Warn("pages: failed to load name cache, continuing without it")
		return map[string]string{}
	}
	return cached
}

// FetchRecord busca todas as métricas de uma página para o período e monta
// o registro com o status apropriado. Falhas por métrica viram API_ERROR no
// registro em vez de abortar a página; erro só é devolvido quando o
// contexto é cancelado.
func (s *MetaIntegrator) FetchRecord(ctx context.Context, page domain.Page, timeRange domain.TimeRange) (*domain.MetricRecord, error) {
	record := &domain.MetricRecord{
		PageID:   page.ID,
		PageName: page.DisplayName(),
		Status:   domain.StatusOK,
	}

	if !page.CanReadInsights {
		record.Status = domain.StatusNoAccess
		record.Comment = "token sem a tarefa ANALYZE na página"
		return record, nil
	}

	pageToken, err := s.Client.GetPageAccessToken(ctx, page.ID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		record.Status = domain.StatusNoAccess
		record.Comment = "não foi possível obter o Page Access Token"
		return record, nil
	}

	publications, err := s.Client.CountPublishedPosts(ctx, page.ID, pageToken, timeRange.Start, timeRange.End)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Publicações indisponíveis não invalidam o resto do registro
		logrus.WithFields(logrus.Fields{
			"page_id":   page.ID,
			"page_name": page.DisplayName(),
			"error":     err.Error(),
		}).Warn("pages: could not count published posts, assuming zero")
	}
	record.Publications = publications

	metricsMapping := []string{
		metadomain.MetricImpressionsUnique,
		metadomain.MetricEngagedUsers,
		metadomain.MetricPostEngagements,
		metadomain.MetricReactionsTotal,
		metadomain.MetricConsumptions,
	}

	apiErrors := make([]string, 0)

	for _, metric := range metricsMapping {
		value, err := s.Client.GetPageInsight(ctx, page.ID, pageToken, metric, timeRange.Start, timeRange.End)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			apiErrors = append(apiErrors, fmt.Sprintf("%s: %s", metric, err.Error()))
			logrus.WithFields(logrus.Fields{
				"page_id":   page.ID,
				"page_name": page.DisplayName(),
				"metric":    metric,
				"error":     err.Error(),
			}).Error("pages: failed to fetch metric")
			continue
		}

		switch metric {
		case metadomain.MetricImpressionsUnique:
			record.Reach = value
		case metadomain.MetricEngagedUsers:
			record.EngagedUsers = value
		case metadomain.MetricPostEngagements:
			record.Engagements = value
		case metadomain.MetricReactionsTotal:
			record.Reactions = value
		case metadomain.MetricConsumptions:
			record.Clicks = value
		}
	}

	if len(apiErrors) > 0 {
		if len(apiErrors) > maxAPIErrorsInComment {
			apiErrors = apiErrors[:maxAPIErrorsInComment]
		}
		record.Status = domain.StatusAPIError
		record.Comment = strings.Join(apiErrors, "; ")
	} else if record.Reach == 0 && record.EngagedUsers == 0 && record.Engagements == 0 &&
		record.Reactions == 0 && record.Clicks == 0 {
		record.Status = domain.StatusNoData
		record.Comment = "todos os valores são zero"
	}

	logrus.WithFields(logrus.Fields{
		"page_id":   page.ID,
		"page_name": page.DisplayName(),
		"status":    record.Status,
		"reach":     record.Reach,
	}).Debug("pages: metric record assembled")

	return record, nil
}

// APICalls devolve o total de chamadas despachadas pelo cliente
func (s *MetaIntegrator) APICalls() int64 {
	return s.Client.APICalls()
}
