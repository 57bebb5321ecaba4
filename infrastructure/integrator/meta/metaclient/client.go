package metaclient

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/pkg/metrics"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestTimeout = 30 * time.Second

type Client interface {
	DebugToken(ctx context.Context) (*metadomain.TokenDebugData, error)
	ListAccounts(ctx context.Context) ([]metadomain.PageAccount, error)
	GetPageAccessToken(ctx context.Context, pageID string) (string, error)
	GetPageName(ctx context.Context, pageID string) (string, error)
	GetPageInsight(ctx context.Context, pageID, pageToken, metric string, since, until time.Time) (int64, error)
	CountPublishedPosts(ctx context.Context, pageID, pageToken string, since, until time.Time) (int64, error)
	APICalls() int64
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	calls      atomic.Int64
}

func NewClient(cfg *config.Config) Client {
	client := &MetaClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		// O orçamento horário vira uma taxa constante com burst igual ao
		// próprio orçamento, então rajadas curtas passam e o excesso espera
		limiter: rate.NewLimiter(
			rate.Every(time.Hour/time.Duration(cfg.Sync.HourlyBudget)),
			cfg.Sync.HourlyBudget,
		),
	}
	client.breaker = newBreaker()
	return client
}

func newBreaker() *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "graph-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"de":      from.String(),
				"para":    to.String(),
			}).Warn("Circuit breaker da Graph API mudou de estado")
			metrics.CircuitBreakerState.Set(breakerStateValue(to))
		},
		// Só falhas transitórias contam para abrir o circuito. Erros de
		// credencial ou semânticos não indicam indisponibilidade da API.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return metadomain.ClassOf(err) != metadomain.ErrClassTransient
		},
	})
}

func breakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// APICalls devolve quantas chamadas foram despachadas desde a criação do cliente
func (c *MetaClient) APICalls() int64 {
	return c.calls.Load()
}
