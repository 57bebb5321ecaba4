package metaclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	metadomain "github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/page-reach-sync/pkg/metrics"
	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

// doRequest executa uma chamada GET à Graph API respeitando o orçamento
// horário de chamadas, repetindo falhas transitórias e de limite até o
// número configurado de tentativas. Erros de credencial e semânticos não
// são repetidos.
func (c *MetaClient) doRequest(ctx context.Context, operation, rawURL string) ([]byte, error) {
	maxAttempts := c.Cfg.Sync.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			wait := retryDelay(lastErr, attempt-1, c.Cfg.Sync.RetryDelay)
			metrics.GraphAPIRetries.WithLabelValues(string(metadomain.ClassOf(lastErr))).Inc()
			logrus.WithFields(logrus.Fields{
				"operation":    operation,
				"attempt":      attempt + 1,
				"max_attempts": maxAttempts,
				"wait_seconds": wait.Seconds(),
			}).Warn("Repetindo chamada à Graph API após falha")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		body, err := c.dispatch(ctx, operation, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		var fetchErr *metadomain.FetchError
		if errors.As(err, &fetchErr) && !fetchErr.Retryable() {
			break
		}
	}

	metrics.GraphAPIFailures.WithLabelValues(string(metadomain.ClassOf(lastErr))).Inc()
	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"error":     lastErr.Error(),
	}).Error("Chamada à Graph API falhou definitivamente")

	return nil, lastErr
}

// dispatch faz uma única tentativa: espera orçamento, conta a chamada e
// passa pelo circuit breaker
func (c *MetaClient) dispatch(ctx context.Context, operation, rawURL string) ([]byte, error) {
	if err := c.waitBudget(ctx, operation); err != nil {
		return nil, err
	}

	c.calls.Add(1)
	metrics.GraphAPICalls.WithLabelValues(operation).Inc()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.exchange(ctx, rawURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &metadomain.FetchError{
				Class:   metadomain.ErrClassTransient,
				Message: "circuit breaker aberto: " + err.Error(),
			}
		}
		return nil, err
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.WithField("operation", operation).Trace("Resposta da Graph API: ", utils.PrettyJson(body))
	}

	return body, nil
}

func (c *MetaClient) exchange(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &metadomain.FetchError{Class: metadomain.ErrClassTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &metadomain.FetchError{
			Class:      metadomain.ErrClassTransient,
			StatusCode: resp.StatusCode,
			Message:    err.Error(),
		}
	}

	if fetchErr := classifyResponse(resp, body); fetchErr != nil {
		return nil, fetchErr
	}

	return body, nil
}

// waitBudget bloqueia até haver orçamento para mais uma chamada
func (c *MetaClient) waitBudget(ctx context.Context, operation string) error {
	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	metrics.ObserveBudgetWait(start)

	if waited := time.Since(start); waited > time.Second {
		logrus.WithFields(logrus.Fields{
			"operation":    operation,
			"wait_seconds": waited.Seconds(),
		}).Warn("Orçamento horário de chamadas quase esgotado, chamada aguardou")
	}

	return nil
}

// classifyResponse devolve o erro classificado de uma resposta não 200
func classifyResponse(resp *http.Response, body []byte) *metadomain.FetchError {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	fetchErr := &metadomain.FetchError{
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}

	var apiErr metadomain.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Code != 0 {
		fetchErr.Code = apiErr.Error.Code
		fetchErr.Subcode = apiErr.Error.ErrorSubcode
		fetchErr.Message = apiErr.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		fetchErr.Class = metadomain.ErrClassRateLimited
		fetchErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	case apiErr.IsAppThrottled():
		fetchErr.Class = metadomain.ErrClassRateLimited
		fetchErr.AppThrottle = true
	case apiErr.IsTokenExpired() || resp.StatusCode == http.StatusUnauthorized:
		fetchErr.Class = metadomain.ErrClassAuth
	case resp.StatusCode >= 500:
		fetchErr.Class = metadomain.ErrClassTransient
	default:
		fetchErr.Class = metadomain.ErrClassPermanent
	}

	return fetchErr
}

// retryDelay calcula a espera antes da próxima tentativa. O limite do app
// pede esperas crescentes de um minuto, o 429 respeita o Retry-After e o
// resto usa backoff exponencial sobre a base configurada.
func retryDelay(err error, attempt int, base time.Duration) time.Duration {
	var fetchErr *metadomain.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.AppThrottle {
			return time.Duration(attempt+1) * time.Minute
		}
		if fetchErr.RetryAfter > 0 {
			return fetchErr.RetryAfter
		}
	}
	return base * (1 << attempt)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
