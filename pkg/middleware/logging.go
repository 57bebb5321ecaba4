package middleware

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/page-reach-sync/pkg/apiErrors"
	"github.com/vfg2006/page-reach-sync/pkg/log"
)

// Requisições acima deste tempo ganham um aviso de lentidão. A listagem de
// relatórios lê o diretório inteiro e é a candidata usual.
const slowRequestThreshold = 500 * time.Millisecond

// quietPath indica rotas de sonda e scraping, que poluiriam o log se
// registradas a cada chamada. Elas só aparecem em nível debug ou em erro.
func quietPath(path string) bool {
	return path == "/healthcheck" || path == "/metrics"
}

// LoggingMiddleware registra cada requisição HTTP com um ID de correlação
// que os handlers propagam via contexto
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			startedAt := time.Now()

			next.ServeHTTP(rec, r)

			elapsed := time.Since(startedAt)
			quiet := quietPath(r.URL.Path)

			fields := log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"status_code":    rec.statusCode,
				"duration_ms":    elapsed.Milliseconds(),
				"response_bytes": rec.bytes,
			}
			if !log.IsDevelopment() {
				fields["remote_addr"] = r.RemoteAddr
				fields["user_agent"] = r.UserAgent()
			}

			logger := log.L.WithFields(fields)

			switch {
			case rec.statusCode >= 500:
				logger.Error("Requisição finalizada com erro")
			case rec.statusCode >= 400:
				logger.Warn("Requisição finalizada com aviso")
			case quiet:
				logger.Debug("Requisição de sonda finalizada")
			case elapsed > slowRequestThreshold:
				logger.Warnf("Requisição lenta: %s %s levou %s", r.Method, r.URL.Path, formatDuration(elapsed))
			default:
				logger.Info("Requisição finalizada")
			}
		})
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d µs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

// responseRecorder captura o status e o tamanho da resposta
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(p []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// LogPanicMiddleware captura panics dos handlers e devolve um erro JSON no
// padrão da API, em vez de derrubar o processo
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				log.L.WithFields(log.Fields{
					"correlation_id": log.GetCorrelationID(r.Context()),
					"panic":          fmt.Sprint(rec),
					"method":         r.Method,
					"path":           r.URL.Path,
					"stack_trace":    string(stack),
				}).Error("Panic tratado na aplicação")

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
