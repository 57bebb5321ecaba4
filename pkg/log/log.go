package log

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é a fachada de log usada por handlers e middlewares. A superfície
// é restrita ao que requisições precisam; nada aqui encerra o processo.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type contextKey string

// CorrelationIDKey é a chave do ID de correlação no contexto
const CorrelationIDKey contextKey = "correlation_id"
const correlationIDField = "correlation_id"

// entryLogger encaminha tudo para um entry do logrus
type entryLogger struct {
	entry *logrus.Entry
}

// L é a instância global para uso direto
var L Logger = &entryLogger{entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// Setup define o formato global dos logs conforme o ambiente: JSON em
// produção, texto com timestamp completo no terminal de desenvolvimento.
func Setup() {
	if IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
}

// SetLevel aplica o nível de log vindo da configuração. Um valor inválido
// cai para info com um aviso em vez de interromper a inicialização.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// Campos preservados nos logs de desenvolvimento. Em produção todos os
// campos são emitidos; no terminal ficam só os que acompanham uma
// sincronização ou uma requisição.
var devFields = map[string]struct{}{
	correlationIDField: {},
	"run_id":           {},
	"identity":         {},
	"page_id":          {},
	"page_name":        {},
	"batch":            {},
	"attempt":          {},
	"api_calls":        {},
	"error":            {},
	"method":           {},
	"path":             {},
	"status_code":      {},
	"duration_ms":      {},
	"panic":            {},
	"stack_trace":      {},
}

// WithField adiciona um único campo ao Logger
func (l *entryLogger) WithField(key string, value interface{}) Logger {
	if IsDevelopment() {
		if _, ok := devFields[key]; !ok {
			return l
		}
	}
	return &entryLogger{entry: l.entry.WithField(key, value)}
}

// WithFields adiciona múltiplos campos ao Logger
func (l *entryLogger) WithFields(fields Fields) Logger {
	if !IsDevelopment() {
		return &entryLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
	}

	// Em desenvolvimento, campos irrelevantes são descartados
	kept := make(logrus.Fields)
	for k, v := range fields {
		if _, ok := devFields[k]; ok {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return l
	}
	return &entryLogger{entry: l.entry.WithFields(kept)}
}

// WithError adiciona um erro ao Logger
func (l *entryLogger) WithError(err error) Logger {
	return &entryLogger{entry: l.entry.WithError(err)}
}

// WithContext extrai o ID de correlação do contexto para o Logger
func (l *entryLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return l.WithField(correlationIDField, correlationID)
	}

	return l
}

func (l *entryLogger) Debug(args ...interface{}) { l.entry.Debug(args...) }

func (l *entryLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *entryLogger) Info(args ...interface{}) { l.entry.Info(args...) }

func (l *entryLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *entryLogger) Warn(args ...interface{}) { l.entry.Warn(args...) }

func (l *entryLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *entryLogger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *entryLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// WithCorrelationID gera um ID de correlação novo e o guarda no contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext cria um logger com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
