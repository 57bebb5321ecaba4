package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/internal/api/handler"
	"github.com/vfg2006/page-reach-sync/internal/api/handler/router"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/scheduler"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
	"github.com/vfg2006/page-reach-sync/pkg/middleware"
)

// shutdownGrace limita a espera por requisições em andamento no desligamento
const shutdownGrace = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	syncScheduler *scheduler.PageInsightSyncService,
	syncService syncing.Syncer,
	store reportstore.Store,
	runRepo repository.SyncRunRepository,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Sync(syncScheduler, runRepo)...),
		router.WithRoutes(handler.Reports(store, syncService)...),
	)

	// A recuperação de panic roda dentro do logging: o panic é registrado
	// com o ID de correlação da requisição e a linha de finalização sai
	// com o status 500 escrito pelo recuperador
	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(config.Auth),
	}

	handler := alice.New(middlewares...).Then(rt)

	// Timeouts dimensionados para a API administrativa: o disparo de
	// sincronização responde 202 na hora e a maior resposta é a listagem
	// de relatórios
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	return srv, nil
}

// Run serve até receber SIGINT/SIGTERM ou o cancelamento do contexto, e
// então desliga graciosamente. Sincronizações em andamento não são
// interrompidas pelo desligamento do servidor HTTP.
func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("API administrativa no ar")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Servidor HTTP encerrou com erro")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupção recebida, iniciando desligamento")
	case <-ctx.Done():
		logrus.Info("Contexto da aplicação cancelado, iniciando desligamento")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	logrus.Info("Desligando a API administrativa, aguardando requisições em andamento")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Desligamento não concluiu dentro do prazo")
		return err
	}

	logrus.Info("API administrativa desligada")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
