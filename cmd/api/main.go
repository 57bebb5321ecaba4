package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/page-reach-sync/infrastructure/database/postgres"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/internal/api"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/scheduler"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
	"github.com/vfg2006/page-reach-sync/pkg/log"
	"github.com/vfg2006/page-reach-sync/pkg/metrics"
)

func main() {
	log.Setup()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.SetLevel(cfg.App.LogLevel)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	pageNameRepo := repository.NewPageNameRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient, pageNameRepo)

	store, err := reportstore.New(cfg.Sync)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o diretório de relatórios")
	}

	syncService := syncing.NewService(cfg, metaIntegrator, store, syncRunRepo)

	pageSyncService := scheduler.NewPageInsightSyncService(syncService, metaIntegrator, cfg)
	if err := pageSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de páginas")
	} else {
		logrus.Info("Agendador de sincronização de páginas iniciado com sucesso")
	}

	server, err := api.New(cfg, pageSyncService, syncService, store, syncRunRepo)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
