package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/vfg2006/page-reach-sync/infrastructure/database/postgres"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/page-reach-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/page-reach-sync/infrastructure/reportstore"
	"github.com/vfg2006/page-reach-sync/infrastructure/repository"
	"github.com/vfg2006/page-reach-sync/internal/config"
	"github.com/vfg2006/page-reach-sync/internal/domain"
	"github.com/vfg2006/page-reach-sync/internal/usecases/syncing"
	"github.com/vfg2006/page-reach-sync/pkg/log"
	"github.com/vfg2006/page-reach-sync/pkg/utils"
)

const (
	exitOK       = 0
	exitFatal    = 1
	exitConflict = 2
)

// cliFlags agrega os seletores de período e os modificadores da invocação
type cliFlags struct {
	selector  domain.Selector
	updateAll bool
	checkNew  bool
	status    string
	debug     bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()
	log.Setup()

	// Conflitos de seleção falham antes de carregar configuração ou tocar a rede
	if err := flags.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConflict
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Error("fbreach: configuração inválida")
		return exitFatal
	}

	level := cfg.App.LogLevel
	if flags.debug {
		level = "debug"
	}
	log.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logrus.WithField("signal", sig.String()).Warn("fbreach: interrupção recebida, finalizando")
		cancel()
	}()

	var pageNameRepo repository.PageNameRepository
	var syncRunRepo repository.SyncRunRepository
	if pgConn := connectDatabase(ctx, cfg.Database); pgConn != nil {
		defer pgConn.Close()
		pageNameRepo = repository.NewPageNameRepository(pgConn)
		syncRunRepo = repository.NewSyncRunRepository(pgConn)
	}

	store, err := reportstore.New(cfg.Sync)
	if err != nil {
		logrus.WithError(err).Error("fbreach: erro ao preparar o diretório de relatórios")
		return exitFatal
	}

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient, pageNameRepo)
	syncService := syncing.NewService(cfg, metaIntegrator, store, syncRunRepo)

	// --status apenas recompila o relatório de status, sem buscar métricas
	if flags.status != "" {
		year, month, _ := utils.ParseYearMonth(flags.status)
		if err := syncService.EmitStatus(year, month); err != nil {
			logrus.WithError(err).Error("fbreach: falha ao gerar o relatório de status")
			return exitFatal
		}
		return exitOK
	}

	summary, err := syncService.Run(ctx, syncing.Options{
		Selector:     flags.selector,
		ForceRefresh: flags.updateAll,
		CheckNew:     flags.checkNew,
		Trigger:      domain.TriggerCLI,
	})
	if err != nil {
		if domain.IsConfigConflict(err) {
			fmt.Fprintln(os.Stderr, err)
			return exitConflict
		}
		logrus.WithError(err).Error("fbreach: sincronização interrompida")
		return exitFatal
	}

	logSummary(summary)

	// Falhas parciais de página não mudam o código de saída, a persistência
	// do relatório é o que conta
	return exitOK
}

func parseFlags() cliFlags {
	var flags cliFlags
	flag.StringVar(&flags.selector.StartMonth, "start", "", "substitui o mês âncora da iteração de meses faltantes (YYYY-MM)")
	flag.StringVar(&flags.selector.Month, "month", "", "sincroniza um único mês fechado (YYYY-MM)")
	flag.StringVar(&flags.selector.From, "from", "", "início do intervalo arbitrário (YYYY-MM-DD), exige --to")
	flag.StringVar(&flags.selector.To, "to", "", "fim do intervalo arbitrário (YYYY-MM-DD), exige --from")
	flag.BoolVar(&flags.selector.CurrentMonthSoFar, "current-month-so-far", false, "mês corrente, do dia 1 até hoje")
	flag.IntVar(&flags.selector.LastNDays, "last-n-days", 0, "janela dos últimos N dias terminando hoje")
	flag.BoolVar(&flags.selector.LastWeek, "last-week", false, "janela dos últimos 7 dias")
	flag.BoolVar(&flags.selector.LastMonth, "last-month", false, "janela dos últimos 30 dias")
	flag.BoolVar(&flags.updateAll, "update-all", false, "rebusca também as páginas já presentes no relatório")
	flag.BoolVar(&flags.checkNew, "check-new", false, "acrescenta páginas novas aos relatórios existentes")
	flag.StringVar(&flags.status, "status", "", "gera apenas o relatório de status do mês (YYYY-MM)")
	flag.BoolVar(&flags.debug, "debug", false, "habilita logs de depuração")
	flag.Parse()
	return flags
}

// validate aplica as regras de exclusão mútua entre seletores e modificadores
func (f cliFlags) validate() error {
	if err := f.selector.Validate(); err != nil {
		return err
	}
	if f.updateAll && f.checkNew {
		return domain.NewConfigConflict("--update-all e --check-new são mutuamente exclusivos")
	}
	if f.status != "" {
		if f.selector != (domain.Selector{}) || f.updateAll || f.checkNew {
			return domain.NewConfigConflict("--status não combina com seletores de período ou outros modificadores")
		}
		if _, _, err := utils.ParseYearMonth(f.status); err != nil {
			return domain.NewConfigConflict("--status inválido, use YYYY-MM")
		}
	}
	return nil
}

// connectDatabase tenta abrir a conexão com o banco. A ausência do banco não
// impede a sincronização: o livro-razão e o cache de nomes ficam desabilitados.
func connectDatabase(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Warn("fbreach: banco indisponível, seguindo sem livro-razão")
		return nil
	}
	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("fbreach: banco indisponível, seguindo sem livro-razão")
		conn.Close()
		return nil
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// logSummary registra o desfecho de cada execução disparada pela invocação
func logSummary(summary *syncing.Summary) {
	if len(summary.Runs) == 0 {
		logrus.Info("fbreach: nenhum mês pendente, nada a fazer")
		return
	}
	for _, run := range summary.Runs {
		entry := logrus.WithFields(logrus.Fields{
			"identity":      run.Identity,
			"status":        run.Status,
			"pages_total":   run.PagesTotal,
			"pages_fetched": run.PagesFetched,
			"pages_skipped": run.PagesSkipped,
			"pages_failed":  run.PagesFailed,
			"api_calls":     run.APICalls,
		})
		if run.PagesFailed > 0 {
			entry.Warn("fbreach: execução concluída com falhas de página")
		} else {
			entry.Info("fbreach: execução concluída")
		}
	}
}
