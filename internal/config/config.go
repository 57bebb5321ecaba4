package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var validate = validator.New()

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Meta     Meta     `mapstructure:",squash"`
	Sync     Sync     `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL         string    `mapstructure:"meta_base_url" validate:"required,url"`
	URL             string    `mapstructure:"meta_url"`
	Version         string    `mapstructure:"meta_version" validate:"required"`
	AccessToken     string    `mapstructure:"meta_access_token"`
	TokenIssuedDate string    `mapstructure:"meta_token_issued_at" validate:"omitempty,datetime=2006-01-02"`
	TokenValidDays  int       `mapstructure:"meta_token_valid_days" validate:"min=0"`
	TokenIssuedAt   time.Time `mapstructure:"-"`
}

type Sync struct {
	ReportsDir   string        `mapstructure:"sync_reports_dir" validate:"required"`
	StartMonth   string        `mapstructure:"sync_start_month" validate:"required,datetime=2006-01"`
	BatchSize    int           `mapstructure:"sync_batch_size" validate:"min=1"`
	BatchPause   time.Duration `mapstructure:"sync_batch_pause" validate:"min=0"`
	MonthPause   time.Duration `mapstructure:"sync_month_pause" validate:"min=0"`
	HourlyBudget int           `mapstructure:"sync_hourly_budget" validate:"min=1"`
	Workers      int           `mapstructure:"sync_workers" validate:"min=1"`
	MaxRetries   int           `mapstructure:"sync_max_retries" validate:"min=0"`
	RetryDelay   time.Duration `mapstructure:"sync_retry_delay" validate:"min=0"`
	CronSchedule string        `mapstructure:"sync_cron"`
	CronEnabled  bool          `mapstructure:"sync_cron_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_jwt_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/pagereach")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v19.0")
	viper.SetDefault("META_ACCESS_TOKEN", "") // ONLY LOCAL
	viper.SetDefault("META_TOKEN_ISSUED_AT", "")
	viper.SetDefault("META_TOKEN_VALID_DAYS", 60) // Tokens longos da Meta valem 60 dias

	// Defaults para sincronização de alcance de páginas
	viper.SetDefault("SYNC_REPORTS_DIR", "reports")
	viper.SetDefault("SYNC_START_MONTH", "2025-01") // Primeiro mês coberto pelos relatórios
	viper.SetDefault("SYNC_BATCH_SIZE", 10)         // Páginas processadas por lote
	viper.SetDefault("SYNC_BATCH_PAUSE", "60s")     // Pausa entre lotes
	viper.SetDefault("SYNC_MONTH_PAUSE", "60s")     // Pausa entre meses na iteração
	viper.SetDefault("SYNC_HOURLY_BUDGET", 200)     // Limite aproximado de chamadas por hora
	viper.SetDefault("SYNC_WORKERS", 3)             // Buscas concorrentes dentro do lote
	viper.SetDefault("SYNC_MAX_RETRIES", 3)         // Tentativas antes de desistir de uma chamada
	viper.SetDefault("SYNC_RETRY_DELAY", "5s")      // Base do backoff exponencial
	viper.SetDefault("SYNC_CRON", "0 3 * * *")      // Diariamente às 3h, meses já cobertos são pulados
	viper.SetDefault("SYNC_CRON_ENABLED", false)

	viper.SetDefault("AUTH_JWT_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

// NewConfig monta a configuração a partir do ambiente do processo e de um
// .env local, valida os campos e deriva a URL do Graph e o DSN do banco
func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// O godotenv já populou o ambiente; a leitura direta do .env pelo
	// viper é redundante e pode falhar sem consequência
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Viper não leu o .env diretamente, seguindo com o ambiente: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	if config.Meta.TokenIssuedDate != "" {
		issuedAt, err := time.Parse("2006-01-02", config.Meta.TokenIssuedDate)
		if err != nil {
			return nil, fmt.Errorf("META_TOKEN_ISSUED_AT inválido: %w", err)
		}
		config.Meta.TokenIssuedAt = issuedAt
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile procura o .env no diretório atual e em até dois níveis acima;
// os binários rodam tanto da raiz do repositório quanto de cmd/<nome>
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível determinar o diretório atual")
		return
	}

	dir := cwd
	for i := 0; i < 3; i++ {
		candidate := filepath.Join(dir, ".env")
		if err := godotenv.Load(candidate); err == nil {
			logrus.WithField("path", candidate).Debug("Arquivo .env carregado")
			return
		}
		dir = filepath.Dir(dir)
	}

	logrus.Debug("Nenhum .env encontrado, seguindo com o ambiente do processo")
}
