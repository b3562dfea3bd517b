package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

// DefaultSecretKey é apenas um marcador; a API não sobe com ele
const DefaultSecretKey = "your_secret_key"

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Source           Source           `mapstructure:",squash"`
	Columns          Columns          `mapstructure:",squash"`
	Projection       Projection       `mapstructure:",squash"`
	Access           Access           `mapstructure:",squash"`
	DashboardRefresh DashboardRefresh `mapstructure:",squash"`
	Snapshot         Snapshot         `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"app_timezone"`
}

// Tipos de origem da planilha
const (
	SourceKindDrive    = "drive"
	SourceKindDriveAPI = "drive_api"
	SourceKindGCS      = "gcs"
	SourceKindFile     = "file"
)

// Source descreve de onde a planilha é baixada
type Source struct {
	Kind            string        `mapstructure:"source_kind"`
	FileID          string        `mapstructure:"source_file_id"`
	DownloadURL     string        `mapstructure:"source_download_url"`
	CredentialsFile string        `mapstructure:"source_credentials_file"`
	Bucket          string        `mapstructure:"source_bucket"`
	Object          string        `mapstructure:"source_object"`
	LocalPath       string        `mapstructure:"source_local_path"`
	Sheet           string        `mapstructure:"source_sheet"`
	HeaderRow       int           `mapstructure:"source_header_row"`
	Timeout         time.Duration `mapstructure:"source_timeout"`
	MaxBytes        int64         `mapstructure:"source_max_bytes"`
}

// Reference devolve o identificador do arquivo conforme o tipo de origem
func (s Source) Reference() string {
	switch s.Kind {
	case SourceKindGCS:
		return s.Object
	case SourceKindFile:
		return s.LocalPath
	default:
		return s.FileID
	}
}

type Columns struct {
	Ordinal     string `mapstructure:"column_ordinal"`
	Responsible string `mapstructure:"column_responsible"`
	Client      string `mapstructure:"column_client"`
	TableNumber string `mapstructure:"column_table_number"`
	Amount      string `mapstructure:"column_amount"`
	ReceiptDate string `mapstructure:"column_receipt_date"`
}

type Projection struct {
	Mode                 string `mapstructure:"projection_mode"`
	TablePrice           string `mapstructure:"projection_table_price"`
	SponsorshipSurcharge string `mapstructure:"projection_sponsorship_surcharge"`
}

// Access configura a senha compartilhada do painel
type Access struct {
	Password     string        `mapstructure:"access_password"`
	PasswordHash string        `mapstructure:"access_password_hash"`
	TokenTTL     time.Duration `mapstructure:"access_token_ttl"`
}

type DashboardRefresh struct {
	CronSchedule string `mapstructure:"dashboard_refresh_cron"`
	Enabled      bool   `mapstructure:"dashboard_refresh_enabled"`
}

type Snapshot struct {
	Enabled bool `mapstructure:"snapshot_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/baile")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", DefaultSecretKey)

	// Planilha do baile
	viper.SetDefault("SOURCE_KIND", SourceKindDrive)
	viper.SetDefault("SOURCE_FILE_ID", "")
	viper.SetDefault("SOURCE_DOWNLOAD_URL", "https://drive.google.com/uc")
	viper.SetDefault("SOURCE_CREDENTIALS_FILE", "")
	viper.SetDefault("SOURCE_BUCKET", "")
	viper.SetDefault("SOURCE_OBJECT", "")
	viper.SetDefault("SOURCE_LOCAL_PATH", "baile.xlsx")
	viper.SetDefault("SOURCE_SHEET", "Mesas")
	viper.SetDefault("SOURCE_HEADER_ROW", 3) // cabeçalho na 4ª linha
	viper.SetDefault("SOURCE_TIMEOUT", "30s")
	viper.SetDefault("SOURCE_MAX_BYTES", 20<<20) // 20 MiB

	viper.SetDefault("COLUMN_ORDINAL", "ORD")
	viper.SetDefault("COLUMN_RESPONSIBLE", "NOME")
	viper.SetDefault("COLUMN_CLIENT", "Cliente")
	viper.SetDefault("COLUMN_TABLE_NUMBER", "MESA")
	viper.SetDefault("COLUMN_AMOUNT", "VALOR")
	viper.SetDefault("COLUMN_RECEIPT_DATE", "DATA_REC")

	viper.SetDefault("PROJECTION_MODE", string(domain.ProjectionSponsorship))
	viper.SetDefault("PROJECTION_TABLE_PRICE", "600")
	viper.SetDefault("PROJECTION_SPONSORSHIP_SURCHARGE", "400")

	viper.SetDefault("ACCESS_PASSWORD", "")
	viper.SetDefault("ACCESS_PASSWORD_HASH", "")
	viper.SetDefault("ACCESS_TOKEN_TTL", "12h")

	viper.SetDefault("DASHBOARD_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("DASHBOARD_REFRESH_ENABLED", false)

	viper.SetDefault("SNAPSHOT_ENABLED", false)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica as combinações de configuração que impedem a API de subir
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceKindDrive, SourceKindDriveAPI:
		if c.Source.FileID == "" {
			return fmt.Errorf("SOURCE_FILE_ID é obrigatório para a origem %q", c.Source.Kind)
		}
	case SourceKindGCS:
		if c.Source.Bucket == "" || c.Source.Object == "" {
			return fmt.Errorf("SOURCE_BUCKET e SOURCE_OBJECT são obrigatórios para a origem %q", c.Source.Kind)
		}
	case SourceKindFile:
		if c.Source.LocalPath == "" {
			return fmt.Errorf("SOURCE_LOCAL_PATH é obrigatório para a origem %q", c.Source.Kind)
		}
	default:
		return fmt.Errorf("SOURCE_KIND inválido: %q", c.Source.Kind)
	}

	if c.Source.HeaderRow < 0 {
		return fmt.Errorf("SOURCE_HEADER_ROW não pode ser negativo: %d", c.Source.HeaderRow)
	}

	if c.Source.MaxBytes < 0 {
		return fmt.Errorf("SOURCE_MAX_BYTES não pode ser negativo: %d", c.Source.MaxBytes)
	}

	if c.Access.Password == "" && c.Access.PasswordHash == "" {
		return fmt.Errorf("ACCESS_PASSWORD ou ACCESS_PASSWORD_HASH deve ser informado")
	}

	if c.SecretKey == "" || c.SecretKey == DefaultSecretKey {
		return fmt.Errorf("SECRET_KEY deve ser definida com um valor próprio")
	}

	if _, err := c.ProjectionConfig(); err != nil {
		return err
	}

	return nil
}

// ColumnSet converte a configuração de colunas para o tipo de domínio
func (c *Config) ColumnSet() domain.ColumnSet {
	return domain.ColumnSet{
		Ordinal:     c.Columns.Ordinal,
		Responsible: c.Columns.Responsible,
		Client:      c.Columns.Client,
		TableNumber: c.Columns.TableNumber,
		Amount:      c.Columns.Amount,
		ReceiptDate: c.Columns.ReceiptDate,
	}
}

// ProjectionConfig converte a configuração de previsão para o tipo de domínio
func (c *Config) ProjectionConfig() (domain.ProjectionConfig, error) {
	mode := domain.ProjectionMode(c.Projection.Mode)
	if mode != domain.ProjectionSimple && mode != domain.ProjectionSponsorship {
		return domain.ProjectionConfig{}, fmt.Errorf("PROJECTION_MODE inválido: %q", c.Projection.Mode)
	}

	price, err := decimal.NewFromString(c.Projection.TablePrice)
	if err != nil {
		return domain.ProjectionConfig{}, fmt.Errorf("PROJECTION_TABLE_PRICE inválido: %w", err)
	}

	surcharge, err := decimal.NewFromString(c.Projection.SponsorshipSurcharge)
	if err != nil {
		return domain.ProjectionConfig{}, fmt.Errorf("PROJECTION_SPONSORSHIP_SURCHARGE inválido: %w", err)
	}

	return domain.ProjectionConfig{
		Mode:                 mode,
		TablePrice:           price,
		SponsorshipSurcharge: surcharge,
	}, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
