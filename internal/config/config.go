// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
)

type Config struct {
	Zoho    ZohoConfig
	Storage StorageConfig
	App     AppConfig
	Metrics MetricsConfig
}

type ZohoConfig struct {
	RefreshToken  string
	ClientID      string
	ClientSecret  string
	UserIDs       string
	BotName       string
	BotUniqueName string
	TokenURL      string
	CliqAPIURL    string
	Comments      []string
	HTTPTimeout   time.Duration
}

type StorageConfig struct {
	Driver    string
	Bucket    string
	FileKey   string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type AppConfig struct {
	ScratchDir string
	LogLevel   string
	LogFormat  string
}

type MetricsConfig struct {
	PushgatewayURL string
	JobName        string
}

// Credentials returns the OAuth material for the token refresher.
func (c ZohoConfig) Credentials() domain.Credentials {
	return domain.Credentials{
		RefreshToken: c.RefreshToken,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

// Location returns the configured source object.
func (c StorageConfig) Location() domain.ObjectLocation {
	return domain.ObjectLocation{Bucket: c.Bucket, Key: c.FileKey}
}

// Load reads .env (if present) and the process environment, then applies
// overrides keyed by environment variable name. Required values are not
// checked here; each stage reports its own ConfigurationError.
func Load(overrides map[string]string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := newViper()
	for key, value := range overrides {
		v.Set(key, value)
	}
	return FromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("ZOHO_CLIQ_USER_IDS", "")
	v.SetDefault("ZOHO_BOT_NAME", "Metal Price Tracker")
	v.SetDefault("ZOHO_BOT_UNIQUE_NAME", "policychatbotv")
	v.SetDefault("ZOHO_TOKEN_URL", "https://accounts.zoho.in/oauth/v2/token")
	v.SetDefault("ZOHO_CLIQ_API_URL", "https://cliq.zoho.in/api/v2")
	v.SetDefault("ZOHO_CLIQ_COMMENTS", "Metal Price Update")
	v.SetDefault("ZOHO_HTTP_TIMEOUT_SECONDS", 0)
	v.SetDefault("STORAGE_DRIVER", "minio")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("AWS_REGION", "ap-south-1")
	v.SetDefault("AWS_S3_ENDPOINT", "s3.amazonaws.com")
	v.SetDefault("APP_SCRATCH_DIR", os.TempDir())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("METRICS_PUSHGATEWAY_URL", "")
	v.SetDefault("METRICS_JOB_NAME", "material_price_dispatch")

	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	if driver != "minio" && driver != "s3compat" {
		return nil, domain.NewConfigurationError("STORAGE_DRIVER", fmt.Sprintf("unsupported driver %q", driver))
	}

	// Zero or negative leaves uploads without a client timeout.
	timeout := time.Duration(v.GetInt("ZOHO_HTTP_TIMEOUT_SECONDS")) * time.Second
	if timeout < 0 {
		timeout = 0
	}

	return &Config{
		Zoho: ZohoConfig{
			RefreshToken:  strings.TrimSpace(v.GetString("ZOHO_REFRESH_TOKEN")),
			ClientID:      strings.TrimSpace(v.GetString("ZOHO_CLIENT_ID")),
			ClientSecret:  strings.TrimSpace(v.GetString("ZOHO_CLIENT_SECRET")),
			UserIDs:       v.GetString("ZOHO_CLIQ_USER_IDS"),
			BotName:       v.GetString("ZOHO_BOT_NAME"),
			BotUniqueName: v.GetString("ZOHO_BOT_UNIQUE_NAME"),
			TokenURL:      v.GetString("ZOHO_TOKEN_URL"),
			CliqAPIURL:    strings.TrimSuffix(v.GetString("ZOHO_CLIQ_API_URL"), "/"),
			Comments:      SplitList(v.GetString("ZOHO_CLIQ_COMMENTS")),
			HTTPTimeout:   timeout,
		},
		Storage: StorageConfig{
			Driver:    driver,
			Bucket:    strings.TrimSpace(v.GetString("AWS_S3_BUCKET")),
			FileKey:   strings.TrimSpace(v.GetString("AWS_S3_FILE_KEY")),
			Region:    v.GetString("AWS_REGION"),
			Endpoint:  v.GetString("AWS_S3_ENDPOINT"),
			AccessKey: v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		App: AppConfig{
			ScratchDir: v.GetString("APP_SCRATCH_DIR"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			LogFormat:  v.GetString("LOG_FORMAT"),
		},
		Metrics: MetricsConfig{
			PushgatewayURL: v.GetString("METRICS_PUSHGATEWAY_URL"),
			JobName:        v.GetString("METRICS_JOB_NAME"),
		},
	}, nil
}

// SplitList splits a comma-separated value, trimming entries and dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
