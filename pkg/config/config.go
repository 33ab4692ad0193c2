package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	AppName     string         `yaml:"app_name"`
	Port        string         `yaml:"port"`
	CORSOrigins string         `yaml:"cors_origins"`
	Database    DatabaseConfig `yaml:"database"`
	LLM         LLMConfig      `yaml:"llm"`
	Upload      UploadConfig   `yaml:"upload"`
	Log         LogConfig      `yaml:"log"`
	JWT         JWTConfig      `yaml:"jwt"`

	AnalyzeTimeout  time.Duration `yaml:"analyze_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL      string        `yaml:"url"`
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	Name     string        `yaml:"name"`
	SSLMode  string        `yaml:"sslmode"`
	MaxConns int32         `yaml:"max_conns"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LLMConfig struct {
	Provider   string           `yaml:"provider"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Gemini     GeminiConfig     `yaml:"gemini"`
}

type OpenRouterConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	AppTitle string `yaml:"app_title"`
	Referer  string `yaml:"referer"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type UploadConfig struct {
	Backend  string   `yaml:"backend"`
	Dir      string   `yaml:"dir"`
	MaxBytes int64    `yaml:"max_bytes"`
	S3       S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type LogConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	UploadLocal = "local"
	UploadS3    = "s3"
)

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		AppName:     "Cybersoft CV Matching",
		Port:        "8080",
		CORSOrigins: "http://localhost:3000",
		Database: DatabaseConfig{
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
			Timeout:  5 * time.Second,
		},
		LLM: LLMConfig{
			Provider: ProviderOpenRouter,
			OpenRouter: OpenRouterConfig{
				BaseURL:  "https://openrouter.ai/api/v1",
				Model:    "qwen/qwen2.5-32b-instruct",
				AppTitle: "talentmatch",
			},
			Gemini: GeminiConfig{Model: "gemini-2.5-flash"},
		},
		Upload: UploadConfig{
			Backend:  UploadLocal,
			Dir:      "uploads",
			MaxBytes: 15 << 20,
			S3:       S3Config{Region: "auto"},
		},
		JWT: JWTConfig{
			Issuer:     "talentmatch",
			TTLMinutes: 60,
		},
		AnalyzeTimeout:  90 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads the configuration and validates it for the server.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read reads .env (if present), then the optional YAML file named by
// CONFIG_FILE, then environment variables. Later sources win. Nothing is validated.
func Read() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.AppName = getEnv("APP_NAME", cfg.AppName)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.AnalyzeTimeout = getEnvDuration("ANALYZE_TIMEOUT", cfg.AnalyzeTimeout)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	db := &cfg.Database
	db.URL = getEnv("DATABASE_URL", db.URL)
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnvInt("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.Name = getEnv("DB_NAME", db.Name)
	db.SSLMode = getEnv("DB_SSLMODE", db.SSLMode)
	db.MaxConns = int32(getEnvInt("DB_MAX_CONNS", int(db.MaxConns)))
	db.Timeout = getEnvDuration("DB_TIMEOUT", db.Timeout)

	llm := &cfg.LLM
	llm.Provider = strings.ToLower(getEnv("LLM_PROVIDER", llm.Provider))
	llm.OpenRouter.APIKey = getEnv("OPENROUTER_API_KEY", llm.OpenRouter.APIKey)
	llm.OpenRouter.BaseURL = getEnv("OPENROUTER_BASE_URL", llm.OpenRouter.BaseURL)
	llm.OpenRouter.Model = getEnv("OPENROUTER_MODEL", llm.OpenRouter.Model)
	llm.OpenRouter.AppTitle = getEnv("OPENROUTER_APP_TITLE", llm.OpenRouter.AppTitle)
	llm.OpenRouter.Referer = getEnv("OPENROUTER_REFERER", llm.OpenRouter.Referer)
	llm.Gemini.APIKey = getEnv("GEMINI_API_KEY", llm.Gemini.APIKey)
	llm.Gemini.Model = getEnv("GEMINI_MODEL", llm.Gemini.Model)

	up := &cfg.Upload
	up.Backend = strings.ToLower(getEnv("UPLOAD_BACKEND", up.Backend))
	up.Dir = getEnv("UPLOAD_DIR", up.Dir)
	up.MaxBytes = int64(getEnvInt("UPLOAD_MAX_BYTES", int(up.MaxBytes)))
	up.S3.Bucket = getEnv("S3_BUCKET", up.S3.Bucket)
	up.S3.Region = getEnv("S3_REGION", up.S3.Region)
	up.S3.Endpoint = getEnv("S3_ENDPOINT", up.S3.Endpoint)
	up.S3.AccessKey = getEnv("S3_ACCESS_KEY", up.S3.AccessKey)
	up.S3.SecretKey = getEnv("S3_SECRET_KEY", up.S3.SecretKey)

	cfg.Log.JSON = getEnvBool("LOG_JSON", cfg.Log.JSON)
	cfg.Log.Debug = getEnvBool("LOG_DEBUG", cfg.Log.Debug)

	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", cfg.JWT.Issuer)
	cfg.JWT.TTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWT.TTLMinutes)
}

// Validate checks settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		errs = append(errs, errors.New("database: DATABASE_URL or DB_HOST and DB_NAME must be set"))
	}
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("llm: unknown provider %q", c.LLM.Provider))
	}
	switch c.Upload.Backend {
	case UploadLocal:
	case UploadS3:
		if c.Upload.S3.Bucket == "" {
			errs = append(errs, errors.New("upload: S3_BUCKET is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("upload: unknown backend %q", c.Upload.Backend))
	}
	if c.Database.Timeout <= 0 {
		errs = append(errs, errors.New("database: DB_TIMEOUT must be positive"))
	}
	if c.AnalyzeTimeout <= 0 {
		errs = append(errs, errors.New("ANALYZE_TIMEOUT must be positive"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("upload: UPLOAD_MAX_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// DSN returns DATABASE_URL or builds a postgres URL from the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Origins splits CORSOrigins into a clean list.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
