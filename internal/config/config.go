package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config agrupa toda la configuración del servicio.
// Se carga una sola vez en main y se pasa explícitamente a los constructores:
// ningún componente lee variables de entorno en tiempo de request.
type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
	} `yaml:"server"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MinConns        int    `yaml:"min_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
			// Timeout por statement aplicado a cada llamada al store.
			StatementTimeout string `yaml:"statement_timeout"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Auth struct {
		// Secretos HMAC independientes para access y refresh.
		AccessSecret  string `yaml:"access_secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		AccessTTL     string `yaml:"access_ttl"`  // ej: "15m"
		RefreshTTL    string `yaml:"refresh_ttl"` // ej: "168h"
		// TokenSource define la fuente canónica del access token por
		// deployment: "cookie" o "header".
		TokenSource string `yaml:"token_source"`
		Cookie      struct {
			Domain   string `yaml:"domain"`
			SameSite string `yaml:"same_site"` // lax | strict | none
			Secure   bool   `yaml:"secure"`
		} `yaml:"cookie"`
	} `yaml:"auth"`

	Redis struct {
		Addr string `yaml:"addr"` // vacío = redis deshabilitado
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	Cache struct {
		// memory | redis
		Backend    string `yaml:"backend"`
		DefaultTTL string `yaml:"default_ttl"`
	} `yaml:"cache"`

	RateLimit struct {
		Enabled bool   `yaml:"enabled"`
		Max     int    `yaml:"max"`
		Window  string `yaml:"window"`
	} `yaml:"rate_limit"`

	Media struct {
		Endpoint      string `yaml:"endpoint"` // S3/MinIO
		Region        string `yaml:"region"`
		Bucket        string `yaml:"bucket"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"media"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee el YAML, aplica overrides de ENV y valida lo mínimo indispensable.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Auth.AccessSecret == "" || cfg.Auth.RefreshSecret == "" {
		return nil, fmt.Errorf("config: auth.access_secret y auth.refresh_secret son obligatorios")
	}
	if len(cfg.Auth.AccessSecret) < 32 || len(cfg.Auth.RefreshSecret) < 32 {
		return nil, fmt.Errorf("config: los secretos de auth deben tener al menos 32 bytes")
	}
	if cfg.Storage.DSN == "" {
		return nil, fmt.Errorf("config: storage.dsn es obligatorio")
	}
	return cfg, nil
}

// applyEnv pisa valores del YAML con variables de entorno (si están presentes).
func (c *Config) applyEnv() {
	setStr(&c.App.Env, "APP_ENV")
	setStr(&c.Server.Addr, "SERVER_ADDR")
	setStr(&c.Storage.DSN, "DATABASE_DSN")
	setStr(&c.Auth.AccessSecret, "ACCESS_TOKEN_SECRET")
	setStr(&c.Auth.RefreshSecret, "REFRESH_TOKEN_SECRET")
	setStr(&c.Auth.AccessTTL, "ACCESS_TOKEN_TTL")
	setStr(&c.Auth.RefreshTTL, "REFRESH_TOKEN_TTL")
	setStr(&c.Auth.TokenSource, "AUTH_TOKEN_SOURCE")
	setStr(&c.Redis.Addr, "REDIS_ADDR")
	setInt(&c.Redis.DB, "REDIS_DB")
	setStr(&c.Media.Endpoint, "MEDIA_S3_ENDPOINT")
	setStr(&c.Media.Region, "MEDIA_S3_REGION")
	setStr(&c.Media.Bucket, "MEDIA_S3_BUCKET")
	setStr(&c.Media.AccessKey, "MEDIA_S3_ACCESS_KEY")
	setStr(&c.Media.SecretKey, "MEDIA_S3_SECRET_KEY")
	setStr(&c.Media.PublicBaseURL, "MEDIA_PUBLIC_BASE_URL")
	setStr(&c.Log.Level, "LOG_LEVEL")
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Auth.AccessTTL == "" {
		c.Auth.AccessTTL = "15m"
	}
	if c.Auth.RefreshTTL == "" {
		c.Auth.RefreshTTL = "168h" // 7 días
	}
	if c.Auth.TokenSource == "" {
		c.Auth.TokenSource = "cookie"
	}
	if c.Auth.Cookie.SameSite == "" {
		c.Auth.Cookie.SameSite = "lax"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.DefaultTTL == "" {
		c.Cache.DefaultTTL = "30s"
	}
	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = 10
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
	if c.Storage.Postgres.StatementTimeout == "" {
		c.Storage.Postgres.StatementTimeout = "5s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// AccessTTL devuelve la duración parseada del access token.
func (c *Config) AccessTTL() time.Duration { return mustDur(c.Auth.AccessTTL, 15*time.Minute) }

// RefreshTTL devuelve la duración parseada del refresh token.
func (c *Config) RefreshTTL() time.Duration { return mustDur(c.Auth.RefreshTTL, 168*time.Hour) }

// ConnMaxLifetime es la vida máxima de una conexión del pool.
func (c *Config) ConnMaxLifetime() time.Duration {
	return mustDur(c.Storage.Postgres.ConnMaxLifetime, 30*time.Minute)
}

// StatementTimeout devuelve el timeout por statement del store.
func (c *Config) StatementTimeout() time.Duration {
	return mustDur(c.Storage.Postgres.StatementTimeout, 5*time.Second)
}

// CacheTTL devuelve el TTL por defecto del cache.
func (c *Config) CacheTTL() time.Duration { return mustDur(c.Cache.DefaultTTL, 30*time.Second) }

// RateWindow devuelve la ventana del rate limiter.
func (c *Config) RateWindow() time.Duration { return mustDur(c.RateLimit.Window, time.Minute) }

// ReadTimeout / WriteTimeout del http.Server.
func (c *Config) ReadTimeout() time.Duration  { return mustDur(c.Server.ReadTimeout, 10*time.Second) }
func (c *Config) WriteTimeout() time.Duration { return mustDur(c.Server.WriteTimeout, 30*time.Second) }

func mustDur(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d > 0 {
		return d
	}
	return def
}

func setStr(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
