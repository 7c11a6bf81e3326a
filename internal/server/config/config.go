// Package config отвечает за:
// - чтение server.yaml
// - подстановку переменных окружения вида ${JWT_SIGNING_KEY}
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал с дырявыми настройками)
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath: путь к конфигу, если не задан ADHUB_CONFIG.
const DefaultPath = "./configs/server.yaml"

// Config: корневая структура всего конфига сервера.
type Config struct {
	Env           string              `yaml:"env"` // dev|stage|prod
	Server        ServerConfig        `yaml:"server"`
	TLS           TLSConfig           `yaml:"tls"`
	DB            DBConfig            `yaml:"db"`
	Migrations    MigrationsConfig    `yaml:"migrations"`
	Auth          AuthConfig          `yaml:"auth"`
	Recovery      RecoveryConfig      `yaml:"recovery"`
	Password      PasswordConfig      `yaml:"password"`
	Mail          MailConfig          `yaml:"mail"`
	Cache         CacheConfig         `yaml:"cache"`
	Pagination    PaginationConfig    `yaml:"pagination"`
	Security      SecurityConfig      `yaml:"security"`
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`
	Bootstrap     BootstrapConfig     `yaml:"bootstrap"`
}

// ServerConfig: настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	TrustProxy        bool          `yaml:"trust_proxy"` // доверять ли заголовкам X-Forwarded-*
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxHeaderBytes    int           `yaml:"max_header_bytes"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
}

// TLSConfig: настройки HTTPS. В отличие от прода, локально можно работать по http.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"` // "1.2"|"1.3"
}

// DBConfig: настройки подключения к базе данных.
type DBConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// MigrationsConfig: настройки миграций БД.
type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // file://migrations/postgres
}

// AuthConfig: настройки аутентификации/авторизации.
type AuthConfig struct {
	Issuer     string         `yaml:"issuer"`
	Audience   string         `yaml:"audience"`
	AccessTTL  time.Duration  `yaml:"access_ttl"`
	RefreshTTL time.Duration  `yaml:"refresh_ttl"`
	JWT        JWTConfig      `yaml:"jwt"`
	Sessions   SessionsConfig `yaml:"sessions"`
}

// JWTConfig: как подписываем JWT.
type JWTConfig struct {
	Algorithm  string `yaml:"algorithm"`   // поддерживаем только HS256
	SigningKey string `yaml:"signing_key"` // может содержать ${JWT_SIGNING_KEY}
}

// SessionsConfig: настройки хранения refresh-сессий.
type SessionsConfig struct {
	RotateRefresh      bool `yaml:"rotate_refresh"`
	ReuseDetection     bool `yaml:"reuse_detection"`
	MaxSessionsPerUser int  `yaml:"max_sessions_per_user"`
}

// RecoveryConfig: подтверждение почты и сброс пароля.
//
// SigningKey подписывает идентификатор пользователя в ссылке сброса пароля,
// PublicURL: базовый адрес, от которого строятся ссылки в письмах.
type RecoveryConfig struct {
	SigningKey string `yaml:"signing_key"`
	PublicURL  string `yaml:"public_url"`
}

// PasswordConfig: настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher    string       `yaml:"hasher"` // argon2id|bcrypt
	MinLength int          `yaml:"min_length"`
	Argon2    Argon2Config `yaml:"argon2"`
	Bcrypt    BcryptConfig `yaml:"bcrypt"`
}

// Argon2Config: параметры argon2id.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
	KeyLen    uint32 `yaml:"key_len"`
	SaltLen   uint32 `yaml:"salt_len"`
}

// BcryptConfig: параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

// MailConfig: отправка писем.
type MailConfig struct {
	Transport string     `yaml:"transport"` // smtp|ses|log
	From      string     `yaml:"from"`
	SMTP      SMTPConfig `yaml:"smtp"`
	SES       SESConfig  `yaml:"ses"`
}

type SMTPConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	StartTLS bool          `yaml:"starttls"`
	Timeout  time.Duration `yaml:"timeout"`
}

type SESConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// CacheConfig: redis-кэш карточек объявлений.
type CacheConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Addr        string        `yaml:"addr"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	TTL         time.Duration `yaml:"ttl"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
}

// PaginationConfig: размер страницы списков.
type PaginationConfig struct {
	PageSize    int `yaml:"page_size"`
	MaxPageSize int `yaml:"max_page_size"`
}

// SecurityConfig: ограничения/защита.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// RateLimitConfig: rate limit по IP или по пользователю.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	Key     string  `yaml:"key"` // ip|user
}

type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAge         int      `yaml:"max_age"`
}

// LogConfig: настройки логирования (zap).
type LogConfig struct {
	Level       string          `yaml:"level"`  // debug|info|warn|error
	Format      string          `yaml:"format"` // json|console
	Dir         string          `yaml:"dir"`
	File        string          `yaml:"file"`
	Stdout      bool            `yaml:"stdout"`
	Development bool            `yaml:"development"`
	Redact      LogRedactConfig `yaml:"redact"`
}

type LogRedactConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ObservabilityConfig: метрики.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// BootstrapConfig: администратор, которого сервер создаёт при старте.
type BootstrapConfig struct {
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

// PathFromEnv возвращает путь к конфигу из ADHUB_CONFIG или DefaultPath.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv("ADHUB_CONFIG")); p != "" {
		return p
	}
	return DefaultPath
}

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, проставляет дефолты и валидирует.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	// signing_key: "${JWT_SIGNING_KEY}" -> signing_key: "реальное_значение"
	raw = []byte(ExpandEnvStrict(string(raw)))

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var envRe = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана: оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	return envRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := envRe.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults: дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Migrations.Path == "" {
		cfg.Migrations.Path = "file://migrations/postgres"
	}
	if cfg.Auth.JWT.Algorithm == "" {
		cfg.Auth.JWT.Algorithm = "HS256"
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "adhub"
	}
	if cfg.Auth.Audience == "" {
		cfg.Auth.Audience = "adhub-api"
	}
	if cfg.Auth.AccessTTL == 0 {
		cfg.Auth.AccessTTL = 15 * time.Minute
	}
	if cfg.Auth.RefreshTTL == 0 {
		cfg.Auth.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.Auth.Sessions.MaxSessionsPerUser == 0 {
		cfg.Auth.Sessions.MaxSessionsPerUser = 5
	}
	if cfg.Password.Hasher == "" {
		cfg.Password.Hasher = "argon2id"
	}
	if cfg.Password.MinLength == 0 {
		cfg.Password.MinLength = 8
	}
	if cfg.Mail.Transport == "" {
		cfg.Mail.Transport = "log"
	}
	if cfg.Mail.SMTP.Port == 0 {
		cfg.Mail.SMTP.Port = 587
	}
	if cfg.Mail.SMTP.Timeout == 0 {
		cfg.Mail.SMTP.Timeout = 10 * time.Second
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Pagination.PageSize == 0 {
		cfg.Pagination.PageSize = 4
	}
	if cfg.Pagination.MaxPageSize == 0 {
		cfg.Pagination.MaxPageSize = cfg.Pagination.PageSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Security.RateLimit.Key == "" {
		cfg.Security.RateLimit.Key = "ip"
	}
	if cfg.Observability.Metrics.Path == "" {
		cfg.Observability.Metrics.Path = "/metrics"
	}
}

// Validate проверяет, что конфиг заполнен корректно и безопасно.
// Если что-то не так: возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return errors.New("tls.cert_file и tls.key_file обязательны при tls.enabled=true")
		}
		if c.TLS.MinVersion == "" {
			c.TLS.MinVersion = "1.2"
		}
		if c.TLS.MinVersion == "1.0" || c.TLS.MinVersion == "1.1" {
			return fmt.Errorf("tls.min_version=%s небезопасен; используй 1.2 или 1.3", c.TLS.MinVersion)
		}
	}

	if c.DB.DSN == "" {
		return errors.New("db.dsn обязателен")
	}

	alg := strings.ToUpper(strings.TrimSpace(c.Auth.JWT.Algorithm))
	if alg != "HS256" {
		return fmt.Errorf("auth.jwt.algorithm должен быть HS256 (сейчас %q)", c.Auth.JWT.Algorithm)
	}
	if err := validateKey("auth.jwt.signing_key", c.Auth.JWT.SigningKey); err != nil {
		return err
	}
	if c.Auth.Sessions.MaxSessionsPerUser <= 0 {
		return errors.New("auth.sessions.max_sessions_per_user должен быть > 0")
	}

	if err := validateKey("recovery.signing_key", c.Recovery.SigningKey); err != nil {
		return err
	}
	if c.Recovery.SigningKey == c.Auth.JWT.SigningKey {
		return errors.New("recovery.signing_key должен отличаться от auth.jwt.signing_key")
	}
	u, err := url.Parse(c.Recovery.PublicURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("recovery.public_url некорректен: %q", c.Recovery.PublicURL)
	}

	switch strings.ToLower(c.Password.Hasher) {
	case "argon2id":
		if c.Password.Argon2.Time == 0 || c.Password.Argon2.MemoryKiB == 0 || c.Password.Argon2.Threads == 0 {
			return errors.New("password.argon2 должен быть настроен для argon2id")
		}
	case "bcrypt":
		if c.Password.Bcrypt.Cost == 0 {
			return errors.New("password.bcrypt.cost должен быть задан для bcrypt")
		}
	default:
		return fmt.Errorf("password.hasher должен быть argon2id|bcrypt (сейчас %q)", c.Password.Hasher)
	}

	switch strings.ToLower(c.Mail.Transport) {
	case "smtp":
		if c.Mail.SMTP.Host == "" {
			return errors.New("mail.smtp.host обязателен для mail.transport=smtp")
		}
	case "ses":
		if c.Mail.SES.Region == "" {
			return errors.New("mail.ses.region обязателен для mail.transport=ses")
		}
	case "log":
	default:
		return fmt.Errorf("mail.transport должен быть smtp|ses|log (сейчас %q)", c.Mail.Transport)
	}
	if c.Mail.Transport != "log" && c.Mail.From == "" {
		return errors.New("mail.from обязателен")
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return errors.New("cache.addr обязателен при cache.enabled=true")
	}

	if c.Pagination.PageSize <= 0 {
		return errors.New("pagination.page_size должен быть > 0")
	}
	if c.Pagination.MaxPageSize < c.Pagination.PageSize {
		return errors.New("pagination.max_page_size не может быть меньше page_size")
	}

	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.RPS <= 0 {
			return errors.New("security.rate_limit.rps должен быть > 0 при включённом rate_limit")
		}
		if c.Security.RateLimit.Burst <= 0 {
			return errors.New("security.rate_limit.burst должен быть > 0 при включённом rate_limit")
		}
		if c.Security.RateLimit.Key != "ip" && c.Security.RateLimit.Key != "user" {
			return fmt.Errorf("security.rate_limit.key должен быть ip|user (сейчас %q)", c.Security.RateLimit.Key)
		}
	}

	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		return errors.New("bootstrap.admin_email и bootstrap.admin_password задаются вместе")
	}

	return nil
}

// validateKey проверяет ключ HS256: задан, подставлен из env и достаточно длинный.
func validateKey(name, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%s обязателен", name)
	}
	if strings.Contains(key, "${") && strings.Contains(key, "}") {
		return fmt.Errorf("%s содержит неподставленную переменную: %q", name, key)
	}
	if len(key) < 32 {
		return fmt.Errorf("%s слишком короткий (%d символов); нужно >= 32", name, len(key))
	}
	return nil
}

// ApplyEnvOverrides даёт возможность переопределять
// некоторые настройки через переменные окружения без ${...} в yaml.
// Например SERVER_PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.DB.DSN = v
	}
}
