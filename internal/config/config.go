package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config - неизменяемая конфигурация процесса.
// Загружается один раз при старте и передается явно в HTTP-слой и инициализатор БД.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"` // bcrypt-хеш или plaintext (см. auth.VerifyPassword)
	} `yaml:"admin"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	API struct {
		// Разрешенные Origin/Referer, поддерживаются wildcard-поддомены: https://*.example.com
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"api"`

	Uploads struct {
		Dir       string   `yaml:"dir"`        // локальная директория
		URLPrefix string   `yaml:"url_prefix"` // публичный префикс, например /uploads
		MaxSize   int64    `yaml:"max_size"`   // байты
		Allowed   []string `yaml:"allowed"`    // расширения файлов
	} `yaml:"uploads"`
}

// Load читает config.yaml (путь из CONFIG_PATH), затем применяет
// переменные окружения поверх. .env подхватывается, если есть.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			f.Close()
			return nil, err
		}
		f.Close()
	}

	applyEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.Server.Env = "development"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "password"
	cfg.JWT.Secret = "super-secret-key"
	cfg.JWT.TTL = 12 * 60
	cfg.Uploads.Dir = "uploads"
	cfg.Uploads.URLPrefix = "/uploads"
	cfg.Uploads.MaxSize = 10 * 1024 * 1024
	cfg.Uploads.Allowed = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("SESSION_SECRET_KEY"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.API.AllowedOrigins = SplitOrigins(v)
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		cfg.Uploads.Dir = v
	}
	if v := os.Getenv("UPLOADS_URL_PREFIX"); v != "" {
		cfg.Uploads.URLPrefix = v
	}
}

func normalize(cfg *Config) {
	if !filepath.IsAbs(cfg.Uploads.Dir) {
		if wd, err := os.Getwd(); err == nil {
			cfg.Uploads.Dir = filepath.Join(wd, cfg.Uploads.Dir)
		}
	}

	prefix := strings.TrimSpace(cfg.Uploads.URLPrefix)
	if prefix == "" {
		prefix = "/uploads"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	cfg.Uploads.URLPrefix = strings.TrimRight(prefix, "/")
	if cfg.Uploads.URLPrefix == "" {
		cfg.Uploads.URLPrefix = "/uploads"
	}

	cleaned := make([]string, 0, len(cfg.API.AllowedOrigins))
	for _, origin := range cfg.API.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	cfg.API.AllowedOrigins = cleaned
}

// SplitOrigins разбирает список origin-ов из строки через запятую
func SplitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
