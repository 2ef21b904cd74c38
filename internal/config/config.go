package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultPath = "config.yml"

type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	Repository RepositoryConfig `yaml:"repository" mapstructure:"repository"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Worker     WorkerConfig     `yaml:"worker" mapstructure:"worker"`
}

type ServerConfig struct {
	Port           string        `yaml:"port" mapstructure:"port"`
	Host           string        `yaml:"host" mapstructure:"host"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	RateLimit      int           `yaml:"rate_limit" mapstructure:"rate_limit"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url" mapstructure:"url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinConnections int           `yaml:"min_connections" mapstructure:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `yaml:"development" mapstructure:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type" mapstructure:"type"` // "inmemory", "sqlite" or "postgres"
	Path string `yaml:"path" mapstructure:"path"` // sqlite file
}

type StorageConfig struct {
	ActiveKey    string `yaml:"active_key" mapstructure:"active_key"`
	CompletedKey string `yaml:"completed_key" mapstructure:"completed_key"`
}

type WorkerConfig struct {
	RolloverInterval time.Duration `yaml:"rollover_interval" mapstructure:"rollover_interval"`
}

const (
	RepoInMemory = "inmemory"
	RepoSQLite   = "sqlite"
	RepoPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)

	v.SetDefault("logging.development", false)

	v.SetDefault("repository.type", RepoSQLite)
	v.SetDefault("repository.path", "goals.db")

	v.SetDefault("storage.active_key", "dailyGoals")
	v.SetDefault("storage.completed_key", "completedGoals")

	v.SetDefault("worker.rollover_interval", time.Minute)
}

// Load reads path (YAML) on top of the defaults. A missing file is fine;
// GOALS_* environment variables override both, e.g. GOALS_REPOSITORY_TYPE.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GOALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepoInMemory, RepoSQLite:
	case RepoPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url обязателен для repository.type=postgres")
		}
	default:
		return fmt.Errorf("неизвестный repository.type %q", c.Repository.Type)
	}
	if c.Storage.ActiveKey == "" || c.Storage.CompletedKey == "" {
		return errors.New("storage keys не могут быть пустыми")
	}
	if c.Storage.ActiveKey == c.Storage.CompletedKey {
		return errors.New("storage.active_key и storage.completed_key должны различаться")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
