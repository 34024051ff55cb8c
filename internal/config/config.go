package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	ErrEmptyAddress   = errors.New("server address is empty")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrUnknownEnv     = errors.New("unknown environment")
)

type Config struct {
	Env        string     `mapstructure:"-"`
	Server     server     `mapstructure:"server"`
	HTTP       httpServer `mapstructure:"http"`
	Storage    storage    `mapstructure:"storage"`
	Connection connection `mapstructure:"connection"`
	Logger     logger     `mapstructure:"logger"`
}

type server struct {
	Address     string        `mapstructure:"address"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

type httpServer struct {
	// Пустой адрес отключает HTTP сервер.
	Address string `mapstructure:"address"`
}

type storage struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type connection struct {
	LogPath string `mapstructure:"log_path"`
}

type logger struct {
	LogLevel string `mapstructure:"level"`
}

// New returns a viper instance with defaults and environment binding applied.
// Keys are dotted (server.address) and map to SERVER_ADDRESS in the environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", EnvLocal)
	v.SetDefault("server.address", ":3077")
	v.SetDefault("server.idle_timeout", time.Duration(0))
	v.SetDefault("http.address", "")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.dir", ".")
	v.SetDefault("storage.sqlite_path", "linekeeper.db")
	v.SetDefault("connection.log_path", "connection_log.log")
	v.SetDefault("logger.level", "")

	_ = v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT", "IDLE_TIMEOUT")
	_ = v.BindEnv("logger.level", "LOGGER_LEVEL", "LOG_LEVEL")

	return v
}

// Load reads an optional YAML file and the environment into Config.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	// Unmarshal goes through AllSettings, so env overrides of nested keys apply.
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Env = v.GetString("app.env")

	return &cfg, nil
}

// LoadDotEnv подхватывает .env из рабочего каталога, если он есть.
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv() {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Address) == "" {
		errs = append(errs, ErrEmptyAddress)
	}
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend))
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownEnv, c.Env))
	}
	return errors.Join(errs...)
}
