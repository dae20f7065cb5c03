package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultLookupURL is the music URL lookup API used when none is configured.
const DefaultLookupURL = "https://source.shiqianjiang.cn/api/music"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	Lookup                struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"lookup"`
	Search struct {
		QQURL      string `mapstructure:"qq_url"`
		NeteaseURL string `mapstructure:"netease_url"`
		Limit      int    `mapstructure:"limit"`
	} `mapstructure:"search"`
	Download struct {
		OutputDir   string `mapstructure:"output_dir"`
		TagMetadata bool   `mapstructure:"tag_metadata"`
	} `mapstructure:"download"`
	Server struct {
		Port           int    `mapstructure:"port"`
		Address        string `mapstructure:"address"`
		RequestTimeout string `mapstructure:"request_timeout"` // applies to Resolve and Search RPCs, empty disables
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	LogLevel string `mapstructure:"log_level"`
	Cache    struct {
		Enabled  bool   `mapstructure:"enabled"`
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	SetLogLevel(config.LogLevel)
	globalConfig = config
	logger.Debug().Msg("Configuration loaded successfully")
}

// SetLogLevel parses level and applies it globally, falling back to info.
func SetLogLevel(levelName string) {
	level := zerolog.InfoLevel // default
	if levelName != "" {
		if parsedLevel, err := zerolog.ParseLevel(levelName); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", levelName).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
	logger.Debug().Str("level", level.String()).Msg("Logging configured")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("lookup.base_url", DefaultLookupURL)
	v.SetDefault("lookup.api_key", "")
	v.SetDefault("search.qq_url", "https://c.y.qq.com/soso/fcgi-bin/client_search_cp")
	v.SetDefault("search.netease_url", "https://music.163.com/api/search/get/")
	v.SetDefault("search.limit", 10)
	v.SetDefault("download.output_dir", "music-downloads")
	v.SetDefault("download.tag_metadata", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.request_timeout", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("log_level", "info")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 500)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
}

// LoadConfig reads config.yaml from the working directory or ./config and
// overlays APP_* environment variables (e.g. APP_LOOKUP_API_KEY).
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile behaves like LoadConfig but reads the given file when path is non-empty.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

// SetConfig replaces the process-wide configuration, used by hosts that load
// an explicit config file.
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}

// ParseDuration parses a Go duration string, returning fallback when the value
// is empty or invalid. Invalid values are logged.
func ParseDuration(name, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str(name, value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}
