package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Listings ListingsConfig `yaml:"listings" mapstructure:"listings"`
	Results  ResultsConfig  `yaml:"results" mapstructure:"results"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port              int           `yaml:"port" mapstructure:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	// Requests per second on the search routes. Zero disables limiting.
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// ListingsConfig selects where listings are loaded from.
type ListingsConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	SqlitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ResultsConfig selects where the latest result set is persisted.
type ResultsConfig struct {
	Driver     string        `yaml:"driver" mapstructure:"driver"`
	Path       string        `yaml:"path" mapstructure:"path"`
	SqlitePath string        `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	RedisURL   string        `yaml:"redis_url" mapstructure:"redis_url"`
	RedisKey   string        `yaml:"redis_key" mapstructure:"redis_key"`
	TTL        time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// SearchConfig bounds the combination search.
type SearchConfig struct {
	MaxListingsPerLocation int `yaml:"max_listings_per_location" mapstructure:"max_listings_per_location"`
	Workers                int `yaml:"workers" mapstructure:"workers"`
	// Upper bound on the summed quantity of one request.
	MaxVehicles int `yaml:"max_vehicles" mapstructure:"max_vehicles"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Environment names kept from earlier deployments.
var legacyEnv = map[string]string{
	"server.port":           "PORT",
	"listings.path":         "LISTINGS_PATH",
	"listings.sqlite_path":  "DB_PATH",
	"listings.database_url": "DATABASE_URL",
	"results.path":          "RESULTS_PATH",
	"results.redis_url":     "REDIS_URL",
}

// Load reads configuration from an optional config.yaml and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %q", key)
		}
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("listings.driver", "json")
	v.SetDefault("listings.path", "data/seeds/listings.json")
	v.SetDefault("listings.sqlite_path", "data/app.db")
	v.SetDefault("listings.database_url", "")
	v.SetDefault("results.driver", "json")
	v.SetDefault("results.path", "results.json")
	v.SetDefault("results.sqlite_path", "data/app.db")
	v.SetDefault("results.redis_url", "")
	v.SetDefault("results.redis_key", "storage-search:results")
	v.SetDefault("results.ttl", time.Duration(0))
	v.SetDefault("search.max_listings_per_location", 20)
	v.SetDefault("search.workers", 1)
	v.SetDefault("search.max_vehicles", 10000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks driver names and the settings each driver needs.
func (c *Config) Validate() error {
	switch c.Listings.Driver {
	case "json", "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown listings.driver %q", c.Listings.Driver)
	}
	if c.Listings.Driver == "postgres" && strings.TrimSpace(c.Listings.DatabaseURL) == "" {
		return eris.New("config: listings.database_url is required for the postgres driver")
	}

	switch c.Results.Driver {
	case "json", "sqlite", "redis", "none":
	default:
		return eris.Errorf("config: unknown results.driver %q", c.Results.Driver)
	}
	if c.Results.Driver == "redis" && strings.TrimSpace(c.Results.RedisURL) == "" {
		return eris.New("config: results.redis_url is required for the redis driver")
	}

	if c.Search.MaxListingsPerLocation < 0 {
		return eris.New("config: search.max_listings_per_location must not be negative")
	}
	if c.Search.MaxVehicles < 0 {
		return eris.New("config: search.max_vehicles must not be negative")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
