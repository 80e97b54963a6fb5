package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig throttles outbound provider requests. Limits apply per
// upstream host.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ProvidersConfig holds the base URL for every upstream bridge provider.
// Hop ships a static dataset and has no URL.
type ProvidersConfig struct {
	LiFiURL     string `mapstructure:"lifi_url"`
	SquidURL    string `mapstructure:"squid_url"`
	SocketURL   string `mapstructure:"socket_url"`
	StargateURL string `mapstructure:"stargate_url"`
	WormholeURL string `mapstructure:"wormhole_url"`
	AxelarURL   string `mapstructure:"axelar_url"`
	CelerURL    string `mapstructure:"celer_url"`
	SynapseURL  string `mapstructure:"synapse_url"`
	AcrossURL   string `mapstructure:"across_url"`
	ButterURL   string `mapstructure:"butter_url"`
	DeBridgeURL string `mapstructure:"debridge_url"`
}

// RegistryConfig holds the chain-metadata catalog configuration used by the
// post-ingestion enrichment pass.
type RegistryConfig struct {
	PrimaryURL  string `mapstructure:"primary_url"`
	FallbackURL string `mapstructure:"fallback_url"`
	MaxRetries  uint64 `mapstructure:"max_retries"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration for the trigger endpoint
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// FetcherConfig holds configuration for the fetcher batch job
type FetcherConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Providers  ProvidersConfig `mapstructure:"providers"`
	Registry   RegistryConfig  `mapstructure:"registry"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Database   DatabaseConfig  `mapstructure:"database"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Providers  ProvidersConfig `mapstructure:"providers"`
	Registry   RegistryConfig  `mapstructure:"registry"`
}

// LoadFetcherConfig loads configuration for the fetcher batch job
func LoadFetcherConfig(configFile string, envPath string) (*FetcherConfig, error) {
	v := configureViper("fetcher", configFile, envPath)
	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg FetcherConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)
	setCommonDefaults(v)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120) // a full fetch pass can take a while
	v.SetDefault("server.idle_timeout", 120)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "10m")

	v.SetDefault("http.timeout", "30s")

	v.SetDefault("rate_limit.requests_per_second", 4)
	v.SetDefault("rate_limit.burst", 8)

	v.SetDefault("providers.lifi_url", "https://li.quest/v1")
	v.SetDefault("providers.squid_url", "https://api.squidrouter.com/v1")
	v.SetDefault("providers.socket_url", "https://api.socket.tech/v2")
	v.SetDefault("providers.stargate_url", "https://stargate.finance/api/v1")
	v.SetDefault("providers.wormhole_url", "https://api.wormholescan.io/api/v1")
	v.SetDefault("providers.axelar_url", "https://api.axelarscan.io")
	v.SetDefault("providers.celer_url", "https://cbridge-prod2.celer.app/v2")
	v.SetDefault("providers.synapse_url", "https://api.synapseprotocol.com")
	v.SetDefault("providers.across_url", "https://app.across.to/api")
	v.SetDefault("providers.butter_url", "https://bs-tokens-api.chainservice.io")
	v.SetDefault("providers.debridge_url", "https://dln.debridge.finance/v1.0")

	v.SetDefault("registry.primary_url", "https://chainid.network/chains.json")
	v.SetDefault("registry.fallback_url", "https://chainlist.org/rpcs.json")
	v.SetDefault("registry.max_retries", 3)
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func validateDatabase(db *DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("TOKEN_AGGREGATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to config struct fields when no config
// file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// HTTP
		"http.timeout",
		// Rate limiting
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		// Providers
		"providers.lifi_url",
		"providers.squid_url",
		"providers.socket_url",
		"providers.stargate_url",
		"providers.wormhole_url",
		"providers.axelar_url",
		"providers.celer_url",
		"providers.synapse_url",
		"providers.across_url",
		"providers.butter_url",
		"providers.debridge_url",
		// Registry
		"registry.primary_url",
		"registry.fallback_url",
		"registry.max_retries",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.api_keys",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
