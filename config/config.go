package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	RPC      RPCConfig      `mapstructure:"rpc"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"` // full DSN, overrides discrete fields
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	Algorithm string        `mapstructure:"algorithm"` // HS256, HS384, HS512
	Expiry    time.Duration `mapstructure:"expiry"`
	Issuer    string        `mapstructure:"issuer"`
}

// RPCConfig holds the chain RPC endpoints that minted assets are recorded
// against. The API only derives and stores account addresses; it never
// submits transactions itself.
type RPCConfig struct {
	SolanaURL string `mapstructure:"solana_url"`
	XRPLURL   string `mapstructure:"xrpl_url"`
}

// PricingConfig holds external pricing-feed credentials. Empty keys disable
// the external feed and bulk price updates fall back to the base table.
type PricingConfig struct {
	FeedURL      string `mapstructure:"feed_url"`
	MetalsAPIKey string `mapstructure:"metals_api_key"`
	GemsAPIKey   string `mapstructure:"gems_api_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: VWA_.
// Nested keys use underscore: VWA_DATABASE_HOST, VWA_JWT_SECRET, etc.
// The flat deployment env-file keys (DATABASE_URL, SECRET_KEY,
// TOKEN_ALGORITHM, SOLANA_RPC_URL, XRPL_RPC_URL, METALS_API_KEY,
// GEMS_API_KEY) are bound as unprefixed aliases.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "vwa_user")
	v.SetDefault("database.password", "vwa_password")
	v.SetDefault("database.dbname", "vwa_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "vwa-api")
	v.SetDefault("rpc.solana_url", "")
	v.SetDefault("rpc.xrpl_url", "")
	v.SetDefault("pricing.feed_url", "")
	v.SetDefault("pricing.metals_api_key", "")
	v.SetDefault("pricing.gems_api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: VWA_DATABASE_HOST -> database.host
	v.SetEnvPrefix("VWA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flat env-file aliases used by the deploy scripts.
	_ = v.BindEnv("database.url", "VWA_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("jwt.secret", "VWA_JWT_SECRET", "SECRET_KEY")
	_ = v.BindEnv("jwt.algorithm", "VWA_JWT_ALGORITHM", "TOKEN_ALGORITHM")
	_ = v.BindEnv("rpc.solana_url", "VWA_RPC_SOLANA_URL", "SOLANA_RPC_URL")
	_ = v.BindEnv("rpc.xrpl_url", "VWA_RPC_XRPL_URL", "XRPL_RPC_URL")
	_ = v.BindEnv("pricing.metals_api_key", "VWA_PRICING_METALS_API_KEY", "METALS_API_KEY")
	_ = v.BindEnv("pricing.gems_api_key", "VWA_PRICING_GEMS_API_KEY", "GEMS_API_KEY")

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
