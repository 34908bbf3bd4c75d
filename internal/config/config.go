package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meshforge/meshlink-server/pkg/meshproto"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
	Link     LinkConfig     `yaml:"link"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// APIConfig represents API configuration
type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// NATSConfig represents NATS configuration
type NATSConfig struct {
	URL               string        `yaml:"url"`
	Username          string        `yaml:"username"`
	Password          string        `yaml:"password"`
	MaxReconnects     int           `yaml:"max_reconnects"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
}

// JWTConfig represents JWT configuration
type JWTConfig struct {
	Secret          string        `yaml:"secret"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LinkConfig represents channel link generation configuration
type LinkConfig struct {
	BaseURL  string `yaml:"base_url"`
	Region   string `yaml:"region"`
	Preset   string `yaml:"preset"`
	HopLimit uint32 `yaml:"hop_limit"`
	TxPower  uint32 `yaml:"tx_power"`
}

// Load loads configuration from file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
	}

	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		c.NATS.URL = natsURL
	}

	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		c.JWT.Secret = jwtSecret
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Log.Level = logLevel
	}

	if baseURL := os.Getenv("LINK_BASE_URL"); baseURL != "" {
		c.Link.BaseURL = baseURL
	}
}

// setDefaults fills unset fields with working defaults
func (c *Config) setDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "meshlink-server"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.JWT.AccessTokenTTL == 0 {
		c.JWT.AccessTokenTTL = 15 * time.Minute
	}
	if c.JWT.RefreshTokenTTL == 0 {
		c.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Link.BaseURL == "" {
		c.Link.BaseURL = meshproto.DefaultBaseURL
	}
	if c.Link.Region == "" {
		c.Link.Region = meshproto.DefaultRegion.String()
	}
	if c.Link.Preset == "" {
		c.Link.Preset = meshproto.DefaultPreset.String()
	}
	if c.Link.HopLimit == 0 {
		c.Link.HopLimit = meshproto.DefaultHopLimit
	}
	if c.Link.TxPower == 0 {
		c.Link.TxPower = meshproto.DefaultTxPower
	}
}

// validate checks configuration constraints
func (c *Config) validate() error {
	if c.Link.HopLimit > meshproto.MaxHopLimit {
		return fmt.Errorf("link hop_limit %d exceeds protocol maximum %d",
			c.Link.HopLimit, meshproto.MaxHopLimit)
	}
	if _, err := ParseRegion(c.Link.Region); err != nil {
		return err
	}
	if _, err := ParsePreset(c.Link.Preset); err != nil {
		return err
	}
	return nil
}

// ParseRegion maps a region name to its protocol code
func ParseRegion(name string) (meshproto.Region, error) {
	for r := meshproto.RegionUnset; r <= meshproto.RegionIN; r++ {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", name)
}

// ParsePreset maps a modem preset name to its protocol code
func ParsePreset(name string) (meshproto.ModemPreset, error) {
	for p := meshproto.PresetLongFast; p <= meshproto.PresetLongModerate; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown modem preset %q", name)
}

// RadioDefaults builds the radio config from the link settings
func (c *LinkConfig) RadioDefaults() (*meshproto.LoRaConfig, error) {
	region, err := ParseRegion(c.Region)
	if err != nil {
		return nil, err
	}
	preset, err := ParsePreset(c.Preset)
	if err != nil {
		return nil, err
	}
	return &meshproto.LoRaConfig{
		Region:      region,
		ModemPreset: preset,
		HopLimit:    c.HopLimit,
		TxEnabled:   true,
		TxPower:     c.TxPower,
	}, nil
}
