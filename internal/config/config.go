// Package config loads server configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig holds the transport settings.
type ServerConfig struct {
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	// TickInterval is how often the host drives time-based transitions
	// (auction timeouts).
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// WebSocketConfig holds the websocket gateway settings.
type WebSocketConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds the Postgres connection settings for snapshot
// persistence. Persistence is optional; an empty URL disables it.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// GameConfig carries the default rule settings for new games.
type GameConfig struct {
	StartingCash       int           `mapstructure:"starting_cash"`
	GoBonus            int           `mapstructure:"go_bonus"`
	JailFine           int           `mapstructure:"jail_fine"`
	BidMinIncrement    int           `mapstructure:"bid_min_increment"`
	AuctionStartingBid int           `mapstructure:"auction_starting_bid"`
	AuctionInactivity  time.Duration `mapstructure:"auction_inactivity"`
	AuctionMaxDuration time.Duration `mapstructure:"auction_max_duration"`
	MaxPlayers         int           `mapstructure:"max_players"`
}

// Load reads the configuration file at path, applying defaults and
// MONOPOLY_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.websocket.read_timeout", 60*time.Second)
	v.SetDefault("server.websocket.write_timeout", 10*time.Second)
	v.SetDefault("server.tick_interval", time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("game.starting_cash", 1500)
	v.SetDefault("game.go_bonus", 200)
	v.SetDefault("game.jail_fine", 50)
	v.SetDefault("game.bid_min_increment", 10)
	v.SetDefault("game.auction_starting_bid", 10)
	v.SetDefault("game.auction_inactivity", 30*time.Second)
	v.SetDefault("game.auction_max_duration", 5*time.Minute)
	v.SetDefault("game.max_players", 8)

	v.SetEnvPrefix("MONOPOLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
