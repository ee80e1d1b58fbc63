// Package config handles configuration loading and validation.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds harness configuration shared by all commands.
type Config struct {
	RPCURL             string
	WSURL              string // optional WebSocket URL for the newHeads head tracker
	ChainID            int64
	ConfirmationBlocks uint64
	MaxTimeout         time.Duration
	PollDelay          time.Duration
	DatabasePath       string // path to the SQLite run history database
	ListenAddr         string // metrics endpoint; empty disables it
	LogLevel           string
	PrivateKey         string // hex signing key; empty selects the first dev account
}

// Defaults
const (
	DefaultRPCURL             = "http://localhost:8545"
	DefaultChainID            = 31337
	DefaultConfirmationBlocks = 0
	DefaultMaxTimeout         = 5 * time.Minute
	DefaultPollDelay          = time.Second
	DefaultDatabasePath       = "./data/chainharness.db"
	DefaultListenAddr         = ""
	DefaultLogLevel           = "info"
)

// Load reads configuration from environment variables and the given
// flag set. Flags take precedence over environment variables.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{
		RPCURL:             DefaultRPCURL,
		ChainID:            DefaultChainID,
		ConfirmationBlocks: DefaultConfirmationBlocks,
		MaxTimeout:         DefaultMaxTimeout,
		PollDelay:          DefaultPollDelay,
		DatabasePath:       DefaultDatabasePath,
		ListenAddr:         DefaultListenAddr,
		LogLevel:           DefaultLogLevel,
	}

	// Environment variables first
	if v := os.Getenv("RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("WS_URL"); v != "" {
		cfg.WSURL = v
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			cfg.ChainID = id
		}
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		cfg.PrivateKey = v
	}

	var (
		rpcURL     = fs.String("rpc-url", cfg.RPCURL, "Chain JSON-RPC URL")
		wsURL      = fs.String("ws-url", cfg.WSURL, "WebSocket URL for head tracking (optional)")
		chainID    = fs.Int64("chain-id", cfg.ChainID, "Chain ID")
		confBlocks = fs.Uint64("confirmation-blocks", cfg.ConfirmationBlocks, "Confirmation depth before a receipt counts as final")
		maxTimeout = fs.Duration("max-timeout", cfg.MaxTimeout, "Wall-clock limit for confirmation monitoring")
		pollDelay  = fs.Duration("poll-delay", cfg.PollDelay, "Delay between receipt poll rounds")
		dbPath     = fs.String("db-path", cfg.DatabasePath, "SQLite database path for run history")
		listenAddr = fs.String("listen-addr", cfg.ListenAddr, "Metrics listen address (empty disables)")
		logLevel   = fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		privateKey = fs.String("private-key", cfg.PrivateKey, "Hex signing key (defaults to the first dev account)")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.RPCURL = *rpcURL
	cfg.WSURL = *wsURL
	cfg.ChainID = *chainID
	cfg.ConfirmationBlocks = *confBlocks
	cfg.MaxTimeout = *maxTimeout
	cfg.PollDelay = *pollDelay
	cfg.DatabasePath = *dbPath
	cfg.ListenAddr = *listenAddr
	cfg.LogLevel = *logLevel
	cfg.PrivateKey = *privateKey

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc-url must not be empty")
	}
	if !strings.HasPrefix(c.RPCURL, "http://") && !strings.HasPrefix(c.RPCURL, "https://") {
		return fmt.Errorf("rpc-url must be an http(s) URL, got %q", c.RPCURL)
	}
	if c.WSURL != "" && !strings.HasPrefix(c.WSURL, "ws://") && !strings.HasPrefix(c.WSURL, "wss://") {
		return fmt.Errorf("ws-url must be a ws(s) URL, got %q", c.WSURL)
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("chain-id must be positive, got %d", c.ChainID)
	}
	if c.MaxTimeout < 0 {
		return fmt.Errorf("max-timeout must not be negative, got %s", c.MaxTimeout)
	}
	if c.PollDelay < 0 {
		return fmt.Errorf("poll-delay must not be negative, got %s", c.PollDelay)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn, error)", level)
	}
}
