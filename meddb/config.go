package meddb

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// DefaultURI is the connection URI used when none is configured.
	DefaultURI = "mongodb://localhost:27017"

	// DefaultDatabase is the database name used by DefaultConfig.
	DefaultDatabase = "medimorph_db"

	// DefaultConnectTimeout is the default timeout for the initial connect.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultSocketTimeout is the default timeout for socket reads and writes.
	DefaultSocketTimeout = 20 * time.Second

	// DefaultServerSelectionTimeout is the default timeout for choosing a server.
	DefaultServerSelectionTimeout = 5 * time.Second

	// DefaultMaxPoolSize is the default maximum number of pooled connections.
	DefaultMaxPoolSize uint64 = 50

	// DefaultDisconnectTimeout is the default timeout for the disconnect.
	DefaultDisconnectTimeout = 10 * time.Second

	// DefaultPingTimeout is the default timeout for the liveness ping.
	DefaultPingTimeout = 2 * time.Second

	// DefaultCollectionTimeout is the default timeout for collection access.
	DefaultCollectionTimeout = time.Second

	// DefaultIndexTimeout is the default timeout for index creation.
	DefaultIndexTimeout = 5 * time.Second
)

// Config items for the MongoDB connection.
type Config struct {
	// URI of the MongoDB server.
	URI string

	// Database name. Connect fails with ErrNoDatabaseName if empty.
	Database string

	// Timeout for the initial dial.
	ConnectTimeout time.Duration

	// Timeout for socket reads and writes.
	SocketTimeout time.Duration

	// Timeout for server selection.
	ServerSelectionTimeout time.Duration

	// Maximum number of pooled connections.
	MaxPoolSize uint64

	// Retry transiently failed writes once at the driver level.
	RetryWrites bool

	// Base context for calls to Mongo.
	Ctx context.Context

	// Logger for diagnostics. Defaults to a no-op logger.
	// Errors bubble up and are handled by client code.
	Logger *zap.Logger

	Timeout
}

// Timeout settings for operations after the connection is up.
type Timeout struct {
	// Timeout for the disconnect.
	Disconnect time.Duration

	// Timeout for the ping to make sure the connection is up.
	Ping time.Duration

	// Timeout for collection access.
	Collection time.Duration

	// Timeout for index creation.
	Index time.Duration
}

// DefaultConfig returns the configuration of the stock deployment:
// local server, database medimorph_db, retryWrites on.
// The MONGODB_URI and MONGODB_DATABASE environment variables override
// the address and database name.
func DefaultConfig() *Config {
	return &Config{
		URI:                    getEnv("MONGODB_URI", DefaultURI),
		Database:               getEnv("MONGODB_DATABASE", DefaultDatabase),
		ConnectTimeout:         DefaultConnectTimeout,
		SocketTimeout:          DefaultSocketTimeout,
		ServerSelectionTimeout: DefaultServerSelectionTimeout,
		MaxPoolSize:            DefaultMaxPoolSize,
		RetryWrites:            true,
	}
}

// fileConfig is the YAML shape of a config file.
// Timeouts are in milliseconds; pointer fields distinguish an explicit
// zero or false from an omitted key.
type fileConfig struct {
	URI                      string  `yaml:"uri"`
	Database                 string  `yaml:"database"`
	ConnectTimeoutMS         int64   `yaml:"connect_timeout_ms"`
	SocketTimeoutMS          int64   `yaml:"socket_timeout_ms"`
	ServerSelectionTimeoutMS int64   `yaml:"server_selection_timeout_ms"`
	MaxPoolSize              *uint64 `yaml:"max_pool_size"`
	RetryWrites              *bool   `yaml:"retry_writes"`
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig.
// Omitted keys keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	config := DefaultConfig()
	if file.URI != "" {
		config.URI = file.URI
	}
	if file.Database != "" {
		config.Database = file.Database
	}
	if file.ConnectTimeoutMS > 0 {
		config.ConnectTimeout = time.Duration(file.ConnectTimeoutMS) * time.Millisecond
	}
	if file.SocketTimeoutMS > 0 {
		config.SocketTimeout = time.Duration(file.SocketTimeoutMS) * time.Millisecond
	}
	if file.ServerSelectionTimeoutMS > 0 {
		config.ServerSelectionTimeout = time.Duration(file.ServerSelectionTimeoutMS) * time.Millisecond
	}
	if file.MaxPoolSize != nil {
		config.MaxPoolSize = *file.MaxPoolSize
	}
	if file.RetryWrites != nil {
		config.RetryWrites = *file.RetryWrites
	}

	return config, nil
}

func fixConfig(config *Config) *Config {
	if config == nil {
		config = DefaultConfig()
	}

	if config.URI == "" {
		config.URI = DefaultURI
	}

	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}

	if config.SocketTimeout == 0 {
		config.SocketTimeout = DefaultSocketTimeout
	}

	if config.ServerSelectionTimeout == 0 {
		config.ServerSelectionTimeout = DefaultServerSelectionTimeout
	}

	if config.MaxPoolSize == 0 {
		config.MaxPoolSize = DefaultMaxPoolSize
	}

	if config.Timeout.Disconnect == 0 {
		config.Timeout.Disconnect = DefaultDisconnectTimeout
	}

	if config.Timeout.Ping == 0 {
		config.Timeout.Ping = DefaultPingTimeout
	}

	if config.Timeout.Collection == 0 {
		config.Timeout.Collection = DefaultCollectionTimeout
	}

	if config.Timeout.Index == 0 {
		config.Timeout.Index = DefaultIndexTimeout
	}

	return config
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
