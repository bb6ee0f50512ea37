package meddb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DATABASE", "")
	config := DefaultConfig()
	assert.Equal(t, "mongodb://localhost:27017", config.URI)
	assert.Equal(t, "medimorph_db", config.Database)
	assert.Equal(t, 10*time.Second, config.ConnectTimeout)
	assert.Equal(t, 20*time.Second, config.SocketTimeout)
	assert.Equal(t, 5*time.Second, config.ServerSelectionTimeout)
	assert.Equal(t, uint64(50), config.MaxPoolSize)
	assert.True(t, config.RetryWrites)
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.example.com:27017")
	t.Setenv("MONGODB_DATABASE", "medimorph_test")
	config := DefaultConfig()
	assert.Equal(t, "mongodb://db.example.com:27017", config.URI)
	assert.Equal(t, "medimorph_test", config.Database)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DATABASE", "")
	path := filepath.Join(t.TempDir(), "meddb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"uri: mongodb://db.example.com:27017\n"+
			"connect_timeout_ms: 2500\n"+
			"max_pool_size: 10\n"+
			"retry_writes: false\n"), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.example.com:27017", config.URI)
	assert.Equal(t, 2500*time.Millisecond, config.ConnectTimeout)
	assert.Equal(t, uint64(10), config.MaxPoolSize)
	assert.False(t, config.RetryWrites)
	// Omitted keys keep their defaults.
	assert.Equal(t, "medimorph_db", config.Database)
	assert.Equal(t, 20*time.Second, config.SocketTimeout)
	assert.Equal(t, 5*time.Second, config.ServerSelectionTimeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meddb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uri: [unclosed\n"), 0o600))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFixConfig(t *testing.T) {
	config := fixConfig(&Config{Database: "somewhere"})
	assert.Equal(t, DefaultURI, config.URI)
	assert.NotNil(t, config.Ctx)
	assert.NotNil(t, config.Logger)
	assert.Equal(t, DefaultConnectTimeout, config.ConnectTimeout)
	assert.Equal(t, DefaultSocketTimeout, config.SocketTimeout)
	assert.Equal(t, DefaultServerSelectionTimeout, config.ServerSelectionTimeout)
	assert.Equal(t, DefaultMaxPoolSize, config.MaxPoolSize)
	assert.Equal(t, DefaultDisconnectTimeout, config.Timeout.Disconnect)
	assert.Equal(t, DefaultPingTimeout, config.Timeout.Ping)
	assert.Equal(t, DefaultCollectionTimeout, config.Timeout.Collection)
	assert.Equal(t, DefaultIndexTimeout, config.Timeout.Index)
}

func TestConnectNoDatabaseName(t *testing.T) {
	_, err := Connect(&Config{URI: DefaultURI, Database: ""})
	assert.ErrorIs(t, err, ErrNoDatabaseName)
}
