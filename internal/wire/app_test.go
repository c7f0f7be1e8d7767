package wire

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/config"
)

func TestBuildAppWithSQLite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))

	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	defer app.Close()

	n := app.Session.Add(context.Background())
	assert.NotEmpty(t, n.ID)
	assert.FileExists(t, filepath.Join(v.GetString("data_dir"), "inkleaf.db"))
}

func TestBuildAppRejectsInvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))
	v.Set("storage_url", "ftp://nope")

	_, err := BuildApp(context.Background(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage_url")
}

func TestNewLoggerLevels(t *testing.T) {
	l, err := NewLogger(config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = NewLogger(config.LogConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}
