package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingdeck/internal/config"
	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/hosts"
	"github.com/rileyhilliard/pingdeck/internal/logger"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

func TestNewSession(t *testing.T) {
	useFakeProbers(t)
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeHTTP
	cfg.Chart = true
	cfg.ExportDir = t.TempDir()

	sess, err := newSession(cfg, hosts.Source{List: "10.0.0.1 10.0.0.2,10.0.0.1"})
	require.NoError(t, err)
	t.Cleanup(sess.close)

	assert.Equal(t, stats.KindHTTP, sess.store.Kind())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, sess.store.Hosts())
	assert.Len(t, sess.sup.Hosts(), 2)
	assert.Equal(t, cfg.ExportDir, sess.exporter.Dir)
	assert.True(t, sess.exporter.Chart)
	assert.Nil(t, sess.api, "API is off without listen")
}

func TestNewSession_WithAPI(t *testing.T) {
	useFakeProbers(t)
	cfg := config.DefaultConfig()
	cfg.Listen = "127.0.0.1:0"

	sess, err := newSession(cfg, hosts.Source{List: "10.0.0.1"})
	require.NoError(t, err)
	t.Cleanup(sess.close)
	assert.NotNil(t, sess.api)
}

func TestNewSession_NoHosts(t *testing.T) {
	useFakeProbers(t)

	_, err := newSession(config.DefaultConfig(), hosts.Source{NmapFile: filepath.Join(t.TempDir(), "missing.xml")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrHosts))
}

func TestRedirectLog(t *testing.T) {
	t.Cleanup(func() { logger.SetDebug(false) })

	t.Run("discarded without debug", func(t *testing.T) {
		dir := t.TempDir()
		logger.SetDebug(false)
		t.Setenv(logger.DebugEnv, "")

		restore, err := redirectLog(dir)
		require.NoError(t, err)
		logger.NewEnvLogger("[test]").Info("hidden")
		restore()

		assert.NoFileExists(t, filepath.Join(dir, LogFileName))
	})

	t.Run("written to file with debug", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		logger.SetDebug(true)

		restore, err := redirectLog(dir)
		require.NoError(t, err)
		logger.NewEnvLogger("[test]").Debug("visible %d", 42)
		restore()

		data, err := os.ReadFile(filepath.Join(dir, LogFileName))
		require.NoError(t, err)
		assert.Contains(t, string(data), "[test] visible 42")
	})
}
