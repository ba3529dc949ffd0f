package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingdeck/internal/config"
	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/hosts"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keeps config",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.ModeHTTP, cfg.Mode)
				assert.Equal(t, 8080, cfg.Port)
				assert.Equal(t, 3*time.Second, cfg.Interval)
				assert.False(t, cfg.Privileged)
			},
		},
		{
			name: "http=false switches back to icmp",
			args: []string{"--http=false"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.ModeICMP, cfg.Mode)
			},
		},
		{
			name: "timings and port",
			args: []string{"--port", "9000", "--interval", "500ms", "--grace", "1s"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 9000, cfg.Port)
				assert.Equal(t, 500*time.Millisecond, cfg.Interval)
				assert.Equal(t, time.Second, cfg.Grace)
			},
		},
		{
			name: "export and api settings",
			args: []string{"--export-dir", "/tmp/out", "--chart", "--listen", "127.0.0.1:9999", "--privileged"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/tmp/out", cfg.ExportDir)
				assert.True(t, cfg.Chart)
				assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
				assert.True(t, cfg.Privileged)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Mode = config.ModeHTTP
			cfg.Port = 8080
			cfg.Interval = 3 * time.Second
			cfg.Privileged = false

			cmd, f := flagCmd(t, tt.args...)
			applyOverrides(cmd, cfg, f)
			tt.check(t, cfg)
		})
	}
}

func TestHostSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hosts = []string{"192.168.1.1"}
	cfg.SSHConfig = "/etc/ssh/ssh_config"

	tests := []struct {
		name string
		args []string
		f    sessionFlags
		want hosts.Source
	}{
		{
			name: "hosts flag wins",
			args: []string{"scan.xml"},
			f:    sessionFlags{Hosts: "10.0.0.1", SSHConfig: "/x"},
			want: hosts.Source{List: "10.0.0.1"},
		},
		{
			name: "ssh config flag before xml arg",
			args: []string{"scan.xml"},
			f:    sessionFlags{SSHConfig: "/x"},
			want: hosts.Source{SSHConfig: "/x"},
		},
		{
			name: "xml arg before config file",
			args: []string{"scan.xml"},
			want: hosts.Source{NmapFile: "scan.xml"},
		},
		{
			name: "config file sources",
			want: hosts.Source{Static: []string{"192.168.1.1"}, SSHConfig: "/etc/ssh/ssh_config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hostSource(tt.args, cfg, &tt.f))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName),
		[]byte("mode: http\nport: 8443\ninterval: 2s\n"), 0o644))

	cmd, f := flagCmd(t, "--interval", "250ms")
	cfg, err := loadConfig(cmd, &globalFlags{}, f)
	require.NoError(t, err)

	assert.Equal(t, config.ModeHTTP, cfg.Mode)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PINGDECK_PORT", "")
	require.NoError(t, os.Unsetenv("PINGDECK_PORT"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PINGDECK_PORT=8181\n"), 0o644))

	cmd, f := flagCmd(t)
	cfg, err := loadConfig(cmd, &globalFlags{}, f)
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	isolate(t)

	cmd, f := flagCmd(t, "--interval", "10ms")
	_, err := loadConfig(cmd, &globalFlags{}, f)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	cmd, f := flagCmd(t)
	_, err := loadConfig(cmd, &globalFlags{Config: "nope.yaml"}, f)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
