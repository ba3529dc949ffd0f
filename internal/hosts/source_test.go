package hosts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingdeck/internal/errors"
)

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "scan.xml")
	require.NoError(t, os.WriteFile(xmlPath, []byte(hostOnlyReport), 0o644))
	sshPath := filepath.Join(dir, "ssh_config")
	require.NoError(t, os.WriteFile(sshPath, []byte("Host box\n    HostName 172.16.0.9\n"), 0o600))

	tests := []struct {
		name string
		src  Source
		want []string
	}{
		{
			name: "inline list wins",
			src:  Source{List: "1.1.1.1,8.8.8.8", Static: []string{"x"}, SSHConfig: sshPath, NmapFile: xmlPath},
			want: []string{"1.1.1.1", "8.8.8.8"},
		},
		{
			name: "config list before ssh config",
			src:  Source{Static: []string{"9.9.9.9", "9.9.9.9"}, SSHConfig: sshPath, NmapFile: xmlPath},
			want: []string{"9.9.9.9"},
		},
		{
			name: "ssh config before nmap",
			src:  Source{SSHConfig: sshPath, NmapFile: xmlPath},
			want: []string{"172.16.0.9"},
		},
		{
			name: "nmap file",
			src:  Source{NmapFile: xmlPath},
			want: []string{"10.0.0.5", "10.0.0.6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_DefaultNmapFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := Load(Source{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultNmapFile)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultNmapFile), []byte(hosthintReport), 0o644))
	got, err := Load(Source{})
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", got[0])
}

func TestLoad_EmptyList(t *testing.T) {
	_, err := Load(Source{List: " , "})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrHosts))
}
