package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/exports", want: filepath.Join(home, "exports")},
		{in: "/var/tmp", want: "/var/tmp"},
		{in: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.in))
		})
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("USER", "ops")

	assert.Equal(t, "", Expand(""))
	assert.Equal(t, "/data/ops/pings", Expand("/data/${USER}/pings"))
	assert.Equal(t, "exports/"+time.Now().Format("2006-01-02"), Expand("exports/${DATE}"))
	assert.Equal(t, "plain", Expand("plain"))

	home := getHome()
	assert.Equal(t, home+"/x", Expand("${HOME}/x"))
}
