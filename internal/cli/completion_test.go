package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell  string
		expect string
	}{
		{shell: "bash", expect: "bash completion"},
		{shell: "zsh", expect: "#compdef pingdeck"},
		{shell: "fish", expect: "complete -c pingdeck"},
		{shell: "powershell", expect: "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := execute(t, "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expect)
		})
	}
}

func TestCompletion_InvalidShell(t *testing.T) {
	_, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)

	_, err = execute(t, "completion")
	assert.Error(t, err)
}
