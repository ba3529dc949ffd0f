package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pingdeck/internal/probe"
	probetesting "github.com/rileyhilliard/pingdeck/internal/probe/testing"
)

// execute runs a fresh command tree with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// isolate runs the test in an empty directory with an empty HOME so no real
// config or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

// useFakeProbers swaps the real ICMP/HTTP probers for scripted ones.
func useFakeProbers(t *testing.T) *probetesting.FakeFactory {
	t.Helper()
	f := probetesting.NewFakeFactory()
	orig := proberFactory
	proberFactory = func(probe.Config) probe.Factory { return f.New }
	t.Cleanup(func() { proberFactory = orig })
	return f
}

// flagCmd returns a bare command with the session flags parsed from args.
func flagCmd(t *testing.T, args ...string) (*cobra.Command, *sessionFlags) {
	t.Helper()
	f := &sessionFlags{}
	cmd := &cobra.Command{Use: "test"}
	addSessionFlags(cmd, f)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd, f
}
