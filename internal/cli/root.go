package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/logger"
)

// globalFlags are persistent on the root command.
type globalFlags struct {
	Config  string
	Verbose bool
	NoColor bool
}

// NewRootCmd builds the complete command tree.
func NewRootCmd() *cobra.Command {
	globals := &globalFlags{}
	flags := &sessionFlags{}

	root := &cobra.Command{
		Use:   "pingdeck [XML_FILE]",
		Short: "Live ICMP/HTTP monitoring dashboard for many hosts",
		Long: `pingdeck probes a set of hosts continuously, either with ICMP echo
or HTTP GET, and shows rolling latency, loss and status per host in an
interactive terminal dashboard.

Hosts come from an nmap XML report (default output.xml), an inline
--hosts list, an OpenSSH client config, or the config file.

Examples:
  pingdeck
  pingdeck scan.xml --select-all
  pingdeck --http --port 8080 --hosts 10.0.0.1,10.0.0.2`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyGlobals(globals)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchCommand(cmd, args, globals, flags)
		},
	}

	root.PersistentFlags().StringVar(&globals.Config, "config", "", "config file (default: ./.pingdeck.yaml or ~/.config/pingdeck/config.yaml)")
	root.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&globals.NoColor, "no-color", false, "disable colored output")
	addSessionFlags(root, flags)

	root.AddCommand(
		newWatchCmd(globals),
		newExportCmd(globals),
		newInitCmd(),
		newVersionCmd(),
		newCompletionCmd(root),
	)
	return root
}

// applyGlobals turns global flags into process-wide settings.
func applyGlobals(g *globalFlags) {
	logger.SetDebug(g.Verbose)
	if g.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders structured errors as-is and gives everything else
// (cobra argument and flag errors) the same leading marker.
func formatError(err error) string {
	var pdErr *errors.Error
	if stderrors.As(err, &pdErr) {
		return err.Error()
	}
	return fmt.Sprintf("✗ %v\n", err)
}
