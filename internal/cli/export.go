package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/ui"
)

// DefaultExportDuration is how long 'pingdeck export' probes by default.
const DefaultExportDuration = 10 * time.Second

func newExportCmd(globals *globalFlags) *cobra.Command {
	flags := &sessionFlags{}
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "export [XML_FILE]",
		Short: "Probe every host for a while, then export stats",
		Long: `Monitor every host without the dashboard for a fixed duration, then
write the stats export (CSV, plus a PNG chart with --chart).

Works without a terminal, e.g. from cron or CI.

Examples:
  pingdeck export --for 30s
  pingdeck export scan.xml --for 1m --chart --export-dir ~/reports
  pingdeck export --http --hosts api.internal --for 10s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportCommand(cmd, args, globals, flags, duration)
		},
	}
	addSessionFlags(cmd, flags)
	cmd.Flags().DurationVar(&duration, "for", DefaultExportDuration, "how long to probe before exporting")
	return cmd
}

// exportCommand selects every host, probes for duration (or until
// interrupted), stops all loops and writes one export.
func exportCommand(cmd *cobra.Command, args []string, globals *globalFlags, flags *sessionFlags, duration time.Duration) error {
	if duration <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--for must be positive, got %s", duration),
			"Try something like --for 30s")
	}

	cfg, err := loadConfig(cmd, globals, flags)
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, hostSource(args, cfg, flags))
	if err != nil {
		return err
	}
	defer sess.close()

	out := cmd.OutOrStdout()
	spinner := ui.NewSpinner(out, fmt.Sprintf("Probing %d hosts (%s) for %s", len(sess.store.Hosts()), sess.store.Kind(), duration))

	ctx, cancel := context.WithTimeout(cmd.Context(), duration)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	if sess.api != nil {
		g.Go(func() error {
			return sess.api.Run(gctx)
		})
	}

	spinner.SetDeadline(time.Now().Add(duration))
	spinner.Start()
	sess.sup.SelectAll()
	<-gctx.Done()
	if err := g.Wait(); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	// Stop before exporting so the snapshot is final.
	sess.sup.Shutdown()

	res, err := sess.exporter.Export(sess.store.Hosts(), sess.store.Snapshot())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.Message())
	return nil
}
