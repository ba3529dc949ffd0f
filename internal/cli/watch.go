package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rileyhilliard/pingdeck/internal/dashboard"
	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/logger"
)

// LogFileName receives debug output while the dashboard owns the terminal.
const LogFileName = "pingdeck.log"

func newWatchCmd(globals *globalFlags) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "watch [XML_FILE]",
		Short: "Interactive monitoring dashboard",
		Long: `Start the interactive dashboard. Hosts start unselected; press space
to start monitoring the host under the cursor, or a to select all.

Keyboard shortcuts:
  up/k, down/j   Move the cursor
  space          Toggle monitoring of the host
  p              Pause / resume
  a / d          Select / deselect all hosts
  s              Export stats to CSV
  ?              Help
  q / Esc        Quit

Examples:
  pingdeck watch
  pingdeck watch scan.xml --select-all
  pingdeck watch --http --port 8443 --hosts web1,web2
  pingdeck watch --ssh-config ~/.ssh/config --listen 127.0.0.1:8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchCommand(cmd, args, globals, flags)
		},
	}
	addSessionFlags(cmd, flags)
	return cmd
}

// watchCommand runs the dashboard, and the status API when configured, until
// the user quits.
func watchCommand(cmd *cobra.Command, args []string, globals *globalFlags, flags *sessionFlags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'pingdeck export --for 30s' to probe and export without a terminal")
	}

	cfg, err := loadConfig(cmd, globals, flags)
	if err != nil {
		return err
	}

	restore, err := redirectLog(cfg.ExportDir)
	if err != nil {
		return err
	}
	defer restore()

	sess, err := newSession(cfg, hostSource(args, cfg, flags))
	if err != nil {
		return err
	}
	defer sess.close()

	if flags.SelectAll {
		sess.sup.SelectAll()
	}

	model := dashboard.NewModel(sess.sup, dashboard.Options{
		Refresh:  cfg.Refresh,
		Exporter: sess.exporter,
		Port:     cfg.Port,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if sess.api != nil {
		g.Go(func() error {
			return sess.api.Run(gctx)
		})
	}

	g.Go(func() error {
		// Quitting the dashboard ends the API too.
		defer cancel()
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
		if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Dashboard failed",
				"Check that your terminal supports full-screen applications")
		}
		return nil
	})

	return g.Wait()
}

// redirectLog keeps log output off the dashboard: into LogFileName in dir
// when debug logging is on, otherwise nowhere.
func redirectLog(dir string) (func(), error) {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create "+dir,
			"Check export_dir in your .pingdeck.yaml")
	}
	path := filepath.Join(dir, LogFileName)
	prefix := log.Prefix()
	f, err := tea.LogToFile(path, "pingdeck")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to open log file "+path,
			"Check the export directory is writable")
	}
	return func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix(prefix)
		_ = f.Close()
	}, nil
}
