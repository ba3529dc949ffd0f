package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pingdeck/internal/config"
	"github.com/rileyhilliard/pingdeck/internal/hosts"
)

// sessionFlags are shared by every command that runs a monitoring session.
type sessionFlags struct {
	HTTP       bool
	Port       int
	Hosts      string
	SSHConfig  string
	Interval   time.Duration
	Grace      time.Duration
	Privileged bool
	ExportDir  string
	Chart      bool
	Listen     string
	SelectAll  bool
}

// addSessionFlags registers the session flags on cmd.
func addSessionFlags(cmd *cobra.Command, f *sessionFlags) {
	d := config.DefaultConfig()
	fs := cmd.Flags()
	fs.BoolVar(&f.HTTP, "http", false, "probe with HTTP GET instead of ICMP echo")
	fs.IntVar(&f.Port, "port", d.Port, "HTTP port to probe")
	fs.StringVar(&f.Hosts, "hosts", "", "comma separated host list (skips the XML file)")
	fs.StringVar(&f.SSHConfig, "ssh-config", "", "read hosts from an OpenSSH client config")
	fs.DurationVar(&f.Interval, "interval", d.Interval, "time between probes of one host")
	fs.DurationVar(&f.Grace, "grace", d.Grace, "how long a stopped probe may finish before it is aborted")
	fs.BoolVar(&f.Privileged, "privileged", d.Privileged, "use raw ICMP sockets (--privileged=false for datagram sockets)")
	fs.StringVar(&f.ExportDir, "export-dir", d.ExportDir, "directory for CSV and chart exports")
	fs.BoolVar(&f.Chart, "chart", d.Chart, "also write a PNG latency chart on export")
	fs.StringVar(&f.Listen, "listen", d.Listen, "serve the read-only status API on this address (e.g. 127.0.0.1:8080)")
	fs.BoolVar(&f.SelectAll, "select-all", false, "start monitoring every host immediately")
}

// loadConfig loads .env, the config file and environment, applies flags that
// were set explicitly, and validates the result.
func loadConfig(cmd *cobra.Command, g *globalFlags, f *sessionFlags) (*config.Config, error) {
	if err := config.LoadDotEnv("."); err != nil {
		return nil, err
	}

	cfg, _, err := config.LoadOrDefault(g.Config)
	if err != nil {
		return nil, err
	}

	applyOverrides(cmd, cfg, f)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies flags the user actually passed onto cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config, f *sessionFlags) {
	changed := cmd.Flags().Changed

	if changed("http") {
		cfg.Mode = config.ModeICMP
		if f.HTTP {
			cfg.Mode = config.ModeHTTP
		}
	}
	if changed("port") {
		cfg.Port = f.Port
	}
	if changed("interval") {
		cfg.Interval = f.Interval
	}
	if changed("grace") {
		cfg.Grace = f.Grace
	}
	if changed("privileged") {
		cfg.Privileged = f.Privileged
	}
	if changed("export-dir") {
		cfg.ExportDir = config.Expand(config.ExpandTilde(f.ExportDir))
	}
	if changed("chart") {
		cfg.Chart = f.Chart
	}
	if changed("listen") {
		cfg.Listen = f.Listen
	}
}

// hostSource picks where hosts come from. Command-line sources beat the
// config file's.
func hostSource(args []string, cfg *config.Config, f *sessionFlags) hosts.Source {
	switch {
	case f.Hosts != "":
		return hosts.Source{List: f.Hosts}
	case f.SSHConfig != "":
		return hosts.Source{SSHConfig: config.ExpandTilde(f.SSHConfig)}
	case len(args) > 0:
		return hosts.Source{NmapFile: args[0]}
	default:
		return hosts.Source{Static: cfg.Hosts, SSHConfig: cfg.SSHConfig}
	}
}
