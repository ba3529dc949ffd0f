package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/pingdeck/internal/config"
	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/hosts"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write into; "." when empty
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	Out            io.Writer
}

// fileConfig is the on-disk layout written by init. Durations are strings so
// the file stays readable.
type fileConfig struct {
	Version     int      `yaml:"version"`
	Mode        string   `yaml:"mode"`
	Port        int      `yaml:"port"`
	Interval    string   `yaml:"interval"`
	PingTimeout string   `yaml:"ping_timeout"`
	HTTPTimeout string   `yaml:"http_timeout"`
	Grace       string   `yaml:"grace"`
	Privileged  bool     `yaml:"privileged"`
	Refresh     string   `yaml:"refresh"`
	ExportDir   string   `yaml:"export_dir"`
	Chart       bool     `yaml:"chart"`
	Listen      string   `yaml:"listen"`
	Hosts       []string `yaml:"hosts,omitempty"`
}

func toFileConfig(cfg *config.Config) fileConfig {
	return fileConfig{
		Version:     cfg.Version,
		Mode:        cfg.Mode,
		Port:        cfg.Port,
		Interval:    cfg.Interval.String(),
		PingTimeout: cfg.PingTimeout.String(),
		HTTPTimeout: cfg.HTTPTimeout.String(),
		Grace:       cfg.Grace.String(),
		Privileged:  cfg.Privileged,
		Refresh:     cfg.Refresh.String(),
		ExportDir:   cfg.ExportDir,
		Chart:       cfg.Chart,
		Listen:      cfg.Listen,
		Hosts:       cfg.Hosts,
	}
}

const configHeader = `# pingdeck configuration
# Run 'pingdeck' to open the dashboard, 'pingdeck export --for 30s' for a headless report.
# Every key can be overridden with a PINGDECK_<KEY> environment variable.

`

func newInitCmd() *cobra.Command {
	var force, nonInteractive bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create .pingdeck.yaml configuration",
		Long: `Create a .pingdeck.yaml file in the current directory.

Prompts for the probe mode, port, hosts and export settings. Without a
terminal (or with --non-interactive) the defaults are written.

Examples:
  pingdeck init
  pingdeck init --force
  pingdeck init --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Init(InitOptions{
				Overwrite:      force,
				NonInteractive: nonInteractive || !term.IsTerminal(int(os.Stdin.Fd())),
				Out:            cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "write defaults without prompting")
	return cmd
}

// Init creates a new .pingdeck.yaml configuration file.
func Init(opts InitOptions) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(toFileConfig(cfg))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.WriteFile(configPath, []byte(configHeader+string(data)), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(opts.Out, "Created %s\n\n", configPath)
	fmt.Fprintln(opts.Out, "Next steps:")
	fmt.Fprintln(opts.Out, "  pingdeck              - Open the dashboard (reads output.xml)")
	fmt.Fprintln(opts.Out, "  pingdeck export --for 30s - Probe headless and write a CSV")
	return nil
}

// promptConfig asks for the settings most people change.
func promptConfig(cfg *config.Config) error {
	mode := cfg.Mode
	port := strconv.Itoa(cfg.Port)
	var hostList string
	exportDir := cfg.ExportDir
	chart := cfg.Chart

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Probe mode").
				Options(
					huh.NewOption("ICMP echo (ping)", config.ModeICMP),
					huh.NewOption("HTTP GET", config.ModeHTTP),
				).
				Value(&mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("HTTP port").
				Description("Only used in HTTP mode").
				Value(&port).
				Validate(validatePort),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hosts (optional)").
				Description("Comma separated; leave empty to read an nmap XML file").
				Placeholder("10.0.0.1, 10.0.0.2").
				Value(&hostList),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Export directory").
				Description("Where 's' writes CSV exports (supports ~ and ${DATE})").
				Value(&exportDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("export directory is required")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Also write a PNG latency chart on export?").
				Value(&chart),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive")
	}

	cfg.Mode = mode
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(port))
	cfg.Hosts = hosts.ParseList(hostList)
	cfg.ExportDir = strings.TrimSpace(exportDir)
	cfg.Chart = chart
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
