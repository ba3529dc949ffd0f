package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Probe modes.
const (
	ModeICMP = "icmp"
	ModeHTTP = "http"
)

// Config represents the complete .pingdeck.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Mode is the probe type: "icmp" or "http".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Port is the HTTP port probed in http mode.
	Port int `yaml:"port" mapstructure:"port"`

	// Interval between probes of one host.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	PingTimeout time.Duration `yaml:"ping_timeout" mapstructure:"ping_timeout"`
	HTTPTimeout time.Duration `yaml:"http_timeout" mapstructure:"http_timeout"`

	// Grace is how long a stopped loop may keep running before its probe is aborted.
	Grace time.Duration `yaml:"grace" mapstructure:"grace"`

	// Privileged uses raw ICMP sockets. Set to false for unprivileged datagram sockets.
	Privileged bool `yaml:"privileged" mapstructure:"privileged"`

	// Refresh is the dashboard redraw interval.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	// ExportDir is where CSV and chart exports are written.
	ExportDir string `yaml:"export_dir" mapstructure:"export_dir"`

	// Chart also writes a PNG latency chart on export.
	Chart bool `yaml:"chart" mapstructure:"chart"`

	// Listen is the address of the read-only status API. Empty disables it.
	Listen string `yaml:"listen" mapstructure:"listen"`

	// Hosts is a static host list used instead of an nmap file.
	Hosts []string `yaml:"hosts,omitempty" mapstructure:"hosts"`

	// SSHConfig reads hosts from an OpenSSH client config instead of an nmap file.
	SSHConfig string `yaml:"ssh_config,omitempty" mapstructure:"ssh_config"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Mode:        ModeICMP,
		Port:        80,
		Interval:    time.Second,
		PingTimeout: 2 * time.Second,
		HTTPTimeout: 5 * time.Second,
		Grace:       150 * time.Millisecond,
		Privileged:  true,
		Refresh:     250 * time.Millisecond,
		ExportDir:   ".",
		Chart:       false,
		Listen:      "",
	}
}
