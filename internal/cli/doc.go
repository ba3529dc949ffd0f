// Package cli implements the pingdeck command-line interface.
//
// The package is organized around Cobra commands, each delegating to a
// command function that resolves configuration, builds a monitoring session
// and hands it to the dashboard or the headless exporter.
//
// # Command Structure
//
//	pingdeck [XML_FILE]          - Interactive dashboard (same as watch)
//	pingdeck watch [XML_FILE]    - Interactive dashboard
//	pingdeck export [XML_FILE]   - Probe all hosts for --for, then export
//	pingdeck init                - Create .pingdeck.yaml
//	pingdeck version             - Print version information
//	pingdeck completion <shell>  - Generate shell completion
//
// # Configuration Precedence
//
// Flags override environment variables (PINGDECK_*, optionally from .env),
// which override the config file, which overrides built-in defaults. Host
// sources resolve as --hosts, then --ssh-config, then an XML file argument,
// then the config file's hosts or ssh_config, then output.xml.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) are persistent on the root
// command. Session flags are registered on root, watch and export alike.
package cli
