package hosts

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/kevinburke/ssh_config"

	"github.com/rileyhilliard/pingdeck/internal/errors"
)

// FromSSHConfig returns the concrete host aliases of an OpenSSH client config,
// each resolved to its HostName when one is set. Wildcard patterns are
// skipped. Parsing stops at the first Match block, which the parser does not
// support.
func FromSSHConfig(path string) ([]string, error) {
	content, err := readUntilMatch(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHosts,
			fmt.Sprintf("Failed to read SSH config: %s", path),
			"Check the path passed to --ssh-config")
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHosts,
			fmt.Sprintf("Failed to parse SSH config: %s", path),
			"Check the file with 'ssh -G <host>'")
	}

	var addrs []string
	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()

			// Skip wildcards and negations
			if strings.ContainsAny(alias, "*?!") {
				continue
			}

			addr := alias
			if hostname, _ := cfg.Get(alias, "HostName"); hostname != "" {
				addr = hostname
			}
			addrs = append(addrs, addr)
		}
	}

	addrs = dedupe(addrs)
	if len(addrs) == 0 {
		return nil, errors.New(errors.ErrHosts,
			fmt.Sprintf("No concrete hosts in %s", path),
			"Add Host entries without wildcards")
	}
	return addrs, nil
}

// readUntilMatch returns the config content before the first Match directive.
func readUntilMatch(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			break
		}
		result = append(result, line)
	}
	return []byte(strings.Join(result, "\n")), nil
}
