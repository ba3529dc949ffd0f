package hosts

import "github.com/rileyhilliard/pingdeck/internal/errors"

// Source describes where the host list comes from. The first non-empty field
// wins, in field order.
type Source struct {
	// List is an inline comma separated list (--hosts).
	List string
	// Static is a list from the config file.
	Static []string
	// SSHConfig is an OpenSSH client config path (--ssh-config).
	SSHConfig string
	// NmapFile is an nmap XML report; DefaultNmapFile when empty.
	NmapFile string
}

// Load resolves the source into a host list.
func Load(src Source) ([]string, error) {
	var addrs []string

	switch {
	case src.List != "":
		addrs = ParseList(src.List)
	case len(src.Static) > 0:
		addrs = dedupe(src.Static)
	case src.SSHConfig != "":
		return FromSSHConfig(src.SSHConfig)
	default:
		path := src.NmapFile
		if path == "" {
			path = DefaultNmapFile
		}
		return ParseNmapXML(path)
	}

	if len(addrs) == 0 {
		return nil, errors.New(errors.ErrHosts,
			"Host list is empty",
			"Pass at least one address, e.g. --hosts 10.0.0.1")
	}
	return addrs, nil
}
