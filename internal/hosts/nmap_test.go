package hosts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingdeck/internal/errors"
)

const hosthintReport = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE nmaprun>
<nmaprun scanner="nmap" args="nmap -sn -oX output.xml 192.168.1.0/24" version="7.94">
<hosthint><status state="up" reason="unknown-response" reason_ttl="0"/>
<address addr="192.168.1.1" addrtype="ipv4"/>
<address addr="AA:BB:CC:DD:EE:FF" addrtype="mac"/>
<hostnames>
</hostnames>
</hosthint>
<hosthint><status state="up" reason="unknown-response" reason_ttl="0"/>
<address addr="192.168.1.20" addrtype="ipv4"/>
<hostnames>
</hostnames>
</hosthint>
<host><status state="up" reason="arp-response" reason_ttl="0"/>
<address addr="192.168.1.99" addrtype="ipv4"/>
</host>
<hosthint><status state="up" reason="unknown-response" reason_ttl="0"/>
<address addr="fe80::1" addrtype="ipv6"/>
</hosthint>
<hosthint>
<address addr="192.168.1.1" addrtype="ipv4"/>
</hosthint>
</nmaprun>
`

const hostOnlyReport = `<?xml version="1.0"?>
<nmaprun>
<host><status state="up"/>
<address addr="10.0.0.5" addrtype="ipv4"/>
<address addr="00:11:22:33:44:55" addrtype="mac"/>
</host>
<host><status state="up"/>
<address addr="10.0.0.6" addrtype="ipv4"/>
</host>
</nmaprun>
`

func TestParseNmap(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    []string
		wantErr bool
	}{
		{
			name: "hosthints in document order",
			doc:  hosthintReport,
			want: []string{"192.168.1.1", "192.168.1.20", "fe80::1"},
		},
		{
			name: "falls back to host addresses",
			doc:  hostOnlyReport,
			want: []string{"10.0.0.5", "10.0.0.6"},
		},
		{
			name: "no addresses",
			doc:  `<nmaprun><runstats/></nmaprun>`,
			want: []string{},
		},
		{
			name:    "malformed xml",
			doc:     `<nmaprun><hosthint><address addr="10.0.0.1"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNmap(strings.NewReader(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNmapXML(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "scan.xml")
		require.NoError(t, os.WriteFile(path, []byte(hosthintReport), 0o644))

		got, err := ParseNmapXML(path)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseNmapXML(filepath.Join(dir, "missing.xml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrHosts))
		assert.Contains(t, err.Error(), "Failed to read XML file")
	})

	t.Run("empty report", func(t *testing.T) {
		path := filepath.Join(dir, "empty.xml")
		require.NoError(t, os.WriteFile(path, []byte(`<nmaprun></nmaprun>`), 0o644))

		_, err := ParseNmapXML(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrHosts))
		assert.Contains(t, err.Error(), "No IP addresses found")
	})

	t.Run("invalid xml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.xml")
		require.NoError(t, os.WriteFile(path, []byte(`<nmaprun><host>`), 0o644))

		_, err := ParseNmapXML(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrHosts))
	})
}
