package hosts

import (
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/rileyhilliard/pingdeck/internal/errors"
)

// DefaultNmapFile is read when no host source is given.
const DefaultNmapFile = "output.xml"

// ParseNmapXML reads an nmap XML report and returns the IP addresses found in
// its <hosthint> elements, in document order. Reports without hosthints fall
// back to the ipv4/ipv6 addresses of their <host> elements.
func ParseNmapXML(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHosts,
			fmt.Sprintf("Failed to read XML file: %s", path),
			"Run nmap with -oX output.xml, or pass --hosts 10.0.0.1,10.0.0.2")
	}
	defer f.Close()

	addrs, err := parseNmap(f)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHosts,
			fmt.Sprintf("Failed to parse %s", path),
			"Check the file is an nmap XML report")
	}
	if len(addrs) == 0 {
		return nil, errors.New(errors.ErrHosts,
			fmt.Sprintf("No IP addresses found in %s", path),
			"Make sure the scan found hosts, or pass --hosts explicitly")
	}
	return addrs, nil
}

// parseNmap walks the token stream and collects <address addr="..."> values.
func parseNmap(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var hints, hosts []string
	hintDepth, hostDepth := 0, 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error at offset %d: %w", dec.InputOffset(), err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "hosthint":
				hintDepth++
			case "host":
				hostDepth++
			case "address":
				addr, addrType := attr(el, "addr"), attr(el, "addrtype")
				if net.ParseIP(addr) == nil {
					continue
				}
				if hintDepth > 0 {
					hints = append(hints, addr)
				} else if hostDepth > 0 && (addrType == "ipv4" || addrType == "ipv6" || addrType == "") {
					hosts = append(hosts, addr)
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "hosthint":
				hintDepth--
			case "host":
				hostDepth--
			}
		}
	}

	if len(hints) > 0 {
		return dedupe(hints), nil
	}
	return dedupe(hosts), nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
