// Package hosts builds the list of addresses to monitor from an nmap XML
// report, an inline list, or an OpenSSH client config.
package hosts
