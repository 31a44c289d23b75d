package types

import (
	"sort"
	"strings"
)

// Format names a string shape checked after conversion, through the JSON
// Schema "format" keyword.
type Format string

const (
	FormatURI             Format = "uri"
	FormatHostname        Format = "hostname"
	FormatIPv4            Format = "ipv4"
	FormatIPv6            Format = "ipv6"
	FormatEmail           Format = "email"
	FormatCIDR            Format = "cidr"     // "10.0.0.0/8"
	FormatSemver          Format = "semver"   // "1.2.3" or "v1.2.3"
	FormatCompactDuration Format = "duration" // "1h30m", "2d"
)

// knownFormats maps each format to an example shown in configuration errors
var knownFormats = map[Format]string{
	FormatURI:             "https://example.com/x",
	FormatHostname:        "example.com",
	FormatIPv4:            "192.0.2.1",
	FormatIPv6:            "2001:db8::1",
	FormatEmail:           "user@example.com",
	FormatCIDR:            "10.0.0.0/8",
	FormatSemver:          "1.2.3",
	FormatCompactDuration: "1h30m",
}

// IsValidFormat reports whether f is one of the supported formats
func IsValidFormat(f Format) bool {
	_, ok := knownFormats[f]
	return ok
}

// FormatExample returns a sample value for f, or "" for unknown formats
func FormatExample(f Format) string {
	return knownFormats[f]
}

// formatNames lists the supported formats for error messages
func formatNames() string {
	names := make([]string, 0, len(knownFormats))
	for f := range knownFormats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
