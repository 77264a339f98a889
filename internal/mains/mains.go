// Package mains detects the local electrical mains frequency from the
// system timezone. The comparison residual check uses it to decide
// whether a narrowband difference between original and watermarked
// audio is likely hum picked up during recording.
package mains

import (
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// Frequency returns the local mains frequency in Hz (50 or 60).
// Returns 50Hz if detection fails or the timezone is ambiguous.
func Frequency() int {
	timezone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return 50
	}
	return FrequencyForTimezone(timezone)
}

// FrequencyForTimezone returns the mains frequency for an IANA timezone.
// Exported so callers and tests can pin a specific timezone.
func FrequencyForTimezone(timezone string) int {
	// UTC/GMT carry no country association
	if timezone == "UTC" || timezone == "GMT" || strings.HasPrefix(timezone, "Etc/") {
		return 50
	}

	tzMap, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return 50
	}
	country, err := tzMap.GetCountry(timezone)
	if err != nil {
		return 50
	}

	// Japan is split 50/60Hz by region; the more populous Tokyo side
	// runs 50Hz, so that is the safer guess.
	if country == "Japan" {
		return 50
	}
	if sixtyHzCountries[country] {
		return 60
	}
	return 50 // 50Hz is the global majority
}

// sixtyHzCountries lists countries on 60Hz mains power; everywhere else
// defaults to 50Hz. Source: IEC world plugs & voltages listing.
var sixtyHzCountries = map[string]bool{
	// North and Central America
	"United States": true,
	"Canada":        true,
	"Mexico":        true,
	"Belize":        true,
	"Costa Rica":    true,
	"El Salvador":   true,
	"Guatemala":     true,
	"Honduras":      true,
	"Nicaragua":     true,
	"Panama":        true,

	// Caribbean
	"Bahamas":             true,
	"Barbados":            true,
	"Cayman Islands":      true,
	"Cuba":                true,
	"Dominican Republic":  true,
	"Haiti":               true,
	"Jamaica":             true,
	"Puerto Rico":         true,
	"Trinidad and Tobago": true,
	"U.S. Virgin Islands": true,

	// South America (the rest of the continent runs 50Hz)
	"Brazil":    true, // mixed historically, 60Hz predominant today
	"Colombia":  true,
	"Ecuador":   true,
	"Guyana":    true,
	"Peru":      true,
	"Suriname":  true,
	"Venezuela": true,

	// Asia and Pacific
	"South Korea":      true,
	"Taiwan":           true,
	"Philippines":      true,
	"Saudi Arabia":     true,
	"Guam":             true,
	"American Samoa":   true,
	"Marshall Islands": true,
	"Micronesia":       true,
	"Palau":            true,
}
