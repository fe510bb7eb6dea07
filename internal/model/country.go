package model

import "strings"

// iso3166Alpha2 is the recognized ISO-3166-1 alpha-2 country code set.
// Not every code in the standard is listed; this covers the jurisdictions
// that appear in trading-participant onboarding forms, which is the
// intended closed universe for MEI-prefix and country-field validation.
var iso3166Alpha2 = map[string]bool{
	"US": true, "GB": true, "CA": true, "DE": true, "FR": true, "IT": true,
	"ES": true, "NL": true, "BE": true, "LU": true, "CH": true, "AT": true,
	"IE": true, "SE": true, "NO": true, "DK": true, "FI": true, "PT": true,
	"GR": true, "PL": true, "CZ": true, "HU": true, "RO": true, "BG": true,
	"HR": true, "SK": true, "SI": true, "EE": true, "LV": true, "LT": true,
	"MT": true, "CY": true, "IS": true, "LI": true, "MC": true,
	"JP": true, "CN": true, "HK": true, "SG": true, "KR": true, "TW": true,
	"IN": true, "AU": true, "NZ": true, "BR": true, "MX": true, "AR": true,
	"CL": true, "CO": true, "PE": true, "ZA": true, "AE": true, "SA": true,
	"IL": true, "TR": true, "RU": true, "KY": true, "BM": true, "VG": true,
	"JE": true, "GG": true, "IM": true, "MU": true, "PA": true,
}

// ValidCountryCode reports whether code is a recognized ISO-3166-1 alpha-2
// country code. Used by the identifier matcher to apply spec.md §3
// invariant (b)'s MEI confidence demotion; free-form country name
// resolution is the extraction collaborator's responsibility, since
// extracted country fields are already codes by the time they reach this
// package (spec.md §3's Extracted Entity data model).
func ValidCountryCode(code string) bool {
	return iso3166Alpha2[strings.ToUpper(strings.TrimSpace(code))]
}
