// Package emaildomain implements the email-domain booster (spec.md
// §4.5): a closed ccTLD table, corporate-family map, and financial
// keyword set drive a layered boost on top of identifier/fuzzy scoring,
// following the ISP/domain-group lookup table pattern in the retrieval
// pack's value-normalizer example.
package emaildomain

import (
	"strings"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/model"
)

// corporateFamilies maps a full email domain to the set of name
// fragments that identify the same corporate family under different
// trading names (spec.md §4.5 step 2).
var corporateFamilies = map[string][]string{
	"blackrock.com":  {"blackrock", "brhc", "blk"},
	"jpmorgan.com":   {"jpmorgan", "jpm", "chase"},
	"gs.com":         {"goldman sachs", "gsam", "goldman"},
	"ms.com":         {"morgan stanley", "msim"},
	"statestreet.com": {"state street", "ssga"},
	"vanguard.com":   {"vanguard"},
	"blackstone.com": {"blackstone", "bx"},
	"apollo.com":     {"apollo"},
	"ares.com":       {"ares management", "ares"},
	"kkr.com":        {"kkr", "kohlberg kravis roberts"},
}

// ccTLDCountry maps a domain TLD to the ISO-3166-1 alpha-2 country it
// corresponds to (spec.md §4.5 step 3), plus the fixed .com<->US rule.
var ccTLDCountry = map[string]string{
	"com": "US", "us": "US", "uk": "GB", "co.uk": "GB", "de": "DE",
	"fr": "FR", "it": "IT", "es": "ES", "nl": "NL", "ch": "CH",
	"jp": "JP", "cn": "CN", "hk": "HK", "sg": "SG", "au": "AU",
	"ca": "CA", "ie": "IE", "lu": "LU", "be": "BE",
}

// financialKeywords is the fixed keyword set used for the soft +3 boost
// when both domain and candidate name evoke the financial sector.
var financialKeywords = []string{
	"capital", "asset", "fund", "invest", "partners", "advisors", "securities",
}

// Result carries the boost amount and the evidence line it earned.
type Result struct {
	Boost    float64
	Evidence string
	Applied  bool
}

// Apply runs the layered email-domain booster (spec.md §4.5) for a
// candidate given the extraction's email domain. t.EmailDomainBoost
// supplies the corporate-family synonym boost; the direct-root-hit boost
// and the soft ccTLD/keyword accumulation are fixed parts of the same
// layered rule and stay literal.
func Apply(emailDomain string, candidate model.StoreEntity, t config.Thresholds) Result {
	domain := strings.ToLower(strings.TrimSpace(emailDomain))
	if domain == "" {
		return Result{}
	}
	full := strings.ToLower(candidate.FullName)
	field := strings.ToLower(candidate.FundManagerField)

	root := domainRoot(domain)
	if root != "" && (strings.Contains(full, root) || strings.Contains(field, root)) {
		return Result{
			Boost:    20,
			Evidence: "Email domain root '" + root + "' found in candidate name",
			Applied:  true,
		}
	}

	if synonyms, ok := corporateFamilies[domain]; ok {
		for _, syn := range synonyms {
			if strings.Contains(full, syn) || strings.Contains(field, syn) {
				return Result{
					Boost:    t.EmailDomainBoost,
					Evidence: "Email domain '" + domain + "' matches corporate family synonym '" + syn + "'",
					Applied:  true,
				}
			}
		}
	}

	var soft float64
	var notes []string
	tld := domainTLD(domain)
	if country, ok := ccTLDCountry[tld]; ok && strings.EqualFold(country, candidate.CountryCode) {
		soft += 5
		notes = append(notes, "ccTLD '"+tld+"' matches candidate country "+candidate.CountryCode)
	}
	if containsAny(domain, financialKeywords) && containsAny(full+" "+field, financialKeywords) {
		soft += 3
		notes = append(notes, "domain and candidate both carry a financial-sector keyword")
	}
	if soft == 0 {
		return Result{}
	}
	return Result{Boost: soft, Evidence: strings.Join(notes, "; "), Applied: true}
}

func domainRoot(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}
	return parts[len(parts)-2]
}

func domainTLD(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}
	if len(parts) >= 3 {
		last2 := parts[len(parts)-2] + "." + parts[len(parts)-1]
		if _, ok := ccTLDCountry[last2]; ok {
			return last2
		}
	}
	return parts[len(parts)-1]
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
