// Package normalize implements the deterministic name-normalization
// pipeline (spec.md §4.1): diacritic stripping, punctuation/whitespace
// folding, corporate-form and stopword removal, abbreviation expansion,
// fund-manager alias resolution, and DBA extraction. The table-driven
// approach (closed maps of corporate forms, stopwords, abbreviations,
// and aliases) follows the vanity-id-organization and value-normalizer
// examples from the retrieval pack.
package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// abbreviations is the frozen expansion map, step 5 of the pipeline.
var abbreviations = map[string]string{
	"intl":  "international",
	"mgmt":  "management",
	"assoc": "associates",
	"corp":  "corporation",
	"co":    "company",
	"inc":   "incorporated",
	"ltd":   "limited",
	"intnl": "international",
	"natl":  "national",
	"bros":  "brothers",
	"dept":  "department",
	"dev":   "development",
	"grp":   "group",
	"hldg":  "holding",
	"hldgs": "holdings",
	"inv":   "investment",
	"invs":  "investments",
	"mfg":   "manufacturing",
	"svc":   "service",
	"svcs":  "services",
	"sys":   "systems",
	"tech":  "technology",
	"amer":  "american",
	"fin":   "financial",
	"re":    "real estate",
}

// corporateForms is the closed set of entity-form words removed entirely
// by step 6: US forms, international forms, and investment-vehicle forms.
var corporateForms = map[string]bool{
	"inc": true, "incorporated": true, "corp": true, "corporation": true,
	"co": true, "company": true, "llc": true, "llp": true, "lllp": true,
	"lp": true, "ltd": true, "limited": true, "plc": true, "pllc": true,
	"pc": true, "pa": true, "na": true, "nv": true, "sa": true, "se": true,
	"ag": true, "gmbh": true, "kg": true, "kgaa": true, "sarl": true,
	"sas": true, "sasu": true, "sarlu": true, "bv": true, "nvsa": true,
	"oy": true, "ab": true, "as": true, "asa": true, "aps": true,
	"spa": true, "srl": true, "sro": true, "sp": true, "zoo": true,
	"oao": true, "ooo": true, "zao": true, "pte": true, "sdn": true,
	"bhd": true, "kk": true, "gk": true, "yk": true, "pty": true,
	"holdings": true, "holding": true, "group": true, "partners": true,
	"partnership": true, "fund": true, "funds": true, "trust": true,
	"trustee": true, "trustees": true, "lllc": true, "lc": true,
	"cooperative": true, "coop": true, "foundation": true,
	"spc": true, "icav": true, "plc1": true, "unlimited": true,
	"ulc": true, "cic": true, "cio": true, "cic1": true, "series": true,
	"master": true, "feeder": true, "sp1": true, "gp": true,
}

// stopwords is the closed set of articles/prepositions removed by step 7.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true,
	"for": true, "in": true, "on": true, "at": true, "to": true,
	"by": true, "&": true,
}

// fundManagerAliases maps a normalized short form to its normalized
// canonical long form (spec.md §4.1 fund-manager normalization).
var fundManagerAliases = map[string]string{
	"gsam":    "goldman sachs asset management",
	"pimco":   "pacific investment management company",
	"blackrock": "blackrock",
	"jpm":     "jpmorgan",
	"jpmorgan": "jpmorgan",
	"ms":      "morgan stanley",
	"msim":    "morgan stanley investment management",
	"ubs":     "ubs asset management",
	"bofa":    "bank of america",
	"baml":    "bank of america merrill lynch",
	"wf":      "wells fargo",
	"citi":    "citigroup",
	"statestreet": "state street",
	"ssga":    "state street global advisors",
	"vanguard": "vanguard",
	"fidelity": "fidelity investments",
	"axa":     "axa investment managers",
	"amundi":  "amundi asset management",
	"aberdeen": "aberdeen standard investments",
	"invesco": "invesco",
	"neuberger": "neuberger berman",
	"apollo":  "apollo global management",
	"ares":    "ares management",
	"blackstone": "blackstone",
	"carlyle":  "the carlyle group",
	"kkr":     "kohlberg kravis roberts",
}

var (
	charFilter  = regexp.MustCompile(`[^a-z0-9\s\-']`)
	whitespace  = regexp.MustCompile(`\s+`)
	dbaPattern  = regexp.MustCompile(`(?i)(\bd\.b\.a\.|\b(?:d/b/a|dba|trading as|t/a)\b)`)
)

// foldSpecials maps smart quotes, dashes, and exotic whitespace to their
// ASCII equivalents (pipeline step 2).
var foldSpecials = map[rune]rune{
	'‘': '\'', '’': '\'', '“': '"', '”': '"',
	'–': '-', '—': '-', '−': '-',
	' ': ' ', ' ': ' ', ' ': ' ', ' ': ' ',
	' ': ' ', ' ': ' ', ' ': ' ', '\U0000FEFF': ' ',
}

// Name runs the general name-normalization pipeline (spec.md §4.1) over
// legal name s, in the fixed eight-step order the specification requires.
func Name(s string) string {
	s = stripDiacritics(s)
	s = foldSpecialChars(s)
	s = strings.ToLower(s)
	s = charFilter.ReplaceAllString(s, "")
	s = expandAbbreviations(s)
	s = removeTokens(s, corporateForms)
	s = removeTokens(s, stopwords)
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDiacritics applies Unicode compatibility decomposition and drops
// combining marks, yielding ASCII-approximate letters (pipeline step 1).
func stripDiacritics(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// foldSpecialChars folds smart quotes/dashes/exotic whitespace to ASCII
// and drops control codepoints (pipeline step 2). U+FEFF is folded to a
// space; other zero-width codepoints are not dropped here and are removed
// by the character filter of step 4.
func foldSpecialChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := foldSpecials[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func expandAbbreviations(s string) string {
	tokens := strings.Fields(s)
	for i, t := range tokens {
		if expansion, ok := abbreviations[t]; ok {
			tokens[i] = expansion
		}
	}
	return strings.Join(tokens, " ")
}

func removeTokens(s string, set map[string]bool) string {
	tokens := strings.Fields(s)
	kept := tokens[:0:0]
	for _, t := range tokens {
		if !set[t] {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// FundManager runs the general pipeline then resolves a closed alias map
// (spec.md §4.1 fund-manager normalization): exact alias hit returns the
// canonical form; else substring containment either way returns the
// canonical form; else the normalized input is returned unchanged.
func FundManager(s string) string {
	n := Name(s)
	if n == "" {
		return n
	}
	if canonical, ok := fundManagerAliases[n]; ok {
		return canonical
	}
	keys := make([]string, 0, len(fundManagerAliases))
	for k := range fundManagerAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		canonical := fundManagerAliases[k]
		if strings.Contains(canonical, n) || strings.Contains(n, canonical) {
			return canonical
		}
	}
	return n
}

// DBASplit is the result of DBA extraction: LegalName is always set,
// TradeName is empty when no DBA marker was found.
type DBASplit struct {
	LegalName string
	TradeName string
}

// ExtractDBA scans for a DBA marker (spec.md §4.1: "DBA", "d/b/a",
// "d.b.a.", "trading as", "t/a", case-insensitive with word boundaries)
// and splits on the first occurrence.
func ExtractDBA(s string) DBASplit {
	loc := dbaPattern.FindStringIndex(s)
	if loc == nil {
		return DBASplit{LegalName: s}
	}
	return DBASplit{
		LegalName: strings.TrimSpace(s[:loc[0]]),
		TradeName: strings.TrimSpace(s[loc[1]:]),
	}
}

// WordMultiset tokenizes normalized name n into a token→count multiset,
// used for word-set equality comparisons (spec.md §4.4, §4.8).
func WordMultiset(n string) map[string]int {
	out := make(map[string]int)
	for _, t := range strings.Fields(n) {
		out[t]++
	}
	return out
}

// MultisetsEqual reports whether two word multisets are identical.
func MultisetsEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
