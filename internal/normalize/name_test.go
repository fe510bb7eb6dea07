package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Fund, Inc.", "acme"},
		{"The Goldman Sachs Group, LLC", "goldman sachs"},
		{"Café Société SARL", "cafe societe"},
		{"Intl Mgmt Corp", "international management"},
		{"  Multiple   Spaces   LLC  ", "multiple spaces"},
	}
	for _, c := range cases {
		got := Name(c.in)
		if got != c.want {
			t.Errorf("Name(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{"Acme Fund, Inc.", "Café Société SARL", "The Blackstone Group LP"}
	for _, in := range inputs {
		once := Name(in)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestFundManager(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"GSAM", "goldman sachs asset management"},
		{"Goldman Sachs Asset Management", "goldman sachs asset management"},
		{"PIMCO", "pacific investment management company"},
	}
	for _, c := range cases {
		got := FundManager(c.in)
		if got != c.want {
			t.Errorf("FundManager(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractDBA(t *testing.T) {
	cases := []struct {
		in       string
		wantLegal string
		wantTrade string
	}{
		{"Acme Holdings Inc DBA Acme Capital", "Acme Holdings Inc", "Acme Capital"},
		{"Acme Holdings Inc d/b/a Acme Capital", "Acme Holdings Inc", "Acme Capital"},
		{"Acme Holdings Inc", "Acme Holdings Inc", ""},
	}
	for _, c := range cases {
		got := ExtractDBA(c.in)
		if got.LegalName != c.wantLegal || got.TradeName != c.wantTrade {
			t.Errorf("ExtractDBA(%q) = %+v, want {%q %q}", c.in, got, c.wantLegal, c.wantTrade)
		}
		if dbaPattern.MatchString(got.LegalName) || dbaPattern.MatchString(got.TradeName) {
			t.Errorf("ExtractDBA(%q) left a DBA marker in the split output %+v", c.in, got)
		}
	}
}

func TestMultisetsEqual(t *testing.T) {
	a := WordMultiset(Name("Acme Capital"))
	b := WordMultiset(Name("Capital Acme"))
	if !MultisetsEqual(a, b) {
		t.Errorf("expected word multisets to be equal regardless of order")
	}
}
