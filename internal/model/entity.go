package model

import (
	"strings"
	"time"
)

// ExtractedEntity is a parsed form, produced once by the extraction
// collaborator and never mutated afterward.
type ExtractedEntity struct {
	LegalName     string
	FundManager   string
	MEI           string
	LEI           string
	EIN           string
	DebtDomainID  string
	EmailDomain   string
	DBA           string
	LegalCountry  string
	TaxCountry    string
	ContactEmails map[string]string
	FieldConf     map[string]float64
	OverallConf   float64
}

// HasFundManager reports whether a fund manager was extracted.
func (e ExtractedEntity) HasFundManager() bool {
	return strings.TrimSpace(e.FundManager) != ""
}

// HasMEI reports whether an MEI was extracted.
func (e ExtractedEntity) HasMEI() bool { return e.MEI != "" }

// HasLEI reports whether an LEI was extracted.
func (e ExtractedEntity) HasLEI() bool { return e.LEI != "" }

// HasEIN reports whether an EIN was extracted.
func (e ExtractedEntity) HasEIN() bool { return e.EIN != "" }

// HasDebtDomainID reports whether a DebtDomain ID was extracted.
func (e ExtractedEntity) HasDebtDomainID() bool { return e.DebtDomainID != "" }

// RecordType distinguishes a primary store record from a location sub-entity.
type RecordType string

const (
	RecordTypeMain     RecordType = "MAIN"
	RecordTypeLocation RecordType = "LOCATION"
)

// StoreEntity is a record from the read-only system of record.
type StoreEntity struct {
	EntityID          int64      `db:"entity_id"`
	FullName          string     `db:"full_name"`
	ShortName         string     `db:"short_name"`
	FundManagerField  string     `db:"fund_manager_field"`
	MEI               string     `db:"mei"`
	LEI               string     `db:"lei"`
	EIN               string     `db:"ein"`
	DebtDomainID      string     `db:"debt_domain_id"`
	EmailDomain       string     `db:"email_domain"`
	CountryCode       string     `db:"country_code"`
	LegalAddress      string     `db:"legal_address"`
	TaxAddress        string     `db:"tax_address"`
	IsLocation        bool       `db:"is_location"`
	ParentCustomerID  *int64     `db:"parent_customer_id"`
	LastModified      time.Time  `db:"last_modified"`
	RecordType        RecordType `db:"record_type"`
}

// HasFundManagerField reports whether this store row repurposes the
// ultimate-parent slot to hold a fund manager.
func (s StoreEntity) HasFundManagerField() bool {
	return strings.TrimSpace(s.FundManagerField) != ""
}

// CleanedShortName strips everything but lowercase alphanumerics from the
// short name, the form used for duplicate detection and the cleaned
// short-name store lookup.
func (s StoreEntity) CleanedShortName() string {
	return CleanAlphanumeric(s.ShortName)
}

// CleanAlphanumeric lowercases s and strips every character that is not a
// letter or digit. Used for cleaned-short-name comparisons throughout the
// duplicate detector and record store.
func CleanAlphanumeric(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
