// internal/settings/sanitize.go
package settings

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"schema-engine/internal/textutil"
)

// Allowed enum texts as stored. Anything else is kept out of storage here
// and, if it slips through anyway, coerced by the normalizers on read.
var (
	allowedCategories = map[string]bool{
		"FiniteReturnWindow": true,
		"UnlimitedWindow":    true,
		"NotPermitted":       true,
	}
	allowedFees = map[string]bool{
		"FreeReturn":             true,
		"CustomerResponsibility": true,
	}
	allowedRefunds = map[string]bool{
		"FullRefund":             true,
		"StoreCredit":            true,
		"MoneyBackOrReplacement": true,
	}
	allowedMethods = map[string]bool{
		"ByMail":  true,
		"InStore": true,
		"AtKiosk": true,
	}
	allowedOrgTypes = map[string]bool{
		"Organization":  true,
		"OnlineStore":   true,
		"LocalBusiness": true,
	}
)

const maxListEntries = 200

var answerPolicy = bluemonday.UGCPolicy()

// SanitizeOrganization trims string fields and drops unknown enum text.
func SanitizeOrganization(rec OrganizationRecord) OrganizationRecord {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.FoundingDate = strings.TrimSpace(rec.FoundingDate)
	rec.Email = strings.TrimSpace(rec.Email)
	rec.Telephone = strings.TrimSpace(rec.Telephone)
	rec.PriceRange = strings.TrimSpace(rec.PriceRange)
	if !allowedOrgTypes[rec.OrgType] {
		rec.OrgType = ""
	}

	rec.Address.Street = strings.TrimSpace(rec.Address.Street)
	rec.Address.Locality = strings.TrimSpace(rec.Address.Locality)
	rec.Address.Region = strings.TrimSpace(rec.Address.Region)
	rec.Address.PostalCode = strings.TrimSpace(rec.Address.PostalCode)
	rec.Address.Country = strings.ToUpper(strings.TrimSpace(rec.Address.Country))

	rec.SocialLinks = trimList(rec.SocialLinks)
	rec.PaymentMethods = trimList(rec.PaymentMethods)
	return rec
}

// SanitizeReturnPolicy clamps numbers and filters enum fields to the allowed
// sets. Unknown category text is dropped rather than defaulted: the read-side
// normalizer owns defaulting so that both stores behave identically.
func SanitizeReturnPolicy(rec ReturnPolicyRecord) ReturnPolicyRecord {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Description = strings.TrimSpace(rec.Description)
	if !allowedCategories[rec.Category] {
		rec.Category = ""
	}
	if rec.Days < 0 {
		rec.Days = 0
	}
	if !allowedFees[rec.Fees] {
		rec.Fees = ""
	}
	if !allowedRefunds[rec.RefundType] {
		rec.RefundType = ""
	}

	var methods []string
	for _, m := range rec.ReturnMethods {
		m = strings.TrimSpace(m)
		if allowedMethods[m] {
			methods = append(methods, m)
		}
	}
	rec.ReturnMethods = methods

	rec.Countries = strings.Join(textutil.SplitLines(rec.Countries), "\n")
	return rec
}

// SanitizeShippingProfile clamps the rate, normalizes the currency and swaps
// inverted day bounds.
func SanitizeShippingProfile(rec ShippingProfileRecord) ShippingProfileRecord {
	if rec.Rate < 0 {
		rec.Rate = 0
	}
	rec.Currency = strings.ToUpper(strings.TrimSpace(rec.Currency))
	if rec.Currency == "" {
		rec.Currency = "USD"
	}
	rec.Description = strings.TrimSpace(rec.Description)

	if rec.HandlingMin < 0 {
		rec.HandlingMin = 0
	}
	if rec.HandlingMax < 0 {
		rec.HandlingMax = 0
	}
	if rec.TransitMin < 0 {
		rec.TransitMin = 0
	}
	if rec.TransitMax < 0 {
		rec.TransitMax = 0
	}
	if rec.HandlingMax != 0 && rec.HandlingMax < rec.HandlingMin {
		rec.HandlingMin, rec.HandlingMax = rec.HandlingMax, rec.HandlingMin
	}
	if rec.TransitMax != 0 && rec.TransitMax < rec.TransitMin {
		rec.TransitMin, rec.TransitMax = rec.TransitMax, rec.TransitMin
	}

	rec.Countries = strings.Join(textutil.SplitLines(rec.Countries), "\n")
	return rec
}

// SanitizeFAQItems trims questions, sanitizes answers to a safe HTML subset
// and drops pairs that end up empty on either side.
func SanitizeFAQItems(recs []FAQItemRecord) []FAQItemRecord {
	out := make([]FAQItemRecord, 0, len(recs))
	for _, rec := range recs {
		rec.Question = strings.TrimSpace(rec.Question)
		rec.Answer = strings.TrimSpace(answerPolicy.Sanitize(rec.Answer))
		if rec.Question == "" || rec.Answer == "" {
			continue
		}
		out = append(out, rec)
		if len(out) >= maxListEntries {
			break
		}
	}
	return out
}

// SanitizePolicyPages clamps negative page ids to unbound.
func SanitizePolicyPages(rec PolicyPageBindings) PolicyPageBindings {
	if rec.FAQPageID < 0 {
		rec.FAQPageID = 0
	}
	if rec.ReturnsPageID < 0 {
		rec.ReturnsPageID = 0
	}
	if rec.ShippingPageID < 0 {
		rec.ShippingPageID = 0
	}
	return rec
}

func trimList(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) >= maxListEntries {
			break
		}
	}
	return out
}
