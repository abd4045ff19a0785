// internal/policy/organization.go
package policy

import (
	"strings"

	"schema-engine/internal/settings"
)

// OrgType is the organization's schema.org type.
type OrgType int

const (
	OrgTypeOnlineStore OrgType = iota
	OrgTypeOrganization
	OrgTypeLocalBusiness
)

// TypeName returns the schema.org type name.
func (t OrgType) TypeName() string {
	switch t {
	case OrgTypeOrganization:
		return "Organization"
	case OrgTypeLocalBusiness:
		return "LocalBusiness"
	default:
		return "OnlineStore"
	}
}

func ParseOrgType(s string) OrgType {
	switch s {
	case "Organization":
		return OrgTypeOrganization
	case "LocalBusiness":
		return OrgTypeLocalBusiness
	default:
		return OrgTypeOnlineStore
	}
}

// PostalAddress is the canonical address.
type PostalAddress struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

func (a PostalAddress) IsEmpty() bool {
	return a.Street == "" && a.Locality == "" && a.Region == "" &&
		a.PostalCode == "" && a.Country == ""
}

// PaymentMethod is one accepted payment method: either a well-known
// schema.org URI or a named payment service.
type PaymentMethod struct {
	URI         string // set for well-known methods
	ServiceName string // set for named services
}

// Well-known schema.org payment method slugs. Anything else entered by the
// admin becomes a named PaymentService.
var knownPaymentSlugs = map[string]bool{
	"CreditCard":              true,
	"Cash":                    true,
	"ByInvoice":               true,
	"ByBankTransferInAdvance": true,
	"COD":                     true,
	"DirectDebit":             true,
	"PaymentCard":             true,
}

func parsePaymentMethod(s string) PaymentMethod {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "https://schema.org/") || strings.HasPrefix(s, "http://schema.org/") {
		return PaymentMethod{URI: s}
	}
	if knownPaymentSlugs[s] {
		return PaymentMethod{URI: "https://schema.org/" + s}
	}
	return PaymentMethod{ServiceName: s}
}

// OrganizationProfile is the canonical organization identity.
type OrganizationProfile struct {
	Type           OrgType
	Name           string
	FoundingDate   string
	Email          string
	Telephone      string
	Address        PostalAddress
	SocialLinks    []string
	PaymentMethods []PaymentMethod
	PriceRange     string
}

// EmitPriceRange gates priceRange on the LocalBusiness type.
func (p OrganizationProfile) EmitPriceRange() bool {
	return p.Type == OrgTypeLocalBusiness && p.PriceRange != ""
}

// FallbackCountry is the organization country used when a return policy
// carries no country list of its own.
func (p OrganizationProfile) FallbackCountry() string {
	return p.Address.Country
}

// NormalizeOrganization turns the stored record into a canonical profile.
func NormalizeOrganization(rec settings.OrganizationRecord) OrganizationProfile {
	p := OrganizationProfile{
		Type:         ParseOrgType(rec.OrgType),
		Name:         rec.Name,
		FoundingDate: rec.FoundingDate,
		Email:        rec.Email,
		Telephone:    rec.Telephone,
		Address: PostalAddress{
			Street:     rec.Address.Street,
			Locality:   rec.Address.Locality,
			Region:     rec.Address.Region,
			PostalCode: rec.Address.PostalCode,
			Country:    strings.ToUpper(rec.Address.Country),
		},
		SocialLinks: rec.SocialLinks,
		PriceRange:  rec.PriceRange,
	}
	for _, m := range rec.PaymentMethods {
		if strings.TrimSpace(m) == "" {
			continue
		}
		p.PaymentMethods = append(p.PaymentMethods, parsePaymentMethod(m))
	}
	return p
}
