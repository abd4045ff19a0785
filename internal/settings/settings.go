// internal/settings/settings.go
package settings

import "errors"

// Group identifies a stored configuration group. The string values are the
// stable storage identifiers and must not change.
type Group string

const (
	GroupOrganization         Group = "organization"
	GroupDomesticReturns      Group = "domestic-returns"
	GroupInternationalReturns Group = "international-returns"
	GroupReturnPolicyList     Group = "return-policy-list"
	GroupShippingProfileList  Group = "shipping-profile-list"
	GroupFAQList              Group = "faq-list"
	GroupPolicyPages          Group = "policy-page-bindings"
	GroupToggles              Group = "general-toggles"
)

// ErrNotFound is returned when a group has never been stored.
var ErrNotFound = errors.New("settings group not found")

// AddressRecord is the postal address sub-record of the organization group.
type AddressRecord struct {
	Street     string `json:"street"`
	Locality   string `json:"locality"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// IsEmpty reports whether no address component is set.
func (a AddressRecord) IsEmpty() bool {
	return a.Street == "" && a.Locality == "" && a.Region == "" &&
		a.PostalCode == "" && a.Country == ""
}

// OrganizationRecord is the stored organization identity group. Enum-like
// fields stay as strings here; the normalizer coerces them.
type OrganizationRecord struct {
	OrgType        string        `json:"org_type"` // Organization | OnlineStore | LocalBusiness
	Name           string        `json:"name"`
	FoundingDate   string        `json:"founding_date"`
	Email          string        `json:"email"`
	Telephone      string        `json:"telephone"`
	Address        AddressRecord `json:"address"`
	SocialLinks    []string      `json:"social_links"`
	PaymentMethods []string      `json:"payment_methods"`
	PriceRange     string        `json:"price_range"`
}

// ReturnPolicyRecord is one stored return policy. Used both for the single
// domestic/international groups and for entries of the return-policy list.
type ReturnPolicyRecord struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"` // FiniteReturnWindow | UnlimitedWindow | NotPermitted
	Days          int      `json:"days"`
	Fees          string   `json:"fees"`        // FreeReturn | CustomerResponsibility
	RefundType    string   `json:"refund_type"` // FullRefund | StoreCredit | MoneyBackOrReplacement
	ReturnMethods []string `json:"return_methods"`
	Description   string   `json:"description"`
	// Countries is newline-separated free text, one ISO code per line.
	Countries string `json:"countries"`
}

// IsEmpty reports whether nothing at all was filled in.
func (r ReturnPolicyRecord) IsEmpty() bool {
	return r.Name == "" && r.Category == "" && r.Days == 0 && r.Fees == "" &&
		r.RefundType == "" && len(r.ReturnMethods) == 0 &&
		r.Description == "" && r.Countries == ""
}

// ShippingProfileRecord is one stored shipping profile.
type ShippingProfileRecord struct {
	Rate        float64 `json:"rate"`
	Currency    string  `json:"currency"`
	HandlingMin int     `json:"handling_min"`
	HandlingMax int     `json:"handling_max"`
	TransitMin  int     `json:"transit_min"`
	TransitMax  int     `json:"transit_max"`
	Description string  `json:"description"`
	// Countries is newline-separated free text, one ISO code per line.
	Countries string `json:"countries"`
}

// FAQItemRecord is one stored question/answer pair.
type FAQItemRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"` // sanitized HTML subset
}

// PolicyPageBindings maps logical roles to page identities. Zero means
// unbound; the matching builder never fires.
type PolicyPageBindings struct {
	FAQPageID      int64 `json:"faq_page_id"`
	ReturnsPageID  int64 `json:"returns_page_id"`
	ShippingPageID int64 `json:"shipping_page_id"`
}

// GeneralToggles holds feature switches.
type GeneralToggles struct {
	ArticleSchemaEnabled bool `json:"article_schema_enabled"`
	RebuildReviews       bool `json:"rebuild_reviews"`
}

// DefaultToggles are applied when the group was never stored.
func DefaultToggles() GeneralToggles {
	return GeneralToggles{
		ArticleSchemaEnabled: true,
		RebuildReviews:       true,
	}
}
