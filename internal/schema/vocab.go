// internal/schema/vocab.go
package schema

// ContextURL is the linked-data context for every document.
const ContextURL = "https://schema.org"

// Document and node type names.
const (
	TypeOrganization         = "Organization"
	TypeOnlineStore          = "OnlineStore"
	TypeLocalBusiness        = "LocalBusiness"
	TypeFAQPage              = "FAQPage"
	TypeQuestion             = "Question"
	TypeAnswer               = "Answer"
	TypeMerchantReturnPolicy = "MerchantReturnPolicy"
	TypeOfferShippingDetails = "OfferShippingDetails"
	TypeBlogPosting          = "BlogPosting"
	TypeWebPage              = "WebPage"
	TypePerson               = "Person"
	TypeImageObject          = "ImageObject"
	TypeContactPoint         = "ContactPoint"
	TypePostalAddress        = "PostalAddress"
	TypePaymentService       = "PaymentService"
	TypeAggregateRating      = "AggregateRating"
	TypeCountry              = "Country"
	TypeMonetaryAmount       = "MonetaryAmount"
	TypeDefinedRegion        = "DefinedRegion"
	TypeShippingDeliveryTime = "ShippingDeliveryTime"
	TypeQuantitativeValue    = "QuantitativeValue"
	TypeOffer                = "Offer"
	TypeAggregateOffer       = "AggregateOffer"
	TypeReview               = "Review"
	TypeRating               = "Rating"
	TypePropertyValue        = "PropertyValue"
)

// Well-known vocabulary URIs.
const (
	URINewCondition = "https://schema.org/NewCondition"
	URIInStock      = "https://schema.org/InStock"
	URIOutOfStock   = "https://schema.org/OutOfStock"
)

// UnitCodeDay is the UN/CEFACT day unit used in delivery times.
const UnitCodeDay = "DAY"

// countryNames maps ISO 3166-1 alpha-2 codes to display names for areaServed.
// Codes outside the table fall back to the code itself.
var countryNames = map[string]string{
	"US": "United States",
	"PR": "Puerto Rico",
	"VI": "United States Virgin Islands",
	"UM": "United States Minor Outlying Islands",
	"CA": "Canada",
	"GB": "United Kingdom",
	"AU": "Australia",
	"AT": "Austria",
	"BE": "Belgium",
	"BG": "Bulgaria",
	"HR": "Croatia",
	"CZ": "Czechia",
	"DK": "Denmark",
	"EE": "Estonia",
	"FI": "Finland",
	"FR": "France",
	"DE": "Germany",
	"GE": "Georgia",
	"GR": "Greece",
	"HK": "Hong Kong",
	"HU": "Hungary",
	"IE": "Ireland",
	"IL": "Israel",
	"IT": "Italy",
	"JP": "Japan",
	"LV": "Latvia",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"MT": "Malta",
	"MX": "Mexico",
	"NL": "Netherlands",
	"NZ": "New Zealand",
	"NO": "Norway",
	"PL": "Poland",
	"PT": "Portugal",
	"RO": "Romania",
	"SK": "Slovakia",
	"SI": "Slovenia",
	"ES": "Spain",
	"SE": "Sweden",
	"CH": "Switzerland",
}

// CountryName resolves an ISO code to its display name.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// CountryNode builds a Country node with a resolved display name.
func CountryNode(code string) *Node {
	return NewNode(TypeCountry).Set("name", CountryName(code))
}
