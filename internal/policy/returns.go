// internal/policy/returns.go
package policy

import (
	"schema-engine/internal/settings"
	"schema-engine/internal/textutil"
)

// ReturnCategory is the canonical return-policy category.
type ReturnCategory int

const (
	CategoryFiniteReturnWindow ReturnCategory = iota
	CategoryUnlimitedWindow
	CategoryNotPermitted
)

// URI returns the schema.org vocabulary URI for the category.
func (c ReturnCategory) URI() string {
	switch c {
	case CategoryUnlimitedWindow:
		return "https://schema.org/MerchantReturnUnlimitedWindow"
	case CategoryNotPermitted:
		return "https://schema.org/MerchantReturnNotPermitted"
	default:
		return "https://schema.org/MerchantReturnFiniteReturnWindow"
	}
}

// ParseReturnCategory maps stored enum text to a category. Unknown or empty
// text falls back to FiniteReturnWindow; malformed settings never error.
func ParseReturnCategory(s string) ReturnCategory {
	switch s {
	case "UnlimitedWindow":
		return CategoryUnlimitedWindow
	case "NotPermitted":
		return CategoryNotPermitted
	default:
		return CategoryFiniteReturnWindow
	}
}

// ReturnFees is who pays for the return.
type ReturnFees int

const (
	FeesFreeReturn ReturnFees = iota
	FeesCustomerResponsibility
)

func (f ReturnFees) URI() string {
	if f == FeesCustomerResponsibility {
		return "https://schema.org/ReturnFeesCustomerResponsibility"
	}
	return "https://schema.org/FreeReturn"
}

func ParseReturnFees(s string) ReturnFees {
	if s == "CustomerResponsibility" {
		return FeesCustomerResponsibility
	}
	return FeesFreeReturn
}

// RefundType is what the customer gets back.
type RefundType int

const (
	RefundFull RefundType = iota
	RefundStoreCredit
	RefundMoneyBackOrReplacement
)

func (r RefundType) URI() string {
	switch r {
	case RefundStoreCredit:
		return "https://schema.org/StoreCreditRefund"
	case RefundMoneyBackOrReplacement:
		return "https://schema.org/ExchangeRefund"
	default:
		return "https://schema.org/FullRefund"
	}
}

func ParseRefundType(s string) RefundType {
	switch s {
	case "StoreCredit":
		return RefundStoreCredit
	case "MoneyBackOrReplacement":
		return RefundMoneyBackOrReplacement
	default:
		return RefundFull
	}
}

// ReturnMethod is how the item comes back.
type ReturnMethod int

const (
	MethodByMail ReturnMethod = iota
	MethodInStore
	MethodAtKiosk
)

func (m ReturnMethod) URI() string {
	switch m {
	case MethodInStore:
		return "https://schema.org/ReturnInStore"
	case MethodAtKiosk:
		return "https://schema.org/ReturnAtKiosk"
	default:
		return "https://schema.org/ReturnByMail"
	}
}

func parseReturnMethods(in []string) []ReturnMethod {
	var out []ReturnMethod
	for _, s := range in {
		switch s {
		case "ByMail":
			out = append(out, MethodByMail)
		case "InStore":
			out = append(out, MethodInStore)
		case "AtKiosk":
			out = append(out, MethodAtKiosk)
		}
	}
	return out
}

// ReturnPolicy is the canonical, fully defaulted policy value. Fields gated
// on the category (Fees, Refund, Methods, Days) are only meaningful when the
// category admits them; builders must consult the gate helpers below.
type ReturnPolicy struct {
	Name        string
	Category    ReturnCategory
	Days        int
	Fees        ReturnFees
	Refund      RefundType
	Methods     []ReturnMethod
	Description string
	Countries   []string
	URL         string
}

// AllowsReturns reports whether fee/refund/method fields may appear in output.
func (p ReturnPolicy) AllowsReturns() bool {
	return p.Category != CategoryNotPermitted
}

// HasWindow reports whether merchantReturnDays may appear in output.
func (p ReturnPolicy) HasWindow() bool {
	return p.Category == CategoryFiniteReturnWindow
}

// NormalizeReturnPolicy turns a stored record into a canonical policy.
// The second return value is false when the record is structurally empty and
// nothing should be produced for it.
//
// Rules:
//   - category defaults to FiniteReturnWindow on absent/unknown text;
//   - days clamp to >= 0; merchantReturnDays is always emitted for a finite
//     window, including 0 (one consistent rule, applied everywhere);
//   - when the category is NotPermitted the fee/refund/method inputs are not
//     read at all;
//   - methods filter against the allowed set and default to ByMail when the
//     category admits returns but the filtered set is empty;
//   - countries parse from newline-separated text, order preserved; an empty
//     list falls back to the organization country when one was supplied.
func NormalizeReturnPolicy(rec settings.ReturnPolicyRecord, fallbackCountry string) (ReturnPolicy, bool) {
	if rec.IsEmpty() {
		return ReturnPolicy{}, false
	}

	p := ReturnPolicy{
		Name:        rec.Name,
		Category:    ParseReturnCategory(rec.Category),
		Description: rec.Description,
		Countries:   textutil.SplitLines(rec.Countries),
	}

	if len(p.Countries) == 0 && fallbackCountry != "" {
		p.Countries = []string{fallbackCountry}
	}

	if p.Category == CategoryFiniteReturnWindow {
		if rec.Days > 0 {
			p.Days = rec.Days
		}
	}

	if p.AllowsReturns() {
		p.Fees = ParseReturnFees(rec.Fees)
		p.Refund = ParseRefundType(rec.RefundType)
		p.Methods = parseReturnMethods(rec.ReturnMethods)
		if len(p.Methods) == 0 {
			p.Methods = []ReturnMethod{MethodByMail}
		}
	}

	return p, true
}
