// internal/policy/nodes.go
package policy

import "schema-engine/internal/schema"

// Fill writes the policy's fields onto n in canonical order, applying the
// category gates: merchantReturnDays only for a finite window, fee/refund/
// method fields never for NotPermitted.
func (p ReturnPolicy) Fill(n *schema.Node) *schema.Node {
	n.SetString("name", p.Name)
	n.SetString("url", p.URL)

	switch len(p.Countries) {
	case 0:
	case 1:
		n.Set("applicableCountry", p.Countries[0])
	default:
		n.Set("applicableCountry", p.Countries)
	}

	n.Set("returnPolicyCategory", p.Category.URI())

	if p.HasWindow() {
		n.Set("merchantReturnDays", p.Days)
	}

	if p.AllowsReturns() {
		if len(p.Methods) == 1 {
			n.Set("returnMethod", p.Methods[0].URI())
		} else {
			uris := make([]string, 0, len(p.Methods))
			for _, m := range p.Methods {
				uris = append(uris, m.URI())
			}
			n.Set("returnMethod", uris)
		}
		n.Set("returnFees", p.Fees.URI())
		n.Set("refundType", p.Refund.URI())
	}

	n.SetString("description", p.Description)
	return n
}

// Node builds an embeddable MerchantReturnPolicy node.
func (p ReturnPolicy) Node() *schema.Node {
	return p.Fill(schema.NewNode(schema.TypeMerchantReturnPolicy))
}

// Fill writes the profile's fields onto n. shippingRate appears only with a
// positive rate, shippingDestination is a bare object for a single country,
// and deliveryTime carries handlingTime/transitTime independently.
func (p ShippingProfile) Fill(n *schema.Node) *schema.Node {
	if p.HasRate() {
		n.Set("shippingRate", schema.NewNode(schema.TypeMonetaryAmount).
			Set("value", p.Rate).
			Set("currency", p.Currency))
	}

	n.SetString("description", p.Description)

	switch len(p.Countries) {
	case 0:
	case 1:
		n.Set("shippingDestination", definedRegion(p.Countries[0]))
	default:
		regions := make([]*schema.Node, 0, len(p.Countries))
		for _, c := range p.Countries {
			regions = append(regions, definedRegion(c))
		}
		n.Set("shippingDestination", regions)
	}

	if p.HasDeliveryTime() {
		dt := schema.NewNode(schema.TypeShippingDeliveryTime)
		if p.HasHandling() {
			dt.Set("handlingTime", dayRange(p.HandlingMin, p.HandlingMax))
		}
		if p.HasTransit() {
			dt.Set("transitTime", dayRange(p.TransitMin, p.TransitMax))
		}
		n.Set("deliveryTime", dt)
	}
	return n
}

// Node builds an embeddable OfferShippingDetails node.
func (p ShippingProfile) Node() *schema.Node {
	return p.Fill(schema.NewNode(schema.TypeOfferShippingDetails))
}

func definedRegion(country string) *schema.Node {
	return schema.NewNode(schema.TypeDefinedRegion).Set("addressCountry", country)
}

func dayRange(min, max int) *schema.Node {
	return schema.NewNode(schema.TypeQuantitativeValue).
		Set("minValue", min).
		Set("maxValue", max).
		Set("unitCode", schema.UnitCodeDay)
}
