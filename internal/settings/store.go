// internal/settings/store.go
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store is the raw keyed record store. Get unmarshals the stored group into
// out; Put marshals and stores it as-is. Callers go through Settings, which
// sanitizes on the way in and applies defaults on the way out.
type Store interface {
	Get(ctx context.Context, group Group, out interface{}) error
	Put(ctx context.Context, group Group, record interface{}) error
}

// Settings is the typed facade over a Store.
type Settings struct {
	store Store
}

func New(store Store) *Settings {
	return &Settings{store: store}
}

// Organization returns the stored organization record, zero-valued when the
// group was never saved.
func (s *Settings) Organization(ctx context.Context) (OrganizationRecord, error) {
	var rec OrganizationRecord
	if err := s.store.Get(ctx, GroupOrganization, &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return OrganizationRecord{}, nil
		}
		return OrganizationRecord{}, fmt.Errorf("get organization: %w", err)
	}
	return rec, nil
}

// DomesticReturns returns the single domestic return-policy record.
func (s *Settings) DomesticReturns(ctx context.Context) (ReturnPolicyRecord, error) {
	return s.returnsGroup(ctx, GroupDomesticReturns)
}

// InternationalReturns returns the single international return-policy record.
func (s *Settings) InternationalReturns(ctx context.Context) (ReturnPolicyRecord, error) {
	return s.returnsGroup(ctx, GroupInternationalReturns)
}

func (s *Settings) returnsGroup(ctx context.Context, group Group) (ReturnPolicyRecord, error) {
	var rec ReturnPolicyRecord
	if err := s.store.Get(ctx, group, &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReturnPolicyRecord{}, nil
		}
		return ReturnPolicyRecord{}, fmt.Errorf("get %s: %w", group, err)
	}
	return rec, nil
}

// ReturnPolicyList returns the stored list of return policies, possibly empty.
func (s *Settings) ReturnPolicyList(ctx context.Context) ([]ReturnPolicyRecord, error) {
	var recs []ReturnPolicyRecord
	if err := s.store.Get(ctx, GroupReturnPolicyList, &recs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return policy list: %w", err)
	}
	return recs, nil
}

// ShippingProfiles returns the stored list of shipping profiles, possibly empty.
func (s *Settings) ShippingProfiles(ctx context.Context) ([]ShippingProfileRecord, error) {
	var recs []ShippingProfileRecord
	if err := s.store.Get(ctx, GroupShippingProfileList, &recs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipping profiles: %w", err)
	}
	return recs, nil
}

// FAQItems returns the stored question/answer list, possibly empty.
func (s *Settings) FAQItems(ctx context.Context) ([]FAQItemRecord, error) {
	var recs []FAQItemRecord
	if err := s.store.Get(ctx, GroupFAQList, &recs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get faq items: %w", err)
	}
	return recs, nil
}

// PolicyPages returns the role-to-page bindings, zero-valued when unset.
func (s *Settings) PolicyPages(ctx context.Context) (PolicyPageBindings, error) {
	var rec PolicyPageBindings
	if err := s.store.Get(ctx, GroupPolicyPages, &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return PolicyPageBindings{}, nil
		}
		return PolicyPageBindings{}, fmt.Errorf("get policy pages: %w", err)
	}
	return rec, nil
}

// Toggles returns the feature switches, defaults when never saved.
func (s *Settings) Toggles(ctx context.Context) (GeneralToggles, error) {
	var rec GeneralToggles
	if err := s.store.Get(ctx, GroupToggles, &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DefaultToggles(), nil
		}
		return DefaultToggles(), fmt.Errorf("get toggles: %w", err)
	}
	return rec, nil
}

// SaveOrganization sanitizes and stores the organization group.
func (s *Settings) SaveOrganization(ctx context.Context, rec OrganizationRecord) error {
	return s.store.Put(ctx, GroupOrganization, SanitizeOrganization(rec))
}

// SaveDomesticReturns sanitizes and stores the domestic returns group.
func (s *Settings) SaveDomesticReturns(ctx context.Context, rec ReturnPolicyRecord) error {
	return s.store.Put(ctx, GroupDomesticReturns, SanitizeReturnPolicy(rec))
}

// SaveInternationalReturns sanitizes and stores the international returns group.
func (s *Settings) SaveInternationalReturns(ctx context.Context, rec ReturnPolicyRecord) error {
	return s.store.Put(ctx, GroupInternationalReturns, SanitizeReturnPolicy(rec))
}

// SaveReturnPolicyList sanitizes and stores the return-policy list.
func (s *Settings) SaveReturnPolicyList(ctx context.Context, recs []ReturnPolicyRecord) error {
	out := make([]ReturnPolicyRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SanitizeReturnPolicy(rec))
	}
	return s.store.Put(ctx, GroupReturnPolicyList, out)
}

// SaveShippingProfiles sanitizes and stores the shipping-profile list.
func (s *Settings) SaveShippingProfiles(ctx context.Context, recs []ShippingProfileRecord) error {
	out := make([]ShippingProfileRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SanitizeShippingProfile(rec))
	}
	return s.store.Put(ctx, GroupShippingProfileList, out)
}

// SaveFAQItems sanitizes and stores the FAQ list. Pairs with an empty
// question or answer after sanitization are dropped.
func (s *Settings) SaveFAQItems(ctx context.Context, recs []FAQItemRecord) error {
	return s.store.Put(ctx, GroupFAQList, SanitizeFAQItems(recs))
}

// SavePolicyPages sanitizes and stores the page bindings.
func (s *Settings) SavePolicyPages(ctx context.Context, rec PolicyPageBindings) error {
	return s.store.Put(ctx, GroupPolicyPages, SanitizePolicyPages(rec))
}

// SaveToggles stores the feature switches.
func (s *Settings) SaveToggles(ctx context.Context, rec GeneralToggles) error {
	return s.store.Put(ctx, GroupToggles, rec)
}

// marshalRecord is shared by store implementations.
func marshalRecord(record interface{}) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal settings record: %w", err)
	}
	return data, nil
}
