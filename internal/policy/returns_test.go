// internal/policy/returns_test.go
package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/settings"
)

func TestNormalizeReturnPolicy(t *testing.T) {
	tests := []struct {
		name            string
		record          settings.ReturnPolicyRecord
		fallbackCountry string
		wantOK          bool
		validate        func(t *testing.T, p ReturnPolicy)
	}{
		{
			name:   "empty record produces nothing",
			record: settings.ReturnPolicyRecord{},
			wantOK: false,
		},
		{
			name: "unknown category defaults to finite window",
			record: settings.ReturnPolicyRecord{
				Name:     "Domestic",
				Category: "WhateverWindow",
				Days:     14,
			},
			wantOK: true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.Equal(t, CategoryFiniteReturnWindow, p.Category)
				assert.Equal(t, 14, p.Days)
			},
		},
		{
			name: "not permitted never reads gated fields",
			record: settings.ReturnPolicyRecord{
				Name:          "No returns",
				Category:      "NotPermitted",
				Days:          30,
				Fees:          "FreeReturn",
				RefundType:    "FullRefund",
				ReturnMethods: []string{"ByMail", "InStore"},
			},
			wantOK: true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.Equal(t, CategoryNotPermitted, p.Category)
				assert.False(t, p.AllowsReturns())
				assert.False(t, p.HasWindow())
				assert.Empty(t, p.Methods)
				assert.Equal(t, 0, p.Days)
			},
		},
		{
			name: "methods filter to allowed set with ByMail default",
			record: settings.ReturnPolicyRecord{
				Name:          "Domestic",
				Category:      "FiniteReturnWindow",
				ReturnMethods: []string{"ByDrone", "Telepathy"},
			},
			wantOK: true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.Equal(t, []ReturnMethod{MethodByMail}, p.Methods)
			},
		},
		{
			name: "negative days clamp to zero but window stays",
			record: settings.ReturnPolicyRecord{
				Name:     "Domestic",
				Category: "FiniteReturnWindow",
				Days:     -3,
			},
			wantOK: true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.True(t, p.HasWindow())
				assert.Equal(t, 0, p.Days)
			},
		},
		{
			name: "country lines parsed in order",
			record: settings.ReturnPolicyRecord{
				Name:      "Intl",
				Category:  "UnlimitedWindow",
				Countries: "GB\nFR\nDE",
			},
			wantOK: true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.Equal(t, []string{"GB", "FR", "DE"}, p.Countries)
			},
		},
		{
			name: "empty country list falls back to organization country",
			record: settings.ReturnPolicyRecord{
				Name:     "Domestic",
				Category: "FiniteReturnWindow",
			},
			fallbackCountry: "US",
			wantOK:          true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.Equal(t, []string{"US"}, p.Countries)
			},
		},
		{
			name: "nameless policy with no countries still valid",
			record: settings.ReturnPolicyRecord{
				Category: "UnlimitedWindow",
			},
			wantOK: true,
			validate: func(t *testing.T, p ReturnPolicy) {
				assert.Empty(t, p.Name)
				assert.Empty(t, p.Countries)
				assert.True(t, p.AllowsReturns())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := NormalizeReturnPolicy(tt.record, tt.fallbackCountry)
			require.Equal(t, tt.wantOK, ok)
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestReturnVocabularyURIs(t *testing.T) {
	assert.Equal(t, "https://schema.org/MerchantReturnFiniteReturnWindow", CategoryFiniteReturnWindow.URI())
	assert.Equal(t, "https://schema.org/MerchantReturnUnlimitedWindow", CategoryUnlimitedWindow.URI())
	assert.Equal(t, "https://schema.org/MerchantReturnNotPermitted", CategoryNotPermitted.URI())
	assert.Equal(t, "https://schema.org/FreeReturn", FeesFreeReturn.URI())
	assert.Equal(t, "https://schema.org/ReturnFeesCustomerResponsibility", FeesCustomerResponsibility.URI())
	assert.Equal(t, "https://schema.org/FullRefund", RefundFull.URI())
	assert.Equal(t, "https://schema.org/ReturnByMail", MethodByMail.URI())
	assert.Equal(t, "https://schema.org/ReturnInStore", MethodInStore.URI())
	assert.Equal(t, "https://schema.org/ReturnAtKiosk", MethodAtKiosk.URI())
}
