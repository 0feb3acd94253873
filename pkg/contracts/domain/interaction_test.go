package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalesMethod_IsValid(t *testing.T) {
	tests := []struct {
		method SalesMethod
		want   bool
	}{
		{method: MethodEmail, want: true},
		{method: MethodCall, want: true},
		{method: MethodEmailAndCall, want: true},
		{method: SalesMethod("Email"), want: false},
		{method: SalesMethod("fax"), want: false},
		{method: SalesMethod(""), want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.IsValid())
		})
	}
}

func TestAllSalesMethods(t *testing.T) {
	methods := AllSalesMethods()

	assert.Equal(t, []SalesMethod{MethodEmail, MethodCall, MethodEmailAndCall}, methods)
	for _, m := range methods {
		assert.True(t, m.IsValid())
	}
}

func TestInteraction_Key(t *testing.T) {
	base := Interaction{
		Week:            1,
		SalesMethod:     MethodEmail,
		CustomerID:      "C1",
		NbSold:          10,
		Revenue:         97.5,
		YearsAsCustomer: 5,
		NbSiteVisits:    20,
		State:           "Texas",
	}

	same := base
	assert.Equal(t, base.Key(), same.Key())

	differentWeek := base
	differentWeek.Week = 2
	assert.NotEqual(t, base.Key(), differentWeek.Key())

	// A null-revenue row and a zero-revenue row are distinct identities
	missing := base
	missing.Revenue = 0
	missing.RevenueMissing = true
	zero := base
	zero.Revenue = 0
	assert.NotEqual(t, zero.Key(), missing.Key())

	// Imputation provenance does not change row identity
	imputed := base
	imputed.RevenueImputed = true
	assert.Equal(t, base.Key(), imputed.Key())
}
