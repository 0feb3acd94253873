package efficiency

import (
	"salescli/internal/config"
	"salescli/pkg/contracts/domain"
)

// MinuteCosts holds the estimated minutes spent per interaction for each
// sales method
type MinuteCosts struct {
	Email        float64 `json:"email"`
	Call         float64 `json:"call"`
	EmailAndCall float64 `json:"email_and_call"`
}

// DefaultMinuteCosts returns the standard time-cost assumptions
func DefaultMinuteCosts() MinuteCosts {
	return MinuteCosts{
		Email:        0.5,
		Call:         30,
		EmailAndCall: 15,
	}
}

// MinuteCostsFromConfig builds minute costs from application configuration
func MinuteCostsFromConfig(cfg config.EfficiencyConfig) MinuteCosts {
	return MinuteCosts{
		Email:        cfg.MinutesPerEmail,
		Call:         cfg.MinutesPerCall,
		EmailAndCall: cfg.MinutesPerEmailAndCall,
	}
}

// IsValid checks that every cost is strictly positive
func (mc MinuteCosts) IsValid() bool {
	return mc.Email > 0 && mc.Call > 0 && mc.EmailAndCall > 0
}

// PerInteraction returns the minute cost for one interaction of the method
func (mc MinuteCosts) PerInteraction(method domain.SalesMethod) float64 {
	switch method {
	case domain.MethodEmail:
		return mc.Email
	case domain.MethodCall:
		return mc.Call
	case domain.MethodEmailAndCall:
		return mc.EmailAndCall
	default:
		return 0
	}
}

// MethodEfficiency contains the TRMNS metric for one sales method
type MethodEfficiency struct {
	Method       domain.SalesMethod `json:"sales_method"`
	Interactions int                `json:"interactions"`
	TotalRevenue float64            `json:"total_revenue"`
	TotalMinutes float64            `json:"total_minutes"`
	TRMNS        float64            `json:"trmns"`
	Rank         int                `json:"rank"`
}

// StateEfficiency contains the ranked per-method TRMNS table for one state
type StateEfficiency struct {
	State   string             `json:"state"`
	Methods []MethodEfficiency `json:"methods"`
}

// IsValid checks if the efficiency entry is well-formed
func (me MethodEfficiency) IsValid() bool {
	return me.Method.IsValid() && me.Interactions > 0 && me.TotalMinutes > 0
}
