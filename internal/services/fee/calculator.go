// Package fee computes transaction fees. The calculator is a pure function
// of (amount, type) with no side effects.
package fee

// Policy describes the fee rule for one transaction type.
type Policy struct {
	Flat    float64 // fixed fee
	Percent float64 // fraction of the amount, e.g. 0.01
	Minimum float64 // floor applied to the percentage fee
}

// Calculator maps transaction types to fee policies. Unknown types pay no fee.
type Calculator struct {
	policies map[string]Policy
}

// NewCalculator builds a calculator. With no overrides it uses the default
// schedule: payments pay a flat 10.00, withdrawals pay 1% with a 50.00 floor,
// everything else is free.
func NewCalculator(overrides map[string]Policy) *Calculator {
	policies := map[string]Policy{
		"payment":    {Flat: 10},
		"topup":      {},
		"withdrawal": {Percent: 0.01, Minimum: 50},
	}
	for txType, policy := range overrides {
		policies[txType] = policy
	}
	return &Calculator{policies: policies}
}

// Calculate returns the fee for a transaction. Non-positive amounts and
// unknown types cost nothing.
func (c *Calculator) Calculate(amount float64, txType string) float64 {
	if amount <= 0 {
		return 0
	}
	policy, ok := c.policies[txType]
	if !ok {
		return 0
	}
	fee := policy.Flat + amount*policy.Percent
	if policy.Percent > 0 && fee < policy.Minimum {
		fee = policy.Minimum
	}
	return fee
}
