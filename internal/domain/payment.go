package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// DefaultPaymentDecimals is the number of decimals of the native currency
const DefaultPaymentDecimals = 18

// ParseAmount converts a decimal amount such as "0.1" into base units with the
// given number of decimals. Amounts with more precision than decimals allow
// are rejected rather than rounded.
func ParseAmount(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %q has more than %d decimals", amount, decimals)
	}
	return new(big.Int).Set(r.Num()), nil
}

// ParsePaymentSteps converts and validates a payment schedule
func ParsePaymentSteps(amounts []string, decimals uint8) ([]*big.Int, error) {
	steps := make([]*big.Int, 0, len(amounts))
	for i, a := range amounts {
		v, err := ParseAmount(a, decimals)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, v)
	}
	if err := ValidatePaymentSteps(steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// ValidatePaymentSteps checks that every step is positive and the schedule
// never decreases.
func ValidatePaymentSteps(steps []*big.Int) error {
	for i, s := range steps {
		if s == nil || s.Sign() <= 0 {
			return fmt.Errorf("step %d must be positive", i)
		}
		if i > 0 && s.Cmp(steps[i-1]) < 0 {
			return fmt.Errorf("step %d (%s) is lower than step %d (%s)", i, s, i-1, steps[i-1])
		}
	}
	return nil
}
