package employee

import "errors"

var (
	ErrAdvanceExceedsRemaining = errors.New("advance deduction exceeds remaining balance")
	ErrNegativeAmount          = errors.New("amount must not be negative")
	ErrInvalidSalaryType       = errors.New("salary type must be WEEKLY or MONTHLY")
)

// Validate enforces the directory invariants before any write:
// non-negative balances, remaining never above taken, a known salary
// type, and the pay field matching that type.
func Validate(e Employee) error {
	if e.AdvanceTaken < 0 || e.AdvanceRemaining < 0 {
		return ErrNegativeAmount
	}
	if e.AdvanceRemaining > e.AdvanceTaken {
		return ErrAdvanceExceedsRemaining
	}
	switch e.SalaryType {
	case SalaryTypeWeekly:
		if e.RatePerMeter < 0 {
			return ErrNegativeAmount
		}
	case SalaryTypeMonthly:
		if e.MonthlySalary < 0 {
			return ErrNegativeAmount
		}
	default:
		return ErrInvalidSalaryType
	}
	return nil
}

// CheckDeduction rejects a payout-time advance deduction that would
// drive the remaining balance below zero. Callers must see this error
// before any ledger write happens.
func CheckDeduction(remaining, deducted float64) error {
	if deducted < 0 {
		return ErrNegativeAmount
	}
	if deducted > remaining {
		return ErrAdvanceExceedsRemaining
	}
	return nil
}
