package employee

import (
	"errors"
	"testing"
)

func TestValidateRemainingNeverAboveTaken(t *testing.T) {
	e := Employee{SalaryType: SalaryTypeWeekly, AdvanceTaken: 100, AdvanceRemaining: 150}
	if err := Validate(e); !errors.Is(err, ErrAdvanceExceedsRemaining) {
		t.Fatalf("expected ErrAdvanceExceedsRemaining, got %v", err)
	}
}

func TestValidateRejectsNegatives(t *testing.T) {
	e := Employee{SalaryType: SalaryTypeMonthly, AdvanceTaken: -1}
	if err := Validate(e); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestValidateSalaryType(t *testing.T) {
	e := Employee{SalaryType: "HOURLY"}
	if err := Validate(e); !errors.Is(err, ErrInvalidSalaryType) {
		t.Fatalf("expected ErrInvalidSalaryType, got %v", err)
	}

	e = Employee{SalaryType: SalaryTypeWeekly, RatePerMeter: 20, AdvanceTaken: 500, AdvanceRemaining: 500}
	if err := Validate(e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDeduction(t *testing.T) {
	if err := CheckDeduction(200, 250); !errors.Is(err, ErrAdvanceExceedsRemaining) {
		t.Fatalf("expected rejection when deduction exceeds remaining, got %v", err)
	}
	if err := CheckDeduction(200, 200); err != nil {
		t.Fatalf("deducting the full remaining balance must be allowed: %v", err)
	}
	if err := CheckDeduction(200, -5); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}
