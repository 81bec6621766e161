package salary

import (
	"errors"
	"fmt"
	"time"
)

type Kind string

const (
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

var (
	ErrUnknownKind    = errors.New("unknown payout kind")
	ErrMissingDetails = errors.New("payout details do not match its kind")
)

// WeeklyDetails is the piecework variant of a payout.
type WeeklyDetails struct {
	MeterDetails []DailyMeter `json:"meterDetails"`
	RatePerMeter float64      `json:"ratePerMeter"`
	TotalMeters  float64      `json:"totalMeters"`
	BaseSalary   float64      `json:"baseSalary"`
}

// MonthlyDetails is the fixed-salary variant of a payout.
type MonthlyDetails struct {
	Salary               float64 `json:"salary"`
	LeaveDays            int     `json:"leaveDays"`
	LeaveDeductionPerDay float64 `json:"leaveDeductionPerDay"`
}

// Payout is the tagged union recorded by the ledger. Exactly one of
// Weekly or Monthly is set, matching Kind; Validate enforces that and
// every consumer switches exhaustively on Kind.
type Payout struct {
	ID                  string          `json:"id"`
	BranchID            string          `json:"branchId"`
	EmployeeID          string          `json:"employeeId"`
	Kind                Kind            `json:"type"`
	Weekly              *WeeklyDetails  `json:"weekly,omitempty"`
	Monthly             *MonthlyDetails `json:"monthly,omitempty"`
	Bonus               float64         `json:"bonus"`
	LeaveDeductionTotal float64         `json:"leaveDeductionTotal"`
	AdvanceTaken        float64         `json:"advanceTakenTotal"`
	AdvanceDeducted     float64         `json:"advanceDeductedThisTime"`
	AdvanceRemaining    float64         `json:"advanceRemaining"`
	FinalPay            float64         `json:"finalPay"`
	CreatedAt           time.Time       `json:"createdAt"`
}

func (p Payout) Validate() error {
	switch p.Kind {
	case KindWeekly:
		if p.Weekly == nil || p.Monthly != nil {
			return ErrMissingDetails
		}
	case KindMonthly:
		if p.Monthly == nil || p.Weekly != nil {
			return ErrMissingDetails
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
	if p.AdvanceDeducted < 0 || p.AdvanceTaken < 0 {
		return ErrNegativeInput
	}
	return nil
}

// BasePay returns the pre-bonus pay for either variant.
func (p Payout) BasePay() (float64, error) {
	switch p.Kind {
	case KindWeekly:
		if p.Weekly == nil {
			return 0, ErrMissingDetails
		}
		return p.Weekly.BaseSalary, nil
	case KindMonthly:
		if p.Monthly == nil {
			return 0, ErrMissingDetails
		}
		return p.Monthly.Salary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}
