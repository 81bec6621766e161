package salary

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultBonusRatePercent approximates one month's pay per year
// (1/12), expressed as the rounded percentage the business uses.
const DefaultBonusRatePercent = 16.66

var (
	ErrLeaveDayHasMeters = errors.New("a leave day must have zero meters")
	ErrNegativeInput     = errors.New("inputs must not be negative")
)

// DailyMeter is one day of a weekly piecework sheet.
type DailyMeter struct {
	Date           string  `json:"date"`
	Meters         float64 `json:"meter"`
	IsLeave        bool    `json:"isLeave"`
	LeaveDeduction float64 `json:"leaveDeduction"`
	Note           string  `json:"note,omitempty"`
}

type WeeklyResult struct {
	TotalMeters         float64
	BaseSalary          float64
	LeaveDeductionTotal float64
	Bonus               float64
	FinalPay            float64
}

type MonthlyResult struct {
	LeaveDeductionTotal float64
	Bonus               float64
	FinalPay            float64
}

// Calculator holds the bonus policy. The rate is configuration, not a
// hardcoded business constant.
type Calculator struct {
	BonusRatePercent float64
}

func NewCalculator(bonusRatePercent float64) Calculator {
	return Calculator{BonusRatePercent: bonusRatePercent}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c Calculator) bonus(base float64, eligible bool) float64 {
	if !eligible {
		return 0
	}
	return round2(base * c.BonusRatePercent / 100)
}

// ComputeWeekly totals a piecework sheet. Meters on a day marked as
// leave are rejected outright; the sheet must carry them as zero.
func (c Calculator) ComputeWeekly(days []DailyMeter, ratePerMeter, advanceDeducted float64, bonusEligible bool) (WeeklyResult, error) {
	if ratePerMeter < 0 || advanceDeducted < 0 {
		return WeeklyResult{}, ErrNegativeInput
	}

	var result WeeklyResult
	for _, day := range days {
		if day.Meters < 0 || day.LeaveDeduction < 0 {
			return WeeklyResult{}, ErrNegativeInput
		}
		if day.IsLeave {
			if day.Meters != 0 {
				return WeeklyResult{}, fmt.Errorf("%w: %s", ErrLeaveDayHasMeters, day.Date)
			}
			result.LeaveDeductionTotal += day.LeaveDeduction
			continue
		}
		result.TotalMeters += day.Meters
	}

	result.BaseSalary = result.TotalMeters * ratePerMeter
	result.Bonus = c.bonus(result.BaseSalary, bonusEligible)
	result.FinalPay = result.BaseSalary + result.Bonus - advanceDeducted - result.LeaveDeductionTotal
	return result, nil
}

// ComputeMonthly applies leave-day deductions to a fixed salary.
func (c Calculator) ComputeMonthly(fixedSalary float64, leaveDays int, leaveDeductionPerDay, advanceDeducted float64, bonusEligible bool) (MonthlyResult, error) {
	if fixedSalary < 0 || leaveDays < 0 || leaveDeductionPerDay < 0 || advanceDeducted < 0 {
		return MonthlyResult{}, ErrNegativeInput
	}

	var result MonthlyResult
	result.LeaveDeductionTotal = float64(leaveDays) * leaveDeductionPerDay
	result.Bonus = c.bonus(fixedSalary, bonusEligible)
	result.FinalPay = fixedSalary + result.Bonus - advanceDeducted - result.LeaveDeductionTotal
	return result, nil
}

// ProjectedYearEndBonus is the advisory projection for employees who
// do not receive a per-payout bonus. It is never posted to the ledger.
func (c Calculator) ProjectedYearEndBonus(yearToDateFinalPay float64) float64 {
	return round2(yearToDateFinalPay / 100 * c.BonusRatePercent)
}

// WeekSheet pre-fills one DailyMeter per day of the inclusive range,
// the blank sheet the weekly payout form starts from.
func WeekSheet(from, to time.Time) []DailyMeter {
	var days []DailyMeter
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, DailyMeter{Date: d.Format("2006-01-02")})
	}
	return days
}
