package reports

import (
	"fmt"

	"pieceledger/internal/domain/employee"
	"pieceledger/internal/domain/salary"
)

// Summary is the aggregate block at the bottom of the salary report.
type Summary struct {
	Records               int
	TotalAdvanceTaken     float64
	TotalAdvanceRemaining float64
	// ProjectedYearEndBonus covers the non-bonused employees only: the
	// bonused ones already receive theirs per payout.
	ProjectedYearEndBonus float64
}

// Summarize folds the roster into report totals. ytdByEmployee maps
// employee id to year-to-date final pay.
func Summarize(employees []employee.Employee, ytdByEmployee map[string]float64, calc salary.Calculator) Summary {
	s := Summary{Records: len(employees)}
	for _, e := range employees {
		s.TotalAdvanceTaken += e.AdvanceTaken
		s.TotalAdvanceRemaining += e.AdvanceRemaining
		if !e.BonusEligible {
			s.ProjectedYearEndBonus += calc.ProjectedYearEndBonus(ytdByEmployee[e.ID])
		}
	}
	return s
}

// PayoutTotals folds a payout history with exhaustive kind matching.
func PayoutTotals(payouts []salary.Payout) (weeklyPay, monthlyPay float64, err error) {
	for _, p := range payouts {
		switch p.Kind {
		case salary.KindWeekly:
			weeklyPay += p.FinalPay
		case salary.KindMonthly:
			monthlyPay += p.FinalPay
		default:
			return 0, 0, fmt.Errorf("%w: %q", salary.ErrUnknownKind, p.Kind)
		}
	}
	return weeklyPay, monthlyPay, nil
}
