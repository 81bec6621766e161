package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pieceledger/internal/domain/employee"
	"pieceledger/internal/domain/salary"
)

// SalaryReportPDF renders the printable salary & expense summary for a
// branch: one row per employee plus the aggregate block.
func SalaryReportPDF(branchName string, employees []employee.Employee, ytdByEmployee map[string]float64, calc salary.Calculator, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary & Expense Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on: %s", now.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Branch: %s", branchName))
	pdf.Ln(10)

	headers := []string{"Employee", "Salary Type", "Rate/Salary", "Adv. Taken", "Adv. Remaining", "Bonus"}
	widths := []float64{45, 28, 32, 26, 30, 29}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(99, 102, 241)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, e := range employees {
		rateLabel := fmt.Sprintf("%.2f/meter", e.RatePerMeter)
		typeLabel := "Weekly (Meter-based)"
		if e.SalaryType == employee.SalaryTypeMonthly {
			rateLabel = fmt.Sprintf("%.2f/month", e.MonthlySalary)
			typeLabel = "Monthly (Fixed)"
		}
		bonusLabel := fmt.Sprintf("Per Salary (%.2f%%)", calc.BonusRatePercent)
		if !e.BonusEligible {
			bonusLabel = fmt.Sprintf("Year-End (%.2f%%)", calc.BonusRatePercent)
		}

		cells := []string{e.Name, typeLabel, rateLabel,
			fmt.Sprintf("%.2f", e.AdvanceTaken), fmt.Sprintf("%.2f", e.AdvanceRemaining), bonusLabel}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	summary := Summarize(employees, ytdByEmployee, calc)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 40, 40)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("Total Records: %d", summary.Records))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Advance Taken: %.2f", summary.TotalAdvanceTaken))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Advance Remaining: %.2f", summary.TotalAdvanceRemaining))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Projected Year-End Bonus (non-bonus employees): %.2f", summary.ProjectedYearEndBonus))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
