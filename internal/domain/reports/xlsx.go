package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pieceledger/internal/domain/work"
)

// WorkLedgerXLSX renders the work entries to a spreadsheet, one row
// per entry with a trailing total-meters row.
func WorkLedgerXLSX(entries []work.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Work Ledger"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Employee", "Work Type", "Shift", "Fabric Meters", "Recorded At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	var totalMeters float64
	for i, entry := range entries {
		row := i + 2
		totalMeters += entry.FabricMeters
		values := []any{
			entry.WorkDate.Format("2006-01-02"),
			entry.EmployeeName,
			entry.WorkType,
			entry.Shift,
			entry.FabricMeters,
			entry.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(entries) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), totalMeters); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
