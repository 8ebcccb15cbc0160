/*
Package export renders already-built report rows to spreadsheets.

PURPOSE:
  Pure presentation: consumes the ordered rows the report aggregator
  produced, including the distinguishable total rows, and writes them to an
  xlsx workbook with excelize. No values are computed here.

SEE ALSO:
  - attendance/report.go: Row construction and all derived-value math
*/
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/attendance-engine/attendance"
	"github.com/xuri/excelize/v2"
)

// DailyWorkbook builds a workbook for a daily report.
func DailyWorkbook(date string, rows []attendance.DailyRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Daily Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []any{"Employee ID", "Name", "Check-In", "Check-Out", "Hours", "Salary"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	totalStyle, err := boldStyle(f)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)

		label := fmt.Sprintf("%s (%d)", row.EmployeeID, row.Seq)
		if row.Total {
			label = fmt.Sprintf("%s (total)", row.EmployeeID)
		}

		values := []any{label, row.Name, row.CheckIn, row.CheckOut, cellNumber(row.Hours, row.HasHours), cellNumber(row.Pay, row.HasHours)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
		if row.Total {
			end := fmt.Sprintf("F%d", i+2)
			if err := f.SetCellStyle(sheet, cell, end, totalStyle); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// RangeWorkbook builds a workbook for a range report, including the grand
// total row.
func RangeWorkbook(report *attendance.RangeReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Range Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []any{"Date", "First Check-In", "Last Check-Out", "Hours", "Salary"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	line := 2
	for _, day := range report.Days {
		values := []any{day.Date, day.FirstCheckIn, day.LastCheckOut, number(day.Hours), number(day.Pay)}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &values); err != nil {
			return nil, err
		}
		line++
	}

	totalStyle, err := boldStyle(f)
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("Total (%s to %s)", report.Start, report.End)
	totals := []any{label, "", "", number(report.TotalHours), number(report.TotalPay)}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &totals); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", line), fmt.Sprintf("E%d", line), totalStyle); err != nil {
		return nil, err
	}

	return f, nil
}

func boldStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
}

func number(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

// cellNumber renders blank for sessions with undefined hours (open or
// unparsable), mirroring the report tables.
func cellNumber(d decimal.Decimal, has bool) any {
	if !has {
		return ""
	}
	return number(d)
}
