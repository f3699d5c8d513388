package reports

import (
	"bytes"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const trialBalanceSheet = "Trial Balance"

// ExportTrialBalanceExcel renders the grouped trial balance as an XLSX
// workbook: one header row, a bold group row per account-type group, one
// row per account and the TOTAL row last.
func ExportTrialBalanceExcel(report *TrialBalanceReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(trialBalanceSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	headers := []string{"Account", "Debit", "Credit", "Debit YTD", "Credit YTD"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(trialBalanceSheet, cell, header); err != nil {
			return nil, err
		}
	}
	if err := f.SetRowStyle(trialBalanceSheet, 1, 1, boldStyle); err != nil {
		return nil, err
	}

	row := 2
	writeAmounts := func(rowIdx int, name string, debit, credit, debitYtd, creditYtd decimal.Decimal) error {
		values := []interface{}{
			name,
			debit.InexactFloat64(),
			credit.InexactFloat64(),
			debitYtd.InexactFloat64(),
			creditYtd.InexactFloat64(),
		}
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(trialBalanceSheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	for _, group := range report.Groups {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(trialBalanceSheet, cell, group.GroupName); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(trialBalanceSheet, row, row, boldStyle); err != nil {
			return nil, err
		}
		row++

		for _, account := range group.Rows {
			if err := writeAmounts(row, account.AccountName,
				account.DebitAmount, account.CreditAmount,
				account.DebitAmountYtd, account.CreditAmountYtd); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := writeAmounts(row, report.Total.AccountName,
		report.Total.DebitAmount, report.Total.CreditAmount,
		report.Total.DebitAmountYtd, report.Total.CreditAmountYtd); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(trialBalanceSheet, row, row, boldStyle); err != nil {
		return nil, err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
