// Package export writes admin views as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"credito-inmobiliario/internal/domain/funding"
	"credito-inmobiliario/internal/domain/loan"
)

const (
	LoansSheet  = "Creditos"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var loanColumns = []string{
	"Código", "Propietario", "Ciudad", "Estado", "Solicitado", "Fondeado", "Restante",
	"% Fondeo", "LTV %", "Tasa NM", "Plazo (meses)", "Inversiones pendientes", "Monto pendiente", "Creado",
}

// LoansXLSX renders the admin loans dashboard as an .xlsx workbook.
func LoansXLSX(rows []loan.DashboardRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LoansSheet); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E79"}},
	})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("export: money style: %w", err)
	}

	for i, col := range loanColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(LoansSheet, cell, col); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(loanColumns), 1)
	if err := f.SetCellStyle(LoansSheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetPanes(LoansSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	for i, r := range rows {
		ltv, _ := funding.LTV(r.AmountRequested, r.CommercialValue)
		values := []any{
			r.Code,
			r.OwnerName,
			r.PropertyCity,
			string(r.Status),
			r.AmountRequested.InexactFloat64(),
			r.AmountFunded.InexactFloat64(),
			funding.Remaining(r.AmountRequested, r.AmountFunded).InexactFloat64(),
			funding.FundingPercent(r.AmountRequested, r.AmountFunded).Round(2).InexactFloat64(),
			ltv.Round(2).InexactFloat64(),
			r.InterestRateNM.InexactFloat64(),
			r.TermMonths,
			r.PendingCount,
			r.PendingAmount.InexactFloat64(),
			r.CreatedAt.Format("2006-01-02"),
		}
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(LoansSheet, cell, &values); err != nil {
			return nil, err
		}
		from, _ := excelize.CoordinatesToCellName(5, row)
		to, _ := excelize.CoordinatesToCellName(7, row)
		if err := f.SetCellStyle(LoansSheet, from, to, moneyStyle); err != nil {
			return nil, err
		}
		pend, _ := excelize.CoordinatesToCellName(13, row)
		if err := f.SetCellStyle(LoansSheet, pend, pend, moneyStyle); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(LoansSheet, "A", "B", 22)
	_ = f.SetColWidth(LoansSheet, "E", "G", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
