package printview

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX renders doc as a one-sheet workbook. Money cells are numeric so
// the sheet can be recalculated.
func RenderXLSX(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Offert"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := map[string]float64{"A": 12, "B": 44, "C": 10, "D": 14, "E": 16}
	for c, w := range widths {
		if err := f.SetColWidth(sheet, c, c, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#005482"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := `#,##0.00 "kr"`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	set := func(cell string, v any) {
		_ = f.SetCellValue(sheet, cell, v)
	}

	set("A1", sanitizeCell(doc.Company.Name))
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	set("A2", sanitizeCell(doc.Title))
	set("A3", "Offertnr")
	set("B3", sanitizeCell(dash(doc.Number)))
	set("A4", "Datum")
	set("B4", doc.Date)
	set("A5", "Kund")
	set("B5", sanitizeCell(doc.CustomerName))
	set("A6", "E-post")
	set("B6", sanitizeCell(doc.CustomerEmail))
	set("A7", "Uppdrag")
	set("B7", sanitizeCell(doc.JobSummary))

	for i, h := range []string{"Typ", "Beskrivning", "Antal", "À-pris", "Summa"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 9)
		set(cell, h)
	}
	_ = f.SetCellStyle(sheet, "A9", "E9", headerStyle)

	r := 10
	for _, l := range doc.Lines {
		set(fmt.Sprintf("A%d", r), l.Kind.Label())
		set(fmt.Sprintf("B%d", r), sanitizeCell(l.Description))
		set(fmt.Sprintf("C%d", r), l.Qty.InexactFloat64())
		set(fmt.Sprintf("D%d", r), l.UnitPriceSEK.InexactFloat64())
		set(fmt.Sprintf("E%d", r), l.Total().InexactFloat64())
		_ = f.SetCellStyle(sheet, fmt.Sprintf("D%d", r), fmt.Sprintf("E%d", r), moneyStyle)
		r++
	}

	r++
	totals := []struct {
		label string
		value float64
		style int
	}{
		{"Delsumma", doc.SubtotalSEK.InexactFloat64(), moneyStyle},
		{"ROT-avdrag", doc.ROTDiscountSEK.Neg().InexactFloat64(), moneyStyle},
		{"Att betala", doc.TotalSEK.InexactFloat64(), totalStyle},
	}
	for _, t := range totals {
		set(fmt.Sprintf("D%d", r), t.label)
		set(fmt.Sprintf("E%d", r), t.value)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), t.style)
		r++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell stops spreadsheet apps from reading user text as a formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
