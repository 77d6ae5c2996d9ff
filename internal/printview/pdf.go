package printview

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfGrey   = &props.Color{Red: 110, Green: 110, Blue: 110}
	pdfHeadBg = &props.Color{Red: 0, Green: 84, Blue: 130}
	pdfZebra  = &props.Color{Red: 244, Green: 246, Blue: 248}
	pdfWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// RenderPDF renders doc as an A4 PDF.
func RenderPDF(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nothing to print")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Sida {current} av {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   pdfGrey,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, doc)
	addPDFCustomer(m, doc)
	addPDFLines(m, doc)
	addPDFTotals(m, doc)
	addPDFFooter(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, doc *Document) {
	title := "Offert"
	if doc.Title != "" {
		title = doc.Title
	}

	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(text.New(doc.Company.Name, props.Text{Size: 14, Style: fontstyle.Bold})),
			col.New(5).Add(text.New("OFFERT", props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(8).Add(
			col.New(12).Add(text.New(title, props.Text{Size: 11})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Offertnr: "+dash(doc.Number), props.Text{Size: 9, Color: pdfGrey})),
			col.New(6).Add(text.New("Datum: "+doc.Date, props.Text{Size: 9, Color: pdfGrey, Align: align.Right})),
		),
		row.New(6),
	)
}

func addPDFCustomer(m core.Maroto, doc *Document) {
	label := props.Text{Size: 9, Style: fontstyle.Bold}
	value := props.Text{Size: 9}

	m.AddRows(
		row.New(6).Add(col.New(2).Add(text.New("Kund", label)), col.New(10).Add(text.New(doc.CustomerName, value))),
		row.New(6).Add(col.New(2).Add(text.New("E-post", label)), col.New(10).Add(text.New(doc.CustomerEmail, value))),
		row.New(6).Add(col.New(2).Add(text.New("Uppdrag", label)), col.New(10).Add(text.New(doc.JobSummary, value))),
		row.New(6),
	)
}

func addPDFLines(m core.Maroto, doc *Document) {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Color: pdfWhite, Top: 1.5}
	headRight := head
	headRight.Align = align.Right
	headCell := &props.Cell{BackgroundColor: pdfHeadBg}

	m.AddRows(row.New(7).Add(
		col.New(2).Add(text.New("Typ", head)).WithStyle(headCell),
		col.New(4).Add(text.New("Beskrivning", head)).WithStyle(headCell),
		col.New(1).Add(text.New("Antal", headRight)).WithStyle(headCell),
		col.New(2).Add(text.New("À-pris", headRight)).WithStyle(headCell),
		col.New(3).Add(text.New("Summa", headRight)).WithStyle(headCell),
	))

	cell := props.Text{Size: 8, Top: 1.5}
	cellRight := cell
	cellRight.Align = align.Right

	for i, l := range doc.Lines {
		kind := col.New(2).Add(text.New(l.Kind.Label(), cell))
		desc := col.New(4).Add(text.New(l.Description, cell))
		qty := col.New(1).Add(text.New(Number(l.Qty), cellRight))
		price := col.New(2).Add(text.New(Money(l.UnitPriceSEK), cellRight))
		total := col.New(3).Add(text.New(Money(l.Total()), cellRight))

		if i%2 == 1 {
			zebra := &props.Cell{BackgroundColor: pdfZebra}
			kind = kind.WithStyle(zebra)
			desc = desc.WithStyle(zebra)
			qty = qty.WithStyle(zebra)
			price = price.WithStyle(zebra)
			total = total.WithStyle(zebra)
		}
		m.AddRows(row.New(7).Add(kind, desc, qty, price, total))
	}
	m.AddRows(row.New(6))
}

func addPDFTotals(m core.Maroto, doc *Document) {
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	bold := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(6).Add(col.New(9).Add(text.New("Delsumma", label)), col.New(3).Add(text.New(Money(doc.SubtotalSEK), value))),
		row.New(6).Add(col.New(9).Add(text.New("ROT-avdrag", label)), col.New(3).Add(text.New(Discount(doc.ROTDiscountSEK), value))),
		row.New(8).Add(col.New(9).Add(text.New("Att betala", bold)), col.New(3).Add(text.New(Money(doc.TotalSEK), bold))),
	)
}

func addPDFFooter(m core.Maroto, doc *Document) {
	m.AddRows(
		row.New(10),
		row.New(6).Add(col.New(12).Add(text.New(doc.Company.Footer, props.Text{Size: 7, Color: pdfGrey, Style: fontstyle.Italic}))),
	)
}
