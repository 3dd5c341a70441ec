package pdf

import (
	"context"
	"fmt"

	"github.com/acueductoapp/acueducto/internal/format"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type marotoProvider struct{}

func New() Provider {
	return &marotoProvider{}
}

func (p *marotoProvider) RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Factura de Acueducto", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New(invoiceNumberLabel(doc.InvoiceNumber), props.Text{Top: 0, Style: fontstyle.Bold}),
			text.New("Fecha de emisión: "+format.SpanishDate(doc.EmissionDate), props.Text{Top: 5}),
			text.New("Período: "+format.Period(doc.PeriodStart, doc.PeriodEnd), props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Contrato: "+doc.Contract, props.Text{Top: 0}),
			text.New(doc.CustomerName, props.Text{Top: 5}),
			text.New(doc.Address, props.Text{Top: 10}),
			text.New("Zona: "+doc.Zone, props.Text{Top: 15}),
		),
	)

	m.AddRow(16,
		col.New(4).Add(
			text.New("Lectura anterior", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(readingLabel(doc.PreviousReading), props.Text{Top: 5, Size: 9}),
		),
		col.New(4).Add(
			text.New("Lectura actual", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(readingLabel(doc.CurrentReading), props.Text{Top: 5, Size: 9}),
		),
		col.New(4).Add(
			text.New("Consumo", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(fmt.Sprintf("%.0f m³", doc.Consumption), props.Text{Top: 5, Size: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(8, "Concepto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Valor", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(8, fmt.Sprintf("Consumo (tarifa %s por unidad)", format.COP(doc.UnitRate, 0)), props.Text{Size: 9}),
		text.NewCol(4, format.COP(float64(doc.ConsumptionCost), 2), props.Text{Size: 9, Align: align.Right}),
	)
	if doc.Credit != 0 {
		label := "Saldo pendiente"
		if doc.CreditDescription != "" {
			label = doc.CreditDescription
		}
		m.AddRow(8,
			text.NewCol(8, label, props.Text{Size: 9}),
			text.NewCol(4, format.COP(doc.Credit, 2), props.Text{Size: 9, Align: align.Right}),
		)
	}
	if doc.ExtraCharges != 0 {
		label := "Cargos adicionales"
		if doc.ExtraChargesDescription != "" {
			label = doc.ExtraChargesDescription
		}
		m.AddRow(8,
			text.NewCol(8, label, props.Text{Size: 9}),
			text.NewCol(4, format.COP(doc.ExtraCharges, 2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		text.NewCol(8, "Total a pagar", props.Text{Style: fontstyle.Bold, Size: 11}),
		text.NewCol(4, format.COP(float64(doc.Total), 2), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)

	if len(doc.History) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Historial de lecturas", props.Text{Style: fontstyle.Bold, Size: 10, Top: 3}),
		)
		m.AddRow(8,
			text.NewCol(8, "Fecha", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(4, "Lectura", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, entry := range doc.History {
			m.AddRow(7,
				text.NewCol(8, format.SpanishDate(entry.Date), props.Text{Size: 9}),
				text.NewCol(4, fmt.Sprintf("%.0f", entry.Value), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	rendered, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return rendered.GetBytes(), nil
}

func invoiceNumberLabel(number int64) string {
	if number == 0 {
		return "Factura sin numerar"
	}
	return fmt.Sprintf("Factura No. %d", number)
}

func readingLabel(value *float64) string {
	if value == nil {
		return "Sin registro"
	}
	return fmt.Sprintf("%.0f", *value)
}
