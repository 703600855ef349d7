package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gosimple/slug"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	quotationdomain "github.com/smallbiznis/quotehub/internal/quotation/domain"
)

// Renderer produces printable quotation documents.
type Renderer interface {
	RenderQuotation(ctx context.Context, quotation *quotationdomain.Quotation) (io.Reader, error)
}

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

// AttachmentName derives the download filename from the quotation title.
func AttachmentName(quotation *quotationdomain.Quotation) string {
	name := slug.Make(quotation.Title)
	if name == "" {
		name = slug.Make(quotation.Code)
	}
	if name == "" {
		name = quotation.ID
	}
	return name + ".pdf"
}

func formatAmount(amount int64, currencyCode string) string {
	if currencyCode == "" {
		return fmt.Sprintf("%d", amount)
	}
	return fmt.Sprintf("%d %s", amount, strings.ToUpper(currencyCode))
}

func (r *renderer) RenderQuotation(ctx context.Context, quotation *quotationdomain.Quotation) (io.Reader, error) {
	if quotation == nil {
		return nil, fmt.Errorf("nil quotation")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Quotation", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	meta := []string{
		"Code: " + quotation.Code,
		"Title: " + quotation.Title,
	}
	if quotation.Date != nil {
		meta = append(meta, "Date: "+quotation.Date.Format("2006-01-02"))
	}
	metaCol := col.New(6)
	for i, line := range meta {
		metaCol.Add(text.New(line, props.Text{Top: float64(i * 4)}))
	}
	m.AddRow(18, metaCol, col.New(6))

	var currency string
	if quotation.Region != nil {
		currency = quotation.Region.CurrencyCode
	}

	if quotation.Customer != nil {
		m.AddRow(20,
			col.New(6).Add(
				text.New("Prepared for", props.Text{Style: fontstyle.Bold}),
				text.New(strings.TrimSpace(quotation.Customer.FirstName+" "+quotation.Customer.LastName), props.Text{Top: 5}),
				text.New(quotation.Customer.Email, props.Text{Top: 9}),
			),
			col.New(6),
		)
	}

	if quotation.Heading != "" {
		m.AddRow(12, text.NewCol(12, quotation.Heading, props.Text{Size: 10}))
	}

	m.AddRow(10,
		text.NewCol(6, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Volume", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	var total int64
	addLine := func(line quotationdomain.QuotationLine, indent string) {
		amount := int64(line.Volume) * line.UnitPrice
		total += amount
		m.AddRow(8,
			text.NewCol(6, indent+line.ProductID, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Volume), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAmount(line.UnitPrice, currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAmount(amount, currency), props.Text{Size: 9, Align: align.Right}),
		)
	}
	for _, line := range quotation.QuotationLines {
		if line.ParentLineID != nil {
			continue
		}
		addLine(line, "")
		for _, child := range line.ChildProduct {
			addLine(child, "  + ")
		}
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, formatAmount(total, currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	terms := []struct{ label, value string }{
		{"Payment term", quotation.PaymentTerm},
		{"Delivery lead time", quotation.DeliveryLeadTime},
		{"Warranty", quotation.Warranty},
		{"Install support", quotation.InstallSupport},
		{"Conditions", quotation.Condition},
	}
	for _, term := range terms {
		if term.value == "" {
			continue
		}
		m.AddRow(8,
			text.NewCol(3, term.label, props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(9, term.value, props.Text{Size: 9}),
		)
	}

	if quotation.AppendixA != "" {
		m.AddRow(16, text.NewCol(12, "Appendix A: "+quotation.AppendixA, props.Text{Size: 8}))
	}
	if quotation.AppendixB != "" {
		m.AddRow(16, text.NewCol(12, "Appendix B: "+quotation.AppendixB, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
