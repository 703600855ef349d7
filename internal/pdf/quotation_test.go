package pdf

import (
	"context"
	"io"
	"testing"

	quotationdomain "github.com/smallbiznis/quotehub/internal/quotation/domain"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentName(t *testing.T) {
	cases := []struct {
		quotation quotationdomain.Quotation
		want      string
	}{
		{quotationdomain.Quotation{Title: "Factory Line Upgrade"}, "factory-line-upgrade.pdf"},
		{quotationdomain.Quotation{Code: "Q-2024-001"}, "q-2024-001.pdf"},
		{quotationdomain.Quotation{ID: "quot_abc"}, "quot_abc.pdf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AttachmentName(&tc.quotation))
	}
}

func TestRenderQuotation(t *testing.T) {
	parentID := "qline_parent"
	quotation := &quotationdomain.Quotation{
		ID:    "quot_1",
		Code:  "Q-2024-001",
		Title: "Factory line upgrade",
		Region: &regiondomain.Region{
			ID: "reg_r1", Name: "EMEA", CurrencyCode: "eur",
		},
		PaymentTerm: "50% advance",
		QuotationLines: []quotationdomain.QuotationLine{
			{
				ID: parentID, ProductID: "prod_p1", Volume: 2, UnitPrice: 100,
				ChildProduct: []quotationdomain.QuotationLine{
					{ID: "qline_child", ParentLineID: &parentID, ProductID: "prod_addon", Volume: 1, UnitPrice: 25},
				},
			},
			// Child lines appear both nested and flat; only the nested copy
			// should be rendered.
			{ID: "qline_child", ParentLineID: &parentID, ProductID: "prod_addon", Volume: 1, UnitPrice: 25},
		},
	}

	out, err := New().RenderQuotation(context.Background(), quotation)
	require.NoError(t, err)

	data, err := io.ReadAll(out)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderQuotationNil(t *testing.T) {
	_, err := New().RenderQuotation(context.Background(), nil)
	assert.Error(t, err)
}
