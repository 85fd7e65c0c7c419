package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"5":         "5,00",
		"999.9":     "999,90",
		"25000.5":   "25.000,50",
		"1000000":   "1.000.000,00",
		"-1234.567": "-1.234,57",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderReceipt_GeneraPDF(t *testing.T) {
	sale := dto.SaleResponse{
		ID:          "7f3c2a10-5b1e-4c2b-9e0f-1a2b3c4d5e6f",
		ProductName: "Café molido 500g",
		ProductSKU:  "CAF-500",
		Quantity:    10,
		UnitPrice:   decimal.RequireFromString("5.00"),
		TotalAmount: decimal.RequireFromString("50.00"),
		Timestamp:   time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
	}
	out, err := NewReceiptGenerator().RenderReceipt("Tienda Centro", sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
