package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pnl "github.com/jhoicas/boutique-api/internal/domain/finance"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "$999,50", formatMoney(decimal.RequireFromString("999.5")))
	assert.Equal(t, "$25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.000.000,13", formatMoney(decimal.RequireFromString("1000000.125")))
	assert.Equal(t, "-$860,00", formatMoney(decimal.NewFromInt(-860)))
}

func TestRenderStats(t *testing.T) {
	g := NewMarotoPDFGenerator("Boutique Lina")
	s := &pnl.Stats{
		From:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC),
		VATRate:      decimal.RequireFromString("0.2"),
		OrderCount:   1,
		OrderRevenue: decimal.NewFromInt(1200),
		GrossRevenue: decimal.NewFromInt(1200),
		COGS:         decimal.NewFromInt(400),
		VAT:          decimal.NewFromInt(200),
		NetProfit:    decimal.NewFromInt(600),
		Margin:       decimal.NewFromInt(50),
		CashBalance:  decimal.NewFromInt(-860),
	}
	out, err := g.RenderStats(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = g.RenderStats(context.Background(), nil)
	assert.Error(t, err)
}
