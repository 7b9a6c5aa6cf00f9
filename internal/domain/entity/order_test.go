package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatus_Terminales(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())

	assert.False(t, OrderStatusPending.StockDeducted())
	assert.True(t, OrderStatusPaid.StockDeducted())
	assert.False(t, OrderStatusCancelled.IsRecognized())
}

func TestStoreSettings_ShippingQuote(t *testing.T) {
	s := &StoreSettings{ShippingFee: decimal.NewFromInt(50), FreeShippingThreshold: decimal.NewFromInt(1000)}
	assert.True(t, s.ShippingQuote(decimal.NewFromInt(999)).Equal(decimal.NewFromInt(50)))
	assert.True(t, s.ShippingQuote(decimal.NewFromInt(1000)).IsZero())

	s.FreeShippingThreshold = decimal.Zero
	assert.True(t, s.ShippingQuote(decimal.NewFromInt(5000)).Equal(decimal.NewFromInt(50)))
}

func TestVariant_EffectivePrice(t *testing.T) {
	p := &Product{BasePrice: decimal.NewFromInt(100)}
	v := &Variant{Stock: 5, Reserved: 2}
	assert.Equal(t, 3, v.Available())
	assert.True(t, v.EffectivePrice(p).Equal(decimal.NewFromInt(100)))

	override := decimal.NewFromInt(80)
	v.PriceOverride = &override
	assert.True(t, v.EffectivePrice(p).Equal(decimal.NewFromInt(80)))
}
