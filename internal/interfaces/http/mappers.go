package http

import (
	"github.com/jhoicas/boutique-api/internal/application/catalog"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	pnl "github.com/jhoicas/boutique-api/internal/domain/finance"
)

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			VariantID:   it.VariantID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
			ProductName: it.Snapshot.Name,
			ImageURL:    it.Snapshot.ImageURL,
			SKU:         it.Snapshot.SKU,
			Size:        it.Snapshot.Size,
			Color:       it.Snapshot.Color,
			UnitCost:    it.Snapshot.UnitCost,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Customer: dto.CustomerDTO{
			Name:            o.Customer.Name,
			Email:           o.Customer.Email,
			Phone:           o.Customer.Phone,
			ShippingAddress: o.Customer.ShippingAddress,
		},
		Items:              items,
		Subtotal:           o.Subtotal,
		ShippingCost:       o.ShippingCost,
		ShippingCostActual: o.ShippingCostActual,
		TotalAmount:        o.TotalAmount,
		TrackingNumber:     o.TrackingNumber,
		CancelledReason:    o.CancelledReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		PaidAt:             o.PaidAt,
		ShippedAt:          o.ShippedAt,
		DeliveredAt:        o.DeliveredAt,
		CancelledAt:        o.CancelledAt,
	}
}

func toLogResponse(l *entity.InventoryLogEntry) dto.InventoryLogResponse {
	return dto.InventoryLogResponse{
		ID:           l.ID,
		VariantID:    l.VariantID,
		Kind:         l.Kind,
		Quantity:     l.Quantity,
		UnitCost:     l.UnitCost,
		TotalValue:   l.TotalValue,
		Description:  l.Description,
		ReferenceID:  l.ReferenceID,
		PrevStock:    l.PrevStock,
		PrevUnitCost: l.PrevUnitCost,
		CreatedAt:    l.CreatedAt,
	}
}

func toFinanceEntryResponse(e *entity.FinanceEntry) dto.FinanceEntryResponse {
	return dto.FinanceEntryResponse{
		ID:          e.ID,
		Type:        e.Type,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date,
		Source:      e.Source,
		RelatedID:   e.RelatedID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		ReversedAt:  e.ReversedAt,
	}
}

func toStatsResponse(s *pnl.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		From:                s.From,
		To:                  s.To,
		VATRate:             s.VATRate,
		OrderCount:          s.OrderCount,
		OrderRevenue:        s.OrderRevenue,
		OtherIncome:         s.OtherIncome,
		GrossRevenue:        s.GrossRevenue,
		COGS:                s.COGS,
		VAT:                 s.VAT,
		OperationalExpenses: s.OperationalExpenses,
		NetProfit:           s.NetProfit,
		Margin:              s.Margin,
		CashBalance:         s.CashBalance,
		PeriodIncome:        s.PeriodIncome,
		PeriodExpense:       s.PeriodExpense,
	}
}

func toSettingsResponse(s *entity.StoreSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		ShippingFee:           s.ShippingFee,
		FreeShippingThreshold: s.FreeShippingThreshold,
		VATRate:               s.VATRate,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toVariantResponse(v *entity.Variant) dto.VariantResponse {
	return catalog.ToVariantResponse(v)
}
