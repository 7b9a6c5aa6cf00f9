// Package catalog casos de uso de productos y variantes. Stock y costo no se editan aquí:
// entran por el libro de costos de inventario.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// CatalogUseCase alta y consulta de productos y variantes.
type CatalogUseCase struct {
	products repository.ProductRepository
	variants repository.VariantRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products repository.ProductRepository, variants repository.VariantRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, variants: variants}
}

// CreateProduct crea un producto activo por defecto.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.BasePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		BasePrice: in.BasePrice,
		ImageURL:  in.ImageURL,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// GetProduct obtiene un producto con sus variantes.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	variants, err := uc.variants.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, variants), nil
}

// ListProducts lista productos con paginación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// CreateVariant agrega una variante (talla/color) a un producto existente, con stock y costo en cero.
func (uc *CatalogUseCase) CreateVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if strings.TrimSpace(in.SKU) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PriceOverride != nil && in.PriceOverride.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	now := time.Now().UTC()
	v := &entity.Variant{
		ID:            uuid.New().String(),
		ProductID:     p.ID,
		SKU:           strings.TrimSpace(in.SKU),
		Size:          in.Size,
		Color:         in.Color,
		UnitCost:      decimal.Zero,
		PriceOverride: in.PriceOverride,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.variants.Create(ctx, v); err != nil {
		return nil, err
	}
	out := ToVariantResponse(v)
	return &out, nil
}

// GetVariant obtiene una variante con su stock, reservas y costo promedio.
func (uc *CatalogUseCase) GetVariant(ctx context.Context, id string) (*dto.VariantResponse, error) {
	v, err := uc.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVariantNotFound
	}
	out := ToVariantResponse(v)
	return &out, nil
}

func toProductResponse(p *entity.Product, variants []*entity.Variant) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		ImageURL:  p.ImageURL,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, v := range variants {
		out.Variants = append(out.Variants, ToVariantResponse(v))
	}
	return out
}

// ToVariantResponse mapea una variante a su DTO de salida.
func ToVariantResponse(v *entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		SKU:           v.SKU,
		Size:          v.Size,
		Color:         v.Color,
		Stock:         v.Stock,
		Reserved:      v.Reserved,
		Available:     v.Available(),
		UnitCost:      v.UnitCost,
		PriceOverride: v.PriceOverride,
		UpdatedAt:     v.UpdatedAt,
	}
}
