package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// Columnas del CSV de catálogo. quantity/unit_cost/image_url son opcionales.
var importColumns = []string{"name", "base_price", "sku", "size", "color", "quantity", "unit_cost", "image_url"}

// ImportResult resumen de una importación.
type ImportResult struct {
	Products  int
	Variants  int
	Purchases int
	Skipped   []string // "línea N: motivo"
}

// Importer carga productos, variantes y stock inicial desde un CSV. Cada fila es una variante;
// las filas con el mismo nombre de producto comparten producto. El stock entra como compra
// para que el costo promedio y el libro de inventario queden consistentes.
type Importer struct {
	catalog   *CatalogUseCase
	purchases *inventory.RecordPurchaseUseCase
	log       *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(catalog *CatalogUseCase, purchases *inventory.RecordPurchaseUseCase, log *logger.Logger) *Importer {
	return &Importer{catalog: catalog, purchases: purchases, log: log.Component("catalog-import")}
}

type importRow struct {
	line      int
	name      string
	basePrice decimal.Decimal
	sku       string
	size      string
	color     string
	quantity  int
	unitCost  decimal.Decimal
	imageURL  string
}

// Import lee el CSV (con cabecera) y crea lo que falte. Una fila inválida o un SKU repetido se
// omite y se reporta; un error de almacenamiento corta la importación.
func (im *Importer) Import(ctx context.Context, r io.Reader, registerExpense bool) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	products := make(map[string]string) // nombre normalizado -> id
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("línea %d: %v", line, err))
			continue
		}
		row, err := parseRow(rec, idx, line)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("línea %d: %v", line, err))
			continue
		}

		key := strings.ToLower(row.name)
		productID, ok := products[key]
		if !ok {
			p, err := im.catalog.CreateProduct(ctx, dto.CreateProductRequest{Name: row.name, BasePrice: row.basePrice, ImageURL: row.imageURL})
			if err != nil {
				return res, fmt.Errorf("línea %d: crear producto: %w", line, err)
			}
			productID = p.ID
			products[key] = productID
			res.Products++
		}

		v, err := im.catalog.CreateVariant(ctx, productID, dto.CreateVariantRequest{SKU: row.sku, Size: row.size, Color: row.color})
		if errors.Is(err, domain.ErrDuplicate) {
			res.Skipped = append(res.Skipped, fmt.Sprintf("línea %d: SKU %s ya existe", line, row.sku))
			continue
		}
		if err != nil {
			return res, fmt.Errorf("línea %d: crear variante: %w", line, err)
		}
		res.Variants++

		if row.quantity > 0 {
			if _, err := im.purchases.RecordPurchase(ctx, inventory.PurchaseInput{
				VariantID:       v.ID,
				Quantity:        row.quantity,
				UnitCost:        row.unitCost,
				Description:     "Stock inicial (importación)",
				RegisterExpense: registerExpense,
			}); err != nil {
				return res, fmt.Errorf("línea %d: stock inicial: %w", line, err)
			}
			res.Purchases++
		}
	}
	im.log.Info().Int("products", res.Products).Int("variants", res.Variants).
		Int("purchases", res.Purchases).Int("skipped", len(res.Skipped)).Msg("catálogo importado")
	return res, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range importColumns[:3] {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q (columnas: %s)", required, strings.Join(importColumns, ","))
		}
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int, line int) (importRow, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	row := importRow{line: line, name: get("name"), sku: get("sku"), size: get("size"), color: get("color"), imageURL: get("image_url")}
	if row.name == "" || row.sku == "" {
		return row, errors.New("name y sku son obligatorios")
	}
	price, err := decimal.NewFromString(get("base_price"))
	if err != nil || price.IsNegative() {
		return row, fmt.Errorf("base_price inválido %q", get("base_price"))
	}
	row.basePrice = price
	if q := get("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return row, fmt.Errorf("quantity inválida %q", q)
		}
		row.quantity = n
	}
	row.unitCost = decimal.Zero
	if c := get("unit_cost"); c != "" {
		cost, err := decimal.NewFromString(c)
		if err != nil || cost.IsNegative() {
			return row, fmt.Errorf("unit_cost inválido %q", c)
		}
		row.unitCost = cost
	}
	return row, nil
}
