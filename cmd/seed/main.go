// seed carga el catálogo inicial (productos, variantes y stock) desde un CSV.
//
// Uso: go run ./cmd/seed [-charset latin1] [-expense] catalogo.csv
// Columnas: name,base_price,sku,size,color,quantity,unit_cost,image_url
// Las planillas exportadas desde Excel suelen venir en ISO-8859-1; -charset latin1 las decodifica.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/boutique-api/internal/application/catalog"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func main() {
	charset := flag.String("charset", "utf-8", "codificación del archivo: utf-8 | latin1 | windows-1252")
	expense := flag.Bool("expense", false, "registrar el stock inicial como egreso de inventario")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-charset latin1] [-expense] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	in, err := decodeReader(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	importer := catalog.NewImporter(
		catalog.NewCatalogUseCase(repos.Products, repos.Variants),
		inventory.NewRecordPurchaseUseCase(postgres.NewTxRunner(pool), nil, log),
		log,
	)
	res, err := importer.Import(ctx, in, *expense)
	if err != nil {
		log.Fatal().Err(err).Msg("importación interrumpida")
	}
	for _, s := range res.Skipped {
		fmt.Fprintln(os.Stderr, "omitida:", s)
	}
	fmt.Printf("Importados %d productos, %d variantes, %d compras (%d filas omitidas)\n",
		res.Products, res.Variants, res.Purchases, len(res.Skipped))
}

func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado %q", charset)
	}
}
