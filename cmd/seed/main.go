// seed carga un catálogo de productos (XLSX o CSV) y opcionalmente una bodega inicial.
//
// Uso: go run ./cmd/seed -file catalogo.xlsx [-latin1] [-warehouse WH:Bodega Principal]
// Los SKU que ya existen se omiten; el resto de errores corta la carga.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/catalog"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "catálogo .xlsx o .csv (columnas sku_code, name, price, stocks)")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	warehouse := flag.String("warehouse", "", "bodega a crear, formato CODIGO:Nombre")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	if *warehouse != "" {
		code, name, _ := strings.Cut(*warehouse, ":")
		if name == "" {
			name = code
		}
		whUC := usecase.NewWarehouseUseCase(postgres.NewWarehouseRepository(pool))
		_, err := whUC.Create(ctx, dto.CreateWarehouseRequest{ShortCode: code, Name: name})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			log.Info().Str("short_code", code).Msg("bodega ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear bodega")
		default:
			log.Info().Str("short_code", code).Msg("bodega creada")
		}
	}

	if *file == "" {
		return
	}
	rows, err := readCatalog(*file, *latin1)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer catálogo")
	}

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	created, skipped := 0, 0
	for _, p := range rows {
		_, err := productUC.Create(ctx, p)
		if errors.Is(err, domain.ErrDuplicate) {
			skipped++
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("sku_code", p.SKUCode).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo cargado")
}

func readCatalog(path string, latin1 bool) ([]dto.CreateProductRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return catalog.ReadXLSX(f)
	case ".csv", ".txt":
		return catalog.ReadCSV(f, latin1)
	}
	return nil, fmt.Errorf("extensión no soportada: %s", filepath.Ext(path))
}
