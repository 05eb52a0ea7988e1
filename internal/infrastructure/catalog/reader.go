// Package catalog lee catálogos de productos (XLSX o CSV) para la carga inicial.
//
// La primera fila es la cabecera; las columnas se ubican por nombre, sin importar el orden:
//
//	sku_code | name | price | stocks
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

var required = []string{"sku_code", "name"}

// ErrEmptyCatalog el archivo no tiene cabecera.
var ErrEmptyCatalog = errors.New("catálogo vacío")

// ReadXLSX lee la primera hoja del libro.
func ReadXLSX(r io.Reader) ([]dto.CreateProductRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyCatalog
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// ReadCSV lee un CSV separado por comas o punto y coma. latin1 decodifica ISO-8859-1
// (exportaciones de Excel en Windows).
func ReadCSV(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		cr.Comma = ';'
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]dto.CreateProductRequest, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}
	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("falta la columna %q", name)
		}
	}
	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]dto.CreateProductRequest, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		p := dto.CreateProductRequest{
			SKUCode: cell(row, "sku_code"),
			Name:    cell(row, "name"),
			Price:   decimal.Zero,
		}
		if p.SKUCode == "" && p.Name == "" {
			continue // fila en blanco
		}
		if v := cell(row, "price"); v != "" {
			price, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
			if err != nil {
				return nil, fmt.Errorf("fila %d: price %q inválido", line, v)
			}
			p.Price = price
		}
		if v := cell(row, "stocks"); v != "" {
			stocks, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("fila %d: stocks %q inválido", line, v)
			}
			p.Stocks = stocks
		}
		out = append(out, p)
	}
	return out, nil
}
