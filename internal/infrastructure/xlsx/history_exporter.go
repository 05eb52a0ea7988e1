// Package xlsx exporta el historial de movimientos a una planilla Excel.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// SheetName nombre de la hoja del historial.
const SheetName = "Movimientos"

var headers = []interface{}{
	"ID", "Referencia", "Tipo", "Programado", "Producto", "Desde", "Hacia", "Cantidad", "Estado", "Responsable",
}

var colWidths = map[string]float64{
	"A": 8, "B": 18, "C": 12, "D": 18, "E": 30, "F": 20, "G": 20, "H": 10, "I": 10, "J": 18,
}

// HistoryExporter implementa inventory.HistoryExporter con excelize.
type HistoryExporter struct{}

// NewHistoryExporter construye el exportador.
func NewHistoryExporter() *HistoryExporter { return &HistoryExporter{} }

var _ inventory.HistoryExporter = (*HistoryExporter)(nil)

// ExportHistory escribe una fila por movimiento bajo una cabecera fija y devuelve el archivo.
func (e *HistoryExporter) ExportHistory(rows []*inventory.HistoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "J1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	for c, w := range colWidths {
		if err := f.SetColWidth(SheetName, c, c, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.ID,
			r.ReferenceID,
			r.Kind,
			r.ScheduleAt.Format("2006-01-02 15:04"),
			r.ProductName,
			r.From,
			r.To,
			r.Quantity,
			r.Status,
			r.Responsible,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: fijar cabecera: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
	if err != nil {
		return nil, err
	}
	if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
		return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
