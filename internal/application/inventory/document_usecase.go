package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// MovementSlip datos del comprobante de un lote.
type MovementSlip struct {
	ReferenceID string
	Kind        string // receipt | delivery | adjustment | movement
	Status      string
	ScheduleAt  time.Time
	From        string
	To          string
	Responsible string
	Lines       []SlipLine
	Total       decimal.Decimal
	GeneratedAt time.Time
}

// SlipLine una línea del comprobante valorizada a precio de venta.
type SlipLine struct {
	ProductID int64
	SKUCode   string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Value     decimal.Decimal
}

// HistoryRow una fila de la planilla de historial.
type HistoryRow struct {
	ID          int64
	ReferenceID string
	Kind        string
	ScheduleAt  time.Time
	ProductName string
	From        string
	To          string
	Quantity    int
	Status      string
	Responsible string
}

// DocumentUseCase genera el comprobante PDF de un lote y la exportación XLSX del historial.
type DocumentUseCase struct {
	logRepo     repository.ProductLogRepository
	productRepo repository.ProductRepository
	slips       SlipRenderer
	exporter    HistoryExporter
	now         func() time.Time
}

func NewDocumentUseCase(
	logRepo repository.ProductLogRepository,
	productRepo repository.ProductRepository,
	slips SlipRenderer,
	exporter HistoryExporter,
) *DocumentUseCase {
	return &DocumentUseCase{
		logRepo:     logRepo,
		productRepo: productRepo,
		slips:       slips,
		exporter:    exporter,
		now:         time.Now,
	}
}

// MovementSlipPDF arma el comprobante del lote y lo renderiza. Retorna (pdf, filename, error).
func (uc *DocumentUseCase) MovementSlipPDF(ctx context.Context, referenceID string) ([]byte, string, error) {
	ref, err := requireText("reference_id", referenceID)
	if err != nil {
		return nil, "", err
	}
	logs, err := uc.logRepo.List(ctx, repository.ProductLogFilter{ReferenceID: ref})
	if err != nil {
		return nil, "", fail("load movement slip", err)
	}
	if len(logs) == 0 {
		return nil, "", fmt.Errorf("referencia %q: %w", ref, domain.ErrNotFound)
	}

	head := logs[0]
	slip := MovementSlip{
		ReferenceID: ref,
		Kind:        classify(head.ReferenceID, head.From, head.To),
		Status:      string(head.Status),
		ScheduleAt:  head.ScheduleAt,
		From:        head.From,
		To:          head.To,
		Responsible: head.Responsible,
		Total:       decimal.Zero,
		GeneratedAt: uc.now(),
	}
	for _, l := range logs {
		line := SlipLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: decimal.Zero}
		p, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, "", fail("load movement slip product", err)
		}
		if p != nil {
			line.SKUCode, line.Name, line.UnitPrice = p.SKUCode, p.Name, p.Price
		}
		line.Value = inventory.LineValue(line.UnitPrice, line.Quantity)
		slip.Total = slip.Total.Add(line.Value)
		slip.Lines = append(slip.Lines, line)
	}

	pdf, err := uc.slips.RenderSlip(slip)
	if err != nil {
		return nil, "", fmt.Errorf("render movement slip: %w", err)
	}
	return pdf, strings.ReplaceAll(ref, "/", "-") + ".pdf", nil
}

// ExportHistoryXLSX exporta todos los movimientos con el nombre de producto.
func (uc *DocumentUseCase) ExportHistoryXLSX(ctx context.Context) ([]byte, string, error) {
	logs, err := uc.logRepo.ListWithProductName(ctx, repository.ProductLogFilter{})
	if err != nil {
		return nil, "", fail("load move history", err)
	}
	rows := make([]*HistoryRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, &HistoryRow{
			ID:          l.ID,
			ReferenceID: l.ReferenceID,
			Kind:        classify(l.ReferenceID, l.From, l.To),
			ScheduleAt:  l.ScheduleAt,
			ProductName: l.ProductName,
			From:        l.From,
			To:          l.To,
			Quantity:    l.Quantity,
			Status:      string(l.Status),
			Responsible: l.Responsible,
		})
	}
	data, err := uc.exporter.ExportHistory(rows)
	if err != nil {
		return nil, "", fmt.Errorf("export move history: %w", err)
	}
	return data, "move-history-" + uc.now().Format("20060102") + ".xlsx", nil
}

// classify la regla de ajuste va primero: un ajuste también cumple la de recepción.
func classify(ref, from, to string) string {
	switch {
	case inventory.IsAdjustment(ref, from, to):
		return "adjustment"
	case inventory.IsReceipt(ref, to):
		return "receipt"
	case inventory.IsDelivery(ref, to):
		return "delivery"
	}
	return "movement"
}
