package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// GetProductLog obtiene un movimiento por id.
func (uc *MovementUseCase) GetProductLog(ctx context.Context, id int64) (*dto.ProductLogResponse, error) {
	l, err := uc.logRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fail("get product log", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductLogResponse(l)
	return &out, nil
}

// ListProductLogs lista movimientos de la clase indicada (ClassAny = todos), ordenados por id.
func (uc *MovementUseCase) ListProductLogs(ctx context.Context, class repository.LogClass) ([]dto.ProductLogResponse, error) {
	list, err := uc.logRepo.List(ctx, repository.ProductLogFilter{Class: class})
	if err != nil {
		return nil, fail("list product logs", err)
	}
	return toProductLogResponses(list), nil
}

// ListProductLogsWithName igual que ListProductLogs, con el nombre del producto.
func (uc *MovementUseCase) ListProductLogsWithName(ctx context.Context, class repository.LogClass) ([]dto.ProductLogWithNameResponse, error) {
	list, err := uc.logRepo.ListWithProductName(ctx, repository.ProductLogFilter{Class: class})
	if err != nil {
		return nil, fail("list product logs with name", err)
	}
	return toProductLogWithNameResponses(list), nil
}

// ListByReference devuelve el lote completo; ErrNotFound si la referencia no tiene filas.
func (uc *MovementUseCase) ListByReference(ctx context.Context, referenceID string) ([]dto.ProductLogResponse, error) {
	ref, err := requireText("reference_id", referenceID)
	if err != nil {
		return nil, err
	}
	list, err := uc.logRepo.List(ctx, repository.ProductLogFilter{ReferenceID: ref})
	if err != nil {
		return nil, fail("list product logs by reference", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("referencia %q: %w", ref, domain.ErrNotFound)
	}
	return toProductLogResponses(list), nil
}

// ListByProduct movimientos de un producto.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID int64) ([]dto.ProductLogResponse, error) {
	list, err := uc.logRepo.List(ctx, repository.ProductLogFilter{ProductID: &productID})
	if err != nil {
		return nil, fail("list product logs by product", err)
	}
	return toProductLogResponses(list), nil
}

// ListByStatus movimientos en un estado; el estado debe pertenecer a la enumeración.
func (uc *MovementUseCase) ListByStatus(ctx context.Context, status string) ([]dto.ProductLogResponse, error) {
	st := entity.LogStatus(status)
	if !st.Valid() {
		return nil, domain.NewValidationError("status", "debe ser Draft, Waiting, Ready o Done")
	}
	list, err := uc.logRepo.List(ctx, repository.ProductLogFilter{Status: &st})
	if err != nil {
		return nil, fail("list product logs by status", err)
	}
	return toProductLogResponses(list), nil
}
