package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// LocationUseCase CRUD de ubicaciones; la bodega referenciada debe existir.
type LocationUseCase struct {
	repo       repository.LocationRepository
	warehouses repository.WarehouseRepository
}

func NewLocationUseCase(repo repository.LocationRepository, warehouses repository.WarehouseRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, warehouses: warehouses}
}

func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	l := &entity.Location{Name: strings.TrimSpace(in.Name), WarehouseCode: strings.TrimSpace(in.WarehouseCode)}
	if l.Name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if err := uc.ensureWarehouse(ctx, l.WarehouseCode); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(l), nil
}

func (uc *LocationUseCase) List(ctx context.Context) ([]*dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toLocationResponses(list), nil
}

// ListByWarehouse ubicaciones de una bodega.
func (uc *LocationUseCase) ListByWarehouse(ctx context.Context, warehouseCode string) ([]*dto.LocationResponse, error) {
	list, err := uc.repo.ListByWarehouse(ctx, warehouseCode)
	if err != nil {
		return nil, err
	}
	return toLocationResponses(list), nil
}

func (uc *LocationUseCase) Update(ctx context.Context, id int64, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		l.Name = strings.TrimSpace(*in.Name)
	}
	if in.WarehouseCode != nil {
		code := strings.TrimSpace(*in.WarehouseCode)
		if err := uc.ensureWarehouse(ctx, code); err != nil {
			return nil, err
		}
		l.WarehouseCode = code
	}
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

func (uc *LocationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *LocationUseCase) ensureWarehouse(ctx context.Context, code string) error {
	if code == "" {
		return domain.NewValidationError("warehouse_code", "es obligatorio")
	}
	w, err := uc.warehouses.GetByShortCode(ctx, code)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.NewValidationError("warehouse_code", "la bodega no existe")
	}
	return nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:            l.ID,
		Name:          l.Name,
		WarehouseCode: l.WarehouseCode,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toLocationResponses(list []*entity.Location) []*dto.LocationResponse {
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out
}
