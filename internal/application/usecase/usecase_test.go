package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ─── fakes ───────────────────────────────────────────────────────────────────

type memProducts struct{ m map[int64]*entity.Product }

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	p.ID = int64(len(r.m) + 1)
	r.m[p.ID] = p
	return nil
}
func (r *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) { return r.m[id], nil }
func (r *memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.m {
		if p.SKUCode == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProducts) Exists(_ context.Context, id int64) (bool, error) { _, ok := r.m[id]; return ok, nil }
func (r *memProducts) List(context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for i := int64(1); i <= int64(len(r.m)); i++ {
		if p, ok := r.m[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProducts) Update(_ context.Context, p *entity.Product) error { r.m[p.ID] = p; return nil }
func (r *memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := r.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

type memWarehouses struct{ m map[string]*entity.Warehouse }

func (r *memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.m[w.ShortCode]; ok {
		return domain.ErrDuplicate
	}
	w.ID = int64(len(r.m) + 1)
	r.m[w.ShortCode] = w
	return nil
}
func (r *memWarehouses) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	for _, w := range r.m {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}
func (r *memWarehouses) GetByShortCode(_ context.Context, code string) (*entity.Warehouse, error) {
	return r.m[code], nil
}
func (r *memWarehouses) List(context.Context) ([]*entity.Warehouse, error) { return nil, nil }
func (r *memWarehouses) Update(context.Context, *entity.Warehouse) error   { return nil }
func (r *memWarehouses) Delete(context.Context, int64) error               { return nil }

type memLocations struct{ list []*entity.Location }

func (r *memLocations) Create(_ context.Context, l *entity.Location) error {
	l.ID = int64(len(r.list) + 1)
	r.list = append(r.list, l)
	return nil
}
func (r *memLocations) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	for _, l := range r.list {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}
func (r *memLocations) List(context.Context) ([]*entity.Location, error) { return r.list, nil }
func (r *memLocations) ListByWarehouse(_ context.Context, code string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.list {
		if l.WarehouseCode == code {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *memLocations) Update(context.Context, *entity.Location) error { return nil }
func (r *memLocations) Delete(context.Context, int64) error            { return nil }

type memUsers struct{ m map[int64]*entity.User }

func (r *memUsers) Create(context.Context, *entity.User) error { return nil }
func (r *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return r.m[id], nil
}
func (r *memUsers) GetByUsername(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *memUsers) GetByEmail(context.Context, string) (*entity.User, error)    { return nil, nil }
func (r *memUsers) List(context.Context) ([]*entity.User, error)                { return nil, nil }
func (r *memUsers) Update(_ context.Context, u *entity.User) error {
	r.m[u.ID] = u
	return nil
}
func (r *memUsers) SetRefreshToken(context.Context, int64, string) error { return nil }
func (r *memUsers) Delete(context.Context, int64) error                  { return nil }

// ─── products ────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateRejectsDuplicateSKUAndNegativeStock(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProducts{m: map[int64]*entity.Product{}})
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", SKUCode: "TOR-1", Price: decimal.RequireFromString("2.5"), Stocks: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Otro", SKUCode: "TOR-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Neg", SKUCode: "NEG", Stocks: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_UpdateAndLookup(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProducts{m: map[int64]*entity.Product{}})
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tuerca", SKUCode: "TUE-1", Stocks: 5})
	require.NoError(t, err)

	stocks := 8
	out, err := uc.Update(ctx, 1, dto.UpdateProductRequest{Stocks: &stocks})
	require.NoError(t, err)
	assert.Equal(t, 8, out.Stocks)
	assert.Equal(t, "Tuerca", out.Name)

	neg := -2
	_, err = uc.Update(ctx, 1, dto.UpdateProductRequest{Stocks: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bySKU, err := uc.GetBySKU(ctx, "TUE-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), bySKU.ID)

	_, err = uc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 99), domain.ErrNotFound)
}

// ─── locations ───────────────────────────────────────────────────────────────

func TestLocationUseCase_RequiresExistingWarehouse(t *testing.T) {
	warehouses := &memWarehouses{m: map[string]*entity.Warehouse{}}
	locations := &memLocations{}
	whUC := usecase.NewWarehouseUseCase(warehouses)
	uc := usecase.NewLocationUseCase(locations, warehouses)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Estante A", WarehouseCode: "WH"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = whUC.Create(ctx, dto.CreateWarehouseRequest{Name: "Principal", ShortCode: "WH"})
	require.NoError(t, err)
	_, err = whUC.Create(ctx, dto.CreateWarehouseRequest{Name: "Copia", ShortCode: "WH"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	loc, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Estante A", WarehouseCode: "WH"})
	require.NoError(t, err)
	assert.Equal(t, "WH", loc.WarehouseCode)

	list, err := uc.ListByWarehouse(ctx, "WH")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	missing := "ZZ"
	_, err = uc.Update(ctx, loc.ID, dto.UpdateLocationRequest{WarehouseCode: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── users ───────────────────────────────────────────────────────────────────

func TestUserUseCase_UpdateRehashesPassword(t *testing.T) {
	users := &memUsers{m: map[int64]*entity.User{1: {ID: 1, Username: "ana", Email: "ana@example.com", PasswordHash: "old"}}}
	uc := usecase.NewUserUseCase(users)
	ctx := context.Background()

	pw := "nueva-clave"
	out, err := uc.Update(ctx, 1, dto.UpdateUserRequest{Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.m[1].PasswordHash), []byte(pw)))

	short := "123"
	_, err = uc.Update(ctx, 1, dto.UpdateUserRequest{Password: &short})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
