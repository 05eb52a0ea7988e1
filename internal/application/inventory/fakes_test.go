package inventory_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// fakeStore base en memoria compartida por los repos fake y el TxRunner fake.
type fakeStore struct {
	seq      int64
	logs     map[int64]*entity.ProductLog
	products map[int64]*entity.Product

	// failInsertAt hace fallar el n-ésimo Insert (1-based); 0 = nunca.
	failInsertAt int
	inserts      int
	commits      int
	rollbacks    int
}

var errDiskFull = errors.New("disk full")

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{logs: map[int64]*entity.ProductLog{}, products: map[int64]*entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStore) snapshot() map[int64]entity.ProductLog {
	snap := make(map[int64]entity.ProductLog, len(s.logs))
	for id, l := range s.logs {
		snap[id] = *l
	}
	return snap
}

func (s *fakeStore) restore(snap map[int64]entity.ProductLog) {
	s.logs = make(map[int64]*entity.ProductLog, len(snap))
	for id, l := range snap {
		cp := l
		s.logs[id] = &cp
	}
}

func (s *fakeStore) sorted() []*entity.ProductLog {
	out := make([]*entity.ProductLog, 0, len(s.logs))
	for _, l := range s.logs {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

type fakeTx struct{ s *fakeStore }

// Run descarta lo escrito por fn si retorna error (la secuencia no retrocede, igual que en PostgreSQL).
func (t fakeTx) Run(ctx context.Context, fn func(repository.ProductLogRepository, repository.ProductRepository) error) error {
	snap := t.s.snapshot()
	if err := fn(fakeLogRepo{t.s}, fakeProductRepo{t.s}); err != nil {
		t.s.restore(snap)
		t.s.rollbacks++
		return err
	}
	t.s.commits++
	return nil
}

// ─── ProductRepository ───────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

func (r fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = int64(len(r.s.products) + 1)
	r.s.products[p.ID] = p
	return nil
}

func (r fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKUCode == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r fakeProductRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.products[id]
	return ok, nil
}

func (r fakeProductRepo) List(context.Context) ([]*entity.Product, error) { return nil, nil }

func (r fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

// ─── ProductLogRepository ────────────────────────────────────────────────────

type fakeLogRepo struct{ s *fakeStore }

func (r fakeLogRepo) NextID(context.Context) (int64, error) {
	r.s.seq++
	return r.s.seq, nil
}

func (r fakeLogRepo) Insert(_ context.Context, l *entity.ProductLog) error {
	r.s.inserts++
	if r.s.failInsertAt != 0 && r.s.inserts == r.s.failInsertAt {
		return errDiskFull
	}
	if _, ok := r.s.products[l.ProductID]; !ok {
		return &domain.ProductNotFoundError{ProductID: l.ProductID}
	}
	if l.ID == 0 {
		r.s.seq++
		l.ID = r.s.seq
	}
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	r.s.logs[l.ID] = &cp
	return nil
}

func (r fakeLogRepo) GetByID(_ context.Context, id int64) (*entity.ProductLog, error) {
	l, ok := r.s.logs[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func matches(l *entity.ProductLog, f repository.ProductLogFilter) bool {
	switch f.Class {
	case repository.ClassReceipt:
		if !domaininv.IsReceipt(l.ReferenceID, l.To) {
			return false
		}
	case repository.ClassDelivery:
		if !domaininv.IsDelivery(l.ReferenceID, l.To) {
			return false
		}
	case repository.ClassAdjustment:
		if !domaininv.IsAdjustment(l.ReferenceID, l.From, l.To) {
			return false
		}
	}
	if f.ReferenceID != "" && l.ReferenceID != f.ReferenceID {
		return false
	}
	if f.ProductID != nil && l.ProductID != *f.ProductID {
		return false
	}
	if f.Status != nil && l.Status != *f.Status {
		return false
	}
	return true
}

func (r fakeLogRepo) List(_ context.Context, f repository.ProductLogFilter) ([]*entity.ProductLog, error) {
	var out []*entity.ProductLog
	for _, l := range r.s.sorted() {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r fakeLogRepo) ListWithProductName(ctx context.Context, f repository.ProductLogFilter) ([]*entity.ProductLogWithName, error) {
	list, _ := r.List(ctx, f)
	out := make([]*entity.ProductLogWithName, 0, len(list))
	for _, l := range list {
		name := ""
		if p, ok := r.s.products[l.ProductID]; ok {
			name = p.Name
		}
		out = append(out, &entity.ProductLogWithName{ProductLog: *l, ProductName: name})
	}
	return out, nil
}

func (r fakeLogRepo) ListByReferenceForUpdate(ctx context.Context, ref string) ([]*entity.ProductLog, error) {
	return r.List(ctx, repository.ProductLogFilter{ReferenceID: ref})
}

func (r fakeLogRepo) UpdateStatusByReference(_ context.Context, ref string, status entity.LogStatus) (int64, error) {
	var n int64
	for _, l := range r.s.logs {
		if l.ReferenceID == ref {
			l.Status = status
			n++
		}
	}
	return n, nil
}

func (r fakeLogRepo) Update(_ context.Context, id int64, p repository.ProductLogPatch) (*entity.ProductLog, error) {
	l, ok := r.s.logs[id]
	if !ok {
		return nil, nil
	}
	if p.ReferenceID != nil {
		l.ReferenceID = *p.ReferenceID
	}
	if p.ScheduleAt != nil {
		l.ScheduleAt = *p.ScheduleAt
	}
	if p.From != nil {
		l.From = *p.From
	}
	if p.To != nil {
		l.To = *p.To
	}
	if p.ProductID != nil {
		l.ProductID = *p.ProductID
	}
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Responsible != nil {
		l.Responsible = *p.Responsible
	}
	cp := *l
	return &cp, nil
}

func (r fakeLogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.logs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.logs, id)
	return nil
}

func (r fakeLogRepo) CountReady(_ context.Context, class repository.LogClass, today time.Time) (int, int, error) {
	ready := entity.StatusReady
	total := map[string]bool{}
	late := map[string]bool{}
	for _, l := range r.s.sorted() {
		if !matches(l, repository.ProductLogFilter{Class: class, Status: &ready}) {
			continue
		}
		total[l.ReferenceID] = true
		if l.ScheduleAt.Before(today) {
			late[l.ReferenceID] = true
		}
	}
	return len(total), len(late), nil
}
