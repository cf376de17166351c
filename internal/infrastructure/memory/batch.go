package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var (
	_ repository.BatchRepository     = (*batchRepo)(nil)
	_ repository.PackagingRepository = (*packagingRepo)(nil)
)

type batchRepo struct {
	st func() *state
}

func (r *batchRepo) Create(_ context.Context, b *entity.Batch) error {
	st := r.st()
	if _, ok := st.batches[b.BatchID]; ok {
		return domain.Duplicate("Batch %s already exists", b.BatchID)
	}
	st.batches[b.BatchID] = cloneBatch(*b)
	return nil
}

func (r *batchRepo) GetByID(_ context.Context, batchID string) (*entity.Batch, error) {
	b, ok := r.st().batches[batchID]
	if !ok {
		return nil, nil
	}
	c := cloneBatch(b)
	return &c, nil
}

// GetForUpdate needs no lock: Run already serializes transactions.
func (r *batchRepo) GetForUpdate(ctx context.Context, batchID string) (*entity.Batch, error) {
	return r.GetByID(ctx, batchID)
}

// Update writes the scalar fields and keeps the stored ingredients.
func (r *batchRepo) Update(_ context.Context, b *entity.Batch) error {
	st := r.st()
	cur, ok := st.batches[b.BatchID]
	if !ok {
		return domain.NotFound("Batch %s not found", b.BatchID)
	}
	next := cloneBatch(*b)
	next.AdditionalIngredients = cur.AdditionalIngredients
	st.batches[b.BatchID] = next
	return nil
}

func (r *batchRepo) ReplaceIngredients(_ context.Context, batchID string, ingredients []entity.BatchIngredient) error {
	st := r.st()
	cur, ok := st.batches[batchID]
	if !ok {
		return domain.NotFound("Batch %s not found", batchID)
	}
	cur.AdditionalIngredients = ingredients
	st.batches[batchID] = cloneBatch(cur)
	return nil
}

// Delete drops the batch and its log, like the cascading foreign keys.
func (r *batchRepo) Delete(_ context.Context, batchID string) error {
	st := r.st()
	delete(st.batches, batchID)
	kept := st.batchLog[:0:0]
	for _, e := range st.batchLog {
		if e.BatchID != batchID {
			kept = append(kept, e)
		}
	}
	st.batchLog = kept
	return nil
}

func (r *batchRepo) AppendLog(_ context.Context, e *entity.BatchLogEntry) error {
	st := r.st()
	st.batchLog = append(st.batchLog, *e)
	return nil
}

func (r *batchRepo) ListLog(_ context.Context, batchID string) ([]*entity.BatchLogEntry, error) {
	var out []*entity.BatchLogEntry
	for _, e := range r.st().batchLog {
		if e.BatchID == batchID {
			c := e
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

type packagingRepo struct {
	st func() *state
}

func (r *packagingRepo) Create(_ context.Context, p *entity.BatchPackaging) error {
	st := r.st()
	if _, ok := st.packaging[p.ID]; ok {
		return domain.Duplicate("Packaging %s already exists", p.ID)
	}
	st.packaging[p.ID] = clonePackaging(*p)
	return nil
}

func (r *packagingRepo) Get(_ context.Context, batchID, id string) (*entity.BatchPackaging, error) {
	p, ok := r.st().packaging[id]
	if !ok || p.BatchID != batchID {
		return nil, nil
	}
	c := clonePackaging(p)
	return &c, nil
}

func (r *packagingRepo) Update(_ context.Context, p *entity.BatchPackaging) error {
	st := r.st()
	if _, ok := st.packaging[p.ID]; !ok {
		return domain.NotFound("Packaging %s not found", p.ID)
	}
	st.packaging[p.ID] = clonePackaging(*p)
	return nil
}

func (r *packagingRepo) Delete(_ context.Context, id string) error {
	delete(r.st().packaging, id)
	return nil
}

func (r *packagingRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.BatchPackaging, error) {
	var out []*entity.BatchPackaging
	for _, p := range r.st().packaging {
		if p.BatchID == batchID {
			c := clonePackaging(p)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
