package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.KegRepository = (*kegRepo)(nil)

type kegRepo struct {
	st func() *state
}

func (r *kegRepo) Create(_ context.Context, k *entity.Keg) error {
	st := r.st()
	if _, ok := st.kegs[k.Code]; ok {
		return domain.Duplicate("Keg %s already exists", k.Code)
	}
	st.kegs[k.Code] = cloneKeg(*k)
	return nil
}

func (r *kegRepo) GetByCode(_ context.Context, code string) (*entity.Keg, error) {
	k, ok := r.st().kegs[code]
	if !ok {
		return nil, nil
	}
	c := cloneKeg(k)
	return &c, nil
}

func (r *kegRepo) GetForUpdate(ctx context.Context, code string) (*entity.Keg, error) {
	return r.GetByCode(ctx, code)
}

func (r *kegRepo) Update(_ context.Context, k *entity.Keg) error {
	st := r.st()
	if _, ok := st.kegs[k.Code]; !ok {
		return domain.NotFound("Keg %s not found", k.Code)
	}
	st.kegs[k.Code] = cloneKeg(*k)
	return nil
}

func (r *kegRepo) AppendTransaction(_ context.Context, t *entity.KegTransaction) error {
	st := r.st()
	st.kegLog = append(st.kegLog, *t)
	return nil
}

func (r *kegRepo) ListTransactions(_ context.Context, code string) ([]*entity.KegTransaction, error) {
	var out []*entity.KegTransaction
	for _, t := range r.st().kegLog {
		if t.KegCode == code {
			c := t
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
