package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo reads locations and equipment (pool or tx).
type SiteRepo struct {
	q Querier
}

func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

func (r *SiteRepo) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, `SELECT location_id, site_id, name FROM locations WHERE location_id = $1`, id).
		Scan(&l.ID, &l.SiteID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *SiteRepo) GetEquipment(ctx context.Context, id string) (*entity.Equipment, error) {
	var e entity.Equipment
	err := r.q.QueryRow(ctx, `SELECT equipment_id, site_id, name FROM equipment WHERE equipment_id = $1`, id).
		Scan(&e.ID, &e.SiteID, &e.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}
