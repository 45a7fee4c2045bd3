package episodes

import (
	"context"

	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/infra/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const table = "episodes"

// withWork selects episode rows with their parent's title and slug. The
// join is outer so episodes whose work was deleted are still returned.
func (h *Handler) withWork(ctx context.Context) *gorm.DB {
	return h.Episodes.Query(ctx).
		Select("episodes.*, works.title AS work_title, works.slug AS work_slug").
		Joins("LEFT JOIN works ON works.id = episodes.work_id")
}

func (h *Handler) listWithWork(ctx context.Context, filter store.Filter) ([]works.EpisodeWithWork, error) {
	q := store.ApplyFilter(h.withWork(ctx), table, filter)
	q = store.ApplyOrder(q, table, store.Asc("episode_number"))

	out := make([]works.EpisodeWithWork, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Store("Failed to load episodes", err)
	}
	return out, nil
}

func (h *Handler) findWithWork(ctx context.Context, lookup works.Lookup) (*works.EpisodeWithWork, error) {
	var rows []works.EpisodeWithWork
	err := h.withWork(ctx).
		Where(clause.Eq{Column: clause.Column{Table: table, Name: lookup.Column()}, Value: lookup.Token}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("Failed to load episode", err)
	}
	if len(rows) == 0 {
		return nil, apperr.Missing("Episode not found")
	}
	return &rows[0], nil
}
