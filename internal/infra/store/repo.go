// Package store is the relational persistence for every resource. Errors
// leave this package already classified as apperr kinds.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/patch"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter is a set of column = value conditions joined with AND.
type Filter map[string]any

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Repo is the store for one model type. Name is the user-facing noun used in
// error messages ("Work", "Episode").
type Repo[T any] struct {
	db   *gorm.DB
	name string
}

func New[T any](db *gorm.DB, name string) *Repo[T] {
	return &Repo[T]{db: db, name: name}
}

// Query starts a statement on the model's table for callers that need joins.
func (r *Repo[T]) Query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func (r *Repo[T]) Get(ctx context.Context, id any) (*T, error) {
	return r.Find(ctx, "id", id)
}

// Find returns the first row whose column equals value.
func (r *Repo[T]) Find(ctx context.Context, column string, value any) (*T, error) {
	var out T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&out).Error
	if err != nil {
		return nil, r.readErr(err)
	}
	return &out, nil
}

func (r *Repo[T]) List(ctx context.Context, filter Filter, order ...Order) ([]T, error) {
	q := ApplyFilter(r.Query(ctx), "", filter)
	q = ApplyOrder(q, "", order...)

	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Store("Failed to load "+r.plural(), err)
	}
	return out, nil
}

func (r *Repo[T]) Insert(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperr.Store("Failed to create "+r.lower(), err)
	}
	return nil
}

// Update runs a single UPDATE with the given assignments. A row count of
// zero is reported as NotFound.
func (r *Repo[T]) Update(ctx context.Context, id any, set patch.Assignments) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(map[string]interface{}(set))
	if res.Error != nil {
		return apperr.Store("Failed to update "+r.lower(), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Missing(r.name + " not found")
	}
	return nil
}

// Increment adds one to a counter column without touching updated_at.
func (r *Repo[T]) Increment(ctx context.Context, id any, column string) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("? + ?", clause.Column{Name: column}, 1))
	if res.Error != nil {
		return apperr.Store("Failed to update "+r.lower(), res.Error)
	}
	return nil
}

// Delete removes the row if present and reports how many rows went. Rows in
// other tables that reference it are left alone.
func (r *Repo[T]) Delete(ctx context.Context, id any) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return 0, apperr.Store("Failed to delete "+r.lower(), res.Error)
	}
	return res.RowsAffected, nil
}

func (r *Repo[T]) readErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Missing(r.name + " not found")
	}
	return apperr.Store("Failed to load "+r.lower(), err)
}

func (r *Repo[T]) lower() string  { return strings.ToLower(r.name) }
func (r *Repo[T]) plural() string { return r.lower() + "s" }

// ApplyFilter adds the filter's conditions in column order. table qualifies
// the columns when the statement joins other tables.
func ApplyFilter(q *gorm.DB, table string, filter Filter) *gorm.DB {
	cols := make([]string, 0, len(filter))
	for c := range filter {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	for _, c := range cols {
		q = q.Where(clause.Eq{Column: clause.Column{Table: table, Name: c}, Value: filter[c]})
	}
	return q
}

func ApplyOrder(q *gorm.DB, table string, order ...Order) *gorm.DB {
	for _, o := range order {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: o.Column}, Desc: o.Desc})
	}
	return q
}

// Count returns the number of rows matching filter.
func (r *Repo[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	if err := ApplyFilter(r.Query(ctx), "", filter).Count(&n).Error; err != nil {
		return 0, apperr.Store("Failed to count "+r.plural(), err)
	}
	return n, nil
}

// Apply compiles p against now, runs it as one UPDATE and reads the row
// back. The two statements are not isolated: if the row disappears in
// between, Apply returns (nil, nil).
func (r *Repo[T]) Apply(ctx context.Context, id any, p patch.Patch, now time.Time) (*T, error) {
	if err := r.Update(ctx, id, p.Compile(now.Unix())); err != nil {
		return nil, err
	}
	row, err := r.Get(ctx, id)
	if apperr.Is(err, apperr.NotFound) {
		return nil, nil
	}
	return row, err
}
