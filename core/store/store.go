package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup matched no row.
var ErrNotFound = errors.New("store: not found")

// Store wraps a gorm handle, either the root connection or a transaction.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a database transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// First loads the single row of T matching query.
func First[T any](ctx context.Context, s *Store, query any, args ...any) (*T, error) {
	var row T
	err := s.db.WithContext(ctx).Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %T: %w", row, err)
	}
	return &row, nil
}

// Find loads every row of T matching query, ordered by order when given.
func Find[T any](ctx context.Context, s *Store, order string, query any, args ...any) ([]T, error) {
	var rows []T
	q := s.db.WithContext(ctx).Where(query, args...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("failed to query %T: %w", zero, err)
	}
	return rows, nil
}

// InsertIfAbsent inserts row unless a row with the same unique key already exists.
// It reports whether this call created the row. On false the row's primary key is
// left unset and the caller is expected to look the winner up.
func (s *Store) InsertIfAbsent(ctx context.Context, row any) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert %T: %w", row, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Insert creates rows that have no unique identity of their own (owned children).
func (s *Store) Insert(ctx context.Context, rows any) error {
	if err := s.db.WithContext(ctx).Create(rows).Error; err != nil {
		return fmt.Errorf("failed to insert %T: %w", rows, err)
	}
	return nil
}

// Save writes every column of an existing row.
func (s *Store) Save(ctx context.Context, row any) error {
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to save %T: %w", row, err)
	}
	return nil
}

// Update writes only the given columns of an existing row.
func (s *Store) Update(ctx context.Context, row any, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(row).Updates(columns).Error; err != nil {
		return fmt.Errorf("failed to update %T: %w", row, err)
	}
	return nil
}

// SetMember adds edge to its set when present is true and removes it otherwise.
// The non-zero fields of edge identify it, so every key column must be set.
func SetMember[T any](ctx context.Context, s *Store, edge *T, present bool) error {
	if present {
		_, err := s.InsertIfAbsent(ctx, edge)
		return err
	}

	var model T
	if err := s.db.WithContext(ctx).Where(edge).Delete(&model).Error; err != nil {
		return fmt.Errorf("failed to delete %T: %w", model, err)
	}
	return nil
}

// HasMember reports whether edge is in its set.
func HasMember[T any](ctx context.Context, s *Store, edge *T) (bool, error) {
	var (
		model T
		count int64
	)
	if err := s.db.WithContext(ctx).Model(&model).Where(edge).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count %T: %w", model, err)
	}
	return count > 0, nil
}
