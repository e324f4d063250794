package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"school-hub-backend/internal/model"
)

// Closed error kinds. Callers branch on these instead of driver codes.
var (
	// ErrDuplicate reports a uniqueness-constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnavailable reports a connection or infrastructure failure.
	ErrUnavailable = errors.New("store unavailable")
)

// Store defines the interface for all database operations.
type Store interface {
	ListSchools(ctx context.Context) ([]model.School, error)
	CreateSchool(ctx context.Context, school *model.School) (uint, error)
}

// ConnProvider hands out the shared database handle and accepts invalidation
// after infrastructure failures.
type ConnProvider interface {
	Get(ctx context.Context) (*gorm.DB, error)
	Invalidate()
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	conn ConnProvider
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(conn ConnProvider) Store {
	return &gormStore{conn: conn}
}

// ListSchools returns all schools, newest first.
func (s *gormStore) ListSchools(ctx context.Context) ([]model.School, error) {
	db, err := s.conn.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	schools := make([]model.School, 0)
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&schools).Error; err != nil {
		s.conn.Invalidate()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return schools, nil
}

// CreateSchool inserts a validated record and returns its assigned id.
func (s *gormStore) CreateSchool(ctx context.Context, school *model.School) (uint, error) {
	db, err := s.conn.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := db.WithContext(ctx).Create(school).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Statement failure, not a broken connection: keep the handle.
			return 0, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		s.conn.Invalidate()
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return school.ID, nil
}
