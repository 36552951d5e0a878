package persistent

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle. Inside
// Transaction every repository of tx runs on the same transaction.
type Store interface {
	Collections() CollectionRepository
	Reviews() ReviewRepository
	Catalog() CatalogRepository
	Slugs() SlugRegistry
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Collections() CollectionRepository {
	return &collectionRepository{db: s.db}
}

func (s *store) Reviews() ReviewRepository {
	return &reviewRepository{db: s.db}
}

func (s *store) Catalog() CatalogRepository {
	return &catalogRepository{db: s.db}
}

func (s *store) Slugs() SlugRegistry {
	return &slugRegistry{db: s.db}
}

func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}

// IsUniqueViolation reports whether err comes from a unique index.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// validID filters out ids that postgres would reject as uuid input.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
