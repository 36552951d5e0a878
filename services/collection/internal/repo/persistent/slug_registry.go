package persistent

import (
	"context"

	"gorm.io/gorm"
)

// SlugRegistry answers slug ownership across both the published and the
// draft tables, which keep separate unique indexes.
type SlugRegistry interface {
	// Lock serializes allocation of slug until the surrounding transaction ends.
	Lock(ctx context.Context, slug string) error
	Exists(ctx context.Context, slug, excludeID string) (bool, error)
}

type slugRegistry struct {
	db *gorm.DB
}

func (r *slugRegistry) Lock(ctx context.Context, slug string) error {
	// SQLite serializes writers on its own.
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", slug).Error
}

// Exists counts soft-deleted collections too: the unique index still holds them.
func (r *slugRegistry) Exists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	var err error
	if validID(excludeID) {
		err = r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM (
			SELECT id FROM collections WHERE slug = ? AND id <> ?
			UNION ALL
			SELECT id FROM collections_review WHERE slug = ? AND id <> ?
		) AS taken`, slug, excludeID, slug, excludeID).Scan(&count).Error
	} else {
		err = r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM (
			SELECT id FROM collections WHERE slug = ?
			UNION ALL
			SELECT id FROM collections_review WHERE slug = ?
		) AS taken`, slug, slug).Scan(&count).Error
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
