package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/persistent"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases name and collapses every run of characters outside
// [a-z0-9] into one hyphen.
func Slugify(name string) (string, error) {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "", fmt.Errorf("%w: name %q does not produce a usable slug", entity.ErrValidation, name)
	}
	return slug, nil
}

// SlugAllocator hands out slugs that are unique across published collections
// and drafts. Allocate must run inside the transaction that stores the slug.
type SlugAllocator struct {
	registry persistent.SlugRegistry
}

func NewSlugAllocator(registry persistent.SlugRegistry) *SlugAllocator {
	return &SlugAllocator{registry: registry}
}

func (a *SlugAllocator) Allocate(ctx context.Context, name, excludeID string) (string, error) {
	slug, err := Slugify(name)
	if err != nil {
		return "", err
	}

	if err := a.registry.Lock(ctx, slug); err != nil {
		return "", err
	}

	taken, err := a.registry.Exists(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", fmt.Errorf("%w: a collection named %q already exists", entity.ErrDuplicateName, name)
	}
	return slug, nil
}

func (a *SlugAllocator) IsAvailable(ctx context.Context, slug, excludeID string) (bool, error) {
	taken, err := a.registry.Exists(ctx, slug, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
