package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/persistent"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxNotesLength  = 5000
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func normalizeInput(input *entity.CollectionInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	input.BannerURL = strings.TrimSpace(input.BannerURL)
	input.TypeID = strings.TrimSpace(input.TypeID)
	for i := range input.ProductIDs {
		input.ProductIDs[i] = strings.TrimSpace(input.ProductIDs[i])
	}
	for i := range input.MarketingImages {
		input.MarketingImages[i] = strings.TrimSpace(input.MarketingImages[i])
	}
}

func validateInput(input *entity.CollectionInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("%w: %s failed on %s=%s", entity.ErrValidation, fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%w: %s failed on %s", entity.ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", entity.ErrValidation, err)
}

func validateActor(actorID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return fmt.Errorf("%w: a valid actor id is required", entity.ErrValidation)
	}
	return nil
}

// storeError maps a failed workflow transaction onto the error taxonomy.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case entity.IsDomainError(err):
		return err
	case persistent.IsUniqueViolation(err):
		return fmt.Errorf("%w: slug is already in use", entity.ErrDuplicateName)
	default:
		return fmt.Errorf("%w: %w", entity.ErrConsistency, err)
	}
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
