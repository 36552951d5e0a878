package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"

	"github.com/google/uuid"
)

const maxMediaSize = 10 << 20

var allowedMediaTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage stores uploaded media and returns its public URL. *s3.Client
// implements it.
type ObjectStorage interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
}

type MediaUseCase interface {
	UploadMedia(ctx context.Context, actorID string, kind entity.MediaKind, file *multipart.FileHeader) (string, error)
}

type mediaUseCase struct {
	storage ObjectStorage
	logger  *logger.Logger
}

func NewMediaUseCase(storage ObjectStorage, logger *logger.Logger) MediaUseCase {
	return &mediaUseCase{storage: storage, logger: logger}
}

// UploadMedia stores an image for use as image_url, banner_url or a
// marketing_images entry, keyed by actor and kind.
func (uc *mediaUseCase) UploadMedia(ctx context.Context, actorID string, kind entity.MediaKind, file *multipart.FileHeader) (string, error) {
	if uc.storage == nil {
		return "", errors.New("media storage is not configured")
	}
	if err := validateActor(actorID); err != nil {
		return "", err
	}
	if !kind.Valid() {
		return "", fmt.Errorf("%w: kind must be one of image, banner, marketing", entity.ErrValidation)
	}
	if file == nil {
		return "", fmt.Errorf("%w: file is required", entity.ErrValidation)
	}
	if file.Size > maxMediaSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", entity.ErrValidation, maxMediaSize)
	}

	contentType := file.Header.Get("Content-Type")
	defaultExt, ok := allowedMediaTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", entity.ErrValidation, contentType)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = defaultExt
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("collections/%s/%s/%s%s", actorID, kind, uuid.New().String(), ext)
	url, err := uc.storage.UploadFile(key, src, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	uc.logger.Info("Uploaded %s media for %s: %s", kind, actorID, key)
	return url, nil
}
