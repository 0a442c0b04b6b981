package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/adapters/storage"
	"storefront-api/internal/models"
)

// ImageConfig maps image kinds to storage buckets
type ImageConfig struct {
	ProductBucket string
	PageBucket    string
}

// imageService implements the ImageService interface
type imageService struct {
	storage storage.ObjectStorage
	config  *ImageConfig
	logger  logrus.FieldLogger
}

// NewImageService creates a new image service instance
func NewImageService(store storage.ObjectStorage, config *ImageConfig, logger logrus.FieldLogger) ImageService {
	if config == nil {
		config = &ImageConfig{}
	}
	if config.ProductBucket == "" {
		config.ProductBucket = "product-images"
	}
	if config.PageBucket == "" {
		config.PageBucket = "page-images"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &imageService{
		storage: store,
		config:  config,
		logger:  logger,
	}
}

// GetImage implements ImageService.GetImage. The filename is checked
// before storage is touched.
func (s *imageService) GetImage(ctx context.Context, kind ImageKind, filename string) (*Image, error) {
	if !models.IsValidImageFilename(filename) {
		return nil, NewBadRequestError(MsgInvalidFilename, nil)
	}

	bucket, err := s.bucket(kind)
	if err != nil {
		return nil, NewInternalError(err)
	}

	if s.storage == nil {
		return nil, NewUnavailableError(MsgStorageUnavailable, storage.ErrNotConfigured)
	}

	obj, err := s.storage.Fetch(ctx, bucket, filename)
	if err != nil {
		switch {
		case storage.IsNotConfigured(err):
			s.logger.Error("Image storage is not configured")
			return nil, NewUnavailableError(MsgStorageUnavailable, err)
		case storage.IsNotFound(err):
			return nil, NewNotFoundError(MsgImageNotFound, err)
		default:
			s.logger.WithFields(logrus.Fields{
				"bucket":   bucket,
				"filename": filename,
				"error":    err.Error(),
			}).Error("Failed to fetch image")
			return nil, NewUpstreamError(err)
		}
	}

	contentType := obj.ContentType
	if contentType == "" || contentType == models.DefaultContentType {
		contentType = models.ImageContentType(filename)
	}

	return &Image{
		Filename:     filename,
		ContentType:  contentType,
		CacheControl: models.ImageCacheControl,
		Data:         obj.Data,
	}, nil
}

func (s *imageService) bucket(kind ImageKind) (string, error) {
	switch kind {
	case ImageKindProduct:
		return s.config.ProductBucket, nil
	case ImageKindPage:
		return s.config.PageBucket, nil
	default:
		return "", fmt.Errorf("unknown image kind: %s", kind)
	}
}
