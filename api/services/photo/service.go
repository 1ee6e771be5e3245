package photoservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"familykarting/api/dto"
	"familykarting/pkg/imaging"
	"familykarting/pkg/messages"
	"familykarting/pkg/storage"

	"github.com/sirupsen/logrus"
)

// Folders photos can be uploaded to.
var Folders = []string{"circuits", "drivers", "races"}

// ErrNotOwnURL is returned when deleting a URL outside of the photo bucket.
var ErrNotOwnURL = errors.New("url does not belong to the photo bucket")

// ObjectStore is the bucket the photos live in.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	DeleteObject(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
	KeyFromURL(bucket, url string) (string, bool)
}

// PhotoService downscales and stores the uploaded photos.
type PhotoService struct {
	store        ObjectStore
	bucket       string
	maxDimension int
	logger       *logrus.Logger
	now          func() time.Time
}

// PhotoServiceDeps is the dependency list for the photo service.
type PhotoServiceDeps struct {
	Store        ObjectStore
	Bucket       string
	MaxDimension int
	Logger       *logrus.Logger
}

// NewPhotoService creates a photo service.
func NewPhotoService(deps *PhotoServiceDeps) *PhotoService {
	return &PhotoService{
		store:        deps.Store,
		bucket:       deps.Bucket,
		maxDimension: deps.MaxDimension,
		logger:       deps.Logger,
		now:          time.Now,
	}
}

// Upload downscales the image and stores it under the folder, returning its public URL.
func (ps *PhotoService) Upload(ctx context.Context, folder string, r io.Reader) (*dto.Upload, error) {
	if !slices.Contains(Folders, folder) {
		return nil, fmt.Errorf("%w: %q", messages.ErrInvalidFolder, folder)
	}

	img, err := imaging.Downscale(r, ps.maxDimension)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(folder, img.Extension, ps.now())
	if err := ps.store.PutObject(ctx, ps.bucket, key, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store the photo: %w", err)
	}

	ps.logger.WithFields(logrus.Fields{
		"key":    key,
		"bytes":  len(img.Data),
		"width":  img.Width,
		"height": img.Height,
	}).Info("Photo uploaded")

	return &dto.Upload{
		URL:         ps.store.PublicURL(ps.bucket, key),
		Key:         key,
		ContentType: img.ContentType,
		Width:       img.Width,
		Height:      img.Height,
	}, nil
}

// Delete removes a previously uploaded photo by its public URL.
func (ps *PhotoService) Delete(ctx context.Context, url string) error {
	key, ok := ps.store.KeyFromURL(ps.bucket, url)
	if !ok {
		return ErrNotOwnURL
	}

	if err := ps.store.DeleteObject(ctx, ps.bucket, key); err != nil {
		return fmt.Errorf("failed to delete the photo: %w", err)
	}

	ps.logger.WithField("key", key).Info("Photo deleted")
	return nil
}
