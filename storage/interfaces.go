package storage

import (
	"context"

	"mmm-datagen/models"
)

// DatasetWriter is the interface any storage backend must satisfy.
type DatasetWriter interface {
	Write(ctx context.Context, ds *models.Dataset) error
	Close() error
}
