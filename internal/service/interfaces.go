package service

import (
	"context"

	"github.com/google/uuid"
)

// Classifier is what the item-creation handler depends on; nil disables the
// feature.
type Classifier interface {
	ClassifyDescription(ctx context.Context, description string) (*Classification, error)
}

// PhotoUploader is what the photo-upload handler depends on; nil disables
// the feature.
type PhotoUploader interface {
	UploadItemPhoto(ctx context.Context, itemID uuid.UUID, data []byte, contentType string) (string, error)
}

// OrderEventSubscriber is what the dashboard stream handler depends on.
type OrderEventSubscriber interface {
	Subscribe(ctx context.Context, restaurantID uuid.UUID) (<-chan OrderEvent, func())
}
