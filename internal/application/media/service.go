package media

import (
	"context"
	"fmt"
	"io"

	"github.com/findr-api/internal/domain"
)

type Service interface {
	UploadItemImage(ctx context.Context, uploaderID string, r io.Reader) (string, error)
}

type processor interface {
	Process(r io.Reader) ([]byte, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type service struct {
	processor processor
	store     objectStore
	keyFor    func(uploaderID string) string
}

// ServiceDeps wires uploads. A nil Store disables them.
type ServiceDeps struct {
	Processor processor
	Store     objectStore
	KeyFor    func(uploaderID string) string
}

func NewService(deps ServiceDeps) Service {
	return &service{processor: deps.Processor, store: deps.Store, keyFor: deps.KeyFor}
}

// UploadItemImage normalises the photo to JPEG and returns its public URL,
// ready to be sent as image_url when reporting an item.
func (s *service) UploadItemImage(ctx context.Context, uploaderID string, r io.Reader) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("photo storage is not configured: %w", domain.ErrUnavailable)
	}
	data, err := s.processor.Process(r)
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}
	url, err := s.store.Upload(ctx, s.keyFor(uploaderID), data, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
