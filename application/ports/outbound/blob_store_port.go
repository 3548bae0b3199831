package outbound

import (
	"context"
	"time"
)

type PresignParams struct {
	Key           string
	Expiry        time.Duration
	Filename      string
	ForceDownload bool
}

// BlobStorePort stores opaque binary payloads. Keys are chosen by the store
// and returned to the caller for later reference.
type BlobStorePort interface {
	Put(ctx context.Context, data []byte, keyHint string, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(params PresignParams) (string, error)
}
