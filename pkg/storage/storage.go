package storage

import "context"

// Adapter stores workflow documents and returns their public URL.
// Delete exists so a failed submission can compensate for files already
// written before the failure.
type Adapter interface {
	Save(ctx context.Context, key string, content []byte) (string, error)
	Delete(ctx context.Context, url string) error
}
