package storage

import (
	"context"
	"fmt"

	config "github.com/ddoongjamba/autosns-api/configs"
)

// Backend is the closed set of supported media storage backends.
type Backend int

const (
	BackendLocal Backend = iota
	BackendR2
)

func ParseBackend(s string) (Backend, error) {
	switch s {
	case "local", "":
		return BackendLocal, nil
	case "r2":
		return BackendR2, nil
	}
	return 0, fmt.Errorf("unknown storage backend: %q", s)
}

// Store persists an uploaded media blob and returns the resolved path the
// post pipeline will later publish from: an absolute file path for the local
// backend, a public URL for R2.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

func New(cfg config.Config) (Store, error) {
	backend, err := ParseBackend(cfg.StorageBackend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendLocal:
		return newLocalStore(cfg.UploadDir)
	case BackendR2:
		return newR2Store(cfg), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %d", backend)
	}
}
