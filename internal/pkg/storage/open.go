package storage

import (
	"context"
	"fmt"
)

// Driver names accepted by Open
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Options selects and configures a driver
type Options struct {
	Driver   string
	LocalDir string
	LocalURL string
	S3       S3Config
}

// Open builds the storage named by opts.Driver
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case "", DriverLocal:
		return NewLocalStorage(opts.LocalDir, opts.LocalURL)
	case DriverS3:
		return NewS3Storage(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
