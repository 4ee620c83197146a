package blob

import (
	"context"
	"fmt"

	"github.com/diewo77/go-dairy/internal/config"
)

// Open builds the store named by cfg.Driver (fs when empty).
func Open(ctx context.Context, cfg config.BlobConfig) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.FSRoot)
	case DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	}
	return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
}
