package storage

import (
	"fmt"

	"github.com/shashiranjanraj/showroom/config"
)

// FromConfig builds the Disk named by STORAGE_DISK.
func FromConfig(cfg *config.Config) (Disk, error) {
	switch name := cfg.StorageDisk(); name {
	case "local":
		return NewLocal(cfg.StorageLocalRoot(), cfg.StorageURL()), nil
	case "s3":
		return NewS3(S3Options{
			Bucket:   cfg.S3Bucket(),
			Region:   cfg.S3Region(),
			Key:      cfg.S3Key(),
			Secret:   cfg.S3Secret(),
			Endpoint: cfg.S3Endpoint(),
			BaseURL:  cfg.S3URL(),
		})
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}
