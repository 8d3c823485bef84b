package daemon

import (
	"context"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/media"
)

// Media providers.
const (
	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
)

func newUploader(ctx context.Context, cfg config.Media) (media.Uploader, error) {
	switch cfg.Provider {
	case ProviderCloudinary:
		return media.NewCloudinary(media.CloudinaryConfig{
			CloudName:    cfg.Cloudinary.CloudName,
			UploadPreset: cfg.Cloudinary.UploadPreset,
			Endpoint:     cfg.Cloudinary.Endpoint,
			Timeout:      cfg.Timeout,
		}), nil
	case ProviderS3:
		return media.NewS3(ctx, media.S3Config{
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			Prefix:        cfg.S3.Prefix,
		})
	}

	return media.Disabled{}, nil
}
