package media

import (
	"context"
	"errors"
	"fmt"
	"os"

	"videotube/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var uploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "media_uploads_total",
		Help: "Media host uploads by result.",
	},
	[]string{"result"},
)

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

func NewCloudinaryUploader(cfg config.MediaConfig, logger *zap.Logger) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("configuring cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryUploader{cld: cld, folder: cfg.Folder, logger: logger}, nil
}

// Upload sends the file with automatic resource type detection. Removing the
// staged file is left to the caller.
func (u *CloudinaryUploader) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, ErrNoFile
	}
	if _, err := os.Stat(localPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoFile
		}
		return nil, err
	}

	res, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: "auto",
		Folder:       u.folder,
	})
	if err != nil {
		uploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if res.Error.Message != "" {
		uploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, res.Error.Message)
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	if url == "" {
		uploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: empty url in response", ErrUploadFailed)
	}

	uploadsTotal.WithLabelValues("ok").Inc()
	u.logger.Debug("media uploaded", zap.String("public_id", res.PublicID), zap.String("url", url))
	return &Asset{URL: url, PublicID: res.PublicID}, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	res, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroying %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("destroying %s: %s", publicID, res.Error.Message)
	}
	return nil
}
