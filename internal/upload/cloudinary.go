package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// AllowedImageFormats are the formats Cloudinary accepts for product images.
var AllowedImageFormats = []string{"jpeg", "png", "jpg", "webp"}

// CloudinaryConfig configures the Cloudinary image host.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	// UploadPrefix overrides the API base URL; empty uses the SDK default.
	UploadPrefix string
}

// Cloudinary uploads images through the Cloudinary SDK.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds the client once; it is safe for concurrent use.
func NewCloudinary(cfg CloudinaryConfig) (*Cloudinary, error) {
	conf, err := config.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	if cfg.UploadPrefix != "" {
		conf.API.UploadPrefix = cfg.UploadPrefix
	}

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &Cloudinary{cld: cld, folder: cfg.Folder}, nil
}

// UploadImage stores the image in the configured folder and returns its secure URL.
func (c *Cloudinary) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         c.folder,
		AllowedFormats: AllowedImageFormats,
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", &ProviderError{Provider: "cloudinary", Message: "empty upload response"}
	}
	if resp.Error.Message != "" {
		return "", &ProviderError{Provider: "cloudinary", Message: resp.Error.Message}
	}
	if resp.SecureURL == "" {
		return "", &ProviderError{Provider: "cloudinary", Message: "no secure URL returned for " + filename}
	}

	return resp.SecureURL, nil
}
