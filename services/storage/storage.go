package storage

import (
	"bytes"
	"context"
	"fmt"

	"medvault/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements DocumentStore on Cloudinary. Blobs are encrypted
// before upload, so they are stored as opaque raw assets.
type CloudinaryStore struct {
	cld       *cloudinary.Cloudinary
	cipherKey string
}

// NewCloudinaryStore builds the store from the loaded configuration.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, cipherKey: cfg.DocumentCipherKey}, nil
}

// UploadEncrypted seals the payload and uploads it as a raw asset, returning
// the delivery URL of the stored blob.
func (s *CloudinaryStore) UploadEncrypted(ctx context.Context, data []byte, folder, fileName string) (string, error) {
	sealed, err := Encrypt(data, s.cipherKey)
	if err != nil {
		return "", err
	}

	useFileName := true
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(sealed), uploader.UploadParams{
		Folder:           folder,
		FilenameOverride: fileName,
		UseFilename:      &useFileName,
		ResourceType:     "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no URL")
	}
	return result.SecureURL, nil
}

// Delete removes a stored blob by its public ID.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	resourceType := "raw"
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
