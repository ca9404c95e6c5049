package storage

import "context"

// DocumentStore persists encrypted record attachments in object storage and
// returns a stable URL for each stored blob.
type DocumentStore interface {
	UploadEncrypted(ctx context.Context, data []byte, folder, fileName string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
