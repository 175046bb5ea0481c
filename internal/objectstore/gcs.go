package objectstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

type GCSBucket struct {
	name   string
	handle *storage.BucketHandle
}

func NewGCSBucket(client *storage.Client, name string) *GCSBucket {
	return &GCSBucket{
		name:   name,
		handle: client.Bucket(name),
	}
}

func (b *GCSBucket) Name() string {
	return b.name
}

func (b *GCSBucket) Upload(ctx context.Context, path, contentType string, data []byte) error {
	w := b.handle.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	// a zero chunk size sends the object in one request, without a resumable session
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		w.Close()
		return storageError("upload", path, err)
	}

	if err := w.Close(); err != nil {
		return storageError("upload", path, err)
	}

	return nil
}

func (b *GCSBucket) MakePublic(ctx context.Context, path string) error {
	if err := b.handle.Object(path).ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return storageError("make public", path, err)
	}

	return nil
}

func (b *GCSBucket) PublicURL(path string) string {
	return PublicURL(b.name, path)
}

func storageError(op, path string, err error) error {
	return apperr.Wrap(apperr.ErrStorage, fmt.Errorf("%s %s: %w", op, path, err), "")
}
