package objectstore

import (
	"context"
	"fmt"
)

const publicHost = "https://storage.googleapis.com"

type Bucket interface {
	Name() string
	// Upload writes data in a single request.
	Upload(ctx context.Context, path, contentType string, data []byte) error
	// MakePublic grants allUsers read access to the object.
	MakePublic(ctx context.Context, path string) error
	PublicURL(path string) string
}

// PublicURL is the permanent, unsigned URL of a public object.
func PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", publicHost, bucket, path)
}
