package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

var ErrNotFound = errors.New("document not found")

// Store is the document store used by every function. There are no cross-document
// transactions: each call is an independent write.
//
type Store interface {
	// Create writes data under id, overwriting an existing document. An empty id gets a generated one.
	Create(ctx context.Context, collection, id string, data any) (string, error)
	// Get decodes the document into dst. A missing document is reported as found == false, not as an error.
	Get(ctx context.Context, collection, id string, dst any) (bool, error)
	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Unavailable wraps a backend failure.
func Unavailable(op, collection, id string, err error) error {
	return apperr.Wrap(apperr.ErrStoreUnavailable, fmt.Errorf("%s %s/%s: %w", op, collection, id, err), "")
}

// MergeJSON applies fields on top of a JSON object document.
func MergeJSON(doc []byte, fields map[string]any) ([]byte, error) {
	m := make(map[string]json.RawMessage)
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, err
	}

	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		m[k] = raw
	}

	return json.Marshal(m)
}
