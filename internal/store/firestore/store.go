package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farellandr/melaka-tickets/internal/store"
)

type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Create(ctx context.Context, collection, id string, data any) (string, error) {
	coll := s.client.Collection(collection)

	if id == "" {
		ref, _, err := coll.Add(ctx, data)
		if err != nil {
			return "", store.Unavailable("create", collection, "", err)
		}

		return ref.ID, nil
	}

	if _, err := coll.Doc(id).Set(ctx, data); err != nil {
		return "", store.Unavailable("create", collection, id, err)
	}

	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, dst any) (bool, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}

		return false, store.Unavailable("get", collection, id, err)
	}

	if err := snap.DataTo(dst); err != nil {
		return false, store.Unavailable("get", collection, id, err)
	}

	return true, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return store.Unavailable("update", collection, id, store.ErrNotFound)
		}

		return store.Unavailable("update", collection, id, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return store.Unavailable("delete", collection, id, err)
	}

	return nil
}
