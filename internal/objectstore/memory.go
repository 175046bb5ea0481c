package objectstore

import (
	"context"
	"errors"
	"sync"
)

type Object struct {
	ContentType string
	Data        []byte
	Public      bool
}

// MemoryBucket keeps objects in process memory.
type MemoryBucket struct {
	mu      sync.RWMutex
	name    string
	objects map[string]*Object
}

func NewMemoryBucket(name string) *MemoryBucket {
	return &MemoryBucket{
		name:    name,
		objects: make(map[string]*Object),
	}
}

func (b *MemoryBucket) Name() string {
	return b.name
}

func (b *MemoryBucket) Upload(ctx context.Context, path, contentType string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[path] = &Object{
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}

	return nil
}

func (b *MemoryBucket) MakePublic(ctx context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	obj, ok := b.objects[path]
	if !ok {
		return storageError("make public", path, errors.New("object not found"))
	}

	obj.Public = true

	return nil
}

func (b *MemoryBucket) PublicURL(path string) string {
	return PublicURL(b.name, path)
}

// Object returns a copy of the stored object.
func (b *MemoryBucket) Object(path string) (Object, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, ok := b.objects[path]
	if !ok {
		return Object{}, false
	}

	return *obj, true
}
