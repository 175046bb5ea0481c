package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farellandr/melaka-tickets/internal/store"
)

// Document is one row of the documents table: a JSON document keyed by collection and id.
type Document struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:128"`
	Data       string `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Create(ctx context.Context, collection, id string, data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", store.Unavailable("create", collection, id, err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	doc := Document{
		Collection: collection,
		ID:         id,
		Data:       string(raw),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return "", store.Unavailable("create", collection, id, err)
	}

	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, dst any) (bool, error) {
	var doc Document

	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, store.Unavailable("get", collection, id, err)
	}

	if err := json.Unmarshal([]byte(doc.Data), dst); err != nil {
		return false, store.Unavailable("get", collection, id, err)
	}

	return true, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc Document
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&doc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}

			return err
		}

		merged, err := store.MergeJSON([]byte(doc.Data), fields)
		if err != nil {
			return err
		}

		return tx.Model(&doc).
			Where("collection = ? AND id = ?", collection, id).
			Update("data", string(merged)).Error
	})
	if err != nil {
		return store.Unavailable("update", collection, id, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&Document{}).Error
	if err != nil {
		return store.Unavailable("delete", collection, id, err)
	}

	return nil
}
