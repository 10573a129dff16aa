package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ssdcollector/internal/database"
	"ssdcollector/internal/storage"
)

// BlobRepository stores blobs in the blobs table. It implements storage.BlobStore.
type BlobRepository struct {
	db *database.DB
}

func NewBlobRepository(db *database.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Get retrieves a blob by key
func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM blobs WHERE name = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return data, nil
}

// Set updates or inserts a blob
func (r *BlobRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.UpsertBlobQuery(), key, value); err != nil {
		return fmt.Errorf("failed to set blob %s: %w", key, err)
	}
	return nil
}

// Delete removes a blob
func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM blobs WHERE name = ?`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
