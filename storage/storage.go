// Package storage keeps rendered documents (LR copies) outside the database.
package storage

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("invalid object key")

// Store puts a file under key and returns the URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}
