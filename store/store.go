// Package store persists video metadata. Two implementations share one
// interface: a Postgres-backed store and an in-memory store used as a
// fallback when the database is unreachable. The Gateway picks between
// them per call.
package store

import (
	"context"
	"errors"

	"github.com/mzahan/vidshare/models"
)

// ErrNotFound is returned when no record matches the requested id on
// either the primary or the secondary key.
var ErrNotFound = errors.New("video not found")

// Store is the persistence contract for video metadata. GetByID matches
// the primary id first and the cloudinary id second; List returns records
// newest first. There is no delete: records outlive their uploads.
type Store interface {
	Create(ctx context.Context, video *models.VideoRecord) error
	GetByID(ctx context.Context, id string) (*models.VideoRecord, error)
	List(ctx context.Context) ([]models.VideoRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.VideoStatus) (*models.VideoRecord, error)
}
