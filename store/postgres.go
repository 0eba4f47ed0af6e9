package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mzahan/vidshare/models"
)

// Postgres is the durable store. OpenPostgres verifies connectivity and
// migrates the videos table before returning, so a non-nil *Postgres is
// ready for use.
type Postgres struct {
	db *gorm.DB
}

func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&models.VideoRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate videos table: %w", err)
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Create(ctx context.Context, video *models.VideoRecord) error {
	return gorm.G[models.VideoRecord](p.db).Create(ctx, video)
}

func (p *Postgres) GetByID(ctx context.Context, id string) (*models.VideoRecord, error) {
	video, err := gorm.G[models.VideoRecord](p.db).
		Where("id = ? OR cloudinary_id = ?", id, id).
		First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (p *Postgres) List(ctx context.Context) ([]models.VideoRecord, error) {
	return gorm.G[models.VideoRecord](p.db).
		Order("created_at DESC").
		Find(ctx)
}

func (p *Postgres) UpdateStatus(ctx context.Context, id string, status models.VideoStatus) (*models.VideoRecord, error) {
	rows, err := gorm.G[models.VideoRecord](p.db).
		Where("id = ? OR cloudinary_id = ?", id, id).
		Updates(ctx, models.VideoRecord{Status: status})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return p.GetByID(ctx, id)
}
