package models

import "time"

type VideoStatus string

const (
	StatusProcessing VideoStatus = "processing"
	StatusReady      VideoStatus = "ready"
	StatusError      VideoStatus = "error"
)

// VideoRecord is the metadata unit describing one uploaded asset. ID is
// issued by the server before the provider upload starts and is the single
// canonical identifier in API responses; CloudinaryID is the provider-side
// public id and serves only as a secondary lookup key.
type VideoRecord struct {
	ID           string      `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	Title        string      `json:"title" gorm:"column:title;type:varchar(500);not null"`
	Description  string      `json:"description" gorm:"column:description;type:text"`
	CloudinaryID string      `json:"cloudinaryId" gorm:"column:cloudinary_id;type:varchar(255);uniqueIndex"`
	VideoURL     string      `json:"videoUrl" gorm:"column:video_url;type:text;not null"`
	ThumbnailURL string      `json:"thumbnailUrl" gorm:"column:thumbnail_url;type:text"`
	Duration     float64     `json:"duration" gorm:"column:duration;type:double precision"`
	FileSize     int64       `json:"fileSize" gorm:"column:file_size;type:bigint"`
	Format       string      `json:"format" gorm:"column:format;type:varchar(32);default:hls"`
	Status       VideoStatus `json:"status" gorm:"column:status;type:varchar(32);not null"`
	UploadedBy   string      `json:"uploadedBy" gorm:"column:uploaded_by;type:varchar(255);default:anonymous"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (VideoRecord) TableName() string {
	return "videos"
}

// StatusUpdate is the payload published on the status channels while an
// upload moves through the pipeline.
type StatusUpdate struct {
	VideoID   string      `json:"video_id"`
	Status    VideoStatus `json:"status"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
