package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mzahan/vidshare/models"
)

// Memory is the in-process fallback store. It holds records for the
// lifetime of the process only; a restart loses anything that never made
// it into the durable store.
type Memory struct {
	mu     sync.RWMutex
	videos []models.VideoRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Create(ctx context.Context, video *models.VideoRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now
	m.videos = append(m.videos, *video)
	return nil
}

func (m *Memory) GetByID(ctx context.Context, id string) (*models.VideoRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.videos {
		if m.videos[i].ID == id || m.videos[i].CloudinaryID == id {
			v := m.videos[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) List(ctx context.Context) ([]models.VideoRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.VideoRecord, len(m.videos))
	copy(out, m.videos)
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(videos []models.VideoRecord) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
}

func (m *Memory) UpdateStatus(ctx context.Context, id string, status models.VideoStatus) (*models.VideoRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.videos {
		if m.videos[i].ID == id || m.videos[i].CloudinaryID == id {
			m.videos[i].Status = status
			m.videos[i].UpdatedAt = time.Now()
			v := m.videos[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}
