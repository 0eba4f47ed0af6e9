package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzahan/vidshare/models"
)

// brokenStore simulates an unreachable durable store.
type brokenStore struct{}

var errDown = errors.New("connection refused")

func (brokenStore) Create(context.Context, *models.VideoRecord) error { return errDown }
func (brokenStore) GetByID(context.Context, string) (*models.VideoRecord, error) {
	return nil, errDown
}
func (brokenStore) List(context.Context) ([]models.VideoRecord, error) { return nil, errDown }
func (brokenStore) UpdateStatus(context.Context, string, models.VideoStatus) (*models.VideoRecord, error) {
	return nil, errDown
}

// writeBrokenStore rejects writes but serves reads from an inner Memory,
// so fallback writes and durable reads can coexist in one test.
type writeBrokenStore struct {
	inner *Memory
}

func (s *writeBrokenStore) Create(context.Context, *models.VideoRecord) error { return errDown }
func (s *writeBrokenStore) GetByID(ctx context.Context, id string) (*models.VideoRecord, error) {
	return s.inner.GetByID(ctx, id)
}
func (s *writeBrokenStore) List(ctx context.Context) ([]models.VideoRecord, error) {
	return s.inner.List(ctx)
}
func (s *writeBrokenStore) UpdateStatus(ctx context.Context, id string, st models.VideoStatus) (*models.VideoRecord, error) {
	return s.inner.UpdateStatus(ctx, id, st)
}

func record(id, cloudinaryID string, created time.Time) *models.VideoRecord {
	return &models.VideoRecord{
		ID:           id,
		Title:        "clip " + id,
		CloudinaryID: cloudinaryID,
		VideoURL:     "https://host/video/upload/v1/" + cloudinaryID + ".mp4",
		Status:       models.StatusReady,
		CreatedAt:    created,
	}
}

func TestGatewayFallbackReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway(brokenStore{}, zerolog.Nop())

	want := record("id-1", "cld-1", time.Now())
	require.NoError(t, gw.Create(ctx, want))

	got, err := gw.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.CloudinaryID, got.CloudinaryID)
	assert.Equal(t, want.VideoURL, got.VideoURL)
}

func TestGatewaySecondaryIDLookup(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway(nil, zerolog.Nop())

	require.NoError(t, gw.Create(ctx, record("id-2", "cld-2", time.Now())))

	got, err := gw.GetByID(ctx, "cld-2")
	require.NoError(t, err)
	assert.Equal(t, "id-2", got.ID)
}

func TestGatewayNotFound(t *testing.T) {
	ctx := context.Background()

	gw := NewGateway(NewMemory(), zerolog.Nop())
	_, err := gw.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	gw = NewGateway(brokenStore{}, zerolog.Nop())
	_, err = gw.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGatewayListMergesBothPaths(t *testing.T) {
	ctx := context.Background()
	durable := &writeBrokenStore{inner: NewMemory()}

	older := record("id-old", "cld-old", time.Now().Add(-time.Hour))
	require.NoError(t, durable.inner.Create(ctx, older))

	gw := NewGateway(durable, zerolog.Nop())
	newer := record("id-new", "cld-new", time.Now())
	require.NoError(t, gw.Create(ctx, newer)) // lands in the fallback

	videos, err := gw.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "id-new", videos[0].ID, "newest first across both paths")
	assert.Equal(t, "id-old", videos[1].ID)
}

func TestGatewayUpdateStatusFallback(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway(brokenStore{}, zerolog.Nop())

	require.NoError(t, gw.Create(ctx, record("id-3", "cld-3", time.Now())))

	got, err := gw.UpdateStatus(ctx, "id-3", models.StatusError)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, got.Status)

	reread, err := gw.GetByID(ctx, "id-3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, reread.Status)
}

func TestMemoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Create(ctx, record("a", "cld-a", time.Now().Add(-2*time.Hour))))
	require.NoError(t, m.Create(ctx, record("b", "cld-b", time.Now())))
	require.NoError(t, m.Create(ctx, record("c", "cld-c", time.Now().Add(-time.Hour))))

	videos, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{videos[0].ID, videos[1].ID, videos[2].ID})
}
