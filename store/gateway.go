package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mzahan/vidshare/models"
)

// Gateway presents one logical store over a durable store and an
// in-memory fallback. Writes try the durable path first and fall back on
// any error; reads consult the durable path first and then the fallback,
// so a write that landed in memory is still observed by the next read.
// Persistence trouble is logged, never surfaced to callers as a failure.
type Gateway struct {
	durable  Store
	fallback *Memory
	log      zerolog.Logger
}

// NewGateway builds a gateway. durable may be nil, in which case every
// operation goes straight to the in-memory store.
func NewGateway(durable Store, log zerolog.Logger) *Gateway {
	return &Gateway{
		durable:  durable,
		fallback: NewMemory(),
		log:      log,
	}
}

func (g *Gateway) Create(ctx context.Context, video *models.VideoRecord) error {
	if g.durable != nil {
		if err := g.durable.Create(ctx, video); err == nil {
			return nil
		} else {
			g.log.Warn().Err(err).Str("video_id", video.ID).
				Msg("durable store write failed, falling back to memory")
		}
	}
	return g.fallback.Create(ctx, video)
}

func (g *Gateway) GetByID(ctx context.Context, id string) (*models.VideoRecord, error) {
	if g.durable != nil {
		video, err := g.durable.GetByID(ctx, id)
		if err == nil {
			return video, nil
		}
		if !errors.Is(err, ErrNotFound) {
			g.log.Warn().Err(err).Str("video_id", id).
				Msg("durable store read failed, falling back to memory")
		}
	}
	return g.fallback.GetByID(ctx, id)
}

// List merges both paths, durable records first, then fallback records
// that never reached the database. The merged result stays newest first.
func (g *Gateway) List(ctx context.Context) ([]models.VideoRecord, error) {
	local, err := g.fallback.List(ctx)
	if err != nil {
		return nil, err
	}

	if g.durable == nil {
		return local, nil
	}

	durable, err := g.durable.List(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("durable store list failed, serving memory only")
		return local, nil
	}

	seen := make(map[string]struct{}, len(durable))
	for i := range durable {
		seen[durable[i].ID] = struct{}{}
	}

	merged := durable
	for i := range local {
		if _, ok := seen[local[i].ID]; !ok {
			merged = append(merged, local[i])
		}
	}
	sortNewestFirst(merged)
	return merged, nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, id string, status models.VideoStatus) (*models.VideoRecord, error) {
	if g.durable != nil {
		video, err := g.durable.UpdateStatus(ctx, id, status)
		if err == nil {
			return video, nil
		}
		if !errors.Is(err, ErrNotFound) {
			g.log.Warn().Err(err).Str("video_id", id).
				Msg("durable store update failed, falling back to memory")
		}
	}
	return g.fallback.UpdateStatus(ctx, id, status)
}
