// Package provider wraps the external transcoding/storage service. The
// upload pipeline talks to the Provider interface only, so tests can
// substitute a stub and the SDK stays contained here.
package provider

import "context"

// Asset is the normalized result of a provider upload.
type Asset struct {
	PublicID  string
	SecureURL string
	Format    string
	Duration  float64
	Bytes     int64
}

// Provider accepts a staged file and returns a durable asset. The
// provider owns transcoding, storage and delivery; this system keeps only
// the returned metadata.
type Provider interface {
	UploadVideo(ctx context.Context, filePath, publicID string) (*Asset, error)
}
