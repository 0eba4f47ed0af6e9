package hls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "versioned asset url",
			in:   "https://host/video/upload/v123/publicId.mp4",
			want: "https://host/video/upload/sp_hls/publicId.m3u8",
		},
		{
			name: "unversioned asset url",
			in:   "https://host/video/upload/publicId.mp4",
			want: "https://host/video/upload/sp_hls/publicId.m3u8",
		},
		{
			name: "nested folder public id",
			in:   "https://res.cloudinary.com/demo/video/upload/v99/video-streaming/videos/abc.webm",
			want: "https://res.cloudinary.com/demo/video/upload/sp_hls/video-streaming/videos/abc.m3u8",
		},
		{
			name: "already transformed is unchanged",
			in:   "https://host/video/upload/sp_hls/publicId.m3u8",
			want: "https://host/video/upload/sp_hls/publicId.m3u8",
		},
		{
			name: "folder starting with v but not a version",
			in:   "https://host/video/upload/vault/clip.mp4",
			want: "https://host/video/upload/sp_hls/vault/clip.m3u8",
		},
		{
			name: "non-provider url passes through",
			in:   "https://example.com/media/clip.mp4",
			want: "https://example.com/media/clip.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreamURL(tt.in))
		})
	}
}

func TestStreamURLIdempotent(t *testing.T) {
	once := StreamURL("https://host/video/upload/v123/publicId.mp4")
	assert.Equal(t, once, StreamURL(once))
}

func TestThumbnailURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "versioned asset url",
			in:   "https://host/video/upload/v123/publicId.mp4",
			want: "https://host/video/upload/w_640,h_360,c_fill,q_auto/publicId.jpg",
		},
		{
			name: "nested folder",
			in:   "https://res.cloudinary.com/demo/video/upload/video-streaming/videos/abc.mov",
			want: "https://res.cloudinary.com/demo/video/upload/w_640,h_360,c_fill,q_auto/video-streaming/videos/abc.jpg",
		},
		{
			name: "non-provider url yields empty",
			in:   "https://example.com/media/clip.mp4",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThumbnailURL(tt.in))
		})
	}
}
