package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/mzahan/vidshare/models"
)

// UploadedVideo is the normalized upload response payload. The id field
// is the single canonical identifier.
type UploadedVideo struct {
	ID           string             `json:"id"`
	CloudinaryID string             `json:"cloudinaryId"`
	VideoURL     string             `json:"videoUrl"`
	ThumbnailURL string             `json:"thumbnailUrl"`
	Title        string             `json:"title"`
	Duration     float64            `json:"duration"`
	Status       models.VideoStatus `json:"status"`
}

type uploadEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Video   UploadedVideo `json:"video"`
}

type listEnvelope struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Videos  []models.VideoRecord `json:"videos"`
}

type videoEnvelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Video   models.VideoRecord `json:"video"`
}

// Client talks to the video API. Uploads stream through an io.Pipe so a
// 2 GiB file never sits in memory, and progress is reported from the
// bytes actually handed to the transport.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Upload transmits the file as multipart field "file". onProgress, if
// non-nil, receives percentages in [0,100]; there is no cancel beyond the
// context, and no automatic retry.
func (c *Client) Upload(ctx context.Context, file io.Reader, fi FileInfo, onProgress func(float64)) (*UploadedVideo, error) {
	src := io.Reader(file)
	if onProgress != nil && fi.Size > 0 {
		src = &progressReader{r: file, total: fi.Size, onProgress: onProgress}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename=%q`, fi.Name))
		header.Set("Content-Type", fi.MIMEType)

		part, err := mw.CreatePart(header)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/videos/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	var env uploadEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("upload failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	if onProgress != nil {
		onProgress(100)
	}
	return &env.Video, nil
}

// ListVideos fetches all videos, newest first.
func (c *Client) ListVideos(ctx context.Context) ([]models.VideoRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/videos", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch videos: %s", resp.Status)
	}

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode videos response: %w", err)
	}
	return env.Videos, nil
}

// GetVideo fetches one video by its canonical id (or cloudinary id).
func (c *Client) GetVideo(ctx context.Context, id string) (*models.VideoRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/videos/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video: %w", err)
	}
	defer resp.Body.Close()

	var env videoEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode video response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return &env.Video, nil
}

// progressReader reports upload progress as its wrapped reader drains.
// Percentages never exceed 100 even if the source over-reports its size.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		percent := float64(p.read) / float64(p.total) * 100
		if percent > 100 {
			percent = 100
		}
		p.onProgress(percent)
	}
	return n, err
}
