package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mzahan/vidshare/hls"
	"github.com/mzahan/vidshare/models"
	"github.com/mzahan/vidshare/store"
	"github.com/mzahan/vidshare/upload"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Error fetching videos",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(videos),
		"videos":  videos,
	})
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	video, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Video not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Error fetching video",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"video":   video,
	})
}

// handleGetStatus serves the latest pipeline status for a video. The
// published status wins when Redis has one; otherwise the stored record's
// status is reported.
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if update, err := s.publisher.GetStatus(r.Context(), id); err == nil && update != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"status":  update,
		})
		return
	}

	video, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Video not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status": models.StatusUpdate{
			VideoID:   video.ID,
			Status:    video.Status,
			Timestamp: video.UpdatedAt,
		},
	})
}

// handleUpload runs the server half of the upload pipeline: stage the
// incoming stream to a temp file, hand it to the transcoding provider,
// derive the thumbnail, persist the record, respond. The temp file is
// removed on the success path and on every error path.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), uploadDeadline)
	defer cancel()

	filename, _, tmpPath, size, err := s.stageUpload(w, r)
	if err != nil {
		var verr *upload.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: verr.Message})
		case errors.Is(err, errNoFile):
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "No file uploaded"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Message: "Error uploading video",
				Error:   err.Error(),
			})
		}
		if tmpPath != "" {
			s.removeTemp(tmpPath)
		}
		return
	}
	defer s.removeTemp(tmpPath)

	videoID := uuid.New().String()
	s.publisher.PublishStatus(ctx, models.StatusUpdate{
		VideoID: videoID,
		Status:  models.StatusProcessing,
		Message: "Uploading to transcoding provider...",
	})

	asset, err := s.provider.UploadVideo(ctx, tmpPath, "video-streaming/"+videoID)
	if err != nil {
		s.log.Error().Err(err).Str("video_id", videoID).Msg("provider upload failed")
		s.publisher.PublishStatus(ctx, models.StatusUpdate{
			VideoID: videoID,
			Status:  models.StatusError,
			Message: err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Error uploading video",
			Error:   err.Error(),
		})
		return
	}

	// Thumbnail derivation is best-effort; an empty URL is saved as-is.
	thumbnailURL := hls.ThumbnailURL(asset.SecureURL)
	if thumbnailURL == "" {
		s.log.Warn().Str("video_id", videoID).Msg("could not derive thumbnail URL")
	}

	record := &models.VideoRecord{
		ID:           videoID,
		Title:        strings.TrimSuffix(filename, filepath.Ext(filename)),
		CloudinaryID: asset.PublicID,
		VideoURL:     asset.SecureURL,
		ThumbnailURL: thumbnailURL,
		Duration:     asset.Duration,
		FileSize:     size,
		Format:       "hls",
		Status:       models.StatusReady,
		UploadedBy:   "anonymous",
	}

	// The gateway absorbs durable-store trouble via its fallback, so a
	// persistence problem never fails the upload.
	if err := s.store.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("video_id", videoID).Msg("failed to persist video record")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Error uploading video",
			Error:   err.Error(),
		})
		return
	}

	s.publisher.PublishStatus(ctx, models.StatusUpdate{
		VideoID: videoID,
		Status:  models.StatusReady,
		Message: "Video uploaded successfully",
	})
	s.log.Info().Str("video_id", videoID).Str("public_id", asset.PublicID).
		Int64("bytes", size).Msg("video uploaded")

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Video uploaded successfully",
		"video": upload.UploadedVideo{
			ID:           record.ID,
			CloudinaryID: record.CloudinaryID,
			VideoURL:     record.VideoURL,
			ThumbnailURL: record.ThumbnailURL,
			Title:        record.Title,
			Duration:     record.Duration,
			Status:       record.Status,
		},
	})
}

var errNoFile = errors.New("no file part in request")

// stageUpload streams the multipart "file" part to a temp file, applying
// the type/size/empty validations as the bytes arrive. It returns the
// temp path even on failure so the caller can clean up.
func (s *Server) stageUpload(w http.ResponseWriter, r *http.Request) (filename, contentType, tmpPath string, size int64, err error) {
	// One megabyte of slack on top of the ceiling for multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+1<<20)

	mr, err := r.MultipartReader()
	if err != nil {
		return "", "", "", 0, errNoFile
	}

	var part *multipart.Part
	for {
		p, perr := mr.NextPart()
		if perr == io.EOF {
			return "", "", "", 0, errNoFile
		}
		if perr != nil {
			return "", "", "", 0, fmt.Errorf("failed to read multipart body: %w", perr)
		}
		if p.FormName() == "file" {
			part = p
			break
		}
		_ = p.Close()
	}
	defer part.Close()

	filename = part.FileName()
	contentType = part.Header.Get("Content-Type")
	if !upload.TypeAllowed(contentType) {
		return filename, contentType, "", 0,
			&upload.ValidationError{Message: "Invalid file type. Only video files are allowed."}
	}

	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return filename, contentType, "", 0, fmt.Errorf("failed to create temp dir: %w", err)
	}
	tmpPath = filepath.Join(s.tempDir, uuid.New().String()+filepath.Ext(filename))

	dst, err := os.Create(tmpPath)
	if err != nil {
		return filename, contentType, tmpPath, 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	size, err = io.Copy(dst, io.LimitReader(part, upload.MaxFileSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return filename, contentType, tmpPath, size, fmt.Errorf("failed to stage upload: %w", err)
	}
	if size > upload.MaxFileSize {
		return filename, contentType, tmpPath, size,
			&upload.ValidationError{Message: fmt.Sprintf("File size exceeds maximum limit of %dGB", upload.MaxFileSize/(1024*1024*1024))}
	}
	if size == 0 {
		return filename, contentType, tmpPath, size,
			&upload.ValidationError{Message: "File is empty"}
	}

	return filename, contentType, tmpPath, size, nil
}

// removeTemp deletes a staged file. Cleanup failures are logged and never
// escalated; the primary outcome is already decided by the time this
// runs.
func (s *Server) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to delete temp file")
	}
}

// uploadDeadline bounds the provider round-trip for one upload request.
const uploadDeadline = 2 * time.Hour
