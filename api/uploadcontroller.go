package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"ytautomation/storage"
	"ytautomation/types"
	"ytautomation/upload"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const errUploadTooLarge = "Video exceeds the maximum upload size"

// RegisterUploadRoutes registers the upload endpoint.
func (s *Server) RegisterUploadRoutes(r *gin.Engine) {
	r.POST("/api/upload", s.handleUpload)
}

// handleUpload accepts the multipart form posted by the UI:
// video (file), title, description, tags, privacyStatus.
func (s *Server) handleUpload(c *gin.Context) {
	if c.Request.ContentLength > s.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: errUploadTooLarge})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadSize)

	header, err := c.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: errUploadTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: types.ErrVideoAndTitleRequired.Error()})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to read video", Details: err.Error()})
		return
	}
	defer file.Close()

	form := types.UploadConfig{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: c.PostForm("description"),
		Tags:        c.PostForm("tags"),
	}
	if form.Title == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: types.ErrVideoAndTitleRequired.Error()})
		return
	}

	form.PrivacyStatus, err = types.ParsePrivacyStatus(c.PostForm("privacyStatus"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	if s.archive != nil {
		if err := s.archiveUpload(c, file, header.Filename); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to upload video", Details: err.Error()})
			return
		}
	}

	meta := upload.NewMetadata(form, header.Filename, header.Size)
	result, err := s.uploader.Upload(c.Request.Context(), file, meta)
	if err != nil {
		s.logger.Error("Upload failed", zap.String("title", meta.Title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to upload video", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// archiveUpload copies the received blob to the archive and rewinds it.
// Archive failures are only logged; the error is for a failed rewind.
func (s *Server) archiveUpload(c *gin.Context, file io.ReadSeeker, filename string) error {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".webm"
	}

	ctx, cancel := storage.WithTimeout(c.Request.Context())
	defer cancel()

	if _, err := s.archive.Store(ctx, uuid.NewString(), ext, file); err != nil {
		s.logger.Warn("Archive failed", zap.String("filename", filename), zap.Error(err))
	}
	_, err := file.Seek(0, io.SeekStart)
	return err
}
