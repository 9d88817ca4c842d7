// Package upload publishes rendered clips to a video host.
package upload

import (
	"context"
	"fmt"
	"io"

	"ytautomation/config"
	"ytautomation/types"

	"go.uber.org/zap"
)

const (
	SimulatedMessage = "Video upload simulated successfully. Configure YouTube API credentials for real uploads."
	SimulatedNote    = "This is a demo response. Set up Google OAuth2 and YouTube Data API v3 for actual uploads."
)

// Metadata describes the video being uploaded.
type Metadata struct {
	Title         string
	Description   string
	Tags          []string
	PrivacyStatus types.PrivacyStatus
	CategoryID    string
	Filename      string
	Size          int64
}

// NewMetadata converts form input into upload metadata.
func NewMetadata(cfg types.UploadConfig, filename string, size int64) Metadata {
	privacy := cfg.PrivacyStatus
	if privacy == "" {
		privacy = types.PrivacyPrivate
	}
	return Metadata{
		Title:         cfg.Title,
		Description:   cfg.Description,
		Tags:          types.ParseTags(cfg.Tags),
		PrivacyStatus: privacy,
		CategoryID:    config.YouTubeCategoryID,
		Filename:      filename,
		Size:          size,
	}
}

// Uploader publishes a video stream with its metadata.
type Uploader interface {
	Upload(ctx context.Context, video io.Reader, meta Metadata) (types.UploadResult, error)
}

// WatchURL returns the public watch URL for a video id.
func WatchURL(videoID string) string {
	return config.YouTubeWatchURL + videoID
}

// FromEnv returns the uploader selected by UPLOAD_MODE.
func FromEnv(ctx context.Context, env config.Env, logger *zap.Logger) (Uploader, error) {
	if env.UploadMode != config.UploadModeYouTube {
		logger.Info("Uploads are simulated")
		return NewSimulator(logger), nil
	}

	yt, err := NewYouTube(ctx, env.CredentialsPath, logger)
	if err != nil {
		return nil, fmt.Errorf("youtube uploader: %w", err)
	}
	logger.Info("YouTube client initialized")
	return yt, nil
}
