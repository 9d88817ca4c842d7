package upload

import (
	"context"
	"fmt"
	"io"
	"os"

	"ytautomation/types"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube uploads through the YouTube Data API v3 using service account credentials.
type YouTube struct {
	service *youtube.Service
	logger  *zap.Logger
}

// NewYouTube reads the service account JSON at credentialsPath.
func NewYouTube(ctx context.Context, credentialsPath string, logger *zap.Logger) (*YouTube, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_PATH is not set")
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &YouTube{service: service, logger: logger}, nil
}

// NewYouTubeWithService wraps an existing client, e.g. one pointed at a test server.
func NewYouTubeWithService(service *youtube.Service, logger *zap.Logger) *YouTube {
	return &YouTube{service: service, logger: logger}
}

func (y *YouTube) Upload(ctx context.Context, video io.Reader, meta Metadata) (types.UploadResult, error) {
	y.logger.Info("Uploading to YouTube",
		zap.String("title", meta.Title),
		zap.Float64("size_mb", float64(meta.Size)/(1024*1024)))

	body := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           string(meta.PrivacyStatus),
			SelfDeclaredMadeForKids: false,
		},
	}

	response, err := y.service.Videos.Insert([]string{"snippet", "status"}, body).
		Media(video).
		Context(ctx).
		Do()
	if err != nil {
		return types.UploadResult{}, fmt.Errorf("failed to upload video: %w", err)
	}

	y.logger.Info("Uploaded", zap.String("video_id", response.Id))

	return types.UploadResult{
		Success:  true,
		VideoID:  response.Id,
		VideoURL: WatchURL(response.Id),
		Message:  "Video uploaded successfully.",
	}, nil
}
