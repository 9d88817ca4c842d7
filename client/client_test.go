package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ytautomation/api"
	"ytautomation/types"
	"ytautomation/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingUploader struct {
	meta upload.Metadata
	body string
}

func (r *recordingUploader) Upload(ctx context.Context, video io.Reader, meta upload.Metadata) (types.UploadResult, error) {
	b, _ := io.ReadAll(video)
	r.body = string(b)
	r.meta = meta
	return types.UploadResult{Success: true, VideoID: "vid-1", VideoURL: upload.WatchURL("vid-1")}, nil
}

func newAPI(t *testing.T, u upload.Uploader) *APIClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(api.NewRouter(api.NewServer(u, nil, zap.NewNop())))
	t.Cleanup(srv.Close)
	return NewAPIClientWithHTTP(srv.URL, srv.Client())
}

func TestGenerate(t *testing.T) {
	c := newAPI(t, &recordingUploader{})

	cfg := types.DefaultGenerationConfig()
	cfg.Text = "hello there"
	cfg.Duration = 3

	data, err := c.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 90, data.TotalFrames)
	assert.Equal(t, "hello there", data.Text)
	assert.Equal(t, 1920, data.Width)
}

func TestGenerate_ServerError(t *testing.T) {
	c := newAPI(t, &recordingUploader{})

	_, err := c.Generate(context.Background(), types.GenerationConfig{FontSize: 48, Duration: 5})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Text is required", apiErr.Error())
}

func TestUpload(t *testing.T) {
	u := &recordingUploader{}
	c := newAPI(t, u)

	p := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(p, []byte("webm-bytes"), 0o644))

	res, err := c.Upload(context.Background(), p, types.UploadConfig{
		Title:         "My clip",
		Tags:          "x,y",
		PrivacyStatus: types.PrivacyPublic,
	})
	require.NoError(t, err)
	assert.Equal(t, "vid-1", res.VideoID)
	assert.Equal(t, "webm-bytes", u.body)
	assert.Equal(t, "video.webm", u.meta.Filename)
	assert.Equal(t, []string{"x", "y"}, u.meta.Tags)
	assert.Equal(t, types.PrivacyPublic, u.meta.PrivacyStatus)
}

func TestUpload_MissingTitle(t *testing.T) {
	c := newAPI(t, &recordingUploader{})

	p := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(p, []byte("v"), 0o644))

	_, err := c.Upload(context.Background(), p, types.UploadConfig{})
	require.Error(t, err)
	assert.Equal(t, "Video and title are required", err.Error())
}

func TestUpload_MissingFile(t *testing.T) {
	c := newAPI(t, &recordingUploader{})
	_, err := c.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.webm"), types.UploadConfig{Title: "t"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewAPIClientWithHTTP(srv.URL, srv.Client())
	_, err := c.Generate(context.Background(), types.GenerationConfig{Text: "x"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "gateway down")
}
