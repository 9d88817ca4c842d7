package upload

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"ytautomation/config"
	"ytautomation/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var simulatedID = regexp.MustCompile(`^video_\d+_[0-9a-z]{9}$`)

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestSimulator_FabricatesResult(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	sim := NewSimulatorWith(zap.NewNop(), func() time.Time { return now }, rand.NewPCG(1, 2))

	body := &countingReader{r: strings.NewReader("webm bytes")}
	res, err := sim.Upload(context.Background(), body, NewMetadata(types.UploadConfig{Title: "t"}, "video.webm", 10))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Regexp(t, simulatedID, res.VideoID)
	assert.True(t, strings.HasPrefix(res.VideoID, "video_1700000000123_"))
	assert.Equal(t, "https://youtube.com/watch?v="+res.VideoID, res.VideoURL)
	assert.Equal(t, SimulatedMessage, res.Message)
	assert.Equal(t, SimulatedNote, res.Note)
	assert.Equal(t, 10, body.n, "the stream is drained")
}

func TestSimulator_IDsDiffer(t *testing.T) {
	sim := NewSimulator(zap.NewNop())

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := sim.Upload(context.Background(), strings.NewReader(""), Metadata{})
			assert.NoError(t, err)
			mu.Lock()
			seen[res.VideoID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 20)
}

func TestSimulator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(zap.NewNop()).Upload(ctx, strings.NewReader("x"), Metadata{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata(types.UploadConfig{
		Title:       "My clip",
		Description: "desc",
		Tags:        "a, b,,c",
	}, "video.webm", 42)

	assert.Equal(t, "My clip", meta.Title)
	assert.Equal(t, []string{"a", "b", "c"}, meta.Tags)
	assert.Equal(t, types.PrivacyPrivate, meta.PrivacyStatus)
	assert.Equal(t, "22", meta.CategoryID)
	assert.Equal(t, int64(42), meta.Size)
}

func TestYouTube_Upload(t *testing.T) {
	var gotBody string
	var gotParts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotParts = r.URL.Query()["part"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"abc123"}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := youtube.NewService(ctx,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication())
	require.NoError(t, err)

	yt := NewYouTubeWithService(svc, zap.NewNop())
	res, err := yt.Upload(ctx, strings.NewReader("webm bytes"), Metadata{
		Title:         "My clip",
		Tags:          []string{"demo"},
		PrivacyStatus: types.PrivacyUnlisted,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", res.VideoID)
	assert.Equal(t, "https://youtube.com/watch?v=abc123", res.VideoURL)
	assert.ElementsMatch(t, []string{"snippet", "status"}, gotParts)
	assert.Contains(t, gotBody, `"title":"My clip"`)
	assert.Contains(t, gotBody, `"privacyStatus":"unlisted"`)
	assert.Contains(t, gotBody, "webm bytes")
}

func TestNewYouTube_RequiresCredentials(t *testing.T) {
	_, err := NewYouTube(context.Background(), "", zap.NewNop())
	assert.Error(t, err)

	_, err = NewYouTube(context.Background(), "/does/not/exist.json", zap.NewNop())
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	u, err := FromEnv(context.Background(), config.Env{UploadMode: config.UploadModeSimulate}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Simulator{}, u)

	_, err = FromEnv(context.Background(), config.Env{UploadMode: config.UploadModeYouTube}, zap.NewNop())
	assert.ErrorContains(t, err, "GOOGLE_CREDENTIALS_PATH")
}
