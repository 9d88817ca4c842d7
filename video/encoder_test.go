package video

import (
	"context"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
}

// cancelAfter cancels the render once n frames have been handed to the sink.
type cancelAfter struct {
	FrameSink
	n       int
	written int
	cancel  context.CancelFunc
}

func (c *cancelAfter) WriteFrame(frame *image.RGBA) error {
	c.written++
	if c.written == c.n {
		c.cancel()
	}
	return c.FrameSink.WriteFrame(frame)
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line", "Conversion failed!", "Conversion failed!"},
		{"multi line", "frame=1\nframe=2\nConversion failed!", "Conversion failed!"},
		{"trailing newline", "a\nb\n\n", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastLine(tt.in))
		})
	}
}

func TestFFmpegSink_RendersClip(t *testing.T) {
	requireFFmpeg(t)

	out := filepath.Join(t.TempDir(), "clip.webm")
	r := NewRenderer(zap.NewNop(), WithSize(320, 180))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	require.NoError(t, r.Render(ctx, testConfig("Hello"), out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFFmpegSink_CancelKillsProcess(t *testing.T) {
	requireFFmpeg(t)

	out := filepath.Join(t.TempDir(), "partial.webm")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var started *ffmpegSink
	factory := func(ctx context.Context, outputPath string, width, height int) (FrameSink, error) {
		sink, err := NewFFmpegSink(ctx, outputPath, width, height)
		if err != nil {
			return nil, err
		}
		started = sink.(*ffmpegSink)
		return &cancelAfter{FrameSink: sink, n: 5, cancel: cancel}, nil
	}

	r := NewRenderer(zap.NewNop(), WithSize(320, 180), WithSinkFactory(factory))
	err := r.Render(ctx, testConfig("Hello"), out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, out)

	require.NotNil(t, started)
	select {
	case err := <-started.done:
		assert.Error(t, err, "ffmpeg should exit from the kill signal")
	case <-time.After(10 * time.Second):
		t.Fatal("ffmpeg still running after cancel")
	}
}

func TestFFmpegSink_CloseReportsFailure(t *testing.T) {
	requireFFmpeg(t)

	out := filepath.Join(t.TempDir(), "missing", "dir", "clip.webm")
	sink, err := NewFFmpegSink(context.Background(), out, 320, 180)
	require.NoError(t, err)

	frame := image.NewRGBA(image.Rect(0, 0, 320, 180))
	for i := 0; i < 30; i++ {
		if sink.WriteFrame(frame) != nil {
			break
		}
	}

	err = sink.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg failed")
	assert.NotEmpty(t, lastLine(sink.(*ffmpegSink).stderr.String()))
	assert.NoFileExists(t, out)
}
