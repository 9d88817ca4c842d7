package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ytautomation/config"
	"ytautomation/types"

	"go.uber.org/zap"
)

// Renderer draws a clip frame by frame and captures it into a video file.
type Renderer struct {
	logger  *zap.Logger
	newSink SinkFactory
	width   int
	height  int
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithSinkFactory replaces the ffmpeg sink, e.g. to capture frames in memory.
func WithSinkFactory(f SinkFactory) Option {
	return func(r *Renderer) { r.newSink = f }
}

// WithSize overrides the canvas size.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// NewRenderer returns a renderer for the standard 1920x1080 canvas.
func NewRenderer(logger *zap.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		logger:  logger,
		newSink: NewFFmpegSink,
		width:   config.VideoWidth,
		height:  config.VideoHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes cfg to outputPath. A cancelled ctx aborts the encoder and
// removes the partial file.
func (r *Renderer) Render(ctx context.Context, cfg types.GenerationConfig, outputPath string) error {
	anim, err := NewAnimator(cfg, r.width, r.height)
	if err != nil {
		return err
	}
	defer anim.Close()

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	sink, err := r.newSink(ctx, outputPath, r.width, r.height)
	if err != nil {
		return err
	}

	start := time.Now()
	total := anim.TotalFrames()
	r.logger.Debug("Rendering clip",
		zap.String("output", outputPath),
		zap.Int("frames", total),
		zap.Int("lines", len(anim.Lines())))

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			sink.Abort(err)
			_ = os.Remove(outputPath)
			return err
		}
		if err := sink.WriteFrame(anim.Frame(i)); err != nil {
			sink.Abort(err)
			_ = os.Remove(outputPath)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}

	if err := sink.Close(); err != nil {
		_ = os.Remove(outputPath)
		return err
	}

	r.logger.Info("Clip rendered",
		zap.String("output", outputPath),
		zap.Int("frames", total),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
