package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"ytautomation/config"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FrameSink consumes raw frames in order.
type FrameSink interface {
	WriteFrame(frame *image.RGBA) error
	// Close flushes the stream and waits for the encoder.
	Close() error
	// Abort stops the encoder without finishing the output.
	Abort(err error)
}

// SinkFactory opens a sink writing a width x height clip to outputPath.
type SinkFactory func(ctx context.Context, outputPath string, width, height int) (FrameSink, error)

// FFmpegArgs builds the ffmpeg stream for raw RGBA frames on stdin.
// The container and codec follow the output extension: .mp4 is H.264,
// anything else is WebM/VP9 like a browser MediaRecorder capture.
func FFmpegArgs(outputPath string, width, height int) *ffmpeg.Stream {
	input := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": config.FPS,
	})

	output := ffmpeg.KwArgs{
		"b:v":     config.VideoBitrate,
		"pix_fmt": config.PixelFormat,
		"r":       config.FPS,
	}
	if strings.EqualFold(filepath.Ext(outputPath), ".mp4") {
		output["c:v"] = config.MP4Codec
		output["preset"] = config.VideoPreset
		output["movflags"] = "+faststart"
	} else {
		output["c:v"] = config.WebMCodec
		output["f"] = "webm"
	}

	return input.Output(outputPath, output).OverWriteOutput()
}

// ffmpegSink pipes frames into an ffmpeg child process.
type ffmpegSink struct {
	cmd    *exec.Cmd
	pipe   *io.PipeWriter
	stderr *bytes.Buffer
	done   chan error
	stop   chan struct{}
	once   sync.Once
}

// NewFFmpegSink starts ffmpeg. Cancelling ctx kills the process.
func NewFFmpegSink(ctx context.Context, outputPath string, width, height int) (FrameSink, error) {
	pr, pw := io.Pipe()

	cmd := FFmpegArgs(outputPath, width, height).Compile()
	cmd.Stdin = pr
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s := &ffmpegSink{
		cmd:    cmd,
		pipe:   pw,
		stderr: stderr,
		done:   make(chan error, 1),
		stop:   make(chan struct{}),
	}

	go func() {
		err := cmd.Wait()
		pr.Close()
		s.done <- err
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.Abort(ctx.Err())
		case <-s.stop:
		}
	}()

	return s, nil
}

func (s *ffmpegSink) WriteFrame(frame *image.RGBA) error {
	if _, err := s.pipe.Write(frame.Pix); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	s.pipe.Close()
	err := <-s.done
	s.once.Do(func() { close(s.stop) })
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(s.stderr.String()))
	}
	return nil
}

func (s *ffmpegSink) Abort(err error) {
	s.once.Do(func() {
		close(s.stop)
		s.pipe.CloseWithError(err)
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
	})
}

func lastLine(out string) string {
	out = strings.TrimSpace(out)
	if i := strings.LastIndexByte(out, '\n'); i >= 0 {
		return out[i+1:]
	}
	return out
}
