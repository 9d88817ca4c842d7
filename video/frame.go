package video

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	"ytautomation/config"
	"ytautomation/types"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Animator draws the frames of one clip. It reuses a single frame buffer and
// is not safe for concurrent use.
type Animator struct {
	width, height int
	totalFrames   int

	background color.RGBA
	text       color.RGBA

	face  font.Face
	lines []Line
	frame *image.RGBA
}

// NewAnimator prepares the face and text layout for cfg on a width x height canvas.
func NewAnimator(cfg types.GenerationConfig, width, height int) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bg, err := types.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return nil, err
	}
	fg, err := types.ParseColor(cfg.TextColor)
	if err != nil {
		return nil, err
	}

	f, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(cfg.FontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	measure := func(s string) float64 {
		return fixedToFloat(font.MeasureString(face, s))
	}
	wrapped := WrapText(flattenWhitespace(cfg.Text), float64(width-config.TextMargin), measure)

	return &Animator{
		width:       width,
		height:      height,
		totalFrames: cfg.TotalFrames(),
		background:  rgba(bg.RGB255()),
		text:        rgba(fg.RGB255()),
		face:        face,
		lines:       Layout(wrapped, cfg.FontSize, width, height),
		frame:       image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// TotalFrames is the number of frames in the clip.
func (a *Animator) TotalFrames() int { return a.totalFrames }

// Lines returns the laid out text.
func (a *Animator) Lines() []Line { return a.lines }

// Frame draws frame i and returns the shared buffer. The image is only valid
// until the next call.
func (a *Animator) Frame(i int) *image.RGBA {
	draw.Draw(a.frame, a.frame.Bounds(), image.NewUniform(a.background), image.Point{}, draw.Src)

	alpha := Opacity(i, a.totalFrames)
	if alpha <= 0 {
		return a.frame
	}

	src := image.NewUniform(color.NRGBA{
		R: a.text.R,
		G: a.text.G,
		B: a.text.B,
		A: uint8(math.Round(alpha * 255)),
	})

	metrics := a.face.Metrics()
	// Shift from the middle of the em box down to the baseline.
	baselineOffset := fixedToFloat(metrics.Ascent-metrics.Descent) / 2

	d := &font.Drawer{Dst: a.frame, Src: src, Face: a.face}
	for _, line := range a.lines {
		width := fixedToFloat(d.MeasureString(line.Text))
		d.Dot = fixed.Point26_6{
			X: floatToFixed(line.CenterX - width/2),
			Y: floatToFixed(line.MiddleY + baselineOffset),
		}
		d.DrawString(line.Text)
	}

	return a.frame
}

// Close releases the font face.
func (a *Animator) Close() error {
	return a.face.Close()
}

// flattenWhitespace turns line breaks and tabs into spaces, matching how a
// canvas draws a single line of text.
var flattenWhitespace = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\f", " ").Replace

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
