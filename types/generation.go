package types

import (
	"errors"
	"fmt"
	"strings"

	"ytautomation/config"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrTextRequired  = errors.New("Text is required")
	ErrInvalidColor  = errors.New("invalid color")
	ErrFontSizeRange = fmt.Errorf("fontSize must be between %d and %d", config.MinFontSize, config.MaxFontSize)
	ErrDurationRange = fmt.Errorf("duration must be between %d and %d seconds", config.MinDuration, config.MaxDuration)
)

// GenerationConfig holds the text, appearance and timing of a clip.
type GenerationConfig struct {
	Title           string `json:"title,omitempty" yaml:"title"`
	Description     string `json:"description,omitempty" yaml:"description"`
	Text            string `json:"text" yaml:"text"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
	FontSize        int    `json:"fontSize" yaml:"fontSize"`
	Duration        int    `json:"duration" yaml:"duration"`
}

// DefaultGenerationConfig returns the form's initial state.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		BackgroundColor: config.DefaultBackgroundColor,
		TextColor:       config.DefaultTextColor,
		FontSize:        config.DefaultFontSize,
		Duration:        config.DefaultDuration,
	}
}

// WithDefaults fills zero appearance and timing fields with their defaults.
func (c GenerationConfig) WithDefaults() GenerationConfig {
	d := DefaultGenerationConfig()
	if c.BackgroundColor == "" {
		c.BackgroundColor = d.BackgroundColor
	}
	if c.TextColor == "" {
		c.TextColor = d.TextColor
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.Duration == 0 {
		c.Duration = d.Duration
	}
	return c
}

// GenerationRequest is the /api/generate body. Absent optional fields take defaults.
type GenerationRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Text            string  `json:"text"`
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
	FontSize        *int    `json:"fontSize"`
	Duration        *int    `json:"duration"`
}

// Resolve applies defaults and validates the request.
func (r GenerationRequest) Resolve() (GenerationConfig, error) {
	cfg := DefaultGenerationConfig()
	cfg.Title = r.Title
	cfg.Description = r.Description
	cfg.Text = r.Text
	if r.BackgroundColor != nil {
		cfg.BackgroundColor = *r.BackgroundColor
	}
	if r.TextColor != nil {
		cfg.TextColor = *r.TextColor
	}
	if r.FontSize != nil {
		cfg.FontSize = *r.FontSize
	}
	if r.Duration != nil {
		cfg.Duration = *r.Duration
	}
	return cfg, cfg.Validate()
}

// Validate checks the config is renderable.
func (c GenerationConfig) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return ErrTextRequired
	}
	if _, err := ParseColor(c.BackgroundColor); err != nil {
		return fmt.Errorf("backgroundColor: %w", err)
	}
	if _, err := ParseColor(c.TextColor); err != nil {
		return fmt.Errorf("textColor: %w", err)
	}
	if c.FontSize < config.MinFontSize || c.FontSize > config.MaxFontSize {
		return ErrFontSizeRange
	}
	if c.Duration < config.MinDuration || c.Duration > config.MaxDuration {
		return ErrDurationRange
	}
	return nil
}

// TotalFrames is the number of frames captured for the clip.
func (c GenerationConfig) TotalFrames() int {
	return c.Duration * config.FPS
}

// VideoData is what /api/generate returns: the canvas geometry plus the echoed config.
type VideoData struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	FPS             int    `json:"fps"`
	TotalFrames     int    `json:"totalFrames"`
	Text            string `json:"text"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontSize        int    `json:"fontSize"`
	Duration        int    `json:"duration"`
}

// NewVideoData describes the canvas the config will be rendered onto.
func NewVideoData(c GenerationConfig) VideoData {
	return VideoData{
		Width:           config.VideoWidth,
		Height:          config.VideoHeight,
		FPS:             config.FPS,
		TotalFrames:     c.TotalFrames(),
		Text:            c.Text,
		BackgroundColor: c.BackgroundColor,
		TextColor:       c.TextColor,
		FontSize:        c.FontSize,
		Duration:        c.Duration,
	}
}

// Config turns the echoed fields back into a GenerationConfig.
func (d VideoData) Config() GenerationConfig {
	return GenerationConfig{
		Text:            d.Text,
		BackgroundColor: d.BackgroundColor,
		TextColor:       d.TextColor,
		FontSize:        d.FontSize,
		Duration:        d.Duration,
	}
}

// ParseColor accepts #rgb and #rrggbb.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return colorful.Color{}, fmt.Errorf("%w %q: want #rgb or #rrggbb", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	return c, nil
}
