package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestGenerationRequestResolve(t *testing.T) {
	t.Run("defaults fill absent fields", func(t *testing.T) {
		cfg, err := GenerationRequest{Text: "hello"}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "#1a1a2e", cfg.BackgroundColor)
		assert.Equal(t, "#ffffff", cfg.TextColor)
		assert.Equal(t, 48, cfg.FontSize)
		assert.Equal(t, 5, cfg.Duration)
		assert.Equal(t, 150, cfg.TotalFrames())
	})

	t.Run("present fields are kept", func(t *testing.T) {
		cfg, err := GenerationRequest{
			Text:            "hello",
			BackgroundColor: ptr("#000"),
			TextColor:       ptr("#ff0000"),
			FontSize:        ptr(12),
			Duration:        ptr(60),
		}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "#000", cfg.BackgroundColor)
		assert.Equal(t, "#ff0000", cfg.TextColor)
		assert.Equal(t, 12, cfg.FontSize)
		assert.Equal(t, 1800, cfg.TotalFrames())
	})

	cases := []struct {
		name string
		req  GenerationRequest
		want error
	}{
		{"empty text", GenerationRequest{}, ErrTextRequired},
		{"blank text", GenerationRequest{Text: "   "}, ErrTextRequired},
		{"bad color", GenerationRequest{Text: "x", BackgroundColor: ptr("navy")}, ErrInvalidColor},
		{"bad hex", GenerationRequest{Text: "x", TextColor: ptr("#gggggg")}, ErrInvalidColor},
		{"font too small", GenerationRequest{Text: "x", FontSize: ptr(11)}, ErrFontSizeRange},
		{"font too large", GenerationRequest{Text: "x", FontSize: ptr(121)}, ErrFontSizeRange},
		{"duration zero", GenerationRequest{Text: "x", Duration: ptr(0)}, ErrDurationRange},
		{"duration too long", GenerationRequest{Text: "x", Duration: ptr(61)}, ErrDurationRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.req.Resolve()
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := GenerationConfig{Text: "x", FontSize: 60}.WithDefaults()
	assert.Equal(t, 60, cfg.FontSize)
	assert.Equal(t, "#1a1a2e", cfg.BackgroundColor)
	assert.Equal(t, "#ffffff", cfg.TextColor)
	assert.Equal(t, 5, cfg.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestNewVideoData(t *testing.T) {
	cfg := DefaultGenerationConfig()
	cfg.Text = "hi"
	cfg.Duration = 2

	data := NewVideoData(cfg)
	assert.Equal(t, 1920, data.Width)
	assert.Equal(t, 1080, data.Height)
	assert.Equal(t, 30, data.FPS)
	assert.Equal(t, 60, data.TotalFrames)
	assert.Equal(t, cfg.Text, data.Config().Text)
	assert.Equal(t, cfg.FontSize, data.Config().FontSize)
}

func TestParsePrivacyStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    PrivacyStatus
		wantErr bool
	}{
		{"", PrivacyPrivate, false},
		{"private", PrivacyPrivate, false},
		{" Unlisted ", PrivacyUnlisted, false},
		{"public", PrivacyPublic, false},
		{"friends", "", true},
	}
	for _, c := range cases {
		got, err := ParsePrivacyStatus(c.in)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPrivacyStatus, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestPrivacyStatusNext(t *testing.T) {
	assert.Equal(t, PrivacyUnlisted, PrivacyPrivate.Next())
	assert.Equal(t, PrivacyPublic, PrivacyUnlisted.Next())
	assert.Equal(t, PrivacyPrivate, PrivacyPublic.Next())
	assert.Equal(t, PrivacyPrivate, PrivacyStatus("").Next())
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"tag1", "tag2", "tag3"}, ParseTags("tag1, tag2 ,tag3"))
	assert.Empty(t, ParseTags(" , ,"))
	assert.Empty(t, ParseTags(""))
}
