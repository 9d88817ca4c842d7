package config

import "time"

// Canvas Constants
const (
	// VideoWidth is the rendered frame width (16:9 landscape)
	VideoWidth = 1920

	// VideoHeight is the rendered frame height (16:9 landscape)
	VideoHeight = 1080

	// FPS is the capture frame rate
	FPS = 30

	// VideoBitrate is the target video bitrate in bits per second
	VideoBitrate = 2500000
)

// Generation Defaults
const (
	// DefaultBackgroundColor is used when a request omits backgroundColor
	DefaultBackgroundColor = "#1a1a2e"

	// DefaultTextColor is used when a request omits textColor
	DefaultTextColor = "#ffffff"

	// DefaultFontSize is the font size in pixels
	DefaultFontSize = 48

	// DefaultDuration is the clip length in seconds
	DefaultDuration = 5

	MinFontSize = 12
	MaxFontSize = 120
	MinDuration = 1
	MaxDuration = 60
)

// Layout Constants
const (
	// TextMargin is the total horizontal space kept free around wrapped text
	TextMargin = 200

	// LineHeightFactor multiplies the font size to get the line pitch
	LineHeightFactor = 1.4

	// FadeFraction is the share of the clip spent fading in, and again fading out
	FadeFraction = 0.1
)

// Encoding Constants
const (
	// WebMCodec matches what browsers record with MediaRecorder
	WebMCodec = "libvpx-vp9"

	// MP4Codec is used when an .mp4 container is requested
	MP4Codec = "libx264"

	// VideoPreset is the ffmpeg encoding speed preset for H.264
	VideoPreset = "fast"

	// PixelFormat is the encoded pixel format
	PixelFormat = "yuv420p"
)

// Upload Constants
const (
	// MaxUploadSize bounds the multipart body accepted by /api/upload
	MaxUploadSize = 256 << 20

	// YouTubeWatchURL is the public watch URL prefix
	YouTubeWatchURL = "https://youtube.com/watch?v="

	// YouTubeCategoryID for People & Blogs
	YouTubeCategoryID = "22"
)

// Render Worker Constants
const (
	// MaxConcurrentRenders limits the number of clips rendered simultaneously
	MaxConcurrentRenders = 3

	// RenderTimeout bounds a single render, including ffmpeg startup
	RenderTimeout = 5 * time.Minute

	// ArchiveTimeout bounds a single archive upload
	ArchiveTimeout = 30 * time.Second
)
