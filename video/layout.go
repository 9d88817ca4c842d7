package video

import (
	"strings"

	"ytautomation/config"
)

// Measurer returns the rendered width of s in pixels.
type Measurer func(s string) float64

// WrapText breaks text into lines no wider than maxWidth. Words are split on
// single spaces; a word wider than maxWidth still gets a line of its own.
func WrapText(text string, maxWidth float64, measure Measurer) []string {
	words := strings.Split(text, " ")
	lines := make([]string, 0, 4)
	current := ""

	for _, word := range words {
		candidate := current + word + " "
		if measure(candidate) > maxWidth && current != "" {
			lines = append(lines, strings.TrimSpace(current))
			current = word + " "
		} else {
			current = candidate
		}
	}
	lines = append(lines, strings.TrimSpace(current))

	return lines
}

// Opacity is the text alpha for a frame: a linear fade in over the first
// FadeFraction of the clip and a linear fade out over the last.
func Opacity(frame, totalFrames int) float64 {
	if totalFrames <= 0 {
		return 0
	}
	progress := float64(frame) / float64(totalFrames)
	switch {
	case progress < config.FadeFraction:
		return clamp01(progress / config.FadeFraction)
	case progress > 1-config.FadeFraction:
		return clamp01((1 - progress) / config.FadeFraction)
	default:
		return 1
	}
}

// Line is one row of text positioned by its horizontal centre and vertical middle.
type Line struct {
	Text    string
	CenterX float64
	MiddleY float64
}

// Layout positions wrapped lines on a width x height canvas.
func Layout(lines []string, fontSize, width, height int) []Line {
	lineHeight := float64(fontSize) * config.LineHeightFactor
	startY := (float64(height) - float64(len(lines))*lineHeight) / 2

	out := make([]Line, len(lines))
	for i, text := range lines {
		out[i] = Line{
			Text:    text,
			CenterX: float64(width) / 2,
			MiddleY: startY + float64(i)*lineHeight,
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
