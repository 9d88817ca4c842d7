package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ytautomation/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIClient is the part of the HTTP client the demo drives.
type APIClient interface {
	Generate(ctx context.Context, cfg types.GenerationConfig) (types.VideoData, error)
	Upload(ctx context.Context, videoPath string, cfg types.UploadConfig) (types.UploadResult, error)
}

// ClipRenderer turns the generate response into a local video file.
type ClipRenderer interface {
	Render(ctx context.Context, cfg types.GenerationConfig, outputPath string) error
}

// Form fields in focus order. The generation form comes first, then the upload form.
const (
	fieldTitle = iota
	fieldDescription
	fieldText
	fieldBackgroundColor
	fieldTextColor
	fieldFontSize
	fieldDuration
	fieldUploadTitle
	fieldUploadDescription
	fieldUploadTags
	inputCount
)

// Focus targets that are not text inputs.
const (
	focusPrivacy = inputCount + iota
	focusGenerate
	focusUpload
	focusCount
)

// Model holds the generation and upload forms plus the state of the last
// generate and upload round trips.
type Model struct {
	client    APIClient
	renderer  ClipRenderer
	outputDir string

	inputs  []textinput.Model
	privacy types.PrivacyStatus
	focus   int

	generating bool
	uploading  bool

	videoPath string
	videoData *types.VideoData
	result    *types.UploadResult
	err       error

	width int
}

// NewModel creates a model with the generation defaults filled in.
// Rendered clips are written to outputDir.
func NewModel(client APIClient, renderer ClipRenderer, outputDir string) Model {
	defaults := types.DefaultGenerationConfig()

	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 40
		inputs[i] = ti
	}

	inputs[fieldTitle].Placeholder = "My Awesome Video"
	inputs[fieldDescription].Placeholder = "Video description..."
	inputs[fieldText].Placeholder = "Text to display in the video..."
	inputs[fieldBackgroundColor].SetValue(defaults.BackgroundColor)
	inputs[fieldTextColor].SetValue(defaults.TextColor)
	inputs[fieldFontSize].SetValue(strconv.Itoa(defaults.FontSize))
	inputs[fieldFontSize].CharLimit = 3
	inputs[fieldDuration].SetValue(strconv.Itoa(defaults.Duration))
	inputs[fieldDuration].CharLimit = 2
	inputs[fieldUploadTitle].Placeholder = "YouTube video title"
	inputs[fieldUploadDescription].Placeholder = "YouTube video description"
	inputs[fieldUploadTags].Placeholder = "tag1, tag2, tag3"

	m := Model{
		client:    client,
		renderer:  renderer,
		outputDir: outputDir,
		inputs:    inputs,
		privacy:   types.PrivacyPrivate,
		focus:     fieldText,
	}
	m.inputs[m.focus].Focus()
	return m
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// GenerationConfig reads the generation form.
func (m Model) GenerationConfig() (types.GenerationConfig, error) {
	fontSize, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldFontSize].Value()))
	if err != nil {
		return types.GenerationConfig{}, fmt.Errorf("font size must be a number")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldDuration].Value()))
	if err != nil {
		return types.GenerationConfig{}, fmt.Errorf("duration must be a number")
	}

	return types.GenerationConfig{
		Title:           m.inputs[fieldTitle].Value(),
		Description:     m.inputs[fieldDescription].Value(),
		Text:            m.inputs[fieldText].Value(),
		BackgroundColor: strings.TrimSpace(m.inputs[fieldBackgroundColor].Value()),
		TextColor:       strings.TrimSpace(m.inputs[fieldTextColor].Value()),
		FontSize:        fontSize,
		Duration:        duration,
	}, nil
}

// UploadConfig reads the upload form.
func (m Model) UploadConfig() types.UploadConfig {
	return types.UploadConfig{
		Title:         m.inputs[fieldUploadTitle].Value(),
		Description:   m.inputs[fieldUploadDescription].Value(),
		Tags:          m.inputs[fieldUploadTags].Value(),
		PrivacyStatus: m.privacy,
	}
}

// CanGenerate reports whether the generate action is enabled.
func (m Model) CanGenerate() bool {
	return !m.generating && strings.TrimSpace(m.inputs[fieldText].Value()) != ""
}

// CanUpload reports whether the upload action is enabled.
func (m Model) CanUpload() bool {
	return !m.uploading && m.videoPath != "" && strings.TrimSpace(m.inputs[fieldUploadTitle].Value()) != ""
}

// VideoPath is the last rendered clip, empty until a generate succeeds.
func (m Model) VideoPath() string { return m.videoPath }

// Result is the last upload result.
func (m Model) Result() *types.UploadResult { return m.result }

// Err is the error shown to the user, if any.
func (m Model) Err() error { return m.err }

// Privacy is the selected privacy status.
func (m Model) Privacy() types.PrivacyStatus { return m.privacy }

// setFocus moves focus to target, wrapping around.
func (m Model) setFocus(target int) (Model, tea.Cmd) {
	target = (target%focusCount + focusCount) % focusCount
	if m.focus < inputCount {
		m.inputs[m.focus].Blur()
	}
	m.focus = target
	if target < inputCount {
		return m, m.inputs[target].Focus()
	}
	return m, nil
}

// autofillUpload copies title and description into empty upload fields.
func (m Model) autofillUpload(cfg types.GenerationConfig) Model {
	if m.inputs[fieldUploadTitle].Value() == "" {
		m.inputs[fieldUploadTitle].SetValue(cfg.Title)
	}
	if m.inputs[fieldUploadDescription].Value() == "" {
		m.inputs[fieldUploadDescription].SetValue(cfg.Description)
	}
	return m
}

func totalFramesText(d *types.VideoData) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d, %d frames at %d fps", d.Width, d.Height, d.TotalFrames, d.FPS)
}
