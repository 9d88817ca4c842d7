package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case GeneratedMsg:
		return m.handleGenerated(msg)
	case UploadedMsg:
		return m.handleUploaded(msg)
	}
	return m.updateFocusedInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	case "ctrl+g":
		return m.startGenerate()
	case "ctrl+p":
		m.privacy = m.privacy.Next()
		return m, nil
	}

	switch m.focus {
	case focusPrivacy:
		switch msg.String() {
		case "enter", " ", "left", "right":
			m.privacy = m.privacy.Next()
		}
		return m, nil
	case focusGenerate:
		if msg.String() == "enter" {
			return m.startGenerate()
		}
		return m, nil
	case focusUpload:
		if msg.String() == "enter" {
			return m.startUpload()
		}
		return m, nil
	}

	if msg.String() == "enter" {
		return m.setFocus(m.focus + 1)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= inputCount {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// startGenerate kicks off generation unless it is disabled
func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if !m.CanGenerate() {
		return m, nil
	}
	cfg, err := m.GenerationConfig()
	if err != nil {
		m.err = err
		return m, nil
	}

	m.generating = true
	m.err = nil
	return m, generateVideo(m.client, m.renderer, cfg, m.outputDir)
}

// startUpload kicks off the upload unless it is disabled
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	if m.uploading {
		return m, nil
	}
	if m.videoPath == "" {
		m.err = errors.New(TextGenerateFirst)
		return m, nil
	}
	if !m.CanUpload() {
		return m, nil
	}

	m.uploading = true
	m.err = nil
	return m, uploadVideo(m.client, m.videoPath, m.UploadConfig())
}

// handleGenerated stores the rendered clip and fills the upload form
func (m Model) handleGenerated(msg GeneratedMsg) (tea.Model, tea.Cmd) {
	m.generating = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}

	data := msg.Data
	m.videoData = &data
	m.videoPath = msg.Path

	m = m.autofillUpload(msg.Config)
	return m, nil
}

// handleUploaded records the upload outcome
func (m Model) handleUploaded(msg UploadedMsg) (tea.Model, tea.Cmd) {
	m.uploading = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	result := msg.Result
	m.result = &result
	return m, nil
}
