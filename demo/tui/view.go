package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var fieldLabels = [inputCount]string{
	fieldTitle:             "Video Title",
	fieldDescription:       "Description",
	fieldText:              "Video Text",
	fieldBackgroundColor:   "Background Color",
	fieldTextColor:         "Text Color",
	fieldFontSize:          "Font Size",
	fieldDuration:          "Duration (seconds)",
	fieldUploadTitle:       "YouTube Title",
	fieldUploadDescription: "YouTube Description",
	fieldUploadTags:        "Tags (comma separated)",
}

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	left := m.renderGenerationForm()
	right := m.renderUploadForm()
	if m.width > 0 && m.width < 100 {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, left, right))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render(TextFooter))
	return b.String()
}

func (m Model) renderGenerationForm() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(TextVideoConfig))
	b.WriteString("\n\n")
	for i := fieldTitle; i <= fieldDuration; i++ {
		b.WriteString(m.renderField(i))
	}

	label := TextGenerateButton
	if m.generating {
		label = TextGeneratingButton
	}
	b.WriteString(m.renderButton(label, focusGenerate, m.CanGenerate(), HighlightStyle))
	return BoxStyle.Render(b.String())
}

func (m Model) renderUploadForm() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(TextUploadConfig))
	b.WriteString("\n\n")

	if m.videoPath != "" {
		b.WriteString(StatusStyle.Render("Video ready: " + m.videoPath))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(totalFramesText(m.videoData)))
	} else {
		b.WriteString(InfoStyle.Render(TextNoVideo))
	}
	b.WriteString("\n\n")

	for i := fieldUploadTitle; i <= fieldUploadTags; i++ {
		b.WriteString(m.renderField(i))
	}

	privacyLabel := LabelStyle
	if m.focus == focusPrivacy {
		privacyLabel = FocusedLabelStyle
	}
	b.WriteString(privacyLabel.Render("Privacy Status"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("< %s >\n\n", m.privacy))

	label := TextUploadButton
	if m.uploading {
		label = TextUploadingButton
	}
	b.WriteString(m.renderButton(label, focusUpload, m.CanUpload(), UploadButtonStyle))

	if m.result != nil {
		b.WriteString("\n\n")
		b.WriteString(m.formatUploadResult())
	}
	return BoxStyle.Render(b.String())
}

func (m Model) renderField(i int) string {
	label := LabelStyle
	if m.focus == i {
		label = FocusedLabelStyle
	}
	return label.Render(fieldLabels[i]) + "\n" + m.inputs[i].View() + "\n\n"
}

func (m Model) renderButton(label string, target int, enabled bool, style lipgloss.Style) string {
	if !enabled {
		style = DisabledButtonStyle
	}
	if m.focus == target {
		label = "> " + label + " <"
	}
	return style.Render(label)
}

// formatUploadResult formats the upload response for display
func (m Model) formatUploadResult() string {
	r := m.result
	var b strings.Builder

	b.WriteString(StatusStyle.Render(TextUploadSuccessful))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Video ID: %s\n", r.VideoID))
	b.WriteString(fmt.Sprintf("URL: %s\n", r.VideoURL))
	if r.Message != "" {
		b.WriteString(InfoStyle.Render(r.Message))
		b.WriteString("\n")
	}
	if r.Note != "" {
		b.WriteString(InfoStyle.Render(r.Note))
	}
	return b.String()
}
