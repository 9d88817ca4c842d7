package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"ytautomation/config"
	"ytautomation/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// generateVideo validates cfg on the server, then renders the returned clip locally
func generateVideo(client APIClient, renderer ClipRenderer, cfg types.GenerationConfig, outputDir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.RenderTimeout)
		defer cancel()

		data, err := client.Generate(ctx, cfg)
		if err != nil {
			return GeneratedMsg{Err: err}
		}

		path := filepath.Join(outputDir, uuid.NewString()+".webm")
		if err := renderer.Render(ctx, data.Config(), path); err != nil {
			return GeneratedMsg{Err: fmt.Errorf("failed to render video: %w", err)}
		}
		return GeneratedMsg{Config: cfg, Data: data, Path: path}
	}
}

// uploadVideo posts the rendered clip with its metadata
func uploadVideo(client APIClient, path string, cfg types.UploadConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.RenderTimeout)
		defer cancel()

		result, err := client.Upload(ctx, path, cfg)
		return UploadedMsg{Result: result, Err: err}
	}
}
