package main

import (
	"flag"
	"fmt"
	"os"

	"ytautomation/client"
	"ytautomation/config"
	"ytautomation/demo/tui"
	"ytautomation/video"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	env := config.Load()

	apiURL := flag.String("url", env.APIURL, "API server URL")
	outputDir := flag.String("output", "", "Directory for rendered clips (default: a temp dir)")
	flag.Parse()

	dir := *outputDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "ytautomation-demo-")
		if err != nil {
			fmt.Printf("Error creating temp dir: %v\n", err)
			os.Exit(1)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Printf("Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so the renderer logs nowhere.
	renderer := video.NewRenderer(zap.NewNop())
	m := tui.NewModel(client.NewAPIClient(*apiURL), renderer, dir)

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered clips are in %s\n", dir)
}
