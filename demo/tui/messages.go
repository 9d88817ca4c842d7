package tui

import "ytautomation/types"

// Messages for the tea program

// GeneratedMsg is sent when the generate round trip and local render finish.
// Config is the form state that was submitted.
type GeneratedMsg struct {
	Config types.GenerationConfig
	Data   types.VideoData
	Path   string
	Err    error
}

// UploadedMsg is sent when the upload request returns
type UploadedMsg struct {
	Result types.UploadResult
	Err    error
}
