package tui

// UI Text Constants
const (
	TextTitle            = "YouTube Video Automation"
	TextVideoConfig      = "Video Configuration"
	TextUploadConfig     = "Upload to YouTube"
	TextGenerateButton   = "Generate Video"
	TextGeneratingButton = "Generating..."
	TextUploadButton     = "Upload to YouTube"
	TextUploadingButton  = "Uploading..."
	TextGenerateFirst    = "Please generate a video first"
	TextUploadSuccessful = "Upload Successful!"
	TextNoVideo          = "Generated video will appear here"
	TextFooter           = "tab/shift+tab move | enter activate | ctrl+g generate | ctrl+p privacy | esc quit"
)
