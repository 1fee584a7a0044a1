package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// AppTitle is the main window title
const AppTitle = "ytbatch"

// Icons (emojis/symbols)
const (
	IconFolder = "📁"
)

// Mode selector labels
const (
	ModeLabelAudio = "Audio (MP3)"
	ModeLabelVideo = "Video"
)

// Status line texts outside a running batch
const (
	StatusReady      = "Ready"
	StatusCancelling = "Cancelling..."
)

// Worker slider bounds
const (
	WorkersMin float64 = 1
	WorkersMax float64 = 10
)

// MaxLogLines bounds the scrollback kept in the log view
const MaxLogLines = 500
