package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytbatch"
	AppName = "ytbatch"

	WindowWidth  = 700
	WindowHeight = 640
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Provision the yt-dlp binary without blocking the first paint
	go func() {
		if err := media.Install(context.Background()); err != nil {
			log.Printf("yt-dlp provisioning failed: %v", err)
		}
	}()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, media.NewYTDLPFetcher())

	// Show and run
	myWindow.ShowAndRun()
}
