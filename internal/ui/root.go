package ui

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytbatch/internal/batch"
	"github.com/ytget/ytbatch/internal/config"
	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/model"
	"github.com/ytget/ytbatch/internal/platform"
	"github.com/ytget/ytbatch/internal/report"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	fetcher  media.Fetcher
	expander *platform.PlaylistExpander

	urlEntry    *widget.Entry
	loadBtn     *widget.Button
	outputEntry *widget.Entry
	browseBtn   *widget.Button
	openBtn     *widget.Button

	modeRadio     *widget.RadioGroup
	audioSelect   *widget.Select
	videoSelect   *widget.Select
	workersSlider *widget.Slider
	workersLabel  *widget.Label
	sidecarsCheck *widget.Check
	playlistCheck *widget.Check

	startBtn    *widget.Button
	cancelBtn   *widget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	logList  *widget.List
	logLines []string

	// mu guards the batch lifecycle fields below
	mu      sync.Mutex
	running bool
	token   *batch.Token
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, fetcher media.Fetcher) *RootUI {
	settings := config.NewSettings(app)

	// Ensure directory exists
	platform.CreateDirectoryIfNotExists(settings.GetOutputDirectory())

	ui := &RootUI{
		window:   window,
		settings: settings,
		fetcher:  fetcher,
		expander: platform.NewPlaylistExpander(),
	}

	window.SetTitle(AppTitle)

	ui.setupUI()
	log.Printf("UI setup completed successfully")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// URL input with load-from-file support
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder("One URL per line, # starts a comment")
	ui.loadBtn = widget.NewButton("Load from file", ui.onLoadFromFile)

	// Output directory row
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetText(ui.settings.GetOutputDirectory())
	ui.outputEntry.OnChanged = func(dir string) {
		ui.settings.SetOutputDirectory(dir)
	}
	ui.browseBtn = widget.NewButton("Browse", ui.onBrowseOutputDir)
	ui.openBtn = widget.NewButton(IconFolder, ui.onOpenOutputFolder)
	ui.openBtn.Importance = widget.LowImportance

	// Mode and quality controls
	ui.modeRadio = widget.NewRadioGroup([]string{ModeLabelAudio, ModeLabelVideo}, ui.onModeChanged)
	ui.modeRadio.Horizontal = true
	ui.modeRadio.Required = true

	ui.audioSelect = widget.NewSelect(ui.audioQualityOptions(), func(selected string) {
		if q, err := config.ParseAudioQuality(selected); err == nil {
			ui.settings.SetAudioQuality(q)
		}
	})
	ui.audioSelect.SetSelected(ui.settings.GetAudioQuality().String())

	ui.videoSelect = widget.NewSelect(ui.videoQualityOptions(), func(selected string) {
		if q, err := config.ParseVideoQuality(selected); err == nil {
			ui.settings.SetVideoQuality(q)
		}
	})
	ui.videoSelect.SetSelected(ui.settings.GetVideoQuality().String())

	// Worker slider
	ui.workersLabel = widget.NewLabel("")
	ui.workersSlider = widget.NewSlider(WorkersMin, WorkersMax)
	ui.workersSlider.Step = 1
	ui.workersSlider.OnChanged = func(value float64) {
		ui.settings.SetMaxWorkers(int(value))
		ui.refreshWorkersLabel()
	}
	ui.workersSlider.SetValue(float64(ui.settings.GetMaxWorkers()))
	ui.refreshWorkersLabel()

	// Toggles
	ui.sidecarsCheck = widget.NewCheck("Write metadata files", func(checked bool) {
		ui.settings.SetWriteSidecars(checked)
	})
	ui.sidecarsCheck.SetChecked(ui.settings.GetWriteSidecars())
	ui.playlistCheck = widget.NewCheck("Expand playlists", func(checked bool) {
		ui.settings.SetExpandPlaylists(checked)
	})
	ui.playlistCheck.SetChecked(ui.settings.GetExpandPlaylists())

	// Batch controls
	ui.startBtn = widget.NewButton("Start", ui.onStartClick)
	ui.startBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancelClick)
	ui.cancelBtn.Disable()

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel(StatusReady)
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	// Log view
	ui.logList = widget.NewList(
		func() int { return len(ui.logLines) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ui.logLines) {
				return
			}
			obj.(*widget.Label).SetText(ui.logLines[id])
		},
	)

	// Select the persisted mode last so the quality controls toggle
	ui.modeRadio.SetSelected(modeLabel(ui.settings.GetMode()))
	ui.refreshModeControls()

	outputRow := container.NewBorder(nil, nil, widget.NewLabel("Output"),
		container.NewHBox(ui.browseBtn, ui.openBtn), ui.outputEntry)
	modeRow := container.NewHBox(widget.NewLabel("Mode"), ui.modeRadio,
		widget.NewLabel("Audio"), ui.audioSelect,
		widget.NewLabel("Video"), ui.videoSelect)
	workersRow := container.NewBorder(nil, nil, ui.workersLabel, nil, ui.workersSlider)
	togglesRow := container.NewHBox(ui.sidecarsCheck, ui.playlistCheck)
	options := container.NewVBox(outputRow, modeRow, workersRow, togglesRow)

	urlSection := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("URLs"), ui.loadBtn),
		nil, nil, nil, ui.urlEntry)
	logSection := container.NewBorder(widget.NewLabel("Log"), nil, nil, nil, ui.logList)
	center := container.NewVSplit(urlSection, logSection)

	statusRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.startBtn, ui.cancelBtn), ui.statusLabel)
	bottom := container.NewVBox(ui.progressBar, statusRow)

	content := container.NewBorder(options, bottom, nil, nil, center)
	ui.window.SetContent(content)
}

// audioQualityOptions returns the selectable MP3 bitrates as strings
func (ui *RootUI) audioQualityOptions() []string {
	options := ui.settings.GetAudioQualityOptions()
	labels := make([]string, 0, len(options))
	for _, q := range options {
		labels = append(labels, q.String())
	}
	return labels
}

// videoQualityOptions returns the selectable video qualities as strings
func (ui *RootUI) videoQualityOptions() []string {
	options := ui.settings.GetVideoQualityOptions()
	labels := make([]string, 0, len(options))
	for _, q := range options {
		labels = append(labels, q.String())
	}
	return labels
}

// modeLabel maps a download mode to its selector label
func modeLabel(mode config.Mode) string {
	if mode == config.ModeVideo {
		return ModeLabelVideo
	}
	return ModeLabelAudio
}

// onModeChanged handles mode selector changes
func (ui *RootUI) onModeChanged(selected string) {
	mode := config.ModeAudio
	if selected == ModeLabelVideo {
		mode = config.ModeVideo
	}
	ui.settings.SetMode(mode)
	ui.refreshModeControls()
}

// refreshModeControls enables the quality controls matching the mode
func (ui *RootUI) refreshModeControls() {
	if ui.settings.GetMode() == config.ModeVideo {
		ui.audioSelect.Disable()
		ui.videoSelect.Enable()
		ui.sidecarsCheck.Enable()
	} else {
		ui.audioSelect.Enable()
		ui.videoSelect.Disable()
		ui.sidecarsCheck.Disable()
	}
}

// refreshWorkersLabel updates the worker count caption
func (ui *RootUI) refreshWorkersLabel() {
	ui.workersLabel.SetText(fmt.Sprintf("Parallel downloads: %d", ui.settings.GetMaxWorkers()))
}

// onLoadFromFile appends URLs from a picked list file to the URL entry
func (ui *RootUI) onLoadFromFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		var lines []string
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			dialog.ShowError(err, ui.window)
			return
		}

		urls := platform.FilterURLs(lines)
		if len(urls) == 0 {
			ui.showPopup("No URLs found in file")
			return
		}

		existing := strings.TrimSpace(ui.urlEntry.Text)
		joined := strings.Join(urls, "\n")
		if existing != "" {
			joined = existing + "\n" + joined
		}
		ui.urlEntry.SetText(joined)
		ui.appendLog(fmt.Sprintf("Loaded %d URLs from %s", len(urls), reader.URI().Name()))
	}, ui.window)
}

// onBrowseOutputDir picks the output directory
func (ui *RootUI) onBrowseOutputDir() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.outputEntry.SetText(uri.Path())
	}, ui.window)
}

// onOpenOutputFolder reveals the output directory in the file manager
func (ui *RootUI) onOpenOutputFolder() {
	dir := strings.TrimSpace(ui.outputEntry.Text)
	if err := platform.OpenFolder(dir); err != nil {
		log.Printf("Failed to open folder %s: %v", dir, err)
		ui.showPopup("Cannot open folder: " + err.Error())
	}
}

// onStartClick validates the input and launches one batch
func (ui *RootUI) onStartClick() {
	urls := platform.FilterURLs(strings.Split(ui.urlEntry.Text, "\n"))
	if len(urls) == 0 {
		ui.showPopup("Please enter at least one URL")
		return
	}

	job := ui.settings.Job()
	if err := job.Validate(); err != nil {
		ui.showPopup("Invalid settings: " + err.Error())
		return
	}

	ui.mu.Lock()
	if ui.running {
		ui.mu.Unlock()
		return
	}
	token := batch.NewToken()
	ui.running = true
	ui.token = token
	ui.mu.Unlock()

	log.Printf("Starting batch from UI: %d URLs, mode=%s", len(urls), job.Mode)
	ui.setControlsRunning(true)
	ui.progressBar.SetValue(0)

	sink := batch.NewSink()
	go ui.consumeEvents(sink)
	go ui.runBatch(job, urls, sink, token)
}

// onCancelClick signals the running batch to stop
func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	token := ui.token
	ui.mu.Unlock()
	if token == nil {
		return
	}

	log.Printf("Cancellation requested from UI")
	token.Signal()
	ui.cancelBtn.Disable()
	ui.statusLabel.SetText(StatusCancelling)
}

// runBatch runs one batch off the UI goroutine. The sink's terminal event
// drives the UI back to idle.
func (ui *RootUI) runBatch(job config.Job, urls []string, sink *batch.Sink, token *batch.Token) {
	if job.ExpandPlaylists {
		sink.Log("Expanding playlist URLs")
		urls = ui.expander.ExpandAll(context.Background(), urls)
	}

	runner := batch.NewRunner(ui.fetcher, job, sink)
	result, err := runner.Run(urls, token)
	if err != nil {
		log.Printf("Batch failed to start: %v", err)
		fyne.Do(func() {
			ui.showPopup("Error: " + err.Error())
		})
		return
	}

	log.Printf("Batch finished: %d success, %d failed, %d cancelled",
		result.Success, result.Failed, result.Cancelled)

	if path, err := report.PersistFailures(result, job.OutputDir); err != nil {
		log.Printf("Failed to persist failed URLs: %v", err)
	} else if path != "" {
		fyne.Do(func() {
			ui.appendLog("Failed URLs saved to: " + path)
		})
	}
}

// consumeEvents forwards sink events onto the UI goroutine until the
// terminal event closes the stream
func (ui *RootUI) consumeEvents(sink *batch.Sink) {
	for ev := range sink.Events() {
		event := ev
		switch event.Kind {
		case model.EventLog:
			fyne.Do(func() { ui.appendLog(event.Message) })
		case model.EventProgress:
			fyne.Do(func() { ui.progressBar.SetValue(event.Fraction) })
		case model.EventStatus:
			fyne.Do(func() { ui.statusLabel.SetText(event.Message) })
		case model.EventItemDone:
			// The per-item log line already covers the GUI
		case model.EventDone:
			fyne.Do(func() { ui.onBatchDone(event.Message) })
		}
	}
}

// onBatchDone resets the controls to idle and shows the final status
func (ui *RootUI) onBatchDone(finalStatus string) {
	ui.mu.Lock()
	ui.running = false
	ui.token = nil
	ui.mu.Unlock()

	ui.appendLog(finalStatus)
	ui.statusLabel.SetText(finalStatus)
	ui.progressBar.SetValue(0)
	ui.setControlsRunning(false)
}

// setControlsRunning switches the input controls between idle and running
func (ui *RootUI) setControlsRunning(running bool) {
	inputs := []fyne.Disableable{
		ui.urlEntry, ui.loadBtn, ui.outputEntry, ui.browseBtn,
		ui.modeRadio, ui.workersSlider, ui.playlistCheck, ui.startBtn,
	}
	if running {
		for _, input := range inputs {
			input.Disable()
		}
		ui.audioSelect.Disable()
		ui.videoSelect.Disable()
		ui.sidecarsCheck.Disable()
		ui.cancelBtn.Enable()
	} else {
		for _, input := range inputs {
			input.Enable()
		}
		ui.refreshModeControls()
		ui.cancelBtn.Disable()
	}
}

// appendLog adds one line to the log view, trimming the oldest lines past
// the scrollback cap. UI goroutine only.
func (ui *RootUI) appendLog(line string) {
	ui.logLines = append(ui.logLines, line)
	if len(ui.logLines) > MaxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-MaxLogLines:]
	}
	ui.logList.Refresh()
	ui.logList.ScrollToBottom()
}

// showPopup shows a transient message popup
func (ui *RootUI) showPopup(message string) {
	widget.ShowPopUp(widget.NewLabel(message), ui.window.Canvas())
}
