package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ytget/ytbatch/internal/batch"
	"github.com/ytget/ytbatch/internal/config"
	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/platform"
	"github.com/ytget/ytbatch/internal/report"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// LogDirName is the directory run logs are written into
const LogDirName = "logs"

// errInterrupted makes an interrupted run exit non-zero after the summary
var errInterrupted = errors.New("batch cancelled before every URL was processed")

// batchFlags are the flags shared by both download commands
type batchFlags struct {
	InputFile       string `arg:"" name:"input-file" help:"Text file with one URL per line, # starts a comment" type:"existingfile"`
	Output          string `short:"o" placeholder:"DIR" help:"Output directory (default ./downloads)"`
	Threads         int    `short:"t" placeholder:"N" help:"Number of parallel downloads (default 3)"`
	ExpandPlaylists bool   `help:"Expand playlist URLs into their videos before downloading"`
	Config          string `placeholder:"FILE" help:"Path to a ytbatch.yaml defaults file"`
}

// apply overlays the set flags onto a job
func (f *batchFlags) apply(job *config.Job) {
	if f.Output != "" {
		job.OutputDir = f.Output
	}
	if f.Threads > 0 {
		job.MaxWorkers = f.Threads
	}
	if f.ExpandPlaylists {
		job.ExpandPlaylists = true
	}
}

// AudioCmd downloads every URL as an MP3 file
type AudioCmd struct {
	batchFlags
	Quality string `short:"q" placeholder:"BITRATE" help:"MP3 bitrate: 128, 192 or 320 (default 192)"`
}

// job assembles the audio job from defaults, config file and flags
func (cmd *AudioCmd) job() (config.Job, error) {
	job := config.DefaultJob()
	job.Mode = config.ModeAudio

	if err := applyFileDefaults(cmd.Config, &job); err != nil {
		return job, err
	}
	if cmd.Quality != "" {
		q, err := config.ParseAudioQuality(cmd.Quality)
		if err != nil {
			return job, err
		}
		job.AudioQuality = q
	}
	cmd.batchFlags.apply(&job)
	return job, nil
}

func (cmd *AudioCmd) Run() error {
	job, err := cmd.job()
	if err != nil {
		return err
	}
	return runBatch(cmd.InputFile, job)
}

// VideoCmd downloads every URL as a video with metadata sidecars
type VideoCmd struct {
	batchFlags
	Quality    string `short:"q" placeholder:"QUALITY" help:"Video quality: best, 1080p, 720p, 480p or worst (default best)"`
	NoSidecars bool   `help:"Skip writing video_metadata.json and README.md"`
}

// job assembles the video job from defaults, config file and flags
func (cmd *VideoCmd) job() (config.Job, error) {
	job := config.DefaultJob()
	job.Mode = config.ModeVideo

	if err := applyFileDefaults(cmd.Config, &job); err != nil {
		return job, err
	}
	if cmd.Quality != "" {
		q, err := config.ParseVideoQuality(cmd.Quality)
		if err != nil {
			return job, err
		}
		job.VideoQuality = q
	}
	if cmd.NoSidecars {
		job.WriteSidecars = false
	}
	cmd.batchFlags.apply(&job)
	return job, nil
}

func (cmd *VideoCmd) Run() error {
	job, err := cmd.job()
	if err != nil {
		return err
	}
	return runBatch(cmd.InputFile, job)
}

// CLI is the root command structure
type CLI struct {
	Audio   AudioCmd         `cmd:"" help:"Download every URL as an MP3 audio file"`
	Video   VideoCmd         `cmd:"" help:"Download every URL as a full video with metadata sidecars"`
	Version kong.VersionFlag `help:"Print version and exit"`
}

// applyFileDefaults overlays an optional ytbatch.yaml onto the job
func applyFileDefaults(path string, job *config.Job) error {
	fileCfg, err := config.LoadFileConfig(path)
	if err != nil {
		return err
	}
	return fileCfg.ApplyTo(job)
}

// runBatch drives one batch from the URL file to the final summary
func runBatch(inputFile string, job config.Job) error {
	closeLog, err := setupRunLog()
	if err != nil {
		log.Printf("Run log unavailable: %v", err)
	} else {
		defer closeLog()
	}

	urls, err := platform.ReadURLFile(inputFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no valid URLs found in %s", inputFile)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("ytbatch %s", version)))
	fmt.Println(infoStyle.Render(fmt.Sprintf("Loaded %d URLs from %s", len(urls), inputFile)))

	ctx := context.Background()
	if err := media.Install(ctx); err != nil {
		return err
	}

	if job.ExpandPlaylists {
		fmt.Println(infoStyle.Render("Expanding playlist URLs..."))
		urls = platform.NewPlaylistExpander().ExpandAll(ctx, urls)
		fmt.Println(infoStyle.Render(fmt.Sprintf("%d URLs after expansion", len(urls))))
	}

	token := batch.NewToken()
	installSignalHandler(token)

	sink := batch.NewSink()
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		renderEvents(sink, len(urls))
	}()

	runner := batch.NewRunner(media.NewYTDLPFetcher(), job, sink)
	result, err := runner.Run(urls, token)
	<-rendered
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(report.Summarize(result))

	if path, err := report.PersistFailures(result, job.OutputDir); err != nil {
		log.Printf("Failed to persist failed URLs: %v", err)
	} else if path != "" {
		fmt.Println(warnStyle.Render("💾 Failed URLs saved to: " + path))
	}

	if result.Interrupted {
		return errInterrupted
	}
	return nil
}

// installSignalHandler maps the first interrupt onto the token and
// force-quits on the second
func installSignalHandler(token *batch.Token) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		fmt.Println(warnStyle.Render("⚠️ Cancelling, waiting for in-flight downloads (interrupt again to force quit)"))
		token.Signal()

		<-sigCh
		fmt.Println(errorStyle.Render("Force quit"))
		os.Exit(130)
	}()
}

// setupRunLog routes the stdlib log to a per-run file alongside stderr
func setupRunLog() (func(), error) {
	if err := platform.CreateDirectoryIfNotExists(LogDirName); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("ytbatch_%s.log", time.Now().Format("20060102_150405"))
	file, err := os.Create(filepath.Join(LogDirName, name))
	if err != nil {
		return nil, err
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return func() {
		log.SetOutput(os.Stderr)
		file.Close()
	}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ytbatch"),
		kong.Description("Batch YouTube downloader: MP3 audio or full videos from a URL list."),
		kong.Vars{"version": fmt.Sprintf("ytbatch %s", version)},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
