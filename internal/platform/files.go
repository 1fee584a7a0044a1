package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// MaxNameLength is the longest sanitized name used for per-item directories
const MaxNameLength = 100

var (
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	unsafeChars    = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.()\[\]&]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeName cleans a title for use as a directory or file name.
// Filesystem-reserved characters are stripped, remaining unsafe runes
// become underscores, whitespace runs collapse to single spaces and the
// result is truncated to MaxNameLength runes. May return an empty string
// when the input has no safe characters at all.
func SanitizeName(name string) string {
	cleaned := forbiddenChars.ReplaceAllString(name, "")
	cleaned = unsafeChars.ReplaceAllString(cleaned, "_")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > MaxNameLength {
		cleaned = strings.TrimRight(string(runes[:MaxNameLength]), " ")
	}
	return cleaned
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// CreateUniqueDir creates a directory named name under parent. When the
// name is already taken a " (n)" suffix is appended, counting up until a
// free name is found. Relies on os.Mkdir failing on existing paths, so
// concurrent callers with the same name each get their own directory.
func CreateUniqueDir(parent, name string) (string, error) {
	if err := CreateDirectoryIfNotExists(parent); err != nil {
		return "", fmt.Errorf("failed to create parent directory: %w", err)
	}

	path := filepath.Join(parent, name)
	err := os.Mkdir(path, DefaultDirPermissions)
	if err == nil {
		return path, nil
	}
	if !os.IsExist(err) {
		return "", fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	for counter := 1; ; counter++ {
		candidate := filepath.Join(parent, fmt.Sprintf("%s (%d)", name, counter))
		err := os.Mkdir(candidate, DefaultDirPermissions)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("failed to create directory %s: %w", candidate, err)
		}
	}
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// OpenFolder opens the directory in the system file manager
func OpenFolder(dirPath string) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("directory does not exist: %v", err)
	}

	switch runtime.GOOS {
	case OSDarwin: // macOS
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFolderLinux opens a directory on Linux
// Note: tries xdg-open first, then falls back to common file managers
func openFolderLinux(dirPath string) error {
	if err := exec.Command(XDGOpenCommand, dirPath).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dirPath).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
