// Package mpv previews a written page set by flipping through it in mpv.
package mpv

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/user/flipbook-cli/deps"
	"github.com/user/flipbook-cli/flipbook"
)

// SlideshowArgs returns the mpv arguments that loop over every page in dir
// at fps pages per second.
func SlideshowArgs(dir string, fps float64) []string {
	pattern := filepath.Join(dir, flipbook.PagePrefix+"*"+flipbook.PageExt)
	return []string{
		"--loop-file=inf",
		"--mf-fps=" + strconv.FormatFloat(fps, 'f', -1, 64),
		"mf://" + pattern,
	}
}

// LaunchSlideshow starts mpv flipping through the pages in dir.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchSlideshow(dir string, fps float64) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if !(fps > 0) {
		return nil, fmt.Errorf("invalid preview rate %v", fps)
	}

	matches, err := flipbook.ExistingPages(dir)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pages found in %s", dir)
	}

	cmd := exec.Command("mpv", SlideshowArgs(dir, fps)...)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
