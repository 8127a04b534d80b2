package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

func check(name, installURL string) error {
	if _, err := lookPath(name); err != nil {
		return &DependencyError{
			Name:       name,
			InstallURL: installURL,
		}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return check("mpv", MpvInstallURL)
}

// CheckFfmpeg checks if ffmpeg is installed and available in PATH
func CheckFfmpeg() error {
	return check("ffmpeg", FfmpegInstallURL)
}

// CheckFfprobe checks if ffprobe is installed and available in PATH.
// It ships with ffmpeg, so the install link is the same.
func CheckFfprobe() error {
	return check("ffprobe", FfmpegInstallURL)
}

// CheckDecoder checks the binaries needed by the ffmpeg decoder.
func CheckDecoder() error {
	if err := CheckFfmpeg(); err != nil {
		return err
	}
	return CheckFfprobe()
}

// Result is the outcome of checking one binary.
type Result struct {
	Name       string
	InstallURL string
	Err        error
}

// OK reports whether the binary was found.
func (r Result) OK() bool { return r.Err == nil }

// CheckAll checks ffmpeg, ffprobe and mpv, in that order, and returns one
// result per binary.
func CheckAll() []Result {
	checks := []struct {
		name string
		url  string
	}{
		{"ffmpeg", FfmpegInstallURL},
		{"ffprobe", FfmpegInstallURL},
		{"mpv", MpvInstallURL},
	}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		results = append(results, Result{
			Name:       c.name,
			InstallURL: c.url,
			Err:        check(c.name, c.url),
		})
	}
	return results
}
