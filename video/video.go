// Package video decodes video files into a sequence of still frames.
//
// Two decoders are available: FFmpegDecoder, which pipes raw RGBA frames out
// of an ffmpeg subprocess and handles any container ffmpeg can read, and
// MPEGDecoder, a pure-Go MPEG-1 decoder used when ffmpeg is not installed.
package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/flipbook-cli/deps"
	"go.uber.org/zap"
)

// Decoder names accepted by NewDecoder.
const (
	DecoderAuto   = "auto"
	DecoderFFmpeg = "ffmpeg"
	DecoderMPEG1  = "mpeg1"
)

// ErrNoVideoStream is returned when a container holds no decodable video.
var ErrNoVideoStream = errors.New("video: no video stream")

// Stream yields decoded frames in presentation order. It is one-shot: once
// Next has returned io.EOF the stream cannot be restarted.
type Stream interface {
	// FrameRate reports frames per second; zero or negative means unknown.
	FrameRate() float64
	// Next returns the next decoded frame, or io.EOF after the last one.
	// The image is only valid until the following call to Next.
	Next() (image.Image, error)
	// Close releases the decode handle. It is safe to call more than once.
	Close() error
}

// Decoder opens video files for frame-by-frame decoding.
type Decoder interface {
	Name() string
	Open(path string) (Stream, error)
}

// NewDecoder returns the decoder registered under name. "auto" picks ffmpeg
// when both ffmpeg and ffprobe are on PATH and falls back to mpeg1.
func NewDecoder(name string, logger *zap.Logger) (Decoder, error) {
	switch name {
	case DecoderFFmpeg:
		if err := deps.CheckDecoder(); err != nil {
			return nil, err
		}
		return NewFFmpegDecoder(logger), nil
	case DecoderMPEG1:
		return NewMPEGDecoder(), nil
	case DecoderAuto, "":
		if deps.CheckDecoder() == nil {
			return NewFFmpegDecoder(logger), nil
		}
		return NewMPEGDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown decoder %q (want %s, %s or %s)", name, DecoderAuto, DecoderFFmpeg, DecoderMPEG1)
	}
}
