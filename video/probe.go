package video

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Info describes the first video stream of a file.
type Info struct {
	Codec      string
	Width      int
	Height     int
	FrameRate  float64
	FrameCount int // 0 when the container does not record it
	Duration   float64
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string            `json:"codec_type"`
	CodecName    string            `json:"codec_name"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	RFrameRate   string            `json:"r_frame_rate"`
	NbFrames     string            `json:"nb_frames"`
	Duration     string            `json:"duration"`
	Tags         map[string]string `json:"tags"`
	SideDataList []struct {
		Rotation float64 `json:"rotation"`
	} `json:"side_data_list"`
}

// Probe runs ffprobe on path and returns the metadata of its first video
// stream.
func Probe(path string) (Info, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (Info, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range po.Streams {
		if s.CodecType != "video" {
			continue
		}

		info := Info{
			Codec:  s.CodecName,
			Width:  s.Width,
			Height: s.Height,
		}
		if s.Width <= 0 || s.Height <= 0 {
			return Info{}, fmt.Errorf("%w: invalid dimensions %dx%d", ErrNoVideoStream, s.Width, s.Height)
		}

		// ffmpeg auto-rotates on decode, so the frames come out transposed.
		if quarterTurn(streamRotation(s)) {
			info.Width, info.Height = info.Height, info.Width
		}

		info.FrameRate = parseRate(s.AvgFrameRate)
		if info.FrameRate <= 0 {
			info.FrameRate = parseRate(s.RFrameRate)
		}
		if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
			info.FrameCount = n
		}
		info.Duration = parseSeconds(s.Duration)
		if info.Duration <= 0 {
			info.Duration = parseSeconds(po.Format.Duration)
		}
		return info, nil
	}

	return Info{}, ErrNoVideoStream
}

// parseRate parses an ffprobe rational such as "30000/1001". Anything
// unparsable, including a zero denominator, yields 0.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return parseSeconds(num)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	r := n / d
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func streamRotation(s probeStream) float64 {
	for _, sd := range s.SideDataList {
		if sd.Rotation != 0 {
			return sd.Rotation
		}
	}
	if r, ok := s.Tags["rotate"]; ok {
		if v, err := strconv.ParseFloat(r, 64); err == nil {
			return v
		}
	}
	return 0
}

func quarterTurn(deg float64) bool {
	d := int(math.Round(deg)) % 180
	if d < 0 {
		d += 180
	}
	return d == 90
}
