package video

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeJSON = `{
  "streams": [
    {"codec_type": "audio", "codec_name": "aac"},
    {
      "codec_type": "video",
      "codec_name": "h264",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "30000/1001",
      "r_frame_rate": "30/1",
      "nb_frames": "300",
      "duration": "10.010000"
    }
  ],
  "format": {"duration": "10.100000"}
}`

func TestParseProbe(t *testing.T) {
	info, err := parseProbe([]byte(probeJSON))
	require.NoError(t, err)

	assert.Equal(t, "h264", info.Codec)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.InDelta(t, 29.97, info.FrameRate, 0.001)
	assert.Equal(t, 300, info.FrameCount)
	assert.InDelta(t, 10.01, info.Duration, 1e-9)
}

func TestParseProbeFallbacks(t *testing.T) {
	data := `{"streams":[{"codec_type":"video","width":640,"height":360,
		"avg_frame_rate":"0/0","r_frame_rate":"25/1","nb_frames":"N/A"}],
		"format":{"duration":"4.0"}}`

	info, err := parseProbe([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 25.0, info.FrameRate)
	assert.Equal(t, 0, info.FrameCount)
	assert.Equal(t, 4.0, info.Duration)
}

func TestParseProbeRotation(t *testing.T) {
	sideData := `{"streams":[{"codec_type":"video","width":1920,"height":1080,
		"avg_frame_rate":"30/1","side_data_list":[{"rotation":-90}]}]}`
	info, err := parseProbe([]byte(sideData))
	require.NoError(t, err)
	assert.Equal(t, 1080, info.Width)
	assert.Equal(t, 1920, info.Height)

	tag := `{"streams":[{"codec_type":"video","width":1920,"height":1080,
		"avg_frame_rate":"30/1","tags":{"rotate":"180"}}]}`
	info, err = parseProbe([]byte(tag))
	require.NoError(t, err)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
}

func TestParseProbeNoVideo(t *testing.T) {
	_, err := parseProbe([]byte(`{"streams":[{"codec_type":"audio"}]}`))
	assert.True(t, errors.Is(err, ErrNoVideoStream))

	_, err = parseProbe([]byte(`{"streams":[{"codec_type":"video","width":0,"height":0}]}`))
	assert.True(t, errors.Is(err, ErrNoVideoStream))

	_, err = parseProbe([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"24000/1001", 24000.0 / 1001.0},
		{"0/0", 0},
		{"25", 25},
		{"", 0},
		{"abc/1", 0},
		{"30/x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseRate(tt.in), 1e-9)
		})
	}
}

func TestQuarterTurn(t *testing.T) {
	assert.True(t, quarterTurn(90))
	assert.True(t, quarterTurn(-90))
	assert.True(t, quarterTurn(270))
	assert.False(t, quarterTurn(0))
	assert.False(t, quarterTurn(180))
	assert.False(t, quarterTurn(-180))
}
