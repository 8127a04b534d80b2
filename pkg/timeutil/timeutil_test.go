package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatTime(-3))
	assert.Equal(t, "0:01:30", FormatTime(90.9))
	assert.Equal(t, "1:11:22", FormatTime(4282))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "-", FormatElapsed(0))
	assert.Equal(t, "250ms", FormatElapsed(250*time.Millisecond))
	assert.Equal(t, "2.5s", FormatElapsed(2500*time.Millisecond))
	assert.Equal(t, "0:02:05", FormatElapsed(125*time.Second))
}
