package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readFrames pulls n frames and returns the left channel.
func readFrames(t *testing.T, mixer *Mixer, n int) []int16 {
	t.Helper()
	buf := make([]byte, n*bytesPerFrame)
	read, err := mixer.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), read)

	left := make([]int16, n)
	for i := range left {
		left[i] = int16(binary.LittleEndian.Uint16(buf[i*bytesPerFrame:]))
		right := int16(binary.LittleEndian.Uint16(buf[i*bytesPerFrame+2:]))
		require.Equal(t, left[i], right)
	}
	return left
}

func TestMixerSilenceAndClock(t *testing.T) {
	mixer := NewMixer(1000)
	assert.Equal(t, time.Duration(0), mixer.Now())

	frames := readFrames(t, mixer, 250)
	for _, frame := range frames {
		assert.Equal(t, int16(0), frame)
	}
	assert.Equal(t, 250*time.Millisecond, mixer.Now())
}

func TestMixerPartialFrames(t *testing.T) {
	mixer := NewMixer(1000)
	read, err := mixer.Read(make([]byte, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, read)

	read, err = mixer.Read(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 8, read)
	assert.Equal(t, 2*time.Millisecond, mixer.Now())
}

func TestMixerAddsAndClips(t *testing.T) {
	mixer := NewMixer(1000)
	mixer.Schedule(0, []float32{0.25, 0.25, 0.75, -0.75})
	mixer.Schedule(time.Millisecond, []float32{0.25, 0.5, -0.5})

	frames := readFrames(t, mixer, 5)
	scale := float64(math.MaxInt16)
	assert.InDelta(t, 0.25, float64(frames[0])/scale, 1e-3)
	assert.InDelta(t, 0.5, float64(frames[1])/scale, 1e-3)
	assert.InDelta(t, 1.0, float64(frames[2])/scale, 1e-3, "0.75 + 0.5 clips to 1")
	assert.InDelta(t, -1.0, float64(frames[3])/scale, 1e-3, "-0.75 - 0.5 clips to -1")
	assert.Equal(t, int16(0), frames[4])
}

func TestMixerVoiceSpansReads(t *testing.T) {
	mixer := NewMixer(1000)
	mixer.Schedule(3*time.Millisecond, []float32{0.5, 0.5, 0.5, 0.5})

	first := readFrames(t, mixer, 5)
	assert.Equal(t, int16(0), first[2])
	assert.NotZero(t, first[3])
	assert.NotZero(t, first[4])
	assert.Equal(t, 1, mixer.Active())

	second := readFrames(t, mixer, 5)
	assert.NotZero(t, second[0])
	assert.NotZero(t, second[1])
	assert.Equal(t, int16(0), second[2])
	assert.Equal(t, 0, mixer.Active())
}

func TestMixerLateScheduleStartsNow(t *testing.T) {
	mixer := NewMixer(1000)
	readFrames(t, mixer, 100)

	mixer.Schedule(10*time.Millisecond, []float32{0.5})
	frames := readFrames(t, mixer, 2)
	assert.NotZero(t, frames[0])
	assert.Equal(t, int16(0), frames[1])
}

func TestMixerIgnoresEmptyVoice(t *testing.T) {
	mixer := NewMixer(0)
	assert.Equal(t, DefaultSampleRate, mixer.SampleRate())
	mixer.Schedule(0, nil)
	assert.Equal(t, 0, mixer.Active())
	assert.False(t, mixer.Suspended())
	assert.NoError(t, mixer.Resume())
}
