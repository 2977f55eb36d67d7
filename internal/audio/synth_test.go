package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOscillateShapes(t *testing.T) {
	assert.InDelta(t, 0, Oscillate(WaveSine, 0), 1e-12)
	assert.InDelta(t, 1, Oscillate(WaveSine, 0.25), 1e-12)
	assert.InDelta(t, 1, Oscillate(WaveSine, 3.25), 1e-9)

	assert.Equal(t, 1.0, Oscillate(WaveSquare, 0.1))
	assert.Equal(t, -1.0, Oscillate(WaveSquare, 0.6))

	assert.InDelta(t, 0, Oscillate(WaveTriangle, 0), 1e-12)
	assert.InDelta(t, 1, Oscillate(WaveTriangle, 0.25), 1e-12)
	assert.InDelta(t, -1, Oscillate(WaveTriangle, 0.75), 1e-12)

	assert.InDelta(t, 0, Oscillate(WaveSawtooth, 0), 1e-12)
	assert.InDelta(t, 0.5, Oscillate(WaveSawtooth, 0.25), 1e-12)
	assert.InDelta(t, -0.5, Oscillate(WaveSawtooth, 0.75), 1e-12)

	assert.InDelta(t, Oscillate(WaveTriangle, 0.9), Oscillate(WaveTriangle, -0.1), 1e-12)
}

func TestParseWaveShape(t *testing.T) {
	shape, err := ParseWaveShape("square")
	require.NoError(t, err)
	assert.Equal(t, WaveSquare, shape)

	_, err = ParseWaveShape("noise")
	assert.Error(t, err)
}

func TestRenderLengthAndBounds(t *testing.T) {
	tone := Tone{Frequency: 880, Duration: 150 * time.Millisecond, Peak: 0.25, Shape: WaveSine}
	samples := Render(tone, 8000)

	require.Len(t, samples, 1200)
	assert.Equal(t, float32(0), samples[0])

	var peak float64
	for _, sample := range samples {
		peak = math.Max(peak, math.Abs(float64(sample)))
	}
	assert.LessOrEqual(t, peak, 0.25+1e-6)
	assert.Greater(t, peak, 0.2)
	assert.Less(t, math.Abs(float64(samples[len(samples)-1])), 0.01)
}

func TestRenderRejectsEmptyTone(t *testing.T) {
	assert.Nil(t, Render(Tone{Frequency: 440}, 8000))
	assert.Nil(t, Render(Tone{Duration: time.Second}, 8000))
	assert.Nil(t, Render(Tone{Frequency: 440, Duration: time.Second}, 0))
}

func TestSynthesizerWithoutSink(t *testing.T) {
	var synth *Synthesizer
	assert.ErrorIs(t, synth.PlayTone(0, Tone{}), ErrSinkUnavailable)
	assert.ErrorIs(t, NewSynthesizer(nil).PlayTone(0, Tone{}), ErrSinkUnavailable)
}

func TestSynthesizerSchedulesOnSink(t *testing.T) {
	mixer := NewMixer(1000)
	synth := NewSynthesizer(mixer)

	tone := Tone{Frequency: 250, Duration: 100 * time.Millisecond, Peak: 0.5, Shape: WaveSquare}
	require.NoError(t, synth.PlayTone(20*time.Millisecond, tone))
	require.NoError(t, synth.PlayTone(20*time.Millisecond, tone))
	assert.Equal(t, 2, mixer.Active())

	frames := readFrames(t, mixer, 200)
	// two identical square tones mix additively: the hold section reaches 2 * 0.5
	assert.InDelta(t, 1.0, float64(frames[68])/math.MaxInt16, 1e-3)
	assert.Equal(t, int16(0), frames[10], "nothing before the start offset")
	assert.Equal(t, 0, mixer.Active())
}
