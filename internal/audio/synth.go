package audio

import (
	"errors"
	"math"
	"time"
)

// ErrSinkUnavailable indicates no audio output could be opened.
var ErrSinkUnavailable = errors.New("audio sink unavailable")

// Sink renders scheduled sample buffers on its own timeline.
type Sink interface {
	SampleRate() int
	// Now is the current position on the sink timeline.
	Now() time.Duration
	// Schedule mixes mono samples into the output starting at at.
	Schedule(at time.Duration, samples []float32)
	Suspended() bool
	Resume() error
}

// Tone describes a single enveloped oscillator burst.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Peak      float64
	Shape     WaveShape
}

// Render produces mono samples for tone at sampleRate.
func Render(tone Tone, sampleRate int) []float32 {
	if sampleRate <= 0 || tone.Duration <= 0 || tone.Frequency <= 0 {
		return nil
	}
	count := int(math.Round(tone.Duration.Seconds() * float64(sampleRate)))
	samples := make([]float32, count)
	for i := range samples {
		elapsed := time.Duration(i) * time.Second / time.Duration(sampleRate)
		phase := tone.Frequency * float64(i) / float64(sampleRate)
		gain := Envelope(elapsed, tone.Duration, tone.Peak)
		samples[i] = float32(Oscillate(tone.Shape, phase) * gain)
	}
	return samples
}

// Synthesizer renders tones onto a Sink. It keeps no state between calls
// besides the sink itself, so overlapping tones mix in the sink.
type Synthesizer struct {
	sink Sink
}

// NewSynthesizer creates a Synthesizer writing to sink.
func NewSynthesizer(sink Sink) *Synthesizer {
	return &Synthesizer{sink: sink}
}

// PlayTone schedules tone at position start on the sink timeline.
func (synth *Synthesizer) PlayTone(start time.Duration, tone Tone) error {
	if synth == nil || synth.sink == nil {
		return ErrSinkUnavailable
	}
	samples := Render(tone, synth.sink.SampleRate())
	if len(samples) == 0 {
		return nil
	}
	synth.sink.Schedule(start, samples)
	return nil
}
