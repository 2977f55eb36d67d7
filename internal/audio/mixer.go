package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

const (
	channelCount  = 2
	bytesPerFrame = channelCount * 2
)

type voice struct {
	start   int64
	samples []float32
}

func (v voice) end() int64 {
	return v.start + int64(len(v.samples))
}

// Mixer sums scheduled voices into a continuous stereo 16-bit little-endian
// PCM stream. Its clock advances only as the stream is read.
type Mixer struct {
	mu         sync.Mutex
	sampleRate int
	position   int64
	voices     []voice
	scratch    []float32
}

// NewMixer creates a Mixer producing frames at sampleRate.
func NewMixer(sampleRate int) *Mixer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Mixer{sampleRate: sampleRate}
}

// SampleRate returns frames per second.
func (mixer *Mixer) SampleRate() int {
	return mixer.sampleRate
}

// Now returns the timeline position of the next frame to be read.
func (mixer *Mixer) Now() time.Duration {
	mixer.mu.Lock()
	defer mixer.mu.Unlock()
	return mixer.framesToDuration(mixer.position)
}

// Schedule adds a voice starting at at. Voices scheduled in the past start
// at the current position.
func (mixer *Mixer) Schedule(at time.Duration, samples []float32) {
	if len(samples) == 0 {
		return
	}
	mixer.mu.Lock()
	defer mixer.mu.Unlock()
	start := int64(math.Round(at.Seconds() * float64(mixer.sampleRate)))
	if start < mixer.position {
		start = mixer.position
	}
	mixer.voices = append(mixer.voices, voice{start: start, samples: samples})
}

// Active returns the number of voices not yet fully read.
func (mixer *Mixer) Active() int {
	mixer.mu.Lock()
	defer mixer.mu.Unlock()
	return len(mixer.voices)
}

// Suspended always reports false; a bare Mixer has no hardware to suspend.
func (mixer *Mixer) Suspended() bool {
	return false
}

// Resume is a no-op for a bare Mixer.
func (mixer *Mixer) Resume() error {
	return nil
}

// Read fills p with whole frames and never returns io.EOF; silence is
// produced when nothing is scheduled.
func (mixer *Mixer) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	mixer.mu.Lock()
	defer mixer.mu.Unlock()

	if cap(mixer.scratch) < frames {
		mixer.scratch = make([]float32, frames)
	}
	mix := mixer.scratch[:frames]
	for i := range mix {
		mix[i] = 0
	}

	from := mixer.position
	to := from + int64(frames)
	kept := mixer.voices[:0]
	for _, v := range mixer.voices {
		lo := max64(v.start, from)
		hi := min64(v.end(), to)
		for pos := lo; pos < hi; pos++ {
			mix[pos-from] += v.samples[pos-v.start]
		}
		if v.end() > to {
			kept = append(kept, v)
		}
	}
	for i := len(kept); i < len(mixer.voices); i++ {
		mixer.voices[i] = voice{}
	}
	mixer.voices = kept
	mixer.position = to

	for i, value := range mix {
		sample := int16(clip(value) * math.MaxInt16)
		offset := i * bytesPerFrame
		binary.LittleEndian.PutUint16(p[offset:], uint16(sample))
		binary.LittleEndian.PutUint16(p[offset+2:], uint16(sample))
	}
	return frames * bytesPerFrame, nil
}

func (mixer *Mixer) framesToDuration(frames int64) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(mixer.sampleRate)
}

func clip(value float32) float32 {
	if value > 1 {
		return 1
	}
	if value < -1 {
		return -1
	}
	return value
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
