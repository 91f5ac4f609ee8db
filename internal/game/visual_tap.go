package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// sampleTap passes audio through unchanged and keeps the most recent mono
// samples so the rings can follow what is playing. Stream runs on the
// speaker goroutine; levels is called from the game loop.
type sampleTap struct {
	beep.Streamer

	mu     sync.Mutex
	recent []float64
	head   int
	filled bool
}

func newSampleTap(src beep.Streamer, size int) *sampleTap {
	return &sampleTap{Streamer: src, recent: make([]float64, size)}
}

func (t *sampleTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Streamer.Stream(samples)
	if n == 0 {
		return n, ok
	}

	t.mu.Lock()
	for _, s := range samples[:n] {
		t.recent[t.head] = (s[0] + s[1]) * 0.5
		t.head++
		if t.head == len(t.recent) {
			t.head, t.filled = 0, true
		}
	}
	t.mu.Unlock()
	return n, ok
}

// window copies up to n recorded samples, oldest first.
func (t *sampleTap) window(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	have := t.head
	if t.filled {
		have = len(t.recent)
	}
	n = min(n, have)

	out := make([]float64, n)
	start := t.head - n
	if start >= 0 {
		copy(out, t.recent[start:t.head])
		return out
	}
	k := copy(out, t.recent[len(t.recent)+start:])
	copy(out[k:], t.recent[:t.head])
	return out
}

// levels splits the last window samples into n bands and returns each
// band's level in [0,1], smoothed against prev.
func (t *sampleTap) levels(window, n int, prev []float64, smoothing float64) []float64 {
	return bandLevels(t.window(window), n, prev, smoothing)
}

// bandLevels is the RMS of each of n equal segments of mono, compressed with
// a 0.3 power so quiet passages still move the rings. Segments past the end
// of mono stay at zero.
func bandLevels(mono []float64, n int, prev []float64, smoothing float64) []float64 {
	out := make([]float64, n)
	if n == 0 || len(mono) == 0 {
		return out
	}

	size := max(1, len(mono)/n)
	for i := range out {
		start := i * size
		if start >= len(mono) {
			break
		}
		end := min(start+size, len(mono))

		var sum float64
		for _, v := range mono[start:end] {
			sum += v * v
		}
		level := clamp01(math.Pow(math.Sqrt(sum/float64(end-start)), 0.3))
		if i < len(prev) {
			level = smoothing*prev[i] + (1-smoothing)*level
		}
		out[i] = level
	}
	return out
}
