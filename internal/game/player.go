package game

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/config"
)

// player plays one audio file at a time and exposes its recent samples.
// Fields touched by the speaker's end callback are guarded by mu.
type player struct {
	logger *slog.Logger

	mu          sync.Mutex
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *sampleTap
	duration    time.Duration
	started     time.Time
	pausedAt    time.Duration

	paused   bool
	initDone bool
	lastSeek time.Time
}

// seekCooldown limits how often dragging the progress bar seeks.
const seekCooldown = 50 * time.Millisecond

func newPlayer(logger *slog.Logger) *player {
	return &player{logger: logger}
}

// openDialog asks for a file and starts playing it. Cancelling is not an error.
func (p *player) openDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return errors.Wrap(err, "file dialog")
	}
	return p.loadAndPlay(filename)
}

func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.Errorf("unsupported file type: %s", ext)
	}
}

func (p *player) loadAndPlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open audio")
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "decode %s", filepath.Base(path))
	}

	// streamer -> tap -> ctrl
	t := newSampleTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	bufferSize := format.SampleRate.N(time.Second / 20)
	p.mu.Lock()
	initDone, oldRate := p.initDone, p.format.SampleRate
	p.mu.Unlock()

	switch {
	case !initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return errors.Wrap(err, "init speaker")
		}
	case oldRate != format.SampleRate:
		// re-init when the sample rate changes
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return errors.Wrap(err, "re-init speaker")
		}
	default:
		speaker.Clear()
	}
	p.closeCurrent()

	p.mu.Lock()
	p.initDone = true
	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.duration = format.SampleRate.D(streamer.Len())
	p.started = time.Now()
	p.pausedAt = 0
	p.mu.Unlock()

	p.logger.Info("playing", "file", filepath.Base(path), "duration", p.duration, "rate", int(format.SampleRate))

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.finished(streamer, f)
	})))
	return nil
}

// finished releases a track that played to its end. The player goes back to
// the unloaded state unless another file replaced it meanwhile.
func (p *player) finished(s beep.StreamSeekCloser, f *os.File) {
	p.mu.Lock()
	if p.streamer == s {
		p.tap = nil
		p.ctrl = nil
		p.paused = false
	}
	p.mu.Unlock()
	p.closeStream(s, f)
	p.logger.Debug("playback finished")
}

// seek moves playback to frac of the track. Calls within seekCooldown of the
// previous seek are dropped.
func (p *player) seek(frac float64, now time.Time) error {
	p.mu.Lock()
	s, rate := p.streamer, p.format.SampleRate
	if s == nil || now.Sub(p.lastSeek) < seekCooldown {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	pos := int(clamp01(frac) * float64(s.Len()))
	if pos >= s.Len() {
		pos = s.Len() - 1
	}
	pos = max(pos, 0)

	speaker.Lock()
	err := s.Seek(pos)
	speaker.Unlock()
	if err != nil {
		return errors.Wrap(err, "seek")
	}

	at := rate.D(pos)
	p.mu.Lock()
	p.lastSeek = now
	p.started = now.Add(-at)
	p.pausedAt = at
	p.mu.Unlock()
	return nil
}

func (p *player) closeCurrent() {
	p.mu.Lock()
	s, f := p.streamer, p.currentFile
	p.mu.Unlock()
	p.closeStream(s, f)
}

func (p *player) closeStream(s beep.StreamSeekCloser, f *os.File) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s != nil && p.streamer == s {
		_ = s.Close()
		p.streamer = nil
	}
	if f != nil && p.currentFile == f {
		_ = f.Close()
		p.currentFile = nil
	}
}

func (p *player) togglePause() {
	p.mu.Lock()
	ctrl := p.ctrl
	p.mu.Unlock()
	if ctrl == nil {
		return
	}

	speaker.Lock()
	p.mu.Lock()
	p.paused = !p.paused
	ctrl.Paused = p.paused
	if p.paused {
		p.pausedAt = time.Since(p.started)
	} else {
		p.started = time.Now().Add(-p.pausedAt)
	}
	p.mu.Unlock()
	speaker.Unlock()
}

// active reports whether audio is loaded and feeding the tap.
func (p *player) active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tap != nil && !p.paused
}

func (p *player) loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

func (p *player) isPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// progress returns the playback position and total length.
func (p *player) progress() (time.Duration, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil || p.duration == 0 {
		return 0, 0
	}
	pos := time.Since(p.started)
	if p.paused {
		pos = p.pausedAt
	}
	if pos > p.duration {
		pos = p.duration
	}
	return pos, p.duration
}

// levels returns n smoothed band levels of the recent audio.
func (p *player) levels(n int, prev []float64) []float64 {
	p.mu.Lock()
	t := p.tap
	p.mu.Unlock()
	if t == nil {
		return nil
	}
	return t.levels(2048, n, prev, config.SmoothingFactor)
}
