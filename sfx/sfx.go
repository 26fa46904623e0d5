// Package sfx plays short synthesized tones for game events.
package sfx

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockfall/game"
)

const DefaultSampleRate = beep.SampleRate(44100)

const noteGap = 20 * time.Millisecond

// Tone is a sine note.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// Sink plays a finished sound.
type Sink func(s beep.Streamer)

// Init opens the speaker with a 100ms buffer.
func Init(rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// Speaker hands sounds to the speaker opened by Init.
func Speaker(s beep.Streamer) {
	speaker.Play(s)
}

// Player turns controller events into sounds. It implements game.Observer.
type Player struct {
	rate   beep.SampleRate
	sink   Sink
	volume float64
}

// New creates a player at full volume.
func New(rate beep.SampleRate, sink Sink) *Player {
	return &Player{rate: rate, sink: sink, volume: 1}
}

// SetVolume scales every sound; 0 mutes.
func (p *Player) SetVolume(v float64) {
	p.volume = max(0, min(v, 1))
}

// Tones returns the notes played for an event. Clears play one rising note
// per completed row.
func Tones(e game.Event) []Tone {
	switch e.Kind {
	case game.EventSettled:
		return []Tone{{Freq: 196, Duration: 60 * time.Millisecond}}
	case game.EventCleared:
		tones := make([]Tone, len(e.Rows))
		for i := range tones {
			tones[i] = Tone{Freq: 523.25 * math.Pow(2, float64(i)/3), Duration: 90 * time.Millisecond}
		}
		return tones
	case game.EventEnded:
		return []Tone{
			{Freq: 392, Duration: 150 * time.Millisecond},
			{Freq: 311.13, Duration: 150 * time.Millisecond},
			{Freq: 261.63, Duration: 300 * time.Millisecond},
		}
	default:
		return nil
	}
}

// Sound renders tones as one streamer with a short gap between notes.
func (p *Player) Sound(tones []Tone) (beep.Streamer, error) {
	if len(tones) == 0 {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, 2*len(tones)-1)
	for i, t := range tones {
		if i > 0 {
			parts = append(parts, beep.Silence(p.rate.N(noteGap)))
		}
		sine, err := generators.SineTone(p.rate, t.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %gHz: %w", t.Freq, err)
		}
		parts = append(parts, beep.Take(p.rate.N(t.Duration), sine))
	}

	return p.scale(beep.Seq(parts...)), nil
}

func (p *Player) scale(s beep.Streamer) beep.Streamer {
	if p.volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(p.volume)}
}

// OnEvent plays the sound for e, if it has one.
func (p *Player) OnEvent(e game.Event) {
	s, err := p.Sound(Tones(e))
	if err != nil || s == nil {
		return
	}
	p.sink(s)
}
