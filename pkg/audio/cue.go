// Package audio plays short synthesized cues for game events.
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// CueLength is how long a fire blip lasts.
const CueLength = 60 * time.Millisecond

// pitches maps a hardpoint type to its blip frequency in Hz.
var pitches = map[prototype.HardpointType]float64{
	prototype.Bullet:  880,
	prototype.Laser:   1320,
	prototype.Bomb:    220,
	prototype.Missile: 440,
	prototype.Miner:   330,
	prototype.Utility: 660,
}

// defaultPitch is used when the hardpoint type is unknown.
const defaultPitch = 880

// Output plays streamers.
type Output interface {
	Play(s ...beep.Streamer)
}

type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Play(s ...beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s...)
	speaker.Unlock()
}

// OpenSpeaker initializes the system speaker and returns an Output mixing
// into it.
func OpenSpeaker() (Output, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	o := &speakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(o.mixer)
	return o, nil
}

// FireCue plays a blip every time a projectile is fired.
type FireCue struct {
	mu     sync.Mutex
	bus    *event.Bus
	token  event.Token
	out    Output
	played int
	logger *logging.Logger
}

// NewFireCue subscribes a cue to ProjectileFired on bus.
func NewFireCue(bus *event.Bus, out Output, logger *logging.Logger) *FireCue {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &FireCue{bus: bus, out: out, logger: logger.Component("audio")}
	c.token = bus.Subscribe(event.ProjectileFired, c.handle)
	return c
}

func (c *FireCue) handle(ev event.Event) {
	freq := float64(defaultPitch)
	if hp, ok := ev.GetSource().(*entity.Hardpoint); ok {
		if p, ok := pitches[hp.Prototype().Type]; ok {
			freq = p
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.Play(beep.Take(SampleRate.N(CueLength), NewBlip(SampleRate, freq)))
	c.played++
	c.logger.Debug(context.Background(), "fire cue", "freq", freq)
}

// Played returns how many cues have been started.
func (c *FireCue) Played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}

// Close unsubscribes the cue.
func (c *FireCue) Close() {
	c.bus.Unsubscribe(event.ProjectileFired, c.token)
}

// Blip is a sine tone with a linear decay over CueLength.
type Blip struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBlip creates a blip generator.
func NewBlip(sr beep.SampleRate, freq float64) *Blip {
	return &Blip{sr: sr, freq: freq}
}

func (b *Blip) Stream(samples [][2]float64) (n int, ok bool) {
	total := float64(b.sr.N(CueLength))
	for i := range samples {
		t := float64(b.pos) / float64(b.sr)
		env := math.Max(1-float64(b.pos)/total, 0)
		v := 0.25 * env * math.Sin(2*math.Pi*b.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *Blip) Err() error { return nil }
