// synth.go - voice pool, global LFOs, and the render entry point

package synth

import (
	"fmt"
	"log"
)

// Config gathers the values needed to build a Synth. A zero value is
// filled in with package defaults by NewSynth.
type Config struct {
	Polyphony    int
	DelayLength  int
	DelayDecay   uint8
	UseDelay     bool
	MasterGain   float32
	Seed         uint32
}

func (c Config) withDefaults() Config {
	if c.Polyphony <= 0 {
		c.Polyphony = Polyphony
	}
	if c.DelayLength <= 0 {
		c.DelayLength = DelayLength
	}
	if c.DelayDecay == 0 {
		c.DelayDecay = 2
	}
	if c.MasterGain <= 0 {
		c.MasterGain = 1.0
	}
	return c
}

// Synth owns a fixed pool of voices, two global LFOs, and one shared delay
// bus. nextVoice is a round-robin index into the voice pool.
type Synth struct {
	cfg    Config
	voices []Voice

	lfoFilter Oscillator
	lfoEnvMod Oscillator

	bus *DelayBus

	rand *Rand

	nextVoice  int
	masterGain float32
}

// NewSynth allocates every buffer the synth will ever use (voices, and the
// delay bus if UseDelay is set). No allocation happens anywhere after this
// call returns. The delay bus's construction failure is the one
// reportable error in this package; on error, no partially constructed
// Synth is returned.
func NewSynth(cfg Config) (*Synth, error) {
	cfg = cfg.withDefaults()

	s := &Synth{
		cfg:        cfg,
		voices:     make([]Voice, cfg.Polyphony),
		rand:       NewRand(cfg.Seed),
		masterGain: cfg.MasterGain,
	}

	s.lfoFilter.InitOsc(OscSin, 0, 0, 0, 0)
	s.lfoEnvMod.InitOsc(OscSinDC, 0, 0, 0, 1.0)

	for i := range s.voices {
		s.voices[i].Osc[0].SetRand(s.rand)
		s.voices[i].Osc[1].SetRand(s.rand)
	}

	if cfg.UseDelay {
		bus, err := NewDelayBus(cfg.DelayLength, cfg.DelayDecay)
		if err != nil {
			return nil, fmt.Errorf("synth: init failed: %w", err)
		}
		s.bus = bus
	}

	return s, nil
}

// Polyphony reports the size of the voice pool.
func (s *Synth) Polyphony() int { return len(s.voices) }

// Voice returns a pointer to voice i, for controllers that need direct
// access to configure oscillators/filters before a note-on. i must be in
// [0, Polyphony()).
func (s *Synth) Voice(i int) *Voice { return &s.voices[i] }

// LFOFilter returns a pointer to the global filter-modulation LFO, for
// controllers that want to reconfigure its rate or depth. Every voice's
// filters read this same oscillator's output each sample.
func (s *Synth) LFOFilter() *Oscillator { return &s.lfoFilter }

// LFOEnvMod returns a pointer to the global envelope-modulation LFO, for
// controllers that want to reconfigure its rate or depth. Every voice's
// envelope reads this same oscillator's output each sample to scale its
// decay rate.
func (s *Synth) LFOEnvMod() *Oscillator { return &s.lfoEnvMod }

// NewVoice selects a voice to play the next note: round-robin probe
// starting at nextVoice, preferring an Idle voice; if none is idle, steal
// the round-robin-chosen voice (which is also the oldest by round-robin
// construction). nextVoice always advances by exactly 1 mod N per call.
func (s *Synth) NewVoice() *Voice {
	n := len(s.voices)
	chosen := s.nextVoice
	s.nextVoice = (s.nextVoice + 1) % n

	if !s.voices[chosen].Active() {
		return &s.voices[chosen]
	}

	for i := 0; i < n; i++ {
		idx := (chosen + i) % n
		if !s.voices[idx].Active() {
			return &s.voices[idx]
		}
	}

	// All voices active: steal the round-robin-chosen one.
	s.voices[chosen].Reset(0)
	s.voices[chosen].Osc[0].SetRand(s.rand)
	s.voices[chosen].Osc[1].SetRand(s.rand)
	return &s.voices[chosen]
}

// SetMasterGain sets the post-mix gain applied before saturation. Values
// outside [0, 4] are clamped and logged rather than rejected.
func (s *Synth) SetMasterGain(g float32) {
	clamped := clampf(g, 0, 4)
	if clamped != g {
		log.Printf("synth: master gain %.3f out of range, clamped to %.3f", g, clamped)
	}
	s.masterGain = clamped
}

// RenderSlice fills out with exactly len(out)/2 stereo-interleaved int16
// frames. It is wait-free and bounded: cost is O(len(out)*activeVoices),
// no locks, no allocation, no I/O.
func (s *Synth) RenderSlice(out []int16) error {
	if len(out)%2 != 0 {
		return fmt.Errorf("synth: RenderSlice requires an even-length stereo buffer, got %d", len(out))
	}

	frames := len(out) / 2
	for i := 0; i < frames; i++ {
		lfoF := s.lfoFilter.Tick(0, 0)
		lfoE := s.lfoEnvMod.Tick(0, 0)

		var mix float32
		for vi := range s.voices {
			mix += s.voices[vi].render(lfoF, lfoE)
		}

		mix *= s.masterGain
		sample := clamp16(int32(mix * 32767))

		l, r := sample, sample
		if s.bus != nil {
			l, r = s.bus.Tick(sample, sample)
		}

		out[i*2] = l
		out[i*2+1] = r
	}

	return nil
}

// Close releases resources owned exclusively by the synth — currently
// just the delay bus's backing ring, if one was allocated.
func (s *Synth) Close() {
	if s.bus != nil {
		s.bus.Close()
		s.bus = nil
	}
}
