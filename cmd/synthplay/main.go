// main.go - a tiny standalone driver that plays the synth library through
// a real audio sink, standing in for the sequencer/driver collaborators
// the library itself deliberately leaves out.

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	flag "github.com/spf13/pflag"

	"github.com/intuitionamiga/polysynth"
)

var variantNames = map[string]synth.OscVariant{
	"sin":       synth.OscSin,
	"sin2":      synth.OscSin2,
	"rect":      synth.OscRect,
	"saw":       synth.OscSaw,
	"tri":       synth.OscTri,
	"noise":     synth.OscNoise,
	"wt_simple": synth.OscWtableSimple,
	"wt_morph":  synth.OscWtableMorph,
}

func main() {
	variant := flag.StringP("osc", "o", "sin", "oscillator variant: sin, sin2, rect, saw, tri, noise, wt_simple, wt_morph")
	baseFreq := flag.Float64P("freq", "f", 220.0, "base note frequency in Hz")
	cutoff := flag.Float64P("cutoff", "c", 4000.0, "filter cutoff in Hz")
	resonance := flag.Float64P("resonance", "r", 0.2, "filter resonance, 0-0.95")
	damping := flag.Float64P("damping", "d", 0.3, "filter damping, 0.05-0.95")
	useDelay := flag.BoolP("delay", "x", true, "route the mix through the feedback delay bus")
	polyphony := flag.IntP("voices", "n", synth.Polyphony, "voice pool size")
	seconds := flag.Float64P("seconds", "s", 4.0, "how long to play, in seconds")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: synthplay [options]\n\nPlays a short arpeggio through the polysynth engine.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	osc, ok := variantNames[*variant]
	if !ok {
		log.Fatalf("synthplay: unknown oscillator variant %q", *variant)
	}

	s, err := synth.NewSynth(synth.Config{
		Polyphony: *polyphony,
		UseDelay:  *useDelay,
	})
	if err != nil {
		log.Fatalf("synthplay: failed to initialise synth: %v", err)
	}
	defer s.Close()

	// The global envelope-modulation LFO defaults to a constant 1.0, which
	// would freeze every voice in Decay forever; drive it low so notes
	// actually reach Sustain, with a slow filter sweep for some movement.
	s.LFOEnvMod().InitOsc(synth.OscSinDC, 0, 0, 0, 0)
	s.LFOFilter().InitOsc(synth.OscSin, 0.2, 0, 0.1, 0)

	player, err := newOtoSink(s)
	if err != nil {
		log.Fatalf("synthplay: failed to open audio sink: %v", err)
	}
	defer player.Close()
	player.Start()

	arp := newArpeggiator(s, osc, float32(*baseFreq), float32(*cutoff), float32(*resonance), float32(*damping))
	ticker := time.NewTicker(180 * time.Millisecond)
	defer ticker.Stop()

	deadline := time.After(time.Duration(*seconds * float64(time.Second)))
	for {
		select {
		case <-ticker.C:
			arp.step()
		case <-deadline:
			return
		}
	}
}

// arpeggiator is the minimal sequencer collaborator the library keeps out
// of its own scope: it decides when to trigger notes, stepping through a
// fixed scale.
type arpeggiator struct {
	s         *synth.Synth
	osc       synth.OscVariant
	baseFreq  float32
	cutoff    float32
	resonance float32
	damping   float32
	step_     int
}

func newArpeggiator(s *synth.Synth, osc synth.OscVariant, baseFreq, cutoff, resonance, damping float32) *arpeggiator {
	return &arpeggiator{s: s, osc: osc, baseFreq: baseFreq, cutoff: cutoff, resonance: resonance, damping: damping}
}

var arpRatios = []float32{1.0, 1.25, 1.5, 2.0, 1.5, 1.25}

func (a *arpeggiator) step() {
	freq := a.baseFreq * arpRatios[a.step_%len(arpRatios)]
	a.step_++

	v := a.s.NewVoice()
	v.Osc[0].InitOsc(a.osc, 0.2, 0, freq, 0)
	v.Osc[1].InitOsc(a.osc, 0.15, 0, freq*1.003, 0) // slight detune for thickness
	v.LFOPitch.InitOsc(synth.OscSin, 0, 0, 5.0, 0)
	v.LFOMorph.InitOsc(synth.OscSin, 0, 0, 0.3, 0)
	v.Filter[0].InitFilter(synth.FilterLP, a.cutoff, a.resonance, a.damping)
	v.Filter[1].InitFilter(synth.FilterLP, a.cutoff, a.resonance, a.damping)
	v.NoteOn(0.05, 0.0008, 0.01, 1.0, 0.7, 0)
}

// otoSink adapts a *synth.Synth to oto's pull-based Reader interface.
type otoSink struct {
	ctx    *oto.Context
	player *oto.Player
	s      *synth.Synth
	buf    []int16
}

func newOtoSink(s *synth.Synth) (*otoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   synth.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(synth.AudioBufferSize/4) * time.Second / synth.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	sink := &otoSink{ctx: ctx, s: s, buf: make([]int16, 1024)}
	sink.player = ctx.NewPlayer(sink)
	return sink, nil
}

// Read implements io.Reader for oto.Player: it renders exactly enough
// frames of the synth engine to fill p, matching a driver-pulls-slices
// contract.
func (o *otoSink) Read(p []byte) (int, error) {
	frames := len(p) / 4 // 2 channels * 2 bytes/sample
	if cap(o.buf) < frames*2 {
		o.buf = make([]int16, frames*2)
	}
	samples := o.buf[:frames*2]
	if err := o.s.RenderSlice(samples); err != nil {
		return 0, err
	}

	for i, v := range samples {
		p[i*2] = byte(v)
		p[i*2+1] = byte(v >> 8)
	}
	return frames * 4, nil
}

func (o *otoSink) Start() { o.player.Play() }

func (o *otoSink) Close() error {
	return o.player.Close()
}
