// oscillator.go - phase-accumulating waveform generator

package synth

import "math"

// OscVariant tags which waveform an Oscillator produces. A tagged enum
// dispatched through a switch in Tick, rather than a function pointer per
// oscillator, keeps the hot loop free of indirect calls.
type OscVariant int

const (
	OscSin OscVariant = iota
	OscSinDC
	OscSin2
	OscRect
	OscRectPhase
	OscRectDC
	OscSaw
	OscTri
	OscNoise
	OscWtableSimple
	OscWtableMorph
	OscNop
)

// Oscillator is a phase-accumulating waveform generator with optional
// modulation inputs and optional wavetable lookup/morph.
//
// Phase is always kept wrapped into [0, 2pi). Frequency is stored already
// scaled to radians/sample (freqToRad). Wavetable references are
// non-owning: Oscillator never allocates or copies table data.
type Oscillator struct {
	Variant  OscVariant
	phase    float32
	freq     float32 // radians/sample
	Amp      float32
	DCOffset float32

	wtable1 *Wavetable
	wtable2 *Wavetable

	rand *Rand // only consulted by OscNoise; nil-safe (falls back to 0)
}

// InitOsc (re)initialises an oscillator for a new note. Reinitialised at
// every note-on, never destroyed independently of its owning voice.
func (o *Oscillator) InitOsc(variant OscVariant, amp, phase, freqHz, dc float32) {
	o.Variant = variant
	o.Amp = amp
	o.phase = wrapPhase(phase)
	o.freq = freqToRad(freqHz)
	o.DCOffset = dc
	o.wtable1 = nil
	o.wtable2 = nil
}

// SetFreqHz updates the oscillator's frequency without touching phase,
// amplitude or variant — used for pitch LFO modulation and per-note retune.
func (o *Oscillator) SetFreqHz(freqHz float32) {
	o.freq = freqToRad(freqHz)
}

// SetWavetables assigns non-owning wavetable references for the
// wtable_simple and wtable_morph variants. Tables may be swapped per-voice
// between note-ons.
func (o *Oscillator) SetWavetables(t1, t2 *Wavetable) {
	o.wtable1 = t1
	o.wtable2 = t2
}

// SetRand attaches the synth-owned PRNG consulted by the noise variant.
func (o *Oscillator) SetRand(r *Rand) {
	o.rand = r
}

// Tick produces one sample for the selected variant from the current
// phase, scaled by Amp and offset by DCOffset, then advances phase by freq
// radians/sample and wraps it. lfo1 and lfo2 are additive phase
// modulations sampled at call time.
func (o *Oscillator) Tick(lfo1, lfo2 float32) float32 {
	p := wrapPhase(o.phase + lfo1)

	var out float32
	switch o.Variant {
	case OscSin:
		out = float32(math.Sin(float64(p))) * o.Amp
	case OscSinDC:
		out = float32(math.Sin(float64(p)))*o.Amp + o.DCOffset
	case OscSin2:
		s := float32(math.Sin(float64(p)))
		out = s * s * o.Amp
	case OscRect:
		out = stepf(float32(math.Sin(float64(p))), 0, -o.Amp, o.Amp)
	case OscRectPhase:
		w := wrapPhase(o.phase)
		out = stepf(w, pi, o.Amp, -o.Amp)
	case OscRectDC:
		w := wrapPhase(o.phase)
		out = stepf(w, pi, o.Amp, -o.Amp) + o.DCOffset
	case OscSaw:
		out = (p/pi - 1) * o.Amp
	case OscTri:
		x := p / tau
		out = (1 - 4*float32(math.Abs(float64(x-0.5)))) * o.Amp
	case OscNoise:
		if o.rand != nil {
			out = o.rand.Uniform(o.Amp)
		}
	case OscWtableSimple:
		if o.wtable1 != nil {
			out = o.wtable1[wavetableIndex(p)] * o.Amp
		}
	case OscWtableMorph:
		if o.wtable1 != nil && o.wtable2 != nil {
			idx := wavetableIndex(p)
			t := clampf((lfo2+1)/2, 0, 1)
			out = mixf(o.wtable1[idx], o.wtable2[idx], t) * o.Amp
		}
	case OscNop:
		out = 0
	default:
		panic("unhandled oscillator variant")
	}

	o.phase = wrapPhase(o.phase + o.freq)
	return out
}

// Phase returns the current wrapped phase, mainly for tests.
func (o *Oscillator) Phase() float32 { return o.phase }
