// filter.go - Chamberlin state-variable IIR filter

package synth

import "math"

// FilterType selects which simultaneously-computed SVF tap is returned.
type FilterType int

const (
	FilterLP FilterType = iota
	FilterHP
	FilterBP
	FilterBR
)

const (
	minCutoffCoeff = 0.0
	maxCutoffCoeff = 1.9 // keeps F < 2, the SVF's hard stability ceiling
	minDamping     = 0.05
	maxDamping     = 0.95
	maxResonance   = 0.95
)

// IIRFilter is a two-pole Chamberlin state-variable filter producing
// LP/HP/BP/BR taps simultaneously each sample. Two instances are cascaded
// per voice.
//
// Src and Lfo are non-owning pointers to per-sample modulation inputs;
// either may be nil. Src is summed into the input signal, Lfo into the
// cutoff coefficient.
type IIRFilter struct {
	Type FilterType

	// Bypass passes input through unchanged, touching no state. Used by
	// voices that want two oscillators and an envelope without any
	// filtering stage.
	Bypass bool

	f [4]float32 // f[0]=lp, f[1]=hp, f[2]=bp, f[3]=br

	cutoffHz  float32
	resonance float32 // Q: how much bp feeds back into hp
	damping   float32 // independent loss term bleeding off the hp integrator
	freqCoeff float32 // derived F = 2*sin(pi*cutoff/SR)

	Src *float32 // input-source modulation (e.g. another channel's output)
	Lfo *float32 // LFO-source modulation
}

// InitFilter sets the filter type and initial coefficients.
func (iir *IIRFilter) InitFilter(typ FilterType, cutoffHz, resonance, damping float32) {
	iir.Type = typ
	iir.SetCoeff(cutoffHz, resonance, damping)
}

// SetCoeff recomputes the internal frequency coefficient
// F = 2*sin(pi*cutoff/SR), clamping resonance to [0, 0.95] and damping to
// [0.05, 0.95]. Calling this twice with identical inputs yields an
// identical freqCoeff.
func (iir *IIRFilter) SetCoeff(cutoffHz, resonance, damping float32) {
	iir.cutoffHz = cutoffHz
	iir.resonance = clampf(resonance, 0, maxResonance)
	iir.damping = clampf(damping, minDamping, maxDamping)
	f := 2 * float32(math.Sin(float64(pi)*float64(cutoffHz)/SampleRate))
	iir.freqCoeff = clampf(f, minCutoffCoeff, maxCutoffCoeff)
}

// Process runs one sample through the filter and returns the tap selected
// by Type. env is an additional per-sample modulation signal combined with
// any Lfo pointer already attached.
func (iir *IIRFilter) Process(input, env float32) float32 {
	if iir.Bypass {
		return input
	}

	mod := env
	if iir.Lfo != nil {
		mod += *iir.Lfo
	}

	F := clampf(iir.freqCoeff+mod, minCutoffCoeff, maxCutoffCoeff)
	q := iir.resonance
	d := iir.damping

	in := input
	if iir.Src != nil {
		in += *iir.Src
	}

	lp := iir.f[0] + F*iir.f[2]
	hp := (in - lp) - q*iir.f[2] - d*iir.f[1]
	bp := iir.f[2] + F*hp
	br := hp + lp

	lp = clampf(lp, -1, 1)
	hp = clampf(hp, -1, 1)
	bp = clampf(bp, -1, 1)
	br = clampf(br, -1, 1)

	iir.f[0], iir.f[1], iir.f[2], iir.f[3] = lp, hp, bp, br

	switch iir.Type {
	case FilterLP:
		return lp
	case FilterHP:
		return hp
	case FilterBP:
		return bp
	case FilterBR:
		return br
	default:
		panic("unhandled filter type")
	}
}

// Reset clears internal filter state (used on note-on re-initialisation).
func (iir *IIRFilter) Reset() {
	iir.f = [4]float32{}
}
