// constants.go - build-time configuration and shared math helpers

package synth

import "math"

// Build-time configuration constants.
const (
	// SampleRate is the single fixed sample rate this build targets.
	SampleRate = 44100
	// Polyphony is the default voice pool size.
	Polyphony = 6
	// AudioBufferSize is the default double-buffer size in bytes
	// (256 bytes -> 64 stereo int16 samples).
	AudioBufferSize = 256
	// WaveTableLength is the fixed length of every static wavetable.
	WaveTableLength = 1024
	// DelayLength is the default feedback delay length: 0.375s at SampleRate.
	DelayLength = SampleRate * 3 / 8
)

const (
	tau           = 6.283185307
	pi            = 3.14159265
	waveTableScale = WaveTableLength / tau
)

// freqToRad converts a frequency in Hz to radians-per-sample at SampleRate.
func freqToRad(freqHz float32) float32 {
	return tau * freqHz / SampleRate
}

// wrapPhase wraps phase into [0, 2pi) using true modulo semantics, so it
// terminates in one step for a phase driven negative by LFO modulation
// rather than needing repeated subtraction.
func wrapPhase(phase float32) float32 {
	w := float32(math.Mod(float64(phase), tau))
	if w < 0 {
		w += tau
	}
	return w
}

// clampf clamps x into [min, max].
func clampf(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// clamp16 saturates a wider integer sample into the int16 range, producing
// exactly -32768 at the negative extreme rather than -32767.
func clamp16(x int32) int16 {
	if x < -32768 {
		return -32768
	}
	if x > 32767 {
		return 32767
	}
	return int16(x)
}

// maddf computes a*b+c.
func maddf(a, b, c float32) float32 {
	return a*b + c
}

// mixf linearly interpolates between a and b at t in [0, 1].
func mixf(a, b, t float32) float32 {
	return maddf(b-a, t, a)
}

// stepf is a branchless step function: y1 below edge, y2 at or above it.
func stepf(x, edge, y1, y2 float32) float32 {
	if x < edge {
		return y1
	}
	return y2
}
