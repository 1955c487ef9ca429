// wavetable.go - static one-period waveform tables

package synth

import "math"

// Wavetable is a read-only, non-owning reference to one period of a
// waveform sampled uniformly over [0, 2pi). Oscillators hold *Wavetable
// pointers, never copies, and never mutate through them.
type Wavetable [WaveTableLength]float32

// Static tables, generated once at package load time.
var (
	WaveSine        Wavetable
	WaveHarmonics1  Wavetable
	WaveHarmonics2  Wavetable
	WaveHarmonics3  Wavetable
	WaveNoise       Wavetable
	WaveMorphA      Wavetable
	WaveMorphB      Wavetable
)

func init() {
	tableRand := NewRand(0xC0FFEE)
	for i := 0; i < WaveTableLength; i++ {
		phase := float64(i) / WaveTableLength * float64(tau)

		WaveSine[i] = float32(math.Sin(phase))

		// Three progressively brighter harmonic mixtures: fundamental plus
		// decaying odd/even partials.
		WaveHarmonics1[i] = float32(math.Sin(phase) + 0.5*math.Sin(2*phase))
		WaveHarmonics2[i] = float32(math.Sin(phase) +
			0.5*math.Sin(2*phase) + 0.33*math.Sin(3*phase))
		WaveHarmonics3[i] = float32(math.Sin(phase) +
			0.5*math.Sin(2*phase) + 0.33*math.Sin(3*phase) +
			0.25*math.Sin(4*phase) + 0.2*math.Sin(5*phase))

		WaveNoise[i] = tableRand.Uniform(1.0)

		// Morph source pair: a pure sine and a soft "super-saw"-like blend,
		// meant to be crossfaded by wtable_morph at playback time.
		WaveMorphA[i] = float32(math.Sin(phase))
		saw := float32(phase/pi - 1)
		WaveMorphB[i] = 0.5*saw + 0.5*float32(math.Sin(3*phase))
	}

	normalise(&WaveHarmonics1)
	normalise(&WaveHarmonics2)
	normalise(&WaveHarmonics3)
	normalise(&WaveMorphB)
}

// normalise scales a table so its peak absolute value is 1.0, so harmonic
// mixtures don't exceed unity amplitude before the oscillator's own gain
// is applied.
func normalise(t *Wavetable) {
	var peak float32
	for _, v := range t {
		if a := float32(math.Abs(float64(v))); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	for i := range t {
		t[i] /= peak
	}
}

// wavetableIndex maps a wrapped phase to a nearest-index lookup slot.
func wavetableIndex(phase float32) int {
	i := int(phase * waveTableScale)
	if i < 0 {
		i = 0
	} else if i >= WaveTableLength {
		i = WaveTableLength - 1
	}
	return i
}
