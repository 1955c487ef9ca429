package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSynth_SilentInit checks that a fresh synth with no notes triggered
// renders pure silence.
func TestSynth_SilentInit(t *testing.T) {
	s, err := NewSynth(Config{})
	require.NoError(t, err)
	defer s.Close()

	out := make([]int16, 128)
	require.NoError(t, s.RenderSlice(out))
	for i, v := range out {
		assert.Equal(t, int16(0), v, "sample %d should be silent", i)
	}
}

// TestSynth_SineTone checks one voice, osc variant sin, 440Hz, amp 0.5,
// flat envelope at gain 1.0, filters bypassed, against the closed-form
// sine it should produce.
func TestSynth_SineTone(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 1})
	require.NoError(t, err)
	defer s.Close()

	v := s.NewVoice()
	v.Osc[0].InitOsc(OscSin, 0.5, 0, 440, 0)
	v.Filter[0].Bypass = true
	v.Filter[1].Bypass = true
	v.Env.Phase = EnvSustain
	v.Env.Gain = 1.0
	v.Env.AttackGain = 1.0

	out := make([]int16, 200)
	require.NoError(t, s.RenderSlice(out))

	for k := 0; k < 100; k++ {
		want := int16(math.Round(0.5 * math.Sin(2*math.Pi*440*float64(k)/SampleRate) * 32767))
		got := out[k*2]
		assert.InDelta(t, want, got, 1, "sample %d", k)
		assert.Equal(t, out[k*2], out[k*2+1], "mono voice should duplicate L/R")
	}
}

// TestSynth_VoiceStealing checks that once every voice is active, the
// next NewVoice call steals the round-robin-chosen voice.
func TestSynth_VoiceStealing(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 2})
	require.NoError(t, err)
	defer s.Close()

	first := s.NewVoice()
	first.NoteOn(0.01, 0.01, 0.01, 1.0, 0.5, 0)

	second := s.NewVoice()
	second.NoteOn(0.01, 0.01, 0.01, 1.0, 0.5, 0)

	third := s.NewVoice()

	assert.Same(t, first, third, "third call with no free voices must steal the first voice")
}

// TestSynth_Saturation checks that 6 voices summing to well past +1.0
// clamp to exactly +32767 and never wrap to a negative sample.
func TestSynth_Saturation(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 6})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 6; i++ {
		v := s.NewVoice()
		v.Osc[0].InitOsc(OscSinDC, 0, 0, 0, 1.0) // amp 0, dc +1.0: a flat +1.0 signal
		v.Filter[0].Bypass = true
		v.Filter[1].Bypass = true
		v.Env.Phase = EnvSustain
		v.Env.Gain = 1.0
		v.Env.AttackGain = 1.0
	}

	out := make([]int16, 2)
	require.NoError(t, s.RenderSlice(out))
	assert.Equal(t, int16(32767), out[0])
	assert.NotEqual(t, int16(-32767), out[0])
}

// TestSynth_Saturation_Negative mirrors TestSynth_Saturation on the
// negative side: the clamp must land on exactly -32768, never -32767.
func TestSynth_Saturation_Negative(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 6})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 6; i++ {
		v := s.NewVoice()
		v.Osc[0].InitOsc(OscSinDC, 0, 0, 0, -1.0) // amp 0, dc -1.0: a flat -1.0 signal
		v.Filter[0].Bypass = true
		v.Filter[1].Bypass = true
		v.Env.Phase = EnvSustain
		v.Env.Gain = 1.0
		v.Env.AttackGain = 1.0
	}

	out := make([]int16, 2)
	require.NoError(t, s.RenderSlice(out))
	assert.Equal(t, int16(-32768), out[0])
	assert.NotEqual(t, int16(-32767), out[0])
}

// TestSynth_RenderSlice_VoiceReachesSustain drives a voice through
// RenderSlice itself (not by poking Env.Phase directly) and checks it
// actually reaches Sustain. The global envelope-modulation LFO defaults to
// a constant 1.0, which would leave every voice frozen in Decay forever;
// a controller unfreezes it through the exported LFOEnvMod accessor.
func TestSynth_RenderSlice_VoiceReachesSustain(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 1})
	require.NoError(t, err)
	defer s.Close()

	s.LFOEnvMod().InitOsc(OscSinDC, 0, 0, 0, 0)

	v := s.NewVoice()
	v.Osc[0].InitOsc(OscSin, 0.3, 0, 440, 0)
	v.Filter[0].Bypass = true
	v.Filter[1].Bypass = true
	v.NoteOn(1.0, 0.05, 0.01, 1.0, 0.5, 0)

	out := make([]int16, 2*2000)
	require.NoError(t, s.RenderSlice(out))

	assert.Equal(t, EnvSustain, v.Env.Phase, "voice should reach Sustain once decay is unfrozen through RenderSlice")
}

func TestSynth_NextVoiceAdvancesByOneModN(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 4})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 10; i++ {
		before := s.nextVoice
		s.NewVoice()
		assert.Equal(t, (before+1)%4, s.nextVoice)
	}
}

func TestSynth_RenderSlice_RejectsOddLength(t *testing.T) {
	s, err := NewSynth(Config{})
	require.NoError(t, err)
	defer s.Close()

	err = s.RenderSlice(make([]int16, 3))
	assert.Error(t, err)
}

func TestSynth_DelayFeedback(t *testing.T) {
	s, err := NewSynth(Config{Polyphony: 1, UseDelay: true, DelayLength: 8, DelayDecay: 2})
	require.NoError(t, err)
	defer s.Close()

	v := s.NewVoice()
	v.Osc[0].InitOsc(OscSinDC, 0, 0, 0, 1.0)
	v.Filter[0].Bypass = true
	v.Filter[1].Bypass = true
	v.Env.Phase = EnvSustain
	v.Env.Gain = 1.0 / 32767 // so post *32767 scaling lands near 1.0 before delay

	out := make([]int16, 2*8*4)
	require.NoError(t, s.RenderSlice(out))
	// Just assert it never panics and stays in range; exact echo shape is
	// covered directly in delay_test.go against DelayBus.
	for _, v := range out {
		assert.LessOrEqual(t, v, int16(32767))
		assert.GreaterOrEqual(t, v, int16(-32768))
	}
}
