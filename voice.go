// voice.go - one note's worth of DSP state

package synth

// Voice owns two oscillators, a pitch LFO, a morph LFO, an envelope, two
// cascaded filters, flags, and an age counter (samples since last note-on).
//
// A voice is "active" iff its envelope phase is not Idle; exactly one note
// plays on a given voice at a time. Voices are created once at synth init
// and reused forever — never destroyed independently of the Synth.
type Voice struct {
	Osc      [2]Oscillator
	LFOPitch Oscillator
	LFOMorph Oscillator
	Env      Envelope
	Filter   [2]IIRFilter

	Flags uint32
	Age   uint32
}

// NoteOn re-initialises this voice for a new pitch. The caller has already
// configured oscillator variants, wavetables, and filter coefficients on
// the voice's components; NoteOn commits the envelope to Attack and
// resets age.
func (v *Voice) NoteOn(attackRate, decayRate, releaseRate, attackGain, sustainGain float32, flags uint32) {
	v.Env.InitEnvelope(attackRate, decayRate, releaseRate, attackGain, sustainGain)
	v.Flags = flags
	v.Age = 0
}

// Release forces this voice's envelope into Release, the documented way
// to end a note.
func (v *Voice) Release() {
	v.Env.Release()
}

// Active reports whether this voice is currently producing sound.
func (v *Voice) Active() bool {
	return v.Env.Active()
}

// Reset returns the voice to an Idle, silent state: zeroed oscillators and
// envelope, and cleared filter state (filter type, bypass and coefficients
// are kept), ready for reuse by NewVoice.
func (v *Voice) Reset(flags uint32) {
	v.Osc[0] = Oscillator{}
	v.Osc[1] = Oscillator{}
	v.LFOPitch = Oscillator{}
	v.LFOMorph = Oscillator{}
	v.Env = Envelope{}
	v.Filter[0].Reset()
	v.Filter[1].Reset()
	v.Flags = flags
	v.Age = 0
}

// render produces this voice's contribution to the mix for one sample.
// Idle voices short-circuit to 0 without touching their oscillators.
func (v *Voice) render(globalLFOFilter, globalLFOEnv float32) float32 {
	if !v.Active() {
		return 0
	}

	lfoP := v.LFOPitch.Tick(0, 0)
	lfoM := v.LFOMorph.Tick(0, 0)

	s := v.Osc[0].Tick(lfoP, lfoM) + v.Osc[1].Tick(lfoP, lfoM)

	s = v.Filter[0].Process(s, globalLFOFilter)
	s = v.Filter[1].Process(s, globalLFOFilter)

	gain := v.Env.Update(globalLFOEnv)
	v.Age++

	return s * gain
}
