// doublebuffer.go - the interrupt/foreground boundary flag

package synth

import "sync/atomic"

// BufferState names which half of a double-buffered PCM output a driver
// context has finished transmitting.
type BufferState int32

const (
	BufferNone BufferState = iota
	BufferHalf
	BufferFull
)

// DoubleBuffer models the shared PCM output buffer whose ownership
// alternates by halves between a driver context (hardware interrupt) and a
// control context (foreground task).
//
// The flag is the single machine word permitted to cross that boundary:
// written atomically by the driver when a half transfers, read and
// cleared atomically by the control context once it has rendered into
// the freed half. No other shared mutable state belongs on this boundary.
type DoubleBuffer struct {
	state atomic.Int32
}

// SignalHalf marks the first half as transferred. Called from the driver
// context.
func (b *DoubleBuffer) SignalHalf() { b.state.Store(int32(BufferHalf)) }

// SignalFull marks the second half as transferred. Called from the driver
// context.
func (b *DoubleBuffer) SignalFull() { b.state.Store(int32(BufferFull)) }

// TakeReady atomically reads the current state and, if it is Half or Full,
// clears it back to None, returning the state that was observed. Called
// from the control context between render slices.
func (b *DoubleBuffer) TakeReady() BufferState {
	s := BufferState(b.state.Swap(int32(BufferNone)))
	return s
}
