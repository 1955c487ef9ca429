// delay.go - circular-buffer feedback delay line shared by all voices

package synth

import "fmt"

// DelayBus is a ring buffer of int16 stereo frames shared by every voice,
// with shift-based feedback attenuation instead of a multiply.
//
// readPos and writePos both advance by one frame per Write/Read call and
// start at the same slot; since the buffer holds exactly Len() frames,
// "read leads write by Len() frames modulo Len()" collapses to the two
// pointers always pointing at the same slot at the start of a tick, which
// is what makes Write(s) followed by Len() ticks worth of Read() calls
// return s on the Len()-th read.
//
// Its backing array is allocated once at construction and is the one
// resource this module releases explicitly at synth teardown (Close).
type DelayBus struct {
	buf      []int16 // interleaved L/R, frames stored contiguously
	length   int     // frame count
	readPos  int
	writePos int
	inL      int16
	inR      int16
	decay    uint8
}

// NewDelayBus allocates a length-L stereo delay line. length<=0 is the
// single reportable error condition in this package: it leaves no
// partially constructed bus reachable by the caller.
func NewDelayBus(length int, decay uint8) (*DelayBus, error) {
	if length <= 0 {
		return nil, fmt.Errorf("synth: delay bus length must be positive, got %d", length)
	}
	return &DelayBus{
		buf:    make([]int16, length*2),
		length: length,
		decay:  decay,
	}, nil
}

// Len reports the delay length in stereo frames.
func (d *DelayBus) Len() int {
	return d.length
}

// Write stores a stereo sample pair at writePos and advances it modulo the
// buffer length.
func (d *DelayBus) Write(l, r int16) {
	i := d.writePos * 2
	d.buf[i] = l
	d.buf[i+1] = r
	d.writePos = (d.writePos + 1) % d.length
}

// Read returns the stereo sample pair at readPos and advances it modulo
// the buffer length.
func (d *DelayBus) Read() (int16, int16) {
	i := d.readPos * 2
	l, r := d.buf[i], d.buf[i+1]
	d.readPos = (d.readPos + 1) % d.length
	return l, r
}

// Tick feeds one input stereo pair through the bus for one sample and
// returns the wet output: input + (previous_read >> decay). The
// right-shift is a fixed-point attenuation by 1/2^decay that guarantees
// stability without a multiply. Read happens before Write each tick, so
// readPos and writePos stay locked exactly Len() frames apart.
func (d *DelayBus) Tick(inL, inR int16) (int16, int16) {
	prevL, prevR := d.Read()
	wetL := clamp16(int32(inL) + (int32(prevL) >> d.decay))
	wetR := clamp16(int32(inR) + (int32(prevR) >> d.decay))
	d.Write(wetL, wetR)
	d.inL, d.inR = wetL, wetR
	return wetL, wetR
}

// Close releases the bus's backing storage. The bus must not be used
// afterward.
func (d *DelayBus) Close() {
	d.buf = nil
}
