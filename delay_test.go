package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDelayBus_RejectsNonPositiveLength(t *testing.T) {
	_, err := NewDelayBus(0, 2)
	require.Error(t, err)

	_, err = NewDelayBus(-1, 2)
	require.Error(t, err)
}

func TestDelayBus_ReadAfterLTicksEqualsWrite(t *testing.T) {
	const L = 16
	bus, err := NewDelayBus(L, 2)
	require.NoError(t, err)

	bus.Write(1234, 1234)
	for i := 0; i < L-1; i++ {
		bus.Write(0, 0)
	}
	l, r := bus.Read()
	assert.Equal(t, int16(1234), l)
	assert.Equal(t, int16(1234), r)
}

// TestDelayBus_FeedbackDecay checks that an impulse of 1024 fed through a
// bus with decay shift 2 (attenuation x1/4) echoes at 1024, 256, 64, 16.
func TestDelayBus_FeedbackDecay(t *testing.T) {
	const L = 8
	bus, err := NewDelayBus(L, 2)
	require.NoError(t, err)

	outputs := make([]int16, 0, 3*L+1)
	l, _ := bus.Tick(1024, 1024)
	outputs = append(outputs, l)
	for i := 0; i < 3*L; i++ {
		l, _ := bus.Tick(0, 0)
		outputs = append(outputs, l)
	}

	assert.Equal(t, int16(1024), outputs[0])
	assert.Equal(t, int16(256), outputs[L])
	assert.Equal(t, int16(64), outputs[2*L])
	assert.Equal(t, int16(16), outputs[3*L])
}
