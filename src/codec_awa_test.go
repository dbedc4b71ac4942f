package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_AwaFrame_codecLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var stride = rapid.SampledFrom([]int{3, 4}).Draw(t, "stride")
		var n = rapid.IntRange(1, 512).Draw(t, "n")
		var payload = rapid.SliceOfN(rapid.Byte(), n*stride, n*stride).Draw(t, "payload")

		var frame = AwaFrame(payload, stride)

		require.Equal(t, 6+n*stride+3, len(frame))
		assert.Equal(t, []byte{0x41, 0x77, 0x61}, frame[:3])

		var hi, lo = frame[3], frame[4]
		assert.Equal(t, uint16(n-1), uint16(hi)<<8|uint16(lo))
		assert.Equal(t, hi^lo^0x55, frame[5])
		assert.Equal(t, payload, frame[6:6+len(payload)])

		var f1, f2, fext byte
		for position, b := range payload {
			f1 = byte((int(f1) + int(b)) % 255)
			f2 = byte((int(f2) + int(f1)) % 255)
			fext = byte((int(fext) + int(b^byte(position&0xFF))) % 255)
		}
		if fext == 0x41 {
			fext = 0xAA
		}

		var trailer = frame[len(frame)-3:]
		assert.Equal(t, []byte{f1, f2, fext}, trailer)
		assert.NotEqual(t, byte(0x41), trailer[2])
	})
}

func Test_AwaFrame_literalScenario2(t *testing.T) {
	// spec scenario 2: 2 LEDs, GRB, transformed payload 00 FF 00 00 FF 00.
	var payload = []byte{0x00, 0xFF, 0x00, 0x00, 0xFF, 0x00}

	var frame = AwaFrame(payload, 3)

	assert.Equal(t, []byte{0x41, 0x77, 0x61, 0x00, 0x01, 0x54}, frame[:6])
	assert.Equal(t, payload, frame[6:12])

	var trailer = frame[12:]
	assert.Len(t, trailer, 3)
	assert.NotEqual(t, byte(0x41), trailer[2])
}
