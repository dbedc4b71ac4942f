package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_AdalightFrame_codecLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var stride = rapid.SampledFrom([]int{3, 4}).Draw(t, "stride")
		var n = rapid.IntRange(1, 512).Draw(t, "n")
		var payload = rapid.SliceOfN(rapid.Byte(), n*stride, n*stride).Draw(t, "payload")

		var frame = AdalightFrame(payload, stride)

		require.Equal(t, 6+n*stride, len(frame))
		assert.Equal(t, []byte{0x41, 0x64, 0x61}, frame[:3])

		var hi, lo = frame[3], frame[4]
		var count = uint16(hi)<<8 | uint16(lo)
		assert.Equal(t, uint16(n-1), count)
		assert.Equal(t, hi^lo^0x55, frame[5])
		assert.Equal(t, payload, frame[6:])
	})
}

func Test_AdalightFrame_literalScenario1(t *testing.T) {
	// spec scenario 1: single 1-LED output, GRB, input pixel (255,0,0)
	// transformed to GRB order (0,255,0).
	var payload = []byte{0x00, 0xFF, 0x00}

	var frame = AdalightFrame(payload, 3)

	assert.Equal(t, []byte{0x41, 0x64, 0x61, 0x00, 0x00, 0x55, 0x00, 0xFF, 0x00}, frame)
}

func Test_AdalightFrame_literalScenario5_shortPayload(t *testing.T) {
	// spec scenario 5: 15-byte payload (5 pixels) to a 10-LED output;
	// count field encodes 4 (= 5-1), no padding.
	var payload = make([]byte, 15)
	for i := range payload {
		payload[i] = byte(i)
	}

	var frame = AdalightFrame(payload, 3)

	require.Equal(t, 6+15, len(frame))
	assert.Equal(t, byte(0x00), frame[3])
	assert.Equal(t, byte(0x04), frame[4])
	assert.Equal(t, payload, frame[6:])
}
