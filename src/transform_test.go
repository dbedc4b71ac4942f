package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_TransformPixels_identity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n = rapid.IntRange(0, 256).Draw(t, "n")
		var payload = rapid.SliceOfN(rapid.Byte(), n*3, n*3).Draw(t, "payload")

		assert.Equal(t, payload, TransformPixels(payload, FormatRGB))
	})
}

func Test_TransformPixels_grbSwapsChannels01(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n = rapid.IntRange(1, 256).Draw(t, "n")
		var payload = rapid.SliceOfN(rapid.Byte(), n*3, n*3).Draw(t, "payload")

		var out = TransformPixels(payload, FormatGRB)

		require.Equal(t, len(payload), len(out))

		for i := 0; i < n; i++ {
			assert.Equal(t, payload[i*3+0], out[i*3+1], "red channel")
			assert.Equal(t, payload[i*3+1], out[i*3+0], "green channel")
			assert.Equal(t, payload[i*3+2], out[i*3+2], "blue channel untouched")
		}
	})
}

func Test_TransformPixels_rgbwDerivesWhiteChannel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n = rapid.IntRange(1, 256).Draw(t, "n")
		var payload = rapid.SliceOfN(rapid.Byte(), n*3, n*3).Draw(t, "payload")

		var out = TransformPixels(payload, FormatRGBW)

		require.Equal(t, n*4, len(out))

		for i := 0; i < n; i++ {
			var r, g, b = payload[i*3], payload[i*3+1], payload[i*3+2]
			var w = out[i*4+3]

			assert.Equal(t, r, out[i*4+0]+w)
			assert.Equal(t, g, out[i*4+1]+w)
			assert.Equal(t, b, out[i*4+2]+w)
			assert.Equal(t, minByte(r, minByte(g, b)), w)
		}
	})
}

func Test_TransformPixels_literalScenario3(t *testing.T) {
	// spec scenario 3: RGBW transform of (255,128,64) yields (191,64,0,64).
	var out = TransformPixels([]byte{255, 128, 64}, FormatRGBW)

	assert.Equal(t, []byte{191, 64, 0, 64}, out)
}

func Test_TransformPixels_unknownFormatPassesThrough(t *testing.T) {
	var payload = []byte{1, 2, 3, 4, 5, 6}

	assert.Equal(t, payload, TransformPixels(payload, PixelFormat("bogus")))
}

func Test_PixelFormat_Stride(t *testing.T) {
	assert.Equal(t, 3, FormatRGB.Stride())
	assert.Equal(t, 3, FormatGRB.Stride())
	assert.Equal(t, 3, FormatBGR.Stride())
	assert.Equal(t, 4, FormatRGBW.Stride())
	assert.Equal(t, 4, FormatGRBW.Stride())
}
