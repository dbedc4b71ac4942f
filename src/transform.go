package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Reorder/widen RGB triplets into the wire channel order a
 *		given pixel_format expects.
 *
 * Description:	Input is always RGB triplets (the OPC convention).
 *		RGB, GRB and BGR are same-size reorderings; GRB and BGR
 *		write into a new buffer and leave the input untouched.
 *		RGBW and GRBW widen each triplet by deriving a white
 *		channel as min(r,g,b) and subtracting it from each
 *		colored channel. Overflow is impossible since w never
 *		exceeds any of r, g, b.
 *
 *------------------------------------------------------------------*/

// PixelFormat is the on-wire channel order for an output.
type PixelFormat string

const (
	FormatRGB  PixelFormat = "RGB"
	FormatGRB  PixelFormat = "GRB"
	FormatBGR  PixelFormat = "BGR"
	FormatRGBW PixelFormat = "RGBW"
	FormatGRBW PixelFormat = "GRBW"
)

// Stride returns the bytes-per-pixel for format. Unknown formats pass
// through as RGB (stride 3), matching TransformPixels' passthrough
// behavior for unrecognized formats.
func (f PixelFormat) Stride() int {
	switch f {
	case FormatRGBW, FormatGRBW:
		return 4
	default:
		return 3
	}
}

// TransformPixels converts a buffer of RGB triplets into the wire order
// for format. RGB is returned unchanged (same backing semantics as the
// other same-stride formats: callers must not assume aliasing either
// way). RGBW/GRBW allocate a wider output buffer; a partial trailing
// triplet, if present, is dropped rather than read out of bounds.
func TransformPixels(rgb []byte, format PixelFormat) []byte {
	switch format {
	case FormatGRB:
		return swapInPlace(rgb, 0, 1)
	case FormatBGR:
		return swapInPlace(rgb, 0, 2)
	case FormatRGBW:
		return widenToWhite(rgb, false)
	case FormatGRBW:
		return widenToWhite(rgb, true)
	case FormatRGB:
		return rgb
	default:
		// Unknown format: pass through unchanged, per spec §4.3.
		return rgb
	}
}

func swapInPlace(rgb []byte, a, b int) []byte {
	var n = len(rgb) / 3
	var out = make([]byte, n*3)
	copy(out, rgb[:n*3])

	for i := 0; i < n; i++ {
		var base = i * 3
		out[base+a], out[base+b] = out[base+b], out[base+a]
	}

	return out
}

func widenToWhite(rgb []byte, greenFirst bool) []byte {
	var n = len(rgb) / 3
	var out = make([]byte, n*4)

	for i := 0; i < n; i++ {
		var src = i * 3
		var dst = i * 4
		var r, g, b = rgb[src], rgb[src+1], rgb[src+2]
		var w = minByte(r, minByte(g, b))

		if greenFirst {
			out[dst] = g - w
			out[dst+1] = r - w
		} else {
			out[dst] = r - w
			out[dst+1] = g - w
		}
		out[dst+2] = b - w
		out[dst+3] = w
	}

	return out
}

func minByte(a, b byte) byte {
	if a < b {
		return a
	}

	return b
}
