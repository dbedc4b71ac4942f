package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Build Adalight-protocol serial frames from a pixel payload.
 *
 * Description:	Adalight frames are:
 *
 *			'A' 'd' 'a'  hi  lo  checksum  <payload>
 *
 *		where hi/lo are the big-endian count of LEDs minus one,
 *		and checksum is hi ^ lo ^ 0x55.  The payload is appended
 *		verbatim -- framing never pads or truncates it beyond what
 *		the caller already sliced.
 *
 *------------------------------------------------------------------*/

// AdalightFrame builds a complete Adalight frame for a contiguous pixel
// payload. stride is the number of bytes per pixel (3 for RGB family
// formats, 4 for the widened RGBW/GRBW formats) and is used only to
// derive the LED count from len(payload); the payload itself is copied
// through unchanged.
func AdalightFrame(payload []byte, stride int) []byte {
	var n = pixelCount(payload, stride)
	var countMinusOne = n - 1
	var hi = byte((countMinusOne >> 8) & 0xFF)
	var lo = byte(countMinusOne & 0xFF)

	var frame = make([]byte, 0, 6+len(payload))
	frame = append(frame, 0x41, 0x64, 0x61) // "Ada"
	frame = append(frame, hi, lo, hi^lo^0x55)
	frame = append(frame, payload...)

	return frame
}

// pixelCount derives the number of whole pixels represented by payload
// given stride bytes/pixel. A non-exact-multiple tail is ignored; the
// dispatcher never hands codecs a payload with a partial trailing pixel
// in normal operation, but this keeps the count well-defined regardless.
func pixelCount(payload []byte, stride int) int {
	if stride <= 0 {
		return 0
	}

	return len(payload) / stride
}
