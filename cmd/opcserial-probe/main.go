package main

/*------------------------------------------------------------------
 *
 * Purpose:	Offline codec probe: frame a synthetic solid-color
 *		payload through the Adalight or AWA codec and print the
 *		resulting bytes, for manually checking a codec/pixel
 *		format combination before wiring up real hardware.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/hex"
	"fmt"
	"os"

	bridge "github.com/opcserial/bridge/src"
	"github.com/spf13/pflag"
)

func main() {
	var protocol = pflag.StringP("protocol", "p", "adalight", "Wire protocol: adalight or awa.")
	var format = pflag.StringP("format", "f", "GRB", "Pixel format: RGB, GRB, BGR, RGBW, or GRBW.")
	var ledCount = pflag.IntP("leds", "n", 3, "Number of LEDs to synthesize.")
	var r = pflag.Int("r", 255, "Red value (0-255) of the synthetic solid color.")
	var g = pflag.Int("g", 0, "Green value (0-255) of the synthetic solid color.")
	var b = pflag.Int("b", 0, "Blue value (0-255) of the synthetic solid color.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "opcserial-probe - frame a synthetic payload and print the wire bytes.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: opcserial-probe [options]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	var pixelFormat = bridge.PixelFormat(*format)

	var rgb = make([]byte, *ledCount*3)
	for i := 0; i < *ledCount; i++ {
		rgb[i*3] = byte(*r)
		rgb[i*3+1] = byte(*g)
		rgb[i*3+2] = byte(*b)
	}

	var transformed = bridge.TransformPixels(rgb, pixelFormat)
	var stride = pixelFormat.Stride()

	var frame []byte
	switch *protocol {
	case "awa":
		frame = bridge.AwaFrame(transformed, stride)
	case "adalight":
		frame = bridge.AdalightFrame(transformed, stride)
	default:
		fmt.Fprintf(os.Stderr, "opcserial-probe: unknown protocol %q\n", *protocol)
		os.Exit(1)
	}

	fmt.Printf("%d pixels, %s, %s: %d bytes\n%s\n", *ledCount, *protocol, pixelFormat, len(frame), hex.EncodeToString(frame))
}
