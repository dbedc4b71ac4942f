package main

/*------------------------------------------------------------------
 *
 * Purpose:	OPC test client: connect to a running opcserial (or any
 *		OPC server) and stream a test pattern over TCP, for
 *		validating ingress/dispatch without serial hardware.
 *
 * Description:	Grounded on original_source/opc-test/test_client.py's
 *		solid/rainbow/chase patterns and frame-rate pacing.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"os"
	"time"

	"github.com/spf13/pflag"
)

func main() {
	var host = pflag.String("host", "localhost", "OPC server host.")
	var port = pflag.Int("port", 7890, "OPC server port.")
	var channel = pflag.IntP("channel", "c", 0, "OPC channel.")
	var leds = pflag.Int("leds", 100, "Number of LEDs.")
	var pattern = pflag.StringP("pattern", "p", "rainbow", "Pattern: solid, rainbow, chase, red, green, blue, white.")
	var duration = pflag.Float64P("duration", "d", 10.0, "Duration in seconds.")
	var fps = pflag.Int("fps", 30, "Frames per second.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "opcserial-send - stream a test pattern to an OPC server over TCP.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: opcserial-send [options]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	var conn, err = net.Dial("tcp", net.JoinHostPort(*host, fmt.Sprint(*port)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "opcserial-send: connecting: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("connected to %s:%d, channel %d, pattern %s, %d LEDs\n", *host, *port, *channel, *pattern, *leds)

	var frameTime = time.Duration(float64(time.Second) / float64(*fps))
	var start = time.Now()
	var frame = 0

	for time.Since(start) < time.Duration(*duration*float64(time.Second)) {
		var frameStart = time.Now()

		var pixels = generatePattern(*pattern, *leds, frame)
		if err := sendOPCFrame(conn, byte(*channel), pixels); err != nil {
			fmt.Fprintf(os.Stderr, "opcserial-send: sending frame: %v\n", err)
			break
		}

		var elapsed = time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}

		frame++
	}

	sendOPCFrame(conn, byte(*channel), make([]byte, *leds*3))

	fmt.Printf("completed %d frames\n", frame)
}

func generatePattern(name string, ledCount, frame int) []byte {
	var pixels = make([]byte, ledCount*3)

	switch name {
	case "solid":
		fillSolid(pixels, 128, 128, 128)
	case "red":
		fillSolid(pixels, 255, 0, 0)
	case "green":
		fillSolid(pixels, 0, 255, 0)
	case "blue":
		fillSolid(pixels, 0, 0, 255)
	case "white":
		fillSolid(pixels, 255, 255, 255)
	case "chase":
		var position = (frame / 2) % ledCount
		for i := 0; i < 10; i++ {
			var idx = (position + i) % ledCount
			pixels[idx*3] = 255
			pixels[idx*3+1] = 255
			pixels[idx*3+2] = 255
		}
	default: // rainbow
		var offset = float64(frame) * 0.01
		for i := 0; i < ledCount; i++ {
			var hue = math.Mod(float64(i)/float64(ledCount)+offset, 1.0)
			var r, g, b = hsvToRGB(hue)
			pixels[i*3] = r
			pixels[i*3+1] = g
			pixels[i*3+2] = b
		}
	}

	return pixels
}

func fillSolid(pixels []byte, r, g, b byte) {
	for i := 0; i < len(pixels); i += 3 {
		pixels[i] = r
		pixels[i+1] = g
		pixels[i+2] = b
	}
}

func hsvToRGB(h float64) (byte, byte, byte) {
	var i = int(h * 6)
	var f = h*6 - float64(i)
	var q = 1 - f
	var t = f

	var r, g, b float64

	switch i % 6 {
	case 0:
		r, g, b = 1, t, 0
	case 1:
		r, g, b = q, 1, 0
	case 2:
		r, g, b = 0, 1, t
	case 3:
		r, g, b = 0, q, 1
	case 4:
		r, g, b = t, 0, 1
	default:
		r, g, b = 1, 0, q
	}

	return byte(r * 255), byte(g * 255), byte(b * 255)
}

func sendOPCFrame(conn net.Conn, channel byte, pixels []byte) error {
	var header [4]byte
	header[0] = channel
	header[1] = 0
	binary.BigEndian.PutUint16(header[2:], uint16(len(pixels)))

	if _, err := conn.Write(header[:]); err != nil {
		return err
	}

	_, err := conn.Write(pixels)

	return err
}
