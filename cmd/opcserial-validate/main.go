package main

/*------------------------------------------------------------------
 *
 * Purpose:	Drive every configured output directly with a test
 *		pattern, bypassing the OPC listener, for bench-validating
 *		serial wiring and pixel_format choices.
 *
 * Description:	Grounded on original_source/validate/validate.py: open
 *		every output from the config, render solid/blink/chase
 *		patterns through the same codec/transform package the
 *		server uses, and blank all outputs on exit.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	bridge "github.com/opcserial/bridge/src"
	"github.com/spf13/pflag"
)

func main() {
	var configPath = pflag.StringP("config", "c", "config.json", "Path to config file.")
	var pattern = pflag.StringP("pattern", "p", "white-blink", "Pattern: solid, blink, white-blink, chase.")
	var duration = pflag.Float64P("duration", "d", 5.0, "Test duration in seconds.")
	var r = pflag.Int("r", 0, "Red value for patterns requiring RGB.")
	var g = pflag.Int("g", 0, "Green value for patterns requiring RGB.")
	var b = pflag.Int("b", 0, "Blue value for patterns requiring RGB.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "opcserial-validate - drive configured outputs with a test pattern, no OPC listener.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: opcserial-validate [options]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	var cfg, err = bridge.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opcserial-validate: %v\n", err)
		os.Exit(1)
	}

	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	var sigCh = make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var outputs = make([]*bridge.Output, 0, len(cfg.Outputs))
	for _, oc := range cfg.Outputs {
		var out = bridge.NewOutput(oc)
		if err := out.Open(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "opcserial-validate: %s: %v\n", oc.Port, err)
			continue
		}
		outputs = append(outputs, out)
		fmt.Printf("opened %s (%s @ %d baud, %d LEDs)\n", oc.Port, oc.Protocol, oc.BaudRate, oc.LEDCount)
	}

	if len(outputs) == 0 {
		fmt.Fprintln(os.Stderr, "opcserial-validate: no outputs could be opened")
		os.Exit(1)
	}

	defer func() {
		for _, out := range outputs {
			out.Submit(make([]byte, out.LEDCount()*3))
			out.Close()
		}
	}()

	const fps = 30
	var frameTime = time.Second / fps
	var start = time.Now()
	var frame = 0

	for time.Since(start) < time.Duration(*duration*float64(time.Second)) {
		select {
		case <-ctx.Done():
			fmt.Println("interrupted")
			return
		default:
		}

		for _, out := range outputs {
			var pixels = validatePattern(*pattern, out, frame, byte(*r), byte(*g), byte(*b))
			out.Submit(pixels)
		}

		time.Sleep(frameTime)
		frame++
	}

	fmt.Printf("completed %d frames\n", frame)
}

func validatePattern(name string, out *bridge.Output, frame int, r, g, b byte) []byte {
	var ledCount = out.LEDCount()
	var pixels = make([]byte, ledCount*3)

	switch name {
	case "solid":
		for i := 0; i < ledCount; i++ {
			pixels[i*3], pixels[i*3+1], pixels[i*3+2] = r, g, b
		}
	case "blink":
		if (frame/15)%2 == 0 {
			for i := 0; i < ledCount; i++ {
				pixels[i*3], pixels[i*3+1], pixels[i*3+2] = r, g, b
			}
		}
	case "chase":
		var position = (frame / 2) % ledCount
		for i := 0; i < 5; i++ {
			var idx = (position + i) % ledCount
			pixels[idx*3], pixels[idx*3+1], pixels[idx*3+2] = r, g, b
		}
	default: // white-blink
		if (frame/15)%2 == 0 {
			for i := 0; i < ledCount; i++ {
				pixels[i*3], pixels[i*3+1], pixels[i*3+2] = 255, 255, 255
			}
		}
	}

	return pixels
}
