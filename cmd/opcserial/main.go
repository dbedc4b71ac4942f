package main

/*------------------------------------------------------------------
 *
 * Purpose:	Main program for the OPC-to-serial bridge server.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	bridge "github.com/opcserial/bridge/src"
	"github.com/spf13/pflag"
)

func main() {
	var debug = pflag.Bool("debug", false, "Enable stats logging.")
	var ddebug = pflag.Bool("ddebug", false, "Enable per-frame hex dump logging (implies --debug).")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "opcserial - bridges an Open Pixel Control TCP stream to serial LED outputs.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: opcserial [options] config\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	bridge.ConfigureLogging(*debug, *ddebug)

	var cfg, err = bridge.LoadConfig(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "opcserial: %v\n", err)
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

	var server = bridge.NewServer(cfg)
	if runErr := server.Run(ctx); runErr != nil {
		fmt.Fprintf(os.Stderr, "opcserial: %v\n", runErr)
		os.Exit(1)
	}

	os.Exit(0)
}
