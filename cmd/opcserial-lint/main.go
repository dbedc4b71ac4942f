package main

/*------------------------------------------------------------------
 *
 * Purpose:	Validate an opcserial configuration file without
 *		starting the server, grounded on the original Python
 *		bridge's fail-fast config loading (opc_server.py).
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	bridge "github.com/opcserial/bridge/src"
	"github.com/spf13/pflag"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "opcserial-lint - validate an opcserial configuration file.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: opcserial-lint config\n")
	}

	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	var cfg, err = bridge.LoadConfig(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ok: opc listener on %s:%d, %d output(s)\n", cfg.OPC.Host, cfg.OPC.Port, len(cfg.Outputs))

	for i, out := range cfg.Outputs {
		fmt.Printf("  [%d] %s: %s @ %d baud, %d LEDs, channel %d, offset %d, format %s\n",
			i, out.Port, out.Protocol, out.BaudRate, out.LEDCount, out.OPCChannel, out.OPCOffset, out.PixelFormat)
	}
}
