package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	A single process-wide logging sink, replacing each
 *		component's own fmt.Printf calls with leveled, field
 *		structured output.
 *
 * Description:	--debug raises the sink to Debug level. --ddebug
 *		sets the same level and additionally turns on per-frame hex dumps of
 *		outgoing serial frames, mirroring the old hex_dump /
 *		kiss_debug_print toggle: one flag for "tell me what's
 *		happening", a louder one for "show me the wire bytes".
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide sink every component logs through.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
})

// ddebug gates the extra per-frame hex dump logging, on top of
// whatever level the logger itself is set to.
var ddebug = false

// ConfigureLogging sets the sink's level from the CLI's --debug and
// --ddebug flags. ddebug implies debug.
func ConfigureLogging(debug, ddebugFlag bool) {
	ddebug = ddebugFlag

	switch {
	case ddebugFlag:
		logger.SetLevel(log.DebugLevel)
	case debug:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// logHexDump emits a hex dump of frame under label, but only when
// --ddebug is set; callers pass the fully rendered wire frame so this
// never has to know which codec produced it.
func logHexDump(label string, frame []byte) {
	if !ddebug {
		return
	}

	logger.Debug("frame", "dir", label, "bytes", len(frame), "hex", hexString(frame))
}

func hexString(b []byte) string {
	const hextable = "0123456789abcdef"

	var out = make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0f]
	}

	return string(out)
}
