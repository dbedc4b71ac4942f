package bridge

/*------------------------------------------------------------------
 *
 * Purpose:   	Interface to the serial port, hiding the pkg/term API
 *		behind the small surface the output worker and the WLED
 *		bring-up state machine actually need.
 *
 *---------------------------------------------------------------*/

import (
	"time"

	"github.com/pkg/term"
)

// SerialPort is the transport the serial output worker and the WLED
// bring-up state machine drive. It is satisfied by *term.Term and by
// a fake in tests, per the design note in spec §9 calling for the
// bring-up machine to be testable against a transport stub.
type SerialPort interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	SetSpeed(baud int) error
	Flush() error
	Close() error
}

// realSerialPort wraps *term.Term to satisfy SerialPort.
type realSerialPort struct {
	t *term.Term
}

func (r *realSerialPort) Write(p []byte) (int, error) { return r.t.Write(p) }
func (r *realSerialPort) Read(p []byte) (int, error)  { return r.t.Read(p) }
func (r *realSerialPort) SetSpeed(baud int) error     { return r.t.SetSpeed(baud) }
func (r *realSerialPort) Flush() error                { return r.t.Flush() }
func (r *realSerialPort) Close() error                { return r.t.Close() }

// openSerialPort opens devicename in raw mode at baud (0 leaves the
// speed alone, mirroring the teacher's serial_port_open: "if 0, leave
// it alone"). It then pauses briefly for device boot and clears stale
// buffered data, per spec §4.4.
func openSerialPort(devicename string, baud int) (SerialPort, error) {
	var t, err = term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, err
	}

	if baud != 0 {
		if err := t.SetSpeed(baud); err != nil {
			t.Close()
			return nil, err
		}
	}

	var sp SerialPort = &realSerialPort{t: t}

	time.Sleep(openSettleDelay)
	clearBuffers(sp)

	return sp, nil
}

// clearBuffers best-effort drains whatever is sitting in the read side
// of sp. pkg/term does not expose a distinct "flush input buffer" ioctl
// wrapper, so this reads with a short deadline until nothing more
// arrives; errors (including "no data" and a timed-out read) are not
// fatal here.
func clearBuffers(sp SerialPort) {
	var buf [256]byte

	for range 8 {
		var n, err = readWithDeadline(sp, buf[:], clearBuffersReadWait)
		if err != nil || n == 0 {
			return
		}
	}
}

// writeFrame issues a single complete write of frame followed by a
// flush, per the worker guarantee in spec §4.4: exactly one write call
// per rendered frame, no interleaving of header and payload, bounded
// by serialWriteTimeout so a wedged link disconnects instead of
// hanging the worker forever.
func writeFrame(sp SerialPort, frame []byte) error {
	var written, err = writeWithDeadline(sp, frame, serialWriteTimeout)
	if err != nil {
		return err
	}

	if written != len(frame) {
		return errShortWrite
	}

	return sp.Flush()
}

// readWithDeadline performs a single Read on sp bounded by timeout.
// *term.Term leaves VMIN=1/VTIME=0 under RawMode, so a plain Read
// blocks indefinitely when nothing arrives and pkg/term exposes no
// read-deadline option; the read runs in its own goroutine and races
// a timer instead. A read that never returns leaks that one goroutine
// rather than wedging the probe loop or the worker that called it.
func readWithDeadline(sp SerialPort, buf []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}

	var done = make(chan result, 1)

	go func() {
		var n, err = sp.Read(buf)
		done <- result{n, err}
	}()

	select {
	case r := <-done:
		return r.n, r.err
	case <-time.After(timeout):
		return 0, errSerialReadTimeout
	}
}

// writeWithDeadline performs a single Write on sp bounded by timeout,
// for the same reason as readWithDeadline.
func writeWithDeadline(sp SerialPort, data []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}

	var done = make(chan result, 1)

	go func() {
		var n, err = sp.Write(data)
		done <- result{n, err}
	}()

	select {
	case r := <-done:
		return r.n, r.err
	case <-time.After(timeout):
		return 0, errSerialWriteTimeout
	}
}
