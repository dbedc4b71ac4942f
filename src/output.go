package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	One serial output: owns the serial handle, the latest-
 *		wins mailbox, and the worker goroutine that drains it.
 *
 * Description:	open() brings the link up (direct, or via the WLED
 *		bring-up machine for WLED-tagged hardware), submit()
 *		hands the worker a new payload without blocking the
 *		dispatcher, close() stops the worker and releases the
 *		handle. A failed write marks the output Disconnected and
 *		every subsequent submit is a silent no-op for the rest of
 *		this process run, per spec §4.4/§7.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// OutputState is the bring-up/run state of one serial output.
type OutputState int

const (
	StateClosed OutputState = iota
	StateProbing
	StateSwitching
	StateReopening
	StateReady
	StateDisconnected
	StateFailed
)

func (s OutputState) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateProbing:
		return "Probing"
	case StateSwitching:
		return "Switching"
	case StateReopening:
		return "Reopening"
	case StateReady:
		return "Ready"
	case StateDisconnected:
		return "Disconnected"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Output is one configured serial egress link.
type Output struct {
	cfg     OutputConfig
	mailbox *Mailbox

	mu           sync.Mutex
	sp           SerialPort
	state        OutputState
	detectedBaud int
	lastError    error

	framesSent uint64
	drops      uint64

	cancel context.CancelFunc
	done   chan struct{}

	openSerial func(devicename string, baud int) (SerialPort, error)
}

// NewOutput constructs an Output from its configuration. It is not yet
// open; call Open to acquire the serial handle and start the worker.
func NewOutput(cfg OutputConfig) *Output {
	return &Output{
		cfg:        cfg,
		mailbox:    NewMailbox(),
		state:      StateClosed,
		openSerial: openSerialPort,
	}
}

// Open acquires the serial handle (running the WLED bring-up state
// machine first when cfg.HardwareType is WLED) and starts the worker
// goroutine. On failure the output's state is Failed and err is
// non-nil; the caller excludes it from the active set per spec §7.
func (o *Output) Open(ctx context.Context) error {
	var sp SerialPort
	var err error

	if o.cfg.HardwareType == HardwareWLED {
		sp, o.detectedBaud, err = wledBringUp(o.cfg, o.openSerial)
	} else {
		sp, err = o.openSerial(o.cfg.Port, o.cfg.BaudRate)
	}

	if err != nil {
		o.setState(StateFailed)
		o.setLastError(err)
		return err
	}

	o.mu.Lock()
	o.sp = sp
	o.state = StateReady
	o.mu.Unlock()

	var workerCtx, cancel = context.WithCancel(ctx)
	o.cancel = cancel
	o.done = make(chan struct{})

	go o.workerLoop(workerCtx)

	return nil
}

// Submit hands payload (already sliced by the dispatcher) to the
// output's mailbox. Never blocks; a silent no-op once the output has
// disconnected, per spec §4.4/§7.
func (o *Output) Submit(payload []byte) {
	if o.State() == StateDisconnected {
		return
	}

	o.mailbox.Submit(payload)
}

// Close stops the worker (bounded wait), writes any payload still
// waiting in the mailbox (such as a final blank frame) if the worker
// has exited, and releases the serial handle. Safe to call on an
// output that never opened successfully.
func (o *Output) Close() {
	if o.cancel == nil {
		return
	}

	o.cancel()

	select {
	case <-o.done:
		if payload, ok := o.mailbox.Receive(); ok {
			o.sendFrame(payload)
		}
	case <-time.After(workerJoinTimeout):
	}

	o.mu.Lock()
	var sp = o.sp
	o.sp = nil
	o.mu.Unlock()

	if sp != nil {
		sp.Close()
	}
}

// LEDCount returns the configured pixel count for this output.
func (o *Output) LEDCount() int {
	return o.cfg.LEDCount
}

// State returns the output's current bring-up/run state.
func (o *Output) State() OutputState {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Stats returns the lifetime frames-sent and drops counters, for the
// periodic stats emission of spec §4.8.
func (o *Output) Stats() (framesSent, drops uint64) {
	return atomic.LoadUint64(&o.framesSent), o.mailbox.Drops()
}

func (o *Output) setState(s OutputState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Output) setLastError(err error) {
	o.mu.Lock()
	o.lastError = err
	o.mu.Unlock()
}

// workerLoop is the per-output goroutine of spec §4.4: wait on the
// mailbox with a short timeout so shutdown is observable; on receipt,
// transform, frame, and write exactly once.
func (o *Output) workerLoop(ctx context.Context) {
	defer close(o.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.mailbox.Signal():
		case <-time.After(mailboxPollTimeout):
		}

		var payload, ok = o.mailbox.Receive()
		if !ok {
			continue
		}

		o.sendFrame(payload)
	}
}

func (o *Output) sendFrame(payload []byte) {
	o.mu.Lock()
	var sp = o.sp
	o.mu.Unlock()

	if sp == nil {
		return
	}

	var stride = o.cfg.PixelFormat.Stride()
	var transformed = TransformPixels(payload, o.cfg.PixelFormat)

	var frame []byte
	switch o.cfg.Protocol {
	case ProtocolAwa:
		frame = AwaFrame(transformed, stride)
	default:
		frame = AdalightFrame(transformed, stride)
	}

	logHexDump(o.cfg.Port, frame)

	if err := writeFrame(sp, frame); err != nil {
		logger.Error("serial write failed, disconnecting output", "port", o.cfg.Port, "err", err)
		o.setLastError(err)
		o.setState(StateDisconnected)

		o.mu.Lock()
		if o.sp != nil {
			o.sp.Close()
			o.sp = nil
		}
		o.mu.Unlock()

		return
	}

	atomic.AddUint64(&o.framesSent, 1)
}
