package bridge

import (
	"errors"
	"time"
)

// Timing constants named in spec §4.4, §4.5 and §5. Kept centralized
// so the bring-up state machine and the worker loop read like the
// numbers they are, rather than scattered magic durations.
const (
	openSettleDelay    = 100 * time.Millisecond // device boot settle after a non-WLED open
	probeSettleDelay   = 150 * time.Millisecond // settle after opening at a probe baud
	probeResponseWait  = 200 * time.Millisecond // wait for a probe/switch response
	probeRetryDelay    = 200 * time.Millisecond // wait before trying the next candidate baud
	reopenSettleDelay  = 100 * time.Millisecond // settle after reopening at the data baud
	mailboxPollTimeout   = 100 * time.Millisecond // worker mailbox wait, so shutdown is observable
	serialWriteTimeout   = 1 * time.Second        // upper bound on a blocking serial write
	clearBuffersReadWait = 50 * time.Millisecond  // per-iteration read bound while draining stale input
	workerJoinTimeout    = 1 * time.Second        // bounded wait for a worker to exit on close
	ingressDrainYield    = 1 * time.Millisecond   // yield between non-blocking socket drains
	acceptPollTimeout    = 200 * time.Millisecond // accept() poll so shutdown is observable
	statsInterval        = 5 * time.Second        // periodic stats emission
)

var errShortWrite = errors.New("bridge: short write to serial port")
var errSerialReadTimeout = errors.New("bridge: serial read timed out")
var errSerialWriteTimeout = errors.New("bridge: serial write timed out")
