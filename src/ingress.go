package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Accept one OPC client at a time, drain its bytes non-
 *		blockingly into a reassembly buffer, and parse complete
 *		OPC records out of it.
 *
 * Description:	Grounded on the accept-loop-with-timeout shape of
 *		connect_listen_thread: a short accept poll so shutdown is
 *		observable, SO_REUSEADDR so a restarted process can rebind
 *		immediately, and a single active connection at a time
 *		(spec's non-goal: no multi-client concurrency on ingress).
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"encoding/binary"
	"net"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const opcHeaderSize = 4

// RecordHandler is called once per parsed OPC record whose command is
// 0 ("set pixel colors"). Other commands are consumed, counted toward
// nothing, and ignored.
type RecordHandler func(channel byte, payload []byte)

// Ingress is the OPC TCP listener.
type Ingress struct {
	host    string
	port    int
	handler RecordHandler

	receivedFrames atomic.Uint64
}

// NewIngress constructs an Ingress bound to host:port, dispatching
// parsed pixel records to handler.
func NewIngress(host string, port int, handler RecordHandler) *Ingress {
	return &Ingress{host: host, port: port, handler: handler}
}

// Run binds the listener and accepts connections, one at a time,
// until ctx is cancelled. It returns the bind error, if any; a clean
// shutdown returns nil.
func (in *Ingress) Run(ctx context.Context) error {
	var lc = net.ListenConfig{
		Control: setReuseAddr,
	}

	var ln, err = lc.Listen(ctx, "tcp", net.JoinHostPort(in.host, strconv.Itoa(in.port)))
	if err != nil {
		return err
	}
	defer ln.Close()

	logger.Info("opc listener ready", "host", in.host, "port", in.port)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var tcpLn, ok = ln.(*net.TCPListener)
		if ok {
			tcpLn.SetDeadline(time.Now().Add(acceptPollTimeout))
		}

		var conn, acceptErr = ln.Accept()
		if acceptErr != nil {
			if ctx.Err() != nil {
				return nil
			}

			if ne, isNetErr := acceptErr.(net.Error); isNetErr && ne.Timeout() {
				continue
			}

			logger.Warn("accept error", "err", acceptErr)
			continue
		}

		in.serveConnection(ctx, conn)
	}
}

// serveConnection drains conn non-blockingly, parsing and dispatching
// complete OPC records until the peer disconnects or ctx is done.
func (in *Ingress) serveConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	logger.Info("opc client connected", "remote", conn.RemoteAddr())

	var buf []byte
	var chunk [4096]byte

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(ingressDrainYield))

		var n, err = conn.Read(chunk[:])
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = in.parseRecords(buf)
		}

		if err != nil {
			if ne, isNetErr := err.(net.Error); isNetErr && ne.Timeout() {
				time.Sleep(ingressDrainYield)
				continue
			}

			// Zero-byte read / any other error: peer closed or link
			// failed, per spec §4.6/§7.
			logger.Info("opc client disconnected", "remote", conn.RemoteAddr())
			return
		}
	}
}

// parseRecords consumes as many complete OPC records as are present
// in buf, dispatching command-0 ones to the handler, and returns the
// remaining unconsumed bytes.
func (in *Ingress) parseRecords(buf []byte) []byte {
	for {
		if len(buf) < opcHeaderSize {
			return buf
		}

		var channel = buf[0]
		var command = buf[1]
		var length = int(binary.BigEndian.Uint16(buf[2:4]))

		if len(buf) < opcHeaderSize+length {
			return buf
		}

		var payload = buf[opcHeaderSize : opcHeaderSize+length]

		if command == 0 {
			in.receivedFrames.Add(1)
			in.handler(channel, payload)
		}

		buf = buf[opcHeaderSize+length:]
	}
}

// FramesReceived returns the lifetime count of parsed set-pixel-colors
// OPC records, for the stats emission of spec §4.8.
func (in *Ingress) FramesReceived() uint64 {
	return in.receivedFrames.Load()
}

// setReuseAddr is the net.ListenConfig.Control hook that sets
// SO_REUSEADDR before bind, via golang.org/x/sys/unix the way the
// teacher drives raw fd options in ptt.go/cm108.go.
func setReuseAddr(_, _ string, c syscall.RawConn) error {
	var sockErr error

	var ctrlErr = c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})

	if ctrlErr != nil {
		return ctrlErr
	}

	return sockErr
}
