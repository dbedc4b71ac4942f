package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Top-level wiring: from a loaded config, open outputs, start
 *		ingress/dispatcher/stats, and run until cancelled.
 *
 * Description:	Mirrors the teacher's appserver.go shape of "Init, then
 *		goroutines, then a managed shutdown" but generalized to
 *		context.Context cancellation in place of a raw running
 *		flag, per SPEC_FULL.md §5.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
)

// Server is one running instance of the bridge: the opened outputs,
// the ingress listener, and the dispatcher wiring them together.
type Server struct {
	cfg     *Config
	outputs []*Output
	ingress *Ingress
}

// NewServer wraps each of cfg's (already validated) outputs in an
// Output value; it does not open any of them yet.
func NewServer(cfg *Config) *Server {
	var outputs = make([]*Output, 0, len(cfg.Outputs))
	for _, oc := range cfg.Outputs {
		outputs = append(outputs, NewOutput(oc))
	}

	return &Server{cfg: cfg, outputs: outputs}
}

// Run opens every configured output, starts the ingress listener, the
// dispatcher, and the stats ticker, then blocks until ctx is
// cancelled. On cancellation it submits a final blank frame to every
// still-connected output, closes them, and returns.
//
// Run returns an error if zero outputs could be opened (fatal per
// spec §7) or if the OPC listener fails (for example, cannot bind);
// individual output open failures are logged and that output is
// excluded from the active set.
func (s *Server) Run(ctx context.Context) error {
	var active = make([]*Output, 0, len(s.outputs))

	for _, out := range s.outputs {
		if err := out.Open(ctx); err != nil {
			logger.Error("output failed to open, excluding", "port", out.cfg.Port, "err", err)
			continue
		}

		active = append(active, out)
	}

	if len(active) == 0 {
		return fmt.Errorf("no outputs could be opened")
	}

	var dispatcher = NewDispatcher(active)

	s.ingress = NewIngress(s.cfg.OPC.Host, s.cfg.OPC.Port, dispatcher.Dispatch)

	var ingressErrCh = make(chan error, 1)
	go func() {
		ingressErrCh <- s.ingress.Run(ctx)
	}()

	go RunStats(ctx, s.ingress, active)

	select {
	case <-ctx.Done():
	case err := <-ingressErrCh:
		if err != nil {
			s.shutdownOutputs(active)
			return fmt.Errorf("opc listener: %w", err)
		}
	}

	s.shutdownOutputs(active)

	return nil
}

// shutdownOutputs submits a final all-zero frame to every output (per
// spec §3 Lifecycle), then closes each, joining its worker.
func (s *Server) shutdownOutputs(active []*Output) {
	for _, out := range active {
		var blank = make([]byte, out.cfg.LEDCount*3)
		out.Submit(blank)
	}

	for _, out := range active {
		out.Close()
	}
}
