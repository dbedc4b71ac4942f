package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Route one parsed OPC pixel record to every output whose
 *		configured channel matches, slicing the payload by each
 *		output's offset/length.
 *
 *------------------------------------------------------------------*/

// Dispatcher owns the set of configured outputs and routes incoming
// OPC pixel records to them.
type Dispatcher struct {
	outputs []*Output
}

// NewDispatcher constructs a Dispatcher over the given (already
// opened) outputs.
func NewDispatcher(outputs []*Output) *Dispatcher {
	return &Dispatcher{outputs: outputs}
}

// Dispatch implements spec §4.7: channel 0 broadcasts only to outputs
// configured for channel 0 (not a wildcard into other channels); a
// matching output receives payload[offset*3 .. min(offset*3+led_count*3, len(payload))],
// never padded.
func (d *Dispatcher) Dispatch(channel byte, payload []byte) {
	for _, out := range d.outputs {
		if int(channel) != out.cfg.OPCChannel {
			continue
		}

		var offsetBytes = out.cfg.OPCOffset * 3
		var need = out.cfg.LEDCount * 3

		if offsetBytes >= len(payload) {
			out.Submit(payload[:0])
			continue
		}

		var end = offsetBytes + need
		if end > len(payload) {
			end = len(payload)
		}

		out.Submit(payload[offsetBytes:end])
	}
}
