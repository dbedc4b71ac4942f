package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Bring a WLED-tagged serial output online: find the baud
 *		at which its JSON/probe API answers, command it onto the
 *		Adalight data baud, then reopen there.
 *
 * Description:	An explicit linear state machine (Probe, Switch,
 *		Reopen) rather than nested retries, so each step can be
 *		driven in isolation against a fake SerialPort in tests.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"time"
)

// wledBaudCommand maps a data baud rate to the single command byte
// that asks a WLED device, while it is listening on its probe baud,
// to switch its Adalight input to that rate.
var wledBaudCommand = map[int]byte{
	115200:  0xB0,
	230400:  0xB1,
	460800:  0xB2,
	500000:  0xB3,
	576000:  0xB4,
	921600:  0xB5,
	1000000: 0xB6,
	1500000: 0xB7,
	2000000: 0xB8,
}

// wledProbeBauds is the full candidate table from spec §4.5, in probe
// order, appended after the configured baud_rate and
// handshake_baud_rate.
var wledProbeBauds = []int{115200, 230400, 460800, 500000, 576000, 921600, 1000000, 1500000, 2000000}

type openSerialFunc func(devicename string, baud int) (SerialPort, error)

// wledBringUp runs Probe -> Switch -> Reopen for cfg, returning the
// open, data-baud serial handle on success. detectedBaud is the baud
// at which the device answered probe, reported for observability.
func wledBringUp(cfg OutputConfig, openSerial openSerialFunc) (SerialPort, int, error) {
	if _, ok := wledBaudCommand[cfg.BaudRate]; !ok {
		return nil, 0, fmt.Errorf("wled bring-up %s: unsupported baud_rate %d (no command byte)", cfg.Port, cfg.BaudRate)
	}

	var detectedBaud, err = wledProbe(cfg, openSerial)
	if err != nil {
		return nil, 0, err
	}

	if detectedBaud != cfg.BaudRate {
		if err := wledSwitch(cfg, detectedBaud, openSerial); err != nil {
			return nil, 0, err
		}
	}

	var sp, reopenErr = wledReopen(cfg, openSerial)
	if reopenErr != nil {
		return nil, 0, reopenErr
	}

	return sp, detectedBaud, nil
}

// wledProbe iterates candidate bauds (configured baud_rate, then
// handshake_baud_rate if distinct, then the full table), writing a
// single 'v' byte and looking for any response.
func wledProbe(cfg OutputConfig, openSerial openSerialFunc) (int, error) {
	var candidates = probeCandidates(cfg)

	for _, baud := range candidates {
		var detected, ok = wledProbeOne(cfg.Port, baud, openSerial)
		if ok {
			return detected, nil
		}

		time.Sleep(probeRetryDelay)
	}

	return 0, fmt.Errorf("wled bring-up %s: no probe response at any candidate baud", cfg.Port)
}

func probeCandidates(cfg OutputConfig) []int {
	var candidates = []int{cfg.BaudRate}

	if cfg.HandshakeBaudRate != 0 && cfg.HandshakeBaudRate != cfg.BaudRate {
		candidates = append(candidates, cfg.HandshakeBaudRate)
	}

	for _, b := range wledProbeBauds {
		if b == cfg.BaudRate || b == cfg.HandshakeBaudRate {
			continue
		}
		candidates = append(candidates, b)
	}

	return candidates
}

func wledProbeOne(port string, baud int, openSerial openSerialFunc) (int, bool) {
	var sp, err = openSerial(port, baud)
	if err != nil {
		return 0, false
	}
	defer sp.Close()

	time.Sleep(probeSettleDelay)
	clearBuffers(sp)

	if _, err := sp.Write([]byte{'v'}); err != nil {
		return 0, false
	}

	var buf [64]byte
	var n, readErr = readWithDeadline(sp, buf[:], probeResponseWait)
	if readErr != nil || n == 0 {
		return 0, false
	}

	return baud, true
}

// wledSwitch, at detectedBaud, commands the device onto cfg.BaudRate.
func wledSwitch(cfg OutputConfig, detectedBaud int, openSerial openSerialFunc) error {
	var cmd = wledBaudCommand[cfg.BaudRate]

	var sp, err = openSerial(cfg.Port, detectedBaud)
	if err != nil {
		return fmt.Errorf("wled bring-up %s: reopen at detected baud %d for switch: %w", cfg.Port, detectedBaud, err)
	}
	defer sp.Close()

	clearBuffers(sp)

	if _, err := sp.Write([]byte{cmd}); err != nil {
		return fmt.Errorf("wled bring-up %s: writing switch command: %w", cfg.Port, err)
	}

	if err := sp.Flush(); err != nil {
		return fmt.Errorf("wled bring-up %s: flushing switch command: %w", cfg.Port, err)
	}

	// Optionally read and discard any acknowledgement within
	// probeResponseWait; absence is not an error.
	var buf [64]byte
	readWithDeadline(sp, buf[:], probeResponseWait)

	return nil
}

// wledReopen opens cfg.Port at cfg.BaudRate for data framing.
func wledReopen(cfg OutputConfig, openSerial openSerialFunc) (SerialPort, error) {
	var sp, err = openSerial(cfg.Port, cfg.BaudRate)
	if err != nil {
		return nil, fmt.Errorf("wled bring-up %s: reopen at data baud %d: %w", cfg.Port, cfg.BaudRate, err)
	}

	time.Sleep(reopenSettleDelay)
	clearBuffers(sp)

	return sp, nil
}
