package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Load and validate the JSON configuration file naming the
 *		OPC listener and the serial outputs it feeds.
 *
 * Description:	One pass: read the file, unmarshal it, apply defaults
 *		(pixel_format -> GRB), and reject anything structurally
 *		wrong with a specific, human-readable error before any
 *		subsystem starts. There is no partial/merged config: the
 *		file is the only source of truth, loaded once at startup.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/json"
	"fmt"
	"os"
)

// Protocol identifies which wire codec an output uses.
type Protocol string

const (
	ProtocolAdalight Protocol = "adalight"
	ProtocolAwa      Protocol = "awa"
)

// HardwareType tags an output needing special bring-up handling.
type HardwareType string

const (
	HardwareNone HardwareType = ""
	HardwareWLED HardwareType = "WLED"
)

// OPCConfig is the §6 "opc" section: where the ingress listener binds.
type OPCConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// OutputConfig is one entry of the §6 "outputs" array. Immutable once
// loaded, per spec §3.
type OutputConfig struct {
	Port              string       `json:"port"`
	Protocol          Protocol     `json:"protocol"`
	BaudRate          int          `json:"baud_rate"`
	HandshakeBaudRate int          `json:"handshake_baud_rate,omitempty"`
	HardwareType      HardwareType `json:"hardware_type,omitempty"`
	OPCChannel        int          `json:"opc_channel"`
	OPCOffset         int          `json:"opc_offset"`
	LEDCount          int          `json:"led_count"`
	PixelFormat       PixelFormat  `json:"pixel_format,omitempty"`
}

// Config is the fully parsed and validated configuration file.
type Config struct {
	OPC     OPCConfig      `json:"opc"`
	Outputs []OutputConfig `json:"outputs"`
}

// LoadConfig reads and validates path, applying the pixel_format
// default. Any structural problem is returned as an error describing
// exactly what's wrong, for the caller to report and exit(1) on, per
// spec §7's "Config missing/invalid -> fatal, exit 1" policy.
func LoadConfig(path string) (*Config, error) {
	var raw, readErr = os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, readErr)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if err := cfg.validateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) validateAndApplyDefaults() error {
	if c.OPC.Host == "" {
		c.OPC.Host = "0.0.0.0"
	}

	if c.OPC.Port <= 0 || c.OPC.Port > 65535 {
		return fmt.Errorf("opc.port %d is out of range", c.OPC.Port)
	}

	if len(c.Outputs) == 0 {
		return fmt.Errorf("no outputs defined")
	}

	for i := range c.Outputs {
		if err := c.Outputs[i].validateAndApplyDefaults(i); err != nil {
			return err
		}
	}

	return nil
}

func (o *OutputConfig) validateAndApplyDefaults(index int) error {
	if o.Port == "" {
		return fmt.Errorf("outputs[%d]: port is required", index)
	}

	switch o.Protocol {
	case ProtocolAdalight, ProtocolAwa:
	default:
		return fmt.Errorf("outputs[%d] (%s): protocol must be %q or %q, got %q",
			index, o.Port, ProtocolAdalight, ProtocolAwa, o.Protocol)
	}

	if o.BaudRate <= 0 {
		return fmt.Errorf("outputs[%d] (%s): baud_rate must be positive", index, o.Port)
	}

	if o.HardwareType != HardwareNone && o.HardwareType != HardwareWLED {
		return fmt.Errorf("outputs[%d] (%s): unrecognized hardware_type %q", index, o.Port, o.HardwareType)
	}

	if o.OPCChannel < 0 || o.OPCChannel > 255 {
		return fmt.Errorf("outputs[%d] (%s): opc_channel %d out of range 0..255", index, o.Port, o.OPCChannel)
	}

	if o.OPCOffset < 0 {
		return fmt.Errorf("outputs[%d] (%s): opc_offset must not be negative", index, o.Port)
	}

	if o.LEDCount <= 0 {
		return fmt.Errorf("outputs[%d] (%s): led_count must be positive", index, o.Port)
	}

	switch o.PixelFormat {
	case "":
		o.PixelFormat = FormatGRB
	case FormatRGB, FormatGRB, FormatBGR, FormatRGBW, FormatGRBW:
	default:
		return fmt.Errorf("outputs[%d] (%s): unrecognized pixel_format %q", index, o.Port, o.PixelFormat)
	}

	return nil
}
