// Package oled mirrors dashboard frames onto an external SSD1306 OLED over
// I²C, for bench debugging without the keyboard attached. The panel is
// driven through periph.io; the dashboard's row-major packed frames are
// repacked into the controller's page/column layout before writing.
package oled

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultAddr is the usual SSD1306 I²C address.
const DefaultAddr = 0x3C

// SSD1306 command set, the subset this driver uses.
const (
	cmdSetContrast        = 0x81
	cmdDisplayAllOnResume = 0xA4
	cmdNormalDisplay      = 0xA6
	cmdDisplayOff         = 0xAE
	cmdDisplayOn          = 0xAF
	cmdSetDisplayOffset   = 0xD3
	cmdSetComPins         = 0xDA
	cmdSetDisplayClockDiv = 0xD5
	cmdSetPrecharge       = 0xD9
	cmdSetVCOMDeselect    = 0xDB
	cmdSetMultiplexRatio  = 0xA8
	cmdSetStartLine       = 0x40
	cmdSetMemoryMode      = 0x20
	cmdSetColumnAddr      = 0x21
	cmdSetPageAddr        = 0x22
	cmdSetChargePump      = 0x8D
	cmdSegmentRemap       = 0xA1
	cmdComScanDec         = 0xC8
)

// I²C control bytes: every transfer starts with one of these.
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// Mirror drives an SSD1306 panel as a secondary frame sink. Frames smaller
// than the panel land in its top-left corner; larger frames are rejected
// at Open. Not safe for concurrent use.
type Mirror struct {
	bus    i2c.BusCloser
	dev    *i2c.Dev
	width  int // source frame geometry
	height int
	panelW int
	panelH int
}

// Open initializes the periph host, opens the I²C bus (empty name means the
// first available), and brings up a panelW×panelH panel. Supported panel
// heights are 32 and 64.
func Open(busName string, addr uint16, width, height, panelW, panelH int) (*Mirror, error) {
	if width > panelW || height > panelH {
		return nil, fmt.Errorf("oled: %dx%d frame does not fit %dx%d panel", width, height, panelW, panelH)
	}

	var comPins byte
	switch panelH {
	case 32:
		comPins = 0x02
	case 64:
		comPins = 0x12
	default:
		return nil, fmt.Errorf("oled: unsupported panel height %d", panelH)
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("oled: periph host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("oled: opening I2C bus: %w", err)
	}

	m := &Mirror{
		bus:    bus,
		dev:    &i2c.Dev{Bus: bus, Addr: addr},
		width:  width,
		height: height,
		panelW: panelW,
		panelH: panelH,
	}

	err = m.command(
		cmdDisplayOff,
		cmdSetDisplayClockDiv, 0x80,
		cmdSetMultiplexRatio, byte(panelH-1),
		cmdSetDisplayOffset, 0x00,
		cmdSetStartLine,
		cmdSetChargePump, 0x14,
		cmdSetMemoryMode, 0x00,
		cmdSegmentRemap,
		cmdComScanDec,
		cmdSetComPins, comPins,
		cmdSetContrast, 0xCF,
		cmdSetPrecharge, 0xF1,
		cmdSetVCOMDeselect, 0x40,
		cmdDisplayAllOnResume,
		cmdNormalDisplay,
		cmdDisplayOn,
	)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return m, nil
}

// SendFrame writes one packed row-major frame to the panel.
func (m *Mirror) SendFrame(frame []byte) error {
	pages := Repack(frame, m.width, m.height)
	pageCount := len(pages) / m.width

	for page := 0; page < pageCount; page++ {
		err := m.command(
			cmdSetColumnAddr, 0, byte(m.width-1),
			cmdSetPageAddr, byte(page), byte(page),
		)
		if err != nil {
			return err
		}
		if err := m.data(pages[page*m.width : (page+1)*m.width]); err != nil {
			return err
		}
	}
	return nil
}

// Close blanks the panel and releases the bus.
func (m *Mirror) Close() error {
	if err := m.command(cmdDisplayOff); err != nil {
		m.bus.Close()
		return err
	}
	return m.bus.Close()
}

func (m *Mirror) command(cmds ...byte) error {
	buf := make([]byte, 0, len(cmds)*2)
	for _, c := range cmds {
		buf = append(buf, ctrlCommand, c)
	}
	if err := m.dev.Tx(buf, nil); err != nil {
		return fmt.Errorf("oled: command write: %w", err)
	}
	return nil
}

func (m *Mirror) data(p []byte) error {
	buf := make([]byte, 0, len(p)+1)
	buf = append(buf, ctrlData)
	buf = append(buf, p...)
	if err := m.dev.Tx(buf, nil); err != nil {
		return fmt.Errorf("oled: data write: %w", err)
	}
	return nil
}

// Repack converts a row-major MSB-first packed frame into the SSD1306
// page/column layout: one byte per column per 8-row page, bit 0 holding the
// page's top row. Output length is width * ceil(height/8).
func Repack(frame []byte, width, height int) []byte {
	pageCount := (height + 7) / 8
	out := make([]byte, pageCount*width)

	for page := 0; page < pageCount; page++ {
		for x := 0; x < width; x++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				y := page*8 + bit
				if y >= height {
					break
				}
				i := y*width + x
				if frame[i/8]>>(7-i%8)&1 == 1 {
					b |= 1 << bit
				}
			}
			out[page*width+x] = b
		}
	}
	return out
}
