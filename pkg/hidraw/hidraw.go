// Package hidraw streams packed display frames to the keyboard's OLED over
// the Linux hidraw interface. The device node is discovered through
// /sys/class/hidraw by USB vendor/product ID, preferring the HID interface
// that owns the display endpoint.
package hidraw

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// SteelSeries Apex 5. The OLED sits on HID interface 1; interface 0 is the
// keyboard itself and rejects display reports.
const (
	Apex5VID       = 0x1038
	Apex5PID       = 0x161C
	Apex5Interface = "mi_01"
)

const (
	// FrameBytes is the packed size of one 128x40 1-bit frame.
	FrameBytes = 640

	// A display report is the report ID, the frame, and one pad byte.
	packetBytes = 642
	reportID    = 0x61
)

// Sender writes display frames to a hidraw device node. The node is opened
// lazily on first send and reopened once, transparently, when a write fails
// (device unplugged and replugged). Not safe for concurrent use.
type Sender struct {
	vid   uint16
	pid   uint16
	iface string

	file   *os.File
	packet [packetBytes]byte

	// Filesystem roots, overridable in tests.
	sysRoot string
	devRoot string
}

// NewSender creates a sender for the given USB IDs and HID interface
// suffix (e.g. "mi_01"). No device access happens until the first
// SendFrame.
func NewSender(vid, pid uint16, iface string) *Sender {
	return &Sender{
		vid:     vid,
		pid:     pid,
		iface:   iface,
		sysRoot: "/sys/class/hidraw",
		devRoot: "/dev",
	}
}

// SendFrame writes one packed frame to the device. A failed write closes
// the node, rediscovers the device, and retries exactly once; a second
// failure is returned to the caller.
func (s *Sender) SendFrame(frame []byte) error {
	if len(frame) != FrameBytes {
		return fmt.Errorf("invalid frame size: got %d, expected %d", len(frame), FrameBytes)
	}

	if err := s.ensureOpen(); err != nil {
		return err
	}

	s.packet[0] = reportID
	copy(s.packet[1:1+FrameBytes], frame)
	s.packet[packetBytes-1] = 0

	if _, err := s.file.Write(s.packet[:]); err != nil {
		s.file.Close()
		s.file = nil
		if reopenErr := s.ensureOpen(); reopenErr != nil {
			return fmt.Errorf("device reopen after write failure (%v): %w", err, reopenErr)
		}
		if _, retryErr := s.file.Write(s.packet[:]); retryErr != nil {
			return fmt.Errorf("write after reconnect (first failure: %v): %w", err, retryErr)
		}
	}

	return nil
}

// Close releases the device node. The sender remains usable; the next
// SendFrame rediscovers and reopens.
func (s *Sender) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *Sender) ensureOpen() error {
	if s.file != nil {
		return nil
	}

	path, err := discover(s.sysRoot, s.devRoot, s.vid, s.pid, s.iface)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	// Confirm the node really is our device. Discovery raced against
	// hotplug if this mismatches.
	if info, err := unix.IoctlHIDGetRawInfo(int(file.Fd())); err == nil {
		if uint16(info.Vendor) != s.vid || uint16(info.Product) != s.pid {
			file.Close()
			return fmt.Errorf("%s reports %04x:%04x, expected %04x:%04x",
				path, uint16(info.Vendor), uint16(info.Product), s.vid, s.pid)
		}
	}

	s.file = file
	return nil
}

// discover walks sysRoot for a hidraw node whose HID_ID matches vid:pid.
// Among matching nodes the one on the wanted interface wins; any match is
// kept as a fallback since single-interface devices carry no mi_ suffix.
func discover(sysRoot, devRoot string, vid, pid uint16, iface string) (string, error) {
	entries, err := os.ReadDir(sysRoot)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", sysRoot, err)
	}

	fallback := ""
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "hidraw") {
			continue
		}

		sysPath := filepath.Join(sysRoot, name)
		uevent, err := os.ReadFile(filepath.Join(sysPath, "device", "uevent"))
		if err != nil {
			continue
		}

		devVID, devPID, ok := parseHIDID(string(uevent))
		if !ok || devVID != vid || devPID != pid {
			continue
		}

		candidate := filepath.Join(devRoot, name)
		if fallback == "" {
			fallback = candidate
		}

		if deviceInterface(sysPath) == iface {
			return candidate, nil
		}
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("hidraw device %04X:%04X (interface %s) not found under %s",
		vid, pid, iface, sysRoot)
}

// parseHIDID extracts the vendor and product ID from a sysfs uevent's
// HID_ID line, formatted bustype:vendor:product in hex.
func parseHIDID(uevent string) (vid, pid uint16, ok bool) {
	for _, line := range strings.Split(uevent, "\n") {
		id, found := strings.CutPrefix(line, "HID_ID=")
		if !found {
			continue
		}
		parts := strings.Split(id, ":")
		if len(parts) < 3 {
			continue
		}
		v, err := strconv.ParseUint(parts[1], 16, 16)
		if err != nil {
			return 0, 0, false
		}
		p, err := strconv.ParseUint(parts[2], 16, 16)
		if err != nil {
			return 0, 0, false
		}
		return uint16(v), uint16(p), true
	}
	return 0, 0, false
}

// deviceInterface resolves the node's device link and derives an "mi_NN"
// interface label from the USB path segment (e.g. "1-3:1.1" is interface
// 1, "mi_01"). Empty when the path carries no interface segment.
func deviceInterface(sysPath string) string {
	resolved, err := filepath.EvalSymlinks(filepath.Join(sysPath, "device"))
	if err != nil {
		return ""
	}
	return interfaceFromPath(resolved)
}

func interfaceFromPath(path string) string {
	for _, segment := range strings.Split(path, "/") {
		left, right, found := strings.Cut(segment, ":")
		if !found || !strings.Contains(left, "-") {
			continue
		}
		_, ifaceNum, found := strings.Cut(right, ".")
		if !found {
			continue
		}
		n, err := strconv.ParseUint(ifaceNum, 10, 8)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("mi_%02d", n)
	}
	return ""
}
