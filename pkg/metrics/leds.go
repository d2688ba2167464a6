package metrics

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ledPaths holds the resolved sysfs brightness files for the three lock-key
// LEDs. Resolution happens once; keyboards do not grow LEDs at runtime.
type ledPaths struct {
	caps     string
	num      string
	scroll   string
	resolved bool
}

// readLocks reads the lock-key LED states, refresh limited by the keyboard
// interval. Missing LEDs read as off.
func (c *Collector) readLocks() (caps, num, scroll bool) {
	now := c.now()
	if c.intervals.Keyboard > 0 && !c.lastLocks.at.IsZero() && now.Sub(c.lastLocks.at) < c.intervals.Keyboard {
		return c.lastLocks.caps, c.lastLocks.num, c.lastLocks.scroll
	}

	if !c.leds.resolved {
		c.leds = resolveLEDPaths(c.ledRoot)
	}

	caps = readLEDOn(c.leds.caps)
	num = readLEDOn(c.leds.num)
	scroll = readLEDOn(c.leds.scroll)

	c.lastLocks.caps = caps
	c.lastLocks.num = num
	c.lastLocks.scroll = scroll
	c.lastLocks.at = now
	return caps, num, scroll
}

// resolveLEDPaths scans the LED class directory for the input LEDs. Entries
// are named like "input3::capslock".
func resolveLEDPaths(root string) ledPaths {
	paths := ledPaths{resolved: true}

	entries, err := os.ReadDir(root)
	if err != nil {
		return paths
	}
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		brightness := filepath.Join(root, entry.Name(), "brightness")
		switch {
		case strings.Contains(name, "::capslock"):
			paths.caps = brightness
		case strings.Contains(name, "::numlock"):
			paths.num = brightness
		case strings.Contains(name, "::scrolllock"):
			paths.scroll = brightness
		}
	}
	return paths
}

// readLEDOn reads a brightness file and reports whether the LED is lit.
func readLEDOn(path string) bool {
	if path == "" {
		return false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	return err == nil && v > 0
}
