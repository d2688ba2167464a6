// Package metrics samples host telemetry for the dashboard: CPU and memory
// load via gopsutil, network throughput from interface counters, audio
// volume from the system mixer, and lock-key state from sysfs LEDs.
//
// Every metric degrades to a zero value when its source is unavailable; a
// sample is always produced, so a missing mixer or LED never stalls the
// render loop. Each metric also carries a minimum refresh interval and is
// served from cache between refreshes, which keeps cheap render ticks from
// hammering slow sources.
package metrics

import (
	"context"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// Sample is one immutable set of metric values for a single render tick.
// The renderer treats all fields as already smoothed and rate limited.
type Sample struct {
	CPUPercent    float64
	MemPercent    float64
	VolumePercent float64
	NetUpBps      float64
	NetDownBps    float64
	CapsLock      bool
	NumLock       bool
	ScrollLock    bool
}

// Intervals holds the minimum refresh interval per metric. Zero means
// "refresh every sample".
type Intervals struct {
	CPU      time.Duration
	Memory   time.Duration
	Volume   time.Duration
	Network  time.Duration
	Keyboard time.Duration
}

// DefaultIntervals returns the default per-metric refresh cadence: CPU and
// memory every tick, volume at 100ms, network at 1s, lock keys at 50ms.
func DefaultIntervals() Intervals {
	return Intervals{
		Volume:   100 * time.Millisecond,
		Network:  time.Second,
		Keyboard: 50 * time.Millisecond,
	}
}

// cachedFloat is a refresh-limited float metric.
type cachedFloat struct {
	value float64
	at    time.Time
}

func (c *cachedFloat) fresh(now time.Time, interval time.Duration) bool {
	return interval > 0 && !c.at.IsZero() && now.Sub(c.at) < interval
}

// netState remembers the previous interface counter reading so throughput
// can be derived as a delta.
type netState struct {
	iface string
	rx    uint64
	tx    uint64
	at    time.Time
}

// Collector gathers host metrics. It is not safe for concurrent use; the
// single-threaded tick loop is its only caller.
type Collector struct {
	intervals Intervals

	lastCPU    cachedFloat
	lastMem    cachedFloat
	lastVolume cachedFloat

	lastNet     *netState
	lastNetRate struct {
		up, down float64
		at       time.Time
	}

	lastLocks struct {
		caps, num, scroll bool
		at                time.Time
	}

	leds ledPaths

	// Hooks for tests.
	now        func() time.Time
	execOutput func(ctx context.Context, name string, args ...string) ([]byte, error)
	ledRoot    string
}

// New creates a collector with the given refresh intervals.
func New(intervals Intervals) *Collector {
	return &Collector{
		intervals: intervals,
		now:       time.Now,
		ledRoot:   "/sys/class/leds",
		execOutput: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Sample gathers one snapshot. preferredIface restricts network throughput
// to a specific interface; empty means the first non-loopback interface.
func (c *Collector) Sample(ctx context.Context, preferredIface string) Sample {
	caps, num, scroll := c.readLocks()
	up, down := c.readNetworkRate(ctx, preferredIface)
	return Sample{
		CPUPercent:    c.readCPUPercent(ctx),
		MemPercent:    c.readMemPercent(ctx),
		VolumePercent: c.readVolumePercent(ctx),
		NetUpBps:      up,
		NetDownBps:    down,
		CapsLock:      caps,
		NumLock:       num,
		ScrollLock:    scroll,
	}
}

func (c *Collector) readCPUPercent(ctx context.Context) float64 {
	now := c.now()
	if c.lastCPU.fresh(now, c.intervals.CPU) {
		return c.lastCPU.value
	}

	// Interval 0 means "since the previous call", which matches the tick
	// cadence without blocking the loop.
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil || len(percents) == 0 {
		return c.lastCPU.value
	}
	c.lastCPU = cachedFloat{value: clampPercent(percents[0]), at: now}
	return c.lastCPU.value
}

func (c *Collector) readMemPercent(ctx context.Context) float64 {
	now := c.now()
	if c.lastMem.fresh(now, c.intervals.Memory) {
		return c.lastMem.value
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return c.lastMem.value
	}
	c.lastMem = cachedFloat{value: clampPercent(vm.UsedPercent), at: now}
	return c.lastMem.value
}

func (c *Collector) readNetworkRate(ctx context.Context, preferredIface string) (up, down float64) {
	now := c.now()
	if c.intervals.Network > 0 && !c.lastNetRate.at.IsZero() && now.Sub(c.lastNetRate.at) < c.intervals.Network {
		return c.lastNetRate.up, c.lastNetRate.down
	}

	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return 0, 0
	}

	var chosen *psnet.IOCountersStat
	for i := range counters {
		ic := &counters[i]
		if ic.Name == "lo" {
			continue
		}
		if preferredIface != "" {
			if ic.Name == preferredIface {
				chosen = ic
				break
			}
			continue
		}
		if chosen == nil {
			chosen = ic
		}
	}
	if chosen == nil {
		return 0, 0
	}

	up, down = c.rateFrom(chosen.Name, chosen.BytesSent, chosen.BytesRecv, now)
	c.lastNetRate.up = up
	c.lastNetRate.down = down
	c.lastNetRate.at = now
	return up, down
}

// rateFrom converts cumulative counters into bytes/sec using the previous
// reading. The first reading for an interface, or an interface switch,
// yields zero rates.
func (c *Collector) rateFrom(iface string, tx, rx uint64, now time.Time) (up, down float64) {
	prev := c.lastNet
	c.lastNet = &netState{iface: iface, rx: rx, tx: tx, at: now}

	if prev == nil || prev.iface != iface {
		return 0, 0
	}
	dt := now.Sub(prev.at).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	up = float64(tx-min64(tx, prev.tx)) / dt
	down = float64(rx-min64(rx, prev.rx)) / dt
	return up, down
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
