package metrics

import (
	"context"
	"strconv"
	"strings"
)

// readVolumePercent queries the output volume through whichever mixer tool
// is present, in order of preference: wireplumber (wpctl), pulseaudio
// (pactl), then ALSA (amixer). A muted sink reports 0.
func (c *Collector) readVolumePercent(ctx context.Context) float64 {
	now := c.now()
	if c.lastVolume.fresh(now, c.intervals.Volume) {
		return c.lastVolume.value
	}

	volume := 0.0
	if v, ok := c.volumeViaWpctl(ctx); ok {
		volume = v
	} else if v, ok := c.volumeViaPactl(ctx); ok {
		volume = v
	} else if v, ok := c.volumeViaAmixer(ctx); ok {
		volume = v
	}

	c.lastVolume = cachedFloat{value: volume, at: now}
	return volume
}

func (c *Collector) volumeViaWpctl(ctx context.Context) (float64, bool) {
	out, err := c.execOutput(ctx, "wpctl", "get-volume", "@DEFAULT_AUDIO_SINK@")
	if err != nil {
		return 0, false
	}
	return parseWpctlVolume(string(out))
}

func (c *Collector) volumeViaPactl(ctx context.Context) (float64, bool) {
	out, err := c.execOutput(ctx, "pactl", "get-sink-volume", "@DEFAULT_SINK@")
	if err != nil {
		return 0, false
	}
	return parsePercentToken(string(out))
}

func (c *Collector) volumeViaAmixer(ctx context.Context) (float64, bool) {
	out, err := c.execOutput(ctx, "amixer", "get", "Master")
	if err != nil {
		return 0, false
	}
	text := string(out)
	if strings.Contains(text, "[off]") {
		return 0, true
	}
	return parsePercentToken(text)
}

// parseWpctlVolume parses `wpctl get-volume` output, e.g. "Volume: 0.47" or
// "Volume: 0.47 [MUTED]". The scalar is a fraction of full volume.
func parseWpctlVolume(text string) (float64, bool) {
	if strings.Contains(text, "[MUTED]") {
		return 0, true
	}
	for _, token := range strings.Fields(text) {
		if v, err := strconv.ParseFloat(token, 64); err == nil {
			return clampPercent(v * 100), true
		}
	}
	return 0, false
}

// parsePercentToken finds the first percentage token in mixer output.
// pactl and amixer both print volumes as "NN%" or "[NN%]".
func parsePercentToken(text string) (float64, bool) {
	for _, token := range strings.Fields(text) {
		if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "%]") {
			value := strings.TrimSuffix(strings.TrimPrefix(token, "["), "%]")
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				return clampPercent(v), true
			}
		}
		if value, found := strings.CutSuffix(token, "%"); found {
			value = strings.TrimFunc(value, func(r rune) bool {
				return (r < '0' || r > '9') && r != '.'
			})
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				return clampPercent(v), true
			}
		}
	}
	return 0, false
}
