package telemetry

// Collector accumulates per-frame counters within windows of frames and
// produces WindowStats.
type Collector struct {
	windowFrames int64

	windowStartFrame int64
	framesInWindow   int
	clamped          int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordFrame records the outcome of one integration step.
func (c *Collector) RecordFrame(clamped int) {
	c.framesInWindow++
	c.clamped += clamped
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int64) bool {
	return currentFrame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats from the window counters and the current
// particle speeds, then resets counters for the next window.
func (c *Collector) Flush(currentFrame int64, zOffset float64, speeds []float64) WindowStats {
	sp := ComputeSpeedStats(speeds)

	var perFrame float64
	if c.framesInWindow > 0 {
		perFrame = float64(c.clamped) / float64(c.framesInWindow)
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		ZOffset:          zOffset,
		Particles:        len(speeds),

		SpeedMean: sp.Mean,
		SpeedStd:  sp.Std,
		SpeedP10:  sp.P10,
		SpeedP50:  sp.P50,
		SpeedP90:  sp.P90,
		SpeedMax:  sp.Max,

		ClampedTotal:    c.clamped,
		ClampedPerFrame: perFrame,
	}

	c.windowStartFrame = currentFrame
	c.framesInWindow = 0
	c.clamped = 0

	return stats
}
