package game

import (
	"log/slog"
)

// flushTelemetry flushes the stats window when it is due: logs it when
// enabled and appends it to the CSV output.
func (g *Game) flushTelemetry() {
	frame := g.sim.Frame()
	if !g.collector.ShouldFlush(frame) {
		return
	}

	g.speeds = g.sim.Particles.Speeds(g.speeds[:0])
	stats := g.collector.Flush(frame, g.sim.ZOffset(), g.speeds)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
