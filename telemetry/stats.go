package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	ZOffset          float64 `csv:"z_offset"`

	Particles int `csv:"particles"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Speed cap hits accumulated over the window
	ClampedTotal    int     `csv:"clamped_total"`
	ClampedPerFrame float64 `csv:"clamped_per_frame"`
}

// SpeedStats summarizes a set of particle speeds.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, standard deviation, percentiles and
// maximum of speeds. The input is not modified.
func ComputeSpeedStats(speeds []float64) SpeedStats {
	n := len(speeds)
	if n == 0 {
		return SpeedStats{}
	}

	var s SpeedStats
	if n == 1 {
		s.Mean = speeds[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(speeds, nil)
	}
	s.Max = floats.Max(speeds)

	sorted := make([]float64, n)
	copy(sorted, speeds)
	sort.Float64s(sorted)

	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("z_offset", s.ZOffset),
		slog.Int("particles", s.Particles),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("clamped_total", s.ClampedTotal),
		slog.Float64("clamped_per_frame", s.ClampedPerFrame),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
