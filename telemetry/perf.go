package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one update. A graphics update paints, steps and presents;
// a headless update only steps.
const (
	PhaseField     = "field"
	PhaseIntegrate = "integrate"
	PhaseRender    = "render"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseField, PhaseIntegrate, PhaseRender, PhaseTelemetry}

// Phases returns the phase names in reporting order.
func Phases() []string {
	return append([]string(nil), phaseOrder...)
}

// stepTiming is one recorded update.
type stepTiming struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps the timings of the last windowSize updates in a ring.
type PerfCollector struct {
	ring  []stepTiming
	next  int
	count int

	current    stepTiming
	stepStart  time.Time
	phase      string
	phaseStart time.Time

	lastFrame time.Time
	frameGap  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize updates.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]stepTiming, windowSize)}
}

// StartStep begins timing a new update.
func (p *PerfCollector) StartStep() {
	p.stepStart = time.Now()
	p.current = stepTiming{phases: make(map[string]time.Duration, len(phaseOrder))}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens phase. A phase may
// be entered several times per update; its durations add up.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = ""
}

// EndStep closes the update and stores it in the ring.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.stepStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a presented frame; the gap between marks gives the FPS.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameGap = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the updates in the window.
type PerfStats struct {
	AvgStepDuration time.Duration
	MaxStepDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average update

	StepsPerSecond float64
	FPS            float64 // zero until two frames were recorded
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.frameGap > 0 {
		s.FPS = float64(time.Second) / float64(p.frameGap)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for _, st := range p.ring[:p.count] {
		total += st.total
		s.MaxStepDuration = max(s.MaxStepDuration, st.total)
		for phase, d := range st.phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgStepDuration = total / n
	for phase, sum := range sums {
		s.PhaseAvg[phase] = sum / n
		if s.AvgStepDuration > 0 {
			s.PhasePct[phase] = 100 * float64(s.PhaseAvg[phase]) / float64(s.AvgStepDuration)
		}
	}
	if s.AvgStepDuration > 0 {
		s.StepsPerSecond = float64(time.Second) / float64(s.AvgStepDuration)
	}
	return s
}

// LogStats logs the window summary, one attribute per phase share.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStepDuration.Microseconds(),
		"max_step_us", s.MaxStepDuration.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	FieldPct     float64 `csv:"field_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a row ending at frame windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgStepUS:    s.AvgStepDuration.Microseconds(),
		MaxStepUS:    s.MaxStepDuration.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		FieldPct:     s.PhasePct[PhaseField],
		IntegratePct: s.PhasePct[PhaseIntegrate],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
