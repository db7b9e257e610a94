package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseField)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(200 * time.Microsecond)
		pc.EndStep()
	}

	stats := pc.Stats()

	assert.Positive(t, stats.AvgStepDuration)
	assert.Contains(t, stats.PhaseAvg, PhaseField)
	assert.Contains(t, stats.PhaseAvg, PhaseIntegrate)
	assert.NotContains(t, stats.PhaseAvg, PhaseRender)
	assert.GreaterOrEqual(t, stats.MaxStepDuration, stats.AvgStepDuration)
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseField)
		pc.EndStep()
	}

	stats := pc.Stats()
	assert.Positive(t, stats.AvgStepDuration)
	assert.Positive(t, stats.StepsPerSecond)
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(2 * time.Millisecond)
		pc.EndStep()
	}

	stats := pc.Stats()
	assert.Greater(t, stats.PhasePct["slow"], stats.PhasePct["fast"])
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	assert.Zero(t, stats.AvgStepDuration)
	assert.NotNil(t, stats.PhaseAvg)
	assert.NotNil(t, stats.PhasePct)
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	require.Positive(t, stats.FPS)
	assert.Less(t, stats.FPS, 70.0, "gap of at least 16ms")
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgStepDuration: 1500 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseField:     60,
			PhaseIntegrate: 30,
		},
		FPS: 60,
	}

	row := stats.ToCSV(120)
	assert.Equal(t, int64(120), row.WindowEnd)
	assert.Equal(t, int64(1500), row.AvgStepUS)
	assert.Equal(t, 60.0, row.FieldPct)
	assert.Equal(t, 30.0, row.IntegratePct)
	assert.Equal(t, 0.0, row.RenderPct)
}

func TestPerfCollector_RepeatedPhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartStep()
	pc.StartPhase(PhaseRender)
	time.Sleep(time.Millisecond)
	pc.StartPhase(PhaseField)
	pc.StartPhase(PhaseRender)
	time.Sleep(time.Millisecond)
	pc.EndStep()

	stats := pc.Stats()
	assert.GreaterOrEqual(t, stats.PhaseAvg[PhaseRender], 2*time.Millisecond)
	assert.LessOrEqual(t, stats.PhaseAvg[PhaseRender], stats.AvgStepDuration)
}

func TestPhasesOrderIsStable(t *testing.T) {
	phases := Phases()
	assert.Equal(t, []string{PhaseField, PhaseIntegrate, PhaseRender, PhaseTelemetry}, phases)

	// Callers get a copy
	phases[0] = "mutated"
	assert.Equal(t, PhaseField, Phases()[0])
}
