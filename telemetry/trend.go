package telemetry

import (
	"sync"

	"github.com/montanaflynn/stats"

	"dspc/config"
)

// VoltageTrend keeps a rolling window of recent battery-voltage samples
// and reports their mean/stddev, feeding the voltage_mean/voltage_stddev
// fields of the HTTP status response alongside the core's own
// voltage_brownout boolean. It never affects comm_status
// or enabled — those remain the core's own state machine, unmodified.
type VoltageTrend struct {
	mu      sync.Mutex
	samples []float64
}

// NewVoltageTrend returns an empty trend tracker bounded to
// config.VoltageHistoryWindow samples.
func NewVoltageTrend() *VoltageTrend {
	return &VoltageTrend{samples: make([]float64, 0, config.VoltageHistoryWindow)}
}

// Add appends voltage to the window, dropping the oldest sample once the
// window is full.
func (t *VoltageTrend) Add(voltage float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, voltage)
	if len(t.samples) > config.VoltageHistoryWindow {
		t.samples = t.samples[len(t.samples)-config.VoltageHistoryWindow:]
	}
}

// MeanStdDev returns the current window's mean and population standard
// deviation. Both are zero until at least one sample has been added.
func (t *VoltageTrend) MeanStdDev() (mean, stddev float64) {
	t.mu.Lock()
	data := append([]float64(nil), t.samples...)
	t.mu.Unlock()

	if len(data) == 0 {
		return 0, 0
	}
	mean, _ = stats.Mean(data)
	stddev, _ = stats.StandardDeviation(data)
	return mean, stddev
}
