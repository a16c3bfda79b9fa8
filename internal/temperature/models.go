package temperature

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyVariance is one observation: how far a given month of a given year
// deviated from the dataset's base temperature.
type MonthlyVariance struct {
	Year     int     `json:"year" validate:"gt=0"`
	Month    int     `json:"month" validate:"min=1,max=12"`
	Variance float64 `json:"variance"`
}

// Dataset is the global temperature document the chart is drawn from.
// It is immutable once loaded.
type Dataset struct {
	BaseTemperature float64           `json:"baseTemperature"`
	MonthlyVariance []MonthlyVariance `json:"monthlyVariance" validate:"dive"`
}

// Temperature returns the derived temperature of a single observation.
func (d Dataset) Temperature(v MonthlyVariance) float64 {
	return d.BaseTemperature + v.Variance
}

// Find returns the observation for the given year and month, if present.
func (d Dataset) Find(year, month int) (MonthlyVariance, bool) {
	for _, v := range d.MonthlyVariance {
		if v.Year == year && v.Month == month {
			return v, true
		}
	}
	return MonthlyVariance{}, false
}

// Snapshot is a successfully loaded dataset together with where and when it
// came from.
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"` // always UTC
	Dataset  Dataset   `json:"-"`
}

// NewSnapshot stamps a dataset with a fresh ID.
func NewSnapshot(source string, loadedAt time.Time, ds Dataset) Snapshot {
	return Snapshot{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: loadedAt.UTC(),
		Dataset:  ds,
	}
}

// LoadState is the coarse state of the load stage.
type LoadState string

const (
	StatePending LoadState = "pending"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Status describes the load stage so callers can poll it independently of
// rendering.
type Status struct {
	State       LoadState  `json:"state"`
	Source      string     `json:"source"`
	SnapshotID  *uuid.UUID `json:"snapshotId,omitempty"`
	Points      int        `json:"points"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`
	LastSuccess *time.Time `json:"lastSuccess,omitempty"`
	Error       string     `json:"error,omitempty"`
}
