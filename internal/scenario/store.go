// Package scenario provides the in-memory store for saved projection
// snapshots and the comparison logic across them. The store is session
// scoped and never persisted; the HTTP server shares one store across
// requests, so access is serialized with a mutex.
package scenario

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/internal/engine"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// Scenario is a named, timestamped snapshot of one parameter set and its
// computed projection.
type Scenario struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	CreatedAt time.Time                 `json:"createdAt"`
	Params    config.BusinessParameters `json:"params"`
	Result    engine.ProjectionResult   `json:"result"`
}

// Store holds saved scenarios in insertion order.
type Store struct {
	mu        sync.Mutex
	scenarios []Scenario
}

// NewStore creates an empty scenario store.
func NewStore() *Store {
	return &Store{}
}

// Save appends a snapshot and returns it with its assigned ID.
func (s *Store) Save(name string, params config.BusinessParameters, result engine.ProjectionResult) Scenario {
	snapshot := Scenario{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Params:    params,
		Result:    result,
	}

	s.mu.Lock()
	s.scenarios = append(s.scenarios, snapshot)
	s.mu.Unlock()

	return snapshot
}

// List returns a copy of all saved scenarios in insertion order.
func (s *Store) List() []Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// Load returns the scenario with the given ID.
func (s *Store) Load(id string) (Scenario, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snapshot := range s.scenarios {
		if snapshot.ID == id {
			return snapshot, true
		}
	}
	return Scenario{}, false
}

// Best returns the saved scenario maximizing roi divided by overall risk.
func (s *Store) Best() (Scenario, bool) {
	return Best(s.List())
}

// Best picks the scenario with the highest risk-adjusted return, i.e. the
// argmax of roi / riskAssessment.overall. Scenarios with an indeterminate
// ROI or a non-positive overall risk score are skipped.
func Best(scenarios []Scenario) (Scenario, bool) {
	var best Scenario
	bestScore := 0.0
	found := false

	for _, candidate := range scenarios {
		roi := candidate.Result.ROI
		overall := candidate.Result.RiskAssessment.Overall
		if !roi.Valid || !mathutil.IsPositive(overall) {
			continue
		}
		score := roi.Value / overall
		if !found || score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}

	return best, found
}
