package pipeline

import "strings"

// rejectionMarkers are matched case-insensitively against the raw status
var rejectionMarkers = []string{"rejected", "declined"}

// StageResult is the derived state of one stage
type StageResult struct {
	Key       StageKey   `json:"stage_key"`
	Name      string     `json:"display_name"`
	State     StageState `json:"state"`
	Connector bool       `json:"connector_active"`
}

// Result is the classification of one status over the whole funnel
type Result struct {
	Status   string        `json:"status"`
	Stages   []StageResult `json:"stages"`
	matched  bool
	rejected bool
}

// IsRejectedStatus reports whether a status carries a rejection marker
func IsRejectedStatus(status string) bool {
	lower := strings.ToLower(status)
	for _, marker := range rejectionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Classify derives the state of every stage for the given status.
//
// An empty status yields a nil result and no error: there is nothing to
// render. A status that no stage group contains yields all stages pending.
// Group membership is exact; the rejection check is case-insensitive.
func Classify(currentStatus string, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, ErrConfigRequired()
	}
	if currentStatus == "" {
		return nil, nil
	}

	rejected := IsRejectedStatus(currentStatus)
	result := &Result{
		Status:   currentStatus,
		Stages:   make([]StageResult, len(cfg.stages)),
		rejected: rejected,
	}

	current, matched := cfg.owner[currentStatus]
	result.matched = matched

	for i, s := range cfg.stages {
		result.Stages[i] = StageResult{
			Key:   s.Key,
			Name:  s.Name,
			State: stateAt(i, current, matched, rejected),
		}
	}
	for i := range result.Stages {
		result.Stages[i].Connector = result.ConnectorActive(i)
	}

	return result, nil
}

// ClassifyAll classifies a batch of statuses, preserving input order
func ClassifyAll(statuses []string, cfg *Config) ([]*Result, error) {
	if cfg == nil {
		return nil, ErrConfigRequired()
	}

	out := make([]*Result, len(statuses))
	for i, status := range statuses {
		r, err := Classify(status, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func stateAt(i, current int, matched, rejected bool) StageState {
	if !matched {
		return StatePending
	}

	switch {
	case i < current:
		return StateCompleted
	case i == current:
		if rejected {
			return StateRejected
		}
		return StateInProgress
	default:
		if rejected {
			return StateSkipped
		}
		return StatePending
	}
}

// ============================================================================
// Result helpers
// ============================================================================

// Matched reports whether the status belonged to a stage group
func (r *Result) Matched() bool {
	return r.matched
}

// Rejected reports whether the status carried a rejection marker
func (r *Result) Rejected() bool {
	return r.rejected
}

// Active returns the current stage (in-progress or rejected), if any
func (r *Result) Active() (StageResult, bool) {
	for _, s := range r.Stages {
		if s.State.IsActive() {
			return s, true
		}
	}
	return StageResult{}, false
}

// ConnectorActive reports whether the connector drawn after stage i is lit
func (r *Result) ConnectorActive(i int) bool {
	if i < 0 || i >= len(r.Stages)-1 {
		return false
	}
	state := r.Stages[i].State
	return state == StateCompleted || state == StateInProgress
}

// States returns just the states in funnel order
func (r *Result) States() []StageState {
	out := make([]StageState, len(r.Stages))
	for i, s := range r.Stages {
		out[i] = s.State
	}
	return out
}
