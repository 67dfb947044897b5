package pipeline

import (
	"sort"
	"strings"
)

// ============================================================================
// Stage Types
// ============================================================================

// StageKey identifies one step of the hiring funnel (e.g. "L1_INTERVIEW")
type StageKey string

func (k StageKey) String() string {
	return string(k)
}

// StageState describes a stage relative to the candidate's current status
type StageState string

const (
	StateCompleted  StageState = "completed"
	StateInProgress StageState = "in-progress"
	StateRejected   StageState = "rejected"
	StateSkipped    StageState = "skipped"
	StatePending    StageState = "pending"
)

// IsActive reports whether the state marks the candidate's current stage
func (s StageState) IsActive() bool {
	return s == StateInProgress || s == StateRejected
}

// ============================================================================
// Definition (decoded document)
// ============================================================================

// Definition is the pipeline document as supplied by the configuration
// source. It is not trusted until it goes through NewConfig.
type Definition struct {
	StageOrder  []string            `json:"stage_order" yaml:"stage_order"`
	StageNames  map[string]string   `json:"stage_names" yaml:"stage_names"`
	StageGroups map[string][]string `json:"stage_groups" yaml:"stage_groups"`
}

// ============================================================================
// Config (validated)
// ============================================================================

// Stage is one validated funnel step
type Stage struct {
	Key      StageKey
	Name     string
	Statuses []string
}

// Config is a validated, immutable pipeline definition. Build it with
// NewConfig; the zero value is not usable.
type Config struct {
	stages []Stage
	index  map[StageKey]int
	// owner maps a raw status to the index of the first stage whose group
	// contains it.
	owner map[string]int
}

// Option customises NewConfig
type Option func(*options)

type options struct {
	strictMembership bool
}

// WithStrictMembership rejects definitions where a status belongs to more
// than one stage group.
func WithStrictMembership() Option {
	return func(o *options) {
		o.strictMembership = true
	}
}

// NewConfig validates a definition and builds an immutable Config
func NewConfig(def *Definition, opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if def == nil {
		return nil, ErrConfigRequired()
	}
	if def.StageOrder == nil {
		return nil, ErrInvalidConfig().WithDetail("field", "stage_order").WithDetail("reason", "missing")
	}
	if def.StageNames == nil {
		return nil, ErrInvalidConfig().WithDetail("field", "stage_names").WithDetail("reason", "missing")
	}
	if def.StageGroups == nil {
		return nil, ErrInvalidConfig().WithDetail("field", "stage_groups").WithDetail("reason", "missing")
	}
	if len(def.StageOrder) == 0 {
		return nil, ErrEmptyStageOrder()
	}

	cfg := &Config{
		stages: make([]Stage, 0, len(def.StageOrder)),
		index:  make(map[StageKey]int, len(def.StageOrder)),
		owner:  make(map[string]int),
	}

	for i, raw := range def.StageOrder {
		if strings.TrimSpace(raw) == "" {
			return nil, ErrInvalidConfig().
				WithDetail("field", "stage_order").
				WithDetail("position", i).
				WithDetail("reason", "empty stage key")
		}

		key := StageKey(raw)
		if _, dup := cfg.index[key]; dup {
			return nil, ErrDuplicateStage().WithDetail("stage", raw)
		}

		name, ok := def.StageNames[raw]
		if !ok {
			return nil, ErrMissingStageName().WithDetail("stage", raw)
		}

		group, ok := def.StageGroups[raw]
		if !ok {
			return nil, ErrMissingStageGroup().WithDetail("stage", raw)
		}

		statuses := make([]string, len(group))
		copy(statuses, group)

		for _, status := range statuses {
			if prev, taken := cfg.owner[status]; taken {
				if o.strictMembership && prev != i {
					return nil, ErrAmbiguousStatus().
						WithDetail("status", status).
						WithDetail("stages", []string{cfg.stages[prev].Key.String(), raw})
				}
				continue
			}
			cfg.owner[status] = i
		}

		cfg.index[key] = i
		cfg.stages = append(cfg.stages, Stage{Key: key, Name: name, Statuses: statuses})
	}

	return cfg, nil
}

// Len returns the number of stages
func (c *Config) Len() int {
	return len(c.stages)
}

// Stages returns a copy of the stages in funnel order
func (c *Config) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	for i, s := range c.stages {
		statuses := make([]string, len(s.Statuses))
		copy(statuses, s.Statuses)
		out[i] = Stage{Key: s.Key, Name: s.Name, Statuses: statuses}
	}
	return out
}

// StageOf returns the stage owning a raw status (exact match)
func (c *Config) StageOf(status string) (Stage, bool) {
	i, ok := c.owner[status]
	if !ok {
		return Stage{}, false
	}
	return c.stages[i], true
}

// IndexOf returns the funnel position of a stage key
func (c *Config) IndexOf(key StageKey) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// Definition converts the config back into its document form
func (c *Config) Definition() Definition {
	def := Definition{
		StageOrder:  make([]string, 0, len(c.stages)),
		StageNames:  make(map[string]string, len(c.stages)),
		StageGroups: make(map[string][]string, len(c.stages)),
	}
	for _, s := range c.stages {
		key := s.Key.String()
		def.StageOrder = append(def.StageOrder, key)
		def.StageNames[key] = s.Name
		statuses := make([]string, len(s.Statuses))
		copy(statuses, s.Statuses)
		def.StageGroups[key] = statuses
	}
	return def
}

// AmbiguousStatuses lists statuses that appear in more than one group, sorted
func (c *Config) AmbiguousStatuses() []string {
	seen := make(map[string]int)
	for _, s := range c.stages {
		for _, status := range uniq(s.Statuses) {
			seen[status]++
		}
	}

	var out []string
	for status, n := range seen {
		if n > 1 {
			out = append(out, status)
		}
	}
	sort.Strings(out)
	return out
}

func uniq(in []string) []string {
	set := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := set[s]; ok {
			continue
		}
		set[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
