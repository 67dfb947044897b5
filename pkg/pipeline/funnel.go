package pipeline

// FunnelStage counts the candidates whose current status sits in one stage
type FunnelStage struct {
	Key      StageKey `json:"stage_key"`
	Name     string   `json:"display_name"`
	Active   int      `json:"active"`
	Rejected int      `json:"rejected"`
}

// Total returns active plus rejected candidates at this stage
func (f FunnelStage) Total() int {
	return f.Active + f.Rejected
}

// Funnel is the distribution of a set of statuses over the pipeline
type Funnel struct {
	Stages        []FunnelStage `json:"stages"`
	Unknown       int           `json:"unknown"`
	RejectedCount int           `json:"rejected_total"`
	Total         int           `json:"total"`
}

// BuildFunnel places every status at its owning stage. Statuses that are
// empty or belong to no group are counted as unknown.
func BuildFunnel(statuses []string, cfg *Config) (*Funnel, error) {
	if cfg == nil {
		return nil, ErrConfigRequired()
	}

	f := &Funnel{
		Stages: make([]FunnelStage, len(cfg.stages)),
		Total:  len(statuses),
	}
	for i, s := range cfg.stages {
		f.Stages[i] = FunnelStage{Key: s.Key, Name: s.Name}
	}

	for _, status := range statuses {
		i, ok := cfg.owner[status]
		if status == "" || !ok {
			f.Unknown++
			continue
		}
		if IsRejectedStatus(status) {
			f.Stages[i].Rejected++
		} else {
			f.Stages[i].Active++
		}
	}
	f.RejectedCount = f.RejectedTotal()

	return f, nil
}

// RejectedTotal sums rejected candidates across all stages
func (f *Funnel) RejectedTotal() int {
	n := 0
	for _, s := range f.Stages {
		n += s.Rejected
	}
	return n
}
