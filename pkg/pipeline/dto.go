package pipeline

// ============================================================================
// DTOs
// ============================================================================

// ClassifyRequest clasifica un único estado
type ClassifyRequest struct {
	Status string `json:"status"`
}

// BatchClassifyRequest clasifica varios estados preservando el orden
type BatchClassifyRequest struct {
	Statuses []string `json:"statuses"`
}

// BatchClassifyResponse holds one entry per input; empty statuses map to null
type BatchClassifyResponse struct {
	Results []*Result `json:"results"`
}

// StageView is the public form of a stage
type StageView struct {
	Key      StageKey `json:"stage_key"`
	Name     string   `json:"display_name"`
	Statuses []string `json:"statuses"`
}

// DefinitionResponse describes the loaded pipeline
type DefinitionResponse struct {
	Stages    []StageView `json:"stages"`
	Ambiguous []string    `json:"ambiguous_statuses,omitempty"`
}

// NewDefinitionResponse builds the public view of cfg
func NewDefinitionResponse(cfg *Config) DefinitionResponse {
	stages := cfg.Stages()
	views := make([]StageView, len(stages))
	for i, s := range stages {
		views[i] = StageView{Key: s.Key, Name: s.Name, Statuses: s.Statuses}
	}
	return DefinitionResponse{
		Stages:    views,
		Ambiguous: cfg.AmbiguousStatuses(),
	}
}

// StatusView is a catalog entry with its pill tone
type StatusView struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Tone        Tone   `json:"tone"`
	Stage       string `json:"stage_key,omitempty"`
}

// NewStatusViews lists the catalog with tone and owning stage under cfg
func NewStatusViews(cfg *Config) []StatusView {
	entries := Statuses()
	out := make([]StatusView, len(entries))
	for i, e := range entries {
		out[i] = StatusView{Code: e.Code, Description: e.Description, Tone: ToneOf(e.Description)}
		if cfg != nil {
			if s, ok := cfg.StageOf(e.Description); ok {
				out[i].Stage = s.Key.String()
			}
		}
	}
	return out
}
