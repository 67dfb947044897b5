package pipelinesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/stagetrack/pkg/candidate"
	"github.com/Abraxas-365/stagetrack/pkg/kernel"
	"github.com/Abraxas-365/stagetrack/pkg/logx"
	"github.com/Abraxas-365/stagetrack/pkg/observability"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
)

// MaxBatchSize limits statuses or candidate ids per batch request
const MaxBatchSize = 1000

// CandidateStages pairs a candidate with its classification. Result is nil
// when the candidate has no status.
type CandidateStages struct {
	Candidate *candidate.Candidate `json:"candidate"`
	Tone      pipeline.Tone        `json:"tone"`
	Result    *pipeline.Result     `json:"result"`
}

// PipelineService proporciona las operaciones de clasificación del pipeline
type PipelineService struct {
	cfg    *pipeline.Config
	reader candidate.Reader
}

// NewPipelineService crea una nueva instancia del servicio. reader may be
// nil, in which case candidate operations fail with ErrNoSource.
func NewPipelineService(cfg *pipeline.Config, reader candidate.Reader) *PipelineService {
	if cfg != nil {
		observability.PipelineStages.Set(float64(cfg.Len()))
	}
	return &PipelineService{
		cfg:    cfg,
		reader: reader,
	}
}

// Config returns the validated pipeline
func (s *PipelineService) Config() *pipeline.Config {
	return s.cfg
}

// Definition describes the loaded pipeline
func (s *PipelineService) Definition() pipeline.DefinitionResponse {
	return pipeline.NewDefinitionResponse(s.cfg)
}

// Statuses lists the status catalog under the loaded pipeline
func (s *PipelineService) Statuses() []pipeline.StatusView {
	return pipeline.NewStatusViews(s.cfg)
}

// ClassifyStatus clasifica un estado; un estado vacío devuelve nil
func (s *PipelineService) ClassifyStatus(status string) (*pipeline.Result, error) {
	result, err := pipeline.Classify(status, s.cfg)
	if err != nil {
		return nil, err
	}
	record(result)
	return result, nil
}

// ClassifyStatuses clasifica un lote de estados en orden
func (s *PipelineService) ClassifyStatuses(statuses []string) ([]*pipeline.Result, error) {
	if len(statuses) > MaxBatchSize {
		return nil, pipeline.ErrInvalidClassifyInput().
			WithDetail("max_batch_size", MaxBatchSize).
			WithDetail("received", len(statuses))
	}

	results, err := pipeline.ClassifyAll(statuses, s.cfg)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		record(r)
	}
	return results, nil
}

// ClassifyCandidate lee el estado actual de un candidato y lo clasifica
func (s *PipelineService) ClassifyCandidate(ctx context.Context, id kernel.CandidateID) (*CandidateStages, error) {
	if s.reader == nil {
		return nil, candidate.ErrNoSource()
	}
	if id.IsEmpty() {
		return nil, candidate.ErrInvalidID()
	}

	start := time.Now()
	c, err := s.reader.FindByID(ctx, id)
	observability.ObserveLookup("find_by_id", start, err)
	if err != nil {
		return nil, err
	}

	return s.stagesOf(c)
}

// ClassifyCandidates clasifica varios candidatos preservando el orden de ids
func (s *PipelineService) ClassifyCandidates(ctx context.Context, ids []kernel.CandidateID) ([]*CandidateStages, error) {
	if s.reader == nil {
		return nil, candidate.ErrNoSource()
	}
	if len(ids) > MaxBatchSize {
		return nil, pipeline.ErrInvalidClassifyInput().
			WithDetail("max_batch_size", MaxBatchSize).
			WithDetail("received", len(ids))
	}
	for i, id := range ids {
		if id.IsEmpty() {
			return nil, candidate.ErrInvalidID().WithDetail("index", i)
		}
	}

	start := time.Now()
	found, err := s.reader.FindByIDs(ctx, ids)
	observability.ObserveLookup("find_by_ids", start, err)
	if err != nil {
		return nil, err
	}

	out := make([]*CandidateStages, len(found))
	for i, c := range found {
		cs, err := s.stagesOf(c)
		if err != nil {
			return nil, err
		}
		out[i] = cs
	}
	return out, nil
}

// Funnel cuenta los candidatos por etapa, opcionalmente para un job
func (s *PipelineService) Funnel(ctx context.Context, jobID *kernel.JobID) (*pipeline.Funnel, error) {
	if s.reader == nil {
		return nil, candidate.ErrNoSource()
	}

	start := time.Now()
	statuses, err := s.reader.ListStatuses(ctx, candidate.ListFilter{JobID: jobID})
	observability.ObserveLookup("list_statuses", start, err)
	if err != nil {
		return nil, err
	}

	funnel, err := pipeline.BuildFunnel(statuses, s.cfg)
	if err != nil {
		return nil, err
	}

	fields := logx.Fields{"total": funnel.Total, "unknown": funnel.Unknown}
	if jobID != nil {
		fields["job_id"] = jobID.String()
	}
	logx.WithFields(fields).Debug("funnel computed")

	return funnel, nil
}

func (s *PipelineService) stagesOf(c *candidate.Candidate) (*CandidateStages, error) {
	cs := &CandidateStages{
		Candidate: c,
		Tone:      pipeline.ToneOf(c.Status),
	}
	if !c.HasStatus() {
		record(nil)
		return cs, nil
	}

	result, err := s.ClassifyStatus(c.Status)
	if err != nil {
		return nil, err
	}
	cs.Result = result
	return cs, nil
}

func record(r *pipeline.Result) {
	if r == nil {
		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeEmpty).Inc()
		return
	}

	switch {
	case !r.Matched():
		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeUnknown).Inc()
		return
	case r.Rejected():
		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeRejected).Inc()
	default:
		observability.ClassificationsTotal.WithLabelValues(observability.OutcomeMatched).Inc()
	}

	if active, ok := r.Active(); ok {
		observability.ActiveStageTotal.WithLabelValues(active.Key.String(), string(active.State)).Inc()
	}
}
