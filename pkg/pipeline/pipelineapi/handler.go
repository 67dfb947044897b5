package pipelineapi

import (
	"github.com/Abraxas-365/stagetrack/pkg/kernel"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelinesrv"
	"github.com/gofiber/fiber/v2"
)

// PipelineHandlers maneja las rutas del pipeline con Fiber
type PipelineHandlers struct {
	service *pipelinesrv.PipelineService
}

// NewPipelineHandlers crea un nuevo handler del pipeline
func NewPipelineHandlers(service *pipelinesrv.PipelineService) *PipelineHandlers {
	return &PipelineHandlers{
		service: service,
	}
}

// CandidateStagesRequest pide la clasificación de varios candidatos
type CandidateStagesRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

// RegisterRoutes registra las rutas del pipeline en Fiber
func (h *PipelineHandlers) RegisterRoutes(router fiber.Router) {
	p := router.Group("/pipeline")
	p.Get("/", h.GetDefinition)
	p.Get("/statuses", h.GetStatuses)
	p.Post("/classify", h.Classify)
	p.Post("/classify/batch", h.ClassifyBatch)
	p.Get("/funnel", h.GetFunnel)

	candidates := router.Group("/candidates")
	candidates.Get("/:id/stages", h.GetCandidateStages)
	candidates.Post("/stages", h.GetCandidatesStages)
}

// GetDefinition devuelve las etapas del pipeline cargado
func (h *PipelineHandlers) GetDefinition(c *fiber.Ctx) error {
	return c.JSON(h.service.Definition())
}

// GetStatuses devuelve el catálogo de estados
func (h *PipelineHandlers) GetStatuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"statuses": h.service.Statuses(),
	})
}

// Classify clasifica un estado. An empty status has nothing to render and
// answers 204.
func (h *PipelineHandlers) Classify(c *fiber.Ctx) error {
	var req pipeline.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return pipeline.ErrInvalidClassifyInput().
			WithDetail("reason", "invalid request body").
			WithCause(err)
	}

	result, err := h.service.ClassifyStatus(req.Status)
	if err != nil {
		return err
	}
	if result == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(result)
}

// ClassifyBatch clasifica varios estados
func (h *PipelineHandlers) ClassifyBatch(c *fiber.Ctx) error {
	var req pipeline.BatchClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return pipeline.ErrInvalidClassifyInput().
			WithDetail("reason", "invalid request body").
			WithCause(err)
	}
	if req.Statuses == nil {
		return pipeline.ErrInvalidClassifyInput().WithDetail("field", "statuses")
	}

	results, err := h.service.ClassifyStatuses(req.Statuses)
	if err != nil {
		return err
	}
	return c.JSON(pipeline.BatchClassifyResponse{Results: results})
}

// GetFunnel cuenta los candidatos por etapa
func (h *PipelineHandlers) GetFunnel(c *fiber.Ctx) error {
	var jobID *kernel.JobID
	if raw := c.Query("job_id"); raw != "" {
		id := kernel.NewJobID(raw)
		jobID = &id
	}

	funnel, err := h.service.Funnel(c.Context(), jobID)
	if err != nil {
		return err
	}
	return c.JSON(funnel)
}

// GetCandidateStages clasifica el estado actual de un candidato
func (h *PipelineHandlers) GetCandidateStages(c *fiber.Ctx) error {
	id := kernel.NewCandidateID(c.Params("id"))

	stages, err := h.service.ClassifyCandidate(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(stages)
}

// GetCandidatesStages clasifica varios candidatos
func (h *PipelineHandlers) GetCandidatesStages(c *fiber.Ctx) error {
	var req CandidateStagesRequest
	if err := c.BodyParser(&req); err != nil {
		return pipeline.ErrInvalidClassifyInput().
			WithDetail("reason", "invalid request body").
			WithCause(err)
	}

	ids := make([]kernel.CandidateID, len(req.CandidateIDs))
	for i, raw := range req.CandidateIDs {
		ids[i] = kernel.NewCandidateID(raw)
	}

	stages, err := h.service.ClassifyCandidates(c.Context(), ids)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"candidates": stages,
	})
}
