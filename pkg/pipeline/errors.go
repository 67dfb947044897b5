package pipeline

import (
	"net/http"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
)

// ============================================================================
// Error Registry - Errores específicos del pipeline
// ============================================================================

var ErrRegistry = errx.NewRegistry("PIPELINE")

var (
	CodeConfigRequired       = ErrRegistry.Register("CONFIG_REQUIRED", errx.TypeInternal, http.StatusInternalServerError, "Pipeline configuration is required")
	CodeInvalidConfig        = ErrRegistry.Register("INVALID_CONFIG", errx.TypeValidation, http.StatusUnprocessableEntity, "Pipeline configuration is invalid")
	CodeEmptyStageOrder      = ErrRegistry.Register("EMPTY_STAGE_ORDER", errx.TypeValidation, http.StatusUnprocessableEntity, "Pipeline must define at least one stage")
	CodeDuplicateStage       = ErrRegistry.Register("DUPLICATE_STAGE", errx.TypeValidation, http.StatusUnprocessableEntity, "Stage key appears more than once in stage_order")
	CodeMissingStageName     = ErrRegistry.Register("MISSING_STAGE_NAME", errx.TypeValidation, http.StatusUnprocessableEntity, "Stage has no display name")
	CodeMissingStageGroup    = ErrRegistry.Register("MISSING_STAGE_GROUP", errx.TypeValidation, http.StatusUnprocessableEntity, "Stage has no status group")
	CodeAmbiguousStatus      = ErrRegistry.Register("AMBIGUOUS_STATUS", errx.TypeValidation, http.StatusUnprocessableEntity, "Status belongs to more than one stage")
	CodeDefinitionNotFound   = ErrRegistry.Register("DEFINITION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Pipeline definition not found")
	CodeDefinitionMalformed  = ErrRegistry.Register("DEFINITION_MALFORMED", errx.TypeValidation, http.StatusUnprocessableEntity, "Pipeline definition could not be decoded")
	CodeUnsupportedFormat    = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Pipeline definition format not supported")
	CodeInvalidClassifyInput = ErrRegistry.Register("INVALID_CLASSIFY_INPUT", errx.TypeValidation, http.StatusBadRequest, "Invalid classification request")
)

func ErrConfigRequired() *errx.Error {
	return ErrRegistry.New(CodeConfigRequired)
}

func ErrInvalidConfig() *errx.Error {
	return ErrRegistry.New(CodeInvalidConfig)
}

func ErrEmptyStageOrder() *errx.Error {
	return ErrRegistry.New(CodeEmptyStageOrder)
}

func ErrDuplicateStage() *errx.Error {
	return ErrRegistry.New(CodeDuplicateStage)
}

func ErrMissingStageName() *errx.Error {
	return ErrRegistry.New(CodeMissingStageName)
}

func ErrMissingStageGroup() *errx.Error {
	return ErrRegistry.New(CodeMissingStageGroup)
}

func ErrAmbiguousStatus() *errx.Error {
	return ErrRegistry.New(CodeAmbiguousStatus)
}

func ErrDefinitionNotFound() *errx.Error {
	return ErrRegistry.New(CodeDefinitionNotFound)
}

func ErrDefinitionMalformed() *errx.Error {
	return ErrRegistry.New(CodeDefinitionMalformed)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrInvalidClassifyInput() *errx.Error {
	return ErrRegistry.New(CodeInvalidClassifyInput)
}
