package candidate

import (
	"context"
	"net/http"
	"strings"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/kernel"
)

// ============================================================================
// Entity
// ============================================================================

// Candidate es la proyección de solo lectura de un candidato del ATS
type Candidate struct {
	ID        kernel.CandidateID `db:"id" json:"id"`
	FirstName string             `db:"first_name" json:"first_name"`
	LastName  string             `db:"last_name" json:"last_name"`
	Email     string             `db:"email" json:"email"`
	Status    string             `db:"current_status" json:"status"`
	JobID     kernel.JobID       `db:"job_id" json:"job_id,omitempty"`
	JobTitle  string             `db:"job_title" json:"job_title,omitempty"`
}

// Name joins first and last name
func (c Candidate) Name() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// HasStatus reports whether the candidate carries a status to classify
func (c Candidate) HasStatus() bool {
	return c.Status != ""
}

// ============================================================================
// Port
// ============================================================================

// ListFilter restringe el listado de estados
type ListFilter struct {
	JobID *kernel.JobID
}

// Reader define el acceso de solo lectura al ATS
type Reader interface {
	FindByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)
	// FindByIDs returns the candidates in the order of ids. A missing id
	// fails the whole call with ErrCandidateNotFound.
	FindByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*Candidate, error)
	ListStatuses(ctx context.Context, filter ListFilter) ([]string, error)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("CANDIDATE")

var (
	CodeCandidateNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeSourceUnavailable = ErrRegistry.Register("SOURCE_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Candidate source unavailable")
	CodeInvalidID         = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate id")
	CodeNoSource          = ErrRegistry.Register("NO_SOURCE", errx.TypeBusiness, http.StatusServiceUnavailable, "No candidate source configured")
)

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrSourceUnavailable() *errx.Error {
	return ErrRegistry.New(CodeSourceUnavailable)
}

func ErrInvalidID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrNoSource() *errx.Error {
	return ErrRegistry.New(CodeNoSource)
}
