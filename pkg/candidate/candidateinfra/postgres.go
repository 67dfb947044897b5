package candidateinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/stagetrack/pkg/candidate"
	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const candidateColumns = `
			c.id::text AS id,
			COALESCE(c.first_name, '') AS first_name,
			COALESCE(c.last_name, '') AS last_name,
			COALESCE(c.email, '') AS email,
			COALESCE(c.current_status, '') AS current_status,
			COALESCE(c.job_description_id::text, '') AS job_id,
			COALESCE(jd.title, '') AS job_title`

// PostgresCandidateReader lee candidatos directamente de la base del ATS.
// Only SELECT statements are issued.
type PostgresCandidateReader struct {
	db *sqlx.DB
}

// NewPostgresCandidateReader crea una nueva instancia del lector
func NewPostgresCandidateReader(db *sqlx.DB) *PostgresCandidateReader {
	return &PostgresCandidateReader{db: db}
}

// FindByID busca un candidato por ID
func (r *PostgresCandidateReader) FindByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	if id.IsEmpty() {
		return nil, candidate.ErrInvalidID()
	}

	query := `
		SELECT` + candidateColumns + `
		FROM candidates c
		LEFT JOIN job_descriptions jd ON jd.id = c.job_description_id
		WHERE c.id::text = $1`

	var c candidate.Candidate
	err := r.db.GetContext(ctx, &c, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find candidate by id", errx.TypeInternal).
			WithDetail("candidate_id", id.String())
	}

	return &c, nil
}

// FindByIDs busca varios candidatos y los devuelve en el orden solicitado
func (r *PostgresCandidateReader) FindByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*candidate.Candidate, error) {
	if len(ids) == 0 {
		return []*candidate.Candidate{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		if id.IsEmpty() {
			return nil, candidate.ErrInvalidID().WithDetail("index", i)
		}
		raw[i] = id.String()
	}

	query := `
		SELECT` + candidateColumns + `
		FROM candidates c
		LEFT JOIN job_descriptions jd ON jd.id = c.job_description_id
		WHERE c.id::text = ANY($1)`

	var rows []candidate.Candidate
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(raw)); err != nil {
		return nil, errx.Wrap(err, "failed to find candidates by ids", errx.TypeInternal).
			WithDetail("count", len(ids))
	}

	return orderByIDs(ids, rows)
}

// ListStatuses devuelve el estado actual de cada candidato
func (r *PostgresCandidateReader) ListStatuses(ctx context.Context, filter candidate.ListFilter) ([]string, error) {
	query := `SELECT COALESCE(current_status, '') FROM candidates`
	args := []any{}
	if filter.JobID != nil && !filter.JobID.IsEmpty() {
		query += ` WHERE job_description_id::text = $1`
		args = append(args, filter.JobID.String())
	}

	var statuses []string
	if err := r.db.SelectContext(ctx, &statuses, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list candidate statuses", errx.TypeInternal)
	}
	return statuses, nil
}

// orderByIDs arranges rows to follow ids; a missing id is reported as not found
func orderByIDs(ids []kernel.CandidateID, rows []candidate.Candidate) ([]*candidate.Candidate, error) {
	byID := make(map[kernel.CandidateID]*candidate.Candidate, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	out := make([]*candidate.Candidate, len(ids))
	for i, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		out[i] = c
	}
	return out, nil
}
