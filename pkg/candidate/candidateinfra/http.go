package candidateinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/stagetrack/pkg/candidate"
	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/kernel"
	"golang.org/x/sync/errgroup"
)

// HTTPReaderConfig configura el cliente REST del ATS
type HTTPReaderConfig struct {
	BaseURL     string
	APIToken    string
	Timeout     time.Duration
	Concurrency int
	PageSize    int
}

// HTTPCandidateReader lee candidatos desde la API REST del ATS
type HTTPCandidateReader struct {
	baseURL     string
	token       string
	concurrency int
	pageSize    int
	httpClient  *http.Client
}

// NewHTTPCandidateReader crea un nuevo lector sobre la API del ATS
func NewHTTPCandidateReader(cfg HTTPReaderConfig) *HTTPCandidateReader {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &HTTPCandidateReader{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.APIToken,
		concurrency: cfg.Concurrency,
		pageSize:    cfg.PageSize,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// ============================================================================
// Wire format
// ============================================================================

// wireID accepts both numeric and string ids
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("candidate id must be a string or number: %w", err)
	}
	*id = wireID(n.String())
	return nil
}

type wireCandidate struct {
	ID        wireID  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Status    *string `json:"status"`
	JobID     wireID  `json:"job_id"`
	JobTitle  string  `json:"job_title"`
}

func (w wireCandidate) toDomain() *candidate.Candidate {
	c := &candidate.Candidate{
		ID:        kernel.NewCandidateID(string(w.ID)),
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		JobID:     kernel.NewJobID(string(w.JobID)),
		JobTitle:  w.JobTitle,
	}
	if w.Status != nil {
		c.Status = *w.Status
	}
	if c.JobTitle == "N/A" {
		c.JobTitle = ""
	}
	return c
}

type wireList struct {
	Candidates []wireCandidate `json:"candidates"`
	Total      int             `json:"total"`
}

// ============================================================================
// Reader
// ============================================================================

// FindByID obtiene un candidato por ID
func (r *HTTPCandidateReader) FindByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	if id.IsEmpty() {
		return nil, candidate.ErrInvalidID()
	}

	endpoint := fmt.Sprintf("%s/api/candidates/%s", r.baseURL, url.PathEscape(id.String()))

	var w wireCandidate
	status, err := r.getJSON(ctx, endpoint, &w)
	if err != nil {
		return nil, err.WithDetail("candidate_id", id.String())
	}
	if status == http.StatusNotFound {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	c := w.toDomain()
	if c.ID.IsEmpty() {
		c.ID = id
	}
	return c, nil
}

// FindByIDs obtiene varios candidatos en paralelo preservando el orden
func (r *HTTPCandidateReader) FindByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*candidate.Candidate, error) {
	results := make([]*candidate.Candidate, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			c, err := r.FindByID(gctx, id)
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListStatuses recorre todas las páginas del listado y devuelve los estados
func (r *HTTPCandidateReader) ListStatuses(ctx context.Context, filter candidate.ListFilter) ([]string, error) {
	var statuses []string

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(r.pageSize))
		if filter.JobID != nil && !filter.JobID.IsEmpty() {
			q.Set("job_id", filter.JobID.String())
		}
		endpoint := r.baseURL + "/api/candidates?" + q.Encode()

		var list wireList
		status, err := r.getJSON(ctx, endpoint, &list)
		if err != nil {
			return nil, err.WithDetail("page", page)
		}
		if status == http.StatusNotFound {
			return nil, candidate.ErrSourceUnavailable().
				WithDetail("reason", "candidate listing endpoint not found")
		}

		for _, w := range list.Candidates {
			if w.Status != nil {
				statuses = append(statuses, *w.Status)
			} else {
				statuses = append(statuses, "")
			}
		}

		if len(list.Candidates) == 0 || len(statuses) >= list.Total {
			break
		}
	}

	return statuses, nil
}

// getJSON performs a GET and decodes a 200 body into out. A 404 is reported
// through the returned status with a nil error.
func (r *HTTPCandidateReader) getJSON(ctx context.Context, endpoint string, out any) (int, *errx.Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errx.Wrap(err, "failed to build candidate request", errx.TypeInternal)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, candidate.ErrSourceUnavailable().WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, candidate.ErrSourceUnavailable().
			WithDetail("status", resp.StatusCode).
			WithDetail("body", strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, candidate.ErrSourceUnavailable().
			WithDetail("reason", "invalid response body").
			WithCause(err)
	}
	return resp.StatusCode, nil
}
