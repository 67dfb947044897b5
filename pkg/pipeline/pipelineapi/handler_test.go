package pipelineapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/stagetrack/pkg/candidate"
	"github.com/Abraxas-365/stagetrack/pkg/fiberx"
	"github.com/Abraxas-365/stagetrack/pkg/kernel"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelinesrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	byID map[kernel.CandidateID]*candidate.Candidate
}

func (s *stubReader) FindByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
}

func (s *stubReader) FindByIDs(ctx context.Context, ids []kernel.CandidateID) ([]*candidate.Candidate, error) {
	out := make([]*candidate.Candidate, 0, len(ids))
	for _, id := range ids {
		c, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *stubReader) ListStatuses(ctx context.Context, filter candidate.ListFilter) ([]string, error) {
	out := []string{}
	for _, c := range s.byID {
		out = append(out, c.Status)
	}
	return out, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	def := &pipeline.Definition{
		StageOrder:  []string{"A", "B", "C"},
		StageNames:  map[string]string{"A": "Alpha", "B": "Beta", "C": "Gamma"},
		StageGroups: map[string][]string{"A": {"a1"}, "B": {"b1", "B Rejected"}, "C": {"c1"}},
	}
	cfg, err := pipeline.NewConfig(def)
	require.NoError(t, err)

	reader := &stubReader{byID: map[kernel.CandidateID]*candidate.Candidate{
		"1": {ID: "1", FirstName: "Ana", Status: "b1"},
		"2": {ID: "2", FirstName: "Ben", Status: ""},
	}}

	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler(false)})
	NewPipelineHandlers(pipelinesrv.NewPipelineService(cfg, reader)).RegisterRoutes(app.Group("/api/v1"))
	app.Use(fiberx.NotFoundHandler)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

type stageJSON struct {
	Key       string `json:"stage_key"`
	Name      string `json:"display_name"`
	State     string `json:"state"`
	Connector bool   `json:"connector_active"`
}

type resultJSON struct {
	Status string      `json:"status"`
	Stages []stageJSON `json:"stages"`
}

func states(r resultJSON) []string {
	out := make([]string, len(r.Stages))
	for i, s := range r.Stages {
		out[i] = s.State
	}
	return out
}

func TestClassify(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/pipeline/classify", `{"status":"B Rejected"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var r resultJSON
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, []string{"completed", "rejected", "skipped"}, states(r))
	assert.Equal(t, "Beta", r.Stages[1].Name)
	assert.True(t, r.Stages[0].Connector)
	assert.False(t, r.Stages[1].Connector, "rejected stage leaves its connector dark")
}

func TestClassify_EmptyStatusIsNoContent(t *testing.T) {
	app := newTestApp(t)

	resp, _ := request(t, app, http.MethodPost, "/api/v1/pipeline/classify", `{"status":""}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClassify_BadBody(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/pipeline/classify", `{"status":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), pipeline.CodeInvalidClassifyInput)
}

func TestClassifyBatch(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/pipeline/classify/batch", `{"statuses":["a1","","zz"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Results []*resultJSON `json:"results"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Results, 3)
	assert.Equal(t, []string{"in-progress", "pending", "pending"}, states(*out.Results[0]))
	assert.Nil(t, out.Results[1])
	assert.Equal(t, []string{"pending", "pending", "pending"}, states(*out.Results[2]))

	resp, _ = request(t, app, http.MethodPost, "/api/v1/pipeline/classify/batch", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDefinitionAndStatuses(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodGet, "/api/v1/pipeline", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var def pipeline.DefinitionResponse
	require.NoError(t, json.Unmarshal(body, &def))
	require.Len(t, def.Stages, 3)
	assert.Equal(t, pipeline.StageKey("A"), def.Stages[0].Key)

	resp, body = request(t, app, http.MethodGet, "/api/v1/pipeline/statuses", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), pipeline.StatusL1Rejected)
}

func TestGetFunnel(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodGet, "/api/v1/pipeline/funnel?job_id=10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var f pipeline.Funnel
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, 2, f.Total)
	assert.Equal(t, 1, f.Unknown)
	assert.Equal(t, 1, f.Stages[1].Active)
	assert.Equal(t, 0, f.RejectedCount)
	assert.Contains(t, string(body), `"rejected_total":0`)
}

func TestCandidateStages(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodGet, "/api/v1/candidates/1/stages", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var one struct {
		Candidate candidate.Candidate `json:"candidate"`
		Result    *resultJSON         `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body, &one))
	assert.Equal(t, "Ana", one.Candidate.FirstName)
	require.NotNil(t, one.Result)
	assert.Equal(t, []string{"completed", "in-progress", "pending"}, states(*one.Result))

	resp, body = request(t, app, http.MethodGet, "/api/v1/candidates/2/stages", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"result":null`)

	resp, body = request(t, app, http.MethodGet, "/api/v1/candidates/404/stages", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), candidate.CodeCandidateNotFound)
}

func TestCandidatesStagesBatch(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/candidates/stages", `{"candidate_ids":["2","1"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Candidates []struct {
			Candidate candidate.Candidate `json:"candidate"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Candidates, 2)
	assert.Equal(t, kernel.CandidateID("2"), out.Candidates[0].Candidate.ID)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	resp, _ := request(t, app, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
