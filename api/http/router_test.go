package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cybersoft/talentmatch/api/http/handlers"
	"github.com/cybersoft/talentmatch/api/http/middleware"
	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/candidate"
	"github.com/cybersoft/talentmatch/pkg/health"
	"github.com/cybersoft/talentmatch/pkg/job"
	"github.com/cybersoft/talentmatch/pkg/matching"
	"github.com/cybersoft/talentmatch/pkg/record"
	"github.com/cybersoft/talentmatch/pkg/security/jwt"
)

type fakeCandidates struct {
	uploads []candidate.Upload
	err     error
	listed  [2]int
}

func (f *fakeCandidates) Analyse(_ context.Context, up candidate.Upload) (candidate.Profile, error) {
	f.uploads = append(f.uploads, up)
	if f.err != nil {
		return candidate.Profile{}, f.err
	}
	return candidate.Profile{CandidateID: 1, CandidateName: "Jane Doe", TechnicalSkill: record.List{"Go"}}, nil
}

func (f *fakeCandidates) Get(_ context.Context, id int64) (candidate.Profile, error) {
	if id != 1 {
		return candidate.Profile{}, apperr.New(apperr.ErrNotFound, "Candidate with candidate_id 99 not found")
	}
	return candidate.Profile{CandidateID: 1, CandidateName: "Jane Doe"}, nil
}

func (f *fakeCandidates) List(_ context.Context, limit, offset int) ([]candidate.Profile, error) {
	f.listed = [2]int{limit, offset}
	return []candidate.Profile{}, nil
}

func (f *fakeCandidates) Delete(_ context.Context, id int64) error {
	if id != 1 {
		return apperr.New(apperr.ErrNotFound, "Candidate with candidate_id 2 not found")
	}
	return nil
}

type fakeJobs struct{ err error }

func (f *fakeJobs) Analyse(_ context.Context, req job.Request) (job.Description, error) {
	if f.err != nil {
		return job.Description{}, f.err
	}
	return job.Description{JobID: 3, JobName: req.JobName}, nil
}

func (f *fakeJobs) Get(_ context.Context, id int64) (job.Description, error) {
	return job.Description{JobID: id, JobName: "Backend Engineer"}, nil
}

func (f *fakeJobs) List(context.Context, int, int) ([]job.Description, error) {
	return []job.Description{}, nil
}

func (f *fakeJobs) Delete(context.Context, int64) error { return nil }

type fakeMatchings struct {
	err error
}

func (f *fakeMatchings) Analyse(_ context.Context, req matching.Request) (matching.Analysis, error) {
	if f.err != nil {
		return matching.Analysis{}, f.err
	}
	return matching.Analysis{CandidateID: req.CandidateID, JobID: req.JobID, Score: 87.5}, nil
}

func (f *fakeMatchings) Get(_ context.Context, jobID, candidateID int64) (matching.Analysis, error) {
	return matching.Analysis{JobID: jobID, CandidateID: candidateID, Score: 60}, nil
}

func (f *fakeMatchings) ListByJob(context.Context, int64, int, int) ([]matching.Analysis, error) {
	return []matching.Analysis{}, nil
}

func (f *fakeMatchings) Delete(context.Context, int64, int64) error { return nil }

type fakeReady struct{ err error }

func (f fakeReady) Ready(context.Context) error { return f.err }

func (f fakeReady) Report(context.Context) health.Report {
	if f.err != nil {
		return health.Report{Checks: map[string]string{"postgres": f.err.Error()}}
	}
	return health.Report{Ready: true, Checks: map[string]string{"postgres": health.StatusOK}}
}

type fixture struct {
	app        *fiber.App
	candidates *fakeCandidates
	jobs       *fakeJobs
	matchings  *fakeMatchings
	logs       *observer.ObservedLogs
}

func newFixture(t *testing.T, guard fiber.Handler, ready error) *fixture {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	f := &fixture{
		candidates: &fakeCandidates{},
		jobs:       &fakeJobs{},
		matchings:  &fakeMatchings{},
		logs:       logs,
	}
	f.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	f.app.Use(middleware.RequestLogger(log))
	Register(f.app, Handlers{
		Health:    handlers.NewHealthHandler(fakeReady{err: ready}, "Cybersoft CV Matching"),
		Candidate: handlers.NewCandidateHandler(f.candidates, log, 1024),
		Job:       handlers.NewJobHandler(f.jobs, log),
		Matching:  handlers.NewMatchingHandler(f.matchings, log),
	}, guard)
	return f
}

func (f *fixture) do(t *testing.T, method, target, contentType string, body io.Reader) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func detailOf(t *testing.T, body []byte) string {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(body, &env))
	s, _ := env["detail"].(string)
	return s
}

func multipartBody(t *testing.T, filename string, content []byte) (string, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return w.FormDataContentType(), buf
}

func TestRootAndHealthEndpoints(t *testing.T) {
	f := newFixture(t, nil, nil)

	status, body := f.do(t, fiber.MethodGet, "/", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"Message":"Welcome to Cybersoft CV Matching"}`, string(body))

	status, body = f.do(t, fiber.MethodGet, "/healthz", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "true", string(body))

	status, body = f.do(t, fiber.MethodGet, "/ready", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"ready":true,"checks":{"postgres":"ok"}}`, string(body))

	down := newFixture(t, nil, errors.New("connection refused"))
	status, body = down.do(t, fiber.MethodGet, "/ready", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.JSONEq(t, `{"ready":false,"checks":{"postgres":"connection refused"}}`, string(body))
}

func TestUnknownRouteUsesDetailEnvelope(t *testing.T) {
	f := newFixture(t, nil, nil)

	status, body := f.do(t, fiber.MethodGet, "/candidate/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Cannot GET /candidate/nope", detailOf(t, body))
}

func TestCandidateRoutes(t *testing.T) {
	f := newFixture(t, nil, nil)

	ct, buf := multipartBody(t, "jane.txt", []byte("Jane Doe, Go developer"))
	status, body := f.do(t, fiber.MethodPost, "/candidate/analyse", ct, buf)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var p candidate.Profile
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, int64(1), p.CandidateID)
	require.Len(t, f.candidates.uploads, 1)
	assert.Equal(t, "jane.txt", f.candidates.uploads[0].Filename)
	assert.Equal(t, []byte("Jane Doe, Go developer"), f.candidates.uploads[0].Data)

	status, body = f.do(t, fiber.MethodGet, "/candidate/get_candidate/99", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Candidate with candidate_id 99 not found", detailOf(t, body))

	status, body = f.do(t, fiber.MethodGet, "/candidate/get_candidate/abc", "", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "candidate_id must be a positive integer", detailOf(t, body))

	status, body = f.do(t, fiber.MethodGet, "/candidate/get_all_candidates?limit=500&offset=4", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, [2]int{200, 4}, f.candidates.listed)

	status, body = f.do(t, fiber.MethodDelete, "/candidate/delete_candidate/1", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Candidate deleted successfully", detailOf(t, body))
}

func TestCandidateUploadErrors(t *testing.T) {
	f := newFixture(t, nil, nil)

	status, body := f.do(t, fiber.MethodPost, "/candidate/analyse", "", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "file is required", detailOf(t, body))

	ct, buf := multipartBody(t, "big.txt", bytes.Repeat([]byte("a"), 2048))
	status, body = f.do(t, fiber.MethodPost, "/candidate/analyse", ct, buf)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "file too large: limit is 1024 bytes", detailOf(t, body))
	assert.Empty(t, f.candidates.uploads)

	f.candidates.err = apperr.New(apperr.ErrUnsupported, "Unsupported file type: .png")
	ct, buf = multipartBody(t, "cv.png", []byte{0x89, 'P', 'N', 'G'})
	status, body = f.do(t, fiber.MethodPost, "/candidate/analyse", ct, buf)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, status)
	assert.Equal(t, "Unsupported file type: .png", detailOf(t, body))
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"connection", apperr.Wrap(apperr.ErrConnection, errors.New("dial tcp"), "Error connecting to the Database"), fiber.StatusBadRequest, "Error connecting to the Database"},
		{"validation", apperr.New(apperr.ErrValidation, "Referenced record does not exist"), fiber.StatusUnprocessableEntity, "Referenced record does not exist"},
		{"conflict", apperr.New(apperr.ErrConflict, "Record already exists"), fiber.StatusConflict, "Record already exists"},
		{"timeout", apperr.Wrap(apperr.ErrTimeout, context.DeadlineExceeded, "Analysis timed out"), fiber.StatusGatewayTimeout, "Analysis timed out"},
		{"analysis", apperr.New(apperr.ErrAnalysis, "Analysis service failed"), fiber.StatusBadGateway, "Analysis service failed"},
		{"persistence", apperr.Wrap(apperr.ErrPersistence, errors.New("value too long for type character varying(10)"), "An error occurred while inserting data into the database"), fiber.StatusInternalServerError, "An error occurred while inserting data into the database: value too long for type character varying(10)"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "Internal server error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, nil)
			f.matchings.err = tt.err
			status, body := f.do(t, fiber.MethodPost, "/matching/analyse", fiber.MIMEApplicationJSON,
				strings.NewReader(`{"candidate":{"candidate_id":1},"job":{"job_id":"2"}}`))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.detail, detailOf(t, body))
		})
	}
}

func TestServerErrorsAreLogged(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.jobs.err = apperr.Wrap(apperr.ErrPersistence, errors.New("disk full"), "An error occurred while inserting data into the database")

	status, body := f.do(t, fiber.MethodPost, "/job/analyse", fiber.MIMEApplicationJSON, strings.NewReader(`{"job_name":"SRE"}`))
	require.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "An error occurred while inserting data into the database: disk full", detailOf(t, body))

	failed := f.logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].ContextMap()["error"], "disk full")
	assert.Equal(t, 1, f.logs.FilterMessage("http request").FilterField(zap.Int("status", 500)).Len())
}

func TestJobRoutes(t *testing.T) {
	f := newFixture(t, nil, nil)

	status, body := f.do(t, fiber.MethodPost, "/job/analyse", fiber.MIMEApplicationJSON,
		strings.NewReader(`{"job_name":"Backend Engineer","requirements":"Go, PostgreSQL"}`))
	require.Equal(t, fiber.StatusOK, status)
	var d job.Description
	require.NoError(t, json.Unmarshal(body, &d))
	assert.Equal(t, "Backend Engineer", d.JobName)
	assert.Equal(t, int64(3), d.JobID)

	status, _ = f.do(t, fiber.MethodPost, "/job/analyse", fiber.MIMEApplicationJSON, strings.NewReader(`{"requirements":"Go"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body = f.do(t, fiber.MethodGet, "/job/get_all_jobs", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "[]", string(body))

	status, body = f.do(t, fiber.MethodDelete, "/job/delete_job/3", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Job deleted successfully", detailOf(t, body))
}

func TestMatchingRoutes(t *testing.T) {
	f := newFixture(t, nil, nil)

	status, body := f.do(t, fiber.MethodPost, "/matching/analyse", fiber.MIMEApplicationJSON,
		strings.NewReader(`{"candidate":{"candidate_id":5,"candidate_name":"Jane"},"job":{"job_id":2}}`))
	require.Equal(t, fiber.StatusOK, status)
	var a matching.Analysis
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, int64(5), a.CandidateID)
	assert.Equal(t, int64(2), a.JobID)
	assert.Equal(t, 87.5, a.Score)

	status, _ = f.do(t, fiber.MethodPost, "/matching/analyse", fiber.MIMEApplicationJSON, strings.NewReader(`{"candidate":{}}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body = f.do(t, fiber.MethodGet, "/matching/get_matchings/2", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "[]", string(body))

	status, body = f.do(t, fiber.MethodGet, "/matching/get_matching?job_id=2&candidate_id=5", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, 60.0, a.Score)

	status, body = f.do(t, fiber.MethodGet, "/matching/get_matching?job_id=2", "", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "candidate_id is required", detailOf(t, body))

	status, body = f.do(t, fiber.MethodDelete, "/matching/delete_matching?job_id=2&candidate_id=5", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Analysis for job_id 2 and candidate_id 5 deleted successfully.", detailOf(t, body))
}

func TestGuardProtectsResourceGroups(t *testing.T) {
	f := newFixture(t, jwt.NewAuthMiddleware("s3cret", "talentmatch"), nil)

	status, _ := f.do(t, fiber.MethodGet, "/healthz", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = f.do(t, fiber.MethodGet, "/job/get_all_jobs", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	token, err := jwt.NewGenerator("s3cret", "talentmatch", time.Hour).Generate("ops")
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodGet, "/job/get_all_jobs", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, nil, nil)

	req := httptest.NewRequest(fiber.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))

	resp, err = f.app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(middleware.HeaderRequestID), 36)
}
