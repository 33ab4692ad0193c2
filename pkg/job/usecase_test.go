package job

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/record"
)

type memRepo struct {
	rows []Description
}

func (r *memRepo) Create(_ context.Context, d Description) (Description, error) {
	d.JobID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, d)
	return d, nil
}

func (r *memRepo) Get(_ context.Context, id int64) (Description, error) {
	for _, d := range r.rows {
		if d.JobID == id {
			return d, nil
		}
	}
	return Description{}, apperr.New(apperr.ErrNotFound, "Job not found")
}

func (r *memRepo) List(context.Context, int, int) ([]Description, error) {
	return append([]Description{}, r.rows...), nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	for i, d := range r.rows {
		if d.JobID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.ErrNotFound, "Job not found")
}

type stubAnalyzer struct {
	reply string
	got   json.RawMessage
}

func (a *stubAnalyzer) AnalyseJob(_ context.Context, data json.RawMessage) (json.RawMessage, error) {
	a.got = data
	return json.RawMessage(a.reply), nil
}

func TestAnalyseEmptyCertificateRoundTrip(t *testing.T) {
	repo := &memRepo{}
	an := &stubAnalyzer{reply: `{
		"certificate": [],
		"degree": ["BSc"],
		"experience": ["3y Go"],
		"responsibility": ["build APIs"],
		"soft_skill": [],
		"technical_skill": ["Go", "PostgreSQL"]
	}`}
	svc := NewService(repo, an)

	body := []byte(`{"job_name":"Backend Engineer","description":"Go services"}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)

	created, err := svc.Analyse(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", created.JobName)
	assert.JSONEq(t, string(body), string(an.got))

	got, err := svc.Get(context.Background(), created.JobID)
	require.NoError(t, err)
	assert.Equal(t, record.List{}, got.Certificate)
	assert.Equal(t, record.List{"Go", "PostgreSQL"}, got.TechnicalSkill)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"certificate":[]`)
}

func TestAnalyseValidation(t *testing.T) {
	svc := NewService(&memRepo{}, &stubAnalyzer{})

	_, err := svc.Analyse(context.Background(), Request{JobName: "   "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAnalyseMissingField(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &stubAnalyzer{reply: `{"certificate":[],"degree":[]}`})

	_, err := svc.Analyse(context.Background(), Request{JobName: "QA"})
	assert.ErrorIs(t, err, apperr.ErrAnalysis)
	assert.Empty(t, repo.rows)
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"job_name":"QA"}`},
		{name: "missing job_name", body: `{"title":"QA"}`, wantErr: true},
		{name: "not an object", body: `["QA"]`, wantErr: true},
		{name: "wrong type", body: `{"job_name":5}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDeleteTwice(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &stubAnalyzer{})
	d, _ := repo.Create(context.Background(), Description{JobName: "QA"})

	require.NoError(t, svc.Delete(context.Background(), d.JobID))
	assert.ErrorIs(t, svc.Delete(context.Background(), d.JobID), apperr.ErrNotFound)
}
