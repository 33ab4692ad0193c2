package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/metrics"
)

type fakeModel struct {
	reply  string
	err    error
	block  bool
	system string
	user   string
}

func (m *fakeModel) Ask(ctx context.Context, system, user string) (string, error) {
	m.system, m.user = system, user
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

func TestExtractObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  string
		ok    bool
	}{
		{name: "plain object", reply: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "fenced json", reply: "```json\n{\"a\":[\"x\"]}\n```", want: `{"a":["x"]}`, ok: true},
		{name: "bare fence", reply: "```\n{\"a\":1}\n```", want: `{"a":1}`, ok: true},
		{name: "chatter around", reply: "Sure! Here it is: {\"score\": 87.5} Hope it helps.", want: `{"score": 87.5}`, ok: true},
		{name: "no braces", reply: "I cannot help with that", ok: false},
		{name: "broken object", reply: `{"a": [1, }`, ok: false},
		{name: "array", reply: `[1,2]`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extractObject(tt.reply)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}

func TestAnalyseCandidateTruncatesInput(t *testing.T) {
	model := &fakeModel{reply: `{"candidate_name":"Jane Doe"}`}
	svc := NewService(model, time.Second, nil, nil)

	long := strings.Repeat("я", maxTextLen+500)
	raw, err := svc.AnalyseCandidate(context.Background(), long)
	require.NoError(t, err)
	assert.JSONEq(t, `{"candidate_name":"Jane Doe"}`, string(raw))

	assert.Equal(t, candidateSystem, model.system)
	assert.Equal(t, maxTextLen, strings.Count(model.user, "я"))
}

func TestAnalyseCandidateEmptyText(t *testing.T) {
	model := &fakeModel{}
	_, err := NewService(model, time.Second, nil, nil).AnalyseCandidate(context.Background(), " \n ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, model.user)
}

func TestAnalyseMatchingSendsBothRecords(t *testing.T) {
	model := &fakeModel{reply: `{"score": 50}`}
	svc := NewService(model, time.Second, nil, nil)

	_, err := svc.AnalyseMatching(context.Background(), []byte(`{"candidate_id":1}`), []byte(`{"job_id":2}`))
	require.NoError(t, err)
	assert.Contains(t, model.user, `{"candidate_id":1}`)
	assert.Contains(t, model.user, `{"job_id":2}`)
	assert.Equal(t, matchingSystem, model.system)
}

func TestAskFailures(t *testing.T) {
	tests := []struct {
		name     string
		model    *fakeModel
		wantKind error
		outcome  string
	}{
		{name: "model error", model: &fakeModel{err: errors.New("openrouter http 500")}, wantKind: apperr.ErrAnalysis, outcome: metrics.OutcomeError},
		{name: "no object", model: &fakeModel{reply: "sorry"}, wantKind: apperr.ErrAnalysis, outcome: metrics.OutcomeError},
		{name: "timeout", model: &fakeModel{block: true}, wantKind: apperr.ErrTimeout, outcome: metrics.OutcomeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			svc := NewService(tt.model, 20*time.Millisecond, zap.NewNop(), m)

			_, err := svc.AnalyseJob(context.Background(), []byte(`{"job_name":"QA"}`))
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(KindJob, tt.outcome)))
		})
	}
}

func TestMalformedReplyIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewService(&fakeModel{reply: strings.Repeat("x", 2000)}, time.Second, zap.New(core), nil)

	_, err := svc.AnalyseJob(context.Background(), []byte(`{}`))
	require.Error(t, err)

	entries := logs.FilterMessage("analysis reply has no JSON object").All()
	require.Len(t, entries, 1)
	reply := entries[0].ContextMap()["reply"].(string)
	assert.Len(t, reply, logReplySize+3)
}
