package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/cybersoft/talentmatch/pkg/config"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	return f.resp, f.err
}

func reply(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}}},
	}
}

func TestAskRequestsJSON(t *testing.T) {
	fake := &fakeModels{resp: reply(
		&genai.Part{Text: "thinking...", Thought: true},
		&genai.Part{Text: ` {"degree":["BSc"]} `},
	)}
	c := newWithGenerator(fake, "")

	out, err := c.Ask(context.Background(), "You are a recruiter.", "CV text")
	require.NoError(t, err)

	assert.Equal(t, `{"degree":["BSc"]}`, out)
	assert.Equal(t, defaultModel, fake.model)
	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	require.NotNil(t, fake.config.SystemInstruction)
	assert.Equal(t, "You are a recruiter.", fake.config.SystemInstruction.Parts[0].Text)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "CV text", fake.contents[0].Parts[0].Text)
}

func TestAskErrors(t *testing.T) {
	tests := []struct {
		name   string
		fake   *fakeModels
		prompt string
		want   string
	}{
		{name: "empty prompt", fake: &fakeModels{}, prompt: "  ", want: "prompt must not be empty"},
		{name: "api error", fake: &fakeModels{err: errors.New("quota")}, prompt: "x", want: "generate content: quota"},
		{name: "nil response", fake: &fakeModels{}, prompt: "x", want: "no response"},
		{name: "empty parts", fake: &fakeModels{resp: reply(&genai.Part{Text: "  "})}, prompt: "x", want: "empty response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newWithGenerator(tt.fake, "gemini-2.5-pro").Ask(context.Background(), "", tt.prompt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), config.GeminiConfig{Model: "gemini-2.5-flash"})
	assert.Error(t, err)
}
