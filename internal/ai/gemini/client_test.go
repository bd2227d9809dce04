package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu      sync.Mutex
	queue   []fakeResponse
	models  []string
	prompts []string
	configs []*genai.GenerateContentConfig
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	f.models = append(f.models, model)
	f.configs = append(f.configs, cfg)
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	}
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func noSleep(t *testing.T) *int {
	t.Helper()
	calls := 0
	original := sleep
	sleep = func(context.Context, time.Duration) error { calls++; return nil }
	t.Cleanup(func() { sleep = original })
	return &calls
}

func TestGenerator_ConcatenatesParts(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse(" {\"a\":", "", "1} "), nil)

	g := &Generator{models: models, model: "gemini-test", logger: zap.NewNop()}
	out, err := g.GenerateContent(context.Background(), "  describe  ")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":\n1}", out)
	assert.Equal(t, []string{"gemini-test"}, models.models)
	assert.Equal(t, []string{"describe"}, models.prompts)
	assert.Equal(t, "application/json", models.configs[0].ResponseMIMEType)
}

func TestGenerator_EmptyResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("  "), nil)

	g := &Generator{models: models, model: "m", logger: zap.NewNop()}
	_, err := g.GenerateContent(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerator_RetriesOnTemporaryError(t *testing.T) {
	slept := noSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(nil, genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"})
	models.enqueue(textResponse("retry ok"), nil)

	g := &Generator{models: models, model: "m", maxRetries: 2, logger: zap.NewNop()}
	out, err := g.GenerateContent(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "retry ok", out)
	assert.Len(t, models.models, 3)
	assert.Equal(t, 2, *slept)
}

func TestGenerator_StopsAfterRetriesExhausted(t *testing.T) {
	noSleep(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := &Generator{models: models, model: "m", maxRetries: 1, logger: zap.NewNop()}
	_, err := g.GenerateContent(context.Background(), "p")
	require.Error(t, err)
	assert.Len(t, models.models, 2)
}

func TestGenerator_NoRetryByDefault(t *testing.T) {
	slept := noSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError})

	g := &Generator{models: models, model: "m", logger: zap.NewNop()}
	_, err := g.GenerateContent(context.Background(), "p")
	require.Error(t, err)
	assert.Len(t, models.models, 1)
	assert.Zero(t, *slept)
}

func TestGenerator_DoesNotRetryClientErrors(t *testing.T) {
	noSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := &Generator{models: models, model: "m", maxRetries: 3, logger: zap.NewNop()}
	_, err := g.GenerateContent(context.Background(), "p")
	require.Error(t, err)
	assert.Len(t, models.models, 1)
}

func TestGenerator_NilIsNotInitialized(t *testing.T) {
	var g *Generator
	_, err := g.GenerateContent(context.Background(), "p")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, backoff(1))
	assert.Equal(t, time.Second, backoff(2))
	assert.Equal(t, maxBackoff, backoff(10))
	assert.Equal(t, maxBackoff, backoff(80))
}
