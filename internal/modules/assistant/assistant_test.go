package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/georgemunganga/gastrotech-backend/internal/fixtures"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/assistant"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// fakeModel records the last request and answers with reply or err.
type fakeModel struct {
	reply       string
	err         error
	calls       int
	system      string
	prompt      string
	temperature float64
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	m.temperature = opts.Temperature
	for _, msg := range messages {
		text := msg.Parts[0].(llms.TextContent).Text
		switch msg.Role {
		case schema.ChatMessageTypeSystem:
			m.system = text
		case schema.ChatMessageTypeHuman:
			m.prompt = text
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func newService(t *testing.T, gen assistant.Generator) assistant.Service {
	t.Helper()
	stores, err := fixtures.Memory(context.Background(), time.Now())
	require.NoError(t, err)
	orders := order.NewService(stores.Orders, events.NewRecorder(), logger.Discard())
	return assistant.NewService(gen, orders, stores.Menu, logger.Discard())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{"single", `Plat "{{dishName}}"`, map[string]string{"dishName": "Tiramisu"}, `Plat "Tiramisu"`},
		{"every occurrence", "{{a}} et {{a}}", map[string]string{"a": "x"}, "x et x"},
		{"spaces inside braces", "{{ theme }}", map[string]string{"theme": "été"}, "été"},
		{"unknown left alone", "{{a}} {{b}}", map[string]string{"a": "1"}, "1 {{b}}"},
		{"no placeholders", "texte", nil, "texte"},
		{"value with braces is not re-expanded", "{{a}}", map[string]string{"a": "{{b}}", "b": "2"}, "{{b}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assistant.Render(tt.template, tt.values))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"menuItems", "orders"}, assistant.Placeholders("{{menuItems}} {{orders}} {{ menuItems }}"))
	assert.Empty(t, assistant.Placeholders("rien"))
}

func TestGenerateWithoutCredential(t *testing.T) {
	svc := newService(t, nil)

	res, err := svc.Generate(context.Background(), assistant.GenerateRequest{UseCase: assistant.UseCaseIdeas})
	require.NoError(t, err)
	assert.Equal(t, assistant.NotConfiguredMessage, res.Text)
	assert.False(t, res.Configured)
}

func TestGenerateSendsProfile(t *testing.T) {
	tests := []struct {
		uc          assistant.UseCase
		temperature float64
	}{
		{assistant.UseCaseIdeas, 0.8},
		{assistant.UseCaseDescription, 0.7},
		{assistant.UseCaseForecast, 0.6},
		{assistant.UseCaseOptimization, 0.6},
		{assistant.UseCaseDailySummary, 0.5},
		{assistant.UseCaseReviews, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.uc), func(t *testing.T) {
			model := &fakeModel{reply: "réponse"}
			svc := newService(t, assistant.NewLLMGenerator(model))

			res, err := svc.Generate(context.Background(), assistant.GenerateRequest{UseCase: tt.uc})
			require.NoError(t, err)
			assert.Equal(t, "réponse", res.Text)
			assert.True(t, res.Configured)
			assert.Equal(t, 1, model.calls)
			assert.Equal(t, tt.temperature, model.temperature)
			assert.NotEmpty(t, model.system)
		})
	}
}

func TestGenerateRendersValuesAndCustomTemplate(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc := newService(t, assistant.NewLLMGenerator(model))

	_, err := svc.Generate(context.Background(), assistant.GenerateRequest{
		UseCase: assistant.UseCaseIdeas,
		Values:  map[string]string{"theme": "cuisine d'automne"},
	})
	require.NoError(t, err)
	assert.Contains(t, model.prompt, `"cuisine d'automne"`)
	assert.NotContains(t, model.prompt, "{{")

	_, err = svc.Generate(context.Background(), assistant.GenerateRequest{
		UseCase:  assistant.UseCaseReviews,
		Template: "Résume : {{reviews}} / {{reviews}}",
		Values:   map[string]string{"reviews": "Très bon"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Résume : Très bon / Très bon", model.prompt)
}

func TestGenerateFillsDataSnapshots(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc := newService(t, assistant.NewLLMGenerator(model))

	_, err := svc.Generate(context.Background(), assistant.GenerateRequest{
		UseCase:  assistant.UseCaseOptimization,
		Template: "{{menuItems}}\n---\n{{orders}}",
	})
	require.NoError(t, err)

	parts := strings.SplitN(model.prompt, "\n---\n", 2)
	require.Len(t, parts, 2)

	var menuRows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(parts[0]), &menuRows))
	assert.Len(t, menuRows, 10)
	assert.Equal(t, "Bruschetta Classique", menuRows[0]["name"])

	var orderRows []struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(parts[1]), &orderRows))
	assert.Len(t, orderRows, 10)
}

func TestDailySummarySnapshot(t *testing.T) {
	model := &fakeModel{reply: "résumé"}
	svc := newService(t, assistant.NewLLMGenerator(model))

	res, err := svc.DailySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "résumé", res.Text)
	assert.Contains(t, model.prompt, `"items": "2x Burger Gourmet, 2x Mojito Royal"`)
}

func TestGenerateFailure(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	svc := newService(t, assistant.NewLLMGenerator(model))
	ctx := context.Background()

	_, err := svc.Generate(ctx, assistant.GenerateRequest{UseCase: assistant.UseCaseForecast, Values: map[string]string{"period": "la semaine prochaine"}})
	assert.ErrorIs(t, err, assistant.ErrGeneration)
	assert.Equal(t, assistant.FailureMessage, err.Error())

	_, err = svc.DailySummary(ctx)
	assert.ErrorIs(t, err, assistant.ErrSummary)

	_, err = svc.DescribeDish(ctx, "Tiramisu")
	assert.ErrorIs(t, err, assistant.ErrGeneration)
}

func TestUnknownUseCase(t *testing.T) {
	_, err := assistant.ParseUseCase("poetry")
	assert.ErrorIs(t, err, assistant.ErrUnknownUseCase)

	uc, err := assistant.ParseUseCase(" Daily_Summary ")
	require.NoError(t, err)
	assert.Equal(t, assistant.UseCaseDailySummary, uc)
}

func TestHandler(t *testing.T) {
	model := &fakeModel{reply: "idées"}
	r := chi.NewRouter()
	assistant.NewHandler(newService(t, assistant.NewLLMGenerator(model))).RegisterRoutes(r)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/v1/assistant/ideas", `{"values":{"theme":"mer"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"text":"idées"`)

	w = do(http.MethodPost, "/api/v1/assistant/ideas", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodPost, "/api/v1/assistant/poetry", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(http.MethodGet, "/api/v1/assistant/templates", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"daily_summary"`)

	model.err = errors.New("boom")
	w = do(http.MethodPost, "/api/v1/assistant/daily-summary", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Impossible de générer")
}
