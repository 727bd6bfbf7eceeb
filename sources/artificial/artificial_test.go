package artificial

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chokwadi/sources/configuration"
	"chokwadi/sources/persistence/entities"
	"chokwadi/sources/routing"
	"chokwadi/sources/tracing"
)

func testConfig() *configuration.Config {
	return &configuration.Config{
		AI: configuration.AIConfig{
			AnthropicToken:    "test-anthropic-key",
			AnthropicModel:    "claude-sonnet-4-20250514",
			OpenAIToken:       "test-openai-key",
			OpenAIChatModel:   "gpt-4o",
			WhisperModel:      "whisper-1",
			MaxResponseTokens: 1024,
			PromptTokenBudget: 6000,
			Pricing: map[string]configuration.ModelPricing{
				"claude-sonnet-4-20250514": {InputPerM: "3.00", OutputPerM: "15.00"},
				"gpt-4o":                   {InputPerM: "2.50", OutputPerM: "10.00"},
			},
		},
	}
}

func TestCostFor(t *testing.T) {
	log := tracing.NewConsoleLogger()
	analyzer := &Analyzer{config: testConfig()}

	tests := []struct {
		name       string
		completion Completion
		want       string
	}{
		{
			"claude pricing",
			Completion{Model: "claude-sonnet-4-20250514", InputTokens: 1_000_000, OutputTokens: 1_000_000},
			"18",
		},
		{
			"gpt pricing small",
			Completion{Model: "gpt-4o", InputTokens: 1000, OutputTokens: 500},
			"0.0075",
		},
		{
			"unknown model is free",
			Completion{Model: "mystery", InputTokens: 1000, OutputTokens: 1000},
			"0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.costFor(log, &tt.completion)
			if got.String() != tt.want {
				t.Errorf("costFor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildInvocation(t *testing.T) {
	log := tracing.NewConsoleLogger()
	analyzer := &Analyzer{config: testConfig()}

	t.Run("text uses base system prompt", func(t *testing.T) {
		inv := analyzer.buildInvocation(log, &AnalysisRequest{Kind: routing.KindText, Content: "is this true?"})
		if inv.System != SystemPrompt {
			t.Error("text analysis should use the base system prompt")
		}
		if inv.User != "is this true?" {
			t.Errorf("user content altered: %q", inv.User)
		}
		if inv.MaxTokens != 1024 {
			t.Errorf("MaxTokens = %d, want 1024", inv.MaxTokens)
		}
	})

	t.Run("voice gets transcription preamble", func(t *testing.T) {
		inv := analyzer.buildInvocation(log, &AnalysisRequest{Kind: routing.KindVoice, Content: "mari yemahara"})
		if !strings.HasPrefix(inv.User, VoiceNoteContext) {
			t.Error("voice content should carry the transcription preamble")
		}
		if !strings.HasSuffix(inv.User, "mari yemahara") {
			t.Error("transcribed text should follow the preamble")
		}
	})

	t.Run("link appends scan findings and link prompt", func(t *testing.T) {
		inv := analyzer.buildInvocation(log, &AnalysisRequest{
			Kind:    routing.KindLink,
			Content: "https://ecocash-promo.com/win",
			Scan:    "Technical risk level: CRITICAL",
		})
		if !strings.Contains(inv.System, LinkAnalysisPrompt) {
			t.Error("link analysis should extend the system prompt")
		}
		if !strings.Contains(inv.User, "Technical risk level: CRITICAL") {
			t.Error("scan findings should be part of the user content")
		}
	})

	t.Run("image gets context preamble", func(t *testing.T) {
		inv := analyzer.buildInvocation(log, &AnalysisRequest{
			Kind:  routing.KindImage,
			Image: &ImagePayload{Data: []byte{0x1}, MimeType: "image/jpeg"},
		})
		if !strings.HasPrefix(inv.User, ImageContext) {
			t.Error("image content should carry the image preamble")
		}
		if inv.Image == nil {
			t.Error("image payload should pass through")
		}
	})
}

func TestAnthropicComplete(t *testing.T) {
	log := tracing.NewConsoleLogger()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-anthropic-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("anthropic-version header missing")
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.System == "" {
			t.Error("system prompt should be a top level field")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"model":   req.Model,
			"content": []map[string]any{{"type": "text", "text": "🟢 Credibility Score: 8/10"}},
			"usage":   map[string]int{"input_tokens": 120, "output_tokens": 40},
		})
	}))
	defer server.Close()

	provider := NewAnthropicProvider(server.Client(), testConfig())
	provider.baseURL = server.URL

	completion, err := provider.Complete(context.Background(), log, &Invocation{
		System:    SystemPrompt,
		User:      "check this",
		MaxTokens: 1024,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if !strings.Contains(completion.Text, "Credibility Score") {
		t.Errorf("unexpected text %q", completion.Text)
	}
	if completion.TotalTokens() != 160 {
		t.Errorf("TotalTokens() = %d, want 160", completion.TotalTokens())
	}
}

func TestAnthropicCompleteAPIError(t *testing.T) {
	log := tracing.NewConsoleLogger()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "rate_limit_error", "message": "overloaded"},
		})
	}))
	defer server.Close()

	provider := NewAnthropicProvider(server.Client(), testConfig())
	provider.baseURL = server.URL

	_, err := provider.Complete(context.Background(), log, &Invocation{User: "x", MaxTokens: 10})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "rate_limit_error") {
		t.Errorf("error should carry the API error type: %v", err)
	}
}

func TestProviderFailureError(t *testing.T) {
	fallback := routing.ProviderOpenAI
	primaryErr := errors.New("anthropic down")
	fallbackErr := errors.New("openai down")

	t.Run("no fallback attempted", func(t *testing.T) {
		err := &ProviderFailureError{Primary: routing.ProviderAnthropic, PrimaryErr: primaryErr}
		if !strings.Contains(err.Error(), "no fallback attempted") {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, primaryErr) {
			t.Error("should unwrap to the primary error")
		}
	})

	t.Run("fallback exhausted", func(t *testing.T) {
		err := &ProviderFailureError{
			Primary:      routing.ProviderAnthropic,
			PrimaryErr:   primaryErr,
			Fallback:     &fallback,
			FallbackErr:  fallbackErr,
			FallbackUsed: true,
		}
		if !strings.Contains(err.Error(), "openai") {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, fallbackErr) {
			t.Error("should unwrap to the fallback error")
		}
	})
}

// scriptedProvider stands in for a real provider client: it counts calls and
// either fails with a fixed error or answers with a fixed completion.
type scriptedProvider struct {
	calls int
	err   error
}

func (p *scriptedProvider) Complete(ctx context.Context, logger *tracing.Logger, inv *Invocation) (*Completion, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &Completion{Text: "verdict", Model: "gpt-4o", InputTokens: 1000, OutputTokens: 500}, nil
}

func (p *scriptedProvider) SupportsVision() bool { return true }

type capturedReports struct {
	saved []*entities.Report
}

func (c *capturedReports) SaveReport(logger *tracing.Logger, report *entities.Report) error {
	c.saved = append(c.saved, report)
	return nil
}

type countingMeter struct {
	fallbacks int
}

func (m *countingMeter) RecordProviderRequest(provider, outcome string)                  {}
func (m *countingMeter) RecordFallbackEngaged()                                          { m.fallbacks++ }
func (m *countingMeter) RecordUsage(tokens int, cost float64, model string)              {}
func (m *countingMeter) ObserveProviderRequestDuration(provider string, seconds float64) {}

func TestAnalyzeFallbackExecution(t *testing.T) {
	log := tracing.NewConsoleLogger()
	fallback := routing.ProviderOpenAI

	newAnalyzer := func(primary, secondary provider) (*Analyzer, *capturedReports, *countingMeter) {
		reports := &capturedReports{}
		meter := &countingMeter{}
		analyzer := &Analyzer{
			providers: map[routing.Provider]provider{
				routing.ProviderAnthropic: primary,
				routing.ProviderOpenAI:    secondary,
			},
			config:  testConfig(),
			metrics: meter,
			reports: reports,
		}
		return analyzer, reports, meter
	}

	req := &AnalysisRequest{Kind: routing.KindText, SenderHash: "a1b2c3d4e5f6a7b8", Content: "is this claim true?"}

	t.Run("primary success skips the fallback", func(t *testing.T) {
		primary := &scriptedProvider{}
		secondary := &scriptedProvider{}
		analyzer, reports, meter := newAnalyzer(primary, secondary)

		analysis, err := analyzer.Analyze(log, &routing.Decision{Primary: routing.ProviderAnthropic, Fallback: &fallback}, req)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if primary.calls != 1 || secondary.calls != 0 {
			t.Errorf("calls = %d primary, %d fallback, want 1 and 0", primary.calls, secondary.calls)
		}
		if analysis.FallbackUsed || analysis.Provider != routing.ProviderAnthropic {
			t.Errorf("analysis = %+v, want primary result without fallback", analysis)
		}
		if meter.fallbacks != 0 {
			t.Errorf("fallback engagements = %d, want 0", meter.fallbacks)
		}
		if len(reports.saved) != 1 || !reports.saved[0].Succeeded {
			t.Errorf("reports = %+v, want one successful report", reports.saved)
		}
	})

	t.Run("primary failure retries the fallback exactly once", func(t *testing.T) {
		primary := &scriptedProvider{err: errors.New("anthropic down")}
		secondary := &scriptedProvider{}
		analyzer, reports, meter := newAnalyzer(primary, secondary)

		analysis, err := analyzer.Analyze(log, &routing.Decision{Primary: routing.ProviderAnthropic, Fallback: &fallback}, req)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if primary.calls != 1 || secondary.calls != 1 {
			t.Errorf("calls = %d primary, %d fallback, want 1 and 1", primary.calls, secondary.calls)
		}
		if !analysis.FallbackUsed || analysis.Provider != routing.ProviderOpenAI {
			t.Errorf("analysis = %+v, want fallback result", analysis)
		}
		if meter.fallbacks != 1 {
			t.Errorf("fallback engagements = %d, want 1", meter.fallbacks)
		}
		if len(reports.saved) != 1 || !reports.saved[0].FallbackUsed {
			t.Errorf("reports = %+v, want one fallback-marked report", reports.saved)
		}
	})

	t.Run("both providers failing surfaces both errors", func(t *testing.T) {
		primaryErr := errors.New("anthropic down")
		fallbackErr := errors.New("openai down")
		primary := &scriptedProvider{err: primaryErr}
		secondary := &scriptedProvider{err: fallbackErr}
		analyzer, reports, _ := newAnalyzer(primary, secondary)

		_, err := analyzer.Analyze(log, &routing.Decision{Primary: routing.ProviderAnthropic, Fallback: &fallback}, req)
		var failure *ProviderFailureError
		if !errors.As(err, &failure) {
			t.Fatalf("Analyze() error = %v, want *ProviderFailureError", err)
		}
		if !errors.Is(failure.PrimaryErr, primaryErr) || !errors.Is(failure.FallbackErr, fallbackErr) {
			t.Errorf("failure = %v, want both underlying errors preserved", failure)
		}
		if !failure.FallbackUsed {
			t.Error("failure should record that the fallback was attempted")
		}
		if secondary.calls != 1 {
			t.Errorf("fallback calls = %d, want exactly 1", secondary.calls)
		}
		if len(reports.saved) != 1 || reports.saved[0].Succeeded {
			t.Errorf("reports = %+v, want one failure report", reports.saved)
		}
	})

	t.Run("single provider decision never retries", func(t *testing.T) {
		primary := &scriptedProvider{err: errors.New("anthropic down")}
		secondary := &scriptedProvider{}
		analyzer, reports, _ := newAnalyzer(primary, secondary)

		_, err := analyzer.Analyze(log, &routing.Decision{Primary: routing.ProviderAnthropic}, req)
		var failure *ProviderFailureError
		if !errors.As(err, &failure) {
			t.Fatalf("Analyze() error = %v, want *ProviderFailureError", err)
		}
		if failure.FallbackUsed || failure.Fallback != nil {
			t.Errorf("failure = %+v, want no fallback attempt", failure)
		}
		if primary.calls != 1 || secondary.calls != 0 {
			t.Errorf("calls = %d primary, %d fallback, want 1 and 0", primary.calls, secondary.calls)
		}
		if len(reports.saved) != 1 || reports.saved[0].FallbackUsed {
			t.Errorf("reports = %+v, want one primary-only failure report", reports.saved)
		}
	})
}
