package artificial

import (
	"context"
	"time"

	"chokwadi/sources/configuration"
	"chokwadi/sources/metrics"
	"chokwadi/sources/persistence/entities"
	"chokwadi/sources/platform"
	"chokwadi/sources/repository"
	"chokwadi/sources/routing"
	"chokwadi/sources/texting/tokenizer"
	"chokwadi/sources/tracing"

	"github.com/shopspring/decimal"
)

// AnalysisRequest is everything the analyzer needs beyond the routed
// decision: the content itself plus the accounting identifiers.
type AnalysisRequest struct {
	Kind       routing.ContentKind
	SenderHash string
	Content    string
	Scan       string
	RiskLevel  *string
	Image      *ImagePayload
}

// reportSink and usageMeter narrow the repository and metrics surfaces to the
// calls the analyzer makes, so outcomes can be captured without a database.
type reportSink interface {
	SaveReport(logger *tracing.Logger, report *entities.Report) error
}

type usageMeter interface {
	RecordProviderRequest(provider, outcome string)
	RecordFallbackEngaged()
	RecordUsage(tokens int, cost float64, model string)
	ObserveProviderRequestDuration(provider string, seconds float64)
}

type Analyzer struct {
	providers map[routing.Provider]provider
	config    *configuration.Config
	metrics   usageMeter
	reports   reportSink
}

func NewAnalyzer(
	config *configuration.Config,
	anthropic *AnthropicProvider,
	openai *OpenAIProvider,
	metrics *metrics.MetricsService,
	reports *repository.ReportsRepository,
) *Analyzer {
	return &Analyzer{
		providers: map[routing.Provider]provider{
			routing.ProviderAnthropic: anthropic,
			routing.ProviderOpenAI:    openai,
		},
		config:  config,
		metrics: metrics,
		reports: reports,
	}
}

// Analyze executes a routed decision: one call to the primary provider, and
// at most one retry against the fallback when the primary fails. Every
// attempt lands in metrics; the final outcome lands in the reports table.
func (x *Analyzer) Analyze(logger *tracing.Logger, decision *routing.Decision, req *AnalysisRequest) (*Analysis, error) {
	defer tracing.ProfilePoint(logger, "Analysis completed", "artificial.analyzer.analyze", tracing.ContentKind, string(req.Kind))()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 3*time.Minute)
	defer cancel()

	inv := x.buildInvocation(logger, req)

	completion, err := x.invoke(ctx, logger, decision.Primary, inv)
	if err == nil {
		return x.conclude(logger, decision.Primary, completion, req, false)
	}

	if decision.Fallback == nil {
		x.persistFailure(logger, decision.Primary, req, false)
		return nil, &ProviderFailureError{Primary: decision.Primary, PrimaryErr: err}
	}

	logger.W("Primary provider failed, engaging fallback",
		tracing.AiProvider, string(decision.Primary),
		tracing.AiFallback, string(*decision.Fallback),
		tracing.InnerError, err)
	x.metrics.RecordFallbackEngaged()

	fallbackCompletion, fallbackErr := x.invoke(ctx, logger, *decision.Fallback, inv)
	if fallbackErr != nil {
		x.persistFailure(logger, *decision.Fallback, req, true)
		return nil, &ProviderFailureError{
			Primary:      decision.Primary,
			PrimaryErr:   err,
			Fallback:     decision.Fallback,
			FallbackErr:  fallbackErr,
			FallbackUsed: true,
		}
	}

	return x.conclude(logger, *decision.Fallback, fallbackCompletion, req, true)
}

func (x *Analyzer) buildInvocation(logger *tracing.Logger, req *AnalysisRequest) *Invocation {
	user := req.Content

	switch req.Kind {
	case routing.KindVoice:
		user = VoiceNoteContext + user
	case routing.KindImage:
		if user == "" {
			user = "Analyse this image for credibility."
		}
		user = ImageContext + "\n" + user
	case routing.KindLink:
		if req.Scan != "" {
			user = "Technical scan findings:\n" + req.Scan + "\nURL and message:\n" + user
		}
	}

	system := SystemPrompt
	if req.Kind == routing.KindLink {
		system = SystemPrompt + "\n\n" + LinkAnalysisPrompt
	}

	user = tokenizer.TruncateToBudget(logger, user, x.config.AI.PromptTokenBudget)
	logger.D("Prompt assembled", tracing.AiTokens, tokenizer.Tokens(logger, user))

	return &Invocation{
		System:    system,
		User:      user,
		Image:     req.Image,
		MaxTokens: x.config.AI.MaxResponseTokens,
	}
}

func (x *Analyzer) invoke(ctx context.Context, logger *tracing.Logger, target routing.Provider, inv *Invocation) (*Completion, error) {
	client, ok := x.providers[target]
	if !ok {
		logger.F("Unknown provider routed", tracing.AiProvider, string(target))
	}

	started := time.Now()
	completion, err := client.Complete(ctx, logger, inv)
	x.metrics.ObserveProviderRequestDuration(string(target), time.Since(started).Seconds())

	if err != nil {
		x.metrics.RecordProviderRequest(string(target), "error")
		return nil, err
	}

	x.metrics.RecordProviderRequest(string(target), "ok")
	return completion, nil
}

func (x *Analyzer) conclude(logger *tracing.Logger, target routing.Provider, completion *Completion, req *AnalysisRequest, fallbackUsed bool) (*Analysis, error) {
	cost := x.costFor(logger, completion)

	analysis := &Analysis{
		Text:         completion.Text,
		Provider:     target,
		Model:        completion.Model,
		Tokens:       completion.TotalTokens(),
		Cost:         cost,
		FallbackUsed: fallbackUsed,
	}

	x.metrics.RecordUsage(analysis.Tokens, cost.InexactFloat64(), completion.Model)

	report := &entities.Report{
		SenderHash:   req.SenderHash,
		ContentKind:  string(req.Kind),
		Provider:     string(target),
		Model:        completion.Model,
		FallbackUsed: fallbackUsed,
		RiskLevel:    req.RiskLevel,
		Tokens:       analysis.Tokens,
		Cost:         cost,
		Succeeded:    true,
	}
	if err := x.reports.SaveReport(logger, report); err != nil {
		logger.W("Failed to persist analysis report", tracing.InnerError, err)
	}

	logger.I("Analysis concluded",
		tracing.AiProvider, string(target),
		tracing.AiModel, completion.Model,
		tracing.AiFallback, fallbackUsed,
		tracing.AiTokens, analysis.Tokens,
		tracing.AiCost, cost.String())

	return analysis, nil
}

func (x *Analyzer) persistFailure(logger *tracing.Logger, target routing.Provider, req *AnalysisRequest, fallbackUsed bool) {
	report := &entities.Report{
		SenderHash:   req.SenderHash,
		ContentKind:  string(req.Kind),
		Provider:     string(target),
		FallbackUsed: fallbackUsed,
		RiskLevel:    req.RiskLevel,
		Cost:         decimal.Zero,
		Succeeded:    false,
	}
	if err := x.reports.SaveReport(logger, report); err != nil {
		logger.W("Failed to persist failure report", tracing.InnerError, err)
	}
}

func (x *Analyzer) costFor(logger *tracing.Logger, completion *Completion) decimal.Decimal {
	pricing, ok := x.config.AI.Pricing[completion.Model]
	if !ok {
		logger.W("No pricing configured for model", tracing.AiModel, completion.Model)
		return decimal.Zero
	}

	inputPerM, err := decimal.NewFromString(pricing.InputPerM)
	if err != nil {
		logger.W("Invalid input pricing", tracing.AiModel, completion.Model, tracing.InnerError, err)
		return decimal.Zero
	}
	outputPerM, err := decimal.NewFromString(pricing.OutputPerM)
	if err != nil {
		logger.W("Invalid output pricing", tracing.AiModel, completion.Model, tracing.InnerError, err)
		return decimal.Zero
	}

	million := decimal.NewFromInt(1_000_000)
	inputCost := decimal.NewFromInt(int64(completion.InputTokens)).Mul(inputPerM).Div(million)
	outputCost := decimal.NewFromInt(int64(completion.OutputTokens)).Mul(outputPerM).Div(million)

	return inputCost.Add(outputCost)
}
