package artificial

import "go.uber.org/fx"

var Module = fx.Module("artificial",
	fx.Provide(NewOpenAIClient),
	fx.Provide(NewOpenAIProvider),
	fx.Provide(NewAnthropicProvider),
	fx.Provide(NewAnalyzer),
	fx.Provide(NewWhisper),
)
