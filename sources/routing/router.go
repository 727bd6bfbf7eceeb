package routing

import (
	"sync"

	"chokwadi/sources/configuration"
	"chokwadi/sources/platform"
	"chokwadi/sources/tracing"
)

// Router owns the process-wide provider mode and turns classified inbound
// requests into routing decisions. The mode is the only mutable state; it is
// guarded by an RWMutex so a Route call never observes a half-applied switch.
// Requests already in flight when the mode changes finish under the old mode,
// which is fine: a switch takes effect for everything routed after it.
type Router struct {
	mu           sync.RWMutex
	mode         ProviderMode
	admin        string
	available    map[Provider]bool
	capabilities map[Provider]Capabilities
}

func NewRouter(config *configuration.Config, log *tracing.Logger) *Router {
	mode := ModeAuto
	switch ProviderMode(config.Routing.InitialMode) {
	case ModeAuto, ModeAnthropicOnly, ModeOpenAIOnly:
		mode = ProviderMode(config.Routing.InitialMode)
	default:
		log.W("Unknown initial provider mode, using auto", tracing.ProviderMode, config.Routing.InitialMode)
	}

	available := map[Provider]bool{
		ProviderAnthropic: config.AI.AnthropicToken != "",
		ProviderOpenAI:    config.AI.OpenAIToken != "",
	}

	log.I("Provider router initialized",
		tracing.ProviderMode, string(mode),
		"anthropic_available", available[ProviderAnthropic],
		"openai_available", available[ProviderOpenAI],
	)

	return &Router{
		mode:      mode,
		admin:     config.Routing.AdminIdentity,
		available: available,
		capabilities: map[Provider]Capabilities{
			ProviderAnthropic: {Vision: true},
			ProviderOpenAI:    {Vision: true},
		},
	}
}

// NewRouterWith builds a router without the configuration layer. Used by tests
// and anywhere the capability table must differ from the defaults.
func NewRouterWith(mode ProviderMode, admin string, available map[Provider]bool, capabilities map[Provider]Capabilities) *Router {
	return &Router{mode: mode, admin: admin, available: available, capabilities: capabilities}
}

func (x *Router) Mode() ProviderMode {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.mode
}

func (x *Router) Available() []Provider {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.availableLocked()
}

func (x *Router) availableLocked() []Provider {
	providers := []Provider{}
	for _, p := range []Provider{ProviderAnthropic, ProviderOpenAI} {
		if x.available[p] {
			providers = append(providers, p)
		}
	}
	return providers
}

// Route selects the analysis provider chain for a request. Single-provider
// modes advertise no fallback: an explicit mode must fail loudly rather than
// quietly substitute the other provider. Auto mode advertises anthropic first
// with exactly one openai retry; executing that chain is the caller's job.
func (x *Router) Route(req *InboundRequest) (*Decision, error) {
	x.mu.RLock()
	mode := x.mode
	x.mu.RUnlock()

	decision := &Decision{}

	switch mode {
	case ModeAnthropicOnly:
		decision.Primary = ProviderAnthropic
	case ModeOpenAIOnly:
		decision.Primary = ProviderOpenAI
	default:
		fallback := ProviderOpenAI
		decision.Primary = ProviderAnthropic
		decision.Fallback = &fallback
	}

	if req.Kind == KindVoice {
		// Speech-to-text is openai regardless of mode: it is the only
		// provider here with a transcription endpoint. The transcript is
		// then analyzed under the normal text policy above.
		transcription := ProviderOpenAI
		decision.Transcription = &transcription
	}

	if req.Kind == KindImage {
		if !x.capabilities[decision.Primary].Vision {
			return nil, &CapabilityError{Provider: decision.Primary, Kind: KindImage}
		}
		if decision.Fallback != nil && !x.capabilities[*decision.Fallback].Vision {
			decision.Fallback = nil
		}
	}

	return decision, nil
}

// HandleAdminCommand authenticates the sender, parses the command against the
// closed command set and applies it. Unauthorized senders get an
// AuthorizationError and no state change, whatever the command was.
func (x *Router) HandleAdminCommand(log *tracing.Logger, sender, command string) (*CommandOutcome, error) {
	if x.admin == "" || sender != x.admin {
		return nil, &AuthorizationError{SenderHash: platform.HashIdentity(sender)}
	}

	cmd, ok := ParseAdminCommand(command)
	if !ok {
		return nil, ErrUnknownCommand
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	switch cmd {
	case CmdStatus:
		// read-only
	case CmdClaude:
		x.mode = ModeAnthropicOnly
	case CmdGpt:
		x.mode = ModeOpenAIOnly
	case CmdAuto:
		x.mode = ModeAuto
	}

	log.I("Admin command applied", tracing.AdminCommand, cmd.String(), tracing.ProviderMode, string(x.mode))

	return &CommandOutcome{Command: cmd, Mode: x.mode, Available: x.availableLocked()}, nil
}
