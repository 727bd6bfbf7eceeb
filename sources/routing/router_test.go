package routing

import (
	"errors"
	"sync"
	"testing"

	"chokwadi/sources/tracing"
)

const adminSender = "whatsapp:+263771000000"

func newTestRouter(mode ProviderMode) *Router {
	return NewRouterWith(
		mode,
		adminSender,
		map[Provider]bool{ProviderAnthropic: true, ProviderOpenAI: true},
		map[Provider]Capabilities{
			ProviderAnthropic: {Vision: true},
			ProviderOpenAI:    {Vision: true},
		},
	)
}

func TestRouteSingleProviderModesHaveNoFallback(t *testing.T) {
	tests := []struct {
		name     string
		mode     ProviderMode
		expected Provider
	}{
		{name: "anthropic only", mode: ModeAnthropicOnly, expected: ProviderAnthropic},
		{name: "openai only", mode: ModeOpenAIOnly, expected: ProviderOpenAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.mode)

			for _, kind := range []ContentKind{KindText, KindImage, KindLink} {
				decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: kind})
				if err != nil {
					t.Fatalf("Route(%s) error = %v", kind, err)
				}
				if decision.Primary != tt.expected {
					t.Errorf("Route(%s) primary = %s, expected %s", kind, decision.Primary, tt.expected)
				}
				if decision.Fallback != nil {
					t.Errorf("Route(%s) fallback = %s, expected none", kind, *decision.Fallback)
				}
			}
		})
	}
}

func TestRouteAutoModeAdvertisesFallbackChain(t *testing.T) {
	router := newTestRouter(ModeAuto)

	for _, kind := range []ContentKind{KindText, KindImage, KindLink} {
		decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: kind})
		if err != nil {
			t.Fatalf("Route(%s) error = %v", kind, err)
		}
		if decision.Primary != ProviderAnthropic {
			t.Errorf("Route(%s) primary = %s, expected anthropic", kind, decision.Primary)
		}
		if decision.Fallback == nil || *decision.Fallback != ProviderOpenAI {
			t.Errorf("Route(%s) fallback missing or wrong, expected openai", kind)
		}
	}
}

func TestRouteVoiceAlwaysTranscribesWithOpenAI(t *testing.T) {
	for _, mode := range []ProviderMode{ModeAuto, ModeAnthropicOnly, ModeOpenAIOnly} {
		router := newTestRouter(mode)

		decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: KindVoice})
		if err != nil {
			t.Fatalf("Route(voice) under %s error = %v", mode, err)
		}
		if decision.Transcription == nil || *decision.Transcription != ProviderOpenAI {
			t.Errorf("Route(voice) under %s transcription missing or wrong, expected openai", mode)
		}
	}
}

func TestRouteImageWithoutVisionCapabilityFails(t *testing.T) {
	router := NewRouterWith(
		ModeAnthropicOnly,
		adminSender,
		map[Provider]bool{ProviderAnthropic: true, ProviderOpenAI: true},
		map[Provider]Capabilities{
			ProviderAnthropic: {Vision: false},
			ProviderOpenAI:    {Vision: true},
		},
	)

	decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: KindImage})
	if decision != nil {
		t.Errorf("Route(image) decision = %+v, expected none", decision)
	}

	var capErr *CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("Route(image) error = %v, expected CapabilityError", err)
	}
	if capErr.Provider != ProviderAnthropic {
		t.Errorf("CapabilityError provider = %s, expected anthropic", capErr.Provider)
	}
}

func TestRouteImageDropsVisionlessFallback(t *testing.T) {
	router := NewRouterWith(
		ModeAuto,
		adminSender,
		map[Provider]bool{ProviderAnthropic: true, ProviderOpenAI: true},
		map[Provider]Capabilities{
			ProviderAnthropic: {Vision: true},
			ProviderOpenAI:    {Vision: false},
		},
	)

	decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: KindImage})
	if err != nil {
		t.Fatalf("Route(image) error = %v", err)
	}
	if decision.Fallback != nil {
		t.Errorf("Route(image) fallback = %s, expected none when fallback lacks vision", *decision.Fallback)
	}
}

func TestAdminCommandFromStrangerNeverChangesMode(t *testing.T) {
	log := tracing.NewConsoleLogger()

	for _, command := range []string{"!status", "!claude", "!gpt", "!auto"} {
		router := newTestRouter(ModeAuto)

		outcome, err := router.HandleAdminCommand(log, "whatsapp:+263779999999", command)
		if outcome != nil {
			t.Errorf("HandleAdminCommand(%s) outcome = %+v, expected none", command, outcome)
		}

		var authErr *AuthorizationError
		if !errors.As(err, &authErr) {
			t.Fatalf("HandleAdminCommand(%s) error = %v, expected AuthorizationError", command, err)
		}

		if router.Mode() != ModeAuto {
			t.Errorf("mode changed to %s after unauthorized %s", router.Mode(), command)
		}
	}
}

func TestAdminCommandSwitchesMode(t *testing.T) {
	log := tracing.NewConsoleLogger()
	router := newTestRouter(ModeAuto)

	outcome, err := router.HandleAdminCommand(log, adminSender, "!claude")
	if err != nil {
		t.Fatalf("HandleAdminCommand(!claude) error = %v", err)
	}
	if outcome.Mode != ModeAnthropicOnly {
		t.Errorf("outcome mode = %s, expected anthropic", outcome.Mode)
	}

	decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: KindText})
	if err != nil {
		t.Fatalf("Route(text) error = %v", err)
	}
	if decision.Primary != ProviderAnthropic || decision.Fallback != nil {
		t.Errorf("Route(text) after !claude = %+v, expected anthropic with no fallback", decision)
	}
}

func TestAdminCommandLatestWins(t *testing.T) {
	log := tracing.NewConsoleLogger()
	router := newTestRouter(ModeAuto)

	if _, err := router.HandleAdminCommand(log, adminSender, "!gpt"); err != nil {
		t.Fatalf("HandleAdminCommand(!gpt) error = %v", err)
	}
	if _, err := router.HandleAdminCommand(log, adminSender, "!auto"); err != nil {
		t.Fatalf("HandleAdminCommand(!auto) error = %v", err)
	}

	decision, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: KindText})
	if err != nil {
		t.Fatalf("Route(text) error = %v", err)
	}
	if decision.Primary != ProviderAnthropic {
		t.Errorf("Route(text) primary = %s, expected anthropic", decision.Primary)
	}
	if decision.Fallback == nil || *decision.Fallback != ProviderOpenAI {
		t.Errorf("Route(text) fallback missing or wrong, expected openai")
	}
}

func TestAdminStatusIsReadOnly(t *testing.T) {
	log := tracing.NewConsoleLogger()
	router := newTestRouter(ModeOpenAIOnly)

	outcome, err := router.HandleAdminCommand(log, adminSender, "!status")
	if err != nil {
		t.Fatalf("HandleAdminCommand(!status) error = %v", err)
	}
	if outcome.Mode != ModeOpenAIOnly {
		t.Errorf("status mode = %s, expected openai", outcome.Mode)
	}
	if len(outcome.Available) != 2 {
		t.Errorf("status available = %v, expected both providers", outcome.Available)
	}
	if router.Mode() != ModeOpenAIOnly {
		t.Errorf("mode changed by !status to %s", router.Mode())
	}
}

func TestAdminUnknownCommandIsRejected(t *testing.T) {
	log := tracing.NewConsoleLogger()
	router := newTestRouter(ModeAuto)

	tests := []string{"!CLAUDE", "!Claude", "!restart", "! claude", "!gpt4"}
	for _, command := range tests {
		outcome, err := router.HandleAdminCommand(log, adminSender, command)
		if outcome != nil {
			t.Errorf("HandleAdminCommand(%q) outcome = %+v, expected none", command, outcome)
		}
		if !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("HandleAdminCommand(%q) error = %v, expected ErrUnknownCommand", command, err)
		}
		if router.Mode() != ModeAuto {
			t.Errorf("mode changed to %s after unknown command %q", router.Mode(), command)
		}
	}
}

func TestNoAdminConfiguredRejectsEveryone(t *testing.T) {
	log := tracing.NewConsoleLogger()
	router := NewRouterWith(
		ModeAuto,
		"",
		map[Provider]bool{ProviderAnthropic: true, ProviderOpenAI: true},
		map[Provider]Capabilities{
			ProviderAnthropic: {Vision: true},
			ProviderOpenAI:    {Vision: true},
		},
	)

	_, err := router.HandleAdminCommand(log, "", "!auto")
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("HandleAdminCommand with no admin configured error = %v, expected AuthorizationError", err)
	}
}

func TestConcurrentRouteAndModeSwitch(t *testing.T) {
	log := tracing.NewConsoleLogger()
	router := newTestRouter(ModeAuto)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := router.Route(&InboundRequest{Sender: "whatsapp:+263772111111", Kind: KindText}); err != nil {
				t.Errorf("Route error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := router.HandleAdminCommand(log, adminSender, "!gpt"); err != nil {
				t.Errorf("HandleAdminCommand error = %v", err)
			}
		}()
	}
	wg.Wait()

	if router.Mode() != ModeOpenAIOnly {
		t.Errorf("final mode = %s, expected openai", router.Mode())
	}
}
