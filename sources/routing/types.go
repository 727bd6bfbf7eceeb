package routing

type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

type ProviderMode string

const (
	ModeAuto          ProviderMode = "auto"
	ModeAnthropicOnly ProviderMode = "anthropic"
	ModeOpenAIOnly    ProviderMode = "openai"
)

type ContentKind string

const (
	KindText         ContentKind = "text"
	KindVoice        ContentKind = "voice"
	KindImage        ContentKind = "image"
	KindLink         ContentKind = "link"
	KindAdminCommand ContentKind = "admin"
)

// InboundRequest is one classified incoming message as seen by the router.
// Payload stays opaque here; the router only looks at the kind and sender.
type InboundRequest struct {
	Sender  string
	Kind    ContentKind
	Payload string
	Command string
}

// Decision is the router's verdict for one request: who analyzes it, who is
// retried once on failure, and who transcribes when the content is voice.
type Decision struct {
	Primary       Provider
	Fallback      *Provider
	Transcription *Provider
}

// AdminCommand is the closed set of privileged text commands. Anything outside
// this set fails parsing; there is no open-ended string dispatch.
type AdminCommand int

const (
	CmdStatus AdminCommand = iota
	CmdClaude
	CmdGpt
	CmdAuto
)

func (c AdminCommand) String() string {
	switch c {
	case CmdStatus:
		return "!status"
	case CmdClaude:
		return "!claude"
	case CmdGpt:
		return "!gpt"
	case CmdAuto:
		return "!auto"
	}
	return "unknown"
}

// ParseAdminCommand matches the four literal commands, case-sensitive.
func ParseAdminCommand(raw string) (AdminCommand, bool) {
	switch raw {
	case "!status":
		return CmdStatus, true
	case "!claude":
		return CmdClaude, true
	case "!gpt":
		return CmdGpt, true
	case "!auto":
		return CmdAuto, true
	}
	return 0, false
}

// CommandOutcome reports the state after an accepted admin command. Available
// lists providers whose credentials are configured.
type CommandOutcome struct {
	Command   AdminCommand
	Mode      ProviderMode
	Available []Provider
}

// Capabilities describes what a provider can do beyond plain text analysis.
type Capabilities struct {
	Vision bool
}
