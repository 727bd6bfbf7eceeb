package whatsapp

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"chokwadi/sources/artificial"
	"chokwadi/sources/features"
	"chokwadi/sources/linkscan"
	"chokwadi/sources/localization"
	"chokwadi/sources/metrics"
	"chokwadi/sources/platform"
	"chokwadi/sources/repository"
	"chokwadi/sources/routing"
	"chokwadi/sources/texting/transform"
	"chokwadi/sources/throttler"
	"chokwadi/sources/tracing"
)

const minAnalyzableLength = 5

const transcriptPreviewLength = 500

// Handler turns one inbound message into one reply. It owns the full
// pipeline: admin commands, greetings, throttling, classification, routing,
// analysis and the localized error texts.
type Handler struct {
	router       *routing.Router
	analyzer     *artificial.Analyzer
	whisper      *artificial.Whisper
	scanner      *linkscan.Scanner
	media        *MediaFetcher
	throttler    *throttler.Throttler
	features     *features.FeatureManager
	localization *localization.LocalizationManager
	metrics      *metrics.MetricsService
	reports      *repository.ReportsRepository
}

func NewHandler(
	router *routing.Router,
	analyzer *artificial.Analyzer,
	whisper *artificial.Whisper,
	scanner *linkscan.Scanner,
	media *MediaFetcher,
	throttler *throttler.Throttler,
	features *features.FeatureManager,
	localization *localization.LocalizationManager,
	metrics *metrics.MetricsService,
	reports *repository.ReportsRepository,
) *Handler {
	return &Handler{
		router:       router,
		analyzer:     analyzer,
		whisper:      whisper,
		scanner:      scanner,
		media:        media,
		throttler:    throttler,
		features:     features,
		localization: localization,
		metrics:      metrics,
		reports:      reports,
	}
}

// Handle processes one message and returns the reply text. It never returns
// an error: every failure path maps to a localized message for the user.
func (x *Handler) Handle(logger *tracing.Logger, msg *InboundMessage) string {
	started := time.Now()
	defer func() {
		x.metrics.ObserveMessageProcessingDuration(time.Since(started).Seconds())
	}()

	senderHash := platform.HashIdentity(msg.From)
	logger = logger.With(tracing.SenderHash, senderHash, tracing.MessageSid, msg.MessageSid)

	body := strings.TrimSpace(msg.Body)

	if IsAdminShaped(body) {
		if reply, handled := x.handleAdminCommand(logger, msg.From, body); handled {
			return reply
		}
		// Not an admin or not a known command: the message is analyzed
		// like any other text.
	}

	if IsGreeting(body) && msg.NumMedia == 0 {
		logger.I("Greeting received")
		x.metrics.RecordMessageHandled("greeting", "ok")
		return x.localization.LocalizeBy(body, "MsgWelcome")
	}

	if !x.throttler.IsAllowed(senderHash) {
		logger.W("Sender throttled")
		x.metrics.RecordMessageIgnored("throttled")
		return x.localization.LocalizeBy(body, "MsgThrottleExceeded")
	}

	kind := Classify(msg)
	logger = logger.With(tracing.ContentKind, string(kind))
	logger.I("Message classified", tracing.MediaType, msg.MediaContentType)

	var reply string
	switch kind {
	case routing.KindVoice:
		reply = x.handleVoice(logger, msg, senderHash)
	case routing.KindImage:
		reply = x.handleImage(logger, msg, senderHash)
	case routing.KindLink:
		reply = x.handleLink(logger, msg, senderHash)
	default:
		reply = x.handleText(logger, msg, senderHash)
	}

	return reply
}

func (x *Handler) handleAdminCommand(logger *tracing.Logger, sender, body string) (string, bool) {
	outcome, err := x.router.HandleAdminCommand(logger, sender, body)
	if err != nil {
		var authErr *routing.AuthorizationError
		if errors.As(err, &authErr) {
			logger.W("Command from unauthorized sender", tracing.AdminCommand, body)
			x.metrics.RecordAdminCommand("unauthorized", "denied")
			return "", false
		}
		logger.W("Unknown admin command", tracing.AdminCommand, body)
		x.metrics.RecordAdminCommand("unknown", "rejected")
		return "", false
	}

	x.metrics.RecordAdminCommand(outcome.Command.String(), "ok")

	if outcome.Command == routing.CmdStatus {
		available := make([]string, 0, len(outcome.Available))
		for _, p := range outcome.Available {
			available = append(available, string(p))
		}

		reply := fmt.Sprintf(
			"⚙️ *Chokwadi AI Status*\n\nMode: *%s*\nAvailable: %s",
			outcome.Mode, strings.Join(available, ", "),
		)

		since := time.Now().Add(-24 * time.Hour)
		if analyzed, err := x.reports.CountSince(logger, since); err == nil {
			fallbacks, _ := x.reports.CountFallbacksSince(logger, since)
			reply += fmt.Sprintf("\nAnalyzed (24h): %d\nFallbacks (24h): %d", analyzed, fallbacks)
		}
		if cost, err := x.reports.GetTotalCost(logger); err == nil {
			reply += fmt.Sprintf("\nTotal cost: $%s", cost.StringFixed(4))
		}

		return reply, true
	}

	switch outcome.Mode {
	case routing.ModeAnthropicOnly:
		return "✅ Switched to *Anthropic Claude*", true
	case routing.ModeOpenAIOnly:
		return "✅ Switched to *OpenAI GPT*", true
	default:
		return "✅ Switched to *auto mode* (Claude → GPT fallback)", true
	}
}

func (x *Handler) handleText(logger *tracing.Logger, msg *InboundMessage, senderHash string) string {
	body := strings.TrimSpace(msg.Body)
	if len(body) < minAnalyzableLength {
		logger.I("Message too short to analyze")
		x.metrics.RecordMessageIgnored("too_short")
		return x.localization.LocalizeBy(body, "MsgTextTooShort")
	}

	return x.analyze(logger, msg, &artificial.AnalysisRequest{
		Kind:       routing.KindText,
		SenderHash: senderHash,
		Content:    body,
	})
}

func (x *Handler) handleLink(logger *tracing.Logger, msg *InboundMessage, senderHash string) string {
	body := strings.TrimSpace(msg.Body)
	urls := ExtractURLs(body)
	if len(urls) == 0 {
		return x.handleText(logger, msg, senderHash)
	}

	req := &artificial.AnalysisRequest{
		Kind:       routing.KindLink,
		SenderHash: senderHash,
		Content:    fmt.Sprintf("URL submitted for analysis: %s\n\nAdditional context from user: %s", urls[0], body),
	}

	if x.features.IsEnabledOrDefault(features.FeatureLinkScan, true) {
		findings := x.scanner.Scan(logger, urls[0])
		x.metrics.RecordLinkScan(string(findings.Risk))
		risk := string(findings.Risk)
		req.Scan = findings.Format()
		req.RiskLevel = &risk
	}

	return x.analyze(logger, msg, req)
}

func (x *Handler) handleVoice(logger *tracing.Logger, msg *InboundMessage, senderHash string) string {
	body := strings.TrimSpace(msg.Body)

	if !x.features.IsEnabledOrDefault(features.FeatureTranscription, true) {
		x.metrics.RecordMessageIgnored("transcription_disabled")
		return x.localization.LocalizeBy(body, "MsgFeatureDisabled")
	}

	decision, err := x.router.Route(&routing.InboundRequest{Sender: msg.From, Kind: routing.KindVoice})
	if err != nil {
		logger.E("Routing failed for voice note", tracing.InnerError, err)
		return x.localization.LocalizeBy(body, "MsgProcessingError")
	}

	audio, contentType, err := x.media.Fetch(logger, msg.MediaURL)
	if err != nil {
		x.metrics.RecordMessageHandled(string(routing.KindVoice), "error")
		return x.localization.LocalizeBy(body, "MsgVoiceFailed")
	}

	transcript, err := x.whisper.Transcribe(logger, bytes.NewReader(audio), AudioFilename(contentType))
	if err != nil {
		x.metrics.RecordMessageHandled(string(routing.KindVoice), "error")
		return x.localization.LocalizeBy(body, "MsgVoiceFailed")
	}
	if transcript.Language != "" {
		x.metrics.RecordLanguageDetected(transcript.Language)
	}

	analysis, err := x.analyzer.Analyze(logger, decision, &artificial.AnalysisRequest{
		Kind:       routing.KindVoice,
		SenderHash: senderHash,
		Content:    transcript.Text,
	})
	if err != nil {
		logger.E("Voice analysis failed", tracing.InnerError, err)
		x.metrics.RecordMessageHandled(string(routing.KindVoice), "error")
		return x.localization.LocalizeBy(body, "MsgProcessingError")
	}

	x.metrics.RecordMessageHandled(string(routing.KindVoice), "ok")

	header := x.localization.LocalizeBy(transcript.Text, "MsgTranscriptionHeader")
	preview := transform.SmartTruncate(transcript.Text, transcriptPreviewLength)
	return fmt.Sprintf("%s\n_%s_\n\n%s", header, preview, analysis.Text)
}

func (x *Handler) handleImage(logger *tracing.Logger, msg *InboundMessage, senderHash string) string {
	body := strings.TrimSpace(msg.Body)

	if !x.features.IsEnabledOrDefault(features.FeatureVision, true) {
		x.metrics.RecordMessageIgnored("vision_disabled")
		return x.localization.LocalizeBy(body, "MsgFeatureDisabled")
	}

	if msg.MediaURL == "" {
		x.metrics.RecordMessageIgnored("media_missing")
		return x.localization.LocalizeBy(body, "MsgImageMissing")
	}

	data, contentType, err := x.media.Fetch(logger, msg.MediaURL)
	if err != nil {
		x.metrics.RecordMessageHandled(string(routing.KindImage), "error")
		return x.localization.LocalizeBy(body, "MsgImageMissing")
	}
	if contentType == "" {
		contentType = msg.MediaContentType
	}

	return x.analyze(logger, msg, &artificial.AnalysisRequest{
		Kind:       routing.KindImage,
		SenderHash: senderHash,
		Content:    body,
		Image:      &artificial.ImagePayload{Data: data, MimeType: contentType},
	})
}

func (x *Handler) analyze(logger *tracing.Logger, msg *InboundMessage, req *artificial.AnalysisRequest) string {
	body := strings.TrimSpace(msg.Body)

	decision, err := x.router.Route(&routing.InboundRequest{Sender: msg.From, Kind: req.Kind})
	if err != nil {
		var capErr *routing.CapabilityError
		if errors.As(err, &capErr) {
			logger.W("Active provider cannot handle content", tracing.InnerError, err)
			x.metrics.RecordMessageIgnored("capability")
			return x.localization.LocalizeBy(body, "MsgFeatureDisabled")
		}
		logger.E("Routing failed", tracing.InnerError, err)
		x.metrics.RecordMessageHandled(string(req.Kind), "error")
		return x.localization.LocalizeBy(body, "MsgProcessingError")
	}

	analysis, err := x.analyzer.Analyze(logger, decision, req)
	if err != nil {
		logger.E("Analysis failed", tracing.InnerError, err)
		x.metrics.RecordMessageHandled(string(req.Kind), "error")
		return x.localization.LocalizeBy(body, "MsgProcessingError")
	}

	x.metrics.RecordMessageHandled(string(req.Kind), "ok")
	return analysis.Text
}
