package tracing

import (
	"context"
	"log/slog"
	"os"
	"time"
)

const (
	ExecutionTime = "exe_time"
	InnerError    = "inner_error"
	SenderHash    = "sender_hash"
	ContentKind   = "content_kind"
	MessageSid    = "message_sid"
	MediaType     = "media_type"
	MediaUrl      = "media_url"
	AiKind        = "ai_kind"
	AiModel       = "ai_model"
	AiProvider    = "ai_provider"
	AiFallback    = "ai_fallback"
	AiTokens      = "ai_tokens"
	AiCost        = "ai_cost"
	ProviderMode  = "provider_mode"
	AdminCommand  = "admin_command"
	ScanUrl       = "scan_url"
	ScanRisk      = "scan_risk"
	Language      = "language"
	ProxyUrl      = "proxy_url"
	ProxyRes      = "proxy_res"
	SqlQuery      = "sql_query"
	ServerKind    = "server_kind"
	Scope         = "scope"
)

type Logger struct {
	log *slog.Logger
	ctx context.Context
}

func NewConsoleLogger() *Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger.InfoContext(ctx, "Initializing logger")
	return &Logger{log: logger, ctx: ctx}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), ctx: l.ctx}
}

func (l *Logger) D(msg string, args ...any) {
	l.log.DebugContext(l.ctx, msg, args...)
}

func (l *Logger) I(msg string, args ...any) {
	l.log.InfoContext(l.ctx, msg, args...)
}

func (l *Logger) W(msg string, args ...any) {
	l.log.WarnContext(l.ctx, msg, args...)
}

func (l *Logger) E(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
}

func (l *Logger) F(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
	panic(msg)
}
