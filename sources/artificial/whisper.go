package artificial

import (
	"context"
	"errors"
	"io"
	"time"

	"chokwadi/sources/configuration"
	"chokwadi/sources/metrics"
	"chokwadi/sources/platform"
	"chokwadi/sources/tracing"

	"github.com/sashabaranov/go-openai"
)

// Transcript is a converted voice note. Language is whatever Whisper
// detected, which in practice is often wrong for Shona.
type Transcript struct {
	Text     string
	Language string
}

// Whisper converts voice notes to text. Transcription always runs on the
// OpenAI side regardless of the active provider mode; Anthropic has no
// audio endpoint.
type Whisper struct {
	ai      *openai.Client
	config  *configuration.Config
	metrics *metrics.MetricsService
}

func NewWhisper(ai *openai.Client, config *configuration.Config, metrics *metrics.MetricsService) *Whisper {
	return &Whisper{ai: ai, config: config, metrics: metrics}
}

func (x *Whisper) Transcribe(logger *tracing.Logger, audio io.Reader, filename string) (*Transcript, error) {
	defer tracing.ProfilePoint(logger, "Whisper transcription completed", "artificial.whisper.transcribe")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 5*time.Minute)
	defer cancel()

	logger = logger.With(tracing.AiKind, "openai/whisper", tracing.AiModel, x.config.AI.WhisperModel)

	request := openai.AudioRequest{
		Model:    x.config.AI.WhisperModel,
		Reader:   audio,
		FilePath: filename,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	response, err := x.ai.CreateTranscription(ctx, request)
	if err != nil {
		logger.E("Whisper transcription failed", tracing.InnerError, err)
		x.metrics.RecordTranscription("error")
		return nil, &TranscriptionFailureError{Inner: err}
	}

	if response.Text == "" {
		logger.W("Whisper returned empty transcription")
		x.metrics.RecordTranscription("empty")
		return nil, &TranscriptionFailureError{Inner: errors.New("empty transcription")}
	}

	x.metrics.RecordTranscription("ok")
	logger.I("Voice note transcribed", tracing.Language, response.Language, "chars", len(response.Text))

	return &Transcript{Text: response.Text, Language: response.Language}, nil
}
