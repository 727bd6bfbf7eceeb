package artificial

import (
	"context"
	"fmt"

	"chokwadi/sources/routing"
	"chokwadi/sources/tracing"

	"github.com/shopspring/decimal"
)

// ImagePayload is raw media attached to a request, already fetched from the
// messaging gateway.
type ImagePayload struct {
	Data     []byte
	MimeType string
}

// Invocation is one fully assembled prompt, ready for any provider.
type Invocation struct {
	System    string
	User      string
	Image     *ImagePayload
	MaxTokens int
}

// Completion is a single provider answer with its token accounting.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

func (c *Completion) TotalTokens() int {
	return c.InputTokens + c.OutputTokens
}

// Analysis is the final outcome of one analyzed message, after routing,
// fallback and cost accounting.
type Analysis struct {
	Text         string
	Provider     routing.Provider
	Model        string
	Tokens       int
	Cost         decimal.Decimal
	FallbackUsed bool
}

// provider is the minimal contract both AI vendors satisfy.
type provider interface {
	Complete(ctx context.Context, logger *tracing.Logger, inv *Invocation) (*Completion, error)
	SupportsVision() bool
}

// ProviderFailureError reports that the routed primary failed and either no
// fallback existed or the fallback failed too. Both underlying errors are
// preserved for the logs.
type ProviderFailureError struct {
	Primary      routing.Provider
	PrimaryErr   error
	Fallback     *routing.Provider
	FallbackErr  error
	FallbackUsed bool
}

func (e *ProviderFailureError) Error() string {
	if e.FallbackUsed {
		return fmt.Sprintf("provider %s failed (%v); fallback %s failed (%v)", e.Primary, e.PrimaryErr, *e.Fallback, e.FallbackErr)
	}
	return fmt.Sprintf("provider %s failed (%v); no fallback attempted", e.Primary, e.PrimaryErr)
}

func (e *ProviderFailureError) Unwrap() error {
	if e.FallbackUsed {
		return e.FallbackErr
	}
	return e.PrimaryErr
}

// TranscriptionFailureError distinguishes a broken voice pipeline from an
// analysis failure so the handler can answer with the right message.
type TranscriptionFailureError struct {
	Inner error
}

func (e *TranscriptionFailureError) Error() string {
	return fmt.Sprintf("voice transcription failed: %v", e.Inner)
}

func (e *TranscriptionFailureError) Unwrap() error {
	return e.Inner
}
