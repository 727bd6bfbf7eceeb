package tokenizer

import (
	"unicode/utf8"

	"chokwadi/sources/tracing"

	"github.com/pkoukk/tiktoken-go"
)

var tkm, tkmErr = tiktoken.GetEncoding("o200k_base")

// Tokens counts BPE tokens, falling back to a rune estimate when the
// encoding tables are unavailable.
func Tokens(log *tracing.Logger, text string) int {
	defer tracing.ProfilePoint(log, "Tokens counted", "tokenizer.tiktoken.tokens")()
	if tkmErr != nil {
		return utf8.RuneCountInString(text) / 4
	}
	return len(tkm.Encode(text, nil, nil))
}

// TruncateToBudget cuts text down to at most budget tokens. Forwarded WhatsApp
// chain messages can be arbitrarily long; the analysis prompt must not be.
func TruncateToBudget(log *tracing.Logger, text string, budget int) string {
	if tkmErr != nil {
		log.W("Token encoding unavailable, skipping budget truncation", tracing.InnerError, tkmErr)
		return text
	}

	tokens := tkm.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}

	truncated := tkm.Decode(tokens[:budget])
	log.W("Content truncated to token budget", tracing.AiTokens, len(tokens), "budget", budget)
	return truncated
}
