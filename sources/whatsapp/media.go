package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chokwadi/sources/configuration"
	"chokwadi/sources/platform"
	"chokwadi/sources/tracing"
)

const maxMediaBytes = 16 << 20

// MediaFetcher downloads message attachments from the gateway. Media URLs
// require basic auth with the account credentials.
type MediaFetcher struct {
	client *http.Client
	config *configuration.Config
}

func NewMediaFetcher(client *http.Client, config *configuration.Config) *MediaFetcher {
	return &MediaFetcher{client: client, config: config}
}

// Fetch downloads one attachment and returns its bytes together with the
// content type the gateway reports, which can be more precise than the
// webhook field.
func (x *MediaFetcher) Fetch(logger *tracing.Logger, mediaURL string) ([]byte, string, error) {
	defer tracing.ProfilePoint(logger, "Media fetched", "whatsapp.media.fetch", tracing.MediaUrl, mediaURL)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.SetBasicAuth(x.config.Gateway.AccountSID, x.config.Gateway.AuthToken)

	resp, err := x.client.Do(req)
	if err != nil {
		logger.E("Media download failed", tracing.MediaUrl, mediaURL, tracing.InnerError, err)
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.E("Media download rejected", tracing.MediaUrl, mediaURL, "status", resp.StatusCode)
		return nil, "", fmt.Errorf("media download: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	logger.I("Media downloaded", tracing.MediaType, contentType, "bytes", len(data))
	return data, contentType, nil
}

// AudioFilename picks a filename extension the transcription API accepts,
// derived from the content type. WhatsApp voice notes are OGG/Opus unless a
// client re-encodes them.
func AudioFilename(contentType string) string {
	lower := strings.ToLower(contentType)
	switch {
	case strings.Contains(lower, "mp4"), strings.Contains(lower, "m4a"):
		return "voice.m4a"
	case strings.Contains(lower, "mpeg"), strings.Contains(lower, "mp3"):
		return "voice.mp3"
	default:
		return "voice.ogg"
	}
}
