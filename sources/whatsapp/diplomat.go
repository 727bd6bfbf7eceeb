package whatsapp

import (
	"encoding/xml"
	"net/http"

	"chokwadi/sources/configuration"
	"chokwadi/sources/texting/transform"
	"chokwadi/sources/tracing"
)

type twimlResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// Diplomat renders outbound replies as TwiML. WhatsApp rejects messages over
// roughly 1600 characters, so long analyses are split into chunks.
type Diplomat struct {
	config *configuration.Config
}

func NewDiplomat(config *configuration.Config) *Diplomat {
	return &Diplomat{config: config}
}

func (x *Diplomat) Reply(logger *tracing.Logger, w http.ResponseWriter, text string) {
	chunks := transform.Chunks(text, x.config.Gateway.ReplyChunkSize)

	response := twimlResponse{Messages: chunks}
	payload, err := xml.Marshal(response)
	if err != nil {
		logger.E("Failed to marshal reply", tracing.InnerError, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	w.Write(payload)
}

// Empty answers with a bodyless TwiML document, which tells the gateway to
// send nothing back to the user.
func (x *Diplomat) Empty(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header + "<Response></Response>"))
}
