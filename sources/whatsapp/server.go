package whatsapp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"chokwadi/sources/configuration"
	"chokwadi/sources/platform"
	"chokwadi/sources/tracing"
)

// Server is the webhook endpoint the messaging gateway posts inbound
// WhatsApp messages to.
type Server struct {
	log      *tracing.Logger
	config   *configuration.Config
	handler  *Handler
	diplomat *Diplomat
	srv      *http.Server
}

func NewServer(log *tracing.Logger, config *configuration.Config, handler *Handler, diplomat *Diplomat) *Server {
	x := &Server{log: log, config: config, handler: handler, diplomat: diplomat}

	x.srv = &http.Server{
		Addr: fmt.Sprintf(":%d", config.Service.WebhookPort),
		Handler: platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
			m.HandleFunc("/webhook", x.webhook)
		}),
	}

	return x
}

func (x *Server) webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		x.log.W("Malformed webhook form", tracing.InnerError, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg := decodeForm(r)
	logger := x.log.With(tracing.Scope, "whatsapp.webhook")

	reply := x.handler.Handle(logger, msg)
	if strings.TrimSpace(reply) == "" {
		x.diplomat.Empty(w)
		return
	}

	x.diplomat.Reply(logger, w, reply)
}

func decodeForm(r *http.Request) *InboundMessage {
	numMedia, _ := strconv.Atoi(r.FormValue("NumMedia"))

	msg := &InboundMessage{
		MessageSid: r.FormValue("MessageSid"),
		From:       r.FormValue("From"),
		Body:       strings.TrimSpace(r.FormValue("Body")),
		NumMedia:   numMedia,
	}

	if numMedia > 0 {
		msg.MediaContentType = r.FormValue("MediaContentType0")
		msg.MediaURL = r.FormValue("MediaUrl0")
	}

	return msg
}

func (x *Server) serve() {
	x.log.I("Webhook server is starting", tracing.ServerKind, "webhook", "port", x.config.Service.WebhookPort)

	if err := x.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		x.log.F("Failed to start webhook server", tracing.ServerKind, "webhook", tracing.InnerError, err)
	}
}
