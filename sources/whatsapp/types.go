package whatsapp

// InboundMessage is one decoded webhook form post from the messaging
// gateway. Only the first media attachment is considered; the gateway sends
// one voice note or image per message in practice.
type InboundMessage struct {
	MessageSid       string
	From             string
	Body             string
	NumMedia         int
	MediaContentType string
	MediaURL         string
}
