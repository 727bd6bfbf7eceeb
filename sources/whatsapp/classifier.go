package whatsapp

import (
	"regexp"
	"strings"

	"chokwadi/sources/routing"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

var greetingWords = map[string]bool{
	"hi": true, "hello": true, "help": true, "start": true, "menu": true,
	"mauya": true, "salibonani": true, "ndeipi": true, "hey": true, "howzit": true,
	"maswera sei": true, "makadii": true, "kunjani": true,
}

// Classify maps a raw inbound message onto a content kind. Media wins over
// body text; an unrecognised attachment type is treated as an image, which
// matches how forwarded stickers and documents behave best.
func Classify(msg *InboundMessage) routing.ContentKind {
	if msg.NumMedia > 0 {
		mediaType := strings.ToLower(msg.MediaContentType)
		switch {
		case strings.Contains(mediaType, "audio"),
			strings.Contains(mediaType, "ogg"),
			strings.Contains(mediaType, "voice"):
			return routing.KindVoice
		default:
			return routing.KindImage
		}
	}

	if urlPattern.MatchString(msg.Body) {
		return routing.KindLink
	}

	return routing.KindText
}

// ExtractURLs pulls every http(s) URL out of a message body, in order.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// IsGreeting reports whether the message is a bare greeting or help request
// that should get the welcome text instead of an analysis.
func IsGreeting(body string) bool {
	return greetingWords[strings.ToLower(strings.TrimSpace(body))]
}

// IsAdminShaped reports whether the body looks like a privileged command.
func IsAdminShaped(body string) bool {
	return strings.HasPrefix(strings.TrimSpace(body), "!")
}
