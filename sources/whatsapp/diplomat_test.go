package whatsapp

import (
	"net/http/httptest"
	"strings"
	"testing"

	"chokwadi/sources/configuration"
	"chokwadi/sources/tracing"
)

func testDiplomat() *Diplomat {
	return NewDiplomat(&configuration.Config{
		Gateway: configuration.GatewayConfig{ReplyChunkSize: 1500},
	})
}

func TestReplyShortMessage(t *testing.T) {
	log := tracing.NewConsoleLogger()
	diplomat := testDiplomat()

	recorder := httptest.NewRecorder()
	diplomat.Reply(log, recorder, "all good")

	body := recorder.Body.String()
	if got := recorder.Header().Get("Content-Type"); got != "application/xml" {
		t.Errorf("Content-Type = %q", got)
	}
	if strings.Count(body, "<Message>") != 1 {
		t.Errorf("want exactly one Message element:\n%s", body)
	}
	if !strings.Contains(body, "<Message>all good</Message>") {
		t.Errorf("unexpected body:\n%s", body)
	}
}

func TestReplyChunksLongMessage(t *testing.T) {
	log := tracing.NewConsoleLogger()
	diplomat := testDiplomat()

	recorder := httptest.NewRecorder()
	diplomat.Reply(log, recorder, strings.Repeat("a", 3200))

	body := recorder.Body.String()
	if got := strings.Count(body, "<Message>"); got != 3 {
		t.Errorf("Message elements = %d, want 3:\n%s", got, body)
	}
}

func TestReplyEscapesMarkup(t *testing.T) {
	log := tracing.NewConsoleLogger()
	diplomat := testDiplomat()

	recorder := httptest.NewRecorder()
	diplomat.Reply(log, recorder, "score < 5 & rising")

	body := recorder.Body.String()
	if !strings.Contains(body, "score &lt; 5 &amp; rising") {
		t.Errorf("markup should be escaped:\n%s", body)
	}
}

func TestEmptyResponse(t *testing.T) {
	diplomat := testDiplomat()

	recorder := httptest.NewRecorder()
	diplomat.Empty(recorder)

	if !strings.Contains(recorder.Body.String(), "<Response></Response>") {
		t.Errorf("unexpected body: %s", recorder.Body.String())
	}
}
