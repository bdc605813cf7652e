package notification

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSendSimulatedWhenUnconfigured(t *testing.T) {
	sender := &EmailSender{} // no host, no credentials

	if sender.Configured() {
		t.Fatal("empty sender should not report as configured")
	}
	if err := sender.Send("user@example.com", "Hello", "body text", ""); err != nil {
		t.Fatalf("simulated send should succeed, got %v", err)
	}
}

func TestPreviewBodyCutsOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("イベントが更新されました。", 20)

	preview := previewBody(long)
	if !utf8.ValidString(preview) {
		t.Fatalf("preview is not valid UTF-8: %q", preview)
	}
	if got := len([]rune(preview)); got != 103 { // 100 runes + "..."
		t.Errorf("preview rune length = %d, want 103", got)
	}

	short := "короткое сообщение"
	if previewBody(short) != short {
		t.Errorf("short body should pass through untouched")
	}
}

func TestConfiguredRequiresFullCredentials(t *testing.T) {
	cases := []struct {
		name   string
		sender EmailSender
		want   bool
	}{
		{"all set", EmailSender{Host: "smtp.gmail.com", Username: "u", Password: "p"}, true},
		{"missing host", EmailSender{Username: "u", Password: "p"}, false},
		{"missing username", EmailSender{Host: "smtp.gmail.com", Password: "p"}, false},
		{"missing password", EmailSender{Host: "smtp.gmail.com", Username: "u"}, false},
	}

	for _, tc := range cases {
		if got := tc.sender.Configured(); got != tc.want {
			t.Errorf("%s: Configured() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSendBulkSubstitutesNames(t *testing.T) {
	sender := &EmailSender{} // simulated sends always succeed

	recipients := []Participant{
		{Name: "Asha", Email: "asha@example.com"},
		{Name: "", Email: "anon@example.com"},
		{Name: "Ravi", Email: "ravi@example.com"},
	}

	success, failed := sender.SendBulk(recipients, "Update", "Hi {name}, the event changed.", "")
	if success != 3 || failed != 0 {
		t.Fatalf("expected 3 successes in degraded mode, got success=%d failed=%d", success, failed)
	}
}

func TestBuildMessagePlainOnly(t *testing.T) {
	sender := &EmailSender{FromAddr: "noreply@example.com"}

	msg := string(sender.buildMessage("user@example.com", "Subject line", "the body", ""))
	if !strings.Contains(msg, "Content-Type: text/plain") {
		t.Errorf("plain message missing text/plain header:\n%s", msg)
	}
	if strings.Contains(msg, "multipart/alternative") {
		t.Errorf("plain message should not be multipart:\n%s", msg)
	}
	if !strings.Contains(msg, "the body") {
		t.Errorf("message body missing")
	}
}

func TestBuildMessageMultipart(t *testing.T) {
	sender := &EmailSender{FromName: "EventSynk", FromAddr: "noreply@example.com"}

	msg := string(sender.buildMessage("user@example.com", "Subject", "plain part", "<p>html part</p>"))
	if !strings.Contains(msg, "multipart/alternative") {
		t.Fatalf("expected multipart message:\n%s", msg)
	}
	if !strings.Contains(msg, "plain part") || !strings.Contains(msg, "<p>html part</p>") {
		t.Errorf("multipart message missing a part:\n%s", msg)
	}
	if !strings.Contains(msg, "From: EventSynk <noreply@example.com>") {
		t.Errorf("expected display-name From header:\n%s", msg)
	}
}
