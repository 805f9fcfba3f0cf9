package email

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestFrom(t *testing.T) {
	content := "From: Dana Cohen <dana@example.com>\nTo: receive@example.org\n\nbody text"

	from, err := From(content)
	if err != nil {
		t.Fatalf("From failed: %v", err)
	}
	if from != "Dana Cohen <dana@example.com>" {
		t.Errorf("Expected full From value, got %q", from)
	}
}

func TestFrom_CRLF(t *testing.T) {
	content := "From: dana@example.com\r\nSubject: hi\r\n\r\nbody"

	from, err := From(content)
	if err != nil {
		t.Fatalf("From failed: %v", err)
	}
	if from != "dana@example.com" {
		t.Errorf("Expected dana@example.com, got %q", from)
	}
}

func TestFrom_NoSeparator(t *testing.T) {
	_, err := From("From: dana@example.com\nSubject: no body separator")
	if err == nil {
		t.Fatal("Expected EnvelopeError, got nil")
	}
	if _, ok := err.(*EnvelopeError); !ok {
		t.Errorf("Expected EnvelopeError, got %T", err)
	}
}

func TestFrom_MissingHeader(t *testing.T) {
	_, err := From("To: someone@example.com\n\nbody")
	if err == nil {
		t.Fatal("Expected EnvelopeError, got nil")
	}
	if _, ok := err.(*EnvelopeError); !ok {
		t.Errorf("Expected EnvelopeError, got %T", err)
	}
}

func TestFrom_OnlyInHeaders(t *testing.T) {
	// A From: line in the body must not count as the sender.
	_, err := From("To: someone@example.com\n\nFrom: spoofed@example.com\n")
	if err == nil {
		t.Fatal("Expected EnvelopeError for body-only From line, got nil")
	}
}

func TestAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dana Cohen <dana@example.com>", "dana@example.com"},
		{"dana@example.com", "dana@example.com"},
		{"  dana@example.com  ", "dana@example.com"},
	}

	for _, c := range cases {
		if got := Address(c.in); got != c.want {
			t.Errorf("Address(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dana Cohen <dana@example.com>", "Dana Cohen"},
		{"dana@example.com", "dana@example.com"},
		{"<dana@example.com>", "fallback"},
	}

	for _, c := range cases {
		if got := DisplayName(c.in, "fallback"); got != c.want {
			t.Errorf("DisplayName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeBase64Envelope(t *testing.T) {
	payload := "attendee lines\n---------- Forwarded message ---------\nrest"
	encoded := base64.StdEncoding.EncodeToString([]byte(payload))
	content := "From: a@b.com\nContent-Transfer-Encoding: base64\n\n" + encoded + "\n"

	decoded := DecodeBase64Envelope(content)
	if decoded != payload {
		t.Errorf("Expected decoded payload, got %q", decoded)
	}
}

func TestDecodeBase64Envelope_NoBase64(t *testing.T) {
	content := "From: a@b.com\n\nplain body"
	if got := DecodeBase64Envelope(content); got != content {
		t.Errorf("Expected original content back, got %q", got)
	}
}

func TestDecodeBase64Envelope_BadBlock(t *testing.T) {
	content := "Content-Transfer-Encoding: base64\n\n!!!not base64!!!\n"
	if got := DecodeBase64Envelope(content); got != content {
		t.Errorf("Expected original content on decode failure, got %q", got)
	}
}

func TestDecodeBase64Envelope_StopsAtBoundary(t *testing.T) {
	payload := "part one text"
	encoded := base64.StdEncoding.EncodeToString([]byte(payload))
	content := "Content-Transfer-Encoding: base64\n\n" + encoded + "\n--boundary--\n"

	decoded := DecodeBase64Envelope(content)
	if !strings.Contains(decoded, "part one text") {
		t.Errorf("Expected decoded first part, got %q", decoded)
	}
}
