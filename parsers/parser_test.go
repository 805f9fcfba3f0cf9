package parsers

import (
	"encoding/base64"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hechven/meeting-mailer/meeting"
	"github.com/hechven/meeting-mailer/parsers/common"
	"github.com/hechven/meeting-mailer/pkg/email"
)

const vendorHTML = `<html><body>
<div>נקבעה לך פגישה חדשה ביום 5 אוגוסט 2025 בשעה 14:00</div>
<div>פרטי התקשרות: יוסי כהן</div>
<div>נייד: 0521234567</div>
<div>דוא"ל: yossi@example.com</div>
</body></html>`

// buildForwardedEmail assembles a raw document the way Gmail forwards the
// vendor confirmation: outer headers, a base64 text/plain part carrying the
// forwarder's own lines plus the forwarding banner, and a base64 text/html
// part with the vendor payload.
func buildForwardedEmail(plainBody, htmlBody string) string {
	plain := base64.StdEncoding.EncodeToString([]byte(plainBody))
	html := base64.StdEncoding.EncodeToString([]byte(htmlBody))

	return "From: Dana Cohen <dana@example.com>\n" +
		"To: receive@receive.hechven.online\n" +
		"Subject: Fwd: פגישה חדשה\n" +
		"References: <booking-123@yoman.co.il>\n" +
		"MIME-Version: 1.0\n" +
		"Content-Type: multipart/alternative; boundary=\"000000abc\"\n" +
		"\n" +
		"--000000abc\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"\n" +
		plain + "\n" +
		"--000000abc\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"\n" +
		html + "\n" +
		"--000000abc--\n"
}

func TestParser_FullDocument(t *testing.T) {
	plain := "הוסף רינה לוי\n" +
		"הוסף 052-7654321\n" +
		"הוסף rina@example.com\n" +
		"\n" +
		"---------- Forwarded message ---------\n" +
		"מאת: יומן <noreply@yoman.co.il>\n"
	content := buildForwardedEmail(plain, vendorHTML)

	parser := NewParser(zerolog.Nop())
	record, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := map[string]string{
		meeting.FieldFrom:            "Dana Cohen <dana@example.com>",
		meeting.FieldDate:            "05/08/2025",
		meeting.FieldTime:            "14:00",
		meeting.FieldClient:          "יוסי כהן",
		meeting.FieldPhone:           "0521234567",
		meeting.FieldEmail:           "yossi@example.com",
		meeting.FieldAdditionalName:  "רינה לוי",
		meeting.FieldAdditionalPhone: "0527654321",
		meeting.FieldAdditionalEmail: "rina@example.com",
	}
	for key, want := range expected {
		if got := record.Get(key); got != want {
			t.Errorf("Field %s: expected %q, got %q", key, want, got)
		}
	}
}

func TestParser_MalformedEnvelope(t *testing.T) {
	parser := NewParser(zerolog.Nop())

	_, err := parser.Parse("From: dana@example.com\nSubject: no separator anywhere")
	if err == nil {
		t.Fatal("Expected EnvelopeError, got nil")
	}
	if _, ok := err.(*email.EnvelopeError); !ok {
		t.Errorf("Expected EnvelopeError, got %T", err)
	}
}

func TestParser_MissingFrom(t *testing.T) {
	parser := NewParser(zerolog.Nop())

	_, err := parser.Parse("To: receive@example.com\n\nbody mentioning yoman.co.il")
	if err == nil {
		t.Fatal("Expected EnvelopeError, got nil")
	}
	if _, ok := err.(*email.EnvelopeError); !ok {
		t.Errorf("Expected EnvelopeError, got %T", err)
	}
}

func TestParser_UnsupportedDomain(t *testing.T) {
	parser := NewParser(zerolog.Nop())

	// Well-formed envelope, no allow-listed domain anywhere: rejected
	// before any decoding is attempted, even though no HTML part exists.
	_, err := parser.Parse("From: dana@example.com\n\nsome unrelated newsletter")
	if err == nil {
		t.Fatal("Expected RejectError, got nil")
	}
	if _, ok := err.(*common.RejectError); !ok {
		t.Errorf("Expected RejectError, got %T", err)
	}
}

func TestParser_NoHTMLContent(t *testing.T) {
	parser := NewParser(zerolog.Nop())

	content := "From: dana@example.com\n\nforwarded booking from yoman.co.il but plain text only"
	_, err := parser.Parse(content)
	if err == nil {
		t.Fatal("Expected DecodeError, got nil")
	}
	if _, ok := err.(*email.DecodeError); !ok {
		t.Errorf("Expected DecodeError, got %T", err)
	}
}

func TestParser_InsufficientFields(t *testing.T) {
	// Vendor payload carrying only a client name: from + client is below
	// the validity threshold.
	html := `<html><body><div>פרטי התקשרות: יוסי כהן</div></body></html>`
	content := buildForwardedEmail("---------- Forwarded message ---------\n", html)

	parser := NewParser(zerolog.Nop())
	_, err := parser.Parse(content)
	if err == nil {
		t.Fatal("Expected UnprocessableError, got nil")
	}
	if _, ok := err.(*meeting.UnprocessableError); !ok {
		t.Errorf("Expected UnprocessableError, got %T", err)
	}
}

func TestParser_UnknownMonthDefaultsToJanuary(t *testing.T) {
	html := `<html><body>
<div>נקבעה לך פגישה חדשה ביום 5 פלומבר 2025 בשעה 14:00</div>
<div>פרטי התקשרות: יוסי כהן</div>
</body></html>`
	content := buildForwardedEmail("---------- Forwarded message ---------\n", html)

	parser := NewParser(zerolog.Nop())
	record, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := record.Get(meeting.FieldDate); got != "05/01/2025" {
		t.Errorf("Expected month defaulted to 01, got %s", got)
	}
}

func TestParser_NoForwardingMarkerFallback(t *testing.T) {
	// No recognized marker in the decoded HTML: the whole body is treated
	// as forwarded content and the labeled fields still match.
	content := buildForwardedEmail("nothing interesting here\n", vendorHTML)

	parser := NewParser(zerolog.Nop())
	record, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := record.Get(meeting.FieldClient); got != "יוסי כהן" {
		t.Errorf("Expected client extracted via whole-document fallback, got %q", got)
	}
	if record.Has(meeting.FieldAdditionalName) {
		t.Error("Expected no additional attendee")
	}
}

func TestParser_CustomDomains(t *testing.T) {
	parser := NewParserWithDomains(zerolog.Nop(), []string{"other-vendor.example"})

	content := buildForwardedEmail("---------- Forwarded message ---------\n", vendorHTML)
	_, err := parser.Parse(content)
	if err == nil {
		t.Fatal("Expected RejectError for domain outside custom allow-list, got nil")
	}
	if _, ok := err.(*common.RejectError); !ok {
		t.Errorf("Expected RejectError, got %T", err)
	}
}
