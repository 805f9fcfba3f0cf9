package email

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDecodeHTML_Base64(t *testing.T) {
	html := "<html><body><div>פרטי התקשרות: יוסי כהן</div></body></html>"
	encoded := base64.StdEncoding.EncodeToString([]byte(html))
	content := "From: a@b.com\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\n" +
		"Content-Transfer-Encoding: base64\n\n" +
		encoded + "\n"

	decoded, err := DecodeHTML(content, zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeHTML failed: %v", err)
	}
	if decoded != html {
		t.Errorf("Expected decoded HTML, got %q", decoded)
	}
}

func TestDecodeHTML_Base64WithLineBreaks(t *testing.T) {
	html := "<html><body>hello world hello world</body></html>"
	encoded := base64.StdEncoding.EncodeToString([]byte(html))
	// Wrap the base64 block the way mail clients do.
	wrapped := encoded[:20] + "\n" + encoded[20:]
	content := "Content-Type: text/html; charset=\"UTF-8\"\n" +
		"Content-Transfer-Encoding: base64\n\n" +
		wrapped + "\n"

	decoded, err := DecodeHTML(content, zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeHTML failed: %v", err)
	}
	if decoded != html {
		t.Errorf("Expected decoded HTML, got %q", decoded)
	}
}

func TestDecodeHTML_QuotedPrintableUTF8(t *testing.T) {
	// "שלום" quoted-printable encoded as UTF-8 bytes.
	content := "Content-Type: text/html; charset=\"UTF-8\"\n" +
		"Content-Transfer-Encoding: quoted-printable\n\n" +
		"<p>=D7=A9=D7=9C=D7=95=D7=9D</p>"

	decoded, err := DecodeHTML(content, zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeHTML failed: %v", err)
	}
	if decoded != "<p>שלום</p>" {
		t.Errorf("Expected Hebrew text, got %q", decoded)
	}
}

func TestDecodeHTML_QuotedPrintableLatin1Retry(t *testing.T) {
	// =E9 is 0xE9, invalid as UTF-8 on its own, Latin-1 é.
	content := "Content-Type: text/html; charset=\"ISO-8859-1\"\n" +
		"Content-Transfer-Encoding: quoted-printable\n\n" +
		"<p>Caf=E9</p>"

	decoded, err := DecodeHTML(content, zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeHTML failed: %v", err)
	}
	if decoded != "<p>Café</p>" {
		t.Errorf("Expected latin-1 decoded text, got %q", decoded)
	}
}

func TestDecodeHTML_NoHTMLContent(t *testing.T) {
	content := "From: a@b.com\n\nplain text body only"

	_, err := DecodeHTML(content, zerolog.Nop())
	if err == nil {
		t.Fatal("Expected DecodeError, got nil")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Errorf("Expected DecodeError, got %T", err)
	}
}

func TestDecodeHTML_BadBase64FallsThrough(t *testing.T) {
	// A block announced as base64 that does not decode is not fatal: the
	// quoted-printable strategy still gets its shot at the part.
	content := "Content-Type: text/html; charset=\"UTF-8\"\n" +
		"Content-Transfer-Encoding: base64\n\n" +
		"<p>not actually encoded</p>"

	decoded, err := DecodeHTML(content, zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeHTML failed: %v", err)
	}
	if !strings.Contains(decoded, "not actually encoded") {
		t.Errorf("Expected fall-through decode, got %q", decoded)
	}
}
