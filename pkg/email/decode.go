package email

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/quotedprintable"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

var (
	base64HTMLRegex = regexp.MustCompile(`(?s)Content-Type: text/html[^\r\n]*\r?\nContent-Transfer-Encoding: base64\r?\n\r?\n([^-]+)`)
	quotedHTMLRegex = regexp.MustCompile(`(?s)Content-Type: text/html[^\r\n]*\r?\n[^\r\n]*\r?\n\r?\n([^\r\n-]+)`)
)

// DecodeError indicates that no HTML body part could be decoded from the
// document under any transfer-encoding strategy.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s", e.Message)
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(message string) *DecodeError {
	return &DecodeError{Message: message}
}

// DecodeHTML locates the text/html body part of a raw document and returns
// its decoded text. Strategies run in order: a base64 transfer-encoded part
// first, then a quoted-printable part with a Latin-1 retry when the decoded
// bytes are not valid UTF-8. A failed strategy falls through to the next;
// only exhaustion of both is an error.
func DecodeHTML(content string, log zerolog.Logger) (string, error) {
	if match := base64HTMLRegex.FindStringSubmatch(content); match != nil {
		block := strings.NewReplacer("\n", "", "\r", "").Replace(match[1])
		log.Debug().Int("length", len(block)).Msg("base64 HTML content found")

		decoded, err := base64.StdEncoding.DecodeString(block)
		if err == nil && utf8.Valid(decoded) {
			return string(decoded), nil
		}
		log.Error().Err(err).Msg("error decoding base64 HTML part")
	}

	if match := quotedHTMLRegex.FindStringSubmatch(content); match != nil {
		log.Debug().Int("length", len(match[1])).Msg("quoted-printable HTML content found")

		decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(match[1])))
		if err != nil {
			log.Error().Err(err).Msg("error decoding quoted-printable HTML part")
		} else {
			if utf8.Valid(decoded) {
				return string(decoded), nil
			}
			// Not UTF-8, retry as Latin-1 before giving up.
			latin, err := charmap.ISO8859_1.NewDecoder().Bytes(decoded)
			if err == nil {
				return string(latin), nil
			}
			log.Error().Err(err).Msg("error decoding quoted-printable HTML part as latin-1")
		}
	}

	log.Warn().Msg("no HTML content found, both strategies failed")
	return "", NewDecodeError("no decodable HTML content in email")
}
