// Package email handles raw document framing and transfer-encoding decoding
// for forwarded booking-confirmation emails.
package email

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	fromHeaderRegex     = regexp.MustCompile(`(?m)^From:[ \t]*(.+?)[ \t]*$`)
	base64EnvelopeRegex = regexp.MustCompile(`(?s)Content-Transfer-Encoding: base64\r?\n\r?\n([^-]+)`)
)

// EnvelopeError indicates the raw document is not a well-formed email:
// the header/body separator or the From header is missing.
type EnvelopeError struct {
	Message string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("invalid envelope: %s", e.Message)
}

// NewEnvelopeError creates a new EnvelopeError
func NewEnvelopeError(message string) *EnvelopeError {
	return &EnvelopeError{Message: message}
}

// SplitHeaders returns the header block of a raw email document, everything
// before the first blank line (RFC 5322 framing).
func SplitHeaders(content string) (string, error) {
	idx := strings.Index(content, "\n\n")
	if idx == -1 {
		idx = strings.Index(content, "\r\n\r\n")
	}
	if idx == -1 {
		return "", NewEnvelopeError("no blank line separating headers from body")
	}
	return content[:idx], nil
}

// From extracts the From header value from the document's header block.
func From(content string) (string, error) {
	headers, err := SplitHeaders(content)
	if err != nil {
		return "", err
	}

	match := fromHeaderRegex.FindStringSubmatch(headers)
	if match == nil {
		return "", NewEnvelopeError("no From address found in email headers")
	}
	return strings.TrimSpace(match[1]), nil
}

// Address returns the bare address from a "Name <addr>" From value.
func Address(from string) string {
	if startIdx := strings.Index(from, "<"); startIdx != -1 {
		if endIdx := strings.Index(from[startIdx:], ">"); endIdx != -1 {
			return from[startIdx+1 : startIdx+endIdx]
		}
	}
	return strings.TrimSpace(from)
}

// DisplayName returns the display-name portion of a "Name <addr>" From
// value. Without an angle-bracket address the whole value is used. The
// fallback covers values that carry no name at all.
func DisplayName(from, fallback string) string {
	name := strings.TrimSpace(from)
	if startIdx := strings.Index(from, "<"); startIdx != -1 && strings.Contains(from[startIdx:], ">") {
		name = strings.TrimSpace(from[:startIdx])
	}
	if name == "" {
		return fallback
	}
	return name
}

// DecodeBase64Envelope decodes a document whose body is base64
// transfer-encoded, returning the original document when no base64 block is
// present or the block does not decode. Forwarding markers live in the
// underlying text, so marker searches must run on the decoded form.
func DecodeBase64Envelope(content string) string {
	if !strings.Contains(content, "Content-Transfer-Encoding: base64") {
		return content
	}

	match := base64EnvelopeRegex.FindStringSubmatch(content)
	if match == nil {
		return content
	}

	block := strings.NewReplacer("\n", "", "\r", "").Replace(match[1])
	decoded, err := base64.StdEncoding.DecodeString(block)
	if err != nil || !utf8.Valid(decoded) {
		return content
	}
	return string(decoded)
}
