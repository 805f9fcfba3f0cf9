package common

import (
	"regexp"
	"strings"
)

// MaxLogValueLength caps input-derived values written to logs.
const MaxLogValueLength = 500

var (
	entityReplacer   = strings.NewReplacer("&quot;", `"`, "&lt;", "<", "&gt;", ">", "&amp;", "&")
	brTagRegex       = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	blankRunRegex    = regexp.MustCompile(`\n\s*\n`)
	hSpaceRegex      = regexp.MustCompile(`[ \t]+`)
	controlCharRegex = regexp.MustCompile("[\x00-\x1f\x7f-]")

	// Israeli mobile numbers: local 05x form or international +972-5x form,
	// hyphens optional.
	mobileRegex = regexp.MustCompile(`(05[0-9]|\+972-5[0-9])-?[0-9]{7}`)
	emailRegex  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// CleanHTMLTags removes HTML markup from text while preserving content and
// line structure: the four standard named entities are decoded, line-break
// tags become newlines, remaining tags are stripped, and whitespace runs
// are collapsed. Applying it to already-clean text is a no-op.
func CleanHTMLTags(text string) string {
	if text == "" {
		return ""
	}

	text = entityReplacer.Replace(text)
	text = brTagRegex.ReplaceAllString(text, "\n")
	text = htmlTagRegex.ReplaceAllString(text, "")
	text = blankRunRegex.ReplaceAllString(text, "\n\n")
	text = hSpaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SanitizeForLog makes an input-derived value safe to log: control
// characters are stripped and the length is capped to prevent log
// injection and flooding.
func SanitizeForLog(value string) string {
	sanitized := controlCharRegex.ReplaceAllString(value, "")
	if len(sanitized) > MaxLogValueLength {
		return sanitized[:MaxLogValueLength] + "..."
	}
	return sanitized
}

// ParsePhoneNumber extracts a mobile number from text and normalizes it to
// the local form: hyphens stripped, a +972 prefix rewritten to the leading
// zero. Returns "" when no valid number is present.
func ParsePhoneNumber(content string) string {
	match := mobileRegex.FindString(content)
	if match == "" {
		return ""
	}

	phone := strings.ReplaceAll(match, "-", "")
	if strings.HasPrefix(phone, "+9725") {
		phone = "0" + phone[4:]
	}
	return phone
}

// InternationalPhone converts a stored phone to the international form that
// messaging deep links require. A phone is only eligible when, with
// separators stripped, it is all-digit and at least 9 digits long.
func InternationalPhone(phone string) (string, bool) {
	phone = strings.NewReplacer("-", "", " ", "").Replace(phone)
	if len(phone) < 9 {
		return "", false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", false
		}
	}

	if strings.HasPrefix(phone, "0") {
		phone = "972" + phone[1:]
	}
	return phone, true
}

// IsEmail reports whether content has the syntactic shape of an email
// address. This is a minimal check, not full RFC validation.
func IsEmail(content string) bool {
	return emailRegex.MatchString(content)
}
