package parsers

import (
	"strings"

	"github.com/hechven/meeting-mailer/meeting"
	"github.com/hechven/meeting-mailer/parsers/common"
	"github.com/hechven/meeting-mailer/pkg/email"
)

// Attendee declaration prefixes. The Hebrew and English tokens are
// equivalent; the English one matches case-insensitively.
const (
	hebrewAddPrefix  = "הוסף "
	englishAddPrefix = "ADD "
)

// parseAdditionalAttendee finds a second attendee declared by the forwarder
// in the pre-forward region, falling back to the full document when no
// forwarding marker exists or the region yields nothing. The scan runs on
// the envelope-decoded document, not the decoded HTML part.
func (p *Parser) parseAdditionalAttendee(content string) *meeting.Attendee {
	decoded := email.DecodeBase64Envelope(content)

	if pre := preForwardedContent(decoded); pre != "" {
		if attendee := p.attendeeFromContent(pre); attendee != nil {
			return attendee
		}
	}

	return p.attendeeFromContent(decoded)
}

// attendeeFromContent scans lines for the attendee prefixes. The first
// prefixed line is the name; later prefixed lines are classified as phone
// then email, first valid match wins, everything else is discarded.
func (p *Parser) attendeeFromContent(content string) *meeting.Attendee {
	if content == "" {
		return nil
	}

	var attendee meeting.Attendee
	foundName := false

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 2 {
			continue
		}

		var value string
		switch {
		case strings.HasPrefix(line, hebrewAddPrefix):
			value = strings.TrimSpace(line[len(hebrewAddPrefix):])
		case len(line) >= len(englishAddPrefix) && strings.EqualFold(line[:len(englishAddPrefix)], englishAddPrefix):
			value = strings.TrimSpace(line[len(englishAddPrefix):])
		default:
			continue
		}

		if !foundName {
			attendee.Name = value
			foundName = true
			p.log.Debug().Str("name", common.SanitizeForLog(value)).Msg("attendee name found")
			continue
		}

		if phone := common.ParsePhoneNumber(value); attendee.Phone == "" && phone != "" {
			attendee.Phone = phone
		} else if attendee.Email == "" && common.IsEmail(value) {
			attendee.Email = value
		} else {
			p.log.Debug().Str("line", common.SanitizeForLog(value)).Msg("ignoring attendee line, duplicate or unrecognized")
		}
	}

	if !foundName {
		return nil
	}
	return &attendee
}
