// Package parsers turns forwarded booking-confirmation emails from the
// supported scheduling vendors into structured meeting records.
package parsers

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/hechven/meeting-mailer/meeting"
	"github.com/hechven/meeting-mailer/parsers/common"
	"github.com/hechven/meeting-mailer/pkg/email"
)

// DefaultDomains are the booking vendors whose confirmations this pipeline
// understands.
var DefaultDomains = []string{"yoman.co.il", "tagatime.com"}

// Parser runs the decode-isolate-extract pipeline over one raw document.
// Each invocation is a pure function of its input; the parser itself holds
// no per-invocation state.
type Parser struct {
	log     zerolog.Logger
	domains []string
}

// NewParser creates a parser accepting the default vendor domains.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log, domains: DefaultDomains}
}

// NewParserWithDomains creates a parser with a custom domain allow-list.
func NewParserWithDomains(log zerolog.Logger, domains []string) *Parser {
	if len(domains) == 0 {
		domains = DefaultDomains
	}
	return &Parser{log: log, domains: domains}
}

// Parse extracts a meeting record from one raw email document. It returns a
// typed error when the envelope is malformed, the sender domain is not
// allowed, no HTML body decodes, a field rule breaks structurally, or too
// few fields survive extraction.
func (p *Parser) Parse(content string) (*meeting.Record, error) {
	from, err := email.From(content)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Str("from", common.SanitizeForLog(from)).Msg("from address extracted")

	if !p.supportedDomain(content) {
		return nil, common.NewRejectError("email not from a supported domain")
	}

	builder := meeting.NewBuilder()
	builder.Set(meeting.FieldFrom, from)

	decodedHTML, err := email.DecodeHTML(content, p.log)
	if err != nil {
		return nil, err
	}

	// The attendee declaration lives in the forwarder's own text, so it is
	// parsed from the raw document rather than the decoded HTML part.
	if attendee := p.parseAdditionalAttendee(content); attendee != nil {
		builder.Set(meeting.FieldAdditionalName, attendee.Name)
		builder.Set(meeting.FieldAdditionalPhone, attendee.Phone)
		builder.Set(meeting.FieldAdditionalEmail, attendee.Email)
		p.log.Debug().Str("name", common.SanitizeForLog(attendee.Name)).Msg("additional attendee found")
	}

	if err := p.extractMeetingDetails(decodedHTML, builder); err != nil {
		return nil, err
	}

	record, err := builder.Finalize()
	if err != nil {
		return nil, err
	}

	p.log.Info().Int("fields", builder.Len()).Msg("meeting record parsed")
	return record, nil
}

// supportedDomain is the admission check: the raw document must mention one
// of the allowed vendor domains.
func (p *Parser) supportedDomain(content string) bool {
	for _, domain := range p.domains {
		if strings.Contains(content, domain) {
			return true
		}
	}
	return false
}
