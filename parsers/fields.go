package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hechven/meeting-mailer/meeting"
	"github.com/hechven/meeting-mailer/parsers/common"
)

// Hebrew month names to two-digit numbers.
var hebrewMonths = map[string]string{
	"ינואר":   "01",
	"פברואר":  "02",
	"מרץ":     "03",
	"אפריל":   "04",
	"מאי":     "05",
	"יוני":    "06",
	"יולי":    "07",
	"אוגוסט":  "08",
	"ספטמבר":  "09",
	"אוקטובר": "10",
	"נובמבר":  "11",
	"דצמבר":   "12",
}

var (
	dateTimeRegex    = regexp.MustCompile(`(\d{1,2}) ([^\s]+) (\d{4}) בשעה (\d{1,2}:\d{2})`)
	clientRegex      = regexp.MustCompile(`פרטי התקשרות: ([^\n\r]+)`)
	mobileLabelRegex = regexp.MustCompile(`נייד: ([0-9]+)`)
	emailLabelRegex  = regexp.MustCompile(`דוא"ל: ([^\n\r]+)`)
)

// fieldRule is one named extraction rule. Rules are attempted independently
// over the same forwarded text: a pattern that does not match omits the
// field, while a matched pattern with an unexpected group shape returns a
// FieldError.
type fieldRule struct {
	name    string
	pattern *regexp.Regexp
	groups  int
	apply   func(groups []string, b *meeting.Builder)
}

func (p *Parser) fieldRules() []fieldRule {
	return []fieldRule{
		{
			name:    "date",
			pattern: dateTimeRegex,
			groups:  4,
			apply: func(groups []string, b *meeting.Builder) {
				day, monthHeb, year, timeOfDay := groups[0], groups[1], groups[2], groups[3]

				month, ok := hebrewMonths[monthHeb]
				if !ok {
					p.log.Warn().
						Str("month", common.SanitizeForLog(monthHeb)).
						Msg("unknown Hebrew month, defaulting to January")
					month = "01"
				}

				if len(day) == 1 {
					day = "0" + day
				}
				b.Set(meeting.FieldDate, fmt.Sprintf("%s/%s/%s", day, month, year))
				b.Set(meeting.FieldTime, timeOfDay)
			},
		},
		{
			name:    "client",
			pattern: clientRegex,
			groups:  1,
			apply: func(groups []string, b *meeting.Builder) {
				b.Set(meeting.FieldClient, strings.TrimSpace(groups[0]))
			},
		},
		{
			name:    "phone",
			pattern: mobileLabelRegex,
			groups:  1,
			apply: func(groups []string, b *meeting.Builder) {
				b.Set(meeting.FieldPhone, groups[0])
			},
		},
		{
			name:    "email",
			pattern: emailLabelRegex,
			groups:  1,
			apply: func(groups []string, b *meeting.Builder) {
				b.Set(meeting.FieldEmail, strings.TrimSpace(groups[0]))
			},
		},
	}
}

// extractMeetingDetails applies the field rules to the forwarded region of
// the decoded HTML. Absence of one field never blocks extraction of
// another.
func (p *Parser) extractMeetingDetails(decodedHTML string, b *meeting.Builder) error {
	forwarded := common.CleanHTMLTags(forwardedContent(decodedHTML))

	for _, rule := range p.fieldRules() {
		match := rule.pattern.FindStringSubmatch(forwarded)
		if match == nil {
			p.log.Debug().Str("field", rule.name).Msg("field not found")
			continue
		}
		if len(match)-1 != rule.groups {
			return common.NewFieldError(rule.name,
				fmt.Sprintf("pattern returned %d groups, expected %d", len(match)-1, rule.groups))
		}

		rule.apply(match[1:], b)
		p.log.Debug().
			Str("field", rule.name).
			Str("value", common.SanitizeForLog(match[1])).
			Msg("field extracted")
	}

	return nil
}
