// Package compose turns a finished meeting record into its client-facing
// artifacts: a reminder message, messaging and calendar deep links, and the
// plain-text and HTML confirmation bodies.
package compose

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hechven/meeting-mailer/meeting"
	"github.com/hechven/meeting-mailer/parsers/common"
	"github.com/hechven/meeting-mailer/pkg/email"
)

// InvalidDateLink is the sentinel calendar link produced when the record's
// date or time cannot form a calendar event.
const InvalidDateLink = "#invalid-date"

// Hebrew day names indexed by Monday-based weekday numbers (Monday is 0).
// The ordering is carried over from the production table as-is.
var hebrewDays = []string{
	"יום שני",
	"יום שלישי",
	"יום רביעי",
	"יום חמישי",
	"יום שישי",
	"שבת",
	"יום ראשון",
}

// Notification bundles everything the delivery collaborator needs to send
// the confirmation email back to the forwarder.
type Notification struct {
	To            string
	Subject       string
	TextBody      string
	HTMLBody      string
	Reminder      string
	WhatsAppLinks []string
	CalendarLink  string
}

// Composer builds notifications from meeting records. It performs no I/O.
type Composer struct {
	log                zerolog.Logger
	consultantFallback string
}

// New creates a Composer. The fallback name is used when the record's from
// field carries no display name.
func New(log zerolog.Logger, consultantFallback string) *Composer {
	return &Composer{log: log, consultantFallback: consultantFallback}
}

// Compose produces all notification artifacts for a valid record.
func (c *Composer) Compose(record *meeting.Record) (*Notification, error) {
	from := record.Get(meeting.FieldFrom)
	if from == "" {
		return nil, fmt.Errorf("record has no from field")
	}
	address := email.Address(from)

	reminder := c.reminderText(record)
	links := c.whatsappLinks(record, reminder)
	calendarLink := c.calendarLink(record, address, reminder)

	return &Notification{
		To:            address,
		Subject:       Subject,
		TextBody:      c.textBody(record, links, calendarLink),
		HTMLBody:      c.htmlBody(record, links, calendarLink),
		Reminder:      reminder,
		WhatsAppLinks: links,
		CalendarLink:  calendarLink,
	}, nil
}

// reminderText renders the reminder message, choosing the couple template
// when the record carries a non-blank additional attendee name.
func (c *Composer) reminderText(record *meeting.Record) string {
	dayName := c.dayName(record.Get(meeting.FieldDate))
	consultant := email.DisplayName(record.Get(meeting.FieldFrom), c.consultantFallback)

	additionalName := strings.TrimSpace(record.Get(meeting.FieldAdditionalName))
	template := reminderSingleTemplate
	client := record.Get(meeting.FieldClient)
	if additionalName != "" {
		template = reminderCoupleTemplate
		client = record.Get(meeting.FieldClient) + " " + additionalName
	}

	return strings.NewReplacer(
		"{client}", client,
		"{day_name}", dayName,
		"{date}", strings.ReplaceAll(record.Get(meeting.FieldDate), "/", "."),
		"{time}", record.Get(meeting.FieldTime),
		"{consultant_name}", consultant,
	).Replace(template)
}

// dayName resolves the locale day-of-week label for a DD/MM/YYYY date.
// Failures degrade to an empty name rather than aborting composition.
func (c *Composer) dayName(date string) string {
	day, month, year, ok := splitDate(date)
	if !ok {
		return ""
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		c.log.Error().Str("date", common.SanitizeForLog(date)).Msg("invalid date for day-name resolution")
		return ""
	}

	// Monday-based weekday, matching the table ordering.
	return hebrewDays[(int(t.Weekday())+6)%7]
}

// whatsappLinks builds one wa.me deep link per attendee with a resolvable
// phone, the reminder text prefilled. The additional attendee's link is
// dropped when it would duplicate the main one.
func (c *Composer) whatsappLinks(record *meeting.Record, reminder string) []string {
	var links []string

	mainPhone, mainOK := common.InternationalPhone(record.Get(meeting.FieldPhone))
	if mainOK {
		links = append(links, "https://wa.me/"+mainPhone+"?text="+quote(reminder))
	}

	additionalPhone, ok := common.InternationalPhone(record.Get(meeting.FieldAdditionalPhone))
	if ok && (!mainOK || additionalPhone != mainPhone) {
		links = append(links, "https://wa.me/"+additionalPhone+"?text="+quote(reminder))
	}

	return links
}

// calendarLink builds a Google Calendar event link with a one-hour window
// starting at the record's date and time, in basic ISO8601 local form. A
// malformed or absent date/time degrades to the sentinel link.
func (c *Composer) calendarLink(record *meeting.Record, address, reminder string) string {
	day, month, year, ok := splitDate(record.Get(meeting.FieldDate))
	if !ok {
		return InvalidDateLink
	}
	hour, minute, ok := splitTime(record.Get(meeting.FieldTime))
	if !ok {
		return InvalidDateLink
	}

	start := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	if start.Year() != year || int(start.Month()) != month || start.Day() != day ||
		start.Hour() != hour || start.Minute() != minute {
		c.log.Error().
			Str("date", common.SanitizeForLog(record.Get(meeting.FieldDate))).
			Str("time", common.SanitizeForLog(record.Get(meeting.FieldTime))).
			Msg("invalid date/time values for calendar link")
		return InvalidDateLink
	}
	end := start.Add(time.Hour)

	clientName := record.Get(meeting.FieldClient)
	if additional := record.Get(meeting.FieldAdditionalName); additional != "" {
		clientName = clientName + " " + additional
	}
	subject := "פעמונים - פגישת ייעוץ כלכלי - " + clientName

	attendees := []string{address}
	if clientEmail := record.Get(meeting.FieldEmail); clientEmail != "" {
		attendees = append(attendees, clientEmail)
	}
	if additionalEmail := record.Get(meeting.FieldAdditionalEmail); additionalEmail != "" && !contains(attendees, additionalEmail) {
		attendees = append(attendees, additionalEmail)
	}

	return fmt.Sprintf(
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&dates=%s/%s&add=%s&details=%s",
		quote(subject),
		start.Format("20060102T150405"),
		end.Format("20060102T150405"),
		strings.Join(attendees, ","),
		quote(reminder),
	)
}

// textBody renders the plain-text confirmation body. The plain channel
// interpolates values unescaped.
func (c *Composer) textBody(record *meeting.Record, links []string, calendarLink string) string {
	var whatsappSection string
	switch {
	case len(links) > 1:
		whatsappSection = fmt.Sprintf(" WhatsApp %s: %s\n WhatsApp %s: %s",
			record.Get(meeting.FieldClient), links[0],
			record.Get(meeting.FieldAdditionalName), links[1])
	case len(links) == 1:
		whatsappSection = " WhatsApp: " + links[0]
	default:
		whatsappSection = " WhatsApp: לא נמצא מספר"
	}

	attendeeInfo := " לקוח: " + record.Get(meeting.FieldClient)
	if record.Has(meeting.FieldPhone) {
		attendeeInfo += "\n טלפון: " + record.Get(meeting.FieldPhone)
	}
	if record.Has(meeting.FieldEmail) {
		attendeeInfo += "\n אימייל: " + record.Get(meeting.FieldEmail)
	}

	if additionalName := strings.TrimSpace(record.Get(meeting.FieldAdditionalName)); additionalName != "" {
		attendeeInfo += "\n\n משתתף נוסף: " + additionalName

		if additionalPhone := record.Get(meeting.FieldAdditionalPhone); additionalPhone != "" {
			attendeeInfo += "\n טלפון: " + additionalPhone
			if samePhone(additionalPhone, record.Get(meeting.FieldPhone)) {
				attendeeInfo += " (כפול)"
			}
		}
		if additionalEmail := record.Get(meeting.FieldAdditionalEmail); additionalEmail != "" {
			attendeeInfo += "\n אימייל: " + additionalEmail
			if additionalEmail == record.Get(meeting.FieldEmail) {
				attendeeInfo += " (כפול)"
			}
		}
	}

	return fmt.Sprintf(`שלום,

קישורים שימושיים:
%s
 הוספה ליומן: %s

פרטי הפגישה:
 תאריך: %s
 שעה: %s
%s

בהצלחה!`,
		whatsappSection,
		calendarLink,
		record.Get(meeting.FieldDate),
		record.Get(meeting.FieldTime),
		attendeeInfo,
	)
}

// htmlBody renders the HTML confirmation body. Every interpolated value
// goes through escape exactly once, here and nowhere else.
func (c *Composer) htmlBody(record *meeting.Record, links []string, calendarLink string) string {
	var linksHTML string
	switch {
	case len(links) > 1:
		linksHTML = fmt.Sprintf(
			` <a href="%s" style="color: #25D366; text-decoration: underline; font-weight: bold;">WhatsApp %s</a><br>`+"\n"+
				` <a href="%s" style="color: #25D366; text-decoration: underline; font-weight: bold;">WhatsApp %s</a>`,
			escape(links[0]), escape(record.Get(meeting.FieldClient)),
			escape(links[1]), escape(record.Get(meeting.FieldAdditionalName)))
	case len(links) == 1:
		linksHTML = fmt.Sprintf(
			` <a href="%s" style="color: #25D366; text-decoration: underline; font-weight: bold;">שליחת תזכורת WhatsApp</a>`,
			escape(links[0]))
	default:
		linksHTML = " WhatsApp: לא נמצא מספר"
	}

	var additionalHTML string
	if additionalName := strings.TrimSpace(record.Get(meeting.FieldAdditionalName)); additionalName != "" {
		additionalHTML = "<br><br>משתתף נוסף:<br> לקוח: " + escape(additionalName) + "<br>"

		if additionalPhone := record.Get(meeting.FieldAdditionalPhone); additionalPhone != "" {
			additionalHTML += " טלפון: " + escape(additionalPhone)
			if samePhone(additionalPhone, record.Get(meeting.FieldPhone)) {
				additionalHTML += " (כפול)"
			}
			additionalHTML += "<br>"
		} else {
			additionalHTML += " טלפון: חסר<br>"
		}

		if additionalEmail := record.Get(meeting.FieldAdditionalEmail); additionalEmail != "" {
			additionalHTML += " אימייל: " + escape(additionalEmail)
			if additionalEmail == record.Get(meeting.FieldEmail) {
				additionalHTML += " (כפול)"
			}
		} else {
			additionalHTML += " אימייל: חסר"
		}
	}

	return strings.NewReplacer(
		"{whatsapp_links_html}", linksHTML,
		"{calendar_link}", escape(calendarLink),
		"{date}", escape(record.Get(meeting.FieldDate)),
		"{time}", escape(record.Get(meeting.FieldTime)),
		"{client}", escape(record.Get(meeting.FieldClient)),
		"{phone}", escape(record.Get(meeting.FieldPhone)),
		"{email}", escape(record.Get(meeting.FieldEmail)),
		"{additional_attendee_html}", additionalHTML,
	).Replace(htmlEmailTemplate)
}

func splitDate(date string) (day, month, year int, ok bool) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	var err error
	if day, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if year, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

func splitTime(timeOfDay string) (hour, minute int, ok bool) {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	var err error
	if hour, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, false
	}
	if minute, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}

func samePhone(a, b string) bool {
	return strings.ReplaceAll(a, "-", "") == strings.ReplaceAll(b, "-", "")
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// quote percent-encodes a value for a URL query, with spaces as %20 the way
// messaging and calendar apps expect.
func quote(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func escape(value string) string {
	return html.EscapeString(value)
}
