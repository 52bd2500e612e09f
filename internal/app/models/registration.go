package models

import (
	"fmt"
	"regexp"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Registration is a single submitted registration. Fields holds the raw
// form values keyed by field name (p{i}_name, custom_q_..., etc.);
// ParticipantCount is always recomputed from the event, never taken from
// the submission.
type Registration struct {
	ID               string            `json:"id"`
	Fields           map[string]string `json:"fields"`
	ParticipantCount int               `json:"participantCount"`
	TimeStamp        time.Time         `json:"timeStamp"`
}

// MailRecord is a durable outbox entry describing one confirmation email,
// written next to its registration for an external mailer to consume.
type MailRecord struct {
	ID       string      `json:"id"`
	To       []string    `json:"to"`
	Message  MailMessage `json:"message"`
	Delivery string      `json:"delivery"`
}

// MailMessage is the subject/body payload of a mail record
type MailMessage struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mail delivery states used by the outbox worker.
const (
	DeliveryPending = "PENDING"
	DeliverySent    = "SENT"
	DeliveryError   = "ERROR"
)

// RegistrationCollection derives the collection a registration for the
// event is stored in: the event name with whitespace stripped, suffixed
// by Teams or Participants.
func RegistrationCollection(e *Event) string {
	suffix := "Participants"
	if e.ParticipationType == ParticipationTeam {
		suffix = "Teams"
	}
	return stripWhitespace(e.EventName) + suffix
}

// MailCollection derives the sibling outbox collection for the event
func MailCollection(e *Event) string {
	return stripWhitespace(e.EventName) + "Mails"
}

// CustomQuestionFieldName maps a question label to its form field name:
// whitespace runs collapse to single underscores, prefixed custom_q_.
func CustomQuestionFieldName(label string) string {
	return "custom_q_" + whitespaceRun.ReplaceAllString(label, "_")
}

// ParticipantFieldName builds the field name of a participant attribute,
// e.g. ParticipantFieldName(2, "email") == "p2_email".
func ParticipantFieldName(index int, attr string) string {
	return fmt.Sprintf("p%d_%s", index, attr)
}

func stripWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, "")
}
