package models

import "time"

// ParticipationType says whether an event registers individuals or teams
type ParticipationType string

const (
	ParticipationIndividual ParticipationType = "individual"
	ParticipationTeam       ParticipationType = "team"
)

// EventStatus is the registration state of an event
type EventStatus string

const (
	StatusOpen   EventStatus = "open"
	StatusClosed EventStatus = "closed"
)

// QuestionType selects the widget of a custom question
type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionYesNo  QuestionType = "yesno"
	QuestionRating QuestionType = "rating"
)

// CustomQuestion is an admin-authored extra form field
type CustomQuestion struct {
	Label string       `json:"label"`
	Type  QuestionType `json:"type"`
}

// Event represents a live event document. At most one event store-wide has
// IsActive set; that invariant is maintained exclusively by the lifecycle
// service's batch activation.
type Event struct {
	ID                string            `json:"id"`
	EventName         string            `json:"eventName"`
	Description       string            `json:"description"`
	PosterURL         string            `json:"posterUrl"`
	ParticipationType ParticipationType `json:"participationType"`
	TeamSize          int               `json:"teamSize,omitempty"`
	Status            EventStatus       `json:"status"`
	IsActive          bool              `json:"isActive"`
	EmailTemplate     string            `json:"emailTemplate"`
	CustomQuestions   []CustomQuestion  `json:"customQuestions,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// ParticipantCount derives how many participant blocks the event's
// registration form carries. The bool is false when the event is a team
// event with a non-positive team size, which is a configuration error.
func (e *Event) ParticipantCount() (int, bool) {
	if e.ParticipationType == ParticipationTeam {
		if e.TeamSize <= 0 {
			return 0, false
		}
		return e.TeamSize, true
	}
	return 1, true
}
