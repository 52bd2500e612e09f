package repositories

import (
	"github.com/ieeesb/event-portal/internal/store"
)

// Collection names fixed by the data model. Registration and mail
// collections are derived per event and live in the models package.
const (
	eventsCollection     = "events"
	pastEventsCollection = "pastEvents"
)

// Repositories holds all repository instances
type Repositories struct {
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	PastEventRepository    *PastEventRepository
	MailRepository         *MailRepository
}

// NewRepositories creates all repositories over one document store
func NewRepositories(st store.Store) *Repositories {
	return &Repositories{
		EventRepository:        NewEventRepository(st),
		RegistrationRepository: NewRegistrationRepository(st),
		PastEventRepository:    NewPastEventRepository(st),
		MailRepository:         NewMailRepository(st),
	}
}
