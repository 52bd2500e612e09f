package models

import "time"

// PastEvent is a gallery entry for an event that already happened. It is
// independent of the live event lifecycle.
type PastEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	PosterURL string    `json:"posterUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
