package blobstorage

import (
	"context"
	"mime/multipart"
)

// BlobStorage stores uploaded poster files and returns a durable URL.
// The URL is treated as an opaque string by the rest of the system.
type BlobStorage interface {
	// SaveFile stores an uploaded file under the given path prefix and
	// returns the URL it can be fetched from.
	SaveFile(ctx context.Context, fileHeader *multipart.FileHeader, pathPrefix string) (string, error)
}

// Path prefixes fixed by the data layout.
const (
	EventPostersPath     = "event_posters"
	PastEventPostersPath = "past_event_posters"
)
