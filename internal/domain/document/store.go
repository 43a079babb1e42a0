// internal/domain/document/store.go
package document

import "context"

// Collection keys of the documents kept by the tracker.
const (
	KeyBirthdays = "birthdays"
	KeySettings  = "settings"
)

// Store maps a collection key to one opaque JSON document. Documents are read
// and replaced whole; there is no partial update and no concurrency token.
type Store interface {
	// Get returns nil, nil when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte) error
}

// Unavailable is a Store whose every call fails with Err. It stands in for a
// backend whose configuration is missing so the failure surfaces per request.
type Unavailable struct {
	Err error
}

func (u Unavailable) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, u.Err
}

func (u Unavailable) Set(ctx context.Context, key string, body []byte) error {
	return u.Err
}
