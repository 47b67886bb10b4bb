package qualification

import (
	"context"
	"sync"
)

// Repository defines the interface for result storage.
type Repository interface {
	Save(ctx context.Context, res Result) error
	LatestByContact(ctx context.Context, locationID, contactID string) (*Result, error)
}

// InMemoryRepository keeps results in memory, newest first per contact.
type InMemoryRepository struct {
	mu      sync.RWMutex
	results map[string][]Result
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		results: make(map[string][]Result),
	}
}

func contactKey(locationID, contactID string) string {
	return locationID + "/" + contactID
}

// Save appends a result for the contact.
func (r *InMemoryRepository) Save(ctx context.Context, res Result) error {
	key := contactKey(res.LocationID, res.ContactID)

	r.mu.Lock()
	r.results[key] = append(r.results[key], res)
	r.mu.Unlock()

	return nil
}

// LatestByContact returns the most recently saved result for the
// contact.
func (r *InMemoryRepository) LatestByContact(ctx context.Context, locationID, contactID string) (*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.results[contactKey(locationID, contactID)]
	if len(stored) == 0 {
		return nil, ErrResultNotFound
	}
	latest := stored[len(stored)-1]
	return &latest, nil
}
