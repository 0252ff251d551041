// Package services manages the service list collection, including the
// by-category view used when an edit form narrows the offerings to one
// category.
package services

import (
	"context"
	"sync"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/store"
)

const basePath = "/serviceList"

// Service is one offering inside a category.
type Service struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ServiceCategoryID string `json:"serviceCategoryId"`
	CreatedAt         string `json:"createdAt"`
	ModifiedAt        string `json:"modifiedAt,omitempty"`
}

func (s Service) EntityID() string { return s.ID }

// Payload is the create/update form body.
type Payload struct {
	Name              string `json:"name" validate:"required"`
	ServiceCategoryID string `json:"serviceCategoryId" validate:"required"`
}

// Store is the service list resource store, extended with a separate
// by-category slice that fetches independently of the main collection.
type Store struct {
	*store.Store[Service]

	mu         sync.RWMutex
	byCategory []Service
}

// NewStore creates the service list store.
func NewStore(client *api.Client, center *notify.Center, opts ...store.Option[Service]) *Store {
	return &Store{Store: store.New("service", basePath, client, center, opts...)}
}

// FetchByCategory loads the services belonging to one category into the
// by-category slice, leaving the main collection untouched. Failures follow
// the same error-flag and notification discipline as FetchAll.
func (s *Store) FetchByCategory(ctx context.Context, categoryID string) error {
	return s.FetchInto(ctx, basePath+"/by-category/"+categoryID, func(list []Service) {
		s.mu.Lock()
		s.byCategory = list
		s.mu.Unlock()
	})
}

// ByCategory returns a copy of the last fetched by-category slice.
func (s *Store) ByCategory() []Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Service, len(s.byCategory))
	copy(out, s.byCategory)
	return out
}

// ClearByCategory empties the by-category slice.
func (s *Store) ClearByCategory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCategory = nil
}
