// Package roles manages the role collection.
package roles

import (
	"context"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/store"
)

const basePath = "/role"

// Role is a named permission group.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r Role) EntityID() string { return r.ID }

// Payload is the create/update form body.
type Payload struct {
	Name string `json:"name" validate:"required"`
}

// Store is the role resource store.
type Store struct {
	*store.Store[Role]
}

// NewStore creates the role store.
func NewStore(client *api.Client, center *notify.Center, opts ...store.Option[Role]) *Store {
	return &Store{Store: store.New("role", basePath, client, center, opts...)}
}

// FetchByName hydrates the selected role by name. The API serves names and
// ids from the same path.
func (s *Store) FetchByName(ctx context.Context, name string) error {
	return s.FetchByID(ctx, name)
}
