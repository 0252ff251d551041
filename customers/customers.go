// Package customers manages the customer collection.
package customers

import (
	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/store"
)

const basePath = "/user"

// Customer is an end user who requests services.
type Customer struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c Customer) EntityID() string { return c.ID }

// Payload is the create/update form body.
type Payload struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7"`
}

// Store is the customer resource store.
type Store struct {
	*store.Store[Customer]
}

// NewStore creates the customer store.
func NewStore(client *api.Client, center *notify.Center, opts ...store.Option[Customer]) *Store {
	return &Store{Store: store.New("customer", basePath, client, center, opts...)}
}
