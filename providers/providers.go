// Package providers manages the service provider collection.
package providers

import (
	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/store"
)

const basePath = "/serviceProvider"

// Provider is a tradesperson offering services under one category.
type Provider struct {
	ID                  string `json:"id"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	PhoneNumber         string `json:"phoneNumber"`
	Gender              string `json:"gender"`
	DateOfBirth         string `json:"dateOfBirth"`
	Role                string `json:"role"`
	Experience          int    `json:"experience"`
	PersonalDescription string `json:"personalDescription,omitempty"`
	ServiceCategoryID   string `json:"serviceCategoryId"`
}

func (p Provider) EntityID() string { return p.ID }

// Payload is the create/update form body.
type Payload struct {
	FirstName           string `json:"firstName" validate:"required"`
	LastName            string `json:"lastName" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	PhoneNumber         string `json:"phoneNumber" validate:"required,min=7"`
	Gender              string `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth         string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Experience          int    `json:"experience" validate:"gte=0"`
	PersonalDescription string `json:"personalDescription,omitempty"`
	ServiceCategoryID   string `json:"serviceCategoryId" validate:"required"`
}

// Store is the provider resource store.
type Store struct {
	*store.Store[Provider]
}

// NewStore creates the provider store.
func NewStore(client *api.Client, center *notify.Center, opts ...store.Option[Provider]) *Store {
	return &Store{Store: store.New("provider", basePath, client, center, opts...)}
}
