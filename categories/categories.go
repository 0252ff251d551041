// Package categories manages the service category collection. Create and
// update go out as multipart form data because a category may carry an image
// upload.
package categories

import (
	"context"
	"strings"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/store"
)

const basePath = "/serviceCategory"

// Category groups related service offerings, e.g. "Plumbing".
type Category struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	CategoryImage string `json:"categoryImage,omitempty"`
	CreatedAt     string `json:"createdAt"`
	ModifiedAt    string `json:"modifiedAt,omitempty"`
}

func (c Category) EntityID() string { return c.ID }

// AssetURL resolves the category's image path against the asset base URL.
// Empty when the category has no image.
func (c Category) AssetURL(assetBaseURL string) string {
	if c.CategoryImage == "" {
		return ""
	}
	return strings.TrimSuffix(assetBaseURL, "/") + "/" + strings.TrimPrefix(c.CategoryImage, "/")
}

// Payload is the create/update form body. Image is optional.
type Payload struct {
	Name        string `validate:"required"`
	Description string
	Image       *api.FileAttachment
}

// Store is the category resource store.
type Store struct {
	*store.Store[Category]
}

// NewStore creates the category store.
func NewStore(client *api.Client, center *notify.Center, opts ...store.Option[Category]) *Store {
	opts = append([]store.Option[Category]{store.WithPlural[Category]("categories")}, opts...)
	return &Store{Store: store.New("category", basePath, client, center, opts...)}
}

// Create posts the payload as multipart form data.
func (s *Store) Create(ctx context.Context, p Payload, h store.Hooks) (Category, error) {
	return s.CreateForm(ctx, p.fields(), p.file(), h)
}

// Update puts the payload as multipart form data.
func (s *Store) Update(ctx context.Context, id string, p Payload, h store.Hooks) (Category, error) {
	return s.UpdateForm(ctx, id, p.fields(), p.file(), h)
}

// The API expects Pascal-cased multipart field names.
func (p Payload) fields() map[string]string {
	fields := map[string]string{"Name": p.Name}
	if p.Description != "" {
		fields["Description"] = p.Description
	}
	return fields
}

func (p Payload) file() *api.FileAttachment {
	if p.Image == nil {
		return nil
	}
	file := *p.Image
	if file.Field == "" {
		file.Field = "CategoryImageFile"
	}
	return &file
}
