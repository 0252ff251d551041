// Package store implements the per-entity resource state container: an
// ordered collection, a selected item, loading/error flags, all mutated only
// by the outcomes of the fetch/create/update/delete operations. The cleanup
// and notification contract around mutating operations lives here once, so it
// cannot drift between entities.
package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/internal/utils"
	"github.com/servly/admin-console/notify"
)

// Entity is anything with a server-assigned identity.
type Entity interface {
	EntityID() string
}

// Store holds one entity collection. Items keep the server's order; the store
// only guarantees that no two items share an id.
type Store[T Entity] struct {
	name   string // singular display noun, e.g. "role"
	plural string
	path   string // collection path, e.g. "/role"
	api    *api.Client
	center *notify.Center
	log    zerolog.Logger

	mu       sync.RWMutex
	items    []T
	selected *T
	loading  bool
	errMsg   string
}

// Option configures a Store.
type Option[T Entity] func(*Store[T])

// WithLogger sets a structured logger for the store.
func WithLogger[T Entity](l zerolog.Logger) Option[T] {
	return func(s *Store[T]) { s.log = l }
}

// WithPlural overrides the naive plural used in display messages.
func WithPlural[T Entity](plural string) Option[T] {
	return func(s *Store[T]) { s.plural = plural }
}

// New creates a store for the collection served at path.
func New[T Entity](name, path string, client *api.Client, center *notify.Center, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:   name,
		plural: name + "s",
		path:   path,
		api:    client,
		center: center,
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Items returns a copy of the collection in server order.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Selected returns a copy of the selected item, or nil.
func (s *Store[T]) Selected() *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	return utils.Ptr(*s.selected)
}

// SetSelected marks an item as selected without a server round trip.
func (s *Store[T]) SetSelected(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = utils.Ptr(item)
}

// ClearSelected drops the selection and any stale error.
func (s *Store[T]) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.errMsg = ""
}

// IsLoading reports whether an operation is in flight.
func (s *Store[T]) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the display message of the last failed operation, empty after
// any success.
func (s *Store[T]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Name returns the store's display noun.
func (s *Store[T]) Name() string { return s.name }

// FetchAll replaces the collection with the server's current one. On failure
// the previous items remain visible with the error flag set.
func (s *Store[T]) FetchAll(ctx context.Context) error {
	s.begin()

	list, err := api.Get[[]T](ctx, s.api, s.path)
	if err != nil {
		s.fail(err, "Error fetching "+s.plural)
		return errors.Wrapf(err, "[Store.FetchAll] %s", s.plural)
	}

	s.mu.Lock()
	s.items = dedupe(list)
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// FetchInto loads the collection served at path through the same
// loading/error discipline as FetchAll, handing the result to apply instead
// of replacing the items.
func (s *Store[T]) FetchInto(ctx context.Context, path string, apply func([]T)) error {
	s.begin()

	list, err := api.Get[[]T](ctx, s.api, path)
	if err != nil {
		s.fail(err, "Error fetching "+s.plural)
		return errors.Wrapf(err, "[Store.FetchInto] %s", path)
	}

	apply(dedupe(list))
	s.mu.Lock()
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// FetchByID hydrates the selected item from the server.
func (s *Store[T]) FetchByID(ctx context.Context, id string) error {
	s.begin()

	item, err := api.Get[T](ctx, s.api, s.path+"/"+id)
	if err != nil {
		s.fail(err, "Error fetching "+s.name)
		return errors.Wrapf(err, "[Store.FetchByID] %s %s", s.name, id)
	}

	s.mu.Lock()
	s.selected = utils.Ptr(item)
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// Create posts body and appends the server-returned canonical entity. A
// business-rule rejection embedded in a 200 mutates nothing.
func (s *Store[T]) Create(ctx context.Context, body any, h Hooks) (T, error) {
	defer h.cleanup()
	s.begin()

	item, err := api.Post[T](ctx, s.api, s.path, body)
	if err != nil {
		s.fail(err, "Error adding "+s.name)
		return item, errors.Wrapf(err, "[Store.Create] %s", s.name)
	}

	s.applyCreate(item)
	s.confirm("added", h)
	return item, nil
}

// CreateForm is Create over multipart form data, for entities carrying an
// optional file attachment.
func (s *Store[T]) CreateForm(ctx context.Context, fields map[string]string, file *api.FileAttachment, h Hooks) (T, error) {
	defer h.cleanup()
	s.begin()

	item, err := api.PostForm[T](ctx, s.api, s.path, fields, file)
	if err != nil {
		s.fail(err, "Error adding "+s.name)
		return item, errors.Wrapf(err, "[Store.CreateForm] %s", s.name)
	}

	s.applyCreate(item)
	s.confirm("added", h)
	return item, nil
}

// Update puts body for id and replaces the matching item in place. The
// selected item follows when it has the same id.
func (s *Store[T]) Update(ctx context.Context, id string, body any, h Hooks) (T, error) {
	defer h.cleanup()
	s.begin()

	item, err := api.Put[T](ctx, s.api, s.path+"/"+id, body)
	if err != nil {
		s.fail(err, "Error updating "+s.name)
		return item, errors.Wrapf(err, "[Store.Update] %s %s", s.name, id)
	}

	s.applyUpdate(item)
	s.confirm("updated", h)
	return item, nil
}

// UpdateForm is Update over multipart form data.
func (s *Store[T]) UpdateForm(ctx context.Context, id string, fields map[string]string, file *api.FileAttachment, h Hooks) (T, error) {
	defer h.cleanup()
	s.begin()

	item, err := api.PutForm[T](ctx, s.api, s.path+"/"+id, fields, file)
	if err != nil {
		s.fail(err, "Error updating "+s.name)
		return item, errors.Wrapf(err, "[Store.UpdateForm] %s %s", s.name, id)
	}

	s.applyUpdate(item)
	s.confirm("updated", h)
	return item, nil
}

// Delete removes the matching item. An id not present in the collection is a
// no-op on the collection.
func (s *Store[T]) Delete(ctx context.Context, id string, h Hooks) error {
	defer h.cleanup()
	s.begin()

	if err := api.Delete(ctx, s.api, s.path+"/"+id); err != nil {
		s.fail(err, "Error deleting "+s.name)
		return errors.Wrapf(err, "[Store.Delete] %s %s", s.name, id)
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	if s.selected != nil && (*s.selected).EntityID() == id {
		s.selected = nil
	}
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()

	s.confirm("deleted", h)
	return nil
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

func (s *Store[T]) fail(err error, fallback string) {
	reason := displayReason(err, fallback)

	s.mu.Lock()
	s.loading = false
	s.errMsg = reason
	s.mu.Unlock()

	s.log.Warn().Str("resource", s.name).Str("reason", reason).Msg("operation failed")
	if s.center != nil {
		s.center.Error(reason)
	}
}

func (s *Store[T]) confirm(verb string, h Hooks) {
	if s.center != nil {
		s.center.Success(capitalize(s.name) + " " + verb + " successfully")
	}
	if h.After != nil {
		h.After()
	}
}

func (s *Store[T]) applyCreate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = upsert(s.items, item)
	s.loading = false
	s.errMsg = ""
}

func (s *Store[T]) applyUpdate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].EntityID() == item.EntityID() {
			s.items[i] = item
			break
		}
	}
	if s.selected != nil && (*s.selected).EntityID() == item.EntityID() {
		s.selected = utils.Ptr(item)
	}
	s.loading = false
	s.errMsg = ""
}

// displayReason converts a failed operation into the message shown to the
// user, preferring the server's own wording.
func displayReason(err error, fallback string) string {
	var business *api.BusinessError
	if errors.As(err, &business) {
		return business.Message
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return fallback
}

func dedupe[T Entity](list []T) []T {
	seen := make(map[string]struct{}, len(list))
	out := list[:0:0]
	for _, it := range list {
		if _, ok := seen[it.EntityID()]; ok {
			continue
		}
		seen[it.EntityID()] = struct{}{}
		out = append(out, it)
	}
	return out
}

func upsert[T Entity](items []T, item T) []T {
	for i := range items {
		if items[i].EntityID() == item.EntityID() {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
