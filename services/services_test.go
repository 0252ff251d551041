package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/services"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *services.Store
	mu     sync.Mutex
	pushed []notify.Notification
}

func (f *fixture) notifications() []notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Notification(nil), f.pushed...)
}

func setup(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, api.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	center := notify.NewCenter(notify.WithDuration(time.Minute))
	t.Cleanup(center.Close)

	f := &fixture{}
	center.Subscribe(func(n notify.Notification) {
		f.mu.Lock()
		f.pushed = append(f.pushed, n)
		f.mu.Unlock()
	})
	f.store = services.NewStore(client, center)
	return f
}

func TestFetchByCategoryLeavesMainCollectionAlone(t *testing.T) {
	f := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/serviceList":
			w.Write([]byte(`{"success":true,"code":200,"data":[{"id":"s1","name":"Tap repair","serviceCategoryId":"c1","createdAt":"2024-01-01"},{"id":"s2","name":"Rewiring","serviceCategoryId":"c2","createdAt":"2024-01-01"}],"message":""}`)) //nolint:errcheck
		case "/serviceList/by-category/c1":
			w.Write([]byte(`{"success":true,"code":200,"data":[{"id":"s1","name":"Tap repair","serviceCategoryId":"c1","createdAt":"2024-01-01"}],"message":""}`)) //nolint:errcheck
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	require.NoError(t, f.store.FetchAll(ctx))
	require.NoError(t, f.store.FetchByCategory(ctx, "c1"))

	require.Len(t, f.store.Items(), 2, "main collection untouched")
	byCat := f.store.ByCategory()
	require.Len(t, byCat, 1)
	require.Equal(t, "s1", byCat[0].ID)
	require.Empty(t, f.store.Err())
	require.False(t, f.store.IsLoading())

	f.store.ClearByCategory()
	require.Empty(t, f.store.ByCategory())
	require.Len(t, f.store.Items(), 2)
}

func TestFetchByCategoryFailureSetsErrAndNotifies(t *testing.T) {
	f := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := f.store.FetchByCategory(context.Background(), "c1")
	require.Error(t, err)
	require.Empty(t, f.store.ByCategory())
	require.NotEmpty(t, f.store.Err())
	require.False(t, f.store.IsLoading())

	notes := f.notifications()
	require.Len(t, notes, 1)
	require.Equal(t, notify.KindError, notes[0].Kind)
}

func TestFetchByCategoryBusinessFailureSurfacesWording(t *testing.T) {
	f := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"code":404,"data":"category not found","message":""}`)) //nolint:errcheck
	})

	err := f.store.FetchByCategory(context.Background(), "missing")
	require.Error(t, err)
	require.Empty(t, f.store.ByCategory())
	require.Equal(t, "category not found", f.store.Err())

	notes := f.notifications()
	require.Len(t, notes, 1)
	require.Equal(t, "category not found", notes[0].Message)
}
