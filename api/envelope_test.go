package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/servly/admin-console/api"
	errs "github.com/servly/admin-console/internal/errors"
	"github.com/stretchr/testify/require"
)

type role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGetDecodesEnvelopeData(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"code":200,"data":[{"id":"r1","name":"admin"}],"message":"ok"}`)) //nolint:errcheck
	})

	got, err := api.Get[[]role](context.Background(), f.client, "/role")
	require.NoError(t, err)
	require.Equal(t, []role{{ID: "r1", Name: "admin"}}, got)
}

func TestBusinessFailureInsideOK(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"code":409,"data":"Role admin already exists","message":"conflict"}`)) //nolint:errcheck
	})

	_, err := api.Post[role](context.Background(), f.client, "/role", map[string]string{"name": "admin"})
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrBusinessRule)

	var business *api.BusinessError
	require.ErrorAs(t, err, &business)
	require.Equal(t, "Role admin already exists", business.Message)
	require.Equal(t, 409, business.Code)
}

func TestBusinessFailureFallsBackToMessage(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"code":400,"data":null,"message":"name is required"}`)) //nolint:errcheck
	})

	_, err := api.Post[role](context.Background(), f.client, "/role", map[string]string{})
	var business *api.BusinessError
	require.ErrorAs(t, err, &business)
	require.Equal(t, "name is required", business.Message)
}

func TestHTTPErrorCarriesEnvelopeMessage(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"code":404,"data":"role not found","message":""}`)) //nolint:errcheck
	})

	_, err := api.Get[role](context.Background(), f.client, "/role/missing")
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Status)
	require.Equal(t, "role not found", httpErr.Error())
}

func TestMalformedEnvelopeOn200(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`)) //nolint:errcheck
	})

	_, err := api.Get[role](context.Background(), f.client, "/role/r1")
	require.ErrorIs(t, err, errs.ErrBadEnvelope)
}

func TestDeleteChecksEnvelope(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"success":false,"code":400,"data":"role is in use","message":""}`)) //nolint:errcheck
	})

	err := api.Delete(context.Background(), f.client, "/role/r1")
	require.ErrorIs(t, err, errs.ErrBusinessRule)
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]string
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"code":201,"data":{"id":"r2","name":"support"},"message":""}`)) //nolint:errcheck
	})

	got, err := api.Post[role](context.Background(), f.client, "/role", map[string]string{"name": "support"})
	require.NoError(t, err)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]string{"name": "support"}, gotBody)
	require.Equal(t, role{ID: "r2", Name: "support"}, got)
}

func TestPostFormEncodesFieldsAndFile(t *testing.T) {
	var gotFields map[string]string
	var gotFile string
	var gotFileField string
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for name, vals := range r.MultipartForm.Value {
			gotFields[name] = vals[0]
		}
		for name, headers := range r.MultipartForm.File {
			gotFileField = name
			file, err := headers[0].Open()
			require.NoError(t, err)
			content, err := io.ReadAll(file)
			require.NoError(t, err)
			gotFile = string(content)
		}
		w.Write([]byte(`{"success":true,"code":201,"data":{"id":"c1","name":"Plumbing"},"message":""}`)) //nolint:errcheck
	})

	got, err := api.PostForm[role](context.Background(), f.client, "/serviceCategory",
		map[string]string{"Name": "Plumbing", "Description": "Pipes"},
		&api.FileAttachment{Field: "CategoryImageFile", Filename: "pipe.png", Content: strings.NewReader("png-bytes")},
	)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"Name": "Plumbing", "Description": "Pipes"}, gotFields)
	require.Equal(t, "CategoryImageFile", gotFileField)
	require.Equal(t, "png-bytes", gotFile)
	require.Equal(t, "c1", got.ID)
}

func TestPostFormWithoutFile(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Empty(t, r.MultipartForm.File)
		w.Write([]byte(`{"success":true,"code":201,"data":{"id":"c2","name":"Electrics"},"message":""}`)) //nolint:errcheck
	})

	got, err := api.PostForm[role](context.Background(), f.client, "/serviceCategory",
		map[string]string{"Name": "Electrics"}, nil)
	require.NoError(t, err)
	require.Equal(t, "c2", got.ID)
}

func TestGetRawDecodesBareDTO(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalRequests":12,"totalRevenue":340.5}`)) //nolint:errcheck
	})

	type summary struct {
		TotalRequests int     `json:"totalRequests"`
		TotalRevenue  float64 `json:"totalRevenue"`
	}
	got, err := api.GetRaw[summary](context.Background(), f.client, "/admin/dashboard/summary")
	require.NoError(t, err)
	require.Equal(t, summary{TotalRequests: 12, TotalRevenue: 340.5}, got)
}
