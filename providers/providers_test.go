package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/providers"
	"github.com/servly/admin-console/store"
)

func TestStoreTargetsServiceProviderPath(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.Write([]byte(`{"success":true,"code":200,"data":null,"message":""}`)) //nolint:errcheck
		default:
			w.Write([]byte(`{"success":true,"code":200,"data":[{"id":"p1","firstName":"Grace","lastName":"Hopper","email":"grace@example.com","phoneNumber":"07000000002","gender":"female","dateOfBirth":"1990-12-09","role":"provider","experience":8,"serviceCategoryId":"c1"}],"message":""}`)) //nolint:errcheck
		}
	}))
	defer server.Close()

	client, err := api.New(server.URL, api.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	center := notify.NewCenter(notify.WithDuration(time.Minute))
	defer center.Close()

	s := providers.NewStore(client, center)
	require.NoError(t, s.FetchAll(context.Background()))
	require.NoError(t, s.Delete(context.Background(), "p1", store.Hooks{}))
	require.Equal(t, []string{"GET /serviceProvider", "DELETE /serviceProvider/p1"}, paths)
	require.Empty(t, s.Items())
}

func TestPayloadValidation(t *testing.T) {
	validate := validator.New()

	valid := providers.Payload{
		FirstName:         "Grace",
		LastName:          "Hopper",
		Email:             "grace@example.com",
		PhoneNumber:       "07000000002",
		Gender:            "female",
		DateOfBirth:       "1990-12-09",
		Experience:        8,
		ServiceCategoryID: "c1",
	}
	require.NoError(t, validate.Struct(valid))

	badGender := valid
	badGender.Gender = "unknown"
	require.Error(t, validate.Struct(badGender))

	badDate := valid
	badDate.DateOfBirth = "09/12/1990"
	require.Error(t, validate.Struct(badDate))

	negativeExperience := valid
	negativeExperience.Experience = -1
	require.Error(t, validate.Struct(negativeExperience))
}
