package googleapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/photo-wall/internal/googleapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		apiState string
	}{
		{name: "failed precondition", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"not ready","status":"FAILED_PRECONDITION"}}`, sentinel: googleapi.ErrFailedPrecondition, apiState: "FAILED_PRECONDITION"},
		{name: "plain bad request", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`, sentinel: googleapi.ErrBadRequest, apiState: "INVALID_ARGUMENT"},
		{name: "forbidden", status: http.StatusForbidden, body: `nope`, sentinel: googleapi.ErrForbidden},
		{name: "server", status: http.StatusBadGateway, body: ``, sentinel: googleapi.ErrServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := googleapi.BearerClient(context.Background(), srv.Client(), "tok")
			err := googleapi.DoJSON(context.Background(), client, http.MethodGet, srv.URL, nil, nil)
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *googleapi.Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.apiState, apiErr.Status)
			require.Equal(t, tt.body, apiErr.Body)
		})
	}
}

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id":"s-1"}`))
	}))
	defer srv.Close()

	var out struct {
		ID string `json:"id"`
	}
	client := googleapi.BearerClient(context.Background(), srv.Client(), "tok")
	require.NoError(t, googleapi.DoJSON(context.Background(), client, http.MethodPost, srv.URL, struct{}{}, &out))
	require.Equal(t, "s-1", out.ID)
}
