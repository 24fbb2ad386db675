package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoview/internal/model"
)

const sampleBody = `[
  {"userId": 1, "id": 1, "title": "delectus aut autem", "completed": false},
  {"userId": 1, "id": 2, "title": "quis ut nam facilis et officia qui", "completed": true}
]`

func TestClient_LoadItems(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Token: "s3cret"}, srv.Client(), zerolog.Nop())
	items, err := c.LoadItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Item{
		{ID: 1, OwnerID: 1, Title: "delectus aut autem"},
		{ID: 2, OwnerID: 1, Title: "quis ut nam facilis et officia qui", Completed: true},
	}, items)
	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasAuth.Store(r.Header.Get("Authorization") != "")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	items, err := New(Config{URL: srv.URL}, nil, zerolog.Nop()).LoadItems(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.False(t, hasAuth.Load())
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantIs  error
		wantMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantIs: ErrUnexpectedStatus},
		{name: "not found", status: http.StatusNotFound, body: "", wantIs: ErrUnexpectedStatus},
		{name: "bad json", status: http.StatusOK, body: "{", wantMsg: "decode response"},
		{name: "wrong shape", status: http.StatusOK, body: `{"id": 1}`, wantMsg: "decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(Config{URL: srv.URL}, srv.Client(), zerolog.Nop()).LoadItems(context.Background())
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClient_SingleRequestOnFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(Config{URL: srv.URL}, srv.Client(), zerolog.Nop()).LoadItems(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{URL: srv.URL, Timeout: 50 * time.Millisecond}, srv.Client(), zerolog.Nop())
	_, err := c.LoadItems(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{}, nil, zerolog.Nop())
	assert.Equal(t, DefaultURL, c.String())
	assert.Equal(t, DefaultTimeout, c.config.Timeout)
	assert.NotNil(t, c.httpClient)
}
