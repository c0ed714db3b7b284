package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-backend/internal/projects/validate"
)

type fakeTokens struct {
	token         string
	err           error
	forced        int32
	nonForced     int32
}

func (f *fakeTokens) IDToken(ctx context.Context, forceRefresh bool) (string, error) {
	if forceRefresh {
		atomic.AddInt32(&f.forced, 1)
	} else {
		atomic.AddInt32(&f.nonForced, 1)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func newFakeAPI(t *testing.T) (*httptest.Server, *int32, *string) {
	t.Helper()
	var calls int32
	var lastAuth string

	// Method-qualified ServeMux patterns ("POST /path", "{id}" wildcards)
	// need go 1.22+; route by method inside the handlers instead.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			atomic.AddInt32(&calls, 1)
			lastAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(Result{OK: true, ProjectID: "new-id", Message: "Project added successfully."})
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"ok": true, "projects": []map[string]any{
				{"id": "p1", "title": "Portfolio Engine", "tags": []string{"ts"}},
			}})
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/v1/projects/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&calls, 1)
		lastAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(Result{OK: false, Error: "Project not found."})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls, &lastAuth
}

func validInput() validate.Input {
	return validate.Input{
		Title:       "Portfolio Engine",
		Description: "A CRUD demo app",
		Tags:        "ts, web",
	}
}

func TestAddProject_RefreshThenCall(t *testing.T) {
	srv, calls, lastAuth := newFakeAPI(t)
	tokens := &fakeTokens{token: "fresh-token"}

	refetched := make(chan struct{}, 1)
	c := New(srv.URL, tokens, WithRefetch(func() { refetched <- struct{}{} }))

	res, err := c.AddProject(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "new-id", res.ProjectID)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens.forced), "mutations always force-refresh")
	assert.Equal(t, int32(0), atomic.LoadInt32(&tokens.nonForced))
	assert.Equal(t, "Bearer fresh-token", *lastAuth)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	select {
	case <-refetched:
	case <-time.After(time.Second):
		t.Fatal("refetch hook not fired after successful mutation")
	}
}

func TestMutation_TokenFailureBeforeNetwork(t *testing.T) {
	srv, calls, _ := newFakeAPI(t)
	tokens := &fakeTokens{err: errors.New("refresh token revoked")}

	c := New(srv.URL, tokens)

	_, err := c.AddProject(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenAcquisition)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "no API call after acquisition failure")
}

func TestDeleteProject_StructuredFailure(t *testing.T) {
	srv, _, _ := newFakeAPI(t)
	tokens := &fakeTokens{token: "fresh-token"}

	refetches := int32(0)
	c := New(srv.URL, tokens, WithRefetch(func() { atomic.AddInt32(&refetches, 1) }))

	res, err := c.DeleteProject(context.Background(), "missing-id")
	require.NoError(t, err, "structured failures are results, not transport errors")
	assert.False(t, res.OK)
	assert.Equal(t, "Project not found.", res.Error)
	assert.Equal(t, int32(0), atomic.LoadInt32(&refetches), "no refetch on failed mutation")
}

func TestListProjects_NoToken(t *testing.T) {
	srv, _, _ := newFakeAPI(t)
	tokens := &fakeTokens{token: "unused"}

	c := New(srv.URL, tokens)
	items, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Portfolio Engine", items[0].Title)
	assert.Equal(t, int32(0), atomic.LoadInt32(&tokens.forced))
	assert.Equal(t, int32(0), atomic.LoadInt32(&tokens.nonForced))
}
