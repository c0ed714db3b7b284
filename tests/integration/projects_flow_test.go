package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-backend/internal/auth"
	"github.com/devfolio/portfolio-backend/internal/bootstrap"
	"github.com/devfolio/portfolio-backend/internal/cache"
	"github.com/devfolio/portfolio-backend/internal/projects/repository"
)

const adminToken = "valid-admin-token"

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if idToken != adminToken {
		return nil, errors.New("invalid token")
	}
	return &fbauth.Token{UID: "admin-uid", Claims: map[string]any{"email": "admin@example.com"}}, nil
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	views := cache.NewRedisViews(setupTestRedis(t), time.Minute)
	router, _ := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portfolio-backend",
		Version:     "test",
		Gate:        auth.NewGate(stubVerifier{}, nil),
		Store:       repository.NewMemoryStore(),
		Views:       views,
	})
	return router
}

func request(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

type listResponse struct {
	OK       bool `json:"ok"`
	Projects []struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Tags      []string  `json:"tags"`
		ImageURLs []string  `json:"imageUrls"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	} `json:"projects"`
}

func listProjects(t *testing.T, router *gin.Engine) listResponse {
	t.Helper()
	rr := request(t, router, http.MethodGet, "/api/v1/projects", "", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestProjectLifecycle(t *testing.T) {
	router := setupRouter(t)

	// Empty public listing, no auth required.
	resp := listProjects(t, router)
	assert.True(t, resp.OK)
	assert.Empty(t, resp.Projects)

	// Forged token: rejected, store untouched.
	body := `{"title":"Portfolio Engine","description":"A CRUD demo app","tags":"ts, web","imageUrls":""}`
	rr := request(t, router, http.MethodPost, "/api/v1/projects", "forged", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, listProjects(t, router).Projects)

	// Create.
	rr = request(t, router, http.MethodPost, "/api/v1/projects", adminToken, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		ProjectID string `json:"project_id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ProjectID)

	// The cached public view was invalidated, so the listing shows the new
	// project immediately.
	resp = listProjects(t, router)
	require.Len(t, resp.Projects, 1)
	p := resp.Projects[0]
	assert.Equal(t, "Portfolio Engine", p.Title)
	assert.Equal(t, []string{"ts", "web"}, p.Tags)
	assert.False(t, p.CreatedAt.After(time.Now()))
	createdAt := p.CreatedAt

	// Update.
	updateBody := `{"title":"Portfolio Engine v2","description":"A CRUD demo app","tags":"ts","imageUrls":"https://a.com/x.png"}`
	rr = request(t, router, http.MethodPut, "/api/v1/projects/"+created.ProjectID, adminToken, updateBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp = listProjects(t, router)
	require.Len(t, resp.Projects, 1)
	p = resp.Projects[0]
	assert.Equal(t, "Portfolio Engine v2", p.Title)
	assert.Equal(t, []string{"https://a.com/x.png"}, p.ImageURLs)
	assert.Equal(t, created.ProjectID, p.ID)
	assert.True(t, p.CreatedAt.Equal(createdAt), "createdAt preserved across updates")
	assert.True(t, p.UpdatedAt.After(p.CreatedAt) || p.UpdatedAt.Equal(p.CreatedAt))

	// Delete, then mutations on the gone id surface NotFound.
	rr = request(t, router, http.MethodDelete, "/api/v1/projects/"+created.ProjectID, adminToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, listProjects(t, router).Projects)

	rr = request(t, router, http.MethodDelete, "/api/v1/projects/"+created.ProjectID, adminToken, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = request(t, router, http.MethodPut, "/api/v1/projects/"+created.ProjectID, adminToken, updateBody)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidationFailureShortCircuits(t *testing.T) {
	router := setupRouter(t)

	body := `{"title":"AB","description":"0123456789","tags":"x","imageUrls":""}`
	rr := request(t, router, http.MethodPost, "/api/v1/projects", adminToken, body)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Issues map[string][]string `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Contains(t, resp.Issues, "title")
	assert.Contains(t, resp.Issues["title"][0], "at least 3 characters")

	assert.Empty(t, listProjects(t, router).Projects, "no store call issued")
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	rr := request(t, router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rr.Body.String(), `"store":"up"`)
}
