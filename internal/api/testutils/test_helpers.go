package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/solemate/sneaker-market/internal/api"
	"github.com/solemate/sneaker-market/internal/config"
	"github.com/solemate/sneaker-market/internal/models"
	"github.com/solemate/sneaker-market/internal/repository"
	"github.com/solemate/sneaker-market/internal/service"
)

// TestPassword is the password every user created through this harness gets.
const TestPassword = "testpassword123"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	DB         *sqlx.DB
}

// SetupTestContext creates a new test context with initialized dependencies
func SetupTestContext(t *testing.T) *TestContext {
	// Load configuration from environment
	cfg := config.LoadConfig()

	// Point at the test database
	if cfg.Database.TestDBName != "" {
		cfg.Database.DBName = cfg.Database.TestDBName
	} else {
		cfg.Database.DBName = "sneakermarket_test"
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "test-secret-key"
	}

	// Set up database
	db, err := config.SetupDatabase(cfg)
	assert.NoError(t, err, "Failed to set up test database")

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	handler.SetupRoutes(router)

	testCtx := &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		DB:         db,
	}

	cleanupTestDatabase(t, testCtx)

	return testCtx
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(testCtx *TestContext) {
	if testCtx.DB != nil {
		cleanupTestDatabase(nil, testCtx)
		testCtx.DB.Close()
	}
}

// cleanupTestDatabase removes all rows in dependency order
func cleanupTestDatabase(t *testing.T, testCtx *TestContext) {
	tables := []string{"propositions", "sneakers", "users"}
	for _, table := range tables {
		_, err := testCtx.DB.Exec("DELETE FROM " + table)
		if t != nil && err != nil {
			t.Logf("Warning: Failed to clean %s: %v", table, err)
		}
	}
}

// CreateTestUser registers a user through the service and logs it in,
// returning the user record and a valid bearer token.
func (tc *TestContext) CreateTestUser(t *testing.T, email, username string) (*models.User, string) {
	t.Helper()

	user, err := tc.Service.Register(context.Background(), models.RegisterRequest{
		Email:     email,
		Username:  username,
		Password:  TestPassword,
		FirstName: "Test",
		LastName:  "User",
	})
	assert.NoError(t, err, "Failed to create test user")

	token, err := tc.Service.Login(context.Background(), email, TestPassword)
	assert.NoError(t, err, "Failed to log in test user")

	return user, token
}

// PerformRequest executes a JSON HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// PerformFormRequest executes a form-encoded HTTP request against the router
func PerformFormRequest(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
