package api_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solemate/sneaker-market/internal/api/testutils"
	"github.com/solemate/sneaker-market/internal/models"
)

func TestRegister(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Successful registration
	registerReq := models.RegisterRequest{
		Email:     "newuser@example.com",
		Username:  "newuser",
		Password:  "SecurePassword123",
		FirstName: "New",
		LastName:  "User",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/auth/register",
		registerReq,
		nil,
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	// The response must never echo the password or its hash
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, registerReq.Email, body["email"])
	assert.Equal(t, registerReq.Username, body["username"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hashed_password")

	// Test case 2: Duplicate email with a different username
	dupEmail := registerReq
	dupEmail.Username = "otheruser"
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/auth/register", dupEmail, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Duplicate username with a different email
	dupUsername := registerReq
	dupUsername.Email = "other@example.com"
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/auth/register", dupUsername, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Invalid request (missing required fields)
	invalidReq := models.RegisterRequest{
		Email: "invalid@example.com",
		// Missing username, password, and names
	}
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/auth/register", invalidReq, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	user, _ := testCtx.CreateTestUser(t, "login@example.com", "loginuser")

	// Test case 1: Successful login (form fields, username carries the email)
	w := testutils.PerformFormRequest(testCtx.Router, http.MethodPost, "/auth/login", url.Values{
		"username": {user.Email},
		"password": {testutils.TestPassword},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var tokenResp models.TokenResponse
	err := json.Unmarshal(w.Body.Bytes(), &tokenResp)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenResp.AccessToken)
	assert.Equal(t, "bearer", tokenResp.TokenType)

	// Test case 2: Wrong password
	w = testutils.PerformFormRequest(testCtx.Router, http.MethodPost, "/auth/login", url.Values{
		"username": {user.Email},
		"password": {"wrongpassword"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Unknown user
	w = testutils.PerformFormRequest(testCtx.Router, http.MethodPost, "/auth/login", url.Values{
		"username": {"nonexistent@example.com"},
		"password": {testutils.TestPassword},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var health models.HealthResponse
	err := json.Unmarshal(w.Body.Bytes(), &health)
	assert.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
}
