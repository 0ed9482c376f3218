package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solemate/sneaker-market/internal/api/testutils"
	"github.com/solemate/sneaker-market/internal/models"
)

func TestUserCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Create through the CRUD surface
	createReq := models.RegisterRequest{
		Email:     "cruduser@example.com",
		Username:  "cruduser",
		Password:  "SecurePassword123",
		FirstName: "Crud",
		LastName:  "User",
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users", createReq, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.User
	err := json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Empty(t, created.HashedPassword)

	// List
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/users", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	err = json.Unmarshal(w.Body.Bytes(), &users)
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	// Get by id
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Get missing id
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/users/999999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Partial update: only first_name changes
	firstName := "Updated"
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/users/%d", created.ID),
		models.UserUpdate{FirstName: &firstName},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	err = json.Unmarshal(w.Body.Bytes(), &updated)
	assert.NoError(t, err)
	assert.Equal(t, "Updated", updated.FirstName)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Username, updated.Username)
	assert.Equal(t, created.ID, updated.ID)

	// Update missing id
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/users/999999",
		models.UserUpdate{FirstName: &firstName},
		nil,
	)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete again
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDuplicateConflict(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	testCtx.CreateTestUser(t, "taken@example.com", "takenname")

	// Same email, different username
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users", models.RegisterRequest{
		Email:     "taken@example.com",
		Username:  "freshname",
		Password:  "SecurePassword123",
		FirstName: "A",
		LastName:  "B",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Same username, different email
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users", models.RegisterRequest{
		Email:     "fresh@example.com",
		Username:  "takenname",
		Password:  "SecurePassword123",
		FirstName: "A",
		LastName:  "B",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
