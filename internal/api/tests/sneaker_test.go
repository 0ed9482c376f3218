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

func createTestSneaker(t *testing.T, testCtx *testutils.TestContext, token string) models.Sneaker {
	t.Helper()

	color := "White/Black"
	price := 120.0
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/sneakers", models.SneakerCreate{
		SKU:           "SKU-12345678",
		Brand:         "Nike",
		Model:         "Air Max 90",
		Size:          42.0,
		Color:         &color,
		PurchasePrice: &price,
	}, testutils.AuthHeaders(token))
	assert.Equal(t, http.StatusCreated, w.Code)

	var sneaker models.Sneaker
	err := json.Unmarshal(w.Body.Bytes(), &sneaker)
	assert.NoError(t, err)
	return sneaker
}

func TestCreateSneaker(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	owner, token := testCtx.CreateTestUser(t, "owner@example.com", "owner")

	// Test case 1: Unauthenticated create
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/sneakers", models.SneakerCreate{
		SKU: "SKU-1", Brand: "Nike", Model: "Dunk Low", Size: 42,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 2: Successful create, owner defaults to the caller
	sneaker := createTestSneaker(t, testCtx, token)
	assert.Equal(t, owner.ID, sneaker.UserID)
	assert.Equal(t, "SKU-12345678", sneaker.SKU)

	// Test case 3: Invalid payload (missing brand)
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/sneakers", models.SneakerCreate{
		SKU: "SKU-2", Model: "Dunk Low", Size: 42,
	}, testutils.AuthHeaders(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Explicit owner that does not resolve
	missing := int64(999999)
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/sneakers", models.SneakerCreate{
		SKU: "SKU-3", Brand: "Nike", Model: "Dunk Low", Size: 42, UserID: &missing,
	}, testutils.AuthHeaders(token))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSneakersFilters(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	owner, token := testCtx.CreateTestUser(t, "owner@example.com", "owner")
	_, otherToken := testCtx.CreateTestUser(t, "other@example.com", "other")

	for _, s := range []models.SneakerCreate{
		{SKU: "SKU-A", Brand: "Nike", Model: "Air Max 90", Size: 42},
		{SKU: "SKU-B", Brand: "Adidas", Model: "Samba", Size: 43},
	} {
		w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/sneakers", s, testutils.AuthHeaders(token))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/sneakers", models.SneakerCreate{
		SKU: "SKU-C", Brand: "New Balance", Model: "990v6", Size: 44,
	}, testutils.AuthHeaders(otherToken))
	assert.Equal(t, http.StatusCreated, w.Code)

	cases := []struct {
		query string
		want  int
	}{
		{"", 3},
		{fmt.Sprintf("?user_id=%d", owner.ID), 2},
		{"?sku=SKU-B", 1},
		{"?brand=nike", 1},   // case-insensitive substring
		{"?model=max", 1},    // substring match
		{"?brand=adi&model=samba", 1},
		{"?brand=nosuchbrand", 0},
		{"?skip=1&limit=1", 1},
	}

	for _, tc := range cases {
		w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/sneakers"+tc.query, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var sneakers []models.Sneaker
		err := json.Unmarshal(w.Body.Bytes(), &sneakers)
		assert.NoError(t, err)
		assert.Len(t, sneakers, tc.want, "query %q", tc.query)
	}
}

func TestSneakerOwnership(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	_, ownerToken := testCtx.CreateTestUser(t, "owner@example.com", "owner")
	_, otherToken := testCtx.CreateTestUser(t, "other@example.com", "other")

	sneaker := createTestSneaker(t, testCtx, ownerToken)
	path := fmt.Sprintf("/api/sneakers/%d", sneaker.ID)

	newPrice := 150.0
	update := models.SneakerUpdate{PurchasePrice: &newPrice}

	// Non-owner update
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, path, update, testutils.AuthHeaders(otherToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unauthenticated update
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, path, update, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Owner partial update
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, path, update, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Sneaker
	err := json.Unmarshal(w.Body.Bytes(), &updated)
	assert.NoError(t, err)
	assert.NotNil(t, updated.PurchasePrice)
	assert.Equal(t, 150.0, *updated.PurchasePrice)
	assert.Equal(t, sneaker.SKU, updated.SKU) // untouched field survives

	// Non-owner delete
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, path, nil, testutils.AuthHeaders(otherToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner delete
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, path, nil, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
